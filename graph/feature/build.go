// Copyright 2026 The Depgraph Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package feature

import (
	"strings"

	"gonum.org/v1/gonum/graph/simple"

	depgraph "github.com/cratedeps/depgraph/graph"
)

// buildState accumulates nodes, edges and warnings while constructing a
// FeatureGraph, mirroring the original's FeatureGraphBuildState: a single
// struct threaded through add_nodes / add_named_feature_edges /
// add_dependency_edges, translated into the teacher's incremental-graph-
// building idiom (build a struct holding a warnings slice, call a
// sequence of add_* steps, then freeze it into the final graph).
type buildState struct {
	pg       *depgraph.PackageGraph
	g        *simple.DirectedGraph
	nodes    []*FeatureNode
	byID     map[FeatureID]FeatureIx
	warnings []Warning
}

// BuildFeatureGraph constructs the feature graph for pg. It never fails on
// a dangling feature reference (those become warnings); it can fail if an
// optional dependency's manifest-declared feature slot is missing, which
// is a structural inconsistency rather than an ordinary dangling
// reference.
func BuildFeatureGraph(pg *depgraph.PackageGraph) (*FeatureGraph, error) {
	st := &buildState{
		pg:   pg,
		g:    simple.NewDirectedGraph(),
		byID: make(map[FeatureID]FeatureIx),
	}
	st.addNodes()
	st.addFeatureToBaseEdges()
	if err := st.addNamedFeatureEdges(); err != nil {
		return nil, err
	}
	if err := st.addDependencyEdges(); err != nil {
		return nil, err
	}

	fg := &FeatureGraph{
		pg:       pg,
		g:        st.g,
		nodes:    st.nodes,
		byID:     st.byID,
		warnings: st.warnings,
	}
	fg.setOwner()
	fg.initCaches()
	return fg, nil
}

func (st *buildState) addNodes() {
	for _, p := range st.pg.Packages() {
		st.addNode(FeatureID{Package: p.ID()})
		for _, name := range p.Features().Keys() {
			st.addNode(FeatureID{Package: p.ID(), Slot: name})
		}
	}
}

func (st *buildState) addNode(id FeatureID) FeatureIx {
	ix := FeatureIx(len(st.nodes))
	node := &FeatureNode{ix: ix, id: id}
	st.nodes = append(st.nodes, node)
	st.byID[id] = ix
	st.g.AddNode(fnode(ix))
	return ix
}

// setOwner backfills FeatureNode.g once the FeatureGraph wrapping this
// build state exists. Needed because nodes are created before the
// FeatureGraph struct itself.
func (fg *FeatureGraph) setOwner() {
	for _, n := range fg.nodes {
		n.g = fg
	}
}

func (st *buildState) addFeatureToBaseEdges() {
	for _, p := range st.pg.Packages() {
		baseIx := st.byID[FeatureID{Package: p.ID()}]
		for _, name := range p.Features().Keys() {
			ix := st.byID[FeatureID{Package: p.ID(), Slot: name}]
			st.g.SetEdge(gonumEdge{e: &featureToBase{from: ix, to: baseIx}})
		}
	}
}

func (st *buildState) addNamedFeatureEdges() error {
	for _, p := range st.pg.Packages() {
		for _, fname := range p.NamedFeatures() {
			val, _ := p.Features().Get(fname)
			fromIx := st.byID[FeatureID{Package: p.ID(), Slot: fname}]
			for _, tok := range val.Deps {
				if depName, featName, ok := strings.Cut(tok, "/"); ok {
					link, found := findDepLink(st.pg, p.ID(), depName)
					if !found {
						st.warn(AddNamedFeatureEdges, p.ID(), tok)
						continue
					}
					toID := link.To.ID()
					if !link.To.Features().Has(featName) && featName != "" {
						st.warn(AddNamedFeatureEdges, p.ID(), featName)
						continue
					}
					toIx := st.byID[FeatureID{Package: toID, Slot: featName}]
					st.g.SetEdge(gonumEdge{e: &featureDependency{from: fromIx, to: toIx}})
					continue
				}
				if !p.Features().Has(tok) {
					st.warn(AddNamedFeatureEdges, p.ID(), tok)
					continue
				}
				toIx := st.byID[FeatureID{Package: p.ID(), Slot: tok}]
				st.g.SetEdge(gonumEdge{e: &featureDependency{from: fromIx, to: toIx}})
			}
		}
	}
	return nil
}

func findDepLink(pg *depgraph.PackageGraph, from depgraph.PackageID, depName string) (depgraph.DependencyLink, bool) {
	links, err := pg.DepsFrom(from)
	if err != nil {
		return depgraph.DependencyLink{}, false
	}
	for _, l := range links {
		if l.Edge.DepName() == depName {
			return l, true
		}
	}
	return depgraph.DependencyLink{}, false
}

func (st *buildState) warn(stage FeatureBuildStage, pkg depgraph.PackageID, feature string) {
	st.warnings = append(st.warnings, Warning{Stage: stage, PackageID: pkg, FeatureName: feature})
}

func (st *buildState) addDependencyEdges() error {
	for _, p := range st.pg.Packages() {
		links, err := st.pg.DepsFrom(p.ID())
		if err != nil {
			return err
		}
		for _, link := range links {
			kinds := []depgraph.DependencyKind{depgraph.KindNormal, depgraph.KindBuild}
			if p.InWorkspace() {
				kinds = append(kinds, depgraph.KindDev)
			}
			for _, kind := range kinds {
				dm := link.Edge.Metadata(kind)
				if dm == nil {
					continue
				}
				if err := st.addDependencyReqEdges(p, link, kind, dm.Mandatory(), false); err != nil {
					return err
				}
				if err := st.addDependencyReqEdges(p, link, kind, dm.Optional(), true); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (st *buildState) addDependencyReqEdges(p *depgraph.PackageMetadata, link depgraph.DependencyLink, kind depgraph.DependencyKind, req *depgraph.DependencyReq, optional bool) error {
	if req.BuildIf().IsNever() && len(req.FeatureRequests()) == 0 {
		return nil
	}

	fromID := FeatureID{Package: p.ID()}
	if optional {
		depName := link.Edge.DepName()
		if !p.Features().Has(depName) {
			return &depgraph.ConstructError{Msg: "optional dependency " + depName + " of " + string(p.ID()) + " has no corresponding feature slot"}
		}
		fromID = FeatureID{Package: p.ID(), Slot: depName}
	}
	fromIx, ok := st.byID[fromID]
	if !ok {
		return &depgraph.ConstructError{Msg: "missing feature node for " + fromID.String()}
	}

	toBaseIx := st.byID[FeatureID{Package: link.To.ID()}]
	if !req.BuildIf().IsNever() {
		st.g.SetEdge(gonumEdge{e: &CrossPackageEdge{from: fromIx, to: toBaseIx, depKind: kind, predicate: req.BuildIf(), optional: optional}})
	}

	for _, fr := range req.FeatureRequests() {
		for _, f := range fr.Features {
			if !link.To.Features().Has(f) {
				st.warn(AddDependencyEdges, p.ID(), f)
				continue
			}
			toIx := st.byID[FeatureID{Package: link.To.ID(), Slot: f}]
			st.g.SetEdge(gonumEdge{e: &CrossPackageEdge{from: fromIx, to: toIx, depKind: kind, predicate: fr.Predicate, optional: optional}})
		}
	}

	if !req.DefaultFeaturesIf().IsNever() && link.To.Features().Has("default") {
		toIx := st.byID[FeatureID{Package: link.To.ID(), Slot: "default"}]
		st.g.SetEdge(gonumEdge{e: &CrossPackageEdge{from: fromIx, to: toIx, depKind: kind, predicate: req.DefaultFeaturesIf(), optional: optional}})
	}
	return nil
}
