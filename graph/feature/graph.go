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
	"sort"
	"sync"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	depgraph "github.com/cratedeps/depgraph/graph"
)

// FeatureGraph is the directed graph over (package, slot) nodes built from
// a package graph's declared features and dependency edges. It is built
// once and treated as immutable; SCCs() and TopoSort() are computed on
// first demand behind a sync.OnceValue, the same caching discipline as
// the package graph.
type FeatureGraph struct {
	pg *depgraph.PackageGraph
	g  *simple.DirectedGraph

	nodes []*FeatureNode
	byID  map[FeatureID]FeatureIx

	warnings []Warning

	sccOnce  func() [][]FeatureIx
	topoOnce func() topoResult
}

type topoResult struct {
	order []FeatureIx
	err   error
}

// PackageGraph returns the package graph this feature graph was built
// from.
func (fg *FeatureGraph) PackageGraph() *depgraph.PackageGraph { return fg.pg }

// Warnings returns every non-fatal warning recorded during construction.
func (fg *FeatureGraph) Warnings() []Warning { return fg.warnings }

// Node returns the node for a given FeatureID.
func (fg *FeatureGraph) Node(id FeatureID) (*FeatureNode, error) {
	ix, ok := fg.byID[id]
	if !ok {
		return nil, &depgraph.UnknownFeatureIDError{ID: id.Package, Feature: id.Slot}
	}
	return fg.nodes[ix], nil
}

// Nodes returns every feature node, in build order.
func (fg *FeatureGraph) Nodes() []*FeatureNode {
	out := make([]*FeatureNode, len(fg.nodes))
	copy(out, fg.nodes)
	return out
}

// BaseNode returns the base node for a package.
func (fg *FeatureGraph) BaseNode(id depgraph.PackageID) (*FeatureNode, error) {
	return fg.Node(FeatureID{Package: id})
}

// OutEdges returns the edges leaving a node, ordered by destination index.
func (fg *FeatureGraph) OutEdges(ix FeatureIx) []Edge {
	it := fg.g.From(int64(ix))
	var out []Edge
	for it.Next() {
		other := it.Node().ID()
		e, ok := fg.g.Edge(int64(ix), other).(gonumEdge)
		if ok {
			out = append(out, e.e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].To() < out[j].To() })
	return out
}

// InEdges returns the edges entering a node.
func (fg *FeatureGraph) InEdges(ix FeatureIx) []Edge {
	it := fg.g.To(int64(ix))
	var out []Edge
	for it.Next() {
		other := it.Node().ID()
		e, ok := fg.g.Edge(other, int64(ix)).(gonumEdge)
		if ok {
			out = append(out, e.e)
		}
	}
	return out
}

func (fg *FeatureGraph) initCaches() {
	fg.sccOnce = sync.OnceValue(fg.computeSCCs)
	fg.topoOnce = sync.OnceValue(fg.computeTopo)
}

func (fg *FeatureGraph) computeSCCs() [][]FeatureIx {
	var out [][]FeatureIx
	for _, scc := range topo.TarjanSCC(fg.g) {
		if len(scc) > 1 || (len(scc) == 1 && fg.g.HasEdgeFromTo(scc[0].ID(), scc[0].ID())) {
			ixs := make([]FeatureIx, len(scc))
			for i, n := range scc {
				ixs[i] = FeatureIx(n.ID())
			}
			out = append(out, ixs)
		}
	}
	return out
}

// SCCs returns the feature graph's non-trivial strongly-connected
// components.
func (fg *FeatureGraph) SCCs() [][]FeatureIx { return fg.sccOnce() }

func (fg *FeatureGraph) computeTopo() topoResult {
	sorted, err := topo.Sort(fg.g)
	if err != nil {
		return topoResult{err: err}
	}
	out := make([]FeatureIx, len(sorted))
	for i, n := range sorted {
		out[i] = FeatureIx(n.ID())
	}
	return topoResult{order: out}
}

// TopoSort returns a topological ordering of the feature graph's nodes. It
// returns an error if the feature graph is cyclic (it can be, unlike the
// non-dev-only package subgraph: cross-package feature edges derived from
// dev-only package edges carry no acyclicity guarantee).
func (fg *FeatureGraph) TopoSort() ([]FeatureIx, error) {
	res := fg.topoOnce()
	return res.order, res.err
}
