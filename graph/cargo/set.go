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

package cargo

import (
	"sort"

	"github.com/cratedeps/depgraph/graph"
	"github.com/cratedeps/depgraph/graph/feature"
)

// PackageFeatures is one package's activated named-feature names (the base
// feature is always implicitly active and is not listed).
type PackageFeatures struct {
	Package  graph.PackageID
	Features []string
}

// FeatureSet is the activated (package, feature) set for one side (target
// or host) of a resolution, ordered by the owning package graph's
// topological indices so that iteration is deterministic and independent of
// hash order.
type FeatureSet struct {
	pg      *graph.PackageGraph
	byPkg   map[graph.PackageID][]string
	present map[graph.PackageID]struct{}
}

func newFeatureSet(pg *graph.PackageGraph) *FeatureSet {
	return &FeatureSet{
		pg:      pg,
		byPkg:   make(map[graph.PackageID][]string),
		present: make(map[graph.PackageID]struct{}),
	}
}

func (fs *FeatureSet) add(id feature.FeatureID) {
	fs.present[id.Package] = struct{}{}
	if id.IsBase() {
		return
	}
	fs.byPkg[id.Package] = append(fs.byPkg[id.Package], id.Slot)
}

// Contains reports whether pkg has any activated feature (including just
// its base).
func (fs *FeatureSet) Contains(pkg graph.PackageID) bool {
	_, ok := fs.present[pkg]
	return ok
}

// Features returns the activated named-feature names for pkg, in the
// package's feature declaration order (resolveV1 adds nodes in ascending
// feature-graph index order). The base feature is always implicitly
// active for a present package and is not included here.
func (fs *FeatureSet) Features(pkg graph.PackageID) []string {
	return append([]string{}, fs.byPkg[pkg]...)
}

// Len returns the number of distinct packages with at least one activated
// feature node.
func (fs *FeatureSet) Len() int { return len(fs.present) }

// FeatureIDs returns every activated node id (package bases and named
// features alike), for handing to FeatureGraph.DisplayDot. Packages are
// ordered by package-graph index, not map iteration order, for the same
// reason resolveV1 sorts its visited set before unifying it: spec.md §5
// requires every traversal order to be a deterministic function of
// graph-internal indices.
func (fs *FeatureSet) FeatureIDs() []feature.FeatureID {
	pkgs := make([]graph.PackageID, 0, len(fs.present))
	for pkg := range fs.present {
		pkgs = append(pkgs, pkg)
	}
	sort.Slice(pkgs, func(i, j int) bool {
		mi, _ := fs.pg.Metadata(pkgs[i])
		mj, _ := fs.pg.Metadata(pkgs[j])
		return mi.Ix() < mj.Ix()
	})

	out := make([]feature.FeatureID, 0, len(fs.present))
	for _, pkg := range pkgs {
		out = append(out, feature.FeatureID{Package: pkg})
		for _, slot := range fs.byPkg[pkg] {
			out = append(out, feature.FeatureID{Package: pkg, Slot: slot})
		}
	}
	return out
}

func (fs *FeatureSet) ordered(reverse bool) []PackageFeatures {
	order := fs.pg.TopoSort()
	out := make([]PackageFeatures, 0, len(fs.present))
	for i := range order {
		id := order[i]
		if reverse {
			id = order[len(order)-1-i]
		}
		if _, ok := fs.present[id]; !ok {
			continue
		}
		out = append(out, PackageFeatures{Package: id, Features: fs.Features(id)})
	}
	return out
}

// ForwardTopo returns every (package, features) pair in the set in the
// order of PackageGraph.TopoSort: the package graph's edges point
// dependent -> dependency, and TopoSort yields dependents before their
// dependencies.
func (fs *FeatureSet) ForwardTopo() []PackageFeatures { return fs.ordered(false) }

// ReverseTopo returns the same pairs in the opposite order.
func (fs *FeatureSet) ReverseTopo() []PackageFeatures { return fs.ordered(true) }

// CargoSet is the output of a resolution: the unified activated feature set
// on the target platform and on the host platform. Under the v1 resolver
// these are identical copies of one unification; v2 computes them
// independently.
type CargoSet struct {
	TargetFeatures *FeatureSet
	HostFeatures   *FeatureSet
}
