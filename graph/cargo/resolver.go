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
	"github.com/cratedeps/depgraph/platform"
)

// Resolve runs a feature-unification resolution over fg starting from q's
// seed nodes, per opts. For ResolverV1 it performs a single forward
// reachability pass and copies the result into both CargoSet sides. It
// returns ErrResolverVersionUnsupported for any other ResolverVersion.
func Resolve(fg *feature.FeatureGraph, q FeatureQuery, opts CargoOptions) (*CargoSet, error) {
	switch opts.ResolverVersion {
	case ResolverV1, "":
		return resolveV1(fg, q, opts)
	default:
		return nil, ErrResolverVersionUnsupported
	}
}

// resolveV1 implements the "legacy" algorithm from spec.md §4.5: forward
// reachability over the feature graph, gating cross-package edges by
// dependency kind (normal/build always, dev only from a workspace source
// when IncludeDev) and by whether the edge's platform predicate holds on
// either the target or the host platform. The target and host sides of the
// resulting CargoSet are identical copies of the one unification; v2 is the
// only version that computes them independently.
func resolveV1(fg *feature.FeatureGraph, q FeatureQuery, opts CargoOptions) (*CargoSet, error) {
	pg := fg.PackageGraph()

	seeds := make([]feature.FeatureIx, 0, len(q.Seeds))
	for _, id := range q.Seeds {
		n, err := fg.Node(id)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, n.Ix())
	}

	visited := make(map[feature.FeatureIx]bool)
	queue := append([]feature.FeatureIx{}, seeds...)
	for _, ix := range seeds {
		visited[ix] = true
	}

	for len(queue) > 0 {
		ix := queue[0]
		queue = queue[1:]
		for _, e := range fg.OutEdges(ix) {
			include, err := includeEdge(fg, e, opts)
			if err != nil {
				return nil, err
			}
			if !include {
				continue
			}
			to := e.To()
			if visited[to] {
				continue
			}
			visited[to] = true
			queue = append(queue, to)
		}
	}

	// visited is a map, so its key order is randomized; per spec.md §5 all
	// traversal orders must be deterministic functions of graph-internal
	// indices, so sort by FeatureIx before feeding the unification, the
	// same discipline graph.links() and Select apply to their own results.
	order := make([]feature.FeatureIx, 0, len(visited))
	for ix := range visited {
		order = append(order, ix)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	unified := newFeatureSet(pg)
	nodes := fg.Nodes()
	for _, ix := range order {
		unified.add(nodes[ix].ID())
	}

	return &CargoSet{TargetFeatures: unified, HostFeatures: unified}, nil
}

func includeEdge(fg *feature.FeatureGraph, e feature.Edge, opts CargoOptions) (bool, error) {
	cp, ok := e.(*feature.CrossPackageEdge)
	if !ok {
		// FeatureToBase and FeatureDependency edges are intra-package and
		// unconditional: activating a feature always activates its
		// listed same-package dependencies and its own base.
		return true, nil
	}

	switch cp.DepKind() {
	case graph.KindDev:
		if !opts.IncludeDev {
			return false, nil
		}
		fromPkg := fg.Nodes()[cp.From()].Package()
		if !fromPkg.InWorkspace() {
			return false, nil
		}
	}

	return predicateHolds(cp.Predicate(), opts.TargetPlatform, opts.HostPlatform)
}

func predicateHolds(pred graph.TargetPredicate, platforms ...*platform.Platform) (bool, error) {
	if pred.IsNever() {
		return false, nil
	}
	if pred.IsAlways() {
		return true, nil
	}
	for _, p := range platforms {
		if p == nil {
			continue
		}
		ok, err := pred.EvalOn(p)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
