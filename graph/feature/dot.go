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
	dotvisitor "github.com/cratedeps/depgraph/graph/dot"
)

// DisplayDot renders the induced subgraph over nodes (edges between two
// nodes both present in the set) by calling back into v. The engine does no
// formatting of its own, per spec.md §6.
func (fg *FeatureGraph) DisplayDot(v dotvisitor.Visitor, nodes []FeatureIx) {
	present := make(map[FeatureIx]bool, len(nodes))
	for _, ix := range nodes {
		present[ix] = true
	}
	for _, ix := range nodes {
		id := fg.nodes[ix].id
		v.FeatureNode(string(id.Package), id.Slot)
	}
	for _, ix := range nodes {
		for _, e := range fg.OutEdges(ix) {
			if !present[e.To()] {
				continue
			}
			from := fg.nodes[e.From()].id
			to := fg.nodes[e.To()].id
			v.FeatureEdge(string(from.Package), from.Slot, string(to.Package), to.Slot, e.Kind().String())
		}
	}
}
