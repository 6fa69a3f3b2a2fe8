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
	"github.com/cratedeps/depgraph/graph/dot"
	"github.com/cratedeps/depgraph/graph/feature"
)

// DisplayDot renders fs's activated nodes and the edges between them by
// calling back into v, looking up graph indices via fg.
func (fs *FeatureSet) DisplayDot(fg *feature.FeatureGraph, v dot.Visitor) {
	ids := fs.FeatureIDs()
	ixs := make([]feature.FeatureIx, 0, len(ids))
	for _, id := range ids {
		n, err := fg.Node(id)
		if err != nil {
			continue
		}
		ixs = append(ixs, n.Ix())
	}
	fg.DisplayDot(v, ixs)
}
