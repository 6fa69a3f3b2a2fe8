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
	"fmt"

	"github.com/cratedeps/depgraph/graph"
)

// FeatureBuildStage names the construction phase a warning was raised in.
type FeatureBuildStage int

const (
	AddNamedFeatureEdges FeatureBuildStage = iota
	AddDependencyEdges
)

func (s FeatureBuildStage) String() string {
	switch s {
	case AddNamedFeatureEdges:
		return "AddNamedFeatureEdges"
	case AddDependencyEdges:
		return "AddDependencyEdges"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal construction warning: a named feature referenced
// a feature or package that could not be resolved. The corresponding edge
// is simply omitted; construction never fails because of this.
type Warning struct {
	Stage       FeatureBuildStage
	PackageID   graph.PackageID
	FeatureName string
}

func (w Warning) String() string {
	return fmt.Sprintf("missing feature %q referenced by %s during %s", w.FeatureName, w.PackageID, w.Stage)
}
