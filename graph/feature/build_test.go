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
	"os"
	"testing"

	"github.com/go-quicktest/qt"

	depgraph "github.com/cratedeps/depgraph/graph"
)

func loadFeatureGraph(t *testing.T, path string) *FeatureGraph {
	t.Helper()
	data, err := os.ReadFile(path)
	qt.Assert(t, qt.IsNil(err))
	pg, err := depgraph.BuildPackageGraphFromJSON(data)
	qt.Assert(t, qt.IsNil(err))
	fg, err := BuildFeatureGraph(pg)
	qt.Assert(t, qt.IsNil(err))
	return fg
}

func TestOptionalFeatureActivation(t *testing.T) {
	fg := loadFeatureGraph(t, "../testdata/optional_feature_activation.json")
	qt.Assert(t, qt.HasLen(fg.Warnings(), 0))

	useB, err := fg.Node(FeatureID{Package: "a 0.1.0 (path+file:///fakepath/a)", Slot: "useB"})
	qt.Assert(t, qt.IsNil(err))

	bSlot, err := fg.Node(FeatureID{Package: "a 0.1.0 (path+file:///fakepath/a)", Slot: "b"})
	qt.Assert(t, qt.IsNil(err))

	foundFeatureDep := false
	foundCrossPackage := false
	for _, e := range fg.OutEdges(useB.Ix()) {
		if e.To() != bSlot.Ix() {
			continue
		}
		if e.Kind() == EdgeFeatureDependency {
			foundFeatureDep = true
		}
	}
	qt.Assert(t, qt.IsTrue(foundFeatureDep))

	bBase, err := fg.Node(FeatureID{Package: "b 1.0.0 (registry+https://github.com/rust-lang/crates.io-index)"})
	qt.Assert(t, qt.IsNil(err))
	f1, err := fg.Node(FeatureID{Package: "b 1.0.0 (registry+https://github.com/rust-lang/crates.io-index)", Slot: "f1"})
	qt.Assert(t, qt.IsNil(err))

	for _, e := range fg.OutEdges(bSlot.Ix()) {
		cp, ok := e.(*CrossPackageEdge)
		if !ok {
			continue
		}
		if cp.To() == bBase.Ix() || cp.To() == f1.Ix() {
			foundCrossPackage = true
			qt.Assert(t, qt.IsTrue(cp.Optional()))
		}
	}
	qt.Assert(t, qt.IsTrue(foundCrossPackage))
}

func TestMissingFeatureWarning(t *testing.T) {
	fg := loadFeatureGraph(t, "../testdata/missing_feature_warning.json")
	qt.Assert(t, qt.HasLen(fg.Warnings(), 1))

	w := fg.Warnings()[0]
	qt.Assert(t, qt.Equals(w.Stage, AddNamedFeatureEdges))
	qt.Assert(t, qt.Equals(w.PackageID, depgraph.PackageID("a 0.1.0 (path+file:///fakepath/a)")))
	qt.Assert(t, qt.Equals(w.FeatureName, "ghost"))
}

func TestFeatureToBaseAlwaysPresent(t *testing.T) {
	fg := loadFeatureGraph(t, "../testdata/single_dep_chain.json")
	for _, n := range fg.Nodes() {
		if n.ID().IsBase() {
			continue
		}
		hasBaseEdge := false
		for _, e := range fg.OutEdges(n.Ix()) {
			if e.Kind() == EdgeFeatureToBase {
				hasBaseEdge = true
			}
		}
		qt.Assert(t, qt.IsTrue(hasBaseEdge))
	}
}
