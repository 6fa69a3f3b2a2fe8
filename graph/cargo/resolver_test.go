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
	"os"
	"testing"

	"github.com/go-quicktest/qt"

	depgraph "github.com/cratedeps/depgraph/graph"
	"github.com/cratedeps/depgraph/graph/feature"
)

func loadFeatureGraph(t *testing.T, path string) *feature.FeatureGraph {
	t.Helper()
	data, err := os.ReadFile(path)
	qt.Assert(t, qt.IsNil(err))
	pg, err := depgraph.BuildPackageGraphFromJSON(data)
	qt.Assert(t, qt.IsNil(err))
	fg, err := feature.BuildFeatureGraph(pg)
	qt.Assert(t, qt.IsNil(err))
	return fg
}

const aID = depgraph.PackageID("a 0.1.0 (path+file:///fakepath/a)")
const bID = depgraph.PackageID("b 1.0.0 (registry+https://github.com/rust-lang/crates.io-index)")

func sliceContains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func TestResolveOptionalFeatureActivation(t *testing.T) {
	fg := loadFeatureGraph(t, "../testdata/optional_feature_activation.json")

	q := NewFeatureQuery(feature.FeatureID{Package: aID, Slot: "useB"})
	set, err := Resolve(fg, q, CargoOptions{ResolverVersion: ResolverV1})
	qt.Assert(t, qt.IsNil(err))

	qt.Assert(t, qt.IsTrue(set.TargetFeatures.Contains(aID)))
	qt.Assert(t, qt.IsTrue(set.TargetFeatures.Contains(bID)))

	bFeats := set.TargetFeatures.Features(bID)
	qt.Assert(t, qt.IsTrue(sliceContains(bFeats, "f1")))

	// v1 unifies target and host into the same set.
	qt.Assert(t, qt.Equals(set.HostFeatures.Len(), set.TargetFeatures.Len()))
}

func TestResolveWithoutSeedExcludesOptionalDep(t *testing.T) {
	fg := loadFeatureGraph(t, "../testdata/optional_feature_activation.json")

	q := NewFeatureQuery(feature.FeatureID{Package: aID})
	set, err := Resolve(fg, q, CargoOptions{ResolverVersion: ResolverV1})
	qt.Assert(t, qt.IsNil(err))

	qt.Assert(t, qt.IsTrue(set.TargetFeatures.Contains(aID)))
	qt.Assert(t, qt.IsFalse(set.TargetFeatures.Contains(bID)))
}

func TestResolveIsDeterministic(t *testing.T) {
	// spec.md §5/§8: identical inputs must yield byte-for-byte identical
	// CargoSets across runs; resolveV1's visited set is a Go map, so this
	// only holds if its iteration is sorted before feeding the result into
	// the FeatureSet, rather than consumed in randomized map order.
	fg := loadFeatureGraph(t, "../testdata/optional_feature_activation.json")
	q := NewFeatureQuery(feature.FeatureID{Package: aID, Slot: "useB"})

	var first []string
	for i := 0; i < 20; i++ {
		set, err := Resolve(fg, q, CargoOptions{ResolverVersion: ResolverV1})
		qt.Assert(t, qt.IsNil(err))
		got := set.TargetFeatures.Features(bID)
		if i == 0 {
			first = got
			continue
		}
		qt.Assert(t, qt.DeepEquals(got, first))
	}
}

func TestResolveUnsupportedVersion(t *testing.T) {
	fg := loadFeatureGraph(t, "../testdata/single_dep_chain.json")
	q := NewFeatureQuery(feature.FeatureID{Package: depgraph.PackageID("testcrate 0.1.0 (path+file:///fakepath/testcrate)")})
	_, err := Resolve(fg, q, CargoOptions{ResolverVersion: ResolverV2})
	qt.Assert(t, qt.ErrorIs(err, ErrResolverVersionUnsupported))
}
