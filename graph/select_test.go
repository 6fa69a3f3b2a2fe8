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

package graph

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestSelectForwardAllFollowsDevEdge(t *testing.T) {
	pg := loadFixture(t, "testdata/single_dep_chain.json")

	set, err := pg.Select([]PackageID{"testcrate 0.1.0 (path+file:///fakepath/testcrate)"}, Forward, ResolverAll)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(set.Len(), 2))
	qt.Assert(t, qt.IsTrue(set.Contains("datatest 0.4.2 (registry+https://github.com/rust-lang/crates.io-index)")))

	order, err := set.ForwardTopo()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(order[0], PackageID("datatest 0.4.2 (registry+https://github.com/rust-lang/crates.io-index)")))
	qt.Assert(t, qt.Equals(order[1], PackageID("testcrate 0.1.0 (path+file:///fakepath/testcrate)")))
}

func TestSelectDevOnlyResolverExcludesNonDevEdge(t *testing.T) {
	// a's two dependencies (lazy_static, winonly) are normal-only edges.
	pg := loadFixture(t, "testdata/platform_predicate.json")

	set, err := pg.Select([]PackageID{"a 0.1.0 (path+file:///fakepath/a)"}, Forward, ResolverDev)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(set.Len(), 1))
}

func TestSelectUnknownSeed(t *testing.T) {
	pg := loadFixture(t, "testdata/single_dep_chain.json")
	_, err := pg.Select([]PackageID{"nope 0.0.0 (registry)"}, Forward, ResolverAll)
	qt.Assert(t, qt.IsNotNil(err))
	var unk *UnknownPackageIDError
	qt.Assert(t, qt.ErrorAs(err, &unk))
}
