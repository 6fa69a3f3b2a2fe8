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
	"os"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/cratedeps/depgraph/platform"
)

func loadFixture(t *testing.T, path string, opts ...BuildOption) *PackageGraph {
	t.Helper()
	data, err := os.ReadFile(path)
	qt.Assert(t, qt.IsNil(err))
	pg, err := BuildPackageGraphFromJSON(data, opts...)
	qt.Assert(t, qt.IsNil(err))
	return pg
}

func TestBuildSingleDepChain(t *testing.T) {
	pg := loadFixture(t, "testdata/single_dep_chain.json")
	qt.Assert(t, qt.Equals(pg.Len(), 2))

	links, err := pg.DepsFrom("testcrate 0.1.0 (path+file:///fakepath/testcrate)")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(links, 1))

	link := links[0]
	qt.Assert(t, qt.Equals(link.To.Name(), "datatest"))
	qt.Assert(t, qt.IsNotNil(link.Edge.Normal()))
	qt.Assert(t, qt.IsNotNil(link.Edge.Build()))
	qt.Assert(t, qt.IsNotNil(link.Edge.Dev()))
}

func TestBuildPlatformPredicate(t *testing.T) {
	pg := loadFixture(t, "testdata/platform_predicate.json")

	linux, err := platform.NewPlatform("x86_64-unknown-linux-gnu", platform.AllTargetFeatures())
	qt.Assert(t, qt.IsNil(err))
	windows, err := platform.NewPlatform("x86_64-pc-windows-msvc", platform.AllTargetFeatures())
	qt.Assert(t, qt.IsNil(err))

	links, err := pg.DepsFrom("a 0.1.0 (path+file:///fakepath/a)")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(links, 2))

	var lazyStatic, winOnly *DependencyEdge
	for _, l := range links {
		switch l.To.Name() {
		case "lazy_static":
			lazyStatic = l.Edge
		case "winonly":
			winOnly = l.Edge
		}
	}
	qt.Assert(t, qt.IsNotNil(lazyStatic))
	qt.Assert(t, qt.IsNotNil(winOnly))

	// lazy_static is declared both unconditionally and under
	// cfg(not(windows)); the unconditional declaration alone makes it
	// mandatory everywhere.
	status, err := lazyStatic.Normal().StatusOn(linux)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(status, StatusMandatory))
	status, err = lazyStatic.Normal().StatusOn(windows)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(status, StatusMandatory))

	// winonly is declared only under cfg(windows).
	status, err = winOnly.Normal().StatusOn(linux)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(status, StatusNever))
	status, err = winOnly.Normal().StatusOn(windows)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(status, StatusMandatory))
}
