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

package diff

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/cratedeps/depgraph/graph"
)

func TestDiffAddedRemovedChanged(t *testing.T) {
	before := map[graph.PackageID]FeatureNameSet{
		"a 0.1.0 (registry)": NewFeatureNameSet([]string{"f1"}),
		"b 0.1.0 (registry)": NewFeatureNameSet([]string{"f1", "f2"}),
	}
	after := map[graph.PackageID]FeatureNameSet{
		"a 0.1.0 (registry)": NewFeatureNameSet([]string{"f1", "f3"}),
		"c 0.1.0 (registry)": NewFeatureNameSet([]string{"f1"}),
	}

	res := Diff(before, after)
	qt.Assert(t, qt.IsFalse(res.IsEmpty()))
	qt.Assert(t, qt.DeepEquals(res.AddedPackages, []graph.PackageID{"c 0.1.0 (registry)"}))
	qt.Assert(t, qt.DeepEquals(res.RemovedPackages, []graph.PackageID{"b 0.1.0 (registry)"}))
	qt.Assert(t, qt.HasLen(res.Changed, 1))

	d := res.Changed["a 0.1.0 (registry)"]
	qt.Assert(t, qt.DeepEquals(d.Added, []string{"f3"}))
	qt.Assert(t, qt.HasLen(d.Removed, 0))
}

func TestDiffIdenticalIsEmpty(t *testing.T) {
	m := map[graph.PackageID]FeatureNameSet{
		"a 0.1.0 (registry)": NewFeatureNameSet([]string{"f1"}),
	}
	res := Diff(m, m)
	qt.Assert(t, qt.IsTrue(res.IsEmpty()))
}
