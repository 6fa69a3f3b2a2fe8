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
	"fmt"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"github.com/cratedeps/depgraph/internal/testtxtar"
)

// recordingVisitor renders dot.Visitor callbacks as plain text lines, in
// call order, for comparison against a golden fixture.
type recordingVisitor struct {
	lines []string
}

func (r *recordingVisitor) PackageNode(id, name string) {
	r.lines = append(r.lines, fmt.Sprintf("node %q [label=%q]", id, name))
}

func (r *recordingVisitor) PackageEdge(fromID, toID, depName string) {
	r.lines = append(r.lines, fmt.Sprintf("edge %q -> %q [label=%q]", fromID, toID, depName))
}

func (r *recordingVisitor) FeatureNode(packageID, slot string) {
	r.lines = append(r.lines, fmt.Sprintf("fnode %q %q", packageID, slot))
}

func (r *recordingVisitor) FeatureEdge(fromPackageID, fromSlot, toPackageID, toSlot, kindLabel string) {
	r.lines = append(r.lines, fmt.Sprintf("fedge %q.%q -> %q.%q [%s]", fromPackageID, fromSlot, toPackageID, toSlot, kindLabel))
}

// TestSelectDisplayDotGolden renders a Select query's induced subgraph to
// DOT-shaped text and checks it against the "out/dot" file embedded in
// each fixture, the way the teacher's own cuetxtar-driven tests pair an
// input document with an embedded expected-output section.
func TestSelectDisplayDotGolden(t *testing.T) {
	fixtures := testtxtar.Load(t, "testdata/dottxtar")
	qt.Assert(t, qt.HasLen(fixtures, 1))

	for _, f := range fixtures {
		f := f
		t.Run(f.Name, func(t *testing.T) {
			metadata, ok := f.File("metadata.json")
			qt.Assert(t, qt.IsTrue(ok))
			start, ok := f.Value("start")
			qt.Assert(t, qt.IsTrue(ok))
			wantBytes, ok := f.File("out/dot")
			qt.Assert(t, qt.IsTrue(ok))

			pg, err := BuildPackageGraphFromJSON(metadata)
			qt.Assert(t, qt.IsNil(err))

			set, err := pg.Select([]PackageID{PackageID(start)}, Forward, ResolverAll)
			qt.Assert(t, qt.IsNil(err))

			v := &recordingVisitor{}
			set.DisplayDot(v)

			got := strings.Join(v.lines, "\n") + "\n"
			want := string(wantBytes)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%s: dot output mismatch (-want +got):\n%s", f.Name, diff)
			}
		})
	}
}
