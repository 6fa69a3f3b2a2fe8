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

// Package testtxtar provides a golden-file test harness over txtar
// archives, adapted from the teacher's internal/cuetxtar package: a txtar
// file holds one fixture's input plus zero or more "out/<name>" golden
// files, comment lines of the form "#key: value" carry per-fixture
// options, and a "#key" comment line alone is a tag that HasTag reports.
// Load returns every fixture and acts on no tag itself. Where the
// original drove a CUE loader, this harness drives metadata-document
// fixtures for the package and feature graphs.
package testtxtar

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

// Fixture wraps one parsed txtar archive.
type Fixture struct {
	Name    string
	Archive *txtar.Archive
}

// Load reads every *.txtar file directly inside dir.
func Load(t *testing.T, dir string) []Fixture {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("testtxtar: reading %s: %v", dir, err)
	}
	var out []Fixture
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txtar") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		a, err := txtar.ParseFile(path)
		if err != nil {
			t.Fatalf("testtxtar: parsing %s: %v", path, err)
		}
		out = append(out, Fixture{Name: strings.TrimSuffix(e.Name(), ".txtar"), Archive: a})
	}
	return out
}

// File returns the contents of the first file in the archive with the
// given name, and whether it was found.
func (f Fixture) File(name string) ([]byte, bool) {
	for _, file := range f.Archive.Files {
		if file.Name == name {
			return file.Data, true
		}
	}
	return nil, false
}

// HasTag reports whether "#key" appears alone on a comment line.
func (f Fixture) HasTag(key string) bool {
	_, ok := f.tagLine("#"+key, true)
	return ok
}

// Value returns the value of a "#key: value" comment line.
func (f Fixture) Value(key string) (string, bool) {
	return f.tagLine("#"+key+":", false)
}

func (f Fixture) tagLine(prefix string, exact bool) (string, bool) {
	s := bufio.NewScanner(bytes.NewReader(f.Archive.Comment))
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if exact {
			if line == prefix {
				return "", true
			}
			continue
		}
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
		}
	}
	return "", false
}

// UpdateEnv is the environment variable that, when non-empty, causes
// CheckGolden to rewrite the golden file instead of failing the test.
const UpdateEnv = "DEPGRAPH_UPDATE_GOLDEN"

// CheckGolden compares got against the golden file goldenPath, failing t
// with a readable diff on mismatch. If DEPGRAPH_UPDATE_GOLDEN is set, it
// writes got to goldenPath instead.
func CheckGolden(t *testing.T, goldenPath, got string) {
	t.Helper()
	if os.Getenv(UpdateEnv) != "" {
		if err := os.WriteFile(goldenPath, []byte(got), 0o644); err != nil {
			t.Fatalf("testtxtar: writing golden file %s: %v", goldenPath, err)
		}
		return
	}
	want, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("testtxtar: reading golden file %s: %v", goldenPath, err)
	}
	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("%s: golden mismatch (-want +got):\n%s", goldenPath, diff)
	}
}
