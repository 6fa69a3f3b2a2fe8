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

package platform

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestParseTargetSpecTriple(t *testing.T) {
	spec, err := ParseTargetSpec("x86_64-unknown-linux-gnu")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(spec.target.kind, targetTriple))
	qt.Assert(t, qt.Equals(spec.target.triple, "x86_64-unknown-linux-gnu"))
	qt.Assert(t, qt.Equals(spec.String(), "x86_64-unknown-linux-gnu"))
}

func TestParseTargetSpecCfgIdent(t *testing.T) {
	spec, err := ParseTargetSpec(`cfg(windows)`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(spec.target.kind, targetSpec))
	qt.Assert(t, qt.Equals(spec.target.spec.kind, exprTestSet))
	qt.Assert(t, qt.Equals(spec.target.spec.ident.text, "windows"))
}

func TestParseTargetSpecCfgEquality(t *testing.T) {
	spec, err := ParseTargetSpec(`cfg(target_os = "linux")`)
	qt.Assert(t, qt.IsNil(err))
	e := spec.target.spec
	qt.Assert(t, qt.Equals(e.kind, exprTestEqual))
	qt.Assert(t, qt.Equals(e.ident.text, "target_os"))
	qt.Assert(t, qt.Equals(e.value.text, "linux"))
}

func TestParseTargetSpecNested(t *testing.T) {
	spec, err := ParseTargetSpec(`cfg(all(unix, not(target_os = "macos"), any(target_arch = "x86_64", target_arch = "aarch64")))`)
	qt.Assert(t, qt.IsNil(err))
	e := spec.target.spec
	qt.Assert(t, qt.Equals(e.kind, exprAll))
	qt.Assert(t, qt.Equals(len(e.children), 3))
	qt.Assert(t, qt.Equals(e.children[0].kind, exprTestSet))
	qt.Assert(t, qt.Equals(e.children[1].kind, exprNot))
	qt.Assert(t, qt.Equals(e.children[1].operand.kind, exprTestEqual))
	qt.Assert(t, qt.Equals(e.children[2].kind, exprAny))
	qt.Assert(t, qt.Equals(len(e.children[2].children), 2))
}

func TestParseTargetSpecEscapes(t *testing.T) {
	spec, err := ParseTargetSpec(`cfg(target_feature = "a\"b\\c")`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(spec.target.spec.value.text, `a"b\c`))
}

func TestParseTargetSpecErrors(t *testing.T) {
	cases := []string{
		"",
		"cfg(",
		"cfg()",
		"cfg(windows",
		"cfg(any(windows)",
		"cfg(target_os = )",
		`cfg(target_os = "unterminated)`,
		"cfg(windows) trailing",
	}
	for _, c := range cases {
		_, err := ParseTargetSpec(c)
		qt.Check(t, qt.IsNotNil(err))
	}
}
