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
	"errors"
	"testing"

	"github.com/go-quicktest/qt"
)

func mustPlatform(t *testing.T, triple string, tf TargetFeatures) *Platform {
	t.Helper()
	p, err := NewPlatform(triple, tf)
	qt.Assert(t, qt.IsNil(err))
	return p
}

func TestEvalTriple(t *testing.T) {
	p := mustPlatform(t, "x86_64-unknown-linux-gnu", AllTargetFeatures())
	spec, err := ParseTargetSpec("x86_64-unknown-linux-gnu")
	qt.Assert(t, qt.IsNil(err))
	ok, err := Eval(spec, p)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ok))

	spec2, err := ParseTargetSpec("aarch64-apple-darwin")
	qt.Assert(t, qt.IsNil(err))
	ok, err = Eval(spec2, p)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(ok))
}

func TestEvalWindowsUnix(t *testing.T) {
	linux := mustPlatform(t, "x86_64-unknown-linux-gnu", AllTargetFeatures())
	windows := mustPlatform(t, "x86_64-pc-windows-msvc", AllTargetFeatures())

	windowsSpec, err := ParseTargetSpec("cfg(windows)")
	qt.Assert(t, qt.IsNil(err))
	unixSpec, err := ParseTargetSpec("cfg(unix)")
	qt.Assert(t, qt.IsNil(err))

	ok, err := Eval(windowsSpec, linux)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(ok))

	ok, err = Eval(windowsSpec, windows)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ok))

	ok, err = Eval(unixSpec, linux)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ok))

	ok, err = Eval(unixSpec, windows)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(ok))
}

func TestEvalUnixClosureIsConservative(t *testing.T) {
	// spec.md §4.1 deliberately limits cfg(unix) to Linux and MacOS; other
	// Unix-family targets the platforms database can resolve (iOS,
	// Android, the BSDs, Solaris, illumos) must evaluate false, matching
	// target-spec's evaluator.rs exactly.
	unixSpec, err := ParseTargetSpec("cfg(unix)")
	qt.Assert(t, qt.IsNil(err))

	macos := mustPlatform(t, "x86_64-apple-darwin", AllTargetFeatures())
	ok, err := Eval(unixSpec, macos)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ok))

	for _, triple := range []string{
		"aarch64-apple-ios",
		"aarch64-linux-android",
		"x86_64-unknown-freebsd",
		"x86_64-unknown-netbsd",
		"x86_64-unknown-openbsd",
		"sparcv9-sun-solaris",
		"x86_64-unknown-illumos",
	} {
		p := mustPlatform(t, triple, AllTargetFeatures())
		ok, err := Eval(unixSpec, p)
		qt.Assert(t, qt.IsNil(err))
		qt.Check(t, qt.IsFalse(ok), qt.Commentf("triple %s", triple))
	}
}

func TestEvalAlwaysFalseFamilies(t *testing.T) {
	p := mustPlatform(t, "x86_64-unknown-linux-gnu", AllTargetFeatures())
	for _, ident := range []string{"test", "debug_assertions", "proc_macro"} {
		spec, err := ParseTargetSpec("cfg(" + ident + ")")
		qt.Assert(t, qt.IsNil(err))
		ok, err := Eval(spec, p)
		qt.Assert(t, qt.IsNil(err))
		qt.Check(t, qt.IsFalse(ok))
	}
}

func TestEvalUnknownOption(t *testing.T) {
	p := mustPlatform(t, "x86_64-unknown-linux-gnu", AllTargetFeatures())
	spec, err := ParseTargetSpec("cfg(bogus_family)")
	qt.Assert(t, qt.IsNil(err))
	_, err = Eval(spec, p)
	qt.Assert(t, qt.IsNotNil(err))
	var evalErr *EvalError
	qt.Assert(t, qt.IsTrue(errors.As(err, &evalErr)))
	qt.Assert(t, qt.Equals(evalErr.Kind, UnknownOption))
	qt.Assert(t, qt.Equals(evalErr.Option, "bogus_family"))
}

func TestEvalTestEqualFields(t *testing.T) {
	p := mustPlatform(t, "aarch64-unknown-linux-musl", AllTargetFeatures())

	cases := []struct {
		spec string
		want bool
	}{
		{`cfg(target_os = "linux")`, true},
		{`cfg(target_os = "macos")`, false},
		{`cfg(target_arch = "aarch64")`, true},
		{`cfg(target_arch = "x86_64")`, false},
		{`cfg(target_env = "musl")`, true},
		{`cfg(target_env = "gnu")`, false},
		{`cfg(target_vendor = "unknown")`, true},
		{`cfg(target_vendor = "apple")`, false},
		{`cfg(feature = "anything")`, false},
	}
	for _, c := range cases {
		spec, err := ParseTargetSpec(c.spec)
		qt.Assert(t, qt.IsNil(err))
		ok, err := Eval(spec, p)
		qt.Assert(t, qt.IsNil(err))
		qt.Check(t, qt.Equals(ok, c.want))
	}
}

func TestEvalTargetFeature(t *testing.T) {
	p := mustPlatform(t, "x86_64-unknown-linux-gnu", SomeTargetFeatures([]string{"sse2", "avx2"}))
	spec, err := ParseTargetSpec(`cfg(target_feature = "avx2")`)
	qt.Assert(t, qt.IsNil(err))
	ok, err := Eval(spec, p)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ok))

	spec2, err := ParseTargetSpec(`cfg(target_feature = "avx512f")`)
	qt.Assert(t, qt.IsNil(err))
	ok, err = Eval(spec2, p)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(ok))
}

func TestEvalNestedExpression(t *testing.T) {
	linuxGnu := mustPlatform(t, "x86_64-unknown-linux-gnu", AllTargetFeatures())
	spec, err := ParseTargetSpec(`cfg(all(unix, not(target_env = "musl")))`)
	qt.Assert(t, qt.IsNil(err))
	ok, err := Eval(spec, linuxGnu)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ok))

	linuxMusl := mustPlatform(t, "x86_64-unknown-linux-musl", AllTargetFeatures())
	ok, err = Eval(spec, linuxMusl)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(ok))
}

func TestNewPlatformUnknownTriple(t *testing.T) {
	_, err := NewPlatform("bogus-triple-zzz", AllTargetFeatures())
	qt.Assert(t, qt.IsNotNil(err))
	var evalErr *EvalError
	qt.Assert(t, qt.IsTrue(errors.As(err, &evalErr)))
	qt.Assert(t, qt.Equals(evalErr.Kind, TargetNotFound))
}
