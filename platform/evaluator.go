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

// Eval evaluates a parsed TargetSpec against the given Platform, returning
// whether the spec matches. A bare triple matches only the identical
// triple string; a cfg() expression is evaluated recursively per the rules
// below.
func Eval(spec *TargetSpec, p *Platform) (bool, error) {
	switch spec.target.kind {
	case targetTriple:
		return spec.target.triple == p.triple, nil
	case targetSpec:
		return evalExpr(spec.target.spec, p)
	default:
		return false, &EvalError{Kind: UnknownOption, Option: "<malformed target spec>"}
	}
}

func evalExpr(e expr, p *Platform) (bool, error) {
	switch e.kind {
	case exprAny:
		for _, child := range e.children {
			ok, err := evalExpr(child, p)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case exprAll:
		for _, child := range e.children {
			ok, err := evalExpr(child, p)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case exprNot:
		ok, err := evalExpr(*e.operand, p)
		if err != nil {
			return false, err
		}
		return !ok, nil
	case exprTestSet:
		return evalTestSet(e.ident.text, p)
	case exprTestEqual:
		return evalTestEqual(e.ident.text, e.value.text, p)
	default:
		return false, &EvalError{Kind: UnknownOption, Option: "<malformed expression>"}
	}
}

// evalTestSet handles a bare identifier predicate: `cfg(windows)`,
// `cfg(unix)`, and the always-false build-profile families that guppy's
// resolver treats as never active since it has no notion of a build
// profile or compiler invocation.
func evalTestSet(ident string, p *Platform) (bool, error) {
	switch ident {
	case "windows":
		return p.entry.os == OSWindows, nil
	case "unix":
		return unixLike(p.entry), nil
	case "test", "debug_assertions", "proc_macro":
		return false, nil
	default:
		return false, &EvalError{Kind: UnknownOption, Option: ident}
	}
}

// unixLike reports whether an entry's recorded OS belongs to the
// deliberately conservative Unix closure spec.md §4.1 defines: Linux and
// MacOS only, matching target-spec's evaluator.rs exactly. Other
// Unix-family OSes the platforms database can resolve (iOS, Android, the
// BSDs, Solaris, illumos) are not recognized here; cfg(unix) evaluates
// false for them, same as upstream.
func unixLike(e entry) bool {
	switch e.os {
	case OSLinux, OSMacOS:
		return true
	default:
		return false
	}
}

// evalTestEqual handles an `ident = "value"` predicate.
func evalTestEqual(ident, value string, p *Platform) (bool, error) {
	switch ident {
	case "target_os":
		return p.entry.osName == value, nil
	case "target_arch":
		return p.entry.arch == value, nil
	case "target_env":
		return p.entry.env == value, nil
	case "target_vendor":
		// The platforms database does not model vendor strings precisely;
		// conservatively report "unknown" for every entry as documented.
		return value == "unknown", nil
	case "feature":
		// `cfg(feature = "...")` refers to a Cargo feature, not a platform
		// attribute; target-spec evaluation never sees feature state, so
		// this predicate is always false.
		return false, nil
	case "target_feature":
		return p.targetFeatures.Matches(value), nil
	default:
		return false, &EvalError{Kind: UnknownOption, Option: ident}
	}
}
