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

// Package platform parses and evaluates Cargo-style target specifications
// (bare target triples and `cfg(...)` expressions) against a platform
// descriptor.
package platform

import "fmt"

// ParseError describes a failure to parse a target specification string.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("target spec parse error at byte %d of %q: %s", e.Pos, e.Input, e.Msg)
}

// EvalErrorKind distinguishes the ways evaluation of a parsed target
// specification against a platform can fail.
type EvalErrorKind int

const (
	// TargetNotFound means the platform's triple was not present in the
	// embedded platforms database.
	TargetNotFound EvalErrorKind = iota
	// UnknownOption means a cfg() predicate referenced a family or key this
	// package does not recognize.
	UnknownOption
)

// EvalError describes a failure while evaluating a TargetSpec against a
// Platform.
type EvalError struct {
	Kind   EvalErrorKind
	Option string // populated for UnknownOption
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case TargetNotFound:
		return "target triple not found in platform database"
	case UnknownOption:
		return fmt.Sprintf("target family not recognized: %s", e.Option)
	default:
		return "unknown target evaluation error"
	}
}
