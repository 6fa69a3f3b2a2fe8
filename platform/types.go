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

// atomKind distinguishes a bare identifier from a quoted string literal
// inside a cfg() expression.
type atomKind int

const (
	atomIdent atomKind = iota
	atomValue
)

type atom struct {
	kind atomKind
	text string
}

// exprKind tags the variant held by an expr node.
type exprKind int

const (
	exprAny exprKind = iota
	exprAll
	exprNot
	exprTestSet
	exprTestEqual
)

// expr is the parsed form of a cfg() boolean expression tree: any(...),
// all(...), not(...), a bare identifier ("windows"), or "ident = value".
type expr struct {
	kind     exprKind
	children []expr // for any/all
	operand  *expr  // for not
	ident    atom   // for testSet/testEqual
	value    atom   // for testEqual
}

// targetKind distinguishes a bare triple from a parsed cfg() expression.
type targetKind int

const (
	targetTriple targetKind = iota
	targetSpec
)

type targetEnum struct {
	kind   targetKind
	triple string
	spec   expr
}

// TargetSpec is a parsed target specification: either a bare target triple
// string or a `cfg(...)` boolean expression, as found in a manifest's
// platform-conditional dependency tables.
type TargetSpec struct {
	target targetEnum
	raw    string
}

// String returns the original specification text.
func (s *TargetSpec) String() string {
	return s.raw
}

// ParseTargetSpec parses a bare triple or a `cfg(...)` expression.
func ParseTargetSpec(input string) (*TargetSpec, error) {
	target, err := parseImpl(input)
	if err != nil {
		return nil, err
	}
	return &TargetSpec{target: target, raw: input}, nil
}
