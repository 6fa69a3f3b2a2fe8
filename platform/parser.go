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
	"fmt"
	"strings"
)

// parser is a minimal hand-written recursive-descent parser over the cfg()
// grammar: any(...), all(...), not(...), bare identifiers and
// ident = "string". It mirrors the structure of
// cuelang.org/go/cue/parser's recursive-descent approach (scan a byte at a
// time, track a byte offset for error reporting) rather than a
// parser-combinator library, since no such library is exercised anywhere in
// this module's dependency surface.
type parser struct {
	input string
	pos   int
}

func parseImpl(input string) (targetEnum, error) {
	p := &parser{input: input}
	p.skipSpace()
	var result targetEnum
	var err error
	if p.hasPrefix("cfg") {
		result, err = p.parseCfg()
	} else {
		result, err = p.parseTriple()
	}
	if err != nil {
		return targetEnum{}, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return targetEnum{}, p.errorf("unexpected trailing input")
	}
	return result, nil
}

func (p *parser) errorf(format string, args ...interface{}) *ParseError {
	return &ParseError{Input: p.input, Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.input[p.pos:], s)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	b, ok := p.peek()
	if !ok || b != c {
		return p.errorf("expected %q", string(c))
	}
	p.pos++
	return nil
}

func (p *parser) parseTriple() (targetEnum, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if isAlnum(c) || c == '_' || c == '-' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return targetEnum{}, p.errorf("expected a target triple")
	}
	return targetEnum{kind: targetTriple, triple: p.input[start:p.pos]}, nil
}

func (p *parser) parseCfg() (targetEnum, error) {
	p.pos += len("cfg")
	if err := p.expect('('); err != nil {
		return targetEnum{}, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return targetEnum{}, err
	}
	if err := p.expect(')'); err != nil {
		return targetEnum{}, err
	}
	p.skipSpace()
	return targetEnum{kind: targetSpec, spec: e}, nil
}

func (p *parser) parseExpr() (expr, error) {
	p.skipSpace()
	switch {
	case p.hasIdentPrefix("any"):
		return p.parseJunction(exprAny, "any")
	case p.hasIdentPrefix("all"):
		return p.parseJunction(exprAll, "all")
	case p.hasIdentPrefix("not"):
		return p.parseNot()
	default:
		return p.parseTest()
	}
}

// hasIdentPrefix reports whether the input at the current position is the
// given keyword immediately followed by '(' (ignoring interleaved spaces),
// so that e.g. "anything" parses as an identifier rather than as "any".
func (p *parser) hasIdentPrefix(kw string) bool {
	if !p.hasPrefix(kw) {
		return false
	}
	rest := p.input[p.pos+len(kw):]
	rest = strings.TrimLeft(rest, " ")
	return strings.HasPrefix(rest, "(")
}

func (p *parser) parseJunction(kind exprKind, kw string) (expr, error) {
	p.pos += len(kw)
	p.skipSpace()
	if err := p.expect('('); err != nil {
		return expr{}, err
	}
	var children []expr
	for {
		p.skipSpace()
		if b, ok := p.peek(); ok && b == ')' {
			break
		}
		child, err := p.parseExpr()
		if err != nil {
			return expr{}, err
		}
		children = append(children, child)
		p.skipSpace()
		b, ok := p.peek()
		if !ok {
			return expr{}, p.errorf("unterminated %s(...)", kw)
		}
		if b == ',' {
			p.pos++
			continue
		}
		break
	}
	if err := p.expect(')'); err != nil {
		return expr{}, err
	}
	return expr{kind: kind, children: children}, nil
}

func (p *parser) parseNot() (expr, error) {
	p.pos += len("not")
	p.skipSpace()
	if err := p.expect('('); err != nil {
		return expr{}, err
	}
	inner, err := p.parseExpr()
	if err != nil {
		return expr{}, err
	}
	if err := p.expect(')'); err != nil {
		return expr{}, err
	}
	innerCopy := inner
	return expr{kind: exprNot, operand: &innerCopy}, nil
}

func (p *parser) parseTest() (expr, error) {
	id, err := p.parseIdent()
	if err != nil {
		return expr{}, err
	}
	save := p.pos
	p.skipSpace()
	if b, ok := p.peek(); ok && b == '=' {
		p.pos++
		p.skipSpace()
		val, err := p.parseValue()
		if err != nil {
			return expr{}, err
		}
		return expr{kind: exprTestEqual, ident: id, value: val}, nil
	}
	p.pos = save
	return expr{kind: exprTestSet, ident: id}, nil
}

func (p *parser) parseIdent() (atom, error) {
	start := p.pos
	if p.pos >= len(p.input) || !(isAlpha(p.input[p.pos]) || p.input[p.pos] == '_') {
		return atom{}, p.errorf("expected an identifier")
	}
	p.pos++
	for p.pos < len(p.input) && (isAlnum(p.input[p.pos]) || p.input[p.pos] == '_') {
		p.pos++
	}
	return atom{kind: atomIdent, text: p.input[start:p.pos]}, nil
}

func (p *parser) parseValue() (atom, error) {
	if err := p.expect('"'); err != nil {
		return atom{}, err
	}
	var sb strings.Builder
	for {
		b, ok := p.peek()
		if !ok {
			return atom{}, p.errorf("unterminated string literal")
		}
		if b == '"' {
			p.pos++
			break
		}
		if b == '\\' {
			p.pos++
			b2, ok := p.peek()
			if !ok {
				return atom{}, p.errorf("unterminated escape sequence")
			}
			switch b2 {
			case '\\', '"':
				sb.WriteByte(b2)
			default:
				return atom{}, p.errorf("invalid escape sequence \\%c", b2)
			}
			p.pos++
			continue
		}
		sb.WriteByte(b)
		p.pos++
	}
	return atom{kind: atomValue, text: sb.String()}, nil
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9')
}
