// Copyright 2024 The ladr Authors.
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

// Package clausefmt reads clauses in a small prefix-notation text format:
//
//	p(a,b) | -q(X) | X = f(a).
//	-p(Y) | p(g(Y)).
//
// This is deliberately not the full mixfix, operator-precedence concrete
// syntax a real Prover9/Mace4 input file uses: §1 of the specification
// places clausification and concrete-syntax parsing out of scope ("we
// assume formulas have been reduced to clausal form by an upstream
// collaborator"). The cmd/prover9 and cmd/mace4 binaries still need some
// way to read a clause set from a file to be runnable at all, so this
// package stands in for that upstream collaborator with the narrowest
// reader that can name clauses, literals, variables and compound terms.
package clausefmt

import (
	"bufio"
	"fmt"
	"io"
	"unicode"

	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/ladr-go/ladr/term"
)

var (
	// ErrSyntax is raised for any lexical or grammatical violation, with
	// the byte offset at which it occurred.
	ErrSyntax = errors.NewKind("clausefmt: syntax error at offset %d: %s")
)

type tokKind int

const (
	tokIdent tokKind = iota
	tokLParen
	tokRParen
	tokComma
	tokBar
	tokMinus
	tokEq
	tokDot
	tokEOF
)

type token struct {
	kind tokKind
	text string
	pos  int
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

// lex scans r into a flat token list, skipping whitespace and '%'-to-
// end-of-line comments.
func lex(r io.Reader) ([]token, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	runes := []rune(string(data))
	var toks []token
	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '%':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ",", i})
			i++
		case c == '|':
			toks = append(toks, token{tokBar, "|", i})
			i++
		case c == '-':
			toks = append(toks, token{tokMinus, "-", i})
			i++
		case c == '=':
			toks = append(toks, token{tokEq, "=", i})
			i++
		case c == '.':
			toks = append(toks, token{tokDot, ".", i})
			i++
		case isIdentStart(c):
			start := i
			for i < len(runes) && isIdentCont(runes[i]) {
				i++
			}
			toks = append(toks, token{tokIdent, string(runes[start:i]), start})
		default:
			return nil, ErrSyntax.New(i, fmt.Sprintf("unexpected character %q", c))
		}
	}
	toks = append(toks, token{tokEOF, "", len(runes)})
	return toks, nil
}

// parser holds one clause-set parse's state: the token stream and the
// per-clause variable name -> index map (reset at the start of every
// clause, per §4.1's per-clause variable numbering).
type parser struct {
	tbl  *term.Table
	toks []token
	pos  int
	vars map[string]int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(k tokKind, what string) (token, error) {
	t := p.peek()
	if t.kind != k {
		return t, ErrSyntax.New(t.pos, fmt.Sprintf("expected %s, got %q", what, t.text))
	}
	return p.next(), nil
}

// ParseClauses reads every clause ('|'-separated literals, '.'-terminated)
// in r.
func ParseClauses(tbl *term.Table, r io.Reader) ([]*term.Clause, error) {
	toks, err := lex(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	p := &parser{tbl: tbl, toks: toks}
	var out []*term.Clause
	for p.peek().kind != tokEOF {
		c, err := p.parseClause()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (p *parser) parseClause() (*term.Clause, error) {
	p.vars = make(map[string]int)
	c := term.NewClause()
	for {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		c.AppendLiteral(lit)
		if p.peek().kind == tokBar {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(tokDot, "'.'"); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *parser) parseLiteral() (*term.Literal, error) {
	sign := true
	if p.peek().kind == tokMinus {
		p.next()
		sign = false
	}
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.peek().kind == tokEq {
		p.next()
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		eqSym, _ := p.tbl.Lookup("=", 2)
		if eqSym == nil {
			eqSym = p.tbl.Intern("=", 2)
		}
		t = term.MakeCompound(eqSym, []*term.Term{t, rhs})
	}
	return term.NewLiteral(sign, t), nil
}

// parseTerm reads one compound term or variable. An identifier is a
// variable exactly when it starts with an uppercase letter or '_' and is
// not immediately followed by '(' — matching the source language's
// convention that capitalized, non-applied identifiers name variables.
func (p *parser) parseTerm() (*term.Term, error) {
	id, err := p.expect(tokIdent, "identifier")
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokLParen {
		if isVariableName(id.text) {
			idx, ok := p.vars[id.text]
			if !ok {
				idx = len(p.vars) + 1
				p.vars[id.text] = idx
			}
			return term.MakeVariable(idx), nil
		}
		sym := p.tbl.Intern(id.text, 0)
		return term.MakeCompound(sym, nil), nil
	}
	p.next() // consume '('
	var args []*term.Term
	for {
		arg, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peek().kind == tokComma {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	sym := p.tbl.Intern(id.text, len(args))
	return term.MakeCompound(sym, args), nil
}

func isVariableName(name string) bool {
	r := []rune(name)[0]
	return unicode.IsUpper(r) || r == '_'
}
