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

// Package reduce implements the SPEC_FULL.md-supplemented problem
// reducer: pushing a denied conjecture into negation normal form,
// miniscoping its quantifiers over conjuncts, and splitting the result
// into independent subproblems a prover can try one at a time (grounded
// on original_source's mace4.src/msearch.h outer per-subproblem driver).
package reduce

import "github.com/ladr-go/ladr/term"

// Formula is a pre-clausal logical formula: a term.Term whose root may be
// one of the reserved connective symbols ("and"/2, "or"/2, "not"/1,
// "all"/2, "exists"/2 — the two quantifier symbols take the bound
// variable as their first argument) in addition to ordinary atoms.
// Clausification itself is out of scope (§1); reduce only prepares a
// Formula for whatever clausifier runs afterward.
type Formula = *term.Term

const (
	andName    = "and"
	orName     = "or"
	notName    = "not"
	allName    = "all"
	existsName = "exists"
)

func isConn(f *term.Term, name string, arity int) bool {
	return f != nil && f.Kind == term.CompoundKind && f.Sym.Name == name && f.Sym.Arity == arity
}

// NNF pushes negation inward to the atoms (negation normal form): De
// Morgan's laws dualize and/or, and negation flips a quantifier's kind.
func NNF(tbl *term.Table, f Formula) Formula {
	return nnf(tbl, f, false)
}

func nnf(tbl *term.Table, f Formula, neg bool) Formula {
	switch {
	case isConn(f, notName, 1):
		return nnf(tbl, f.Args[0], !neg)
	case isConn(f, andName, 2), isConn(f, orName, 2):
		op := f.Sym.Name
		if neg {
			op = dualOf(op)
		}
		sym := tbl.Intern(op, 2)
		return term.MakeCompound(sym, []*term.Term{nnf(tbl, f.Args[0], neg), nnf(tbl, f.Args[1], neg)})
	case isConn(f, allName, 2), isConn(f, existsName, 2):
		op := f.Sym.Name
		if neg {
			op = dualOf(op)
		}
		sym := tbl.Intern(op, 2)
		return term.MakeCompound(sym, []*term.Term{f.Args[0], nnf(tbl, f.Args[1], neg)})
	default:
		if neg {
			return term.MakeCompound(tbl.Intern(notName, 1), []*term.Term{term.CopyTerm(f)})
		}
		return term.CopyTerm(f)
	}
}

func dualOf(op string) string {
	switch op {
	case andName:
		return orName
	case orName:
		return andName
	case allName:
		return existsName
	case existsName:
		return allName
	default:
		return op
	}
}

// containsVar reports whether variable v (by index) occurs anywhere in f.
func containsVar(v, f *term.Term) bool {
	found := false
	term.Walk(f, func(sub *term.Term, _ []int) {
		if sub.IsVariable() && v.IsVariable() && sub.Varnum == v.Varnum {
			found = true
		}
	})
	return found
}

// Miniscope pushes quantifiers in over conjuncts/disjuncts that do not
// need them: `all x (A(x) & B)` with x not free in B becomes `(all x A(x)) &
// B`, and the dual for exists/or, so Split's flattening yields
// subproblems carrying only the quantifiers they actually use.
func Miniscope(tbl *term.Table, f Formula) Formula {
	switch {
	case isConn(f, allName, 2):
		return miniscopeQuant(tbl, f, andName, allName)
	case isConn(f, existsName, 2):
		return miniscopeQuant(tbl, f, orName, existsName)
	case isConn(f, andName, 2):
		return term.MakeCompound(tbl.Intern(andName, 2), []*term.Term{Miniscope(tbl, f.Args[0]), Miniscope(tbl, f.Args[1])})
	case isConn(f, orName, 2):
		return term.MakeCompound(tbl.Intern(orName, 2), []*term.Term{Miniscope(tbl, f.Args[0]), Miniscope(tbl, f.Args[1])})
	default:
		return f
	}
}

func miniscopeQuant(tbl *term.Table, f Formula, splitOp, quantOp string) Formula {
	body := Miniscope(tbl, f.Args[1])
	v := f.Args[0]
	if isConn(body, splitOp, 2) {
		l, r := body.Args[0], body.Args[1]
		lHas, rHas := containsVar(v, l), containsVar(v, r)
		split := tbl.Intern(splitOp, 2)
		quant := tbl.Intern(quantOp, 2)
		switch {
		case lHas && !rHas:
			return term.MakeCompound(split, []*term.Term{term.MakeCompound(quant, []*term.Term{v, l}), r})
		case !lHas && rHas:
			return term.MakeCompound(split, []*term.Term{l, term.MakeCompound(quant, []*term.Term{v, r})})
		}
	}
	return term.MakeCompound(tbl.Intern(quantOp, 2), []*term.Term{v, body})
}

// Split pushes denied into NNF, miniscopes it, then flattens the
// outermost conjunction into independent subproblems: each conjunct
// becomes its own Formula, so the caller can try each in turn and stop at
// the first that yields a proof, mirroring original_source's
// per-subproblem retry loop.
func Split(tbl *term.Table, denied Formula) []Formula {
	f := Miniscope(tbl, NNF(tbl, denied))
	var out []Formula
	var flatten func(Formula)
	flatten = func(f Formula) {
		if isConn(f, andName, 2) {
			flatten(f.Args[0])
			flatten(f.Args[1])
			return
		}
		out = append(out, f)
	}
	flatten(f)
	return out
}
