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

// Package ground implements Mace4's grounding of a clause set over a
// finite domain (§4.10): each clause is instantiated over every
// assignment of its variables to domain elements, literals that already
// evaluate under partial cell assignments are folded away, and ground
// instances that become tautologies or the empty clause are reported to
// the caller instead of kept.
package ground

import (
	"github.com/ladr-go/ladr/mace4/arith"
	"github.com/ladr-go/ladr/mace4/cell"
	"github.com/ladr-go/ladr/term"
)

// Mclause is one ground instance of a clause, tracked for Mace4's
// propagation loop: Active counts literals not yet reduced away, and once
// it drops to 1 the sole survivor can be forced (§4.10).
type Mclause struct {
	Lits      []*term.Literal
	Active    int
	Satisfied bool
	Source    *term.Clause
}

// Model is everything grounding needs from the cell array: how a
// relation/function symbol maps to a symbol index, how (symIdx, args)
// maps to a Cell, the domain size, and the two-way mapping between domain
// elements and their interned "constant" symbols.
type Model interface {
	CellFor(symIdx int, args []int) *cell.Cell
	SymbolIndex(sym *term.Symbol) (int, bool)
	DomainSize() int
	DomainConstant(v int) *term.Symbol
	ConstantValue(sym *term.Symbol) (int, bool)
}

var arithBinary = map[string]arith.Op{
	"+": arith.Add, "-": arith.Sub, "*": arith.Mul, "/": arith.Div,
	"mod": arith.Mod, "min": arith.Min, "max": arith.Max,
}

var arithRel = map[string]arith.Op{
	"<": arith.Lt, "<=": arith.Le, ">": arith.Gt, ">=": arith.Ge,
}

var arithUnary = map[string]arith.Op{"-": arith.Neg, "abs": arith.Abs}

func greatestVarInClause(c *term.Clause) int {
	max := -1
	for cur := c.Lits; cur != nil; cur = cur.Next {
		if v := term.GreatestVariable(cur.Atom); v > max {
			max = v
		}
	}
	return max
}

func domainSubst(t *term.Term, assignment []int, m Model) *term.Term {
	if t == nil {
		return nil
	}
	if t.IsVariable() {
		return term.MakeCompound(m.DomainConstant(assignment[t.Varnum]), nil)
	}
	kids := make([]*term.Term, len(t.Args))
	for i, a := range t.Args {
		kids[i] = domainSubst(a, assignment, m)
	}
	return term.MakeCompound(t.Sym, kids)
}

func foldArgs(args []*term.Term, m Model) ([]int, bool) {
	out := make([]int, len(args))
	for i, a := range args {
		v, ok := FoldGround(a, m)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// FoldGround evaluates a ground term (no variables) to a domain element
// when possible: domain constants fold directly, arithmetic compounds
// fold via package arith, and ordinary function applications fold through
// an already-assigned Cell. It returns false when the value is not yet
// determined (an unassigned cell) or not evaluable (e.g. division by
// zero).
func FoldGround(t *term.Term, m Model) (int, bool) {
	if t == nil || t.IsVariable() {
		return 0, false
	}
	if t.IsConstant() {
		if v, ok := m.ConstantValue(t.Sym); ok {
			return v, true
		}
	}
	if op, ok := arithBinary[t.Sym.Name]; ok && t.Sym.Arity == 2 {
		a, aok := FoldGround(t.Args[0], m)
		b, bok := FoldGround(t.Args[1], m)
		if !aok || !bok {
			return 0, false
		}
		v, err := arith.Eval(op, a, b)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	if op, ok := arithUnary[t.Sym.Name]; ok && t.Sym.Arity == 1 {
		a, aok := FoldGround(t.Args[0], m)
		if !aok {
			return 0, false
		}
		v, err := arith.EvalUnary(op, a)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	symIdx, ok := m.SymbolIndex(t.Sym)
	if !ok {
		return 0, false
	}
	args, ok := foldArgs(t.Args, m)
	if !ok {
		return 0, false
	}
	c := m.CellFor(symIdx, args)
	if c == nil || !c.Assigned {
		return 0, false
	}
	return c.Value, true
}

// ReduceAtom evaluates a ground atom (no variables) to a truth value when
// possible: equality atoms compare both sides' FoldGround value,
// arithmetic relations evaluate via package arith, and ordinary relation
// atoms read an already-assigned Cell.
func ReduceAtom(atom *term.Term, m Model) (truth, known bool) {
	if atom == nil || atom.IsVariable() {
		return false, false
	}
	if atom.Sym.Equality {
		l, lok := FoldGround(atom.Args[0], m)
		r, rok := FoldGround(atom.Args[1], m)
		if lok && rok {
			return l == r, true
		}
		return false, false
	}
	if op, ok := arithRel[atom.Sym.Name]; ok && atom.Sym.Arity == 2 {
		a, aok := FoldGround(atom.Args[0], m)
		b, bok := FoldGround(atom.Args[1], m)
		if !aok || !bok {
			return false, false
		}
		v, err := arith.Eval(op, a, b)
		if err != nil {
			return false, false
		}
		return v != 0, true
	}
	symIdx, ok := m.SymbolIndex(atom.Sym)
	if !ok {
		return false, false
	}
	args, ok := foldArgs(atom.Args, m)
	if !ok {
		return false, false
	}
	c := m.CellFor(symIdx, args)
	if c == nil || !c.Assigned {
		return false, false
	}
	return c.Value != 0, true
}

// groundOne instantiates c under one variable assignment, folding literals
// that already evaluate and dropping duplicates. keep reports whether the
// resulting Mclause should be kept at all (false when the instance is a
// tautology); contradiction reports that every literal reduced away,
// leaving the empty clause.
func groundOne(c *term.Clause, assignment []int, m Model) (mc *Mclause, keep bool, contradiction bool) {
	var lits []*term.Literal
	for cur := c.Lits; cur != nil; cur = cur.Next {
		groundAtom := domainSubst(cur.Atom, assignment, m)
		if truth, known := ReduceAtom(groundAtom, m); known {
			if truth == cur.Sign {
				return nil, false, false // literal is true: whole clause is a tautology
			}
			continue // literal is false: drop it
		}
		lit := term.NewLiteral(cur.Sign, groundAtom)
		dup := false
		for _, existing := range lits {
			if existing.Sign == lit.Sign && term.TermIdent(existing.Atom, lit.Atom) {
				dup = true
				break
			}
		}
		if !dup {
			lits = append(lits, lit)
		}
	}
	if len(lits) == 0 {
		return nil, false, true
	}
	return &Mclause{Lits: lits, Active: len(lits), Source: c}, true, false
}

// Instantiate grounds c over every assignment of its variables to domain
// elements 0..n-1 (§4.10). It returns ok=false the moment any ground
// instance reduces to the empty clause, since that proves the domain size
// admits no model satisfying c.
func Instantiate(c *term.Clause, m Model) (out []*Mclause, ok bool) {
	nvars := greatestVarInClause(c) + 1
	n := m.DomainSize()
	if nvars == 0 {
		mc, keep, contradiction := groundOne(c, nil, m)
		if contradiction {
			return nil, false
		}
		if keep {
			out = append(out, mc)
		}
		return out, true
	}

	assignment := make([]int, nvars)
	var rec func(i int) bool
	rec = func(i int) bool {
		if i == nvars {
			mc, keep, contradiction := groundOne(c, assignment, m)
			if contradiction {
				return false
			}
			if keep {
				out = append(out, mc)
			}
			return true
		}
		for v := 0; v < n; v++ {
			assignment[i] = v
			if !rec(i + 1) {
				return false
			}
		}
		return true
	}
	if !rec(0) {
		return nil, false
	}
	return out, true
}
