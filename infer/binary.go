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

// Package infer implements the clausal inference rules: binary and
// hyper/UR resolution, paramodulation and factoring (§4.6). Every rule
// takes already-selected parent clauses and literal positions — finding
// those positions via the retrieval indices in package index is the
// caller's job (typically package prove's given-clause loop).
package infer

import (
	"github.com/ladr-go/ladr/subst"
	"github.com/ladr-go/ladr/term"
)

// BinaryPolicy gates which literals of a clause are eligible resolution
// positions (§4.6.1 "selected literal" policy): when Selected is true,
// only literals marked term.Literal.Selected may be resolved upon, for
// any clause that has at least one selected literal.
type BinaryPolicy struct {
	Selected bool
}

func eligible(pol BinaryPolicy, c *term.Clause, lit *term.Literal) bool {
	if !pol.Selected {
		return true
	}
	anySelected := false
	for cur := c.Lits; cur != nil; cur = cur.Next {
		if cur.Selected {
			anySelected = true
			break
		}
	}
	if !anySelected {
		return true
	}
	return lit.Selected
}

// flipEquality returns a new equality atom with its two arguments swapped,
// or nil if atom is not an equality atom.
func flipEquality(atom *term.Term) *term.Term {
	if atom == nil || atom.Kind != term.CompoundKind || !atom.Sym.Equality {
		return nil
	}
	return term.MakeCompound(atom.Sym, []*term.Term{atom.Args[1], atom.Args[0]})
}

// Resolve attempts binary resolution between literal l1 of c1 and literal
// l2 of c2 (§4.6.1): the literals must have opposite sign, and their atoms
// must unify directly or, when one side is an equality literal, unify
// after flipping that equality's arguments. A successful flip is recorded
// with a negative L2 in the resulting term.BinaryRes step, matching the
// convention documented on that type.
func Resolve(pol BinaryPolicy, c1 *term.Clause, l1 int, c2 *term.Clause, l2 int, trail *subst.Trail) (*term.Clause, bool) {
	lit1 := c1.IthLiteral(l1)
	lit2 := c2.IthLiteral(l2)
	if lit1 == nil || lit2 == nil || lit1.Sign == lit2.Sign {
		return nil, false
	}
	if !eligible(pol, c1, lit1) || !eligible(pol, c2, lit2) {
		return nil, false
	}

	env1 := subst.GetEnv(0)
	env2 := subst.GetEnv(1)
	mark := trail.Mark()

	flipped := false
	ok := subst.Unify(lit1.Atom, env1, lit2.Atom, env2, trail)
	if !ok {
		if alt := flipEquality(lit2.Atom); alt != nil {
			trail.UndoTo(mark)
			ok = subst.Unify(lit1.Atom, env1, alt, env2, trail)
			flipped = ok
		}
	}
	if !ok {
		trail.UndoTo(mark)
		return nil, false
	}

	resolvent := term.NewClause()
	appendOthers(resolvent, c1, l1, env1)
	appendOthers(resolvent, c2, l2, env2)

	recordedL2 := l2
	if flipped {
		recordedL2 = -l2
	}
	resolvent.Just = []term.JustStep{term.BinaryRes{P1: c1.ID, L1: l1, P2: c2.ID, L2: recordedL2}}
	term.InheritAttributes(c1, c2, resolvent)
	resolvent.UpwardClauseLinks()

	trail.UndoTo(mark)
	return resolvent, true
}

// appendOthers appends, onto dst, every literal of src except the one at
// skip (1-based), instantiated through env.
func appendOthers(dst *term.Clause, src *term.Clause, skip int, env *subst.Env) {
	idx := 0
	for cur := src.Lits; cur != nil; cur = cur.Next {
		idx++
		if idx == skip {
			continue
		}
		dst.AppendLiteral(term.NewLiteral(cur.Sign, subst.Apply(cur.Atom, env)))
	}
}

// ResolveXX resolves a negative equality literal t!=t (literal lit of c)
// against the built-in x=x axiom (§4.6.1, §8 scenario S2), dropping that
// literal from the result. The arguments of the equality must already be
// syntactically identical; callers normally reach this state via prior
// unification rather than calling it speculatively.
func ResolveXX(c *term.Clause, lit int) (*term.Clause, bool) {
	l := c.IthLiteral(lit)
	if l == nil || l.Sign || l.Atom.Kind != term.CompoundKind || !l.Atom.Sym.Equality {
		return nil, false
	}
	if !term.TermIdent(l.Atom.Args[0], l.Atom.Args[1]) {
		return nil, false
	}
	nc := term.NewClause()
	idx := 0
	for cur := c.Lits; cur != nil; cur = cur.Next {
		idx++
		if idx == lit {
			continue
		}
		nc.AppendLiteral(term.CopyLiteral(cur))
	}
	nc.Just = []term.JustStep{term.XXRes{ID: c.ID, Lit: lit}}
	nc.Attrs = append([]term.Attribute{}, c.Attrs...)
	nc.UpwardClauseLinks()
	return nc, true
}
