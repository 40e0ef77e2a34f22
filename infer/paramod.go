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

package infer

import (
	"github.com/ladr-go/ladr/subst"
	"github.com/ladr-go/ladr/term"
)

// ParamodPolicy controls which paramodulation variants are permitted
// (§4.6.3). Basic restricts rewriting to positions not already flagged
// BasicFlag (nonbasic), the standard restriction that keeps paramodulation
// from rewriting into a subterm a previous substitution introduced.
// IntoVars/FromVars allow paramodulating into, or from, a bare variable
// position, which most strategies forbid since it multiplies the search
// space without adding inferential power.
type ParamodPolicy struct {
	Basic     bool
	BasicFlag term.FlagID
	IntoVars  bool
	FromVars  bool
}

// Paramod attempts one paramodulation inference: rewriting the subterm at
// intoPos.Path within literal intoPos.Lit of intoClause, using the
// equation carried by literal fromPos.Lit of fromClause (read left to
// right when fromPos.Side == 1, right to left when Side == 2). fromClause's
// literal must be a positive equality literal.
func Paramod(pol ParamodPolicy, fromClause *term.Clause, fromPos term.Pos, intoClause *term.Clause, intoPos term.Pos, trail *subst.Trail) (*term.Clause, bool) {
	fromLit := fromClause.IthLiteral(fromPos.Lit)
	intoLit := intoClause.IthLiteral(intoPos.Lit)
	if fromLit == nil || intoLit == nil || !fromLit.Sign {
		return nil, false
	}
	if fromLit.Atom.Kind != term.CompoundKind || !fromLit.Atom.Sym.Equality {
		return nil, false
	}

	alpha, beta := fromLit.Atom.Args[0], fromLit.Atom.Args[1]
	if fromPos.Side == 2 {
		alpha, beta = beta, alpha
	}

	target, ok := term.TermAtPos(intoLit.Atom, intoPos.Path)
	if !ok {
		return nil, false
	}
	if target.IsVariable() && !pol.IntoVars {
		return nil, false
	}
	if alpha.IsVariable() && !pol.FromVars {
		return nil, false
	}
	if pol.Basic && target.TestFlag(pol.BasicFlag) {
		return nil, false
	}

	fromEnv := subst.GetEnv(0)
	intoEnv := subst.GetEnv(1)
	mark := trail.Mark()

	if !subst.Unify(alpha, fromEnv, target, intoEnv, trail) {
		trail.UndoTo(mark)
		return nil, false
	}

	newAtom := subst.ApplySubstitute2(intoLit.Atom, intoPos.Path, beta, fromEnv, intoEnv)
	if pol.Basic {
		newAtom.SetFlag(pol.BasicFlag)
	}

	resolvent := term.NewClause()
	idx := 0
	for cur := intoClause.Lits; cur != nil; cur = cur.Next {
		idx++
		if idx == intoPos.Lit {
			resolvent.AppendLiteral(term.NewLiteral(intoLit.Sign, newAtom))
			continue
		}
		resolvent.AppendLiteral(term.NewLiteral(cur.Sign, subst.Apply(cur.Atom, intoEnv)))
	}

	resolvent.Just = []term.JustStep{term.Paramod{
		FromID: fromClause.ID, FromPos: fromPos,
		IntoID: intoClause.ID, IntoPos: intoPos,
	}}
	term.InheritAttributes(fromClause, intoClause, resolvent)
	resolvent.UpwardClauseLinks()

	trail.UndoTo(mark)
	return resolvent, true
}
