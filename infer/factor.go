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

// Factor attempts to unify literals l1 and l2 of c (which must have the
// same sign) and, on success, returns a copy of c with l2 dropped and
// every surviving literal instantiated under the unifier (§4.6.4).
func Factor(c *term.Clause, l1, l2 int, trail *subst.Trail) (*term.Clause, bool) {
	lit1 := c.IthLiteral(l1)
	lit2 := c.IthLiteral(l2)
	if lit1 == nil || lit2 == nil || l1 == l2 || lit1.Sign != lit2.Sign {
		return nil, false
	}

	env := subst.GetEnv(0)
	mark := trail.Mark()
	if !subst.Unify(lit1.Atom, env, lit2.Atom, env, trail) {
		trail.UndoTo(mark)
		return nil, false
	}

	nc := term.NewClause()
	idx := 0
	for cur := c.Lits; cur != nil; cur = cur.Next {
		idx++
		if idx == l2 {
			continue
		}
		nc.AppendLiteral(term.NewLiteral(cur.Sign, subst.Apply(cur.Atom, env)))
	}
	nc.Just = []term.JustStep{term.Factor{ID: c.ID, L1: l1, L2: l2}}
	nc.Attrs = append([]term.Attribute{}, c.Attrs...)
	nc.UpwardClauseLinks()

	trail.UndoTo(mark)
	return nc, true
}

// Merge drops every literal of c that is a syntactic duplicate of an
// earlier literal (same sign, identical atom), recording a term.Copy step
// with one term.ModMerge modifier per removed duplicate (§3 "Copy with
// implicit modifiers"). It reports false, leaving c untouched by the
// caller's convention, when there is nothing to merge.
func Merge(c *term.Clause) (*term.Clause, bool) {
	lits := c.Literals()
	keep := make([]bool, len(lits))
	var mods []term.Mod
	for i := range lits {
		keep[i] = true
		for j := 0; j < i; j++ {
			if keep[j] && lits[i].Sign == lits[j].Sign && term.TermIdent(lits[i].Atom, lits[j].Atom) {
				keep[i] = false
				mods = append(mods, term.Mod{Kind: term.ModMerge, Lit: i + 1})
				break
			}
		}
	}
	if len(mods) == 0 {
		return c, false
	}

	nc := term.NewClause()
	for i, lit := range lits {
		if keep[i] {
			nc.AppendLiteral(term.CopyLiteral(lit))
		}
	}
	nc.Just = []term.JustStep{term.Copy{Parent: c.ID, Mods: mods}}
	nc.Attrs = append([]term.Attribute{}, c.Attrs...)
	nc.UpwardClauseLinks()
	return nc, true
}
