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

package justify

import (
	"github.com/ladr-go/ladr/subst"
	"github.com/ladr-go/ladr/term"
)

// replayBinary re-derives the literal content of a binary resolution
// between literal i of a and literal j of b (both 1-based), for the sole
// purpose of reconstructing intermediate clause content while atomizing a
// HyperRes/URRes chain into a sequence of Ivy binary-res steps. It assumes
// the resolution is valid (the caller only invokes it on steps a real
// search already performed) and therefore does not itself re-check sign or
// report unification failure as anything other than an empty extra
// clause.
func replayBinary(a, b *term.Clause, i, j int) *term.Clause {
	envA := subst.GetEnv(0)
	envB := subst.GetEnv(1)
	trail := subst.NewTrail()
	defer trail.UndoSubst()

	li := a.IthLiteral(i)
	lj := b.IthLiteral(j)
	if li == nil || lj == nil {
		return term.CopyClause(a)
	}
	subst.Unify(li.Atom, envA, lj.Atom, envB, trail)

	out := term.NewClause()
	n := 1
	for cur := a.Lits; cur != nil; cur = cur.Next {
		if n != i {
			out.AppendLiteral(term.NewLiteral(cur.Sign, subst.Apply(cur.Atom, envA)))
		}
		n++
	}
	n = 1
	for cur := b.Lits; cur != nil; cur = cur.Next {
		if n != j {
			out.AppendLiteral(term.NewLiteral(cur.Sign, subst.Apply(cur.Atom, envB)))
		}
		n++
	}
	_ = out.RenumberVariables(term.MaxVars)
	return out
}
