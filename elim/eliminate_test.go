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

package elim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ladr-go/ladr/subst"
	"github.com/ladr-go/ladr/term"
)

// TestEliminateResolvesAwayTargetPredicate builds {r(x) | p(x), -r(a) | q}
// and checks that eliminating r produces the resolvent p(a) | q without
// r appearing anywhere in the result (§4.8, §8 scenario S6).
func TestEliminateResolvesAwayTargetPredicate(t *testing.T) {
	tbl := term.NewTable()
	r := tbl.Intern("r", 1)
	p := tbl.Intern("p", 1)
	q := tbl.Intern("q", 0)
	a := tbl.Intern("a", 0)

	c1 := term.NewClause()
	c1.ID = 1
	c1.AppendLiteral(term.NewLiteral(true, term.MakeCompound(r, []*term.Term{term.MakeVariable(0)})))
	c1.AppendLiteral(term.NewLiteral(true, term.MakeCompound(p, []*term.Term{term.MakeVariable(0)})))

	c2 := term.NewClause()
	c2.ID = 2
	c2.AppendLiteral(term.NewLiteral(false, term.MakeCompound(r, []*term.Term{term.MakeCompound(a, nil)})))
	c2.AppendLiteral(term.NewLiteral(true, term.MakeCompound(q, nil)))

	clauses := []*term.Clause{c1, c2}
	require.True(t, Eligible(r, clauses))

	trail := subst.NewTrail()
	out, ok := Eliminate(r, clauses, trail)
	require.True(t, ok)
	require.Equal(t, 0, trail.Len())

	for _, c := range out {
		require.False(t, occursIn(r, c))
	}
	require.Len(t, out, 1)
	require.Equal(t, 2, out[0].NLits)
}

func TestEligibleRejectsMultipleOccurrences(t *testing.T) {
	tbl := term.NewTable()
	r := tbl.Intern("r", 1)
	a := tbl.Intern("a", 0)
	b := tbl.Intern("b", 0)

	c := term.NewClause()
	c.AppendLiteral(term.NewLiteral(true, term.MakeCompound(r, []*term.Term{term.MakeCompound(a, nil)})))
	c.AppendLiteral(term.NewLiteral(true, term.MakeCompound(r, []*term.Term{term.MakeCompound(b, nil)})))

	require.False(t, Eligible(r, []*term.Clause{c}))
}
