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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ladr-go/ladr/subst"
	"github.com/ladr-go/ladr/term"
)

func TestResolveBasicOppositeSign(t *testing.T) {
	tbl := term.NewTable()
	p := tbl.Intern("p", 1)
	a := tbl.Intern("a", 0)
	q := tbl.Intern("q", 1)

	c1 := term.NewClause()
	c1.ID = 1
	c1.AppendLiteral(term.NewLiteral(true, term.MakeCompound(p, []*term.Term{term.MakeVariable(0)})))
	c1.AppendLiteral(term.NewLiteral(true, term.MakeCompound(q, []*term.Term{term.MakeVariable(0)})))

	c2 := term.NewClause()
	c2.ID = 2
	c2.AppendLiteral(term.NewLiteral(false, term.MakeCompound(p, []*term.Term{term.MakeCompound(a, nil)})))

	trail := subst.NewTrail()
	resolvent, ok := Resolve(BinaryPolicy{}, c1, 1, c2, 1, trail)
	require.True(t, ok)
	require.Equal(t, 0, trail.Len())
	require.Equal(t, 1, resolvent.NLits)
	br, ok := resolvent.Just[0].(term.BinaryRes)
	require.True(t, ok)
	require.Equal(t, 1, br.P1)
	require.Equal(t, 2, br.P2)
}

func TestResolveFailsSameSign(t *testing.T) {
	tbl := term.NewTable()
	p := tbl.Intern("p", 0)
	c1 := term.NewClause()
	c1.AppendLiteral(term.NewLiteral(true, term.MakeCompound(p, nil)))
	c2 := term.NewClause()
	c2.AppendLiteral(term.NewLiteral(true, term.MakeCompound(p, nil)))

	trail := subst.NewTrail()
	_, ok := Resolve(BinaryPolicy{}, c1, 1, c2, 1, trail)
	require.False(t, ok)
}

func TestResolveFlipsEqualityLiteral(t *testing.T) {
	tbl := term.NewTable()
	eq, _ := tbl.Lookup("=", 2)
	a := tbl.Intern("a", 0)
	b := tbl.Intern("b", 0)

	c1 := term.NewClause()
	c1.ID = 1
	c1.AppendLiteral(term.NewLiteral(true, term.MakeCompound(eq, []*term.Term{term.MakeCompound(a, nil), term.MakeCompound(b, nil)})))

	c2 := term.NewClause()
	c2.ID = 2
	c2.AppendLiteral(term.NewLiteral(false, term.MakeCompound(eq, []*term.Term{term.MakeCompound(b, nil), term.MakeCompound(a, nil)})))

	trail := subst.NewTrail()
	resolvent, ok := Resolve(BinaryPolicy{}, c1, 1, c2, 1, trail)
	require.True(t, ok)
	br := resolvent.Just[0].(term.BinaryRes)
	require.Equal(t, -1, br.L2)
}

func TestResolveXXDropsReflexiveLiteral(t *testing.T) {
	tbl := term.NewTable()
	eq, _ := tbl.Lookup("=", 2)
	a := tbl.Intern("a", 0)
	p := tbl.Intern("p", 0)

	c := term.NewClause()
	c.ID = 7
	c.AppendLiteral(term.NewLiteral(true, term.MakeCompound(p, nil)))
	c.AppendLiteral(term.NewLiteral(false, term.MakeCompound(eq, []*term.Term{term.MakeCompound(a, nil), term.MakeCompound(a, nil)})))

	nc, ok := ResolveXX(c, 2)
	require.True(t, ok)
	require.Equal(t, 1, nc.NLits)
	require.Equal(t, term.XXRes{ID: 7, Lit: 2}, nc.Just[0])
}

func TestFactorMergesUnifiableLiterals(t *testing.T) {
	tbl := term.NewTable()
	p := tbl.Intern("p", 1)
	a := tbl.Intern("a", 0)

	c := term.NewClause()
	c.ID = 5
	c.AppendLiteral(term.NewLiteral(true, term.MakeCompound(p, []*term.Term{term.MakeVariable(0)})))
	c.AppendLiteral(term.NewLiteral(true, term.MakeCompound(p, []*term.Term{term.MakeCompound(a, nil)})))

	trail := subst.NewTrail()
	nc, ok := Factor(c, 1, 2, trail)
	require.True(t, ok)
	require.Equal(t, 1, nc.NLits)
	require.True(t, term.TermIdent(nc.Lits.Atom, term.MakeCompound(p, []*term.Term{term.MakeCompound(a, nil)})))
}

func TestMergeDropsSyntacticDuplicate(t *testing.T) {
	tbl := term.NewTable()
	p := tbl.Intern("p", 0)
	c := term.NewClause()
	c.ID = 9
	c.AppendLiteral(term.NewLiteral(true, term.MakeCompound(p, nil)))
	c.AppendLiteral(term.NewLiteral(true, term.MakeCompound(p, nil)))

	nc, ok := Merge(c)
	require.True(t, ok)
	require.Equal(t, 1, nc.NLits)
}

func TestParamodRewritesSubterm(t *testing.T) {
	tbl := term.NewTable()
	eq, _ := tbl.Lookup("=", 2)
	f := tbl.Intern("f", 1)
	a := tbl.Intern("a", 0)
	b := tbl.Intern("b", 0)
	p := tbl.Intern("p", 1)

	from := term.NewClause()
	from.ID = 1
	from.AppendLiteral(term.NewLiteral(true, term.MakeCompound(eq, []*term.Term{term.MakeCompound(a, nil), term.MakeCompound(b, nil)})))

	into := term.NewClause()
	into.ID = 2
	into.AppendLiteral(term.NewLiteral(true, term.MakeCompound(p, []*term.Term{term.MakeCompound(f, []*term.Term{term.MakeCompound(a, nil)})})))

	trail := subst.NewTrail()
	fromPos := term.Pos{Lit: 1, Side: 1}
	intoPos := term.Pos{Lit: 1, Path: []int{1, 1}}

	nc, ok := Paramod(ParamodPolicy{}, from, fromPos, into, intoPos, trail)
	require.True(t, ok)
	want := term.MakeCompound(p, []*term.Term{term.MakeCompound(f, []*term.Term{term.MakeCompound(b, nil)})})
	require.True(t, term.TermIdent(nc.Lits.Atom, want))
}

func TestClashHyperResolvesNucleusAgainstUnitSatellites(t *testing.T) {
	tbl := term.NewTable()
	p := tbl.Intern("p", 1)
	q := tbl.Intern("q", 1)
	r := tbl.Intern("r", 0)
	a := tbl.Intern("a", 0)

	nucleus := term.NewClause()
	nucleus.ID = 1
	nucleus.AppendLiteral(term.NewLiteral(false, term.MakeCompound(p, []*term.Term{term.MakeVariable(0)})))
	nucleus.AppendLiteral(term.NewLiteral(false, term.MakeCompound(q, []*term.Term{term.MakeVariable(0)})))
	nucleus.AppendLiteral(term.NewLiteral(true, term.MakeCompound(r, nil)))

	sat1 := term.NewClause()
	sat1.ID = 2
	sat1.AppendLiteral(term.NewLiteral(true, term.MakeCompound(p, []*term.Term{term.MakeCompound(a, nil)})))

	sat2 := term.NewClause()
	sat2.ID = 3
	sat2.AppendLiteral(term.NewLiteral(true, term.MakeCompound(q, []*term.Term{term.MakeCompound(a, nil)})))

	trail := subst.NewTrail()
	var results []ClashResult
	candidatesFor := func(litIdx int) []*term.Clause {
		switch litIdx {
		case 1:
			return []*term.Clause{sat1}
		case 2:
			return []*term.Clause{sat2}
		}
		return nil
	}
	Clash(nucleus, []int{1, 2}, candidatesFor, -1, trail, func(r ClashResult) {
		results = append(results, r)
	})

	require.Len(t, results, 1)
	require.Equal(t, 1, results[0].Clause.NLits)
	hr, ok := results[0].Clause.Just[0].(term.HyperRes)
	require.True(t, ok)
	require.Equal(t, 1, hr.Nucleus)
	require.Len(t, hr.Triples, 2)
	require.Equal(t, 0, trail.Len())
}
