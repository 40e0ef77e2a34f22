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

package subst

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ladr-go/ladr/term"
)

func TestUnifySucceedsAndAppliesAgree(t *testing.T) {
	tbl := term.NewTable()
	f := tbl.Intern("f", 2)
	a := tbl.Intern("a", 0)

	// f(X, a) unified with f(a, Y)
	x := term.MakeVariable(0)
	y := term.MakeVariable(0)
	left := term.MakeCompound(f, []*term.Term{x, term.MakeCompound(a, nil)})
	right := term.MakeCompound(f, []*term.Term{term.MakeCompound(a, nil), y})

	envL := GetEnv(0)
	envR := GetEnv(1)
	trail := NewTrail()

	before0 := *envL
	before1 := *envR

	ok := Unify(left, envL, right, envR, trail)
	require.True(t, ok)
	require.True(t, term.TermIdent(Apply(left, envL), Apply(right, envR)))

	trail.UndoSubst()
	require.Equal(t, before0, *envL)
	require.Equal(t, before1, *envR)
}

func TestUnifyOccurCheckFails(t *testing.T) {
	tbl := term.NewTable()
	f := tbl.Intern("f", 1)
	x := term.MakeVariable(0)
	fx := term.MakeCompound(f, []*term.Term{term.MakeVariable(0)})

	env := GetEnv(0)
	trail := NewTrail()
	require.False(t, Unify(x, env, fx, env, trail))
}

func TestUnifyClash(t *testing.T) {
	tbl := term.NewTable()
	a := tbl.Intern("a", 0)
	b := tbl.Intern("b", 0)
	env := GetEnv(0)
	trail := NewTrail()
	require.False(t, Unify(term.MakeCompound(a, nil), env, term.MakeCompound(b, nil), env, trail))
}

func TestMatchOnlyBindsPatternVars(t *testing.T) {
	tbl := term.NewTable()
	f := tbl.Intern("f", 2)
	a := tbl.Intern("a", 0)
	b := tbl.Intern("b", 0)

	pat := term.MakeCompound(f, []*term.Term{term.MakeVariable(0), term.MakeCompound(a, nil)})
	t2 := term.MakeCompound(f, []*term.Term{term.MakeCompound(b, nil), term.MakeCompound(a, nil)})

	patEnv := GetEnv(0)
	tEnv := GetEnv(1)
	trail := NewTrail()

	ok := Match(pat, patEnv, t2, tEnv, trail)
	require.True(t, ok)
	require.True(t, term.TermIdent(Apply(pat, patEnv), t2))

	// No binding was made in tEnv.
	for _, slot := range tEnv.Bound {
		require.Nil(t, slot)
	}
}

func TestMatchFailsWhenTermHasExtraVariable(t *testing.T) {
	tbl := term.NewTable()
	f := tbl.Intern("f", 1)
	a := tbl.Intern("a", 0)
	pat := term.MakeCompound(f, []*term.Term{term.MakeCompound(a, nil)})
	t2 := term.MakeCompound(f, []*term.Term{term.MakeVariable(0)})

	trail := NewTrail()
	require.False(t, Match(pat, GetEnv(0), t2, GetEnv(1), trail))
}

func TestApplySubstitute2RewritesOnlyAtPath(t *testing.T) {
	tbl := term.NewTable()
	f := tbl.Intern("f", 1)
	g := tbl.Intern("g", 1)
	a := tbl.Intern("a", 0)
	b := tbl.Intern("b", 0)

	// atom = f(g(a)), replace at path [1,1] (the "a") with b.
	atom := term.MakeCompound(f, []*term.Term{term.MakeCompound(g, []*term.Term{term.MakeCompound(a, nil)})})
	beta := term.MakeCompound(b, nil)

	into := GetEnv(0)
	from := GetEnv(1)
	out := ApplySubstitute2(atom, []int{1, 1}, beta, from, into)

	want := term.MakeCompound(f, []*term.Term{term.MakeCompound(g, []*term.Term{term.MakeCompound(b, nil)})})
	require.True(t, term.TermIdent(want, out))
}
