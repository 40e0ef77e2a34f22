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

package weight

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ladr-go/ladr/term"
)

func TestTermWeightDefaultsSumArguments(t *testing.T) {
	tbl := term.NewTable()
	f := tbl.Intern("f", 2)
	a := tbl.Intern("a", 0)

	w := Compile(nil)
	tm := term.MakeCompound(f, []*term.Term{term.MakeCompound(a, nil), term.MakeVariable(0)})
	require.Equal(t, w.DefaultSymbol+w.ConstantWeight+w.VariableWeight, w.TermWeight(tm))
}

func TestTermWeightFirstMatchingRuleWins(t *testing.T) {
	tbl := term.NewTable()
	f := tbl.Intern("f", 1)
	a := tbl.Intern("a", 0)

	pattern := term.MakeCompound(f, []*term.Term{Wildcard})
	w := Compile([]Rule{{Pattern: pattern, Expr: Const(42)}})
	tm := term.MakeCompound(f, []*term.Term{term.MakeCompound(a, nil)})
	require.Equal(t, 42.0, w.TermWeight(tm))
}

func TestClauseWeightAddsOrPenalty(t *testing.T) {
	tbl := term.NewTable()
	p := tbl.Intern("p", 0)
	q := tbl.Intern("q", 0)

	c := term.NewClause()
	c.AppendLiteral(term.NewLiteral(true, term.MakeCompound(p, nil)))
	c.AppendLiteral(term.NewLiteral(true, term.MakeCompound(q, nil)))

	w := Compile(nil)
	w.OrWeight = 5
	require.Equal(t, w.ConstantWeight*2+5, w.ClauseWeight(c))
}

func TestNamedPredHorn(t *testing.T) {
	tbl := term.NewTable()
	p := tbl.Intern("p", 0)
	q := tbl.Intern("q", 0)

	c := term.NewClause()
	c.AppendLiteral(term.NewLiteral(true, term.MakeCompound(p, nil)))
	c.AppendLiteral(term.NewLiteral(false, term.MakeCompound(q, nil)))

	pred, ok := NamedPred("horn")
	require.True(t, ok)
	require.True(t, pred(c, EvalContext{}))
}

func TestCompareFieldLiterals(t *testing.T) {
	tbl := term.NewTable()
	p := tbl.Intern("p", 0)
	c := term.NewClause()
	c.AppendLiteral(term.NewLiteral(true, term.MakeCompound(p, nil)))

	pred := Compare(FieldLiterals, Eq, 1)
	require.True(t, pred(c, EvalContext{}))
}
