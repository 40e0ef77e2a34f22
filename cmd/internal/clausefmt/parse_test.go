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

package clausefmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ladr-go/ladr/term"
)

func TestParseClausesReadsLiteralsAndSigns(t *testing.T) {
	tbl := term.NewTable()
	clauses, err := ParseClauses(tbl, strings.NewReader("p(a,b) | -q(X).\n-p(Y) | p(g(Y)).\n"))
	require.NoError(t, err)
	require.Len(t, clauses, 2)

	require.Equal(t, 2, clauses[0].NLits)
	lit1 := clauses[0].IthLiteral(1)
	require.True(t, lit1.Sign)
	require.Equal(t, "p", lit1.Atom.Sym.Name)
	lit2 := clauses[0].IthLiteral(2)
	require.False(t, lit2.Sign)
	require.Equal(t, "q", lit2.Atom.Sym.Name)
	require.True(t, lit2.Atom.Args[0].IsVariable())
}

func TestParseClausesSharesVariablesWithinOneClauseOnly(t *testing.T) {
	tbl := term.NewTable()
	clauses, err := ParseClauses(tbl, strings.NewReader("p(X,X).\np(X).\n"))
	require.NoError(t, err)
	require.Len(t, clauses, 2)

	first := clauses[0].IthLiteral(1).Atom
	require.Equal(t, first.Args[0].Varnum, first.Args[1].Varnum)

	second := clauses[1].IthLiteral(1).Atom
	require.Equal(t, 1, second.Args[0].Varnum)
}

func TestParseClausesBuildsEqualityLiterals(t *testing.T) {
	tbl := term.NewTable()
	clauses, err := ParseClauses(tbl, strings.NewReader("f(X) = a.\n"))
	require.NoError(t, err)
	require.Len(t, clauses, 1)

	lit := clauses[0].IthLiteral(1)
	require.True(t, lit.IsPositiveEquality())
	require.Equal(t, "=", lit.Atom.Sym.Name)
	require.Equal(t, 2, lit.Atom.Sym.Arity)
}

func TestParseClausesRejectsMalformedInput(t *testing.T) {
	tbl := term.NewTable()
	_, err := ParseClauses(tbl, strings.NewReader("p(a"))
	require.Error(t, err)
}

func TestParseClausesSkipsComments(t *testing.T) {
	tbl := term.NewTable()
	clauses, err := ParseClauses(tbl, strings.NewReader("% a comment\np(a). % trailing\n"))
	require.NoError(t, err)
	require.Len(t, clauses, 1)
}
