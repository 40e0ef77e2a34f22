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

package term

import "testing"

import "github.com/stretchr/testify/require"

func TestStructHashAgreesWithTermIdent(t *testing.T) {
	tbl := NewTable()
	f := tbl.Intern("f", 1)
	a := tbl.Intern("a", 0)

	t1 := MakeCompound(f, []*Term{MakeCompound(a, nil)})
	t2 := MakeCompound(f, []*Term{MakeCompound(a, nil)})
	require.True(t, TermIdent(t1, t2))
	require.Equal(t, StructHash(t1), StructHash(t2))
}

func TestStructHashDiffersOnDifferentShape(t *testing.T) {
	tbl := NewTable()
	f := tbl.Intern("f", 1)
	a := tbl.Intern("a", 0)
	b := tbl.Intern("b", 0)

	t1 := MakeCompound(f, []*Term{MakeCompound(a, nil)})
	t2 := MakeCompound(f, []*Term{MakeCompound(b, nil)})
	require.False(t, TermIdent(t1, t2))
	require.NotEqual(t, StructHash(t1), StructHash(t2))
}

func TestClauseStructHashDetectsDuplicateDerivation(t *testing.T) {
	tbl := NewTable()
	p := tbl.Intern("p", 1)
	a := tbl.Intern("a", 0)

	c1 := NewClause()
	c1.AppendLiteral(NewLiteral(true, MakeCompound(p, []*Term{MakeCompound(a, nil)})))

	c2 := NewClause()
	c2.AppendLiteral(NewLiteral(true, MakeCompound(p, []*Term{MakeCompound(a, nil)})))

	require.Equal(t, ClauseStructHash(c1), ClauseStructHash(c2))

	c3 := NewClause()
	c3.AppendLiteral(NewLiteral(false, MakeCompound(p, []*Term{MakeCompound(a, nil)})))
	require.NotEqual(t, ClauseStructHash(c1), ClauseStructHash(c3))
}
