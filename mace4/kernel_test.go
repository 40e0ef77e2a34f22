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

package mace4

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ladr-go/ladr/mace4/cell"
	"github.com/ladr-go/ladr/mace4/search"
	"github.com/ladr-go/ladr/term"
)

func TestKernelAssignCellTracksUndo(t *testing.T) {
	tbl := term.NewTable()
	r := tbl.Intern("r", 1)
	k := NewKernel(tbl, 2, []cell.SymbolDesc{{Arity: 1, NValues: 2}}, []*term.Symbol{r}, nil)

	mark := k.Mark()
	require.True(t, k.AssignCell(0, 1))
	require.True(t, k.cells[0].Assigned)

	k.UndoTo(mark)
	require.False(t, k.cells[0].Assigned)
	require.True(t, k.cells[0].IsPossible(0))
	require.True(t, k.cells[0].IsPossible(1))
}

func TestKernelGroundsUnitClause(t *testing.T) {
	tbl := term.NewTable()
	r := tbl.Intern("r", 1)
	k := NewKernel(tbl, 2, []cell.SymbolDesc{{Arity: 1, NValues: 2}}, []*term.Symbol{r}, nil)

	c := term.NewClause()
	c.AppendLiteral(term.NewLiteral(true, term.MakeCompound(r, []*term.Term{term.MakeVariable(0)})))

	mcs, ok := k.Ground([]*term.Clause{c})
	require.True(t, ok)
	require.Len(t, mcs, 2)
}

func TestKernelSatisfiesSearchModelInterface(t *testing.T) {
	tbl := term.NewTable()
	r := tbl.Intern("r", 1)
	k := NewKernel(tbl, 2, []cell.SymbolDesc{{Arity: 1, NValues: 2}}, []*term.Symbol{r}, nil)
	var _ search.Model = k
}
