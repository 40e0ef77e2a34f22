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

package ground

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ladr-go/ladr/mace4/cell"
	"github.com/ladr-go/ladr/term"
)

// fakeModel is a minimal in-memory Model over domain 0..n-1 with one
// binary relation symbol, used to exercise Instantiate/ReduceAtom without
// the full Kernel.
type fakeModel struct {
	n       int
	sym     *term.Symbol
	symIdx  int
	cells   map[int]*cell.Cell
	enc     *cell.Encoding
	consts  map[*term.Symbol]int
	byValue map[int]*term.Symbol
}

func newFakeModel(tbl *term.Table, n int, sym *term.Symbol) *fakeModel {
	enc := cell.NewEncoding(n, []cell.SymbolDesc{{Arity: sym.Arity, NValues: 2}})
	m := &fakeModel{n: n, sym: sym, symIdx: 0, cells: make(map[int]*cell.Cell), enc: enc,
		consts: make(map[*term.Symbol]int), byValue: make(map[int]*term.Symbol)}
	for v := 0; v < n; v++ {
		csym := tbl.Intern(domName(v), 0)
		m.consts[csym] = v
		m.byValue[v] = csym
	}
	start, count := enc.Range(0)
	for id := start; id < start+count; id++ {
		args := enc.Decode(0, id)
		m.cells[id] = cell.NewCell(id, 0, args, 2)
	}
	return m
}

func domName(v int) string {
	return string(rune('A' + v))
}

func (m *fakeModel) CellFor(symIdx int, args []int) *cell.Cell {
	return m.cells[m.enc.ID(symIdx, args)]
}
func (m *fakeModel) SymbolIndex(sym *term.Symbol) (int, bool) {
	if sym == m.sym {
		return 0, true
	}
	return 0, false
}
func (m *fakeModel) DomainSize() int                     { return m.n }
func (m *fakeModel) DomainConstant(v int) *term.Symbol   { return m.byValue[v] }
func (m *fakeModel) ConstantValue(s *term.Symbol) (int, bool) {
	v, ok := m.consts[s]
	return v, ok
}

func TestInstantiateGroundsOverDomain(t *testing.T) {
	tbl := term.NewTable()
	r := tbl.Intern("r", 2)
	m := newFakeModel(tbl, 2, r)

	c := term.NewClause()
	c.AppendLiteral(term.NewLiteral(true, term.MakeCompound(r, []*term.Term{term.MakeVariable(0), term.MakeVariable(1)})))

	out, ok := Instantiate(c, m)
	require.True(t, ok)
	require.Len(t, out, 4) // 2^2 assignments, none foldable yet
	for _, mc := range out {
		require.Equal(t, 1, mc.Active)
	}
}

func TestInstantiateDropsTautologyWhenCellAssigned(t *testing.T) {
	tbl := term.NewTable()
	r := tbl.Intern("r", 1)
	m := newFakeModel(tbl, 2, r)
	m.cells[m.enc.ID(0, []int{0})].Assign(1)

	c := term.NewClause()
	c.AppendLiteral(term.NewLiteral(true, term.MakeCompound(r, []*term.Term{term.MakeVariable(0)})))

	out, ok := Instantiate(c, m)
	require.True(t, ok)
	// x=0 instance is already true (tautology, dropped); x=1 instance kept unresolved.
	require.Len(t, out, 1)
}

func TestInstantiateReportsContradictionAsUnsat(t *testing.T) {
	tbl := term.NewTable()
	r := tbl.Intern("r", 1)
	m := newFakeModel(tbl, 1, r)
	m.cells[m.enc.ID(0, []int{0})].Assign(0)

	c := term.NewClause()
	c.AppendLiteral(term.NewLiteral(true, term.MakeCompound(r, []*term.Term{term.MakeVariable(0)})))

	_, ok := Instantiate(c, m)
	require.False(t, ok)
}
