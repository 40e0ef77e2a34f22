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

package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ladr-go/ladr/mace4/cell"
	"github.com/ladr-go/ladr/mace4/ground"
	"github.com/ladr-go/ladr/mace4/propagate"
	"github.com/ladr-go/ladr/term"
)

// fakeModel is a minimal in-memory search.Model over one unary relation
// symbol and no clauses, with a trivial linear trail, used to exercise
// Search's branch/backtrack loop without the full Kernel.
type fakeModel struct {
	n      int
	sym    *term.Symbol
	cells  map[int]*cell.Cell
	enc    *cell.Encoding
	consts map[*term.Symbol]int
	byVal  map[int]*term.Symbol
	trail  []func()
}

func newFakeModel(tbl *term.Table, n int, sym *term.Symbol) *fakeModel {
	enc := cell.NewEncoding(n, []cell.SymbolDesc{{Arity: sym.Arity, NValues: 2}})
	fm := &fakeModel{n: n, sym: sym, cells: make(map[int]*cell.Cell), enc: enc,
		consts: make(map[*term.Symbol]int), byVal: make(map[int]*term.Symbol)}
	for v := 0; v < n; v++ {
		csym := tbl.Intern(string(rune('A'+v)), 0)
		fm.consts[csym] = v
		fm.byVal[v] = csym
	}
	start, count := enc.Range(0)
	for id := start; id < start+count; id++ {
		args := enc.Decode(0, id)
		fm.cells[id] = cell.NewCell(id, 0, args, 2)
	}
	return fm
}

func (m *fakeModel) CellFor(symIdx int, args []int) *cell.Cell { return m.cells[m.enc.ID(symIdx, args)] }
func (m *fakeModel) SymbolIndex(sym *term.Symbol) (int, bool) {
	if sym == m.sym {
		return 0, true
	}
	return 0, false
}
func (m *fakeModel) DomainSize() int                   { return m.n }
func (m *fakeModel) DomainConstant(v int) *term.Symbol { return m.byVal[v] }
func (m *fakeModel) ConstantValue(s *term.Symbol) (int, bool) {
	v, ok := m.consts[s]
	return v, ok
}
func (m *fakeModel) Cell(id int) *cell.Cell { return m.cells[id] }
func (m *fakeModel) AssignCell(id, value int) bool {
	c := m.cells[id]
	if !c.IsPossible(value) {
		return false
	}
	old := c.Possible
	m.trail = append(m.trail, func() { c.Unassign(old) })
	c.Assign(value)
	return true
}
func (m *fakeModel) CrossOffCell(id, value int) bool {
	c := m.cells[id]
	if !c.CrossOff(value) {
		return false
	}
	m.trail = append(m.trail, func() { c.Possible |= uint64(1) << uint(value) })
	return true
}
func (m *fakeModel) Cells() []*cell.Cell {
	out := make([]*cell.Cell, 0, len(m.cells))
	for _, c := range m.cells {
		out = append(out, c)
	}
	return out
}
func (m *fakeModel) Clauses() []*ground.Mclause { return nil }
func (m *fakeModel) Mark() int                  { return len(m.trail) }
func (m *fakeModel) UndoTo(mark int) {
	for i := len(m.trail) - 1; i >= mark; i-- {
		m.trail[i]()
	}
	m.trail = m.trail[:mark]
}
func (m *fakeModel) SkolemCell(id int) bool { return false }

func TestSearchEnumeratesAllAssignmentsWithNoConstraints(t *testing.T) {
	tbl := term.NewTable()
	r := tbl.Intern("r", 1)
	m := newFakeModel(tbl, 2, r)

	var results []Result
	n := Search(m, Options{Strategy: Linear}, func(res Result) bool {
		results = append(results, res)
		return true
	})

	require.Equal(t, 4, n) // 2 cells, 2 values each: 2^2 models
	require.Len(t, results, 4)
	for _, c := range m.cells {
		require.False(t, c.Assigned) // fully backtracked out at the end
	}
}

func TestSearchStopsAtMaxModels(t *testing.T) {
	tbl := term.NewTable()
	r := tbl.Intern("r", 1)
	m := newFakeModel(tbl, 2, r)

	n := Search(m, Options{Strategy: Linear, MaxModels: 1}, func(res Result) bool {
		return true
	})
	require.Equal(t, 1, n)
}
