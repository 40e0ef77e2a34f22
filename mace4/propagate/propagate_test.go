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

package propagate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ladr-go/ladr/mace4/cell"
	"github.com/ladr-go/ladr/mace4/ground"
	"github.com/ladr-go/ladr/term"
)

// fakeMutator is a minimal in-memory Mutator over one binary relation
// symbol, used to exercise the propagation loop without the full Kernel.
type fakeMutator struct {
	n      int
	sym    *term.Symbol
	cells  map[int]*cell.Cell
	enc    *cell.Encoding
	consts map[*term.Symbol]int
	byVal  map[int]*term.Symbol
}

func newFakeMutator(tbl *term.Table, n int, sym *term.Symbol) *fakeMutator {
	enc := cell.NewEncoding(n, []cell.SymbolDesc{{Arity: sym.Arity, NValues: 2}})
	fm := &fakeMutator{n: n, sym: sym, cells: make(map[int]*cell.Cell), enc: enc,
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

func (m *fakeMutator) CellFor(symIdx int, args []int) *cell.Cell { return m.cells[m.enc.ID(symIdx, args)] }
func (m *fakeMutator) SymbolIndex(sym *term.Symbol) (int, bool) {
	if sym == m.sym {
		return 0, true
	}
	return 0, false
}
func (m *fakeMutator) DomainSize() int                   { return m.n }
func (m *fakeMutator) DomainConstant(v int) *term.Symbol { return m.byVal[v] }
func (m *fakeMutator) ConstantValue(s *term.Symbol) (int, bool) {
	v, ok := m.consts[s]
	return v, ok
}
func (m *fakeMutator) Cell(id int) *cell.Cell { return m.cells[id] }
func (m *fakeMutator) AssignCell(id, value int) bool {
	c := m.cells[id]
	if !c.IsPossible(value) {
		return false
	}
	c.Assign(value)
	return true
}
func (m *fakeMutator) CrossOffCell(id, value int) bool {
	return m.cells[id].CrossOff(value)
}

func TestPropagateForcesSoleRemainingValue(t *testing.T) {
	tbl := term.NewTable()
	r := tbl.Intern("r", 1)
	m := newFakeMutator(tbl, 2, r)

	q := &Queue{}
	q.Push(Job{Kind: Elimination, CellID: 0, Value: 0})
	negprop := NewNegpropIndex()

	err := Propagate(q, m, nil, negprop)
	require.NoError(t, err)
	require.True(t, m.cells[0].Assigned)
	require.Equal(t, 1, m.cells[0].Value)
}

func TestPropagateDetectsContradiction(t *testing.T) {
	tbl := term.NewTable()
	r := tbl.Intern("r", 1)
	m := newFakeMutator(tbl, 2, r)
	m.cells[0].Assign(0)

	q := &Queue{}
	q.Push(Job{Kind: Assignment, CellID: 0, Value: 1})
	negprop := NewNegpropIndex()

	err := Propagate(q, m, nil, negprop)
	require.Error(t, err)
	require.True(t, ErrContradiction.Is(err))
}

func TestPropagateReducesNearUnitClause(t *testing.T) {
	tbl := term.NewTable()
	r := tbl.Intern("r", 1)
	s := tbl.Intern("s", 1)
	m := newFakeMutator(tbl, 2, r)

	a0 := m.byVal[0]
	lit1 := term.NewLiteral(false, term.MakeCompound(r, []*term.Term{term.MakeCompound(a0, nil)}))
	lit2 := term.NewLiteral(true, term.MakeCompound(s, []*term.Term{term.MakeCompound(a0, nil)}))
	mc := &ground.Mclause{Lits: []*term.Literal{lit1, lit2}, Active: 2}

	q := &Queue{}
	q.Push(Job{Kind: Assignment, CellID: 0, Value: 1}) // r(A) is true, so lit1 (-r(A)) becomes false
	negprop := NewNegpropIndex()

	err := Propagate(q, m, []*ground.Mclause{mc}, negprop)
	require.NoError(t, err)
	require.Equal(t, 1, mc.Active)
}
