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

// Package mace4 glues the cell, ground, propagate and search packages
// into the Kernel: the single object holding one finite model's cell
// array, grounded clauses, and backtracking trail for a given domain
// size (§4.9-4.11).
package mace4

import (
	"fmt"

	"github.com/ladr-go/ladr/mace4/cell"
	"github.com/ladr-go/ladr/mace4/ground"
	"github.com/ladr-go/ladr/term"
)

// mutation records a cell's state immediately before AssignCell or
// CrossOffCell changed it, so UndoTo can restore it exactly.
type mutation struct {
	cellID      int
	wasAssigned bool
	oldValue    int
	oldPossible uint64
}

// Kernel is one Mace4 model under construction: a cell array over domain
// size N, the clauses grounded into it, and an undo trail recording every
// cell mutation so search can backtrack.
type Kernel struct {
	N        int
	enc      *cell.Encoding
	cells    []*cell.Cell
	symIndex map[*term.Symbol]int
	skolem   []bool // indexed by symIdx
	domConst map[int]*term.Symbol
	constVal map[*term.Symbol]int
	clauses  []*ground.Mclause
	trail    []mutation
}

func domainConstName(v int) string {
	return fmt.Sprintf("$%d", v)
}

// NewKernel builds a Kernel over domain size n for the given symbols
// (syms[i] describes symOf[i]'s arity and value count; skolemSyms marks
// which of symOf were introduced by clausification, so search can prefer
// branching on the problem's own symbols first).
func NewKernel(tbl *term.Table, n int, syms []cell.SymbolDesc, symOf []*term.Symbol, skolemSyms map[*term.Symbol]bool) *Kernel {
	enc := cell.NewEncoding(n, syms)
	k := &Kernel{
		N: n, enc: enc,
		symIndex: make(map[*term.Symbol]int, len(symOf)),
		skolem:   make([]bool, len(symOf)),
		domConst: make(map[int]*term.Symbol, n),
		constVal: make(map[*term.Symbol]int, n),
	}
	for i, s := range symOf {
		k.symIndex[s] = i
		k.skolem[i] = skolemSyms[s]
	}
	for v := 0; v < n; v++ {
		csym := tbl.Intern(domainConstName(v), 0)
		k.domConst[v] = csym
		k.constVal[csym] = v
	}
	k.cells = make([]*cell.Cell, enc.Total())
	for i, sd := range syms {
		start, count := enc.Range(i)
		for id := start; id < start+count; id++ {
			k.cells[id] = cell.NewCell(id, i, enc.Decode(i, id), sd.NValues)
		}
	}
	return k
}

// Ground instantiates every clause over k's domain and stores the result
// as k's working clause set, returning false if any clause is unsat at
// this domain size before search even begins.
func (k *Kernel) Ground(clauses []*term.Clause) ([]*ground.Mclause, bool) {
	var all []*ground.Mclause
	for _, c := range clauses {
		out, ok := ground.Instantiate(c, k)
		if !ok {
			return nil, false
		}
		all = append(all, out...)
	}
	k.clauses = all
	return all, true
}

// ground.Model

func (k *Kernel) CellFor(symIdx int, args []int) *cell.Cell { return k.cells[k.enc.ID(symIdx, args)] }

func (k *Kernel) SymbolIndex(sym *term.Symbol) (int, bool) {
	i, ok := k.symIndex[sym]
	return i, ok
}

func (k *Kernel) DomainSize() int { return k.N }

func (k *Kernel) DomainConstant(v int) *term.Symbol { return k.domConst[v] }

func (k *Kernel) ConstantValue(sym *term.Symbol) (int, bool) {
	v, ok := k.constVal[sym]
	return v, ok
}

// propagate.Mutator

func (k *Kernel) Cell(id int) *cell.Cell { return k.cells[id] }

func (k *Kernel) AssignCell(id, value int) bool {
	c := k.cells[id]
	if !c.IsPossible(value) {
		return false
	}
	k.trail = append(k.trail, mutation{cellID: id, wasAssigned: c.Assigned, oldValue: c.Value, oldPossible: c.Possible})
	c.Assign(value)
	return true
}

func (k *Kernel) CrossOffCell(id, value int) bool {
	c := k.cells[id]
	old := c.Possible
	if !c.CrossOff(value) {
		return false
	}
	k.trail = append(k.trail, mutation{cellID: id, wasAssigned: c.Assigned, oldValue: c.Value, oldPossible: old})
	return true
}

// search.Model

func (k *Kernel) Cells() []*cell.Cell { return k.cells }

func (k *Kernel) Clauses() []*ground.Mclause { return k.clauses }

func (k *Kernel) Mark() int { return len(k.trail) }

func (k *Kernel) UndoTo(mark int) {
	for i := len(k.trail) - 1; i >= mark; i-- {
		m := k.trail[i]
		c := k.cells[m.cellID]
		c.Assigned = m.wasAssigned
		c.Value = m.oldValue
		c.Possible = m.oldPossible
	}
	k.trail = k.trail[:mark]
}

func (k *Kernel) SkolemCell(id int) bool {
	return k.skolem[k.cells[id].SymIdx]
}
