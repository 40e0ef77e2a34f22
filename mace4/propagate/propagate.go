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

// Package propagate implements Mace4's assignment/elimination propagation
// loop (§4.10): draining a FIFO queue of forced cell assignments and
// eliminations, re-simplifying every ground clause after each cell
// mutation, and queuing whatever new jobs that simplification (or the
// negprop index) forces in turn, until the queue empties or a
// contradiction is found.
package propagate

import (
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/ladr-go/ladr/mace4/cell"
	"github.com/ladr-go/ladr/mace4/ground"
	"github.com/ladr-go/ladr/term"
)

// ErrContradiction is returned when propagation derives an impossible
// state: an empty ground clause, a cell assigned two different values, or
// a cell with no possible values left.
var ErrContradiction = errors.NewKind("mace4 propagation contradiction: %s")

// Mutator is everything propagation needs to read and change cell state.
// AssignCell and CrossOffCell mutate a Cell AND record enough to undo the
// change later (the Kernel snapshots old state onto its own trail before
// mutating) — propagate never touches a *cell.Cell's fields directly, so
// undo is always possible even though propagate itself holds no trail.
type Mutator interface {
	ground.Model
	Cell(id int) *cell.Cell
	AssignCell(id, value int) bool
	CrossOffCell(id, value int) bool
}

func soleRemaining(c *cell.Cell) (int, bool) {
	if c.PossibleCount() != 1 {
		return 0, false
	}
	for v := 0; v < c.NValues; v++ {
		if c.IsPossible(v) {
			return v, true
		}
	}
	return 0, false
}

// Propagate drains q, applying each Job against m and re-simplifying
// clauses, until the queue is empty or a contradiction is derived.
func Propagate(q *Queue, m Mutator, clauses []*ground.Mclause, negprop *NegpropIndex) error {
	for !q.Empty() {
		j := q.Pop()
		if err := applyJob(j, m, clauses, q, negprop); err != nil {
			return err
		}
	}
	return nil
}

func applyJob(j Job, m Mutator, clauses []*ground.Mclause, q *Queue, negprop *NegpropIndex) error {
	c := m.Cell(j.CellID)
	switch j.Kind {
	case Assignment, NearAssignment:
		if c.Assigned {
			if c.Value != j.Value {
				return ErrContradiction.New("cell already assigned a different value")
			}
			return nil
		}
		if !c.IsPossible(j.Value) {
			return ErrContradiction.New("assigning an already-impossible value")
		}
		if !m.AssignCell(j.CellID, j.Value) {
			return ErrContradiction.New("assignment rejected by mutator")
		}
		for _, dj := range negprop.Record(c.SymIdx, c.Args, c.ID, j.Value, c.NValues, true) {
			q.Push(dj)
		}
		return reduceClauses(clauses, m, q)

	case Elimination, NearElimination:
		if c.Assigned {
			if c.Value == j.Value {
				return ErrContradiction.New("eliminating the already-assigned value")
			}
			return nil
		}
		if !c.IsPossible(j.Value) {
			return nil // already crossed off
		}
		if !m.CrossOffCell(j.CellID, j.Value) {
			return ErrContradiction.New("elimination rejected by mutator")
		}
		if c.PossibleCount() == 0 {
			return ErrContradiction.New("cell has no possible values left")
		}
		for _, dj := range negprop.Record(c.SymIdx, c.Args, c.ID, j.Value, c.NValues, false) {
			q.Push(dj)
		}
		if v, ok := soleRemaining(c); ok {
			q.Push(Job{Kind: Assignment, CellID: c.ID, Value: v})
		}
		return reduceClauses(clauses, m, q)
	}
	return nil
}

// reduceClauses re-evaluates every not-yet-satisfied Mclause against the
// current cell state, dropping clauses that became satisfied, and queuing
// a forcing Job for any clause reduced to exactly one unresolved literal.
// This rescans every clause on every call rather than maintaining
// occurrence lists per cell — a deliberate simplification given the
// time budget, documented in DESIGN.md.
func reduceClauses(clauses []*ground.Mclause, m Mutator, q *Queue) error {
	for _, mc := range clauses {
		if mc.Satisfied {
			continue
		}
		remaining := 0
		var sole *term.Literal
		satisfied := false
		for _, lit := range mc.Lits {
			if truth, known := ground.ReduceAtom(lit.Atom, m); known {
				if truth == lit.Sign {
					satisfied = true
					break
				}
				continue
			}
			remaining++
			sole = lit
		}
		if satisfied {
			mc.Satisfied = true
			mc.Active = 0
			continue
		}
		mc.Active = remaining
		if remaining == 0 {
			return ErrContradiction.New("ground clause reduced to empty")
		}
		if remaining == 1 {
			processClause(sole, m, q)
		}
	}
	return nil
}

// unresolvedCellValue reports the cell id that ground term t resolves to,
// when t is a function application whose arguments are all known but
// whose own cell is not yet assigned.
func unresolvedCellValue(t *term.Term, m Mutator) (int, bool) {
	if t == nil || t.IsVariable() {
		return 0, false
	}
	if t.IsConstant() {
		if _, ok := m.ConstantValue(t.Sym); ok {
			return 0, false // a domain constant, not a cell
		}
	}
	symIdx, ok := m.SymbolIndex(t.Sym)
	if !ok {
		return 0, false
	}
	args := make([]int, len(t.Args))
	for i, a := range t.Args {
		v, ok := ground.FoldGround(a, m)
		if !ok {
			return 0, false
		}
		args[i] = v
	}
	c := m.CellFor(symIdx, args)
	if c == nil || c.Assigned {
		return 0, false
	}
	return c.ID, true
}

// processClause inspects the sole unresolved literal of a near-unit
// ground clause and pushes the Job it forces: an equality literal forces
// the unresolved side's cell either to the other (known) side's value
// (positive) or crosses that value off (negative); an ordinary relation
// literal forces its own 2-valued cell to true or false directly.
func processClause(lit *term.Literal, m Mutator, q *Queue) {
	atom := lit.Atom
	if atom.Sym.Equality {
		if cellID, ok := unresolvedCellValue(atom.Args[0], m); ok {
			if v, ok := ground.FoldGround(atom.Args[1], m); ok {
				pushEqJob(cellID, v, lit.Sign, q)
				return
			}
		}
		if cellID, ok := unresolvedCellValue(atom.Args[1], m); ok {
			if v, ok := ground.FoldGround(atom.Args[0], m); ok {
				pushEqJob(cellID, v, lit.Sign, q)
			}
		}
		return
	}

	symIdx, ok := m.SymbolIndex(atom.Sym)
	if !ok {
		return
	}
	args := make([]int, len(atom.Args))
	for i, a := range atom.Args {
		v, ok := ground.FoldGround(a, m)
		if !ok {
			return
		}
		args[i] = v
	}
	c := m.CellFor(symIdx, args)
	if c == nil || c.Assigned {
		return
	}
	if lit.Sign {
		q.Push(Job{Kind: NearAssignment, CellID: c.ID, Value: 1})
	} else {
		q.Push(Job{Kind: NearAssignment, CellID: c.ID, Value: 0})
	}
}

func pushEqJob(cellID, value int, sign bool, q *Queue) {
	if sign {
		q.Push(Job{Kind: NearAssignment, CellID: cellID, Value: value})
	} else {
		q.Push(Job{Kind: NearElimination, CellID: cellID, Value: value})
	}
}
