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

// Package search implements Mace4's chronological backtracking search
// over the cell array (§4.11): pick an open cell according to a
// Strategy, try each of its possible values under propagation, backtrack
// on contradiction, and report every complete model found.
package search

import (
	"github.com/sirupsen/logrus"

	"github.com/ladr-go/ladr/mace4/cell"
	"github.com/ladr-go/ladr/mace4/ground"
	"github.com/ladr-go/ladr/mace4/propagate"
)

var log = logrus.WithField("system", "mace4")

// Strategy selects which open cell search branches on next (§4.11).
type Strategy int

const (
	// Linear considers cells in id order: exhaustive, no bias.
	Linear Strategy = iota
	// Concentric prefers cells whose arguments are all below a growing
	// bound, then widens the bound once no cell within it remains open —
	// "explore small sub-models before reaching for new domain elements".
	Concentric
	// ConcentricBand is Concentric but each widening step covers a fixed
	// band of additional elements instead of exactly one.
	ConcentricBand
)

// Model is everything search needs beyond propagate.Mutator: the full
// cell and clause lists, and chronological-backtracking trail control.
type Model interface {
	propagate.Mutator
	Cells() []*cell.Cell
	Clauses() []*ground.Mclause
	Mark() int
	UndoTo(mark int)
	SkolemCell(id int) bool
}

// Options configures a Search run.
type Options struct {
	Strategy       Strategy
	MaxConstrained int // band width for ConcentricBand
	MaxModels      int // 0 means unbounded
	Negprop        *propagate.NegpropIndex
}

// Result is one complete model snapshot: every cell's id mapped to its
// assigned value.
type Result struct {
	Values map[int]int
}

func maxArgIndex(c *cell.Cell) int {
	max := 0
	for _, a := range c.Args {
		if a > max {
			max = a
		}
	}
	return max
}

func score(c *cell.Cell) int {
	return len(c.Occurrences)
}

// selectCell picks the next open (unassigned, more than one possible
// value) cell to branch on, per opts.Strategy. It prefers non-skolem
// cells (their values are typically more constrained by the problem)
// and, among ties, the cell with the most entries in its Occurrences
// list, then the lowest id. Nothing in this module fills Occurrences, so
// ties go to the lowest id.
func selectCell(m Model, opts Options) *cell.Cell {
	bound := 1
	for {
		var best *cell.Cell
		for _, c := range m.Cells() {
			if c.Assigned || c.PossibleCount() < 2 {
				continue
			}
			if opts.Strategy != Linear {
				limit := bound
				if opts.Strategy == ConcentricBand && opts.MaxConstrained > 0 {
					limit = bound * opts.MaxConstrained
				}
				if maxArgIndex(c) >= limit {
					continue
				}
			}
			if best == nil {
				best = c
				continue
			}
			if m.SkolemCell(c.ID) != m.SkolemCell(best.ID) {
				if !m.SkolemCell(c.ID) {
					best = c
				}
				continue
			}
			if score(c) > score(best) || (score(c) == score(best) && c.ID < best.ID) {
				best = c
			}
		}
		if best != nil || opts.Strategy == Linear {
			return best
		}
		bound++
		if bound > 4096 {
			return nil // no open cell at any bound: fully assigned
		}
	}
}

func snapshot(m Model) Result {
	values := make(map[int]int)
	for _, c := range m.Cells() {
		values[c.ID] = c.Value
	}
	return Result{Values: values}
}

// Search performs chronological backtracking over m's open cells,
// invoking emit with every complete, consistent assignment found. emit
// returns false to stop the search early (e.g. once the caller has seen
// enough models). Search returns the number of models emitted.
func Search(m Model, opts Options, emit func(Result) bool) int {
	found := 0
	negprop := opts.Negprop
	if negprop == nil {
		negprop = propagate.NewNegpropIndex()
	}

	var step func() bool // returns false to stop the whole search
	step = func() bool {
		c := selectCell(m, opts)
		if c == nil {
			found++
			log.WithField("models", found).Debug("mace4: model found")
			if !emit(snapshot(m)) {
				return false
			}
			if opts.MaxModels > 0 && found >= opts.MaxModels {
				return false
			}
			return true
		}
		for v := 0; v < c.NValues; v++ {
			if !c.IsPossible(v) {
				continue
			}
			mark := m.Mark()
			q := &propagate.Queue{}
			q.Push(propagate.Job{Kind: propagate.Assignment, CellID: c.ID, Value: v})
			err := propagate.Propagate(q, m, m.Clauses(), negprop)
			if err == nil {
				if !step() {
					m.UndoTo(mark)
					return false
				}
			}
			m.UndoTo(mark)
		}
		return true
	}
	step()
	return found
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// IterateDomainSizes runs Search over each domain size from start to end
// (inclusive), in steps of increment, skipping sizes Mace4's
// primes_only/non_primes_only flags exclude, stopping the moment emit
// returns false or opts.MaxModels models have been found in total.
func IterateDomainSizes(start, end, increment int, primesOnly, nonPrimesOnly bool, build func(n int) Model, opts Options, emit func(n int, r Result) bool) {
	total := 0
	for n := start; n <= end; n += increment {
		if primesOnly && !isPrime(n) {
			continue
		}
		if nonPrimesOnly && isPrime(n) {
			continue
		}
		log.WithField("domain_size", n).Info("mace4: starting search")
		m := build(n)
		remaining := opts
		if opts.MaxModels > 0 {
			remaining.MaxModels = opts.MaxModels - total
			if remaining.MaxModels <= 0 {
				return
			}
		}
		stop := false
		found := Search(m, remaining, func(r Result) bool {
			if !emit(n, r) {
				stop = true
				return false
			}
			return true
		})
		total += found
		if stop {
			return
		}
		if opts.MaxModels > 0 && total >= opts.MaxModels {
			return
		}
	}
}
