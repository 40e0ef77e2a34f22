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

// Package cell implements Mace4's cell array: the positional encoding of
// a ground e-term (function or relation symbol applied to domain
// elements) into a small integer id, and the Cell state (assignment,
// possible-value set) stored at that id (§4.9).
package cell

// SymbolDesc describes one function/relation symbol participating in the
// cell array: its arity and the number of possible cell values (the
// domain size n for a function symbol, 2 for a relation symbol).
type SymbolDesc struct {
	Arity   int
	NValues int
}

func pow(n, k int) int {
	p := 1
	for i := 0; i < k; i++ {
		p *= n
	}
	return p
}

// Encoding computes cell bases for an ordered list of symbols over
// domain size n (§4.9): symbol i's base is the sum of n^arity over every
// earlier symbol, so every symbol occupies a disjoint contiguous range of
// cell ids.
type Encoding struct {
	N       int
	Symbols []SymbolDesc
	bases   []int
}

// NewEncoding lays out syms, in order, over domain size n.
func NewEncoding(n int, syms []SymbolDesc) *Encoding {
	e := &Encoding{N: n, Symbols: syms, bases: make([]int, len(syms))}
	base := 0
	for i, s := range syms {
		e.bases[i] = base
		base += pow(n, s.Arity)
	}
	return e
}

// Range returns symIdx's cell-id range as [start, start+count).
func (e *Encoding) Range(symIdx int) (start, count int) {
	start = e.bases[symIdx]
	count = pow(e.N, e.Symbols[symIdx].Arity)
	return
}

// Total returns the total number of cells across every symbol.
func (e *Encoding) Total() int {
	if len(e.Symbols) == 0 {
		return 0
	}
	last := len(e.Symbols) - 1
	return e.bases[last] + pow(e.N, e.Symbols[last].Arity)
}

// ID returns the cell id of symIdx applied to args (each in 0..n-1), per
// the positional encoding base(symIdx) + Σ args[k] * n^(arity-1-k).
func (e *Encoding) ID(symIdx int, args []int) int {
	id := e.bases[symIdx]
	a := e.Symbols[symIdx].Arity
	for k, v := range args {
		id += v * pow(e.N, a-1-k)
	}
	return id
}

// Decode inverts ID for a known symbol index, returning the argument
// vector for cell id.
func (e *Encoding) Decode(symIdx int, id int) []int {
	a := e.Symbols[symIdx].Arity
	rel := id - e.bases[symIdx]
	args := make([]int, a)
	for k := 0; k < a; k++ {
		p := pow(e.N, a-1-k)
		args[k] = rel / p
		rel -= args[k] * p
	}
	return args
}
