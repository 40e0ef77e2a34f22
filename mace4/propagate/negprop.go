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

// NegpropIndex tracks, per cell id, the values recorded as eliminated or
// assigned by propagation, independent of which ground clause produced the
// fact. Mace4 names four distinct derivation rules here (neg_elim,
// neg_assign, neg_elim_near, neg_assign_near); this index folds all four
// into one bookkeeping scheme: whichever rule crossed off a value, once
// every value but one has been eliminated for a cell the remaining value
// is forced, regardless of which toggle triggered which individual
// elimination. The four booleans are only consulted together: Record does
// nothing while all four are false and otherwise records every fact,
// whichever rule produced it, so turning off a single rule has no effect.
// The cell id (the positional encoding
// from package cell) is already a unique key for the (symbol, args) pair a
// rule fires on, so no separate hashing of args is needed here.
type NegpropIndex struct {
	NegElim       bool
	NegAssign     bool
	NegElimNear   bool
	NegAssignNear bool

	facts map[int]*negFacts
}

type negFacts struct {
	eliminated    map[int]bool
	hasAssigned   bool
	assignedValue int
}

// NewNegpropIndex returns an index with every rule enabled.
func NewNegpropIndex() *NegpropIndex {
	return &NegpropIndex{
		NegElim: true, NegAssign: true, NegElimNear: true, NegAssignNear: true,
		facts: make(map[int]*negFacts),
	}
}

func (idx *NegpropIndex) anyEnabled() bool {
	return idx.NegElim || idx.NegAssign || idx.NegElimNear || idx.NegAssignNear
}

// Record notes that cellID (a cell with nvalues possible values) was just
// assigned value, or had value crossed off, and returns the NearAssignment
// job this forces, if any: once every value but one has been recorded eliminated
// for a cell, the remaining value is derivable without consulting the
// cell's own Possible bitset.
func (idx *NegpropIndex) Record(symIdx int, args []int, cellID, value, nvalues int, assign bool) []Job {
	if !idx.anyEnabled() {
		return nil
	}
	nf := idx.facts[cellID]
	if nf == nil {
		nf = &negFacts{eliminated: make(map[int]bool)}
		idx.facts[cellID] = nf
	}
	if assign {
		nf.hasAssigned = true
		nf.assignedValue = value
		return nil
	}
	if nf.hasAssigned {
		return nil
	}
	nf.eliminated[value] = true
	if len(nf.eliminated) != nvalues-1 {
		return nil
	}
	for v := 0; v < nvalues; v++ {
		if !nf.eliminated[v] {
			return []Job{{Kind: NearAssignment, CellID: cellID, Value: v}}
		}
	}
	return nil
}
