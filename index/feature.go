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

package index

import (
	"github.com/pilosa/pilosa/roaring"

	"github.com/ladr-go/ladr/term"
)

// Features is a clause's feature vector for subsumption pre-filtering: the
// literal count, then one occurrence count per distinct symbol (literal
// signs are not distinguished), in the order the symbols first appear in
// the clause, flattened into small integer buckets. Two clauses
// where C's bucket value exceeds D's at any feature cannot have C
// subsuming D, so the index only needs to return candidates passing a
// component-wise "no feature of the pattern exceeds the instance" test.
type Features []int

// ClauseFeatures computes a Features vector for c: literal count followed
// by, for each distinct symbol touched by a positive or negative literal,
// the number of occurrences.
func ClauseFeatures(c *term.Clause) Features {
	f := Features{c.NLits}
	counts := make(map[int]int)
	order := []int{}
	for cur := c.Lits; cur != nil; cur = cur.Next {
		term.Walk(cur.Atom, func(sub *term.Term, _ []int) {
			if sub.IsVariable() {
				return
			}
			if _, ok := counts[sub.Sym.Num]; !ok {
				order = append(order, sub.Sym.Num)
			}
			counts[sub.Sym.Num]++
		})
	}
	for _, n := range order {
		f = append(f, counts[n])
	}
	return f
}

// Feature is a bucket of the feature index: a feature position and the
// integer value observed there.
type Feature struct {
	Position int
	Value    int
}

// FeatureIndex maps (position, value) feature buckets to the set of
// clause ids whose feature vector has at least that value at that
// position, using roaring bitmaps as postings lists — the same bitmap
// technology the teacher's pilosa-backed secondary indexes use for row
// postings (§2 row 7 "feature-vector ... indices for ... subsume
// retrieval").
type FeatureIndex struct {
	postings map[Feature]*roaring.Bitmap
	vectors  map[uint64]Features
}

// NewFeatureIndex returns an empty feature index.
func NewFeatureIndex() *FeatureIndex {
	return &FeatureIndex{
		postings: make(map[Feature]*roaring.Bitmap),
		vectors:  make(map[uint64]Features),
	}
}

// Insert records c's (precomputed) feature vector under clause id id: for
// every position p with value v, c is added to the postings of every
// bucket (p, 0..v), since a candidate's feature at p must be >= the
// pattern's feature at p for it to possibly be subsumed.
func (fi *FeatureIndex) Insert(id uint64, f Features) {
	fi.vectors[id] = f
	for pos, v := range f {
		for val := 0; val <= v; val++ {
			key := Feature{Position: pos, Value: val}
			bm, ok := fi.postings[key]
			if !ok {
				bm = roaring.NewBitmap()
				fi.postings[key] = bm
			}
			bm.Add(id)
		}
	}
}

// Remove drops id from the index.
func (fi *FeatureIndex) Remove(id uint64) {
	f, ok := fi.vectors[id]
	if !ok {
		return
	}
	for pos, v := range f {
		for val := 0; val <= v; val++ {
			if bm, ok := fi.postings[Feature{Position: pos, Value: val}]; ok {
				bm.Remove(id)
			}
		}
	}
	delete(fi.vectors, id)
}

// SubsumptionCandidates returns the ids whose feature vector could be an
// instance of pattern: for every feature position of pattern, the
// candidate must appear in the postings bucket (position, pattern[pos]),
// i.e. have a value at least as large. Intersecting those bitmaps gives an
// exact pre-filter; the caller still runs real subsumption on the result.
func (fi *FeatureIndex) SubsumptionCandidates(pattern Features) []uint64 {
	var result *roaring.Bitmap
	for pos, v := range pattern {
		bm, ok := fi.postings[Feature{Position: pos, Value: v}]
		if !ok {
			return nil
		}
		if result == nil {
			result = bm.Clone()
		} else {
			result = result.Intersect(bm)
		}
	}
	if result == nil {
		return nil
	}
	return result.Slice()
}
