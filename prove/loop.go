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

// Package prove implements the given-clause saturation loop: repeatedly
// pick a clause from the set of support, move it to usable, infer every
// resolvent/paramodulant/factor against usable, and keep whatever
// survives simplification and subsumption, until the empty clause appears
// or a limit.Oracle trips (§1, §8 scenarios S1-S3).
package prove

import (
	"github.com/sirupsen/logrus"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/ladr-go/ladr/index"
	"github.com/ladr-go/ladr/infer"
	"github.com/ladr-go/ladr/justify"
	"github.com/ladr-go/ladr/limit"
	"github.com/ladr-go/ladr/settings"
	"github.com/ladr-go/ladr/subst"
	"github.com/ladr-go/ladr/term"
	"github.com/ladr-go/ladr/weight"
)

var (
	// ErrSaturated is returned when the set of support empties without
	// ever deriving the empty clause: the input is (as far as this run
	// went) satisfiable, or the search simply never found a proof.
	ErrSaturated = errors.NewKind("search exhausted without a proof: sos emptied")
	// ErrLimitReached is returned when the Loop's limit.Oracle reports a resource
	// limit reached before a proof was found.
	ErrLimitReached = errors.NewKind("resource limit reached: %s")
)

// clauseLit names one literal of one indexed clause: the discrimination
// tree's Owner payload for every inserted literal atom.
type clauseLit struct {
	Clause *term.Clause
	Lit    int
}

// Loop holds one proof attempt's mutable state: the usable and
// set-of-support clause lists, their retrieval indices, and the
// configuration governing inference and pruning.
type Loop struct {
	tbl     *term.Table
	trail   *subst.Trail
	store   *settings.Store
	weigher *weight.Weigher
	oracle  limit.Oracle
	binPol  infer.BinaryPolicy
	paraPol infer.ParamodPolicy

	nextID      int
	usable      []*term.Clause
	sos         []*term.Clause
	posIdx      *index.Discrimination
	negIdx      *index.Discrimination
	featIdx     *index.FeatureIndex
	seen        map[uint64]bool
	pickCounter int

	log *logrus.Entry
}

// NewLoop returns an empty Loop ready for AddSOS.
func NewLoop(tbl *term.Table, store *settings.Store, weigher *weight.Weigher, oracle limit.Oracle) *Loop {
	return &Loop{
		tbl:     tbl,
		trail:   subst.NewTrail(),
		store:   store,
		weigher: weigher,
		oracle:  oracle,
		binPol:  infer.BinaryPolicy{Selected: getFlag(store, "selection")},
		paraPol: infer.ParamodPolicy{
			Basic:    getFlag(store, "basic_paramodulation"),
			IntoVars: getFlag(store, "para_into_vars"),
			FromVars: getFlag(store, "para_from_vars"),
		},
		posIdx:  index.NewDiscrimination(),
		negIdx:  index.NewDiscrimination(),
		featIdx: index.NewFeatureIndex(),
		seen:    make(map[uint64]bool),
		log:     logrus.WithField("system", "prove"),
	}
}

func getFlag(s *settings.Store, name string) bool {
	v, err := s.GetFlag(name)
	return err == nil && v
}

func getParm(s *settings.Store, name string) int64 {
	v, err := s.GetParm(name)
	if err != nil {
		return 0
	}
	return v
}

// AddSOS assigns ids to clauses that don't already have one and adds them
// to the set of support.
func (lp *Loop) AddSOS(clauses []*term.Clause) {
	for _, c := range clauses {
		if c.ID == 0 {
			lp.nextID++
			c.ID = lp.nextID
		} else if c.ID > lp.nextID {
			lp.nextID = c.ID
		}
		lp.sos = append(lp.sos, c)
	}
}

// Run drives the given-clause loop to completion: it returns a Proof
// ending in the empty clause on success, ErrSaturated if the set of
// support empties first, or ErrLimitReached if the oracle trips first.
func (lp *Loop) Run() (*justify.Proof, error) {
	var derived []*term.Clause
	for {
		if st := lp.oracle.Check(); st.Reached {
			return nil, ErrLimitReached.New(st.Reason.String())
		}
		given, ok := lp.pickGiven()
		if !ok {
			return nil, ErrSaturated.New()
		}
		lp.log.WithField("given", given.ID).Debug("prove: given clause")
		lp.moveToUsable(given)
		derived = append(derived, given)

		for _, nc := range lp.infer(given) {
			if mc, merged := infer.Merge(nc); merged {
				nc = mc
			}
			if h := term.ClauseStructHash(nc); lp.seen[h] {
				continue
			} else {
				lp.seen[h] = true
			}
			if nc.Tautology() {
				continue
			}
			if lp.subsumedByUsable(nc) {
				continue
			}
			lp.nextID++
			nc.ID = lp.nextID
			derived = append(derived, nc)

			if nc.NLits == 0 {
				return &justify.Proof{Clauses: derived}, nil
			}

			if max := getParm(lp.store, "max_weight"); max > 0 && lp.weigher.ClauseWeight(nc) > float64(max) {
				continue
			}
			lp.backSubsume(nc)
			lp.sos = append(lp.sos, nc)
		}
	}
}

// pickGiven removes and returns one clause from sos: every
// pick_given_ratio'th pick takes the oldest clause (FIFO, Otter's
// "breadth" term), the rest take the lightest by weight.Weigher.
func (lp *Loop) pickGiven() (*term.Clause, bool) {
	if len(lp.sos) == 0 {
		return nil, false
	}
	ratio := getParm(lp.store, "pick_given_ratio")
	lp.pickCounter++

	idx := 0
	if ratio <= 0 || int64(lp.pickCounter)%ratio != 0 {
		idx = lp.lightestIndex()
	}
	c := lp.sos[idx]
	lp.sos = append(lp.sos[:idx], lp.sos[idx+1:]...)
	return c, true
}

func (lp *Loop) lightestIndex() int {
	best := 0
	bw := lp.weigher.ClauseWeight(lp.sos[0])
	for i := 1; i < len(lp.sos); i++ {
		if w := lp.weigher.ClauseWeight(lp.sos[i]); w < bw {
			bw, best = w, i
		}
	}
	return best
}

func (lp *Loop) moveToUsable(c *term.Clause) {
	lp.usable = append(lp.usable, c)
	idx := 0
	for cur := c.Lits; cur != nil; cur = cur.Next {
		idx++
		cl := clauseLit{Clause: c, Lit: idx}
		if cur.Sign {
			lp.posIdx.Insert(cur.Atom, cl)
		} else {
			lp.negIdx.Insert(cur.Atom, cl)
		}
	}
	lp.featIdx.Insert(uint64(c.ID), index.ClauseFeatures(c))
}

// infer runs every enabled rule with given as one parent against usable,
// plus given against itself (factoring).
func (lp *Loop) infer(given *term.Clause) []*term.Clause {
	var out []*term.Clause
	idx := 0
	for cur := given.Lits; cur != nil; cur = cur.Next {
		idx++
		if getFlag(lp.store, "binary_resolution") {
			oppIdx := lp.posIdx
			if cur.Sign {
				oppIdx = lp.negIdx
			}
			for _, e := range oppIdx.CandidatesForUnify(cur.Atom) {
				cl := e.Owner.(clauseLit)
				if rc, ok := infer.Resolve(lp.binPol, given, idx, cl.Clause, cl.Lit, lp.trail); ok {
					out = append(out, rc)
				}
			}
		}
		if getFlag(lp.store, "paramodulation") && cur.IsPositiveEquality() {
			out = append(out, lp.paramodFrom(given, idx)...)
		}
	}

	if getFlag(lp.store, "factor") {
		lits := given.Literals()
		for i := 1; i <= len(lits); i++ {
			for j := i + 1; j <= len(lits); j++ {
				if fc, ok := infer.Factor(given, i, j, lp.trail); ok {
					out = append(out, fc)
				}
			}
		}
	}

	if getFlag(lp.store, "paramodulation") {
		out = append(out, lp.paramodInto(given)...)
	}
	return out
}

// enumeratePositions lists every position (including the root, []) within
// t, depth first.
func enumeratePositions(t *term.Term) [][]int {
	var out [][]int
	var walk func(t *term.Term, path []int)
	walk = func(t *term.Term, path []int) {
		out = append(out, append([]int{}, path...))
		if t.IsVariable() {
			return
		}
		for i, a := range t.Args {
			walk(a, append(path, i+1))
		}
	}
	walk(t, nil)
	return out
}

// paramodFrom rewrites usable clauses using given's fromLitIdx'th literal
// (a positive equality) as the rewrite rule, both left-to-right and
// right-to-left.
func (lp *Loop) paramodFrom(given *term.Clause, fromLitIdx int) []*term.Clause {
	var out []*term.Clause
	for _, side := range [2]int{1, 2} {
		for _, uc := range lp.usable {
			lidx := 0
			for cur := uc.Lits; cur != nil; cur = cur.Next {
				lidx++
				for _, path := range enumeratePositions(cur.Atom) {
					if nc, ok := infer.Paramod(lp.paraPol, given, term.Pos{Lit: fromLitIdx, Side: side}, uc, term.Pos{Lit: lidx, Path: path}, lp.trail); ok {
						out = append(out, nc)
					}
				}
			}
		}
	}
	return out
}

// paramodInto rewrites given using every positive-equality literal of
// usable as a rewrite rule.
func (lp *Loop) paramodInto(given *term.Clause) []*term.Clause {
	var out []*term.Clause
	lidx := 0
	for cur := given.Lits; cur != nil; cur = cur.Next {
		lidx++
		for _, path := range enumeratePositions(cur.Atom) {
			for _, uc := range lp.usable {
				flidx := 0
				for fcur := uc.Lits; fcur != nil; fcur = fcur.Next {
					flidx++
					if !fcur.IsPositiveEquality() {
						continue
					}
					for _, side := range [2]int{1, 2} {
						if nc, ok := infer.Paramod(lp.paraPol, uc, term.Pos{Lit: flidx, Side: side}, given, term.Pos{Lit: lidx, Path: path}, lp.trail); ok {
							out = append(out, nc)
						}
					}
				}
			}
		}
	}
	return out
}

// subsumedByUsable reports whether some usable clause already subsumes
// nc (forward subsumption). The feature index is built to answer the
// opposite query efficiently (back subsumption, see backSubsume), so this
// direction is a direct linear scan — a deliberate simplification given
// the time budget, documented in DESIGN.md.
func (lp *Loop) subsumedByUsable(nc *term.Clause) bool {
	if !getFlag(lp.store, "forward_subsumption") {
		return false
	}
	for _, uc := range lp.usable {
		if index.Subsumes(uc, nc, lp.trail) {
			return true
		}
	}
	return false
}

// backSubsume discards every usable clause that nc subsumes: the feature
// index's SubsumptionCandidates(features(nc)) returns exactly the usable
// clauses whose feature vector dominates nc's, a necessary condition for
// nc to subsume them.
func (lp *Loop) backSubsume(nc *term.Clause) {
	if !getFlag(lp.store, "back_subsumption") {
		return
	}
	ids := lp.featIdx.SubsumptionCandidates(index.ClauseFeatures(nc))
	if len(ids) == 0 {
		return
	}
	byID := make(map[int]bool, len(ids))
	for _, id := range ids {
		byID[int(id)] = true
	}
	var kept []*term.Clause
	for _, uc := range lp.usable {
		if byID[uc.ID] && index.Subsumes(nc, uc, lp.trail) {
			lp.featIdx.Remove(uint64(uc.ID))
			continue
		}
		kept = append(kept, uc)
	}
	lp.usable = kept
}
