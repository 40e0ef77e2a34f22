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

package prove

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ladr-go/ladr/limit"
	"github.com/ladr-go/ladr/settings"
	"github.com/ladr-go/ladr/term"
	"github.com/ladr-go/ladr/weight"
)

func unitClause(sign bool, atom *term.Term) *term.Clause {
	c := term.NewClause()
	c.AppendLiteral(term.NewLiteral(sign, atom))
	return c
}

func TestLoopFindsRefutationOfComplementaryUnitClauses(t *testing.T) {
	tbl := term.NewTable()
	p := tbl.Intern("p", 0)
	store := settings.NewDefaultStore()
	w := weight.Compile(nil)
	oracle := limit.NewWallClockOracle(0, 0, 0)

	lp := NewLoop(tbl, store, w, oracle)
	lp.AddSOS([]*term.Clause{
		unitClause(true, term.MakeCompound(p, nil)),
		unitClause(false, term.MakeCompound(p, nil)),
	})

	proof, err := lp.Run()
	require.NoError(t, err)
	require.NotNil(t, proof)

	last := proof.Clauses[len(proof.Clauses)-1]
	require.Equal(t, 0, last.NLits)
}

func TestLoopSaturatesWithoutProofWhenConsistent(t *testing.T) {
	tbl := term.NewTable()
	p := tbl.Intern("p", 0)
	store := settings.NewDefaultStore()
	require.NoError(t, store.SetFlag("paramodulation", false))
	w := weight.Compile(nil)
	oracle := limit.NewWallClockOracle(0, 0, 0)

	lp := NewLoop(tbl, store, w, oracle)
	lp.AddSOS([]*term.Clause{
		unitClause(true, term.MakeCompound(p, nil)),
	})

	_, err := lp.Run()
	require.True(t, ErrSaturated.Is(err))
}

func TestLoopSaturatesOnPurelyPositiveSet(t *testing.T) {
	tbl := term.NewTable()
	p := tbl.Intern("p", 1)
	a := tbl.Intern("a", 0)
	b := tbl.Intern("b", 0)
	r := tbl.Intern("r", 1)
	store := settings.NewDefaultStore()
	require.NoError(t, store.SetFlag("paramodulation", false))
	require.NoError(t, store.SetFlag("factor", false))
	w := weight.Compile(nil)
	oracle := limit.NewWallClockOracle(0, 0, 0)

	lp := NewLoop(tbl, store, w, oracle)
	// A purely positive, non-contradictory set: binary resolution has
	// nothing to resolve against (no negative literal exists at all), so
	// the loop must exhaust sos rather than loop forever.
	lp.AddSOS([]*term.Clause{
		unitClause(true, term.MakeCompound(p, []*term.Term{term.MakeCompound(a, nil)})),
		unitClause(true, term.MakeCompound(r, []*term.Term{term.MakeCompound(b, nil)})),
	})

	_, err := lp.Run()
	require.True(t, ErrSaturated.Is(err))
}

func TestBackSubsumeDropsSubsumedUsableClause(t *testing.T) {
	tbl := term.NewTable()
	p := tbl.Intern("p", 1)
	a := tbl.Intern("a", 0)
	store := settings.NewDefaultStore()
	require.NoError(t, store.SetFlag("back_subsumption", true))
	w := weight.Compile(nil)
	oracle := limit.NewWallClockOracle(0, 0, 0)

	lp := NewLoop(tbl, store, w, oracle)

	ground := unitClause(true, term.MakeCompound(p, []*term.Term{term.MakeCompound(a, nil)}))
	ground.ID = 1
	lp.moveToUsable(ground)

	general := unitClause(true, term.MakeCompound(p, []*term.Term{term.MakeVariable(0)}))
	general.ID = 2

	lp.backSubsume(general)
	require.Len(t, lp.usable, 0)
}
