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

package cell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodingAssignsDisjointRanges(t *testing.T) {
	syms := []SymbolDesc{{Arity: 2, NValues: 3}, {Arity: 1, NValues: 2}}
	e := NewEncoding(3, syms)

	s0, c0 := e.Range(0)
	s1, c1 := e.Range(1)
	require.Equal(t, 0, s0)
	require.Equal(t, 9, c0)
	require.Equal(t, 9, s1)
	require.Equal(t, 3, c1)
	require.Equal(t, 12, e.Total())
}

func TestEncodingIDAndDecodeRoundTrip(t *testing.T) {
	syms := []SymbolDesc{{Arity: 2, NValues: 3}}
	e := NewEncoding(3, syms)

	id := e.ID(0, []int{2, 1})
	require.Equal(t, []int{2, 1}, e.Decode(0, id))
}

func TestCellCrossOffAndAssign(t *testing.T) {
	c := NewCell(0, 0, nil, 3)
	require.Equal(t, 3, c.PossibleCount())
	require.True(t, c.CrossOff(1))
	require.False(t, c.CrossOff(1))
	require.Equal(t, 2, c.PossibleCount())

	mask := c.Possible
	c.Assign(2)
	require.True(t, c.Assigned)
	require.Equal(t, 2, c.Value)

	c.Unassign(mask)
	require.False(t, c.Assigned)
	require.True(t, c.IsPossible(0))
	require.False(t, c.IsPossible(1))
}
