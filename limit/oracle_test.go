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

package limit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWallClockOracleUnboundedNeverTrips(t *testing.T) {
	o := NewWallClockOracle(0, 0, 0)
	require.False(t, o.Check().Reached)
}

func TestWallClockOracleProofCap(t *testing.T) {
	o := NewWallClockOracle(0, 2, 0)
	require.False(t, o.Check().Reached)
	o.RecordProof()
	require.False(t, o.Check().Reached)
	o.RecordProof()
	status := o.Check()
	require.True(t, status.Reached)
	require.Equal(t, Proofs, status.Reason)
}

func TestWallClockOracleModelCap(t *testing.T) {
	o := NewWallClockOracle(0, 0, 1)
	o.RecordModel()
	status := o.Check()
	require.True(t, status.Reached)
	require.Equal(t, Models, status.Reason)
}
