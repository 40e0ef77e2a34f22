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

// Package limit implements the cooperative resource-limit checks the
// given-clause loop and Mace4 search consult at safe points (§5):
// callers poll an Oracle between inference steps rather than being
// interrupted asynchronously.
package limit

import (
	"sync/atomic"
	"time"
)

// Reason names which limit tripped.
type Reason int

const (
	// None means no limit has been reached.
	None Reason = iota
	CPU
	Memory
	Proofs
	Models
)

func (r Reason) String() string {
	switch r {
	case CPU:
		return "cpu"
	case Memory:
		return "memory"
	case Proofs:
		return "proofs"
	case Models:
		return "models"
	default:
		return "none"
	}
}

// Status is the result of one Oracle.Check call.
type Status struct {
	Reached bool
	Reason  Reason
}

// Oracle is consulted at safe points (after a full inference step, never
// mid-unification) to decide whether the caller's search should stop
// (§5, §7 LimitReached).
type Oracle interface {
	Check() Status
}

// WallClockOracle is the one intentionally stdlib-only component of this
// module (SPEC_FULL.md "limit"): real elapsed time is a pure
// platform/runtime concern with no domain library in the pack models it
// any better than time.Since would. It also tracks proof and model
// counts, since those caps are checked at the same call sites.
type WallClockOracle struct {
	start      time.Time
	maxSeconds float64 // 0 means unbounded

	maxProofs int64 // 0 means unbounded
	proofs    int64

	maxModels int64 // 0 means unbounded
	models    int64
}

// NewWallClockOracle returns an oracle whose clock starts now.
func NewWallClockOracle(maxSeconds float64, maxProofs, maxModels int64) *WallClockOracle {
	return &WallClockOracle{start: time.Now(), maxSeconds: maxSeconds, maxProofs: maxProofs, maxModels: maxModels}
}

// RecordProof increments the proof counter, called once per proof found.
func (o *WallClockOracle) RecordProof() { atomic.AddInt64(&o.proofs, 1) }

// RecordModel increments the model counter, called once per model found.
func (o *WallClockOracle) RecordModel() { atomic.AddInt64(&o.models, 1) }

// Check reports whether any configured limit has been reached.
func (o *WallClockOracle) Check() Status {
	if o.maxSeconds > 0 && time.Since(o.start).Seconds() >= o.maxSeconds {
		return Status{Reached: true, Reason: CPU}
	}
	if o.maxProofs > 0 && atomic.LoadInt64(&o.proofs) >= o.maxProofs {
		return Status{Reached: true, Reason: Proofs}
	}
	if o.maxModels > 0 && atomic.LoadInt64(&o.models) >= o.maxModels {
		return Status{Reached: true, Reason: Models}
	}
	return Status{}
}

// Elapsed returns the wall-clock time since the oracle was created.
func (o *WallClockOracle) Elapsed() time.Duration { return time.Since(o.start) }
