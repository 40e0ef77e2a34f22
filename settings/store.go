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

// Package settings implements the flag/parameter registry every other
// package consults for its tunables: boolean Flags and integer Parms,
// each with a declared default (and, for Parms, a declared range).
package settings

import (
	"sync"

	"github.com/spf13/cast"
	"gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrUnrecognizedOption is raised by Get/SetFlag/SetParm for a name
	// that was never registered (§7 UnrecognizedOption).
	ErrUnrecognizedOption = errors.NewKind("unrecognized option %q")
	// ErrOutOfRange is raised by SetParm when value falls outside the
	// parameter's declared [Min, Max].
	ErrOutOfRange = errors.NewKind("parameter %q value %d out of range [%d, %d]")
)

// Flag is a boolean switch declaration: its name and default value.
type Flag struct {
	Name    string
	Default bool
}

// Parm is an integer parameter declaration: its name, default and
// inclusive bounds.
type Parm struct {
	Name    string
	Default int64
	Min     int64
	Max     int64
}

// Store is the mutable registry of flag/parm values a prove.Loop or
// mace4/search.Search run consults, mirroring the teacher's
// SystemVariable registry (name -> typed, bounded, defaulted value).
type Store struct {
	mu    sync.RWMutex
	flags map[string]bool
	parms map[string]Parm
	pvals map[string]int64
}

// newStore returns an empty Store with no flags or parms declared.
func newStore() *Store {
	return &Store{
		flags: make(map[string]bool),
		parms: make(map[string]Parm),
		pvals: make(map[string]int64),
	}
}

// DeclareFlag registers f, seeding its current value to f.Default.
func (s *Store) DeclareFlag(f Flag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[f.Name] = f.Default
}

// DeclareParm registers p, seeding its current value to p.Default.
func (s *Store) DeclareParm(p Parm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parms[p.Name] = p
	s.pvals[p.Name] = p.Default
}

// GetFlag returns name's current boolean value.
func (s *Store) GetFlag(name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.flags[name]
	if !ok {
		return false, ErrUnrecognizedOption.New(name)
	}
	return v, nil
}

// GetParm returns name's current integer value.
func (s *Store) GetParm(name string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.pvals[name]
	if !ok {
		return 0, ErrUnrecognizedOption.New(name)
	}
	return v, nil
}

// SetFlag sets name to value.
func (s *Store) SetFlag(name string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.flags[name]; !ok {
		return ErrUnrecognizedOption.New(name)
	}
	s.flags[name] = value
	return nil
}

// SetParm sets name to value, rejecting a value outside the parameter's
// declared range.
func (s *Store) SetParm(name string, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parms[name]
	if !ok {
		return ErrUnrecognizedOption.New(name)
	}
	if value < p.Min || value > p.Max {
		return ErrOutOfRange.New(name, value, p.Min, p.Max)
	}
	s.pvals[name] = value
	return nil
}

// SetFlagString sets a boolean option from a CLI-style string ("true",
// "1", "on", ...), coercing with spf13/cast the way the teacher's flag
// glue coerces pflag string values into typed settings.
func (s *Store) SetFlagString(name, value string) error {
	b, err := cast.ToBoolE(value)
	if err != nil {
		return err
	}
	return s.SetFlag(name, b)
}

// SetParmString sets an integer option from a CLI-style string.
func (s *Store) SetParmString(name, value string) error {
	n, err := cast.ToInt64E(value)
	if err != nil {
		return err
	}
	return s.SetParm(name, n)
}

// NewDefaultStore returns a Store pre-seeded with every flag/parm named in
// the search/inference control surface (§4.6-§4.11, §6 CLI surface).
func NewDefaultStore() *Store {
	s := newStore()

	for _, f := range []Flag{
		{Name: "binary_resolution", Default: true},
		{Name: "hyper_resolution", Default: false},
		{Name: "ur_resolution", Default: false},
		{Name: "paramodulation", Default: true},
		{Name: "basic_paramodulation", Default: true},
		{Name: "para_into_vars", Default: false},
		{Name: "para_from_vars", Default: false},
		{Name: "factor", Default: true},
		{Name: "selection", Default: false},
		{Name: "forward_subsumption", Default: true},
		{Name: "back_subsumption", Default: false},
		{Name: "back_demodulation", Default: false},
		{Name: "eliminate", Default: false},
		{Name: "print_kept", Default: true},
		{Name: "print_given", Default: false},
		{Name: "negprop_neg_elim", Default: true},
		{Name: "negprop_neg_assign", Default: true},
		{Name: "negprop_neg_elim_near", Default: true},
		{Name: "negprop_neg_assign_near", Default: true},
		{Name: "mace4_primes_only", Default: false},
		{Name: "mace4_non_primes_only", Default: false},
	} {
		s.DeclareFlag(f)
	}

	for _, p := range []Parm{
		{Name: "max_weight", Default: 1 << 30, Min: 0, Max: 1 << 62},
		{Name: "max_given", Default: 0, Min: 0, Max: 1 << 62},
		{Name: "max_seconds", Default: 0, Min: 0, Max: 1 << 62},
		{Name: "max_proofs", Default: 1, Min: 0, Max: 1 << 62},
		{Name: "pick_given_ratio", Default: 0, Min: 0, Max: 1 << 20},
		{Name: "mace4_start_size", Default: 2, Min: 1, Max: 1 << 20},
		{Name: "mace4_end_size", Default: 10, Min: 1, Max: 1 << 20},
		{Name: "mace4_increment", Default: 1, Min: 1, Max: 1 << 20},
		{Name: "mace4_max_models", Default: 1, Min: 0, Max: 1 << 62},
		{Name: "mace4_max_seconds_per", Default: 0, Min: 0, Max: 1 << 62},
	} {
		s.DeclareParm(p)
	}

	return s
}
