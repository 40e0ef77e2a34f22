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

// Command prover9 reads one or more clause files, runs the given-clause
// saturation loop over their union, and prints either a proof or the
// reason none was found (§6 External Interfaces).
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/ladr-go/ladr/cmd/internal/clausefmt"
	"github.com/ladr-go/ladr/prove"
	"github.com/ladr-go/ladr/settings"
	"github.com/ladr-go/ladr/term"
	"github.com/ladr-go/ladr/weight"

	"github.com/ladr-go/ladr/limit"
	"github.com/ladr-go/ladr/proof"
)

// Exit codes per §6: 0 proof found (max-proofs reached), 2 sos emptied
// without a proof, 5 max-seconds reached without a proof, 102 fatal
// (unreadable or malformed input). §6 also lists 4 (max-seconds reached
// WITH a proof already found) and 101 (interrupted by signal); prove.Loop
// always returns as soon as the first proof is found (max_proofs>1 is
// accepted as a setting but not yet driven by another search round after
// success, a documented simplification), and this command installs no
// signal handler, so those two codes are never produced here.
const (
	exitProofFound = 0
	exitSaturated  = 2
	exitMaxSeconds = 5
	exitFatal      = 102
)

var log = logrus.WithField("system", "cmd/prover9")

func main() {
	var files []string
	var extract bool
	var sets []string
	pflag.StringArrayVarP(&files, "file", "f", nil, "clause file (repeatable; reads stdin if omitted)")
	pflag.BoolVarP(&extract, "extract", "x", false, "accepted for CLI-surface compatibility; no effect")
	pflag.StringArrayVar(&sets, "set", nil, "override a flag or parm: name=value (repeatable)")
	pflag.Parse()
	_ = extract

	store := settings.NewDefaultStore()
	if err := applyOverrides(store, sets); err != nil {
		fmt.Fprintln(os.Stderr, "prover9:", err)
		os.Exit(exitFatal)
	}

	tbl := term.NewTable()
	clauses, err := readClauses(tbl, files)
	if err != nil {
		fmt.Fprintln(os.Stderr, "prover9:", err)
		os.Exit(exitFatal)
	}

	maxSeconds, _ := store.GetParm("max_seconds")
	maxProofs, _ := store.GetParm("max_proofs")
	oracle := limit.NewWallClockOracle(float64(maxSeconds), maxProofs, 0)

	weigher := weight.Compile(nil)
	lp := prove.NewLoop(tbl, store, weigher, oracle)
	lp.AddSOS(clauses)

	log.WithField("clauses", len(clauses)).Info("prover9: starting search")
	result, err := lp.Run()
	switch {
	case err == nil:
		p := proof.NewProof(result)
		fmt.Print(proof.RenderIvy(p))
		oracle.RecordProof()
		os.Exit(exitProofFound)
	case prove.ErrSaturated.Is(err):
		fmt.Fprintln(os.Stderr, "prover9: sos exhausted, no proof found")
		os.Exit(exitSaturated)
	case prove.ErrLimitReached.Is(err):
		fmt.Fprintln(os.Stderr, "prover9:", err)
		os.Exit(exitMaxSeconds)
	default:
		fmt.Fprintln(os.Stderr, "prover9:", err)
		os.Exit(exitFatal)
	}
}

func applyOverrides(store *settings.Store, sets []string) error {
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("malformed --set %q: expected name=value", s)
		}
		if err := store.SetFlagString(name, value); err == nil {
			continue
		}
		if err := store.SetParmString(name, value); err != nil {
			return fmt.Errorf("--set %s: %w", name, err)
		}
	}
	return nil
}

func readClauses(tbl *term.Table, files []string) ([]*term.Clause, error) {
	if len(files) == 0 {
		return clausefmt.ParseClauses(tbl, os.Stdin)
	}
	var all []*term.Clause
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		cs, err := clausefmt.ParseClauses(tbl, f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		all = append(all, cs...)
	}
	return all, nil
}
