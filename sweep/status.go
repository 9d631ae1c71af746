// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"fmt"
	"strings"
)

// A State is the remote benchmark job's reported state. The job
// keeps a single state token in a well-known file on the sender
// node; the runner polls that file until the job reaches a terminal
// state or the run deadline passes.
type State int

const (
	// StateRunning means the job is still executing. It is the
	// only non-terminal state.
	StateRunning State = iota

	// StateCompleted means the job finished every cell.
	StateCompleted

	// StateFailed means the job detected a failure and stopped.
	StateFailed

	// StateAborted means the job was torn down before finishing.
	StateAborted

	// StateRunningAtTimeout means the job still reported Running
	// when the run deadline passed. Long sweeps routinely outlive
	// their final state write, so this is not treated as a
	// failure.
	StateRunningAtTimeout
)

var stateNames = [...]string{
	StateRunning:          "Running",
	StateCompleted:        "Completed",
	StateFailed:           "Failed",
	StateAborted:          "Aborted",
	StateRunningAtTimeout: "RunningAtTimeout",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether s ends the poll loop.
func (s State) Terminal() bool {
	return s != StateRunning
}

// ParseState parses the token the remote job writes to its state
// file: TestRunning, TestCompleted, TestFailed, or TestAborted.
// Matching is ASCII case-insensitive and ignores surrounding space.
func ParseState(tok string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(tok)) {
	case "testrunning":
		return StateRunning, nil
	case "testcompleted":
		return StateCompleted, nil
	case "testfailed":
		return StateFailed, nil
	case "testaborted":
		return StateAborted, nil
	}
	return StateAborted, fmt.Errorf("unknown job state %q", tok)
}

// An Outcome classifies a terminal state for reporting.
type Outcome int

const (
	Fail Outcome = iota
	Aborted
	Pass
)

var outcomeNames = [...]string{
	Fail:    "FAIL",
	Aborted: "ABORTED",
	Pass:    "PASS",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// Outcome classifies s for reporting. Completed and RunningAtTimeout
// both count as a pass: a job that was still running at the deadline
// is presumed to have done its work without writing its final state.
func (s State) Outcome() Outcome {
	switch s {
	case StateCompleted, StateRunningAtTimeout:
		return Pass
	case StateAborted:
		return Aborted
	}
	return Fail
}
