// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweep drives a UDP throughput sweep end to end: it starts
// the benchmark job on the sender node, polls the job's state until
// it ends, fetches the iperf artifacts, and reduces them to per-cell
// results.
//
// The package does not know how to reach the test nodes. Callers
// supply an Executor and a Fetcher wrapping whatever transport the
// deployment uses.
package sweep

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/classicvalues/lisa/sweepstat"
)

// An Executor runs a command on a node and returns its combined
// output.
type Executor interface {
	Exec(ctx context.Context, node Node, cmd string) (string, error)
}

// A Fetcher copies a node's remote directory into a local one.
type Fetcher interface {
	Fetch(ctx context.Context, node Node, remoteDir, localDir string) error
}

// A Runner drives one sweep described by a Runbook.
type Runner struct {
	Runbook *Runbook
	Exec    Executor
	Fetch   Fetcher

	// Log receives progress and per-artifact warnings. If nil,
	// they are discarded.
	Log *log.Logger
}

// Run executes the sweep and aggregates its artifacts into dir.
// It returns the job's final state and, when the state's outcome is
// a pass, the per-cell results. Damaged artifacts are logged and
// skipped. The error is non-nil only for configuration and transport
// problems, which abort the run.
func (r *Runner) Run(ctx context.Context, dir string) (State, []sweepstat.CellResult, error) {
	rb := r.Runbook
	if err := rb.Topology.Validate(); err != nil {
		return StateAborted, nil, err
	}
	if rb.Start == "" || rb.StateFile == "" || rb.ArtifactDir == "" {
		return StateAborted, nil, &ConfigError{"runbook does not describe the remote job"}
	}

	r.logf("%s: starting job on %s", rb.TestCaseName, rb.Topology.Sender.Addr)
	if _, err := r.Exec.Exec(ctx, rb.Topology.Sender, rb.Start); err != nil {
		return StateAborted, nil, fmt.Errorf("starting job: %v", err)
	}

	state, err := r.await(ctx)
	if err != nil {
		return state, nil, err
	}
	r.logf("%s: job ended %v (%v)", rb.TestCaseName, state, state.Outcome())
	if state.Outcome() != Pass {
		return state, nil, nil
	}

	if err := r.Fetch.Fetch(ctx, rb.Topology.Sender, rb.ArtifactDir, dir); err != nil {
		return state, nil, fmt.Errorf("fetching artifacts: %v", err)
	}
	coll, err := sweepstat.CollectDir(dir, rb.Matrix, func(err error) { r.logf("%v", err) })
	if err != nil {
		return state, nil, err
	}
	return state, coll.Results(rb.Matrix), nil
}

// await polls the job's state file until the job reports a terminal
// state or the run deadline passes. A token that does not parse is
// logged and treated as still running; the job may be mid-write.
func (r *Runner) await(ctx context.Context) (State, error) {
	rb := r.Runbook
	deadline := time.Now().Add(rb.Timeout)
	ticker := time.NewTicker(rb.Poll)
	defer ticker.Stop()
	for {
		out, err := r.Exec.Exec(ctx, rb.Topology.Sender, "cat "+rb.StateFile)
		if err != nil {
			return StateAborted, fmt.Errorf("reading job state: %v", err)
		}
		state, err := ParseState(out)
		if err != nil {
			r.logf("%v", err)
			state = StateRunning
		}
		if state.Terminal() {
			return state, nil
		}
		if !time.Now().Before(deadline) {
			return StateRunningAtTimeout, nil
		}
		select {
		case <-ctx.Done():
			return StateAborted, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (r *Runner) logf(format string, args ...interface{}) {
	if r.Log != nil {
		r.Log.Printf(format, args...)
	}
}
