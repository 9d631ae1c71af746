// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iperffmt

import (
	"bytes"
	"fmt"
)

// outOfOrderMarker is the diagnostic iperf3 prints when the receiver
// observes reordered datagrams. It is counted case-sensitively;
// lower-case occurrences are unrelated prose.
var outOfOrderMarker = []byte("OUT OF ORDER")

// An InstanceMetric is the reduction of one run to the values the
// sweep aggregation consumes. Optional metrics carry explicit
// presence flags; an absent metric never contributes a zero sample.
type InstanceMetric struct {
	Ref ArtifactRef

	// ThroughputGbps is the mean of the run's interval throughput
	// reports in Gbit/s. It is absent when the run recorded no
	// intervals.
	ThroughputGbps float64
	HasThroughput  bool

	// LossPercent is the end-of-run datagram loss.
	LossPercent float64
	HasLoss     bool

	// OutOfOrder counts the run's out-of-order diagnostics. It is
	// informational and never makes a run unusable.
	OutOfOrder int

	// Warnings lists recoverable oddities about this run that
	// should be reported to the user: a missing or unusable end
	// summary, or out-of-order traffic.
	Warnings []error
}

// Extract reduces a decoded run to its instance metric. It never
// fails: a run without a usable end summary yields a metric with no
// present values and an attached warning.
//
// A run's end summary is usable iff it reports a loss percentage or
// a packet count. Runs that died before the summary was written, or
// whose summary fields were lost to corruption, are skipped whole;
// their interval reports describe a run that never completed.
func Extract(run *Run) InstanceMetric {
	m := InstanceMetric{Ref: run.Ref}

	m.OutOfOrder = bytes.Count(run.Text, outOfOrderMarker)
	if m.OutOfOrder > 0 {
		m.Warnings = append(m.Warnings, fmt.Errorf("%s: %d out-of-order packet reports", run.Ref, m.OutOfOrder))
	}

	sum := run.End.Sum
	if sum == nil || (sum.LostPercent == nil && sum.Packets == nil) {
		detail := ""
		if run.End.Error != "" {
			detail = ": " + run.End.Error
		}
		m.Warnings = append(m.Warnings, fmt.Errorf("%s: no usable end summary%s", run.Ref, detail))
		return m
	}

	if len(run.Intervals) > 0 {
		total := 0.0
		for _, in := range run.Intervals {
			total += in.Sum.BitsPerSecond
		}
		m.ThroughputGbps = total / float64(len(run.Intervals)) / 1e9
		m.HasThroughput = true
	}

	// A summary that reports only a packet count still describes a
	// completed run; its loss field was simply lost.
	m.HasLoss = true
	if sum.LostPercent != nil {
		m.LossPercent = *sum.LostPercent
	}
	return m
}
