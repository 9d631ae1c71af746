// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweepstat aggregates iperf3 UDP sweep results.
//
// A Collection accumulates the per-instance metrics extracted by
// package iperffmt, grouped by sweep cell and role. Results reduces
// every cell of a sweep matrix to its rounded mean throughput and
// loss per role and the sender-to-receiver throughput drop, in sweep
// order, ready for report rendering.
package sweepstat

import (
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/classicvalues/lisa/iperffmt"
)

// A cellRole keys one role's samples within one cell.
type cellRole struct {
	cell CellKey
	role iperffmt.Role
}

// samples holds the present metric values for one (cell, role).
type samples struct {
	throughput []float64
	loss       []float64
}

// A Collection accumulates instance metrics grouped by sweep cell and
// role. The zero value is ready to use.
type Collection struct {
	groups map[cellRole]*samples
}

// Add accumulates one instance metric. Absent metrics contribute no
// samples: a repetition that lost its summary simply thins the cell.
func (c *Collection) Add(m iperffmt.InstanceMetric) {
	if c.groups == nil {
		c.groups = make(map[cellRole]*samples)
	}
	key := cellRole{CellKey{m.Ref.BufferSize, m.Ref.Connections}, m.Ref.Role}
	g := c.groups[key]
	if g == nil {
		g = new(samples)
		c.groups[key] = g
	}
	if m.HasThroughput {
		g.throughput = append(g.throughput, m.ThroughputGbps)
	}
	if m.HasLoss {
		g.loss = append(g.loss, m.LossPercent)
	}
}

// A CellResult is the aggregated outcome of one sweep cell. Every
// float field is already rounded to two decimals.
type CellResult struct {
	BufferKB    int // send buffer size in KBytes
	Connections int

	SenderGbps          float64
	ReceiverGbps        float64
	SenderLossPercent   float64
	ReceiverLossPercent float64

	// DropPercent is the throughput the receiver lost relative to
	// the sender, as a percentage of the sender mean. It is 0 when
	// the sender mean is 0 or does not exceed the receiver mean.
	DropPercent float64
}

// Results reduces the collection to one CellResult per matrix cell,
// in sweep order. A cell with no samples yields zero means. Results
// leaves the collection unchanged; calling it again produces
// identical output.
func (c *Collection) Results(m Matrix) []CellResult {
	cells := m.Cells()
	results := make([]CellResult, 0, len(cells))
	for _, cell := range cells {
		results = append(results, c.cellResult(cell))
	}
	return results
}

func (c *Collection) cellResult(cell CellKey) CellResult {
	snd := c.samplesFor(cell, iperffmt.Sender)
	rcv := c.samplesFor(cell, iperffmt.Receiver)

	r := CellResult{
		BufferKB:            cell.BufferSize / 1024,
		Connections:         cell.Connections,
		SenderGbps:          round2(mean(snd.throughput)),
		ReceiverGbps:        round2(mean(rcv.throughput)),
		SenderLossPercent:   round2(mean(snd.loss)),
		ReceiverLossPercent: round2(mean(rcv.loss)),
	}
	if r.SenderGbps > 0 && r.SenderGbps > r.ReceiverGbps {
		r.DropPercent = round2(100 * (r.SenderGbps - r.ReceiverGbps) / r.SenderGbps)
	}
	return r
}

func (c *Collection) samplesFor(cell CellKey, role iperffmt.Role) samples {
	if g := c.groups[cellRole{cell, role}]; g != nil {
		return *g
	}
	return samples{}
}

// mean returns the arithmetic mean of xs. An empty sample set has a
// defined mean of 0; an empty cell is a reportable zero result, not
// an error.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stats.Mean(xs)
}

// round2 rounds to two decimals. Rounding happens exactly once, when
// a CellResult is built; the drop computation consumes the already
// rounded means.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
