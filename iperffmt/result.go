// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iperffmt

// A Run is the decoded form of one iperf3 UDP artifact. Only the
// fields the aggregation consumes are decoded; everything else in the
// document is ignored.
//
// Optional summary fields decode into pointers so that absence
// survives decoding. An absent field must never be read as zero.
type Run struct {
	// Ref identifies the artifact the run was decoded from.
	Ref ArtifactRef `json:"-"`

	// Intervals holds the periodic throughput reports, in order.
	Intervals []Interval `json:"intervals"`

	// End is the end-of-run summary block.
	End EndSummary `json:"end"`

	// Text is the sanitized artifact text the run was decoded
	// from, retained for diagnostic scanning.
	Text []byte `json:"-"`
}

// An Interval is one periodic report.
type Interval struct {
	Sum IntervalSum `json:"sum"`
}

// An IntervalSum aggregates one report interval across connections.
type IntervalSum struct {
	BitsPerSecond float64 `json:"bits_per_second"`
}

// An EndSummary is the end-of-run block. Sum is nil when the run
// ended without a summary, which usually comes with an Error.
type EndSummary struct {
	Sum   *EndSum `json:"sum"`
	Error string  `json:"error"`
}

// An EndSum is the whole-run summary across connections.
type EndSum struct {
	LostPercent *float64 `json:"lost_percent"`
	Packets     *int64   `json:"packets"`
}
