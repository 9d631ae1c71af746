// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package iperffmt reads iperf3 UDP benchmark artifacts.
//
// The artifacts are the JSON documents a sweep of iperf3 runs leaves
// behind, one file per (role, buffer size, connection count,
// repetition). Raw artifacts are frequently corrupted in known ways;
// Sanitize repairs them before decoding, and damage beyond repair is
// reported per artifact as a recoverable *ParseError rather than
// stopping the scan.
package iperffmt

import (
	"encoding/json"
	"fmt"
	"os"
)

// A Record is one result of scanning artifacts: either a decoded *Run
// or a *ParseError for an artifact that could not be decoded.
type Record interface {
	// Artifact returns the artifact the record came from.
	Artifact() ArtifactRef
}

// A ParseError reports an artifact that could not be read or decoded
// even after sanitizing. It is recoverable: the rest of the sweep is
// unaffected.
type ParseError struct {
	Ref ArtifactRef
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Ref, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Artifact returns the artifact that failed to decode.
func (e *ParseError) Artifact() ArtifactRef { return e.Ref }

// Artifact returns the artifact the run was decoded from.
func (r *Run) Artifact() ArtifactRef { return r.Ref }

// Decode sanitizes and decodes one artifact's raw bytes. On failure
// it returns a *ParseError identifying ref.
func Decode(ref ArtifactRef, data []byte) (*Run, error) {
	run, err := decode(ref, data)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func decode(ref ArtifactRef, data []byte) (*Run, *ParseError) {
	text := Sanitize(data)
	run := &Run{Ref: ref, Text: text}
	if err := json.Unmarshal(text, run); err != nil {
		return nil, &ParseError{Ref: ref, Err: err}
	}
	return run, nil
}

// A Runs reads a sequence of artifact files, yielding one Record per
// file. Its API is modeled on bufio.Scanner:
//
//	runs := iperffmt.NewRuns(refs)
//	for runs.Scan() {
//		switch rec := runs.Result().(type) {
//		case *iperffmt.Run:
//			...
//		case *iperffmt.ParseError:
//			...
//		}
//	}
//
// An unreadable or undecodable artifact yields a *ParseError record;
// the scan itself never stops early.
type Runs struct {
	refs []ArtifactRef
	rec  Record
}

// NewRuns returns a Runs that scans refs in order.
func NewRuns(refs []ArtifactRef) *Runs {
	return &Runs{refs: refs}
}

// Scan advances to the next artifact and reports whether there was
// one. The caller should use the Result method to get its record.
func (r *Runs) Scan() bool {
	if len(r.refs) == 0 {
		r.rec = nil
		return false
	}
	ref := r.refs[0]
	r.refs = r.refs[1:]

	data, err := os.ReadFile(ref.Path)
	if err != nil {
		r.rec = &ParseError{Ref: ref, Err: err}
		return true
	}
	run, perr := decode(ref, data)
	if perr != nil {
		r.rec = perr
		return true
	}
	r.rec = run
	return true
}

// Result returns the record read by the last call to Scan.
func (r *Runs) Result() Record {
	return r.rec
}
