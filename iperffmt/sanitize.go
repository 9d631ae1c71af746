// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iperffmt

import "bytes"

var (
	nan     = []byte("-nan")
	zero    = []byte("0")
	warning = []byte("warning")
	newline = []byte("\n")
)

// Sanitize repairs the known corruptions in a raw iperf3 UDP artifact
// so that it can be decoded as JSON. Undefined floating-point
// summaries are printed as the token "-nan"; every occurrence becomes
// "0". Diagnostic warning lines are interleaved with the document by
// output redirection; every line containing "warning" in any case is
// dropped. Token replacement runs first, then line filtering.
//
// Sanitize does not modify data, and applying it to its own output
// changes nothing.
func Sanitize(data []byte) []byte {
	data = bytes.ReplaceAll(data, nan, zero)
	lines := bytes.Split(data, newline)
	kept := lines[:0]
	for _, line := range lines {
		if bytes.Contains(bytes.ToLower(line), warning) {
			continue
		}
		kept = append(kept, line)
	}
	return bytes.Join(kept, newline)
}
