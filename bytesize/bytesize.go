// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bytesize parses and formats byte counts with binary
// prefixes, such as "128K" for 131072. Sweep definitions and command
// lines name send buffer sizes this way.
package bytesize

import (
	"fmt"
	"strconv"
	"strings"
)

// factors are the recognized prefixes, largest first. Binary
// benchmark buffers scale by powers of 1024.
var factors = []struct {
	prefix string
	factor int
}{
	{"G", 1 << 30},
	{"M", 1 << 20},
	{"K", 1 << 10},
}

// ParseBytes parses a byte count with an optional binary prefix, such
// as "131072", "128K", or "1M". Prefixes are ASCII case-insensitive
// and may carry a trailing "B".
func ParseBytes(s string) (int, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	u = strings.TrimSuffix(u, "B")
	factor := 1
	for _, f := range factors {
		if strings.HasSuffix(u, f.prefix) {
			factor = f.factor
			u = strings.TrimSuffix(u, f.prefix)
			break
		}
	}
	n, err := strconv.Atoi(u)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid byte size %q", s)
	}
	return n * factor, nil
}

// FormatBytes formats a byte count using the largest binary prefix
// that divides it evenly, so FormatBytes(131072) is "128K" and
// FormatBytes(1536) is "1536".
func FormatBytes(n int) string {
	for _, f := range factors {
		if n >= f.factor && n%f.factor == 0 {
			return strconv.Itoa(n/f.factor) + f.prefix
		}
	}
	return strconv.Itoa(n)
}
