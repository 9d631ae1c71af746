// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweepstat

import (
	"os"
	"path/filepath"
	"testing"
)

func TestChart(t *testing.T) {
	dir := t.TempDir()
	results := []CellResult{
		{BufferKB: 128, Connections: 1, SenderGbps: 3.1, ReceiverGbps: 3},
		{BufferKB: 128, Connections: 4, SenderGbps: 9.1, ReceiverGbps: 8},
		{BufferKB: 128, Connections: 8, SenderGbps: 9.2, ReceiverGbps: 8.9},
		{BufferKB: 1024, Connections: 1, SenderGbps: 4.2, ReceiverGbps: 4.1},
	}
	if err := Chart(results, filepath.Join(dir, "charts")); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"throughput-128K.png", "throughput-1M.png"} {
		fi, err := os.Stat(filepath.Join(dir, "charts", name))
		if err != nil {
			t.Fatal(err)
		}
		if fi.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
