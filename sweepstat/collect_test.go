// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweepstat

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestCollectDir(t *testing.T) {
	const sender = `{"intervals": [{"sum": {"bits_per_second": 9000000000}}],
		"end": {"sum": {"lost_percent": 0.5, "packets": 1000}}}`
	const receiver = `{"intervals": [{"sum": {"bits_per_second": 8000000000}}],
		"end": {"sum": {"lost_percent": 0.5, "packets": 990}}}`

	dir := t.TempDir()
	files := map[string]string{
		"iperf-client-udp-IPv4-buffer-1024-conn-1-instance-1.json": sender,
		"iperf-server-udp-IPv4-buffer-1024-conn-1-instance-1.json": receiver,
		"iperf-client-udp-IPv4-buffer-1024-conn-1-instance-2.json": "not json",
		"notes.txt": "ignored",
	}
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0666); err != nil {
			t.Fatal(err)
		}
	}

	m := Matrix{BufferSizes: []int{1024}, Connections: []int{1}}
	var warnings []error
	c, err := CollectDir(dir, m, func(err error) { warnings = append(warnings, err) })
	if err != nil {
		t.Fatalf("CollectDir: %v", err)
	}

	got := c.Results(m)
	want := []CellResult{{
		BufferKB:            1,
		Connections:         1,
		SenderGbps:          9,
		ReceiverGbps:        8,
		SenderLossPercent:   0.5,
		ReceiverLossPercent: 0.5,
		DropPercent:         11.11,
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Results: got %+v, want %+v", got, want)
	}

	if len(warnings) != 1 {
		t.Fatalf("got %d warnings %v, want 1", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0].Error(), "instance-2") {
		t.Errorf("warning %q does not name the damaged artifact", warnings[0])
	}

	if _, err := CollectDir(filepath.Join(dir, "missing"), m, nil); err == nil {
		t.Error("CollectDir on a missing directory succeeded")
	}
}
