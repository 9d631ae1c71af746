// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/classicvalues/lisa/storage/fs"
)

func TestArchive(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	files := map[string]string{
		"iperf-client-udp-IPv4-buffer-1024-conn-1-instance-1.json": `{"intervals": []}`,
		"iperf-server-udp-IPv4-buffer-1024-conn-1-instance-1.json": `{"intervals": []}`,
	}
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0666); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0777); err != nil {
		t.Fatal(err)
	}

	fsys := fs.NewMemFS()
	const prefix = "PERF-NETWORK-UDP-IPV4/2023-05-17/"
	meta := map[string]string{"testcase": "PERF-NETWORK-UDP-IPV4", "date": "2023-05-17"}

	n, err := archive(ctx, fsys, prefix, meta, dir, "INSERT INTO Perf_Network_UDP")
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if n != 3 {
		t.Errorf("archived %d files, want 3", n)
	}

	names, err := fsys.List(ctx, prefix)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{
		prefix + "iperf-client-udp-IPv4-buffer-1024-conn-1-instance-1.json",
		prefix + "iperf-server-udp-IPv4-buffer-1024-conn-1-instance-1.json",
		prefix + "report.sql",
	}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("List = %v, want %v", names, want)
	}

	data, ok := fsys.ReadFile(prefix + "report.sql")
	if !ok || string(data) != "INSERT INTO Perf_Network_UDP\n" {
		t.Errorf("report.sql = %q, %v", data, ok)
	}
	if m := fsys.Metadata(prefix + "report.sql"); m["testcase"] != "PERF-NETWORK-UDP-IPV4" {
		t.Errorf("metadata = %v, want the testcase entry", m)
	}

	// No statement means no report object.
	fsys = fs.NewMemFS()
	if n, err := archive(ctx, fsys, prefix, meta, dir, ""); err != nil || n != 2 {
		t.Errorf("archive without statement = %d, %v; want 2, nil", n, err)
	}
}
