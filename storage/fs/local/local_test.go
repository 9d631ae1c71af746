// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package local

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDiskFS(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	fs := NewFS(root)

	w, err := fs.NewWriter(ctx, "runs/2023-05-17/report.sql", nil)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if _, err := w.Write([]byte("INSERT INTO")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "runs/2023-05-17/report.sql"))
	if err != nil || string(data) != "INSERT INTO" {
		t.Errorf("ReadFile = %q, %v; want %q", data, err, "INSERT INTO")
	}

	w, err = fs.NewWriter(ctx, "runs/2023-05-17/aborted", nil)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	w.Write([]byte("partial"))
	if err := w.CloseWithError(context.Canceled); err != nil {
		t.Fatalf("CloseWithError: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "runs/2023-05-17/aborted")); !os.IsNotExist(err) {
		t.Errorf("abandoned file still exists (stat err %v)", err)
	}

	names, err := fs.List(ctx, "runs/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"runs/2023-05-17/report.sql"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("List = %v, want %v", names, want)
	}
}
