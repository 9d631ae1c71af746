// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestText(t *testing.T) {
	golden(t, "text", "-buffers", "1K", "-conns", "1,4", "sweep")
}

func TestCSV(t *testing.T) {
	golden(t, "csv", "-format", "csv", "-buffers", "1K", "-conns", "1,4", "sweep")
}

func TestSQL(t *testing.T) {
	golden(t, "sql", "-format", "sql", "-date", "2023-05-17", "-buffers", "1K", "-conns", "1,4", "sweep")
}

func TestDamaged(t *testing.T) {
	// One artifact is truncated; it is reported and skipped.
	golden(t, "damaged", "-buffers", "1K", "-conns", "1", "damaged")
}

func TestChartFlag(t *testing.T) {
	dir := t.TempDir()
	var got, gotErr bytes.Buffer
	if err := run(&got, &gotErr, []string{"-buffers", "1K", "-conns", "1,4", "-chart", dir, "testdata/sweep"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	fi, err := os.Stat(filepath.Join(dir, "throughput-1K.png"))
	if err != nil || fi.Size() == 0 {
		t.Errorf("chart file missing or empty: %v", err)
	}
}

func TestBadInvocations(t *testing.T) {
	var got, gotErr bytes.Buffer
	if err := run(&got, &gotErr, []string{"-buffers", "1Q", "dir"}); err == nil {
		t.Error("bad -buffers accepted")
	}
	if err := run(&got, &gotErr, []string{"-conns", "one", "dir"}); err == nil {
		t.Error("bad -conns accepted")
	}
	if err := run(&got, &gotErr, []string{}); err == nil {
		t.Error("missing artifact directory accepted")
	}
	if err := run(&got, &gotErr, []string{"-format", "yaml", "testdata/sweep"}); err == nil {
		t.Error("unknown -format accepted")
	}
	if err := run(&got, &gotErr, []string{"testdata/missing"}); err == nil {
		t.Error("missing directory accepted")
	}
}

func golden(t *testing.T, name string, args ...string) {
	t.Helper()
	if err := os.Chdir("testdata"); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir("..")

	var got, gotErr bytes.Buffer
	t.Logf("sweepstat %s", strings.Join(args, " "))
	if err := run(&got, &gotErr, args); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	compare(t, name, "stdout", got.Bytes())
	compare(t, name, "stderr", gotErr.Bytes())
}

func compare(t *testing.T, name, sub string, got []byte) {
	t.Helper()

	wantPath := name + "." + sub
	want, err := os.ReadFile(wantPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Treat a missing file as empty.
			want = nil
		} else {
			t.Fatal(err)
		}
	}

	if !diff(t, want, got) {
		return
	}
	// diff printed the error.

	// Write a "got" file for reference.
	gotPath := name + ".got-" + sub
	if err := os.WriteFile(gotPath, got, 0666); err != nil {
		t.Fatalf("error writing %s: %s", gotPath, err)
	}
}

func diff(t *testing.T, want, got []byte) bool {
	t.Helper()
	if bytes.Equal(want, got) {
		return false
	}

	d := t.TempDir()
	wantPath, gotPath := filepath.Join(d, "want"), filepath.Join(d, "got")
	if err := os.WriteFile(wantPath, want, 0666); err != nil {
		t.Fatalf("error writing %s: %s", wantPath, err)
	}
	if err := os.WriteFile(gotPath, got, 0666); err != nil {
		t.Fatalf("error writing %s: %s", gotPath, err)
	}

	cmd := exec.Command("diff", "-Nu", "want", "got")
	cmd.Dir = d
	data, _ := cmd.CombinedOutput()
	if len(data) > 0 {
		t.Errorf("\n%s", data)
	} else {
		// Most likely, "diff not found" so print the bad
		// output so there is something.
		t.Errorf("want:\n%sgot:\n%s", want, got)
	}
	return true
}
