// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iperffmt

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name string
		want ArtifactRef
		ok   bool
	}{
		{"iperf-client-udp-IPv4-buffer-1024-conn-1-instance-1.json", ArtifactRef{Sender, 1024, 1, 1, ""}, true},
		{"iperf-server-udp-IPv4-buffer-131072-conn-64-instance-3.json", ArtifactRef{Receiver, 131072, 64, 3, ""}, true},
		{"IPERF-CLIENT-UDP-IPV4-BUFFER-1024-CONN-1-INSTANCE-1.JSON", ArtifactRef{Sender, 1024, 1, 1, ""}, true},
		{"iperf-client-udp-IPv4-buffer-2048-conn-16-instance-12", ArtifactRef{Sender, 2048, 16, 12, ""}, true},
		{"iperf-client-tcp-IPv4-buffer-1024-conn-1-instance-1.json", ArtifactRef{}, false},
		{"iperf-client-udp-IPv6-buffer-1024-conn-1-instance-1.json", ArtifactRef{}, false},
		{"iperf-client-udp-IPv4-buffer-1024-conn-1.json", ArtifactRef{}, false},
		{"sweep-notes.txt", ArtifactRef{}, false},
	}
	for _, test := range tests {
		got, ok := ParseName(test.name)
		if ok != test.ok || got != test.want {
			t.Errorf("ParseName(%q) = %+v, %v, want %+v, %v", test.name, got, ok, test.want, test.ok)
		}
	}
}

func TestMatch(t *testing.T) {
	const name = "iperf-client-udp-IPv4-buffer-1024-conn-8-instance-2.json"
	tests := []struct {
		role       Role
		buf, conns int
		want       bool
	}{
		{Sender, 1024, 8, true},
		{Receiver, 1024, 8, false},
		// Coordinate tokens match exactly, not by prefix.
		{Sender, 10240, 8, false},
		{Sender, 102, 8, false},
		{Sender, 1024, 80, false},
	}
	for _, test := range tests {
		if got := Match(name, test.role, test.buf, test.conns); got != test.want {
			t.Errorf("Match(%q, %v, %d, %d) = %v, want %v",
				name, test.role, test.buf, test.conns, got, test.want)
		}
	}
	if !Match("IPERF-SERVER-UDP-IPV4-BUFFER-8192-CONN-1-INSTANCE-1.LOG", Receiver, 8192, 1) {
		t.Errorf("upper-case name did not match")
	}
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"iperf-client-udp-IPv4-buffer-1024-conn-8-instance-2.json",
		"iperf-client-udp-IPv4-buffer-1024-conn-8-instance-1.json",
		"IPERF-CLIENT-UDP-IPV4-BUFFER-1024-CONN-8-INSTANCE-3.JSON",
		"iperf-server-udp-IPv4-buffer-1024-conn-8-instance-1.json",
		"iperf-client-udp-IPv4-buffer-10240-conn-8-instance-1.json",
		"iperf-client-udp-IPv4-buffer-1024-conn-80-instance-1.json",
		"sweep-notes.txt",
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("{}"), 0666); err != nil {
			t.Fatal(err)
		}
	}

	refs, err := Locate(dir, Sender, 1024, 8)
	if err != nil {
		t.Fatal(err)
	}
	var instances []int
	for _, ref := range refs {
		if ref.Role != Sender || ref.BufferSize != 1024 || ref.Connections != 8 {
			t.Errorf("Locate returned ref from another cell: %+v", ref)
		}
		if ref.Path == "" {
			t.Errorf("ref %v has no path", ref)
		}
		instances = append(instances, ref.Instance)
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(instances, want) {
		t.Errorf("instances = %v, want %v", instances, want)
	}

	if _, err := Locate(filepath.Join(dir, "missing"), Sender, 1024, 8); err == nil {
		t.Errorf("Locate on a missing directory succeeded")
	}
}
