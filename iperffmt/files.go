// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iperffmt

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// A Role identifies which end of a run produced an artifact.
type Role int

const (
	// Sender is the transmitting end. Its artifacts carry the
	// "client" name token, because the iperf3 client transmits.
	Sender Role = iota
	// Receiver is the receiving end, the iperf3 server.
	Receiver
)

func (r Role) String() string {
	switch r {
	case Sender:
		return "sender"
	case Receiver:
		return "receiver"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// token returns r's artifact name token.
func (r Role) token() string {
	if r == Sender {
		return "client"
	}
	return "server"
}

// An ArtifactRef identifies one iperf3 output file within a sweep.
type ArtifactRef struct {
	Role        Role
	BufferSize  int // send buffer size in bytes
	Connections int // parallel connection count
	Instance    int // repetition number, from 1
	Path        string
}

// String returns the artifact's file name if it has one, and
// otherwise the canonical name for its sweep coordinates.
func (r ArtifactRef) String() string {
	if r.Path != "" {
		return filepath.Base(r.Path)
	}
	return fmt.Sprintf("iperf-%s-udp-IPv4-buffer-%d-conn-%d-instance-%d",
		r.Role.token(), r.BufferSize, r.Connections, r.Instance)
}

// nameRE is the artifact naming convention. Sweep runs name each
// output file by its coordinates:
//
//	iperf-<client|server>-udp-IPv4-buffer-<bytes>-conn-<count>-instance-<n>
//
// usually followed by an extension. Producers are not consistent
// about case, so the convention matches ASCII case-insensitively.
// This expression is the only owner of the convention; nothing else
// may assume name structure.
var nameRE = regexp.MustCompile(`(?i)iperf-(client|server)-udp-ipv4-buffer-([0-9]+)-conn-([0-9]+)-instance-([0-9]+)`)

// ParseName extracts an ArtifactRef from an artifact file name. The
// returned ref has no Path. ok is false if name does not follow the
// naming convention.
func ParseName(name string) (ref ArtifactRef, ok bool) {
	m := nameRE.FindStringSubmatch(name)
	if m == nil {
		return ArtifactRef{}, false
	}
	role := Sender
	if strings.EqualFold(m[1], "server") {
		role = Receiver
	}
	buf, err1 := strconv.Atoi(m[2])
	conn, err2 := strconv.Atoi(m[3])
	inst, err3 := strconv.Atoi(m[4])
	if err1 != nil || err2 != nil || err3 != nil {
		// Numbers too large to represent.
		return ArtifactRef{}, false
	}
	return ArtifactRef{Role: role, BufferSize: buf, Connections: conn, Instance: inst}, true
}

// Match reports whether an artifact file name belongs to the sweep
// cell with the given role, buffer size, and connection count. The
// coordinate tokens must match exactly: buffer-1024 does not match a
// buffer size of 10240.
func Match(name string, role Role, bufferSize, connections int) bool {
	ref, ok := ParseName(name)
	return ok && ref.Role == role && ref.BufferSize == bufferSize && ref.Connections == connections
}

// Locate returns a ref for every artifact in dir that belongs to the
// sweep cell (role, bufferSize, connections), sorted by instance.
// Files that do not match are ignored. Locate fails only if the
// directory itself cannot be read.
func Locate(dir string, role Role, bufferSize, connections int) ([]ArtifactRef, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var refs []ArtifactRef
	for _, ent := range ents {
		if ent.IsDir() || !Match(ent.Name(), role, bufferSize, connections) {
			continue
		}
		ref, _ := ParseName(ent.Name())
		ref.Path = filepath.Join(dir, ent.Name())
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Instance < refs[j].Instance })
	return refs, nil
}
