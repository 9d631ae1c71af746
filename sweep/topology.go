// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import "fmt"

// A Node is one end of the benchmark pair.
type Node struct {
	// Name is a label for logs. It does not affect the run.
	Name string `yaml:"name"`

	// Addr is the address the transport uses to reach the node.
	Addr string `yaml:"addr"`

	// NIC names the interface that carries the test traffic. Both
	// nodes must agree on it, or the sweep would measure two
	// different network paths.
	NIC string `yaml:"nic"`
}

// A Topology is the sender/receiver pair a sweep runs between.
type Topology struct {
	Sender   Node `yaml:"sender"`
	Receiver Node `yaml:"receiver"`
}

// A ConfigError reports a configuration problem that makes the whole
// sweep unrunnable. Unlike per-artifact damage, a ConfigError is
// fatal: the run aborts before any aggregation.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration: " + e.Reason
}

// Validate checks that both roles are present and agree on the data
// NIC identity. A failure is a *ConfigError.
func (t Topology) Validate() error {
	if t.Sender.Addr == "" {
		return &ConfigError{"sender node has no address"}
	}
	if t.Receiver.Addr == "" {
		return &ConfigError{"receiver node has no address"}
	}
	if t.Sender.NIC != t.Receiver.NIC {
		return &ConfigError{fmt.Sprintf("data NIC mismatch: sender has %q, receiver has %q", t.Sender.NIC, t.Receiver.NIC)}
	}
	return nil
}
