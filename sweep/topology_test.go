// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"errors"
	"testing"
)

func TestTopologyValidate(t *testing.T) {
	good := Topology{
		Sender:   Node{Addr: "10.0.0.4", NIC: "eth1"},
		Receiver: Node{Addr: "10.0.0.5", NIC: "eth1"},
	}
	if err := good.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	bad := func(name string, top Topology) {
		t.Helper()
		err := top.Validate()
		var cerr *ConfigError
		if !errors.As(err, &cerr) {
			t.Errorf("%s: Validate() = %v, want a ConfigError", name, err)
		}
	}
	noSender := good
	noSender.Sender.Addr = ""
	bad("no sender", noSender)

	noReceiver := good
	noReceiver.Receiver.Addr = ""
	bad("no receiver", noReceiver)

	mismatch := good
	mismatch.Receiver.NIC = "eth2"
	bad("nic mismatch", mismatch)
}
