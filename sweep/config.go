// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/classicvalues/lisa/bytesize"
	"github.com/classicvalues/lisa/sweepstat"
)

// A Runbook is a loaded sweep configuration: the cell matrix, the
// remote job's control points, the node topology, and the metadata
// recorded with the results.
type Runbook struct {
	TestCaseName string
	Matrix       sweepstat.Matrix

	// Instances is the number of repetitions the remote job runs
	// per cell. The job consumes it through the start command; the
	// aggregator simply averages whatever artifacts exist.
	Instances int

	// Start is the command that launches the benchmark job on the
	// sender node.
	Start string

	// StateFile is the remote path of the file the job keeps its
	// state token in.
	StateFile string

	// ArtifactDir is the remote directory the job writes iperf
	// artifacts to.
	ArtifactDir string

	Poll    time.Duration
	Timeout time.Duration

	Topology Topology
	Env      sweepstat.TestEnv
	DB       DBConfig
}

// A DBConfig locates the results database.
type DBConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Table  string `yaml:"table"`
}

// runbookYAML is the wire form of a Runbook. Sizes and durations
// arrive as strings ("128K", "10s") and are resolved by parse.
type runbookYAML struct {
	TestCase    string   `yaml:"testcase"`
	Buffers     []string `yaml:"buffers"`
	Connections []int    `yaml:"connections"`
	Instances   int      `yaml:"instances"`
	Start       string   `yaml:"start"`
	StateFile   string   `yaml:"statefile"`
	Artifacts   string   `yaml:"artifacts"`
	Poll        string   `yaml:"poll"`
	Timeout     string   `yaml:"timeout"`
	Topology    Topology `yaml:"topology"`
	Env         envYAML  `yaml:"env"`
	DB          DBConfig `yaml:"db"`
}

type envYAML struct {
	HostType      string `yaml:"hosttype"`
	HostBy        string `yaml:"hostby"`
	HostOS        string `yaml:"hostos"`
	GuestOSType   string `yaml:"guestostype"`
	GuestDistro   string `yaml:"guestdistro"`
	GuestSize     string `yaml:"guestsize"`
	KernelVersion string `yaml:"kernelversion"`
	IPVersion     string `yaml:"ipversion"`
	ProtocolType  string `yaml:"protocoltype"`
	DataPath      string `yaml:"datapath"`
}

// Load reads a YAML runbook from path. Omitted fields default to 3
// instances per cell, a 10 second poll interval, a 2 hour timeout,
// UDP over IPv4, and the Perf_Network_UDP table.
func Load(path string) (*Runbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rb, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return rb, nil
}

func parse(data []byte) (*Runbook, error) {
	var y runbookYAML
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, err
	}
	if y.TestCase == "" {
		return nil, &ConfigError{"runbook names no testcase"}
	}
	if len(y.Buffers) == 0 || len(y.Connections) == 0 {
		return nil, &ConfigError{"runbook defines an empty sweep"}
	}

	rb := &Runbook{
		TestCaseName: y.TestCase,
		Instances:    y.Instances,
		Start:        y.Start,
		StateFile:    y.StateFile,
		ArtifactDir:  y.Artifacts,
		Topology:     y.Topology,
		DB:           y.DB,
	}
	for _, b := range y.Buffers {
		n, err := bytesize.ParseBytes(b)
		if err != nil {
			return nil, &ConfigError{fmt.Sprintf("bad buffer size %q", b)}
		}
		rb.Matrix.BufferSizes = append(rb.Matrix.BufferSizes, n)
	}
	for _, c := range y.Connections {
		if c <= 0 {
			return nil, &ConfigError{fmt.Sprintf("bad connection count %d", c)}
		}
	}
	rb.Matrix.Connections = y.Connections

	if rb.Instances == 0 {
		rb.Instances = 3
	}
	if rb.Instances < 0 {
		return nil, &ConfigError{fmt.Sprintf("bad instance count %d", rb.Instances)}
	}

	var err error
	if rb.Poll, err = duration(y.Poll, 10*time.Second); err != nil {
		return nil, &ConfigError{fmt.Sprintf("bad poll interval %q", y.Poll)}
	}
	if rb.Timeout, err = duration(y.Timeout, 2*time.Hour); err != nil {
		return nil, &ConfigError{fmt.Sprintf("bad timeout %q", y.Timeout)}
	}

	rb.Env = sweepstat.TestEnv{
		TestCaseName:  y.TestCase,
		HostType:      y.Env.HostType,
		HostBy:        y.Env.HostBy,
		HostOS:        y.Env.HostOS,
		GuestOSType:   y.Env.GuestOSType,
		GuestDistro:   y.Env.GuestDistro,
		GuestSize:     y.Env.GuestSize,
		KernelVersion: y.Env.KernelVersion,
		IPVersion:     y.Env.IPVersion,
		ProtocolType:  y.Env.ProtocolType,
		DataPath:      y.Env.DataPath,
	}
	if rb.Env.IPVersion == "" {
		rb.Env.IPVersion = "IPv4"
	}
	if rb.Env.ProtocolType == "" {
		rb.Env.ProtocolType = "UDP"
	}
	if rb.DB.Table == "" {
		rb.DB.Table = sweepstat.DefaultTable
	}
	return rb, nil
}

func duration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("bad duration %q", s)
	}
	return d, nil
}
