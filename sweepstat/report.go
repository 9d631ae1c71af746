// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweepstat

import (
	"fmt"
	"strings"
)

// DefaultTable is the results table reports are stored in when a
// runbook or flag does not name one.
const DefaultTable = "Perf_Network_UDP"

// A TestEnv carries the fixed environment columns every row of a
// sweep's report shares.
type TestEnv struct {
	TestCaseName  string
	TestDate      string // YYYY-MM-DD
	HostType      string // hosting platform, e.g. "Azure"
	HostBy        string // location within the platform
	HostOS        string
	GuestOSType   string // e.g. "Linux"
	GuestDistro   string
	GuestSize     string
	KernelVersion string
	IPVersion     string
	ProtocolType  string
	DataPath      string // e.g. "Synthetic" or "SRIOV"
}

// Summary returns the cell's one-line human-readable form:
//
//	SenderTxGbps=9.10 ReceiverRxGbps=8.00 UDPLoss=0.10%
//
// UDPLoss is the receiver-side datagram loss.
func (r CellResult) Summary() string {
	return fmt.Sprintf("SenderTxGbps=%.2f ReceiverRxGbps=%.2f UDPLoss=%.2f%%",
		r.SenderGbps, r.ReceiverGbps, r.ReceiverLossPercent)
}

// Metadata returns the cell's identity line:
//
//	Buffer=128K Connections=4
func (r CellResult) Metadata() string {
	return fmt.Sprintf("Buffer=%dK Connections=%d", r.BufferKB, r.Connections)
}

// ResultColumns are the report row columns, in insert order. The
// first twelve come from TestEnv, the rest from the CellResult.
var ResultColumns = []string{
	"TestCaseName", "TestDate", "HostType", "HostBy", "HostOS",
	"GuestOSType", "GuestDistro", "GuestSize", "KernelVersion",
	"IPVersion", "ProtocolType", "DataPath",
	"SendBufSize_KBytes", "NumberOfConnections",
	"TxThroughput_Gbps", "RxThroughput_Gbps", "DatagramLoss",
}

// RowValues returns one report row in ResultColumns order, suitable
// as placeholder arguments for a parameterized insert. DatagramLoss
// is the receiver-side loss.
func RowValues(env TestEnv, r CellResult) []interface{} {
	return []interface{}{
		env.TestCaseName, env.TestDate, env.HostType, env.HostBy, env.HostOS,
		env.GuestOSType, env.GuestDistro, env.GuestSize, env.KernelVersion,
		env.IPVersion, env.ProtocolType, env.DataPath,
		r.BufferKB, r.Connections,
		r.SenderGbps, r.ReceiverGbps, r.ReceiverLossPercent,
	}
}

// InsertStatement renders the single multi-row insert that stores a
// sweep's report in table. Every result becomes one value tuple. An
// empty result list renders an empty statement, since there is
// nothing to insert.
func InsertStatement(table string, env TestEnv, results []CellResult) string {
	if len(results) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", table, strings.Join(ResultColumns, ", "))
	for _, r := range results {
		b.WriteString(tuple(env, r))
		b.WriteString(", ")
	}
	return strings.TrimSuffix(b.String(), ", ")
}

// tuple renders one result row as an insert value tuple. Strings
// become quoted SQL literals; throughput and loss keep their two
// rounded decimals.
func tuple(env TestEnv, r CellResult) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range RowValues(env, r) {
		if i > 0 {
			b.WriteString(", ")
		}
		switch v := v.(type) {
		case string:
			b.WriteString(quote(v))
		case int:
			fmt.Fprintf(&b, "%d", v)
		case float64:
			fmt.Fprintf(&b, "%.2f", v)
		}
	}
	b.WriteByte(')')
	return b.String()
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
