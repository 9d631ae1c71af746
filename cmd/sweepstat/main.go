// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Sweepstat aggregates the iperf artifacts of a UDP throughput sweep
// and reports per-cell results.
//
// Usage:
//
//	sweepstat [flags] artifactdir
//
// The artifact directory holds one JSON document per iperf run, named
//
//	iperf-<role>-udp-IPv4-buffer-<bytes>-conn-<count>-instance-<n>
//
// where role is client (the sender) or server (the receiver).
// Sweepstat matches every (buffer, connections) cell of the sweep
// against the directory, averages the per-instance metrics of each
// role, and prints one line per cell:
//
//	Buffer=128K Connections=4: SenderTxGbps=9.10 ReceiverRxGbps=8.00 UDPLoss=0.10%
//
// UDPLoss is the receiver-side datagram loss. Damaged artifacts are
// reported on standard error and skipped; a cell with no usable
// artifacts reports zeros.
//
// The -buffers and -conns flags define the sweep. Buffer sizes take
// binary prefixes ("8K", "1M"); both lists are comma-separated.
//
// The -format flag selects the output: text (above), csv, html (a
// standalone table), or sql (the insert statement that stores the
// report; environment columns are left blank, sweepsave fills them
// from a runbook). The -chart flag additionally writes one
// throughput-over-connections PNG per buffer size into a directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/classicvalues/lisa/bytesize"
	"github.com/classicvalues/lisa/sweepstat"
)

func main() {
	log.SetPrefix("sweepstat: ")
	log.SetFlags(0)
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// run is the main body of the sweepstat command. It writes the
// report to w and warnings to wErr.
func run(w, wErr io.Writer, args []string) error {
	flags := flag.NewFlagSet("sweepstat", flag.ContinueOnError)
	flags.SetOutput(wErr)
	var (
		flagBuffers = flags.String("buffers", "1K,8K,16K,32K,64K,128K,256K,512K,1M", "comma-separated buffer `sizes` of the sweep")
		flagConns   = flags.String("conns", "1,2,4,8,16,32,64,128", "comma-separated connection `counts` of the sweep")
		flagCase    = flags.String("case", "PERF-NETWORK-UDP-IPV4", "test case `name` for report rows")
		flagDate    = flags.String("date", time.Now().Format("2006-01-02"), "test `date` for report rows")
		flagFormat  = flags.String("format", "text", "output `format`: text, csv, html, or sql")
		flagTable   = flags.String("table", sweepstat.DefaultTable, "results table `name` for -format sql")
		flagChart   = flags.String("chart", "", "write per-buffer throughput charts into `dir`")
	)
	flags.Usage = func() {
		fmt.Fprintf(wErr, "usage: sweepstat [flags] artifactdir\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return errors.New("exactly one artifact directory is required")
	}

	buffers, err := parseInts(*flagBuffers, bytesize.ParseBytes)
	if err != nil {
		return fmt.Errorf("-buffers: %v", err)
	}
	conns, err := parseInts(*flagConns, strconv.Atoi)
	if err != nil {
		return fmt.Errorf("-conns: %v", err)
	}
	matrix := sweepstat.Matrix{BufferSizes: buffers, Connections: conns}

	coll, err := sweepstat.CollectDir(flags.Arg(0), matrix, func(err error) {
		fmt.Fprintln(wErr, err)
	})
	if err != nil {
		return err
	}
	results := coll.Results(matrix)

	switch *flagFormat {
	case "text":
		for _, r := range results {
			fmt.Fprintf(w, "%s: %s\n", r.Metadata(), r.Summary())
		}
	case "csv":
		if err := formatCSV(w, results); err != nil {
			return err
		}
	case "html":
		if err := formatHTML(w, *flagCase, *flagDate, results); err != nil {
			return err
		}
	case "sql":
		env := sweepstat.TestEnv{
			TestCaseName: *flagCase,
			TestDate:     *flagDate,
			IPVersion:    "IPv4",
			ProtocolType: "UDP",
		}
		if stmt := sweepstat.InsertStatement(*flagTable, env, results); stmt != "" {
			fmt.Fprintln(w, stmt)
		}
	default:
		return fmt.Errorf("unknown format %q", *flagFormat)
	}

	if *flagChart != "" {
		if err := sweepstat.Chart(results, *flagChart); err != nil {
			return err
		}
	}
	return nil
}

// parseInts parses a comma-separated list with parse.
func parseInts(s string, parse func(string) (int, error)) ([]int, error) {
	var ns []int
	for _, f := range strings.Split(s, ",") {
		n, err := parse(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		ns = append(ns, n)
	}
	return ns, nil
}
