// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/classicvalues/lisa/sweepstat"
)

// formatCSV writes one row per cell, with a header row.
func formatCSV(w io.Writer, results []sweepstat.CellResult) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{
		"buffer_kbytes", "connections",
		"tx_gbps", "rx_gbps",
		"tx_loss_percent", "rx_loss_percent", "drop_percent",
	})
	for _, r := range results {
		cw.Write([]string{
			strconv.Itoa(r.BufferKB),
			strconv.Itoa(r.Connections),
			fmt.Sprintf("%.2f", r.SenderGbps),
			fmt.Sprintf("%.2f", r.ReceiverGbps),
			fmt.Sprintf("%.2f", r.SenderLossPercent),
			fmt.Sprintf("%.2f", r.ReceiverLossPercent),
			fmt.Sprintf("%.2f", r.DropPercent),
		})
	}
	cw.Flush()
	return cw.Error()
}
