// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweepstat

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/classicvalues/lisa/bytesize"
)

// Chart writes one PNG per buffer size under dir, plotting mean
// throughput against connection count for both roles. Files are named
// throughput-<buffer>.png after the buffer size.
func Chart(results []CellResult, dir string) error {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}

	// Group by buffer size, preserving sweep order.
	var buffers []int
	byBuffer := make(map[int][]CellResult)
	for _, r := range results {
		if _, ok := byBuffer[r.BufferKB]; !ok {
			buffers = append(buffers, r.BufferKB)
		}
		byBuffer[r.BufferKB] = append(byBuffer[r.BufferKB], r)
	}

	for _, kb := range buffers {
		rs := byBuffer[kb]
		name := bytesize.FormatBytes(kb * 1024)
		file := filepath.Join(dir, "throughput-"+name+".png")
		if err := chartBuffer(rs, name, file); err != nil {
			return fmt.Errorf("chart %s: %v", file, err)
		}
	}
	return nil
}

func chartBuffer(rs []CellResult, buffer, file string) error {
	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("UDP throughput, %s buffer", buffer)
	pl.X.Label.Text = "connections"
	pl.Y.Label.Text = "Gbit/s"
	pl.Y.Min = 0

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	snd := make(plotter.XYs, len(rs))
	rcv := make(plotter.XYs, len(rs))
	labels := make([]string, len(rs))
	for i, r := range rs {
		snd[i] = plotter.XY{X: float64(i), Y: r.SenderGbps}
		rcv[i] = plotter.XY{X: float64(i), Y: r.ReceiverGbps}
		labels[i] = strconv.Itoa(r.Connections)
	}

	sline, spts, err := plotter.NewLinePoints(snd)
	if err != nil {
		return err
	}
	rline, rpts, err := plotter.NewLinePoints(rcv)
	if err != nil {
		return err
	}
	red := color.NRGBA{0xCC, 0, 0, 0xFF}
	rline.Color = red
	rpts.GlyphStyle.Color = red

	pl.Add(sline, spts, rline, rpts)
	pl.Legend.Add("sender", sline, spts)
	pl.Legend.Add("receiver", rline, rpts)
	pl.Legend.Top = true
	pl.NominalX(labels...)

	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(20*vg.Centimeter, 12*vg.Centimeter),
		vgimg.UseDPI(150),
		vgimg.UseBackgroundColor(color.White),
	)}
	pl.Draw(draw.New(can))

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
