// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweepstat

// A CellKey identifies one cell of the sweep matrix.
type CellKey struct {
	BufferSize  int // send buffer size in bytes
	Connections int // parallel connection count
}

// A Matrix is a sweep definition: the send buffer sizes and
// connection counts to cover, in declared order.
type Matrix struct {
	BufferSizes []int
	Connections []int
}

// Cells returns the matrix cells in sweep order: buffer sizes
// outermost, connection counts innermost. Reports list cells in this
// order and no other.
func (m Matrix) Cells() []CellKey {
	cells := make([]CellKey, 0, len(m.BufferSizes)*len(m.Connections))
	for _, b := range m.BufferSizes {
		for _, c := range m.Connections {
			cells = append(cells, CellKey{b, c})
		}
	}
	return cells
}
