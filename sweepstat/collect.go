// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweepstat

import "github.com/classicvalues/lisa/iperffmt"

// CollectDir scans dir for the artifacts of every cell and role of
// matrix m and accumulates their metrics into a Collection. Damaged
// artifacts and extraction warnings go to warn, which may be nil;
// they never stop the collection. CollectDir fails only if the
// directory itself cannot be read.
func CollectDir(dir string, m Matrix, warn func(error)) (*Collection, error) {
	if warn == nil {
		warn = func(error) {}
	}
	var c Collection
	for _, cell := range m.Cells() {
		for _, role := range []iperffmt.Role{iperffmt.Sender, iperffmt.Receiver} {
			refs, err := iperffmt.Locate(dir, role, cell.BufferSize, cell.Connections)
			if err != nil {
				return nil, err
			}
			runs := iperffmt.NewRuns(refs)
			for runs.Scan() {
				switch rec := runs.Result().(type) {
				case *iperffmt.Run:
					metric := iperffmt.Extract(rec)
					for _, w := range metric.Warnings {
						warn(w)
					}
					c.Add(metric)
				case *iperffmt.ParseError:
					warn(rec)
				}
			}
		}
	}
	return &c, nil
}
