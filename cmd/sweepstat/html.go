// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/google/safehtml/template"

	"github.com/classicvalues/lisa/sweepstat"
)

type htmlReport struct {
	TestCase string
	Date     string
	Results  []sweepstat.CellResult
}

var htmlTemplate = template.Must(template.New("report").ParseFromTrustedTemplate(template.MakeTrustedTemplate(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.TestCase}} {{.Date}}</title>
<style>
.sweep { border-collapse: collapse; }
.sweep th, .sweep td { border: 1px solid #ccc; padding: 0.2em 0.8em; text-align: right; }
.sweep .drop { font-weight: bold; color: #c00; }
</style>
</head>
<body>
<h1>{{.TestCase}} {{.Date}}</h1>
<table class='sweep'>
<tr><th>buffer<th>connections<th>tx Gbit/s<th>rx Gbit/s<th>tx loss %<th>rx loss %<th>drop %
{{range .Results -}}
<tr><td>{{.BufferKB}}K<td>{{.Connections}}<td>{{printf "%.2f" .SenderGbps}}<td>{{printf "%.2f" .ReceiverGbps}}<td>{{printf "%.2f" .SenderLossPercent}}<td>{{printf "%.2f" .ReceiverLossPercent}}<td{{if gt .DropPercent 0.0}} class='drop'{{end}}>{{printf "%.2f" .DropPercent}}
{{end -}}
</table>
</body>
</html>
`)))

// formatHTML writes the report as a standalone HTML page.
func formatHTML(w io.Writer, testCase, date string, results []sweepstat.CellResult) error {
	return htmlTemplate.Execute(w, htmlReport{TestCase: testCase, Date: date, Results: results})
}
