// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stringstats is a diagnostic for the CLI's "stats" subcommand:
// it trains an FSST symbol table over a corpus of decoded string/data
// field values and reports how compressible they are. It never
// touches the wire format itself — this is purely advisory output for
// someone deciding whether a schema's string-heavy fields are worth a
// compression pass downstream.
package stringstats

import "github.com/axiomhq/fsst"

// Report summarizes one corpus's compressibility under a trained FSST
// table.
type Report struct {
	Samples         int
	RawBytes        int
	CompressedBytes int
}

// Ratio returns RawBytes / CompressedBytes, or 0 if nothing was
// compressed.
func (r Report) Ratio() float64 {
	if r.CompressedBytes == 0 {
		return 0
	}
	return float64(r.RawBytes) / float64(r.CompressedBytes)
}

// Analyze trains an FSST table over corpus and reports the aggregate
// compressed size it achieves. corpus elements shorter than 1 byte are
// skipped; FSST requires non-empty training input.
func Analyze(corpus [][]byte) Report {
	var nonEmpty [][]byte
	for _, b := range corpus {
		if len(b) > 0 {
			nonEmpty = append(nonEmpty, b)
		}
	}
	if len(nonEmpty) == 0 {
		return Report{}
	}

	tbl := fsst.Train(nonEmpty)
	var report Report
	for _, b := range nonEmpty {
		report.Samples++
		report.RawBytes += len(b)
		report.CompressedBytes += len(tbl.EncodeAll(b))
	}
	return report
}
