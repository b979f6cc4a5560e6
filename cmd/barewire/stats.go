// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/barewire/barewire/schema/stringstats"
)

var statsCmd = &cobra.Command{
	Use:   "stats corpus.txt",
	Short: "Report FSST compressibility of a newline-delimited string corpus",
	Long:  "Trains an FSST symbol table over the lines of corpus.txt and reports the compression ratio achieved — a diagnostic for deciding whether a schema's string-heavy fields are worth compressing downstream.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		var corpus [][]byte
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())
			corpus = append(corpus, line)
		}
		if err := scanner.Err(); err != nil {
			log.Fatal(err)
		}

		report := stringstats.Analyze(corpus)
		fmt.Printf("samples: %d\n", report.Samples)
		fmt.Printf("raw: %s\n", humanize.Bytes(uint64(report.RawBytes)))
		fmt.Printf("compressed: %s\n", humanize.Bytes(uint64(report.CompressedBytes)))
		fmt.Printf("ratio: %.2fx\n", report.Ratio())
	},
}
