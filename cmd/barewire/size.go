// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/barewire/barewire/cmd/barewire/schemafile"
	"github.com/barewire/barewire/platform"
	"github.com/barewire/barewire/schema"
)

var use32 bool

var sizeCmd = &cobra.Command{
	Use:   "size file",
	Short: "Report the derived (min, max) byte size of a schema's root type",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := schemafile.Load(args[0])
		if err != nil {
			log.Fatal(err)
		}
		ctx := ctxFor(use32)
		sz := schema.SizeOf(ctx, s, s.RootType())
		switch {
		case sz.IsFixed:
			fmt.Printf("%s: fixed %s\n", args[0], humanize.Bytes(uint64(sz.Min)))
		case sz.Unbounded:
			fmt.Printf("%s: at least %s, unbounded\n", args[0], humanize.Bytes(uint64(sz.Min)))
		default:
			fmt.Printf("%s: %s - %s\n", args[0], humanize.Bytes(uint64(sz.Min)), humanize.Bytes(uint64(sz.Max)))
		}
	},
}

var alignCmd = &cobra.Command{
	Use:   "align file",
	Short: "Report the alignment of a schema's root type",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := schemafile.Load(args[0])
		if err != nil {
			log.Fatal(err)
		}
		ctx := ctxFor(use32)
		fmt.Printf("%s: align %d\n", args[0], schema.AlignOf(ctx, s, s.RootType()))
	},
}

func init() {
	sizeCmd.Flags().BoolVar(&use32, "32", false, "use a 32-bit platform context instead of 64-bit")
	alignCmd.Flags().BoolVar(&use32, "32", false, "use a 32-bit platform context instead of 64-bit")
}

// ctxFor resolves the platform context a size/align/view command
// should use: an explicit --32 flag wins, otherwise the loaded config
// (or its "64" default) decides.
func ctxFor(is32 bool) platform.Context {
	if is32 {
		return platform.Default32
	}
	ctx, err := cfg.PlatformContext()
	if err != nil {
		log.Fatal(err)
	}
	return ctx
}
