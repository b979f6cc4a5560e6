// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/barewire/barewire/cmd/barewire/schemafile"
	"github.com/barewire/barewire/view"
)

var viewWritable bool

var viewCmd = &cobra.Command{
	Use:   "view schema.yaml datafile field",
	Short: "Read a single field out of a binary file via its typed view",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		schemaPath, dataPath, field := args[0], args[1], args[2]
		s, err := schemafile.Load(schemaPath)
		if err != nil {
			log.Fatal(err)
		}
		fv, err := view.OpenFile(ctxFor(use32), s, s.Root(), dataPath, viewWritable)
		if err != nil {
			log.Fatal(err)
		}
		defer fv.Close()

		value, err := fv.Get(field)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s = %v\n", field, value)
	},
}

func init() {
	viewCmd.Flags().BoolVar(&viewWritable, "writable", false, "map the file read-write")
	viewCmd.Flags().BoolVar(&use32, "32", false, "use a 32-bit platform context instead of 64-bit")
}
