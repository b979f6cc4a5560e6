// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/barewire/barewire/cmd/barewire/schemafile"
	"github.com/barewire/barewire/schema"
)

var compatCmd = &cobra.Command{
	Use:   "compat old.yaml new.yaml",
	Short: "Classify the compatibility relationship between two schema files",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		oldS, err := schemafile.Load(args[0])
		if err != nil {
			log.Fatal(err)
		}
		newS, err := schemafile.Load(args[1])
		if err != nil {
			log.Fatal(err)
		}
		result := schema.CheckCompatibility(oldS, newS)
		if result.Reason == "" {
			fmt.Println(result.Level)
		} else {
			fmt.Printf("%s: %s\n", result.Level, result.Reason)
		}
	},
}
