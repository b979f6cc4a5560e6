// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/barewire/barewire/service/config"
)

var (
	configPath string
	cfg        = config.Default()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "barewire",
	Short: "barewire validates and inspects BARE schema files",
	Long:  "barewire validates and inspects BARE schema files: structural checks, size/alignment reports, compatibility comparisons, and typed-view field access over binary files.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if configPath == "" {
			return
		}
		loaded, err := config.Load(configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a barewire defaults file")
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(sizeCmd)
	rootCmd.AddCommand(alignCmd)
	rootCmd.AddCommand(compatCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(statsCmd)
}
