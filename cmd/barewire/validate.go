// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/barewire/barewire/barewire"
	"github.com/barewire/barewire/cmd/barewire/schemafile"
	"github.com/barewire/barewire/internal/run"
	"github.com/barewire/barewire/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate file...",
	Short: "Check one or more schema files for structural violations",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := run.Each(context.Background(), args, 0, func(_ context.Context, path string) error {
			return validateOne(path)
		})
		if err != nil {
			log.Fatal(err)
		}
	},
}

func validateOne(path string) error {
	s, err := schemafile.Load(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := schema.Validate(s); err != nil {
		return fmt.Errorf("%s: %s", path, barewire.Render(err))
	}
	fmt.Printf("%s: OK\n", path)
	return nil
}
