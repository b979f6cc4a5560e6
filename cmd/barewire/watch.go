// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/barewire/barewire/internal/run"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch file...",
	Short: "Revalidate schema files on an interval until interrupted",
	Long:  "Polls the given schema files every --interval and reports validation failures, running until interrupted (Ctrl-C); after an interrupt it waits up to 5 seconds for the current pass to finish.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		interval := watchInterval
		if !cmd.Flags().Changed("interval") {
			interval = cfg.WatchInterval()
		}
		err := run.Start(context.Background(), 5*time.Second, func(ctx context.Context) error {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if err := run.Each(ctx, args, 0, func(_ context.Context, path string) error {
						return validateOne(path)
					}); err != nil {
						fmt.Fprintf(os.Stderr, "watch: %s\n", err)
					}
				}
			}
		})
		if err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 2*time.Second, "how often to revalidate")
	rootCmd.AddCommand(watchCmd)
}
