// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the CLI's optional defaults file: the platform
// context (word/pointer size) schema files are analyzed against when a
// command doesn't pass --32 explicitly, and the default revalidation
// interval for "watch".
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/barewire/barewire/platform"
)

// Config is the parsed shape of a barewire defaults file.
type Config struct {
	Platform          string `yaml:"platform"` // "64" or "32"
	WatchIntervalSecs int    `yaml:"watch_interval_secs"`
}

// Default returns the configuration the CLI uses when no --config file
// is given: a 64-bit platform context and a 2-second watch interval.
func Default() *Config {
	return &Config{Platform: "64", WatchIntervalSecs: 2}
}

// WatchInterval returns the configured watch interval as a
// time.Duration.
func (c *Config) WatchInterval() time.Duration {
	return time.Duration(c.WatchIntervalSecs) * time.Second
}

// Load reads and parses a defaults file at path. A missing platform
// field defaults to "64".
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// PlatformContext resolves the configured platform string to a
// platform.Context.
func (c *Config) PlatformContext() (platform.Context, error) {
	switch c.Platform {
	case "", "64":
		return platform.Default64, nil
	case "32":
		return platform.Default32, nil
	default:
		return platform.Context{}, fmt.Errorf("config: unknown platform %q, want \"32\" or \"64\"", c.Platform)
	}
}
