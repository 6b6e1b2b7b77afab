// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package config loads the subsystem's small YAML configuration: which
// seat to filter devices by, and which dumb-backend layout identity to
// report through Desc. Unlike a full XKB stack this backend does not
// compile the layout; the fields exist for diagnostics and for forward
// compatibility with a richer backend.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// Config is the on-disk configuration shape.
type Config struct {
	Seat string `yaml:"seat"`

	XkbLayout  string `yaml:"xkb_layout"`
	XkbVariant string `yaml:"xkb_variant"`
	XkbOptions string `yaml:"xkb_options"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is present or a
// field is left unset in one that is.
func Default() Config {
	return Config{
		Seat:       "seat0",
		XkbLayout:  "us",
		XkbVariant: "",
		XkbOptions: "",
		LogFile:    "",
		LogLevel:   "info",
	}
}

// Load reads filename and overlays it onto Default(). A missing file is
// not an error: the defaults are returned as-is, matching how the
// daemon this was adapted from treats an absent config file as "run
// with defaults", not a startup failure.
func Load(filename string) (Config, error) {
	cfg := Default()

	clean := filepath.Clean(filename)
	if strings.Contains(clean, "..") {
		return Config{}, fmt.Errorf("config: invalid path %q", filename)
	}

	data, err := os.ReadFile(clean)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("config: %s not found, using defaults", clean)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", clean, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", clean, err)
	}

	if cfg.Seat == "" {
		cfg.Seat = "seat0"
	}
	if cfg.XkbLayout == "" {
		cfg.XkbLayout = "us"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}
