// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openzone Developers

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// fileConfig mirrors the TOML config file. Every field is optional;
// command-line flags always win over file values.
type fileConfig struct {
	Port         string `toml:"port"`
	Baud         int    `toml:"baud"`
	URL          string `toml:"url"`
	Username     string `toml:"username"`
	LocalID      uint8  `toml:"id"`
	ControllerID uint8  `toml:"controller"`
	Zones        int    `toml:"zones"`
}

// defaultConfigPath returns ~/.config/zonectl/config.toml, or "" if the home
// directory cannot be determined.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "zonectl", "config.toml")
}

// applyFileConfig loads the config file (if any) into the flag variables,
// skipping every flag the user set explicitly. A missing default config file
// is fine; a missing --config file is an error.
func applyFileConfig(cmd *cobra.Command) error {
	path := configPath
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return nil
		}
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("loaded config file")

	flags := cmd.Root().PersistentFlags()
	if meta.IsDefined("port") && !flags.Changed("port") {
		portName = raw.Port
	}
	if meta.IsDefined("baud") && !flags.Changed("baud") {
		baudRate = raw.Baud
	}
	if meta.IsDefined("url") && !flags.Changed("url") {
		busURL = raw.URL
	}
	if meta.IsDefined("username") && !flags.Changed("username") {
		wsUsername = raw.Username
	}
	if meta.IsDefined("id") && !flags.Changed("id") {
		localID = raw.LocalID
	}
	if meta.IsDefined("controller") && !flags.Changed("controller") {
		controllerID = raw.ControllerID
	}
	if meta.IsDefined("zones") && !flags.Changed("zones") {
		zoneCount = raw.Zones
	}
	return nil
}
