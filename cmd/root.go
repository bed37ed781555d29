// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openzone Developers

package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// Network connection flags (tcp:// bridge or ws:// gateway)
	busURL        string
	wsUsername    string
	wsNoSSLVerify bool

	// Bus addressing flags
	localID      uint8
	controllerID uint8
	zoneCount    int

	// Misc flags
	configPath string
	debug      bool

	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "zonectl",
	Short: "HVAC zone-controller bus client",
	Long: `Zonectl - query and command multi-zone HVAC controllers on their RS-485 bus.

The bus is a shared multidrop network without bus arbitration: collisions are
detected via checksum failures and tolerated via retries, never prevented.
Zonectl speaks the controller's table/row protocol for status queries,
setpoint and mode changes, raw record access, and passive monitoring.

Connection modes:
  Serial:  --port /dev/ttyUSB0 [--baud 9600]
  TCP:     --url tcp://host:port        (RS-485 bridge)
  Gateway: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the ZONECTL_PASSWORD
environment variable, or prompted interactively if not set.

Defaults can be placed in ` + "`~/.config/zonectl/config.toml`" + ` (see --config);
command-line flags override the file.`,
	Version: "1.2.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zerolog.InfoLevel
		if debug {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.StampMilli}).
			Level(level).With().Timestamp().Logger()

		return applyFileConfig(cmd)
	},
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 9600, "Baud rate (serial only)")

	// Network connection flags
	rootCmd.PersistentFlags().StringVarP(&busURL, "url", "u", "", "Bus bridge URL (tcp://, ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth (ws:// only)")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Bus addressing flags
	rootCmd.PersistentFlags().Uint8Var(&localID, "id", 99, "Local device id on the bus")
	rootCmd.PersistentFlags().Uint8Var(&controllerID, "controller", 1, "Controller device id")
	rootCmd.PersistentFlags().IntVar(&zoneCount, "zones", 8, "Number of zones the controller manages")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
