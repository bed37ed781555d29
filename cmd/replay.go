// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openzone Developers

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/openzone-dev/zonectl/pkg/zonebus"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <capture-file>",
	Short: "Decode a capture file offline",
	Long: `Decode frames from a capture file recorded with monitor --capture.

Frames pass through the same codec as live traffic, so a capture replays
bit-identically without bus access.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	reader := zonebus.NewCaptureReader(f)
	count := 0
	for {
		frame, err := reader.Next()
		if err != nil {
			if errors.Is(err, zonebus.ErrEndOfStream) {
				log.Debug().Int("frames", count).Msg("replay finished")
				return nil
			}
			return err
		}
		fmt.Println(zonebus.FormatFrame(frame))
		count++
	}
}
