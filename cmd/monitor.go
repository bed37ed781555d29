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

var monitorCapture string

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Passively log all bus traffic",
	Long: `Continuously decode and display every frame on the bus, regardless of
addressing. Collision residue between frames is skipped silently and counted.

With --capture, every decoded frame is also appended to a capture file that
the replay command can decode offline.`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().StringVar(&monitorCapture, "capture", "", "Append decoded frames to a capture file")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	session, conn, err := openSession()
	if err != nil {
		return err
	}
	defer conn.Close()

	var capture *zonebus.CaptureWriter
	if monitorCapture != "" {
		f, err := os.OpenFile(monitorCapture, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		capture = zonebus.NewCaptureWriter(f)
	}

	for {
		frame, err := session.NextFrame()
		if err != nil {
			stats := session.Stats()
			log.Info().Uint64("frames", stats.Frames).
				Uint64("bytes_discarded", stats.BytesDiscarded).Msg("monitor finished")
			if errors.Is(err, zonebus.ErrEndOfStream) {
				return nil
			}
			return err
		}

		fmt.Println(zonebus.FormatFrame(frame))
		if capture != nil {
			if err := capture.Write(frame); err != nil {
				return err
			}
		}
	}
}
