// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openzone Developers

package cmd

import (
	"fmt"
	"time"

	"github.com/openzone-dev/zonectl/pkg/zonebus"
	"github.com/spf13/cobra"
)

var (
	setTempZone int
	setTempHeat int
	setTempCool int
	setTempHold bool
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change controller settings",
}

var setTempCmd = &cobra.Command{
	Use:   "temp",
	Short: "Set heat/cool setpoints for one zone",
	Long: `Set the heat and/or cool setpoint for a zone.

The zone's temporary flag is raised so the schedule does not immediately
revert the change; pass --hold to pin it until cleared.`,
	RunE: runSetTemp,
}

var setModeCmd = &cobra.Command{
	Use:       "mode <heat|cool|auto|eheat|off>",
	Short:     "Set the system operating mode",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"heat", "cool", "auto", "eheat", "off"},
	RunE:      runSetMode,
}

var setTimeCmd = &cobra.Command{
	Use:   "time",
	Short: "Sync the controller clock to this machine",
	RunE:  runSetTime,
}

func init() {
	setTempCmd.Flags().IntVar(&setTempZone, "zone", 1, "Zone number (1-based)")
	setTempCmd.Flags().IntVar(&setTempHeat, "heat", -1, "Heat setpoint in degrees")
	setTempCmd.Flags().IntVar(&setTempCool, "cool", -1, "Cool setpoint in degrees")
	setTempCmd.Flags().BoolVar(&setTempHold, "hold", false, "Hold the setpoints until cleared")

	setCmd.AddCommand(setTempCmd)
	setCmd.AddCommand(setModeCmd)
	setCmd.AddCommand(setTimeCmd)
	rootCmd.AddCommand(setCmd)
}

func runSetTemp(cmd *cobra.Command, args []string) error {
	if setTempHeat < 0 && setTempCool < 0 {
		return fmt.Errorf("nothing to do: pass --heat and/or --cool")
	}

	session, conn, err := openSession()
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := session.SetZoneSetpoints(setTempZone-1, setTempHeat, setTempCool, setTempHold); err != nil {
		return err
	}
	log.Info().Int("zone", setTempZone).Int("heat", setTempHeat).Int("cool", setTempCool).
		Bool("hold", setTempHold).Msg("setpoints updated")
	return nil
}

func runSetMode(cmd *cobra.Command, args []string) error {
	mode, err := zonebus.ModeByName(args[0])
	if err != nil {
		return err
	}

	session, conn, err := openSession()
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := session.SetSystemMode(mode); err != nil {
		return err
	}
	log.Info().Stringer("mode", mode).Msg("system mode updated")
	return nil
}

func runSetTime(cmd *cobra.Command, args []string) error {
	session, conn, err := openSession()
	if err != nil {
		return err
	}
	defer conn.Close()

	now := time.Now()
	if err := session.SetSystemTime(now); err != nil {
		return err
	}
	log.Info().Str("time", now.Format("Mon 15:04")).Msg("controller clock updated")
	return nil
}
