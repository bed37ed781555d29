// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openzone Developers

package cmd

import (
	"fmt"
	"strconv"

	"github.com/openzone-dev/zonectl/pkg/zonebus"
	"github.com/spf13/cobra"
)

var readDest uint8

var readCmd = &cobra.Command{
	Use:   "read <table> <row>",
	Short: "Read one raw table/row record",
	Long: `Read a single table/row record from a bus device and print its raw bytes.

The output includes the 3-byte (0, table, row) echo prefix the device sends
back, so it can be edited and fed straight to the write command.`,
	Args: cobra.ExactArgs(2),
	RunE: runRead,
}

func init() {
	readCmd.Flags().Uint8Var(&readDest, "dest", 0, "Device to query (default: the controller)")
	rootCmd.AddCommand(readCmd)
}

func parseByteArg(name, s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %v", name, s, err)
	}
	return byte(v), nil
}

func runRead(cmd *cobra.Command, args []string) error {
	table, err := parseByteArg("table", args[0])
	if err != nil {
		return err
	}
	row, err := parseByteArg("row", args[1])
	if err != nil {
		return err
	}

	session, conn, err := openSession()
	if err != nil {
		return err
	}
	defer conn.Close()

	dest := readDest
	if dest == 0 {
		dest = controllerID
	}

	data, err := session.ReadRow(dest, zonebus.TableRow{Table: table, Row: row})
	if err != nil {
		return err
	}

	for i, b := range data {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Printf("%02X", b)
	}
	fmt.Println()
	return nil
}
