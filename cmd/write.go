// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openzone Developers

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var writeDest uint8

var writeCmd = &cobra.Command{
	Use:   "write <table> <row> <byte>...",
	Short: "Write one raw table/row record",
	Long: `Write a single table/row record on a bus device.

The byte arguments are the record payload after the echo prefix; the
(0, table, row) prefix is prepended automatically. Record layouts are
reverse-engineered, so prefer read-modify-write: read the row, change the
bytes you understand, write the result back.`,
	Args: cobra.MinimumNArgs(3),
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().Uint8Var(&writeDest, "dest", 0, "Device to write (default: the controller)")
	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	table, err := parseByteArg("table", args[0])
	if err != nil {
		return err
	}
	row, err := parseByteArg("row", args[1])
	if err != nil {
		return err
	}

	data := []byte{0, table, row}
	for _, arg := range args[2:] {
		b, err := parseByteArg("data byte", arg)
		if err != nil {
			return err
		}
		data = append(data, b)
	}

	session, conn, err := openSession()
	if err != nil {
		return err
	}
	defer conn.Close()

	dest := writeDest
	if dest == 0 {
		dest = controllerID
	}

	if err := session.WriteRow(dest, data); err != nil {
		return err
	}
	fmt.Printf("wrote %d bytes to table %d row %d\n", len(data)-3, table, row)
	return nil
}
