// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openzone Developers
//
// zonectl - HVAC zone-controller bus client
//
// A CLI tool for querying and commanding multi-zone HVAC controllers over
// their shared RS-485 bus, with passive monitoring and offline replay.

package main

import (
	"os"

	"github.com/openzone-dev/zonectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
