// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openzone Developers

package cmd

import (
	"github.com/openzone-dev/zonectl/pkg/zonebus"
)

// busConfig assembles the session configuration from the resolved flags.
func busConfig() zonebus.Config {
	cfg := zonebus.DefaultConfig()
	cfg.LocalID = localID
	cfg.ControllerID = controllerID
	cfg.ZoneCount = zoneCount
	return cfg
}

// openSession opens the configured transport and wraps it in a bus session.
// The caller owns the returned Connection and must close it.
func openSession() (*zonebus.Session, Connection, error) {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Str("connection", connInfo).Msg("connected")
	return zonebus.NewSession(conn, busConfig()), conn, nil
}
