// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openzone Developers

// Package zonebus implements the client side of the binary serial protocol
// spoken on the zone-controller bus of multi-zone HVAC systems.
//
// The bus is a multidrop RS-485 network shared by the main controller and the
// zone devices. Frames carry no start-of-frame marker and collisions from
// other transmitters corrupt traffic in flight, so this package provides
// frame encoding/decoding with CRC validation, checksum-scan stream
// resynchronization, and a retrying request/reply transaction layer on top
// of any byte transport.
package zonebus

import "time"

// Wire format constants.
//
// A frame is laid out as:
//
//	[dest, 0, src, 0, length, 0, 0, function] ++ data(length) ++ crc(2, little-endian)
//
// The CRC covers every preceding byte, so the CRC of a complete frame
// including its trailing checksum bytes is zero.
const (
	HeaderSize   = 8
	ChecksumSize = 2

	// MinMessageSize is the smallest possible frame (one data byte).
	MinMessageSize = HeaderSize + 1 + ChecksumSize
	// MaxMessageSize is the largest possible frame (255 data bytes).
	MaxMessageSize = HeaderSize + 255 + ChecksumSize

	offDestination = 0
	offSource      = 2
	offLength      = 4
	offFunction    = 7
	offData        = 8
)

// Function codes observed on the bus. Codes outside this set are carried
// through untouched rather than rejected.
const (
	FuncReply Function = 0x06
	FuncRead  Function = 0x0B
	FuncWrite Function = 0x0C
	FuncError Function = 0x15
)

// Default addressing and transaction parameters. All of these are plain
// Config fields; the constants only provide the defaults.
const (
	DefaultLocalID      = 99
	DefaultControllerID = 1
	DefaultZoneCount    = 8
	DefaultSendAttempts = 5
	DefaultReplyWindow  = 5
	DefaultRetryBackoff = 3 * time.Second

	// MaxZones is the largest zone count the controller reports.
	MaxZones = 8
)

// CRC-16 configuration (reflected polynomial, zero initial value).
const crcPolynomial = 0xA001

// Mode is a system operating mode as reported in table 2 row 3.
type Mode byte

// Operating mode values.
const (
	ModeHeat          Mode = 0
	ModeCool          Mode = 1
	ModeAuto          Mode = 2
	ModeEmergencyHeat Mode = 3
	ModeOff           Mode = 4
)

// String returns the lowercase mode name used by the CLI surface.
func (m Mode) String() string {
	switch m {
	case ModeHeat:
		return "heat"
	case ModeCool:
		return "cool"
	case ModeAuto:
		return "auto"
	case ModeEmergencyHeat:
		return "eheat"
	case ModeOff:
		return "off"
	default:
		return "unknown"
	}
}

// ModeByName maps a CLI mode name back to its wire value.
func ModeByName(name string) (Mode, error) {
	switch name {
	case "heat":
		return ModeHeat, nil
	case "cool":
		return ModeCool, nil
	case "auto":
		return ModeAuto, nil
	case "eheat":
		return ModeEmergencyHeat, nil
	case "off":
		return ModeOff, nil
	default:
		return 0, ErrInvalidMode
	}
}

// Equipment run-state bits in table 9 row 5.
const (
	equipFan byte = 1 << iota
	equipCompressor1
	equipCompressor2
	equipAuxHeat1
	equipAuxHeat2
	equipReversingValve
)
