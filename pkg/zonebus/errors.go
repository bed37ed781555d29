// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openzone Developers

package zonebus

import "errors"

// Synchronization-level errors. These are absorbed inside the Synchronizer
// scan loop and never surface to callers of NextFrame.
var (
	ErrFrameTooShort    = errors.New("frame too short")
	ErrInvalidLength    = errors.New("invalid frame length")
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Session-level errors.
var (
	ErrEndOfStream = errors.New("end of stream")
	ErrNoReply     = errors.New("no reply received")
	ErrErrorReply  = errors.New("device reported an error")
)

// Caller errors.
var (
	ErrDataTooLong       = errors.New("frame data exceeds 255 bytes")
	ErrInvalidFunction   = errors.New("invalid function name")
	ErrInvalidMode       = errors.New("invalid mode name")
	ErrInvalidZone       = errors.New("zone index out of range")
	ErrIncompleteRawDump = errors.New("raw dump is missing a required row")
	ErrMalformedRawDump  = errors.New("malformed raw dump")
)
