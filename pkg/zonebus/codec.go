// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openzone Developers

package zonebus

import (
	"encoding/binary"
	"time"
)

// DecodeFrame attempts to decode one frame from the start of buf. On success
// it returns the frame and the number of bytes it occupied on the wire.
//
// The error distinguishes two recoverable cases the Synchronizer cares about:
// ErrFrameTooShort means buf may still grow into a valid frame at this
// offset, while ErrInvalidLength and ErrChecksumMismatch mean this offset can
// never hold a frame boundary.
func DecodeFrame(buf []byte) (*Frame, int, error) {
	if len(buf) < MinMessageSize {
		return nil, 0, ErrFrameTooShort
	}
	length := buf[offLength]
	if length == 0 {
		return nil, 0, ErrInvalidLength
	}
	size := HeaderSize + int(length) + ChecksumSize
	if len(buf) < size {
		return nil, 0, ErrFrameTooShort
	}
	// The checksum bytes participate in the CRC, so a valid frame sums to
	// zero over its full wire length.
	if Checksum(buf[:size]) != 0 {
		return nil, 0, ErrChecksumMismatch
	}

	f := &Frame{
		Destination: buf[offDestination],
		Source:      buf[offSource],
		Length:      length,
		Function:    Function(buf[offFunction]),
		Data:        append([]byte(nil), buf[offData:offData+int(length)]...),
		Checksum:    binary.LittleEndian.Uint16(buf[size-ChecksumSize : size]),
		Timestamp:   time.Now(),
	}
	return f, size, nil
}

// EncodeFrame builds the wire bytes for one frame. The reserved header bytes
// are always zero and the checksum is appended little-endian.
func EncodeFrame(dest, src byte, fn Function, data []byte) ([]byte, error) {
	if len(data) > 255 {
		return nil, ErrDataTooLong
	}
	if len(data) == 0 {
		return nil, ErrInvalidLength
	}

	msg := make([]byte, 0, HeaderSize+len(data)+ChecksumSize)
	msg = append(msg, dest, 0, src, 0, byte(len(data)), 0, 0, byte(fn))
	msg = append(msg, data...)

	crc := Checksum(msg)
	msg = append(msg, byte(crc), byte(crc>>8))
	return msg, nil
}
