// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openzone Developers

package zonebus

import (
	"fmt"
	"time"
)

// Function is a frame function code. Unrecognized codes are carried as-is so
// the client stays forward compatible with firmware that speaks new verbs.
type Function byte

// Known reports whether the function code is one this client understands.
func (f Function) Known() bool {
	switch f {
	case FuncReply, FuncRead, FuncWrite, FuncError:
		return true
	}
	return false
}

// String returns the function name, or unknown(0xNN) for unrecognized codes.
func (f Function) String() string {
	switch f {
	case FuncReply:
		return "reply"
	case FuncRead:
		return "read"
	case FuncWrite:
		return "write"
	case FuncError:
		return "error"
	default:
		return fmt.Sprintf("unknown(0x%02X)", byte(f))
	}
}

// FunctionByName maps a CLI function name to its wire code.
func FunctionByName(name string) (Function, error) {
	switch name {
	case "reply":
		return FuncReply, nil
	case "read":
		return FuncRead, nil
	case "write":
		return FuncWrite, nil
	case "error":
		return FuncError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFunction, name)
	}
}

// Frame is one decoded bus message. Frames are value objects: the decoder
// copies the data bytes out of the scan buffer, so a Frame never aliases
// transport state.
type Frame struct {
	Destination byte
	Source      byte
	Length      byte
	Function    Function
	Data        []byte
	Checksum    uint16
	Timestamp   time.Time
}

// Size returns the wire size of the frame including header and checksum.
func (f *Frame) Size() int {
	return HeaderSize + int(f.Length) + ChecksumSize
}

// IsFor reports whether the frame is addressed to the given device id.
func (f *Frame) IsFor(id byte) bool {
	return f.Destination == id
}

// EchoesRow reports whether the frame's data begins with the (0, table, row)
// echo that read replies carry. Used to match replies to read requests on a
// bus where unrelated replies can land inside the reply window.
func (f *Frame) EchoesRow(tr TableRow) bool {
	return len(f.Data) >= 3 && f.Data[0] == 0 && f.Data[1] == tr.Table && f.Data[2] == tr.Row
}
