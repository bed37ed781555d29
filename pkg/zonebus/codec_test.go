// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openzone Developers

package zonebus

import (
	"bytes"
	"errors"
	"testing"
)

// ============================================================
// CRC Tests
// ============================================================

func TestChecksum_Empty(t *testing.T) {
	if crc := Checksum(nil); crc != 0 {
		t.Errorf("CRC of empty data should be 0, got 0x%04X", crc)
	}
}

func TestChecksum_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected uint16
	}{
		{
			name:     "ASCII '123456789'",
			data:     []byte("123456789"),
			expected: 0xBB3D, // standard CRC-16/ARC check value
		},
		{
			name:     "single zero byte",
			data:     []byte{0x00},
			expected: 0x0000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if crc := Checksum(tt.data); crc != tt.expected {
				t.Errorf("CRC mismatch: expected 0x%04X, got 0x%04X", tt.expected, crc)
			}
		})
	}
}

func TestChecksum_FullFrameSumsToZero(t *testing.T) {
	msg, err := EncodeFrame(1, 99, FuncRead, []byte{0, 9, 3})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if crc := Checksum(msg); crc != 0 {
		t.Errorf("CRC over frame including checksum should be 0, got 0x%04X", crc)
	}
}

// ============================================================
// Encode/Decode Tests
// ============================================================

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for size := 1; size <= 255; size++ {
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i * 7)
		}

		msg, err := EncodeFrame(8, 99, FuncWrite, data)
		if err != nil {
			t.Fatalf("size %d: encode: %v", size, err)
		}
		if len(msg) != HeaderSize+size+ChecksumSize {
			t.Fatalf("size %d: wire length %d", size, len(msg))
		}

		f, n, err := DecodeFrame(msg)
		if err != nil {
			t.Fatalf("size %d: decode: %v", size, err)
		}
		if n != len(msg) {
			t.Errorf("size %d: consumed %d of %d bytes", size, n, len(msg))
		}
		if f.Destination != 8 || f.Source != 99 {
			t.Errorf("size %d: addressing %d -> %d", size, f.Source, f.Destination)
		}
		if f.Function != FuncWrite {
			t.Errorf("size %d: function %s", size, f.Function)
		}
		if !bytes.Equal(f.Data, data) {
			t.Errorf("size %d: data mismatch", size)
		}
	}
}

func TestEncodeFrame_Limits(t *testing.T) {
	if _, err := EncodeFrame(1, 99, FuncWrite, make([]byte, 256)); !errors.Is(err, ErrDataTooLong) {
		t.Errorf("256-byte data: expected ErrDataTooLong, got %v", err)
	}
	if _, err := EncodeFrame(1, 99, FuncWrite, nil); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("empty data: expected ErrInvalidLength, got %v", err)
	}
}

func TestDecodeFrame_Short(t *testing.T) {
	msg, _ := EncodeFrame(1, 99, FuncRead, []byte{0, 1, 16})
	for n := 0; n < len(msg); n++ {
		if _, _, err := DecodeFrame(msg[:n]); !errors.Is(err, ErrFrameTooShort) {
			t.Errorf("prefix of %d bytes: expected ErrFrameTooShort, got %v", n, err)
		}
	}
}

func TestDecodeFrame_ZeroLength(t *testing.T) {
	buf := make([]byte, MinMessageSize)
	if _, _, err := DecodeFrame(buf); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
}

// Mutating any single wire byte must make validation fail: the checksum is
// the only framing signal the synchronizer has.
func TestDecodeFrame_SingleByteMutation(t *testing.T) {
	msg, err := EncodeFrame(99, 1, FuncReply, []byte{0, 9, 3, 1, 2})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	for i := range msg {
		for _, pattern := range []byte{0xFF, 0x01} {
			mutated := append([]byte(nil), msg...)
			mutated[i] ^= pattern
			if _, _, err := DecodeFrame(mutated); err == nil {
				t.Errorf("byte %d ^ 0x%02X: mutated frame decoded as valid", i, pattern)
			}
		}
	}
}

// ============================================================
// Function Code Tests
// ============================================================

func TestFunction_UnknownPassthrough(t *testing.T) {
	msg, err := EncodeFrame(99, 1, Function(0x42), []byte{1})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	f, _, err := DecodeFrame(msg)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.Function.Known() {
		t.Error("0x42 should not be a known function")
	}
	if byte(f.Function) != 0x42 {
		t.Errorf("raw byte lost: got 0x%02X", byte(f.Function))
	}
	if got := f.Function.String(); got != "unknown(0x42)" {
		t.Errorf("String() = %q", got)
	}
}

func TestFunctionByName(t *testing.T) {
	tests := []struct {
		name string
		want Function
		ok   bool
	}{
		{"read", FuncRead, true},
		{"write", FuncWrite, true},
		{"reply", FuncReply, true},
		{"error", FuncError, true},
		{"bogus", 0, false},
	}

	for _, tt := range tests {
		fn, err := FunctionByName(tt.name)
		if tt.ok && (err != nil || fn != tt.want) {
			t.Errorf("%q: got (%v, %v)", tt.name, fn, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidFunction) {
			t.Errorf("%q: expected ErrInvalidFunction, got %v", tt.name, err)
		}
	}
}
