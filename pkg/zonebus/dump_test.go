// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openzone Developers

package zonebus

import (
	"encoding/base64"
	"errors"
	"reflect"
	"testing"
)

// ============================================================
// Raw Dump Tests
// ============================================================

func TestRawDump_RoundTrip(t *testing.T) {
	rows := buildStatusRows()

	decoded, err := DecodeRawDump(EncodeRawDump(rows))
	if err != nil {
		t.Fatalf("DecodeRawDump: %v", err)
	}
	if !reflect.DeepEqual(decoded, rows) {
		t.Error("round trip lost data")
	}
}

func TestRawDump_Deterministic(t *testing.T) {
	// Map iteration order must not leak into the blob.
	rows := buildStatusRows()
	first := EncodeRawDump(rows)
	for i := 0; i < 10; i++ {
		if EncodeRawDump(buildStatusRows()) != first {
			t.Fatal("dump encoding is not deterministic")
		}
	}
}

func TestRawDump_ReplaysToIdenticalStatus(t *testing.T) {
	rows := buildStatusRows()
	direct, err := DecodeStatus(rows, 3)
	if err != nil {
		t.Fatalf("DecodeStatus: %v", err)
	}

	replayed, err := DecodeRawDump(EncodeRawDump(direct.Raw))
	if err != nil {
		t.Fatalf("DecodeRawDump: %v", err)
	}
	viaDump, err := DecodeStatus(replayed, 3)
	if err != nil {
		t.Fatalf("DecodeStatus(replayed): %v", err)
	}

	if !reflect.DeepEqual(direct.Zones, viaDump.Zones) || direct.Clock != viaDump.Clock {
		t.Error("replay through a raw dump changed the decoded record")
	}
}

func TestDecodeRawDump_Malformed(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not base64", "!!not base64!!"},
		{"truncated header", base64.StdEncoding.EncodeToString([]byte{1, 16})},
		{"truncated payload", base64.StdEncoding.EncodeToString([]byte{1, 16, 10, 0, 1})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeRawDump(tt.blob); !errors.Is(err, ErrMalformedRawDump) {
				t.Errorf("expected ErrMalformedRawDump, got %v", err)
			}
		})
	}
}

func TestDecodeRawDump_Empty(t *testing.T) {
	rows, err := DecodeRawDump("")
	if err != nil {
		t.Fatalf("empty blob: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("empty blob produced %d rows", len(rows))
	}
}
