// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openzone Developers

package zonebus

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestCapture_RoundTrip(t *testing.T) {
	frames := []*Frame{
		{Destination: 99, Source: 1, Function: FuncReply, Data: []byte{0, 9, 3, 1, 2}},
		{Destination: 1, Source: 99, Function: FuncRead, Data: []byte{0, 1, 16}},
		{Destination: 99, Source: 1, Function: FuncError, Data: []byte{4}},
	}
	for i, f := range frames {
		f.Length = byte(len(f.Data))
		f.Timestamp = time.Date(2026, 8, 30, 12, 0, i, 0, time.UTC)
	}

	var buf bytes.Buffer
	cw := NewCaptureWriter(&buf)
	for _, f := range frames {
		if err := cw.Write(f); err != nil {
			t.Fatalf("capture write: %v", err)
		}
	}

	cr := NewCaptureReader(&buf)
	for i, want := range frames {
		got, err := cr.Next()
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if got.Destination != want.Destination || got.Source != want.Source ||
			got.Function != want.Function || !bytes.Equal(got.Data, want.Data) {
			t.Errorf("record %d: got %s", i, FormatFrame(got))
		}
		if !got.Timestamp.Equal(want.Timestamp) {
			t.Errorf("record %d: timestamp %v, want %v", i, got.Timestamp, want.Timestamp)
		}
	}

	if _, err := cr.Next(); !errors.Is(err, ErrEndOfStream) {
		t.Errorf("expected ErrEndOfStream at end of capture, got %v", err)
	}
}
