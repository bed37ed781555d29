// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openzone Developers

package zonebus

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// CaptureRecord is one raw frame as it appeared on the wire, stored with its
// arrival time. Capture files are a plain CBOR stream of these records.
type CaptureRecord struct {
	Timestamp time.Time `cbor:"1,keyasint"`
	Raw       []byte    `cbor:"2,keyasint"`
}

// CaptureWriter appends capture records to a stream.
type CaptureWriter struct {
	enc *cbor.Encoder
}

// NewCaptureWriter creates a capture writer over w.
func NewCaptureWriter(w io.Writer) *CaptureWriter {
	return &CaptureWriter{enc: cbor.NewEncoder(w)}
}

// Write appends one raw frame to the capture.
func (cw *CaptureWriter) Write(f *Frame) error {
	raw, err := EncodeFrame(f.Destination, f.Source, f.Function, f.Data)
	if err != nil {
		return err
	}
	rec := CaptureRecord{Timestamp: f.Timestamp, Raw: raw}
	if err := cw.enc.Encode(rec); err != nil {
		return fmt.Errorf("write capture record: %w", err)
	}
	return nil
}

// CaptureReader replays capture records from a stream.
type CaptureReader struct {
	dec *cbor.Decoder
}

// NewCaptureReader creates a capture reader over r.
func NewCaptureReader(r io.Reader) *CaptureReader {
	return &CaptureReader{dec: cbor.NewDecoder(r)}
}

// Next returns the next captured frame, decoded through the same codec as
// live traffic. It returns ErrEndOfStream when the capture is exhausted.
func (cr *CaptureReader) Next() (*Frame, error) {
	var rec CaptureRecord
	if err := cr.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEndOfStream
		}
		return nil, fmt.Errorf("read capture record: %w", err)
	}
	f, _, err := DecodeFrame(rec.Raw)
	if err != nil {
		return nil, fmt.Errorf("captured frame: %w", err)
	}
	f.Timestamp = rec.Timestamp
	return f, nil
}
