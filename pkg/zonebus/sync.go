// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openzone Developers

package zonebus

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Synchronizer recovers frame boundaries from an unstructured byte stream.
//
// The protocol has no start-of-frame marker, and collisions from other bus
// devices inject arbitrary garbage at arbitrary positions. The only reliable
// boundary signal is "this many consecutive bytes happen to satisfy the
// checksum", so the Synchronizer brute-forces a trial decode at every offset
// of its buffer and accepts the first one that validates.
//
// The buffer is exclusively owned by the Synchronizer; returned frames carry
// copies of their data bytes. Not safe for concurrent use.
type Synchronizer struct {
	r        io.Reader
	buf      []byte
	chunk    []byte
	needMore bool
	eof      bool

	stats SyncStats
}

// SyncStats counts what the Synchronizer has seen since creation.
type SyncStats struct {
	StartTime      time.Time
	Reads          uint64
	BytesRead      uint64
	Frames         uint64
	BytesDiscarded uint64
}

// NewSynchronizer creates a Synchronizer over a blocking byte source.
func NewSynchronizer(r io.Reader) *Synchronizer {
	return &Synchronizer{
		r:     r,
		buf:   make([]byte, 0, MaxMessageSize*2),
		chunk: make([]byte, MaxMessageSize),
		stats: SyncStats{StartTime: time.Now()},
	}
}

// Stats returns a snapshot of the synchronizer counters.
func (s *Synchronizer) Stats() SyncStats {
	return s.stats
}

// NextFrame blocks until a complete, checksum-valid frame can be extracted
// from the stream and returns it, consuming its bytes (and any garbage
// preceding it) from the buffer.
//
// It returns ErrEndOfStream once the transport is exhausted and the
// remaining buffered bytes cannot form a frame. Transport errors propagate
// wrapped; there is no retry at this layer.
func (s *Synchronizer) NextFrame() (*Frame, error) {
	for {
		if s.needMore || len(s.buf) < MinMessageSize {
			if s.eof {
				return nil, ErrEndOfStream
			}
			if err := s.fill(); err != nil {
				return nil, err
			}
			continue
		}

		// Scan every candidate offset in ascending order. A window that is
		// merely too short is skipped, not rejected: more payload may arrive
		// and validate it on a later pass, which is why each pass rescans
		// the buffer from scratch.
		for off := 0; off+MinMessageSize <= len(s.buf); off++ {
			f, size, err := DecodeFrame(s.buf[off:])
			if err != nil {
				continue
			}
			s.stats.Frames++
			s.stats.BytesDiscarded += uint64(off)
			s.buf = append(s.buf[:0], s.buf[off+size:]...)
			s.needMore = false
			return f, nil
		}

		s.needMore = true
	}
}

// fill performs one blocking transport read and appends whatever arrived.
func (s *Synchronizer) fill() error {
	n, err := s.r.Read(s.chunk)
	if n > 0 {
		s.buf = append(s.buf, s.chunk[:n]...)
		s.needMore = false
		s.stats.Reads++
		s.stats.BytesRead += uint64(n)
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			// Drain what we have before reporting end of stream.
			s.eof = true
			return nil
		}
		return fmt.Errorf("transport read: %w", err)
	}
	return nil
}
