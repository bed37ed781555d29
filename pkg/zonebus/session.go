// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openzone Developers

package zonebus

import (
	"fmt"
	"io"
	"time"
)

// Config carries the addressing and transaction parameters for one bus
// session. The zero value is usable: NewSession fills in defaults for any
// field left at zero.
type Config struct {
	// LocalID is this client's device id, used as the source address on
	// sends and the expected destination on replies.
	LocalID byte
	// ControllerID is the main controller's device id.
	ControllerID byte
	// ZoneCount is the number of zones the controller manages (1..MaxZones).
	ZoneCount int
	// SendAttempts is the total number of times a request is transmitted
	// before the transaction fails with ErrNoReply.
	SendAttempts int
	// ReplyWindow is how many frames are inspected per attempt before the
	// attempt is abandoned.
	ReplyWindow int
	// RetryBackoff is the pause between send attempts.
	RetryBackoff time.Duration
}

// DefaultConfig returns the configuration matching a stock installation.
func DefaultConfig() Config {
	return Config{
		LocalID:      DefaultLocalID,
		ControllerID: DefaultControllerID,
		ZoneCount:    DefaultZoneCount,
		SendAttempts: DefaultSendAttempts,
		ReplyWindow:  DefaultReplyWindow,
		RetryBackoff: DefaultRetryBackoff,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.LocalID == 0 {
		c.LocalID = d.LocalID
	}
	if c.ControllerID == 0 {
		c.ControllerID = d.ControllerID
	}
	if c.ZoneCount <= 0 || c.ZoneCount > MaxZones {
		c.ZoneCount = d.ZoneCount
	}
	if c.SendAttempts <= 0 {
		c.SendAttempts = d.SendAttempts
	}
	if c.ReplyWindow <= 0 {
		c.ReplyWindow = d.ReplyWindow
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = d.RetryBackoff
	}
	return c
}

// Session is one logical connection to the bus: a transport, a Synchronizer
// over its read side, and the request/reply transaction discipline.
//
// A Session supports one in-flight transaction at a time and owns the read
// buffer exclusively. Callers needing concurrent access must serialize
// externally.
type Session struct {
	conn io.ReadWriter
	sync *Synchronizer
	cfg  Config
}

// NewSession creates a Session over a blocking byte transport.
func NewSession(conn io.ReadWriter, cfg Config) *Session {
	return &Session{
		conn: conn,
		sync: NewSynchronizer(conn),
		cfg:  cfg.withDefaults(),
	}
}

// Config returns the session's normalized configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Stats returns the synchronizer counters for this session.
func (s *Session) Stats() SyncStats {
	return s.sync.Stats()
}

// NextFrame returns the next checksum-valid frame from the bus, regardless
// of addressing. Useful for passive monitoring.
func (s *Session) NextFrame() (*Frame, error) {
	return s.sync.NextFrame()
}

// SendWithReply transmits a request and waits for a matching reply.
//
// Frames not addressed to the local id are discarded, as are frames with
// functions other than reply/error. An error-function frame addressed to us
// is returned together with ErrErrorReply: a well-formed negative
// acknowledgement is not assumed to be transient, so it is never retried.
// Read replies must additionally echo the requested (0, table, row) bytes,
// which guards against adopting an unrelated reply that happens to land in
// the window.
//
// Each attempt inspects at most ReplyWindow frames; attempts are separated
// by RetryBackoff and the request is retransmitted each time. Exhausting
// SendAttempts yields ErrNoReply.
func (s *Session) SendWithReply(dest byte, fn Function, data []byte) (*Frame, error) {
	msg, err := EncodeFrame(dest, s.cfg.LocalID, fn, data)
	if err != nil {
		return nil, err
	}

	var echo TableRow
	checkEcho := fn == FuncRead && len(data) >= 3
	if checkEcho {
		echo = TableRow{Table: data[1], Row: data[2]}
	}

	for attempt := 0; attempt < s.cfg.SendAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(s.cfg.RetryBackoff)
		}
		if _, err := s.conn.Write(msg); err != nil {
			return nil, fmt.Errorf("transport write: %w", err)
		}

		for seen := 0; seen < s.cfg.ReplyWindow; seen++ {
			f, err := s.sync.NextFrame()
			if err != nil {
				return nil, err
			}
			if !f.IsFor(s.cfg.LocalID) {
				continue
			}
			switch f.Function {
			case FuncError:
				return f, ErrErrorReply
			case FuncReply:
				if checkEcho && !f.EchoesRow(echo) {
					continue
				}
				return f, nil
			default:
				// Cross-talk from another transaction; not ours.
			}
		}
	}
	return nil, ErrNoReply
}

// ReadRow queries one table/row record from a device and returns the reply
// data, which starts with the (0, table, row) echo prefix.
func (s *Session) ReadRow(dest byte, tr TableRow) ([]byte, error) {
	f, err := s.SendWithReply(dest, FuncRead, []byte{0, tr.Table, tr.Row})
	if err != nil {
		return nil, fmt.Errorf("read table %d row %d: %w", tr.Table, tr.Row, err)
	}
	return f.Data, nil
}

// WriteRow writes one table/row record. The data must already carry the
// (0, table, row) prefix, as produced by ReadRow; read-modify-write is the
// only safe way to touch rows whose layout is only partially known.
func (s *Session) WriteRow(dest byte, data []byte) error {
	if len(data) < 3 {
		return ErrInvalidLength
	}
	_, err := s.SendWithReply(dest, FuncWrite, data)
	if err != nil {
		return fmt.Errorf("write table %d row %d: %w", data[1], data[2], err)
	}
	return nil
}

// FetchStatus queries every required status row live from the controller and
// decodes them into a StatusRecord. The decode path is shared with offline
// raw-dump replay, so identical raw bytes produce identical records.
func (s *Session) FetchStatus() (*StatusRecord, error) {
	rows := make(RowData, len(RequiredRows))
	for _, tr := range RequiredRows {
		data, err := s.ReadRow(s.cfg.ControllerID, tr)
		if err != nil {
			return nil, err
		}
		rows[tr] = data
	}
	return DecodeStatus(rows, s.cfg.ZoneCount)
}

// SetZoneSetpoints updates the heat/cool setpoints for one zone (0-based)
// via read-modify-write of the setpoint row. Negative setpoints leave the
// corresponding field untouched. The temporary flag for the zone is set and
// hold is applied as given.
func (s *Session) SetZoneSetpoints(zone, heat, cool int, hold bool) error {
	if zone < 0 || zone >= s.cfg.ZoneCount {
		return ErrInvalidZone
	}
	data, err := s.ReadRow(s.cfg.ControllerID, rowSetpoints)
	if err != nil {
		return err
	}
	if len(data) < 22 {
		return fmt.Errorf("%w: setpoint row", ErrInvalidLength)
	}
	if cool >= 0 {
		data[3+zone] = byte(cool)
	}
	if heat >= 0 {
		data[11+zone] = byte(heat)
	}
	data[19] |= 1 << zone
	if hold {
		data[20] |= 1 << zone
	} else {
		data[20] &^= 1 << zone
	}
	return s.WriteRow(s.cfg.ControllerID, data)
}

// SetSystemMode sets the operating mode via read-modify-write of the mode row.
func (s *Session) SetSystemMode(m Mode) error {
	data, err := s.ReadRow(s.cfg.ControllerID, rowMode)
	if err != nil {
		return err
	}
	if len(data) < 5 {
		return fmt.Errorf("%w: mode row", ErrInvalidLength)
	}
	data[3] = byte(m)
	return s.WriteRow(s.cfg.ControllerID, data)
}

// SetSystemTime pushes the local wall clock to the controller's time row.
func (s *Session) SetSystemTime(t time.Time) error {
	data, err := s.ReadRow(s.cfg.ControllerID, rowTime)
	if err != nil {
		return err
	}
	if len(data) < 6 {
		return fmt.Errorf("%w: time row", ErrInvalidLength)
	}
	data[3] = byte(t.Weekday())
	data[4] = byte(t.Hour())
	data[5] = byte(t.Minute())
	return s.WriteRow(s.cfg.ControllerID, data)
}
