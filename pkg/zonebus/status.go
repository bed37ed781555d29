// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openzone Developers

package zonebus

import (
	"fmt"
	"time"
)

// TableRow addresses one queryable/writable record on the controller. Not a
// relational database: just the bus's two-byte addressing scheme.
type TableRow struct {
	Table byte
	Row   byte
}

func (tr TableRow) String() string {
	return fmt.Sprintf("%d/%d", tr.Table, tr.Row)
}

// RowData maps table/row keys to raw reply data. Each value starts with the
// 3-byte (0, table, row) echo prefix; all field offsets below include it.
type RowData = map[TableRow][]byte

// The rows a full status query needs. Field layouts were reverse-engineered
// from bus captures; treat the offsets as a lookup table.
var (
	rowTime      = TableRow{Table: 1, Row: 16} // d[3] weekday, d[4] hour, d[5] minute
	rowSetpoints = TableRow{Table: 1, Row: 17} // d[3..10] cool, d[11..18] heat, d[19..21] flag masks
	rowAllMode   = TableRow{Table: 1, Row: 18} // d[3] all-mode byte
	rowMode      = TableRow{Table: 2, Row: 3}  // d[3] system mode, d[4] effective mode
	rowTemps     = TableRow{Table: 9, Row: 3}  // d[3..6] outside/air-handler, d[7] humidity, d[8..] zone temps
	rowEquipment = TableRow{Table: 9, Row: 5}  // d[3] run-state bits, d[4..] damper positions
)

// RequiredRows lists every row a status decode needs, in query order.
var RequiredRows = []TableRow{rowTime, rowSetpoints, rowAllMode, rowMode, rowTemps, rowEquipment}

// Minimum data lengths per required row, echo prefix included.
var requiredRowLen = map[TableRow]int{
	rowTime:      6,
	rowSetpoints: 22,
	rowAllMode:   4,
	rowMode:      5,
	rowTemps:     8 + 2*MaxZones,
	rowEquipment: 4 + MaxZones,
}

// Clock is the controller's time of week.
type Clock struct {
	Weekday  string `json:"weekday"`
	Hour     int    `json:"hour"`
	Minute   int    `json:"minute"`
	Meridiem string `json:"meridiem"`
}

func (c Clock) String() string {
	return fmt.Sprintf("%s %d:%02d%s", c.Weekday, c.Hour, c.Minute, c.Meridiem)
}

// ZoneStatus is the decoded state of one zone.
type ZoneStatus struct {
	Damper       int  `json:"damper_percent"`
	CoolSetpoint int  `json:"cool_setpoint"`
	HeatSetpoint int  `json:"heat_setpoint"`
	Temperature  int  `json:"temperature"`
	Temporary    bool `json:"temporary"`
	Hold         bool `json:"hold"`
	Out          bool `json:"out"`
}

// StatusRecord is a semantic snapshot of the whole system, decoded from the
// required raw rows. Raw retains the undecoded input so a record can be
// exported with EncodeRawDump and replayed bit-identically offline.
type StatusRecord struct {
	Time           time.Time    `json:"time"`
	SystemMode     Mode         `json:"-"`
	EffectiveMode  Mode         `json:"-"`
	SystemModeName string       `json:"system_mode"`
	EffectiveName  string       `json:"effective_mode"`
	Clock          Clock        `json:"clock"`
	OutsideTemp    int          `json:"outside_temp"`
	AirHandlerTemp int          `json:"air_handler_temp"`
	Humidity       int          `json:"humidity"`
	Fan            bool         `json:"fan"`
	Compressor1    bool         `json:"compressor_1"`
	Compressor2    bool         `json:"compressor_2"`
	AuxHeat1       bool         `json:"aux_heat_1"`
	AuxHeat2       bool         `json:"aux_heat_2"`
	ReversingValve bool         `json:"reversing_valve"`
	AllMode        int          `json:"all_mode"`
	Zones          []ZoneStatus `json:"zones"`
	Raw            RowData      `json:"-"`
}

// DecodeTemperature converts a two-byte bus temperature reading to whole
// degrees. The reading is a signed 16-bit value with the sensor's
// sixteenths-of-a-degree count left-aligned in it; both stages truncate
// toward zero rather than round.
func DecodeTemperature(high, low byte) int {
	raw := int(int16(uint16(high)<<8 | uint16(low)))
	sixteenths := raw / 64
	return sixteenths / 16
}

var weekdayNames = [...]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// DecodeClock converts the controller's raw time-of-week bytes to a 12-hour
// clock. Hour 0 becomes 12am; hour 12 stays 12pm.
func DecodeClock(day, hour, minute byte) Clock {
	c := Clock{Minute: int(minute), Meridiem: "am"}
	if int(day) < len(weekdayNames) {
		c.Weekday = weekdayNames[day]
	} else {
		c.Weekday = "unknown"
	}
	h := int(hour)
	switch {
	case h == 0:
		c.Hour = 12
	case h < 12:
		c.Hour = h
	case h == 12:
		c.Hour = 12
		c.Meridiem = "pm"
	default:
		c.Hour = h - 12
		c.Meridiem = "pm"
	}
	return c
}

// DecodeStatus decodes a complete set of raw status rows into a
// StatusRecord. It is pure over its inputs (apart from the capture
// timestamp), so live queries and raw-dump replays of the same bytes produce
// identical records.
func DecodeStatus(rows RowData, zones int) (*StatusRecord, error) {
	if zones <= 0 || zones > MaxZones {
		zones = DefaultZoneCount
	}
	for _, tr := range RequiredRows {
		data, ok := rows[tr]
		if !ok {
			return nil, fmt.Errorf("%w: table %d row %d", ErrIncompleteRawDump, tr.Table, tr.Row)
		}
		if len(data) < requiredRowLen[tr] {
			return nil, fmt.Errorf("%w: table %d row %d has %d bytes", ErrIncompleteRawDump, tr.Table, tr.Row, len(data))
		}
	}

	mode := rows[rowMode]
	times := rows[rowTime]
	temps := rows[rowTemps]
	equip := rows[rowEquipment]
	setp := rows[rowSetpoints]

	rec := &StatusRecord{
		Time:           time.Now(),
		SystemMode:     Mode(mode[3]),
		EffectiveMode:  Mode(mode[4]),
		Clock:          DecodeClock(times[3], times[4], times[5]),
		OutsideTemp:    DecodeTemperature(temps[3], temps[4]),
		AirHandlerTemp: DecodeTemperature(temps[5], temps[6]),
		Humidity:       int(temps[7]),
		Fan:            equip[3]&equipFan != 0,
		Compressor1:    equip[3]&equipCompressor1 != 0,
		Compressor2:    equip[3]&equipCompressor2 != 0,
		AuxHeat1:       equip[3]&equipAuxHeat1 != 0,
		AuxHeat2:       equip[3]&equipAuxHeat2 != 0,
		ReversingValve: equip[3]&equipReversingValve != 0,
		AllMode:        int(rows[rowAllMode][3]),
		Zones:          make([]ZoneStatus, zones),
		Raw:            rows,
	}
	rec.SystemModeName = rec.SystemMode.String()
	rec.EffectiveName = rec.EffectiveMode.String()

	for i := 0; i < zones; i++ {
		// Dampers report 0..15; scale to percent.
		damper := int(equip[4+i])
		if damper > 15 {
			damper = 15
		}
		rec.Zones[i] = ZoneStatus{
			Damper:       damper * 100 / 15,
			CoolSetpoint: int(setp[3+i]),
			HeatSetpoint: int(setp[11+i]),
			Temperature:  DecodeTemperature(temps[8+2*i], temps[9+2*i]),
			Temporary:    setp[19]&(1<<i) != 0,
			Hold:         setp[20]&(1<<i) != 0,
			Out:          setp[21]&(1<<i) != 0,
		}
	}

	rec.applyAllMode()
	return rec, nil
}

// applyAllMode copies the nominated zone's setpoints and flags over every
// other zone when the broadcast override is active. It runs as a post-pass
// over the already-decoded zone array: the raw per-zone bytes are still read
// and retained, only the semantic view is overridden. The source zone itself
// is never overwritten.
func (r *StatusRecord) applyAllMode() {
	if r.AllMode == 0 {
		return
	}
	src := r.AllMode - 1
	if src < 0 || src >= len(r.Zones) {
		return
	}
	from := r.Zones[src]
	for i := range r.Zones {
		if i == src {
			continue
		}
		r.Zones[i].CoolSetpoint = from.CoolSetpoint
		r.Zones[i].HeatSetpoint = from.HeatSetpoint
		r.Zones[i].Temporary = from.Temporary
		r.Zones[i].Hold = from.Hold
		r.Zones[i].Out = from.Out
	}
}
