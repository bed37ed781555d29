// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openzone Developers

package zonebus

import (
	"errors"
	"testing"
)

// tempBytes encodes whole degrees into the wire's left-aligned signed
// sixteenths representation.
func tempBytes(deg int) (byte, byte) {
	raw := uint16(int16(deg * 1024))
	return byte(raw >> 8), byte(raw)
}

// buildStatusRows assembles a coherent set of raw status rows:
// heat mode running cool, Tuesday 1:45pm, outside -5°, air handler 21°,
// fan and first compressor on, zone temps 20°..27°.
func buildStatusRows() RowData {
	prefix := func(tr TableRow) []byte { return []byte{0, tr.Table, tr.Row} }

	timeRow := append(prefix(rowTime), 2, 13, 45)

	setp := prefix(rowSetpoints)
	setp = append(setp, 74, 76, 78, 72, 74, 74, 74, 74) // cool
	setp = append(setp, 68, 66, 64, 70, 68, 68, 68, 68) // heat
	setp = append(setp, 0x02, 0x01, 0x04)               // temporary, hold, out masks

	allMode := append(prefix(rowAllMode), 0)
	mode := append(prefix(rowMode), byte(ModeHeat), byte(ModeCool))

	temps := prefix(rowTemps)
	oh, ol := tempBytes(-5)
	ah, al := tempBytes(21)
	temps = append(temps, oh, ol, ah, al, 42)
	for i := 0; i < MaxZones; i++ {
		h, l := tempBytes(20 + i)
		temps = append(temps, h, l)
	}

	equip := append(prefix(rowEquipment), equipFan|equipCompressor1)
	equip = append(equip, 15, 7, 0, 15, 15, 15, 15, 15)

	return RowData{
		rowTime:      timeRow,
		rowSetpoints: setp,
		rowAllMode:   allMode,
		rowMode:      mode,
		rowTemps:     temps,
		rowEquipment: equip,
	}
}

// ============================================================
// Temperature Tests
// ============================================================

func TestDecodeTemperature(t *testing.T) {
	tests := []struct {
		name      string
		high, low byte
		want      int
	}{
		{"reference reading", 70, 0, 17},
		{"truncates, not rounds", 71, 0, 17}, // 17.75°
		{"sub-degree truncates to zero", 1, 0, 0},
		{"negative truncates toward zero", 0x8C, 0, -29},
		{"zero", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeTemperature(tt.high, tt.low); got != tt.want {
				t.Errorf("DecodeTemperature(%d, %d) = %d, want %d", tt.high, tt.low, got, tt.want)
			}
		})
	}
}

func TestDecodeTemperature_RoundTripWholeDegrees(t *testing.T) {
	for deg := -30; deg <= 31; deg++ {
		h, l := tempBytes(deg)
		if got := DecodeTemperature(h, l); got != deg {
			t.Errorf("%d°: decoded %d", deg, got)
		}
	}
}

// ============================================================
// Clock Tests
// ============================================================

func TestDecodeClock(t *testing.T) {
	tests := []struct {
		name             string
		day, hour, min   byte
		weekday          string
		h12, m           int
		meridiem         string
	}{
		{"midnight is 12am", 0, 0, 5, "Sunday", 12, 5, "am"},
		{"morning", 2, 9, 30, "Tuesday", 9, 30, "am"},
		{"noon stays 12pm", 3, 12, 0, "Wednesday", 12, 0, "pm"},
		{"afternoon", 5, 13, 45, "Friday", 1, 45, "pm"},
		{"late evening", 6, 23, 59, "Saturday", 11, 59, "pm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DecodeClock(tt.day, tt.hour, tt.min)
			if c.Weekday != tt.weekday || c.Hour != tt.h12 || c.Minute != tt.m || c.Meridiem != tt.meridiem {
				t.Errorf("DecodeClock(%d, %d, %d) = %+v", tt.day, tt.hour, tt.min, c)
			}
		})
	}
}

// ============================================================
// Status Decode Tests
// ============================================================

func TestDecodeStatus(t *testing.T) {
	rec, err := DecodeStatus(buildStatusRows(), 3)
	if err != nil {
		t.Fatalf("DecodeStatus: %v", err)
	}

	if rec.SystemMode != ModeHeat || rec.EffectiveMode != ModeCool {
		t.Errorf("modes: %s/%s", rec.SystemMode, rec.EffectiveMode)
	}
	if got := rec.Clock.String(); got != "Tuesday 1:45pm" {
		t.Errorf("clock: %s", got)
	}
	if rec.OutsideTemp != -5 || rec.AirHandlerTemp != 21 || rec.Humidity != 42 {
		t.Errorf("environment: outside=%d air=%d hum=%d", rec.OutsideTemp, rec.AirHandlerTemp, rec.Humidity)
	}
	if !rec.Fan || !rec.Compressor1 || rec.Compressor2 || rec.AuxHeat1 || rec.ReversingValve {
		t.Error("equipment bits decoded wrong")
	}
	if len(rec.Zones) != 3 {
		t.Fatalf("%d zones", len(rec.Zones))
	}

	wantZones := []ZoneStatus{
		{Damper: 100, CoolSetpoint: 74, HeatSetpoint: 68, Temperature: 20, Hold: true},
		{Damper: 46, CoolSetpoint: 76, HeatSetpoint: 66, Temperature: 21, Temporary: true},
		{Damper: 0, CoolSetpoint: 78, HeatSetpoint: 64, Temperature: 22, Out: true},
	}
	for i, want := range wantZones {
		if rec.Zones[i] != want {
			t.Errorf("zone %d:\n got %+v\nwant %+v", i, rec.Zones[i], want)
		}
	}
}

func TestDecodeStatus_AllModeOverride(t *testing.T) {
	rows := buildStatusRows()
	rows[rowAllMode] = []byte{0, rowAllMode.Table, rowAllMode.Row, 2} // zone 2 (1-based) leads

	rec, err := DecodeStatus(rows, 3)
	if err != nil {
		t.Fatalf("DecodeStatus: %v", err)
	}
	if rec.AllMode != 2 {
		t.Fatalf("AllMode = %d", rec.AllMode)
	}

	lead := rec.Zones[1]
	if lead.CoolSetpoint != 76 || lead.HeatSetpoint != 66 || !lead.Temporary {
		t.Fatalf("source zone was overwritten: %+v", lead)
	}
	for _, i := range []int{0, 2} {
		z := rec.Zones[i]
		if z.CoolSetpoint != lead.CoolSetpoint || z.HeatSetpoint != lead.HeatSetpoint {
			t.Errorf("zone %d setpoints not overridden: %+v", i, z)
		}
		if z.Temporary != lead.Temporary || z.Hold != lead.Hold || z.Out != lead.Out {
			t.Errorf("zone %d flags not overridden: %+v", i, z)
		}
	}

	// Temperatures and dampers are per-zone physical facts, never broadcast.
	if rec.Zones[0].Temperature != 20 || rec.Zones[2].Damper != 0 {
		t.Error("override touched non-setpoint fields")
	}
}

func TestDecodeStatus_MissingRow(t *testing.T) {
	rows := buildStatusRows()
	delete(rows, rowTemps)
	if _, err := DecodeStatus(rows, 3); !errors.Is(err, ErrIncompleteRawDump) {
		t.Errorf("expected ErrIncompleteRawDump, got %v", err)
	}
}

func TestDecodeStatus_ShortRow(t *testing.T) {
	rows := buildStatusRows()
	rows[rowEquipment] = rows[rowEquipment][:5]
	if _, err := DecodeStatus(rows, 3); !errors.Is(err, ErrIncompleteRawDump) {
		t.Errorf("expected ErrIncompleteRawDump, got %v", err)
	}
}
