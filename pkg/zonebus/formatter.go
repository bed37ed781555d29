// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openzone Developers

package zonebus

import (
	"fmt"
	"strings"
)

// FormatFrame formats a frame into a single-line human-readable summary.
func FormatFrame(f *Frame) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %3d -> %3d %-14s len=%d",
		f.Timestamp.Format("15:04:05.000"), f.Source, f.Destination, f.Function, f.Length)
	if len(f.Data) > 0 {
		b.WriteString("  ")
		for i, by := range f.Data {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%02X", by)
		}
	}
	return b.String()
}

// FormatStatus formats a status record as a multi-line report.
func FormatStatus(rec *StatusRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "System mode: %s (effective %s)\n", rec.SystemMode, rec.EffectiveMode)
	fmt.Fprintf(&b, "Controller time: %s\n", rec.Clock)
	fmt.Fprintf(&b, "Outside: %d°  Air handler: %d°  Humidity: %d%%\n",
		rec.OutsideTemp, rec.AirHandlerTemp, rec.Humidity)
	fmt.Fprintf(&b, "Equipment: %s\n", formatEquipment(rec))
	if rec.AllMode != 0 {
		fmt.Fprintf(&b, "All mode: active, zone %d leads\n", rec.AllMode)
	}

	b.WriteString("Zone  Temp  Heat  Cool  Damper  Flags\n")
	for i, z := range rec.Zones {
		fmt.Fprintf(&b, "%4d  %3d°  %3d°  %3d°  %5d%%  %s\n",
			i+1, z.Temperature, z.HeatSetpoint, z.CoolSetpoint, z.Damper, formatZoneFlags(z))
	}
	return b.String()
}

func formatEquipment(rec *StatusRecord) string {
	var on []string
	if rec.Fan {
		on = append(on, "fan")
	}
	if rec.Compressor1 {
		on = append(on, "compressor1")
	}
	if rec.Compressor2 {
		on = append(on, "compressor2")
	}
	if rec.AuxHeat1 {
		on = append(on, "aux1")
	}
	if rec.AuxHeat2 {
		on = append(on, "aux2")
	}
	if rec.ReversingValve {
		on = append(on, "rev-valve")
	}
	if len(on) == 0 {
		return "all off"
	}
	return strings.Join(on, ", ")
}

func formatZoneFlags(z ZoneStatus) string {
	var flags []string
	if z.Temporary {
		flags = append(flags, "temp")
	}
	if z.Hold {
		flags = append(flags, "hold")
	}
	if z.Out {
		flags = append(flags, "out")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}
