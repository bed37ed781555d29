// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openzone Developers

package zonebus

import (
	"encoding/base64"
	"fmt"
	"sort"
)

// EncodeRawDump serializes raw status rows into an opaque blob suitable for
// offline replay with DecodeRawDump. Rows are emitted as
// table/row/length-prefixed byte runs, sorted by table then row so identical
// inputs always produce identical blobs, and the whole thing is base64
// encoded.
func EncodeRawDump(rows RowData) string {
	keys := make([]TableRow, 0, len(rows))
	for tr := range rows {
		keys = append(keys, tr)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Table != keys[j].Table {
			return keys[i].Table < keys[j].Table
		}
		return keys[i].Row < keys[j].Row
	})

	var raw []byte
	for _, tr := range keys {
		data := rows[tr]
		raw = append(raw, tr.Table, tr.Row, byte(len(data)))
		raw = append(raw, data...)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// DecodeRawDump parses a blob produced by EncodeRawDump back into raw rows.
// Truncated or undecodable input is fatal; missing required rows are only
// diagnosed later, by DecodeStatus.
func DecodeRawDump(blob string) (RowData, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRawDump, err)
	}

	rows := make(RowData)
	for i := 0; i < len(raw); {
		if len(raw)-i < 3 {
			return nil, fmt.Errorf("%w: truncated row header at byte %d", ErrMalformedRawDump, i)
		}
		tr := TableRow{Table: raw[i], Row: raw[i+1]}
		n := int(raw[i+2])
		i += 3
		if len(raw)-i < n {
			return nil, fmt.Errorf("%w: row %s wants %d bytes, %d left", ErrMalformedRawDump, tr, n, len(raw)-i)
		}
		rows[tr] = append([]byte(nil), raw[i:i+n]...)
		i += n
	}
	return rows, nil
}
