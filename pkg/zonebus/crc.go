// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openzone Developers

package zonebus

// Checksum computes the CRC-16 used on the zone bus (reflected polynomial
// 0xA001, zero initial value). The checksum is transmitted little-endian,
// which makes the CRC of a complete frame including its trailing checksum
// bytes equal zero.
func Checksum(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b)
		for i := 0; i < 8; i++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ crcPolynomial
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}
