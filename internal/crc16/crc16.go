// Package crc16 computes the checksum that guards every BitFrame payload
// against accidental corruption during the flip/diff round trip.
package crc16

import "github.com/pasztorpisti/go-crc"

// Checksum returns the CRC-16/CCITT-FALSE checksum of data: initial register
// 0xFFFF, polynomial 0x1021, no input or output reflection, no final XOR.
// The empty slice checksums to 0xFFFF.
func Checksum(data []byte) uint16 {
	return crc.CRC16CCITTFALSE.Calc(data)
}
