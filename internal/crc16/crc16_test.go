package crc16_test

import (
	"testing"

	"github.com/qrsteg/qrsteg/internal/crc16"
)

func TestChecksumEmpty(t *testing.T) {
	if got := crc16.Checksum(nil); got != 0xFFFF {
		t.Fatalf("Checksum(nil) = %#04x, want 0xffff", got)
	}
}

func TestChecksumStable(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	first := crc16.Checksum(data)
	second := crc16.Checksum(data)
	if first != second {
		t.Fatalf("Checksum not stable across calls: %#04x != %#04x", first, second)
	}
}

func TestChecksumSensitiveToLastByte(t *testing.T) {
	a := crc16.Checksum([]byte{1, 2, 3, 4, 5})
	b := crc16.Checksum([]byte{1, 2, 3, 4, 6})
	if a == b {
		t.Fatalf("Checksum collided for distinct inputs: %#04x", a)
	}
}
