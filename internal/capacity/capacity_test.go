package capacity_test

import (
	"testing"

	"github.com/qrsteg/qrsteg/internal/capacity"
)

func TestMaxBitsMonotoneInSafetyMargin(t *testing.T) {
	flippable := 2000
	low := capacity.MaxBits(flippable, 0.03)
	high := capacity.MaxBits(flippable, 0.07)
	if low > high {
		t.Fatalf("MaxBits not monotone: MaxBits(sm=0.03)=%d > MaxBits(sm=0.07)=%d", low, high)
	}
}

func TestMaxPayloadBytesNeverNegative(t *testing.T) {
	if got := capacity.MaxPayloadBytes(0); got != 0 {
		t.Fatalf("MaxPayloadBytes(0) = %d, want 0", got)
	}
	if got := capacity.MaxPayloadBytes(31); got != 0 {
		t.Fatalf("MaxPayloadBytes(31) = %d, want 0", got)
	}
}

func TestMaxPayloadBytesSubtractsHeader(t *testing.T) {
	if got := capacity.MaxPayloadBytes(32 + 80); got != 10 {
		t.Fatalf("MaxPayloadBytes(112) = %d, want 10", got)
	}
}
