package bitframe_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/qrsteg/qrsteg/internal/bitframe"
)

func TestFrameRoundTrip(t *testing.T) {
	cases := []string{"", "x", "hello, world", "SECRET", strings.Repeat("a", 200)}
	for _, m := range cases {
		bits, err := bitframe.EncodeFrame(m, 32+8*len(m))
		if err != nil {
			t.Fatalf("EncodeFrame(%q) error: %v", m, err)
		}
		got, err := bitframe.DecodeFrame(bits)
		if err != nil {
			t.Fatalf("DecodeFrame after EncodeFrame(%q) error: %v", m, err)
		}
		if got != m {
			t.Fatalf("round trip mismatch: got %q, want %q", got, m)
		}
	}
}

func TestEmptyPayloadFrame(t *testing.T) {
	bits, err := bitframe.EncodeFrame("", 32)
	if err != nil {
		t.Fatalf("EncodeFrame(\"\") error: %v", err)
	}
	if len(bits) != 32 {
		t.Fatalf("empty frame length = %d, want 32", len(bits))
	}
	got, err := bitframe.DecodeFrame(bits)
	if err != nil || got != "" {
		t.Fatalf("DecodeFrame(empty frame) = %q, %v", got, err)
	}
}

func TestPayloadTooLarge(t *testing.T) {
	_, err := bitframe.EncodeFrame(strings.Repeat("x", 1000), 64)
	if !errors.Is(err, bitframe.ErrPayloadTooLarge) {
		t.Fatalf("EncodeFrame oversized payload error = %v, want ErrPayloadTooLarge", err)
	}
}

func TestShortFrame(t *testing.T) {
	_, err := bitframe.DecodeFrame(make([]bool, 10))
	if !errors.Is(err, bitframe.ErrShortFrame) {
		t.Fatalf("DecodeFrame(10 bits) error = %v, want ErrShortFrame", err)
	}
}

func TestBadLength(t *testing.T) {
	bits, err := bitframe.EncodeFrame("ab", 48)
	if err != nil {
		t.Fatalf("EncodeFrame error: %v", err)
	}
	_, err = bitframe.DecodeFrame(bits[:len(bits)-1])
	if !errors.Is(err, bitframe.ErrBadLength) {
		t.Fatalf("DecodeFrame(truncated) error = %v, want ErrBadLength", err)
	}
}

func TestTamperDetection(t *testing.T) {
	bits, err := bitframe.EncodeFrame("payload region", 512)
	if err != nil {
		t.Fatalf("EncodeFrame error: %v", err)
	}
	bits[20] = !bits[20] // inside the payload, not length or CRC
	_, err = bitframe.DecodeFrame(bits)
	if !errors.Is(err, bitframe.ErrChecksumMismatch) {
		t.Fatalf("DecodeFrame(tampered) error = %v, want ErrChecksumMismatch", err)
	}
}
