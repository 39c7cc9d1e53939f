package qrsteg

import (
	"errors"
	"strings"
	"testing"

	"github.com/qrsteg/qrsteg/internal/distribution"
	"github.com/qrsteg/qrsteg/internal/structure"
)

// TestRoundTripURLAndSecret covers seed scenario S1.
func TestRoundTripURLAndSecret(t *testing.T) {
	primary := "https://example.com/path/to/page"
	res, err := Encode(primary, "SECRET", nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if res.Metadata.FlippedCount == 0 {
		t.Fatal("expected flipped_count > 0")
	}

	dec, err := DecodeMatrix(res.Matrix.Modules(), primary, nil)
	if err != nil {
		t.Fatalf("DecodeMatrix: %v", err)
	}
	if dec.Secondary != "SECRET" {
		t.Fatalf("secondary = %q, want SECRET", dec.Secondary)
	}
}

// TestEmptySecondaryIsNoOp covers seed scenario S2.
func TestEmptySecondaryIsNoOp(t *testing.T) {
	primary := "https://example.com/page"
	res, err := Encode(primary, "", nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if res.Metadata.FlippedCount != 0 {
		t.Fatalf("flipped_count = %d, want 0", res.Metadata.FlippedCount)
	}

	dec, err := DecodeMatrix(res.Matrix.Modules(), primary, nil)
	if err != nil {
		t.Fatalf("DecodeMatrix: %v", err)
	}
	if dec.Secondary != "" {
		t.Fatalf("secondary = %q, want empty", dec.Secondary)
	}
}

// TestOversizedSecondaryRejected covers seed scenario S3.
func TestOversizedSecondaryRejected(t *testing.T) {
	primary := "test"
	secondary := strings.Repeat("x", 1000)

	_, err := Encode(primary, secondary, nil)
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("Encode err = %v, want ErrPayloadTooLarge", err)
	}

	ok, err := ValidateCapacity(primary, secondary, DefaultEncodeOptions().SafetyMargin)
	if err != nil {
		t.Fatalf("ValidateCapacity: %v", err)
	}
	if ok {
		t.Fatal("ValidateCapacity = true, want false")
	}
}

// TestCapacityAndMetadataVersion covers seed scenario S4.
func TestCapacityAndMetadataVersion(t *testing.T) {
	primary := "https://example.com/path/page"

	capBytes, err := Capacity(primary, DefaultEncodeOptions().SafetyMargin)
	if err != nil {
		t.Fatalf("Capacity: %v", err)
	}
	if capBytes < 3 {
		t.Fatalf("Capacity = %d, want >= 3", capBytes)
	}

	res, err := Encode(primary, "tok", nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if res.Metadata.Version != "1.0" {
		t.Fatalf("metadata.version = %q, want 1.0", res.Metadata.Version)
	}

	dec, err := DecodeMatrix(res.Matrix.Modules(), primary, nil)
	if err != nil {
		t.Fatalf("DecodeMatrix: %v", err)
	}
	if dec.Secondary != "tok" {
		t.Fatalf("secondary = %q, want tok", dec.Secondary)
	}
}

// TestMonotoneCapacity covers testable property #6.
func TestMonotoneCapacity(t *testing.T) {
	primary := "https://example.com/monotone"
	low, err := Capacity(primary, 0.03)
	if err != nil {
		t.Fatalf("Capacity(low): %v", err)
	}
	high, err := Capacity(primary, 0.2)
	if err != nil {
		t.Fatalf("Capacity(high): %v", err)
	}
	if low > high {
		t.Fatalf("Capacity(0.03)=%d > Capacity(0.2)=%d, want non-decreasing", low, high)
	}
}

// TestCapacityAdmission covers testable property #7.
func TestCapacityAdmission(t *testing.T) {
	primary := "https://example.com/admission"
	margin := DefaultEncodeOptions().SafetyMargin

	fits := strings.Repeat("y", 4)
	ok, err := ValidateCapacity(primary, fits, margin)
	if err != nil {
		t.Fatalf("ValidateCapacity: %v", err)
	}
	if !ok {
		t.Skip("payload too large for this primary's generated capacity; margin/primary combination not representative")
	}
	if _, err := Encode(primary, fits, &EncodeOptions{ECLevel: DefaultEncodeOptions().ECLevel, SafetyMargin: margin}); errors.Is(err, ErrPayloadTooLarge) {
		t.Fatal("ValidateCapacity said true but Encode raised PayloadTooLarge")
	}

	tooBig := strings.Repeat("z", 10000)
	ok, err = ValidateCapacity(primary, tooBig, margin)
	if err != nil {
		t.Fatalf("ValidateCapacity: %v", err)
	}
	if ok {
		t.Fatal("ValidateCapacity = true for an obviously oversized payload")
	}
	if _, err := Encode(primary, tooBig, &EncodeOptions{ECLevel: DefaultEncodeOptions().ECLevel, SafetyMargin: margin}); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("Encode err = %v, want ErrPayloadTooLarge", err)
	}
}

// TestNonStrictChecksumSwallowsMismatch covers testable property #8 (tamper
// detection) and C8's strict_checksum=false contract: corrupting a payload
// bit (not the length header) makes a strict decode fail ChecksumMismatch,
// while a non-strict decode degrades to an empty secondary instead.
func TestNonStrictChecksumSwallowsMismatch(t *testing.T) {
	primary := "https://example.com/tamper"
	res, err := Encode(primary, "tamperme", nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	modules := res.Matrix.Modules()

	reference, err := defaultEngine.EncodeText(primary, DefaultEncodeOptions().ECLevel)
	if err != nil {
		t.Fatalf("reference regen: %v", err)
	}

	// Locate the module carrying payload bit 0 (bit index 16, just past the
	// 16-bit length header) via the same distribution sequence the encoder
	// used, and toggle it. This inverts the scanned/reference disagreement
	// at exactly that bit without touching the length header or the
	// trailing CRC, regardless of that bit's original value.
	flippable := structure.EnumerateFlippable(reference.Version())
	idx, err := distribution.Sequence(17, len(flippable))
	if err != nil {
		t.Fatalf("distribution.Sequence: %v", err)
	}
	pos := flippable[idx[16]]
	modules[pos.Y][pos.X] = !modules[pos.Y][pos.X]

	if _, err := DecodeMatrix(modules, primary, &DecodeOptions{StrictChecksum: true, MaxMessageSize: 100}); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("strict decode err = %v, want ErrChecksumMismatch", err)
	}

	dec, err := DecodeMatrix(modules, primary, &DecodeOptions{StrictChecksum: false, MaxMessageSize: 100})
	if err != nil {
		t.Fatalf("non-strict decode: %v", err)
	}
	if dec.Secondary != "" {
		t.Fatalf("non-strict secondary = %q, want empty", dec.Secondary)
	}
}

// TestSizeMismatch covers the SizeMismatch failure mode of DecodeMatrix.
func TestSizeMismatch(t *testing.T) {
	primary := "https://example.com/size"
	res, err := Encode(primary, "abc", nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	modules := res.Matrix.Modules()
	truncated := modules[:len(modules)-1]
	for i := range truncated {
		truncated[i] = truncated[i][:len(truncated[i])-1]
	}

	_, err = DecodeMatrix(truncated, primary, nil)
	if !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("err = %v, want ErrSizeMismatch", err)
	}
}
