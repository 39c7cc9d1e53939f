package qrsteg

import (
	"github.com/qrsteg/qrsteg/internal/capacity"
	"github.com/qrsteg/qrsteg/internal/structure"
	"github.com/qrsteg/qrsteg/qrengine/ecc"
)

// Capacity reports the maximum secondary payload, in bytes, that Encode
// could embed alongside primary at the given safety margin, without
// actually performing the embedding. It regenerates the same base matrix
// Encode would (at ec_level=H) and applies the same flippable-count and
// safety-margin arithmetic.
func Capacity(primary string, safetyMargin float64) (int, error) {
	base, err := defaultEngine.EncodeText(primary, ecc.High)
	if err != nil {
		return 0, newError(KindExternal, "PrimaryEncodeError", err, nil)
	}

	flippable := structure.EnumerateFlippable(base.Version())
	maxBits := capacity.MaxBits(len(flippable), safetyMargin)
	return capacity.MaxPayloadBytes(maxBits), nil
}

// ValidateCapacity reports whether secondary would fit inside primary's QR
// Code at the given safety margin, i.e. whether Encode(primary, secondary,
// ...) would succeed on capacity grounds alone.
func ValidateCapacity(primary, secondary string, safetyMargin float64) (bool, error) {
	maxBytes, err := Capacity(primary, safetyMargin)
	if err != nil {
		return false, err
	}
	return len(secondary) <= maxBytes, nil
}
