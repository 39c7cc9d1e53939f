// Package capacity converts a flippable-module count into a BitFrame bit
// budget and a user-visible secondary byte capacity.
package capacity

// BitDensity is the empirical fraction of '1' bits expected in a framed
// secondary payload; only '1' bits trigger a flip, so a sparser payload
// could in principle fit more bits than this model predicts. This constant
// is implementation-defined tuning, not a derived quantity — a future
// revision could replace it with a measured capacity curve per QR version.
const BitDensity = 0.42

// DefaultSafetyMargin is the default fraction of flippable modules the
// encoder is willing to consume, chosen experimentally: QR error correction
// level H nominally tolerates ~30% codeword corruption, but real scanners
// fail earlier due to mask perturbation and imaging noise.
const DefaultSafetyMargin = 0.07

// MaxBits returns the maximum number of BitFrame bits that can be embedded
// given a flippable module count and a safety margin in (0,1].
func MaxBits(flippable int, safetyMargin float64) int {
	targetFlips := int(float64(flippable) * safetyMargin)
	return int(float64(targetFlips) / BitDensity)
}

// MaxPayloadBytes converts a bit budget (as returned by MaxBits) into a
// user-visible secondary byte capacity, after subtracting the 32-bit
// BitFrame length+CRC overhead.
func MaxPayloadBytes(maxBits int) int {
	n := (maxBits - 32) / 8
	if n < 0 {
		return 0
	}
	return n
}
