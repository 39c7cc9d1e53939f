// Package ecc defines the four QR Code error correction levels.
package ecc

// Level is the error correction level of a QR Code symbol.
type Level uint

const (
	// Low tolerates about 7% erroneous codewords.
	Low Level = 0
	// Medium tolerates about 15% erroneous codewords.
	Medium Level = 1
	// Quartile tolerates about 25% erroneous codewords.
	Quartile Level = 2
	// High tolerates about 30% erroneous codewords.
	High Level = 3
)

// Ordinal returns an unsigned 2-bit index used to select table rows.
func (l Level) Ordinal() uint {
	switch l {
	case Low:
		return 0
	case Medium:
		return 1
	case Quartile:
		return 2
	case High:
		return 3
	default:
		panic("unknown ecc.Level")
	}
}

// FormatBits returns the 2-bit code used in the format-information field.
func (l Level) FormatBits() uint8 {
	switch l {
	case Low:
		return 1
	case Medium:
		return 0
	case Quartile:
		return 3
	case High:
		return 2
	default:
		panic("unknown ecc.Level")
	}
}

// String renders the canonical single-letter name (L, M, Q, H).
func (l Level) String() string {
	switch l {
	case Low:
		return "L"
	case Medium:
		return "M"
	case Quartile:
		return "Q"
	case High:
		return "H"
	default:
		return "?"
	}
}

// Parse maps a single-letter name back to a Level.
func Parse(s string) (Level, bool) {
	switch s {
	case "L":
		return Low, true
	case "M":
		return Medium, true
	case "Q":
		return Quartile, true
	case "H":
		return High, true
	default:
		return 0, false
	}
}
