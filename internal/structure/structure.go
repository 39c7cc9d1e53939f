// Package structure classifies every module coordinate of a QR matrix as a
// function pattern (fixed by the standard) or a flippable data position, and
// enumerates the latter in the canonical row-major order the distribution
// permutation indexes into.
package structure

import (
	"sync"

	"github.com/qrsteg/qrsteg/qrengine"
)

// ModuleClass names the structural role of a module. The steganographic
// codec only distinguishes function modules from everything else, but the
// finer-grained classes are kept for callers that want to reason about
// where in the symbol a flip landed (e.g. preferring data codewords over EC
// codewords to reduce visual artifacts, a refinement this codec doesn't
// attempt yet).
type ModuleClass int

const (
	ClassFinder ModuleClass = iota
	ClassSeparator
	ClassTiming
	ClassAlignment
	ClassFormatInfo
	ClassVersionInfo
	ClassDataCodeword
	ClassECCodeword
	ClassRemainder
)

// Position is a module coordinate within a matrix.
type Position struct {
	X, Y int32
}

var flippableCache sync.Map // map[uint8][]Position, keyed by version.Value()

// IsFunction reports whether the module at (x, y) in a symbol of the given
// size and version is fixed by the QR Code standard. size must equal
// 17 + 4*version.Value(). This must classify every coordinate identically to
// the way qrengine marks function modules while constructing a symbol,
// otherwise the encoder and a decoder regenerating the same reference would
// disagree about which modules are safe to flip.
func IsFunction(x, y, size int32, ver qrengine.Version) bool {
	if isFinderOrSeparator(x, y, size) {
		return true
	}
	if x == 6 || y == 6 {
		return true
	}
	if isAlignment(x, y, size, ver) {
		return true
	}
	if isFormatInfo(x, y, size) {
		return true
	}
	if isVersionInfo(x, y, size, ver) {
		return true
	}
	return false
}

func isFinderOrSeparator(x, y, size int32) bool {
	return (x < 9 && y < 9) ||
		(x >= size-8 && y < 9) ||
		(x < 9 && y >= size-8)
}

func isFormatInfo(x, y, size int32) bool {
	return (y == 8 && x <= 8) ||
		(x == 8 && y <= 8) ||
		(y == 8 && x >= size-8) ||
		(x == 8 && y >= size-7)
}

func isVersionInfo(x, y, size int32, ver qrengine.Version) bool {
	if ver.Value() < 7 {
		return false
	}
	return (x <= 5 && y >= size-11 && y <= size-9) ||
		(y <= 5 && x >= size-11 && x <= size-9)
}

// isAlignment reports whether (x, y) falls within Chebyshev distance 2 of an
// alignment pattern center, excluding the centers that coincide with a
// finder quadrant — the same exclusion qrengine applies when drawing them.
func isAlignment(x, y, size int32, ver qrengine.Version) bool {
	centers := qrengine.AlignmentPatternCenters(ver)
	n := len(centers)
	for i, cx := range centers {
		for j, cy := range centers {
			if i == 0 && j == 0 || i == 0 && j == n-1 || i == n-1 && j == 0 {
				continue // finder corners
			}
			if abs32(x-cx) <= 2 && abs32(y-cy) <= 2 {
				return true
			}
		}
	}
	return false
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// EnumerateFlippable returns every non-function module coordinate of a
// symbol at the given version, in row-major order (y outer, x inner, both
// ascending). This order is the canonical index the distribution
// permutation references, so both the encoder and any decoder regenerating
// the same version MUST produce identical sequences. Results are memoized
// by version, since classification does not depend on the error correction
// level and this function is called on every encode and decode.
func EnumerateFlippable(ver qrengine.Version) []Position {
	key := ver.Value()
	if cached, ok := flippableCache.Load(key); ok {
		return cached.([]Position)
	}

	size := int32(key)*4 + 17
	positions := make([]Position, 0, size*size)
	for y := int32(0); y < size; y++ {
		for x := int32(0); x < size; x++ {
			if !IsFunction(x, y, size, ver) {
				positions = append(positions, Position{X: x, Y: y})
			}
		}
	}

	flippableCache.Store(key, positions)
	return positions
}
