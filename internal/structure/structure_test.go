package structure

import (
	"testing"

	"github.com/qrsteg/qrsteg/qrengine"
	"github.com/qrsteg/qrsteg/qrengine/ecc"
	"github.com/qrsteg/qrsteg/qrengine/segment"
)

// TestNoFlippablePositionIsFunction is testable property #9: no coordinate
// EnumerateFlippable returns ever satisfies IsFunction, for every version.
func TestNoFlippablePositionIsFunction(t *testing.T) {
	for v := uint8(1); v <= 40; v++ {
		ver := qrengine.Version(v)
		size := int32(v)*4 + 17
		for _, pos := range EnumerateFlippable(ver) {
			if IsFunction(pos.X, pos.Y, size, ver) {
				t.Fatalf("version %d: flippable position (%d,%d) classified as function", v, pos.X, pos.Y)
			}
		}
	}
}

// TestFlippableCoversEveryNonFunctionModule checks the complement: every
// coordinate NOT reported by EnumerateFlippable must be a function module,
// i.e. the two partition the full grid with no gaps.
func TestFlippableCoversEveryNonFunctionModule(t *testing.T) {
	for _, v := range []uint8{1, 2, 6, 7, 13, 27, 40} {
		ver := qrengine.Version(v)
		size := int32(v)*4 + 17
		flippable := make(map[Position]bool)
		for _, pos := range EnumerateFlippable(ver) {
			flippable[pos] = true
		}
		for y := int32(0); y < size; y++ {
			for x := int32(0); x < size; x++ {
				isFunc := IsFunction(x, y, size, ver)
				_, isFlippable := flippable[Position{X: x, Y: y}]
				if isFunc == isFlippable {
					t.Fatalf("version %d: (%d,%d) function=%v flippable=%v, want exactly one", v, x, y, isFunc, isFlippable)
				}
			}
		}
	}
}

// TestEngineAgreement is testable property #10: IsFunction and
// EnumerateFlippable, evaluated over the size and version of a Symbol
// actually produced by qrengine (rather than a bare version number), must
// never claim a coordinate as both function and flippable.
func TestEngineAgreement(t *testing.T) {
	for _, v := range []uint8{1, 5, 7, 14, 25, 40} {
		ver := qrengine.Version(v)
		segs := segment.MakeSegments([]rune("A"))
		sym, err := qrengine.EncodeSegmentsAdvanced(segs, ecc.High, ver, ver, nil, true)
		if err != nil {
			t.Fatalf("version %d: encode failed: %v", v, err)
		}
		size := sym.Size()
		flippable := EnumerateFlippable(sym.Version())
		flippableSet := make(map[Position]bool, len(flippable))
		for _, pos := range flippable {
			flippableSet[pos] = true
		}
		for y := int32(0); y < size; y++ {
			for x := int32(0); x < size; x++ {
				pos := Position{X: x, Y: y}
				if IsFunction(x, y, size, sym.Version()) && flippableSet[pos] {
					t.Fatalf("version %d: (%d,%d) is both function and flippable", v, x, y)
				}
			}
		}
	}
}
