package qrsteg

import (
	"fmt"

	"github.com/qrsteg/qrsteg/qrengine"
)

// Matrix is an owned, mutable square grid of QR modules. It is the object
// the codec clones and flips; unlike qrengine.Symbol, which is immutable
// once constructed, Matrix cell values can be read, set, and toggled. An
// Encode call never mutates the caller's base matrix in place — it clones
// first, so the clean reference used elsewhere (e.g. in a decode path under
// test) stays intact.
type Matrix struct {
	version qrengine.Version
	ecLevel qrengine.ECLevel
	mask    qrengine.Mask
	hasMeta bool
	size    int32
	cells   []bool
}

// matrixFromSymbol copies a qrengine.Symbol's module grid into a new,
// independently owned Matrix.
func matrixFromSymbol(sym *qrengine.Symbol) *Matrix {
	size := sym.Size()
	cells := make([]bool, size*size)
	for y := int32(0); y < size; y++ {
		for x := int32(0); x < size; x++ {
			cells[y*size+x] = sym.ModuleAt(x, y)
		}
	}
	return &Matrix{
		version: sym.Version(),
		ecLevel: sym.ErrorCorrectionLevel(),
		mask:    sym.Mask(),
		hasMeta: true,
		size:    size,
		cells:   cells,
	}
}

// matrixFromModules builds a Matrix from a caller-supplied row-major grid,
// as accepted by DecodeMatrix. The version/ecLevel/mask scalars are unknown
// from raw modules alone and are left at their zero values; only Size is
// derived.
func matrixFromModules(modules [][]bool) (*Matrix, error) {
	size := int32(len(modules))
	cells := make([]bool, size*size)
	for y := int32(0); y < size; y++ {
		row := modules[y]
		if int32(len(row)) != size {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrSizeMismatch, y, len(row), size)
		}
		for x := int32(0); x < size; x++ {
			cells[y*size+x] = row[x]
		}
	}
	return &Matrix{size: size, cells: cells}, nil
}

// matrixFromLocate builds a Matrix from an image engine's sampled grid.
func matrixFromLocate(size int32, at func(x, y int32) bool) *Matrix {
	cells := make([]bool, size*size)
	for y := int32(0); y < size; y++ {
		for x := int32(0); x < size; x++ {
			cells[y*size+x] = at(x, y)
		}
	}
	return &Matrix{size: size, cells: cells}
}

// Size returns the side length of the matrix, in the range [21, 177].
func (m *Matrix) Size() int32 { return m.size }

// Version returns the QR Code version this matrix was built at. Only valid
// when the matrix came from the QR engine (e.g. Encode's result), not from
// raw caller-supplied modules.
func (m *Matrix) Version() qrengine.Version { return m.version }

// ECLevel returns the error correction level this matrix was built with.
func (m *Matrix) ECLevel() qrengine.ECLevel { return m.ecLevel }

// Mask returns the mask pattern applied to this matrix.
func (m *Matrix) Mask() qrengine.Mask { return m.mask }

// At returns the color of the module at (x, y): false for light, true for
// dark. Coordinates must be in [0, Size()).
func (m *Matrix) At(x, y int32) bool {
	return m.cells[y*m.size+x]
}

// Set assigns the color of the module at (x, y).
func (m *Matrix) Set(x, y int32, dark bool) {
	m.cells[y*m.size+x] = dark
}

// Flip toggles the color of the module at (x, y).
func (m *Matrix) Flip(x, y int32) {
	m.cells[y*m.size+x] = !m.cells[y*m.size+x]
}

// Clone returns an independent deep copy of m.
func (m *Matrix) Clone() *Matrix {
	cells := make([]bool, len(m.cells))
	copy(cells, m.cells)
	return &Matrix{
		version: m.version,
		ecLevel: m.ecLevel,
		mask:    m.mask,
		hasMeta: m.hasMeta,
		size:    m.size,
		cells:   cells,
	}
}

// Modules returns the matrix as a row-major [][]bool, suitable for feeding
// into DecodeMatrix after a simulated rescan.
func (m *Matrix) Modules() [][]bool {
	out := make([][]bool, m.size)
	for y := int32(0); y < m.size; y++ {
		row := make([]bool, m.size)
		for x := int32(0); x < m.size; x++ {
			row[x] = m.cells[y*m.size+x]
		}
		out[y] = row
	}
	return out
}
