package qrsteg

import (
	"image"

	"github.com/qrsteg/qrsteg/internal/bitframe"
	"github.com/qrsteg/qrsteg/internal/distribution"
	"github.com/qrsteg/qrsteg/internal/structure"
)

// DecodeMatrix recovers the secondary payload from a rescanned module grid,
// given the primary text used to regenerate the clean reference. An empty
// flip set (scanned == reference over every flippable position) is success
// with secondary = "".
func DecodeMatrix(modules [][]bool, primary string, opts *DecodeOptions) (*DecodeResult, error) {
	opts = opts.orDefault()

	scanned, err := matrixFromModules(modules)
	if err != nil {
		return nil, newError(KindStructural, "SizeMismatch", err, nil)
	}

	reference, err := defaultEngine.EncodeText(primary, DefaultEncodeOptions().ECLevel)
	if err != nil {
		return nil, newError(KindExternal, "ReferenceRegenFailed", ErrReferenceRegenFailed, map[string]any{"cause": err.Error()})
	}

	if scanned.Size() != reference.Size() {
		return nil, newError(KindStructural, "SizeMismatch", ErrSizeMismatch,
			map[string]any{"scanned": scanned.Size(), "reference": reference.Size()})
	}

	flippable := structure.EnumerateFlippable(reference.Version())

	flippedSet := make(map[int]bool)
	for i, pos := range flippable {
		if scanned.At(pos.X, pos.Y) != reference.At(pos.X, pos.Y) {
			flippedSet[i] = true
		}
	}

	if len(flippedSet) == 0 {
		return &DecodeResult{Primary: primary, Secondary: ""}, nil
	}

	secondary, flippedCount, err := recoverSecondary(flippedSet, len(flippable), opts)
	if err != nil {
		if opts.StrictChecksum {
			return nil, err
		}
		// Non-strict mode swallows checksum failures only.
		var qerr *Error
		if asQrstegError(err, &qerr) && qerr.Code == "ChecksumMismatch" {
			return &DecodeResult{Primary: primary, Secondary: ""}, nil
		}
		return nil, err
	}

	meta := newMetadata(reference.ECLevel(), flippedCount, 0, reference.Size())
	return &DecodeResult{Primary: primary, Secondary: secondary, Metadata: meta}, nil
}

// DecodeImage locates a QR code in img, recovers its primary text (unless
// the caller already supplies one), and decodes the secondary payload from
// the image engine's sampled module grid. Pass primary="" to have the image
// engine recover it.
func DecodeImage(img image.Image, primary string, opts *DecodeOptions) (*DecodeResult, error) {
	scannedPrimary, matrix, err := defaultImageEngine.Locate(img)
	if err != nil {
		return nil, newError(KindExternal, "NoCodeFound", err, nil)
	}

	if primary == "" {
		primary = scannedPrimary
	}

	return DecodeMatrix(matrix.Modules(), primary, opts)
}

// recoverSecondary walks the prime-step distribution progressively: first
// the 16-bit length, then the whole 32+8L-bit frame from its start, per the
// length-then-body state machine.
func recoverSecondary(flippedSet map[int]bool, total int, opts *DecodeOptions) (string, int, error) {
	p := distribution.LargestPrimeBelow(total)

	readBits := func(n int) []bool {
		bits := make([]bool, n)
		for i := 0; i < n; i++ {
			bits[i] = flippedSet[(i*p)%total]
		}
		return bits
	}

	header := readBits(16)
	length := 0
	for _, b := range header {
		length <<= 1
		if b {
			length |= 1
		}
	}

	need := 32 + 8*length
	if need > total || length > opts.MaxMessageSize {
		return "", 0, newError(KindInputInvalid, "BadLength", bitframe.ErrBadLength,
			map[string]any{"length": length, "total": total, "max": opts.MaxMessageSize})
	}

	bits := readBits(need)
	secondary, err := bitframe.DecodeFrame(bits)
	if err != nil {
		return "", 0, newError(KindIntegrity, "ChecksumMismatch", err, nil)
	}

	flippedCount := 0
	for _, b := range bits {
		if b {
			flippedCount++
		}
	}

	return secondary, flippedCount, nil
}

func asQrstegError(err error, target **Error) bool {
	if e, ok := err.(*Error); ok {
		*target = e
		return true
	}
	return false
}
