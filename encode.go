package qrsteg

import (
	"github.com/qrsteg/qrsteg/internal/bitframe"
	"github.com/qrsteg/qrsteg/internal/capacity"
	"github.com/qrsteg/qrsteg/internal/distribution"
	"github.com/qrsteg/qrsteg/internal/structure"
)

// Encode embeds secondary inside a QR Code carrying primary, per opts. An
// empty secondary returns the base matrix unchanged (zero flips). Fatal
// failures are always a *Error; see the Err* sentinels for errors.Is
// matching.
func Encode(primary, secondary string, opts *EncodeOptions) (*Result, error) {
	opts = opts.orDefault()

	base, err := defaultEngine.EncodeText(primary, opts.ECLevel)
	if err != nil {
		return nil, newError(KindExternal, "PrimaryEncodeError", err, nil)
	}

	flippable := structure.EnumerateFlippable(base.Version())
	if len(flippable) == 0 {
		return nil, newError(KindStructural, "MatrixTooSmall", ErrMatrixTooSmall, nil)
	}

	maxBits := capacity.MaxBits(len(flippable), opts.SafetyMargin)
	if maxBits <= 32 {
		return nil, newError(KindStructural, "InsufficientCapacity", ErrInsufficientCapacity,
			map[string]any{"maxBits": maxBits})
	}

	if secondary == "" {
		var meta *StegoMetadata
		if opts.IncludeMetadata {
			meta = newMetadata(opts.ECLevel, 0, 0, base.Size())
		}
		return &Result{Matrix: base, Metadata: meta}, nil
	}

	bits, err := bitframe.EncodeFrame(secondary, maxBits)
	if err != nil {
		return nil, newError(KindInputInvalid, "PayloadTooLarge", err, map[string]any{"max": maxBits})
	}

	idx, err := distribution.Sequence(len(bits), len(flippable))
	if err != nil {
		return nil, newError(KindStructural, "CapacityExceeded", err,
			map[string]any{"need": len(bits), "total": len(flippable)})
	}

	out := base.Clone()
	var flipped, attemptedFunctionFlip int
	for i, bit := range bits {
		if !bit {
			continue
		}
		pos := flippable[idx[i]]
		// Re-verify before toggling: a positive here indicates a bug in
		// structure.EnumerateFlippable, not a condition callers can trigger.
		// Observability only; the flip is skipped and the attempt counted.
		if structure.IsFunction(pos.X, pos.Y, out.Size(), out.Version()) {
			attemptedFunctionFlip++
			continue
		}
		out.Flip(pos.X, pos.Y)
		flipped++
	}

	var meta *StegoMetadata
	if opts.IncludeMetadata {
		meta = newMetadata(opts.ECLevel, flipped, attemptedFunctionFlip, out.Size())
	}

	return &Result{Matrix: out, Metadata: meta}, nil
}
