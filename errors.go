package qrsteg

import (
	"errors"
	"fmt"

	"github.com/qrsteg/qrsteg/internal/bitframe"
	"github.com/qrsteg/qrsteg/internal/distribution"
)

// Kind buckets the error taxonomy into the categories callers branch on:
// malformed input, integrity failure, structural impossibility, a failure
// in an external collaborator (the QR engine or image engine), or a
// non-fatal observability warning.
type Kind int

const (
	KindInputInvalid Kind = iota
	KindIntegrity
	KindStructural
	KindExternal
	KindWarning
)

func (k Kind) String() string {
	switch k {
	case KindInputInvalid:
		return "InputInvalid"
	case KindIntegrity:
		return "Integrity"
	case KindStructural:
		return "Structural"
	case KindExternal:
		return "External"
	case KindWarning:
		return "Warning"
	default:
		return "Unknown"
	}
}

// Error is the error type returned by every fatal failure in this package.
// Code is a stable identifier (e.g. "PayloadTooLarge") matching the
// distilled error taxonomy; Context carries whatever values let a caller
// diagnose the failure (need/max, expected/got, and so on). Err is always
// set and is unwrapped by Unwrap, so errors.Is/errors.As keep working
// through the call stack against the sentinel errors below.
type Error struct {
	Kind    Kind
	Code    string
	Context map[string]any
	Err     error
}

func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("qrsteg: %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("qrsteg: %s: %v (%v)", e.Code, e.Err, e.Context)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, code string, err error, ctx map[string]any) *Error {
	return &Error{Kind: kind, Code: code, Context: ctx, Err: err}
}

// Sentinel errors for errors.Is matching. The first five are re-exported
// from the internal packages that actually detect each condition, so a
// caller can test with errors.Is(err, qrsteg.ErrPayloadTooLarge) without
// reaching into internal packages; the rest are defined here.
var (
	ErrPayloadTooLarge      = bitframe.ErrPayloadTooLarge
	ErrShortFrame           = bitframe.ErrShortFrame
	ErrBadLength            = bitframe.ErrBadLength
	ErrChecksumMismatch     = bitframe.ErrChecksumMismatch
	ErrCapacityExceeded     = distribution.ErrCapacityExceeded
	ErrMatrixTooSmall       = errors.New("MatrixTooSmall")
	ErrSizeMismatch         = errors.New("SizeMismatch")
	ErrInsufficientCapacity = errors.New("InsufficientCapacity")
	ErrPrimaryEncodeError   = errors.New("PrimaryEncodeError")
	ErrReferenceRegenFailed = errors.New("ReferenceRegenFailed")
	ErrNoCodeFound          = errors.New("NoCodeFound")
)
