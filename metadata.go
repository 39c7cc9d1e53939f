package qrsteg

import (
	"time"

	"github.com/qrsteg/qrsteg/qrengine/ecc"
)

// stegoMetadataVersion is the version tag written to every StegoMetadata
// this codec produces.
const stegoMetadataVersion = "1.0"

// StegoMetadata describes how a secondary payload was embedded. It is
// emit-only: nothing here is read back by DecodeMatrix or DecodeImage.
type StegoMetadata struct {
	Version               string
	Timestamp             time.Time
	FlippedCount          int
	ECLevelUsed           ecc.Level
	CapacityUsedPct       float64
	AttemptedFunctionFlip int
}

func newMetadata(ec ecc.Level, flipped, attemptedFunctionFlip int, size int32) *StegoMetadata {
	return &StegoMetadata{
		Version:               stegoMetadataVersion,
		Timestamp:             time.Now(),
		FlippedCount:          flipped,
		ECLevelUsed:           ec,
		CapacityUsedPct:       100 * float64(flipped) / float64(size*size),
		AttemptedFunctionFlip: attemptedFunctionFlip,
	}
}

// Result is the outcome of a successful Encode call.
type Result struct {
	Matrix   *Matrix
	Metadata *StegoMetadata
}

// DecodeResult is the outcome of a successful DecodeMatrix or DecodeImage call.
type DecodeResult struct {
	Primary   string
	Secondary string
	Metadata  *StegoMetadata
}
