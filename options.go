package qrsteg

import (
	"github.com/qrsteg/qrsteg/internal/capacity"
	"github.com/qrsteg/qrsteg/qrengine/ecc"
)

// EncodeOptions configures Encode. A nil *EncodeOptions is treated as
// DefaultEncodeOptions().
type EncodeOptions struct {
	ECLevel         ecc.Level
	SafetyMargin    float64
	IncludeMetadata bool
}

// DefaultEncodeOptions returns ec_level=H, safety_margin=0.07,
// include_metadata=true.
func DefaultEncodeOptions() *EncodeOptions {
	return &EncodeOptions{
		ECLevel:         ecc.High,
		SafetyMargin:    capacity.DefaultSafetyMargin,
		IncludeMetadata: true,
	}
}

func (o *EncodeOptions) orDefault() *EncodeOptions {
	if o != nil {
		return o
	}
	return DefaultEncodeOptions()
}

// DecodeOptions configures DecodeMatrix and DecodeImage. A nil
// *DecodeOptions is treated as DefaultDecodeOptions().
type DecodeOptions struct {
	StrictChecksum bool
	MaxMessageSize int
}

// DefaultDecodeOptions returns strict_checksum=true, max_message_size=100 (bytes).
func DefaultDecodeOptions() *DecodeOptions {
	return &DecodeOptions{StrictChecksum: true, MaxMessageSize: 100}
}

func (o *DecodeOptions) orDefault() *DecodeOptions {
	if o != nil {
		return o
	}
	return DefaultDecodeOptions()
}
