package qrsteg

import (
	"fmt"
	"image"

	"github.com/qrsteg/qrsteg/internal/imagescan"
	"github.com/qrsteg/qrsteg/qrengine"
)

// Engine produces the clean QR Code matrix used as the encoder's base and
// the decoder's regenerated reference. The default Engine is backed by
// package qrengine; a caller with its own QR library can substitute it by
// implementing this interface.
type Engine interface {
	EncodeText(text string, ec qrengine.ECLevel) (*Matrix, error)
}

// ImageEngine locates and decodes a QR code inside an arbitrary image,
// returning both the primary text and a module-aligned Matrix. The default
// ImageEngine wraps internal/imagescan.GoZXingEngine.
type ImageEngine interface {
	Locate(img image.Image) (primary string, m *Matrix, err error)
}

// qrengineEngine adapts package qrengine to the Engine interface.
type qrengineEngine struct{}

func (qrengineEngine) EncodeText(text string, ec qrengine.ECLevel) (*Matrix, error) {
	sym, err := qrengine.EncodeText(text, ec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrimaryEncodeError, err)
	}
	return matrixFromSymbol(sym), nil
}

var defaultEngine Engine = qrengineEngine{}

// goZXingImageEngine adapts internal/imagescan.GoZXingEngine to ImageEngine.
type goZXingImageEngine struct {
	inner imagescan.GoZXingEngine
}

func (e goZXingImageEngine) Locate(img image.Image) (string, *Matrix, error) {
	loc, err := e.inner.Locate(img)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrNoCodeFound, err)
	}
	return loc.Primary, matrixFromLocate(loc.Size, loc.At), nil
}

var defaultImageEngine ImageEngine = goZXingImageEngine{}
