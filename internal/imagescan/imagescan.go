// Package imagescan locates and samples a QR Code inside an arbitrary
// image, wrapping github.com/makiuchi-d/gozxing (a Go port of ZXing) as the
// real-world scanner, with a geometric fallback sampler for callers whose
// detector can only supply finder corners rather than a rectified grid.
package imagescan

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/makiuchi-d/gozxing/qrcode/detector"
)

// ErrNoCodeFound is returned when no QR code could be located in the image.
var ErrNoCodeFound = errors.New("NoCodeFound")

// Locate is what an image engine hands back: the decoded primary text, the
// side length of the located symbol, and a per-module bit accessor already
// rectified to the symbol's own module grid. At returns true for a dark
// module, matching qrengine.Symbol.ModuleAt's convention.
type Locate struct {
	Primary string
	Size    int32
	At      func(x, y int32) bool
}

// GoZXingEngine locates QR codes using gozxing's standard reader and
// detector pipeline.
type GoZXingEngine struct{}

// Locate decodes the primary text and extracts a rectified bit matrix from
// img. The two steps are independent: if text decoding fails but the
// detector still finds a symbol, Locate still returns the sampled grid with
// an empty Primary so the caller can fall back to a caller-supplied primary.
func (GoZXingEngine) Locate(img image.Image) (Locate, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return Locate{}, fmt.Errorf("%w: %v", ErrNoCodeFound, err)
	}

	var primary string
	if result, err := qrcode.NewQRCodeReader().Decode(bmp, nil); err == nil {
		primary = result.GetText()
	}

	blackMatrix, err := bmp.GetBlackMatrix()
	if err != nil {
		return Locate{}, fmt.Errorf("%w: %v", ErrNoCodeFound, err)
	}
	detectorResult, err := detector.NewDetector(blackMatrix).Detect(nil)
	if err != nil {
		return Locate{}, fmt.Errorf("%w: %v", ErrNoCodeFound, err)
	}

	bits := detectorResult.GetBits()
	size := int32(bits.GetHeight())

	return Locate{
		Primary: primary,
		Size:    size,
		At: func(x, y int32) bool {
			return bits.Get(int(x), int(y))
		},
	}, nil
}

// SampleByCorners re-samples a QR code's modules from three detected finder
// corners (top-left, top-right, bottom-left) when the caller's detector
// cannot provide an already-rectified bit matrix. Module pitch is derived
// from the corner-to-corner distance divided by size; each module's color is
// the grayscale value at its computed center, thresholded at 128/255. This
// is a literal, axis-aligned sampler — it does not correct for perspective
// distortion or rotation beyond what the three corners already imply.
func SampleByCorners(img image.Image, topLeft, topRight, bottomLeft image.Point, size int32) (Locate, error) {
	if size <= 0 {
		return Locate{}, fmt.Errorf("%w: non-positive size %d", ErrNoCodeFound, size)
	}

	stepX := float64(topRight.X-topLeft.X) / float64(size)
	stepY := float64(topRight.Y-topLeft.Y) / float64(size)
	downX := float64(bottomLeft.X-topLeft.X) / float64(size)
	downY := float64(bottomLeft.Y-topLeft.Y) / float64(size)

	gray := image.NewGray(img.Bounds())
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}

	at := func(x, y int32) bool {
		cx := float64(topLeft.X) + (float64(x)+0.5)*stepX + (float64(y)+0.5)*downX
		cy := float64(topLeft.Y) + (float64(x)+0.5)*stepY + (float64(y)+0.5)*downY
		px := gray.GrayAt(int(cx), int(cy))
		return px.Y < 128
	}

	return Locate{Size: size, At: at}, nil
}
