package imagescan_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/qrsteg/qrsteg/internal/imagescan"
)

// rasterize upscales a boolean module grid into a grayscale image using
// nearest-neighbor replication, simulating a camera capture of a printed
// QR code at a fixed pixel-per-module pitch.
func rasterize(modules [][]bool, pixelsPerModule int) *image.Gray {
	size := len(modules)
	img := image.NewGray(image.Rect(0, 0, size*pixelsPerModule, size*pixelsPerModule))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			var c color.Gray
			if modules[y][x] {
				c = color.Gray{Y: 0}
			} else {
				c = color.Gray{Y: 255}
			}
			for dy := 0; dy < pixelsPerModule; dy++ {
				for dx := 0; dx < pixelsPerModule; dx++ {
					img.SetGray(x*pixelsPerModule+dx, y*pixelsPerModule+dy, c)
				}
			}
		}
	}
	return img
}

func TestSampleByCornersRecoversModules(t *testing.T) {
	size := 21
	modules := make([][]bool, size)
	for y := range modules {
		modules[y] = make([]bool, size)
		for x := range modules[y] {
			modules[y][x] = (x+y)%3 == 0
		}
	}

	const pitch = 4
	img := rasterize(modules, pitch)

	topLeft := image.Pt(0, 0)
	topRight := image.Pt(size*pitch, 0)
	bottomLeft := image.Pt(0, size*pitch)

	loc, err := imagescan.SampleByCorners(img, topLeft, topRight, bottomLeft, int32(size))
	if err != nil {
		t.Fatalf("SampleByCorners error: %v", err)
	}
	if loc.Size != int32(size) {
		t.Fatalf("loc.Size = %d, want %d", loc.Size, size)
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			want := modules[y][x]
			got := loc.At(int32(x), int32(y))
			if got != want {
				t.Fatalf("module (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}
