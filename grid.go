package img2ascii

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/wbrown/img2ascii/imageutil"
)

// PixelGrid is a decoded source image. It always carries a luminance
// plane and carries an RGB plane only when the source had color. A
// PixelGrid is never modified after construction.
type PixelGrid struct {
	Width  int
	Height int

	// Lum holds BT.601 luminance, 0-255.
	Lum *imageutil.GrayImage

	// Color is nil for grayscale sources.
	Color *imageutil.RGBAImage
}

// HasColor reports whether the grid carries an RGB plane.
func (g *PixelGrid) HasColor() bool {
	return g.Color != nil
}

// NewPixelGrid builds a PixelGrid from a decoded image. Grayscale images
// keep a single channel; everything else is flattened onto white and
// converted to luminance.
func NewPixelGrid(img image.Image) (*PixelGrid, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, classError(ErrDecode, "image has no pixels")
	}

	grid := &PixelGrid{Width: bounds.Dx(), Height: bounds.Dy()}
	if imageutil.IsGrayscale(img) {
		grid.Lum = imageutil.GrayFrom(img)
		return grid, nil
	}

	grid.Color = imageutil.Flatten(img)
	grid.Lum = imageutil.ToGrayscale(grid.Color)
	return grid, nil
}

// Decode reads an encoded image from r and returns its PixelGrid.
// Read failures are reported as ErrIO, undecodable data as ErrDecode.
func Decode(r io.Reader) (*PixelGrid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, classError(ErrIO, "reading image: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes an in-memory PNG, JPEG, GIF, BMP, TIFF or WebP
// image.
func DecodeBytes(data []byte) (*PixelGrid, error) {
	img, _, err := imageutil.Decode(data)
	if err != nil {
		return nil, classError(ErrDecode, "%w", err)
	}
	return NewPixelGrid(img)
}

// LoadPixelGrid reads and decodes the image file at path.
func LoadPixelGrid(path string) (*PixelGrid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classError(ErrIO, "cannot open file %s: %w", path, err)
	}
	grid, err := DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return grid, nil
}
