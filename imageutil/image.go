// Package imageutil provides the pure Go image plumbing used by the
// renderer: pixel plane wrappers, decoding, resampling and gradient
// kernels.
package imageutil

import (
	"image"
	"image/color"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Gray returns a neutral RGB with all three channels set to v.
func Gray(v uint8) RGB {
	return RGB{R: v, G: v, B: v}
}

// ToColor converts RGB to an opaque color.RGBA.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// Luma returns the BT.601 luminance of the color, rounded to the
// nearest integer.
func (rgb RGB) Luma() uint8 {
	lum := (299*int(rgb.R) + 587*int(rgb.G) + 114*int(rgb.B) + 500) / 1000
	if lum > 255 {
		lum = 255
	}
	return uint8(lum)
}

// RGBAImage wraps image.RGBA with convenience methods for pixel access.
// Pixels are always stored opaque.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// GetRGB returns the RGB value at (x, y).
func (img *RGBAImage) GetRGB(x, y int) RGB {
	i := img.PixOffset(x, y)
	return RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
}

// SetRGB sets the RGB value at (x, y).
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	i := img.PixOffset(x, y)
	img.Pix[i] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
	img.Pix[i+3] = 255
}

// GrayImage wraps image.Gray for single-channel planes.
type GrayImage struct {
	*image.Gray
}

// NewGrayImage creates a new GrayImage with the specified dimensions.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		Gray: image.NewGray(image.Rect(0, 0, width, height)),
	}
}

// Width returns the image width.
func (img *GrayImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *GrayImage) Height() int {
	return img.Bounds().Dy()
}

// GetGray returns the grayscale value at (x, y).
func (img *GrayImage) GetGray(x, y int) uint8 {
	return img.Pix[img.PixOffset(x, y)]
}

// SetGrayValue sets the grayscale value at (x, y).
func (img *GrayImage) SetGrayValue(x, y int, v uint8) {
	img.Pix[img.PixOffset(x, y)] = v
}

// Field returns the plane as rows of float64 samples, the form the
// gradient kernels operate on.
func (img *GrayImage) Field() [][]float64 {
	width, height := img.Width(), img.Height()
	field := make([][]float64, height)
	for y := 0; y < height; y++ {
		field[y] = make([]float64, width)
		row := img.Pix[y*img.Stride : y*img.Stride+width]
		for x, v := range row {
			field[y][x] = float64(v)
		}
	}
	return field
}
