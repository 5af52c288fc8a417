package imageutil

import (
	"image"
	"image/color"
)

// IsGrayscale reports whether img stores a single luminance channel.
// Only such images produce a luminance-only pixel grid; everything else
// is treated as color, even when every pixel happens to be neutral.
func IsGrayscale(img image.Image) bool {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return true
	}
	return false
}

// Flatten converts any image.Image to an opaque RGBAImage whose origin
// is (0, 0). Translucent pixels are composited onto white, so a fully
// transparent pixel becomes white rather than black.
func Flatten(img image.Image) *RGBAImage {
	bounds := img.Bounds()
	dst := NewRGBAImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// RGBA() is alpha-premultiplied, so adding the uncovered
			// part of white is all the compositing needed.
			r, g, b, a := img.At(x, y).RGBA()
			white := 0xffff - a
			dst.SetRGB(x-bounds.Min.X, y-bounds.Min.Y, RGB{
				R: uint8((r + white) >> 8),
				G: uint8((g + white) >> 8),
				B: uint8((b + white) >> 8),
			})
		}
	}
	return dst
}

// GrayFrom copies a grayscale source into a GrayImage at origin (0, 0).
// Non-gray sources are converted with the Gray color model.
func GrayFrom(img image.Image) *GrayImage {
	bounds := img.Bounds()
	gray := NewGrayImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			gray.SetGrayValue(x-bounds.Min.X, y-bounds.Min.Y, c.Y)
		}
	}
	return gray
}

// ToGrayscale converts an RGBA image to grayscale using the standard
// luminance formula: Y = 0.299*R + 0.587*G + 0.114*B
// This matches the BT.601 weights used by most decoders.
func ToGrayscale(img *RGBAImage) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gray.SetGrayValue(x, y, img.GetRGB(x, y).Luma())
		}
	}

	return gray
}
