package imageutil

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea averages every source pixel covered by a
	// destination pixel. Resize has no box filter and falls back to
	// Catmull-Rom for it.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest

	// InterpolationCatmullRom uses the Catmull-Rom cubic kernel.
	InterpolationCatmullRom
)

var interpolationNames = map[Interpolation]string{
	InterpolationArea:       "area",
	InterpolationLinear:     "linear",
	InterpolationNearest:    "nearest",
	InterpolationCatmullRom: "catmullrom",
}

// String returns the command-line name of the interpolation.
func (i Interpolation) String() string {
	if name, ok := interpolationNames[i]; ok {
		return name
	}
	return fmt.Sprintf("Interpolation(%d)", int(i))
}

// ParseInterpolation parses one of "area", "linear", "nearest" or
// "catmullrom".
func ParseInterpolation(s string) (Interpolation, error) {
	s = strings.ToLower(s)
	for interp, name := range interpolationNames {
		if name == s {
			return interp, nil
		}
	}
	return InterpolationArea, fmt.Errorf("unknown interpolation %q (use area|linear|nearest|catmullrom)", s)
}

func scalerFor(interp Interpolation) draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		// CatmullRom provides high quality for both up and down scaling
		return draw.CatmullRom
	}
}

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	scalerFor(interp).Scale(dst.RGBA, image.Rect(0, 0, width, height), img.RGBA, img.Bounds(), draw.Src, nil)
	return dst
}

// ResizeGray resizes a grayscale image to the specified dimensions.
func ResizeGray(img *GrayImage, width, height int, interp Interpolation) *GrayImage {
	dst := NewGrayImage(width, height)
	scalerFor(interp).Scale(dst.Gray, image.Rect(0, 0, width, height), img.Gray, img.Bounds(), draw.Src, nil)
	return dst
}
