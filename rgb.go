package img2ascii

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/wbrown/img2ascii/imageutil"
)

// RGB is an 8-bit per channel color.
type RGB = imageutil.RGB

// rgbDistance returns the squared Euclidean distance in RGB space.
func rgbDistance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// labDistance returns the CIE76 distance between a and b.
func labDistance(a, b RGB) float64 {
	return toColorful(a).DistanceLab(toColorful(b))
}

// component returns channel axis (0 red, 1 green, 2 blue) of c.
func component(c RGB, axis int) uint8 {
	switch axis {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}
