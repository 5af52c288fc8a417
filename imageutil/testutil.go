package imageutil

import (
	"math"
)

// CreateGradientImage creates a horizontal black-to-white gradient.
func CreateGradientImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, Gray(uint8(255*x/max(width-1, 1))))
		}
	}
	return img
}

// CreateBandGradient creates a grayscale horizontal gradient whose
// luminance runs linearly from lo at the left column to hi at the
// right column.
func CreateBandGradient(width, height int, lo, hi uint8) *GrayImage {
	img := NewGrayImage(width, height)
	span := float64(int(hi) - int(lo))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := int(lo) + int(float64(x)/float64(max(width-1, 1))*span)
			img.SetGrayValue(x, y, uint8(v))
		}
	}
	return img
}

// CreateDiagonalEdgeImage creates a grayscale image split by the line
// x = y + offset: pixels right of the line are dark, the rest light.
func CreateDiagonalEdgeImage(width, height, offset int, light, dark uint8) *GrayImage {
	img := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := light
			if x > y+offset {
				v = dark
			}
			img.SetGrayValue(x, y, v)
		}
	}
	return img
}

// CreateCheckerboardImage creates a black and white grayscale
// checkerboard with square cells of squareSize pixels.
func CreateCheckerboardImage(width, height, squareSize int) *GrayImage {
	img := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.SetGrayValue(x, y, 255)
			}
		}
	}
	return img
}

// CreateRadialImage creates a grayscale image that is white at the
// center and fades to black at the corners.
func CreateRadialImage(width, height int) *GrayImage {
	img := NewGrayImage(width, height)
	cx, cy := float64(width)/2, float64(height)/2
	maxDist := math.Hypot(cx, cy)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dist := math.Hypot(float64(x)-cx, float64(y)-cy)
			img.SetGrayValue(x, y, uint8(math.Max(0, 255*(1-dist/maxDist))))
		}
	}
	return img
}

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

// CreateColorBarsImage creates a color bars test pattern.
func CreateColorBarsImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	colors := []RGB{
		{255, 255, 255}, // White
		{255, 255, 0},   // Yellow
		{0, 255, 255},   // Cyan
		{0, 255, 0},     // Green
		{255, 0, 255},   // Magenta
		{255, 0, 0},     // Red
		{0, 0, 255},     // Blue
		{0, 0, 0},       // Black
	}

	barWidth := max(width/len(colors), 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			colorIdx := min(x/barWidth, len(colors)-1)
			img.SetRGB(x, y, colors[colorIdx])
		}
	}
	return img
}

// CalculateMSE calculates the Mean Squared Error between two RGBA images.
func CalculateMSE(img1, img2 *RGBAImage) float64 {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return math.MaxFloat64
	}

	width, height := img1.Width(), img1.Height()
	var sumSq float64
	count := float64(width * height * 3) // 3 channels

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c1 := img1.GetRGB(x, y)
			c2 := img2.GetRGB(x, y)
			dr := float64(c1.R) - float64(c2.R)
			dg := float64(c1.G) - float64(c2.G)
			db := float64(c1.B) - float64(c2.B)
			sumSq += dr*dr + dg*dg + db*db
		}
	}

	return sumSq / count
}
