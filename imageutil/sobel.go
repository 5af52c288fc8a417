package imageutil

import "math"

// Kernel represents a convolution kernel.
type Kernel struct {
	Values [][]float64
	Width  int
	Height int
}

// NewKernel creates a new kernel from a 2D slice.
func NewKernel(values [][]float64) *Kernel {
	height := len(values)
	width := 0
	if height > 0 {
		width = len(values[0])
	}
	return &Kernel{
		Values: values,
		Width:  width,
		Height: height,
	}
}

// SobelXKernel returns the horizontal Sobel kernel.
func SobelXKernel() *Kernel {
	return NewKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})
}

// SobelYKernel returns the vertical Sobel kernel. Positive responses
// mean luminance grows downward.
func SobelYKernel() *Kernel {
	return NewKernel([][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	})
}

// ConvolveFloat applies a convolution kernel to a float field.
// Border samples are handled by replicating edge values, so a kernel
// that reaches past the border shrinks to the samples that exist
// rather than reading zeros.
func ConvolveFloat(field [][]float64, kernel *Kernel) [][]float64 {
	height := len(field)
	if height == 0 {
		return nil
	}
	width := len(field[0])

	dst := make([][]float64, height)
	for y := 0; y < height; y++ {
		dst[y] = make([]float64, width)
	}

	halfKW := kernel.Width / 2
	halfKH := kernel.Height / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64

			for ky := 0; ky < kernel.Height; ky++ {
				sy := clampInt(y+ky-halfKH, 0, height-1)
				for kx := 0; kx < kernel.Width; kx++ {
					sx := clampInt(x+kx-halfKW, 0, width-1)
					sum += field[sy][sx] * kernel.Values[ky][kx]
				}
			}

			dst[y][x] = sum
		}
	}

	return dst
}

// SobelGradients computes horizontal and vertical Sobel responses of a
// float field with replicated borders.
func SobelGradients(field [][]float64) (gx, gy [][]float64) {
	return ConvolveFloat(field, SobelXKernel()), ConvolveFloat(field, SobelYKernel())
}

// SuppressNonMaxima performs non-maximum suppression on gradient
// magnitudes: a sample survives only if it is not smaller than both
// neighbors along its gradient direction. Neighbors outside the field
// count as zero, so ridges touching the border are kept.
func SuppressNonMaxima(magnitude, direction [][]float64) [][]float64 {
	height := len(magnitude)
	suppressed := make([][]float64, height)
	if height == 0 {
		return suppressed
	}
	width := len(magnitude[0])

	at := func(x, y int) float64 {
		if x < 0 || y < 0 || x >= width || y >= height {
			return 0
		}
		return magnitude[y][x]
	}

	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			// Quantize angle to 4 directions: 0, 45, 90, 135 degrees
			angle := direction[y][x] * 180.0 / math.Pi
			if angle < 0 {
				angle += 180
			}

			var q, r float64
			switch {
			case angle < 22.5 || angle >= 157.5:
				q, r = at(x+1, y), at(x-1, y)
			case angle < 67.5:
				q, r = at(x+1, y+1), at(x-1, y-1)
			case angle < 112.5:
				q, r = at(x, y+1), at(x, y-1)
			default:
				q, r = at(x-1, y+1), at(x+1, y-1)
			}

			mag := magnitude[y][x]
			if mag >= q && mag >= r {
				suppressed[y][x] = mag
			}
		}
	}

	return suppressed
}

// clampInt clamps an integer to the given range.
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
