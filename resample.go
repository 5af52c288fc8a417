package img2ascii

import (
	"runtime"

	"github.com/wbrown/img2ascii/imageutil"
)

// MaxOutputDimension bounds the requested width and height in cells.
const MaxOutputDimension = 1000

// ValidateDimensions checks a requested output grid size.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return classError(ErrInvalidDimensions, "output size %dx%d must be positive", width, height)
	}
	if width > MaxOutputDimension || height > MaxOutputDimension {
		return classError(ErrInvalidDimensions, "output size %dx%d exceeds %dx%d",
			width, height, MaxOutputDimension, MaxOutputDimension)
	}
	return nil
}

// Resample maps grid onto a width×height CellGrid with one worker per
// CPU.
func Resample(grid *PixelGrid, width, height int, interp imageutil.Interpolation) (*CellGrid, error) {
	return Resampler{Interpolation: interp, Workers: runtime.GOMAXPROCS(0)}.Resample(grid, width, height)
}

// Resampler maps a PixelGrid onto a grid of cells.
type Resampler struct {
	Interpolation imageutil.Interpolation
	Workers       int
}

// Resample produces a width×height CellGrid from grid. With area
// interpolation each cell is the box average of the source pixels it
// covers; upscaling therefore repeats source pixels. The other
// interpolations scale the source planes with x/image/draw.
func (rs Resampler) Resample(grid *PixelGrid, width, height int) (*CellGrid, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	if grid == nil || grid.Width <= 0 || grid.Height <= 0 {
		return nil, classError(ErrDecode, "empty pixel grid")
	}

	cells := newCellGrid(width, height, grid.HasColor())
	if rs.Interpolation == imageutil.InterpolationArea {
		rs.resampleArea(grid, cells)
	} else {
		rs.resampleScaled(grid, cells)
	}
	return cells, nil
}

// resampleScaled scales both planes to one pixel per cell.
func (rs Resampler) resampleScaled(grid *PixelGrid, cells *CellGrid) {
	lum := imageutil.ResizeGray(grid.Lum, cells.Width, cells.Height, rs.Interpolation)
	var rgb *imageutil.RGBAImage
	if grid.Color != nil {
		rgb = imageutil.Resize(grid.Color, cells.Width, cells.Height, rs.Interpolation)
	}

	forEachRowRange(cells.Height, rs.Workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < cells.Width; x++ {
				c := cells.At(x, y)
				c.Lum = lum.GetGray(x, y)
				if rgb != nil {
					c.Color = rgb.GetRGB(x, y)
					c.HasColor = true
				} else {
					c.Color = imageutil.Gray(c.Lum)
				}
			}
		}
	})
}

// resampleArea averages each cell's block of source pixels directly.
// When the grid is no larger than the source the blocks are disjoint, so
// the whole pass reads every source pixel once and allocates nothing.
func (rs Resampler) resampleArea(grid *PixelGrid, cells *CellGrid) {
	forEachRowRange(cells.Height, rs.Workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			sy0, sy1 := cellSpan(y, cells.Height, grid.Height)
			for x := 0; x < cells.Width; x++ {
				sx0, sx1 := cellSpan(x, cells.Width, grid.Width)
				count := uint64(sx1-sx0) * uint64(sy1-sy0)

				c := cells.At(x, y)
				c.Lum = meanOf(sumGray(grid.Lum, sx0, sy0, sx1, sy1), count)
				if grid.Color != nil {
					r, g, b := sumRGB(grid.Color, sx0, sy0, sx1, sy1)
					c.Color = imageutil.RGB{
						R: meanOf(r, count),
						G: meanOf(g, count),
						B: meanOf(b, count),
					}
					c.HasColor = true
				} else {
					c.Color = imageutil.Gray(c.Lum)
				}
			}
		}
	})
}

// sumGray returns the sample sum over [x0, x1) × [y0, y1).
func sumGray(img *imageutil.GrayImage, x0, y0, x1, y1 int) uint64 {
	var sum uint64
	for y := y0; y < y1; y++ {
		i := img.PixOffset(x0, y)
		for _, v := range img.Pix[i : i+x1-x0] {
			sum += uint64(v)
		}
	}
	return sum
}

func sumRGB(img *imageutil.RGBAImage, x0, y0, x1, y1 int) (r, g, b uint64) {
	for y := y0; y < y1; y++ {
		i := img.PixOffset(x0, y)
		row := img.Pix[i : i+4*(x1-x0)]
		for j := 0; j < len(row); j += 4 {
			r += uint64(row[j])
			g += uint64(row[j+1])
			b += uint64(row[j+2])
		}
	}
	return r, g, b
}

// cellSpan returns the half-open source range [lo, hi) covered by cell i
// of n when the source has size samples. The range always holds at
// least one sample.
func cellSpan(i, n, size int) (lo, hi int) {
	lo = i * size / n
	hi = (i + 1) * size / n
	if hi <= lo {
		hi = lo + 1
	}
	if lo >= size {
		lo, hi = size-1, size
	}
	return lo, min(hi, size)
}

func meanOf(sum, count uint64) uint8 {
	if count == 0 {
		return 0
	}
	return uint8(min((sum+count/2)/count, 255))
}
