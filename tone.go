package img2ascii

// LocalContrastRadius is the half-width, in cells, of the neighborhood
// used for local contrast enhancement.
const LocalContrastRadius = 2

// contrastGain returns the amplification applied to a cell's deviation
// from its neighborhood mean. Flat neighborhoods are boosted the most.
func contrastGain(variance float64) float64 {
	switch {
	case variance < 180:
		return 2.35
	case variance < 800:
		return 1.95
	default:
		return 1.55
	}
}

// LocalContrast enhances the cells of cells in place, filling Local.
func LocalContrast(cells *CellGrid, workers int) {
	applyLocalContrast(cells, true, workers)
}

// applyLocalContrast sets Local for every cell. When enabled, each cell
// moves away from the mean of the (2r+1)² neighborhood around it,
// clipped to the grid. Otherwise Local equals Lum.
func applyLocalContrast(cells *CellGrid, enabled bool, workers int) {
	if !enabled {
		for i := range cells.Cells {
			cells.Cells[i].Local = cells.Cells[i].Lum
		}
		return
	}

	sums := newSummedArea(cells.Width, cells.Height, func(x, y int) uint64 {
		return uint64(cells.At(x, y).Lum)
	})
	squares := newSummedArea(cells.Width, cells.Height, func(x, y int) uint64 {
		v := uint64(cells.At(x, y).Lum)
		return v * v
	})

	r := LocalContrastRadius
	forEachRowRange(cells.Height, workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			wy0, wy1 := max(y-r, 0), min(y+r+1, cells.Height)
			for x := 0; x < cells.Width; x++ {
				wx0, wx1 := max(x-r, 0), min(x+r+1, cells.Width)
				n := float64((wx1 - wx0) * (wy1 - wy0))
				mean := float64(sums.block(wx0, wy0, wx1, wy1)) / n
				variance := float64(squares.block(wx0, wy0, wx1, wy1))/n - mean*mean

				c := cells.At(x, y)
				v := float64(c.Lum)
				c.Local = saturate(v + contrastGain(variance)*(v-mean))
			}
		}
	})
}

func saturate(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}

// ToneCurve maps a luminance to the tone used for glyph selection. It
// is a lookup table built once per image.
type ToneCurve [256]uint8

// Histogram counts cell luminances.
type Histogram [256]uint64

// Total returns the number of samples.
func (h *Histogram) Total() uint64 {
	var n uint64
	for _, c := range h {
		n += c
	}
	return n
}

// Percentile returns the smallest level whose cumulative count reaches
// p percent of the samples. An empty histogram yields 0.
func (h *Histogram) Percentile(p int) uint8 {
	total := h.Total()
	if total == 0 {
		return 0
	}
	target := max(total*uint64(p)/100, 1)
	var acc uint64
	for i, c := range h {
		acc += c
		if acc >= target {
			return uint8(i)
		}
	}
	return 255
}

func histogramOf(cells *CellGrid) *Histogram {
	var h Histogram
	for _, c := range cells.Cells {
		h[c.Lum]++
	}
	return &h
}

// NewToneCurve stretches the 1st..99th percentile of h to the full range
// and then bends the result with the palette's curve. Histograms too
// narrow to stretch use the identity stretch. The curve is monotonically
// non-decreasing and maps 0 to 0 and 255 to 255.
func NewToneCurve(h *Histogram, p Palette) ToneCurve {
	low, high := int(h.Percentile(1)), int(h.Percentile(99))
	if high <= low {
		low, high = 0, 255
	}

	var tc ToneCurve
	for i := range tc {
		var v int
		switch {
		case i <= low:
			v = 0
		case i >= high:
			v = 255
		default:
			v = (i - low) * 255 / (high - low)
		}
		tc[i] = uint8(p.bend(v))
	}
	return tc
}

// Map returns the tone for luminance v.
func (tc *ToneCurve) Map(v uint8) uint8 {
	return tc[v]
}

// summedArea is an integral image with a zero first row and column, so
// any rectangle sum costs four lookups.
type summedArea struct {
	stride int
	sums   []uint64
}

func newSummedArea(width, height int, sample func(x, y int) uint64) *summedArea {
	stride := width + 1
	sa := &summedArea{stride: stride, sums: make([]uint64, stride*(height+1))}
	for y := 1; y <= height; y++ {
		var rowSum uint64
		for x := 1; x <= width; x++ {
			rowSum += sample(x-1, y-1)
			sa.sums[y*stride+x] = sa.sums[(y-1)*stride+x] + rowSum
		}
	}
	return sa
}

// block returns the sum over [x0, x1) × [y0, y1).
func (sa *summedArea) block(x0, y0, x1, y1 int) uint64 {
	s := sa.stride
	return sa.sums[y1*s+x1] - sa.sums[y0*s+x1] - sa.sums[y1*s+x0] + sa.sums[y0*s+x0]
}
