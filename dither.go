package img2ascii

// ditherer diffuses glyph quantization error with Floyd-Steinberg
// weights, scanning rows in alternating directions. Edge cells absorb
// and drop the error that reaches them.
type ditherer struct {
	mapper GlyphMapper
	width  int
	// cur and next carry one guard cell on each side.
	cur, next []float64
}

func newDitherer(mapper GlyphMapper, width int) *ditherer {
	return &ditherer{
		mapper: mapper,
		width:  width,
		cur:    make([]float64, width+2),
		next:   make([]float64, width+2),
	}
}

// row writes the glyphs for row y into out. tones holds the undithered
// tone of each cell. Rows must be passed in order starting at 0.
func (d *ditherer) row(y int, cells []Cell, tones []uint8, out []rune) {
	forward := y%2 == 0
	for i := 0; i < d.width; i++ {
		x := i
		if !forward {
			x = d.width - 1 - i
		}
		c := &cells[x]
		if c.IsEdge() {
			out[x] = c.Orientation.Glyph()
			d.cur[x+1] = 0
			continue
		}

		tone := min(max(float64(tones[x])+d.cur[x+1], 0), 255)
		idx := d.mapper.Index(tone)
		out[x] = d.mapper.Palette.Ramp[idx]
		d.distributeError(x, forward, tone-d.mapper.Level(idx))
	}

	d.cur, d.next = d.next, d.cur
	clear(d.next)
}

// distributeError pushes err to the unvisited neighbors of x: 7/16
// ahead, 3/16 behind-below, 5/16 below and 1/16 ahead-below.
func (d *ditherer) distributeError(x int, forward bool, err float64) {
	ahead, behind := x+2, x
	if !forward {
		ahead, behind = x, x+2
	}
	d.cur[ahead] += err * 7 / 16
	d.next[behind] += err * 3 / 16
	d.next[x+1] += err * 5 / 16
	d.next[ahead] += err * 1 / 16
}
