package img2ascii

// GlyphMapper turns tones into ramp glyphs. Tones run from 0 (darkest)
// to 255 (lightest).
type GlyphMapper struct {
	Palette Palette
}

// Index returns the ramp index for tone. Tones are spread evenly over
// the ramp, so increasing the tone never moves the index by more than
// one step per 255/(levels-1) units and never decreases it.
func (m GlyphMapper) Index(tone float64) int {
	n := m.Palette.Levels()
	if n <= 1 {
		return 0
	}
	tone = min(max(tone, 0), 255)
	idx := int(tone*float64(n-1)/255 + 0.5)
	return min(max(idx, 0), n-1)
}

// Level returns the tone represented exactly by ramp index idx.
func (m GlyphMapper) Level(idx int) float64 {
	n := m.Palette.Levels()
	if n <= 1 {
		return 0
	}
	return float64(idx) * 255 / float64(n-1)
}

// RampGlyph returns the ramp glyph for tone.
func (m GlyphMapper) RampGlyph(tone float64) rune {
	if m.Palette.Levels() == 0 {
		return ' '
	}
	return m.Palette.Ramp[m.Index(tone)]
}

// Glyph returns the glyph for a cell: its directional glyph when it is
// an edge cell, otherwise the ramp glyph for tone.
func (m GlyphMapper) Glyph(c *Cell, tone float64) rune {
	if c.IsEdge() {
		return c.Orientation.Glyph()
	}
	return m.RampGlyph(tone)
}
