package img2ascii

import "github.com/wbrown/img2ascii/imageutil"

// Cell is one character position of the output grid.
type Cell struct {
	// Lum is the mean luminance of the source region.
	Lum uint8
	// Color is the mean RGB of the source region; gray when the
	// source has no color.
	Color imageutil.RGB
	// HasColor is set when Color came from an RGB source.
	HasColor bool
	// Local is Lum after local contrast adjustment.
	Local uint8

	// Magnitude is the gradient magnitude in luminance units per cell.
	Magnitude float64
	// Orientation is None unless Magnitude exceeded the edge threshold.
	Orientation Orientation
}

// IsEdge reports whether the cell is rendered with a directional glyph.
func (c Cell) IsEdge() bool {
	return c.Orientation != None
}

// CellGrid is the row-major W×H grid of cells for one render pass.
type CellGrid struct {
	Width    int
	Height   int
	HasColor bool
	Cells    []Cell
}

func newCellGrid(width, height int, hasColor bool) *CellGrid {
	return &CellGrid{
		Width:    width,
		Height:   height,
		HasColor: hasColor,
		Cells:    make([]Cell, width*height),
	}
}

// At returns a pointer to the cell at (x, y).
func (g *CellGrid) At(x, y int) *Cell {
	return &g.Cells[y*g.Width+x]
}

// Row returns the cells of row y.
func (g *CellGrid) Row(y int) []Cell {
	return g.Cells[y*g.Width : (y+1)*g.Width]
}

// lumField returns the cell luminance as rows of float64 samples.
func (g *CellGrid) lumField() [][]float64 {
	field := make([][]float64, g.Height)
	for y := range field {
		field[y] = make([]float64, g.Width)
		for x, c := range g.Row(y) {
			field[y][x] = float64(c.Lum)
		}
	}
	return field
}
