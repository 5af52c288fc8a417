package img2ascii

import (
	"image"
	"testing"
)

// gridOf builds a PixelGrid from a fixture image.
func gridOf(t *testing.T, img image.Image) *PixelGrid {
	t.Helper()
	grid, err := NewPixelGrid(img)
	if err != nil {
		t.Fatalf("NewPixelGrid: %v", err)
	}
	return grid
}

// cellsOf builds a CellGrid with the given luminance rows.
func cellsOf(rows [][]uint8) *CellGrid {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	cells := newCellGrid(width, height, false)
	for y, row := range rows {
		for x, v := range row {
			c := cells.At(x, y)
			c.Lum, c.Local = v, v
			c.Color = RGB{R: v, G: v, B: v}
		}
	}
	return cells
}

// lumRows builds a width×height luminance grid from f.
func lumRows(width, height int, f func(x, y int) uint8) [][]uint8 {
	rows := make([][]uint8, height)
	for y := range rows {
		rows[y] = make([]uint8, width)
		for x := range rows[y] {
			rows[y][x] = f(x, y)
		}
	}
	return rows
}
