package img2ascii

import (
	"math"

	"github.com/wbrown/img2ascii/imageutil"
)

// DefaultEdgeThreshold is the gradient magnitude, in luminance units per
// cell, above which a cell becomes an edge cell. Smooth gradients change
// by a few units per cell; a boundary between two flat regions changes
// by half its contrast.
const DefaultEdgeThreshold = 24.0

// Orientation is the direction of the boundary running through an edge
// cell.
type Orientation uint8

const (
	// None marks a cell that is not on an edge.
	None Orientation = iota
	// Horizontal is a boundary crossing the middle of the cell.
	Horizontal
	// HorizontalLow is a horizontal boundary at the bottom of the cell.
	HorizontalLow
	// Vertical is a vertical boundary.
	Vertical
	// DiagonalUp rises from lower left to upper right.
	DiagonalUp
	// DiagonalDown falls from upper left to lower right.
	DiagonalDown
)

var orientationGlyphs = [...]rune{
	None:          ' ',
	Horizontal:    '-',
	HorizontalLow: '_',
	Vertical:      '|',
	DiagonalUp:    '/',
	DiagonalDown:  '\\',
}

var orientationNames = [...]string{
	None:          "none",
	Horizontal:    "horizontal",
	HorizontalLow: "horizontal-low",
	Vertical:      "vertical",
	DiagonalUp:    "diagonal-up",
	DiagonalDown:  "diagonal-down",
}

// Glyph returns the directional character for the orientation.
func (o Orientation) Glyph() rune {
	if int(o) < len(orientationGlyphs) {
		return orientationGlyphs[o]
	}
	return ' '
}

func (o Orientation) String() string {
	if int(o) < len(orientationNames) {
		return orientationNames[o]
	}
	return "invalid"
}

// IsEdgeGlyph reports whether r is one of the directional glyphs.
func IsEdgeGlyph(r rune) bool {
	for o := Horizontal; o <= DiagonalDown; o++ {
		if o.Glyph() == r {
			return true
		}
	}
	return false
}

// DetectEdges classifies the cells of cells against threshold.
func DetectEdges(cells *CellGrid, threshold float64, thin bool) {
	EdgeDetector{Threshold: threshold, Thin: thin}.Detect(cells)
}

// EdgeDetector classifies cells on sharp luminance boundaries.
type EdgeDetector struct {
	// Threshold is the minimum gradient magnitude of an edge cell.
	Threshold float64
	// Thin keeps only cells on the ridge of the gradient magnitude.
	Thin bool
}

// Detect fills Magnitude and Orientation for every cell of cells.
//
// Gradients are Sobel responses over the cell luminance field,
// normalized to luminance change per cell by the distance between the
// neighbors that exist. Border cells see a one-sided difference instead
// of being skipped.
func (ed EdgeDetector) Detect(cells *CellGrid) {
	if cells.Width == 0 || cells.Height == 0 {
		return
	}

	field := cells.lumField()
	gx, gy := imageutil.SobelGradients(field)

	magnitude := make([][]float64, cells.Height)
	direction := make([][]float64, cells.Height)
	for y := 0; y < cells.Height; y++ {
		magnitude[y] = make([]float64, cells.Width)
		direction[y] = make([]float64, cells.Width)
		spanY := neighborSpan(y, cells.Height)
		for x := 0; x < cells.Width; x++ {
			spanX := neighborSpan(x, cells.Width)
			// Sobel weights sum to 4 along the smoothing axis.
			sx := slope(gx[y][x], spanX)
			sy := slope(gy[y][x], spanY)
			magnitude[y][x] = math.Hypot(sx, sy)
			direction[y][x] = math.Atan2(sy, sx)
		}
	}

	ridge := magnitude
	if ed.Thin {
		ridge = imageutil.SuppressNonMaxima(magnitude, direction)
	}

	for y := 0; y < cells.Height; y++ {
		for x := 0; x < cells.Width; x++ {
			c := cells.At(x, y)
			c.Magnitude = magnitude[y][x]
			c.Orientation = None
			if ridge[y][x] > ed.Threshold {
				c.Orientation = classify(field, x, y, direction[y][x])
			}
		}
	}
}

// neighborSpan returns the distance between the outermost neighbors of
// sample i along an axis of n samples.
func neighborSpan(i, n int) int {
	return min(i+1, n-1) - max(i-1, 0)
}

func slope(response float64, span int) float64 {
	if span <= 0 {
		return 0
	}
	return response / 4 / float64(span)
}

// classify bins the gradient angle into four 45° sectors. The boundary
// runs perpendicular to the gradient, so a horizontal gradient yields a
// vertical glyph. Angles are measured with y growing downward.
func classify(field [][]float64, x, y int, theta float64) Orientation {
	deg := theta * 180 / math.Pi
	if deg < 0 {
		deg += 180
	}
	switch int((deg+22.5)/45) % 4 {
	case 0:
		return Vertical
	case 1:
		return DiagonalUp
	case 3:
		return DiagonalDown
	}

	height := len(field)
	v := field[y][x]
	above := field[max(y-1, 0)][x]
	below := field[min(y+1, height-1)][x]
	if math.Abs(v-above) < math.Abs(v-below) {
		return HorizontalLow
	}
	return Horizontal
}
