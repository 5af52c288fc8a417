package img2ascii

import (
	"bufio"
	"bytes"
	"io"
	"runtime"
	"time"

	"github.com/wbrown/img2ascii/imageutil"
)

// Renderer converts pixel grids to character art. A Renderer holds only
// configuration and the statistics of its last render; configure it
// once and reuse it for any number of images, but do not share one
// Renderer between goroutines that render at the same time.
type Renderer struct {
	// Configuration options
	Width         int
	Height        int
	Palette       Palette
	Interpolation imageutil.Interpolation
	EdgeThreshold float64
	ThinEdges     bool
	Dither        bool
	LocalContrast bool
	Workers       int
	Color         ColorResolver

	// Stats (private)
	stats Stats
}

// Stats describes the last render.
type Stats struct {
	EdgeCells    int
	ResampleTime time.Duration
	AnalyzeTime  time.Duration
	MapTime      time.Duration
	WriteTime    time.Duration
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a new Renderer with the given options.
// Default values: 80×40 cells, Classic palette, area resampling,
// DefaultEdgeThreshold, dithering and local contrast enabled, one worker
// per CPU, no color.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		Width:         80,
		Height:        40,
		Palette:       Classic,
		Interpolation: imageutil.InterpolationArea,
		EdgeThreshold: DefaultEdgeThreshold,
		Dither:        true,
		LocalContrast: true,
		Workers:       runtime.GOMAXPROCS(0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithSize sets the output size in cells.
func WithSize(width, height int) RendererOption {
	return func(r *Renderer) {
		r.Width, r.Height = width, height
	}
}

// WithPalette sets the glyph ramp.
func WithPalette(p Palette) RendererOption {
	return func(r *Renderer) {
		r.Palette = p
	}
}

// WithInterpolation sets the resampling method.
func WithInterpolation(interp imageutil.Interpolation) RendererOption {
	return func(r *Renderer) {
		r.Interpolation = interp
	}
}

// WithEdgeThreshold sets the gradient magnitude above which a cell gets
// a directional glyph.
func WithEdgeThreshold(threshold float64) RendererOption {
	return func(r *Renderer) {
		r.EdgeThreshold = threshold
	}
}

// WithThinEdges enables non-maximum suppression of edge cells.
func WithThinEdges(thin bool) RendererOption {
	return func(r *Renderer) {
		r.ThinEdges = thin
	}
}

// WithDither enables or disables error diffusion.
func WithDither(dither bool) RendererOption {
	return func(r *Renderer) {
		r.Dither = dither
	}
}

// WithLocalContrast enables or disables local contrast enhancement.
func WithLocalContrast(enabled bool) RendererOption {
	return func(r *Renderer) {
		r.LocalContrast = enabled
	}
}

// WithWorkers sets the number of goroutines used for resampling and
// analysis. Output does not depend on it.
func WithWorkers(n int) RendererOption {
	return func(r *Renderer) {
		r.Workers = n
	}
}

// WithColor sets how colors are emitted.
func WithColor(cr ColorResolver) RendererOption {
	return func(r *Renderer) {
		r.Color = cr
	}
}

// Stats returns the statistics of the last render.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Frame is a rendered grid of glyphs with the cells they came from.
type Frame struct {
	Cells  *CellGrid
	Glyphs [][]rune
}

// Text returns the frame as plain text, one line per row.
func (f *Frame) Text() string {
	var buf bytes.Buffer
	for _, row := range f.Glyphs {
		buf.WriteString(string(row))
		buf.WriteByte('\n')
	}
	return buf.String()
}

// Analyze resamples grid to the configured size and classifies every
// cell: luminance, color, local contrast and edge orientation.
func (r *Renderer) Analyze(grid *PixelGrid) (*CellGrid, error) {
	start := time.Now()
	cells, err := Resampler{Interpolation: r.Interpolation, Workers: r.Workers}.
		Resample(grid, r.Width, r.Height)
	if err != nil {
		return nil, err
	}
	r.stats.ResampleTime = time.Since(start)

	start = time.Now()
	applyLocalContrast(cells, r.LocalContrast, r.Workers)
	EdgeDetector{Threshold: r.EdgeThreshold, Thin: r.ThinEdges}.Detect(cells)
	r.stats.AnalyzeTime = time.Since(start)

	r.stats.EdgeCells = 0
	for i := range cells.Cells {
		if cells.Cells[i].IsEdge() {
			r.stats.EdgeCells++
		}
	}
	return cells, nil
}

// MapGlyphs chooses a glyph for every cell. Tones come from the
// image's histogram; with dithering enabled the rows are visited in
// order so the result is the same for any worker count.
func (r *Renderer) MapGlyphs(cells *CellGrid) [][]rune {
	start := time.Now()
	curve := NewToneCurve(histogramOf(cells), r.Palette)
	mapper := GlyphMapper{Palette: r.Palette}

	glyphs := make([][]rune, cells.Height)
	tones := make([]uint8, cells.Width)
	var d *ditherer
	if r.Dither {
		d = newDitherer(mapper, cells.Width)
	}
	for y := 0; y < cells.Height; y++ {
		row := cells.Row(y)
		out := make([]rune, cells.Width)
		for x := range row {
			tones[x] = curve.Map(row[x].Local)
		}
		if d != nil {
			d.row(y, row, tones, out)
		} else {
			for x := range row {
				out[x] = mapper.Glyph(&row[x], float64(tones[x]))
			}
		}
		glyphs[y] = out
	}
	r.stats.MapTime = time.Since(start)
	return glyphs
}

// RenderFrame runs the whole pipeline except writing.
func (r *Renderer) RenderFrame(grid *PixelGrid) (*Frame, error) {
	cells, err := r.Analyze(grid)
	if err != nil {
		return nil, err
	}
	return &Frame{Cells: cells, Glyphs: r.MapGlyphs(cells)}, nil
}

// Render converts grid and writes the result to w.
func (r *Renderer) Render(grid *PixelGrid, w io.Writer) error {
	frame, err := r.RenderFrame(grid)
	if err != nil {
		return err
	}
	return r.WriteFrame(frame, w)
}

// RenderToString converts grid and returns the text, escapes included
// when color is enabled.
func (r *Renderer) RenderToString(grid *PixelGrid) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(grid, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteFrame writes frame to w in one buffered pass. Every row ends with
// a newline; colored rows emit an escape whenever the color changes and
// a reset before the newline. The first write error aborts the pass and
// is returned as ErrIO.
func (r *Renderer) WriteFrame(frame *Frame, w io.Writer) error {
	start := time.Now()
	bw := bufio.NewWriter(w)
	cells := frame.Cells
	var esc []byte

	for y, glyphs := range frame.Glyphs {
		if r.Color.Enabled {
			var prev RGB
			for x, g := range glyphs {
				c := cells.At(x, y).Color
				if x == 0 || c != prev {
					esc = r.Color.AppendEscape(esc[:0], c)
					bw.Write(esc)
					prev = c
				}
				bw.WriteRune(g)
			}
			bw.Write(r.Color.Reset())
		} else {
			for _, g := range glyphs {
				bw.WriteRune(g)
			}
		}
		// bufio.Writer keeps the first error, so one check per row
		// catches any failed write in it.
		if err := bw.WriteByte('\n'); err != nil {
			return classError(ErrIO, "writing output: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return classError(ErrIO, "writing output: %w", err)
	}
	r.stats.WriteTime = time.Since(start)
	return nil
}
