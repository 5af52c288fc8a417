package img2ascii

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/wbrown/img2ascii/imageutil"
)

func distinctGlyphs(s string) map[rune]bool {
	seen := map[rune]bool{}
	for _, r := range s {
		if r != '\n' {
			seen[r] = true
		}
	}
	return seen
}

func TestLowContrastGradientUsesManyGlyphs(t *testing.T) {
	t.Parallel()
	grid := gridOf(t, imageutil.CreateBandGradient(320, 96, 96, 136))

	for _, dither := range []bool{true, false} {
		out, err := NewRenderer(WithSize(160, 48), WithDither(dither)).RenderToString(grid)
		if err != nil {
			t.Fatalf("RenderToString: %v", err)
		}
		if n := len(distinctGlyphs(out)); n < 24 {
			t.Errorf("dither=%t: %d distinct glyphs, want at least 24", dither, n)
		}
	}
}

func TestDiagonalEdgeProducesDirectionalGlyphs(t *testing.T) {
	t.Parallel()
	grid := gridOf(t, imageutil.CreateDiagonalEdgeImage(200, 120, 20, 230, 25))

	r := NewRenderer(WithSize(100, 50))
	out, err := r.RenderToString(grid)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}

	directional := 0
	falling := 0
	for _, c := range out {
		if strings.ContainsRune("/\\|-_", c) {
			directional++
		}
		if c == '\\' {
			falling++
		}
	}
	if directional < 25 {
		t.Errorf("%d directional glyphs, want at least 25", directional)
	}
	if falling < 25 {
		t.Errorf("%d '\\' glyphs along a falling boundary, want at least 25", falling)
	}
	if r.Stats().EdgeCells < directional {
		t.Errorf("Stats().EdgeCells = %d, fewer than the %d glyphs written", r.Stats().EdgeCells, directional)
	}
}

func TestRenderShape(t *testing.T) {
	t.Parallel()
	grid := gridOf(t, imageutil.CreateRadialImage(64, 48))
	out, err := NewRenderer(WithSize(33, 17)).RenderToString(grid)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("output does not end with a newline")
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 17 {
		t.Fatalf("%d lines, want 17", len(lines))
	}
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != 33 {
			t.Errorf("line %d has %d glyphs, want 33", i, n)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("uncolored output contains an escape")
	}
}

func TestRenderSolidImages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		c    RGB
		want rune
	}{
		{RGB{R: 255, G: 255, B: 255}, ' '},
		{RGB{}, '$'},
	}
	for _, tt := range tests {
		grid := gridOf(t, imageutil.CreateSolidImage(40, 30, tt.c).RGBA)
		out, err := NewRenderer(WithSize(20, 10)).RenderToString(grid)
		if err != nil {
			t.Fatalf("RenderToString: %v", err)
		}
		want := strings.Repeat(strings.Repeat(string(tt.want), 20)+"\n", 10)
		if out != want {
			t.Errorf("solid %v rendered as %q", tt.c, out)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	t.Parallel()
	grid := gridOf(t, imageutil.CreateColorBarsImage(120, 80).RGBA)

	for _, color := range []ColorResolver{{}, {Enabled: true}, {Enabled: true, Depth: Depth256}} {
		r := NewRenderer(WithSize(60, 20), WithColor(color))
		first, err := r.RenderToString(grid)
		if err != nil {
			t.Fatalf("RenderToString: %v", err)
		}
		second, err := r.RenderToString(grid)
		if err != nil {
			t.Fatalf("RenderToString: %v", err)
		}
		if first != second {
			t.Errorf("color=%+v: re-render differs", color)
		}
	}
}

func TestRenderWorkersAgree(t *testing.T) {
	t.Parallel()
	grid := gridOf(t, imageutil.CreateDiagonalEdgeImage(333, 211, 7, 200, 40))

	one, err := NewRenderer(WithSize(101, 47), WithWorkers(1)).RenderToString(grid)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	for _, workers := range []int{2, 7, 64} {
		many, err := NewRenderer(WithSize(101, 47), WithWorkers(workers)).RenderToString(grid)
		if err != nil {
			t.Fatalf("RenderToString: %v", err)
		}
		if many != one {
			t.Errorf("%d workers changed the output", workers)
		}
	}
}

func TestRenderColorRows(t *testing.T) {
	t.Parallel()
	grid := gridOf(t, imageutil.CreateColorBarsImage(80, 20).RGBA)
	out, err := NewRenderer(WithSize(16, 4), WithColor(ColorResolver{Enabled: true})).RenderToString(grid)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("%d lines, want 4", len(lines))
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, "\x1b[38;2;255;255;255m") {
			t.Errorf("line %d starts with %q", i, line[:min(len(line), 24)])
		}
		if !strings.HasSuffix(line, "\x1b[0m") {
			t.Errorf("line %d does not end with a reset", i)
		}
		// Eight bars, two cells each: one escape per bar.
		if n := strings.Count(line, "\x1b[38;2;"); n != 8 {
			t.Errorf("line %d has %d escapes, want 8", i, n)
		}
	}
}

func TestRenderGrayscaleColor(t *testing.T) {
	t.Parallel()
	grid := gridOf(t, imageutil.CreateRadialImage(40, 40))
	out, err := NewRenderer(WithSize(10, 5), WithColor(ColorResolver{Enabled: true, Depth: Depth256})).
		RenderToString(grid)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	if !strings.Contains(out, "\x1b[38;5;") {
		t.Error("256-color output has no 38;5 escape")
	}
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errDiskFull
}

func TestRenderWriteFailure(t *testing.T) {
	t.Parallel()
	grid := gridOf(t, imageutil.CreateRadialImage(50, 50))
	for _, size := range [][2]int{{10, 5}, {400, 300}} {
		err := NewRenderer(WithSize(size[0], size[1])).Render(grid, failingWriter{})
		if !errors.Is(err, ErrIO) {
			t.Errorf("%dx%d: error = %v, want ErrIO", size[0], size[1], err)
		}
		if !errors.Is(err, errDiskFull) {
			t.Errorf("%dx%d: error = %v does not wrap the cause", size[0], size[1], err)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()
	if _, err := DecodeBytes([]byte("definitely not an image")); !errors.Is(err, ErrDecode) {
		t.Errorf("garbage decode error = %v, want ErrDecode", err)
	}

	grid := gridOf(t, imageutil.CreateRadialImage(8, 8))
	for _, size := range [][2]int{{0, 10}, {10, -1}, {1001, 1}} {
		_, err := NewRenderer(WithSize(size[0], size[1])).RenderToString(grid)
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("%v: error = %v, want ErrInvalidDimensions", size, err)
		}
	}
}

func TestRenderTinyImages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		srcW, srcH, w, h int
	}{
		{1, 1, 1, 1},
		{1, 1, 5, 5},
		{50, 3, 1, 1},
		{2, 2, 1, 9},
	}
	for _, tt := range tests {
		grid := gridOf(t, imageutil.CreateRadialImage(tt.srcW, tt.srcH))
		out, err := NewRenderer(WithSize(tt.w, tt.h), WithThinEdges(true)).RenderToString(grid)
		if err != nil {
			t.Errorf("%dx%d -> %dx%d: %v", tt.srcW, tt.srcH, tt.w, tt.h, err)
			continue
		}
		if n := strings.Count(out, "\n"); n != tt.h {
			t.Errorf("%dx%d -> %dx%d: %d lines", tt.srcW, tt.srcH, tt.w, tt.h, n)
		}
	}
}

func TestRenderMatchesRenderToString(t *testing.T) {
	t.Parallel()
	grid := gridOf(t, imageutil.CreateCheckerboardImage(64, 64, 8))
	r := NewRenderer(WithSize(32, 16), WithPalette(Blocks), WithInterpolation(imageutil.InterpolationLinear))

	var buf bytes.Buffer
	if err := r.Render(grid, &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	s, err := r.RenderToString(grid)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	if buf.String() != s {
		t.Error("Render and RenderToString disagree")
	}

	frame, err := r.RenderFrame(grid)
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if frame.Text() != s {
		t.Error("Frame.Text disagrees with the uncolored render")
	}
}
