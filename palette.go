package img2ascii

import (
	"fmt"
	"strings"
)

// Palette is an ordered glyph ramp together with the tone curve that
// suits it. Ramp[0] is the densest glyph and renders the darkest tone;
// the last glyph is a space and renders the lightest.
type Palette struct {
	Name string
	Ramp []rune

	// The curve is v·linear/255 + (v²/255)·quadratic/255. The two
	// weights sum to 255 so the endpoints are fixed.
	linear    int
	quadratic int
}

var (
	// Classic is the standard 65-level ramp.
	Classic = Palette{
		Name:      "classic",
		Ramp:      []rune("$@B%8&WM#*oahkbdpqwmZO0QLCJUYXzcvunxrjft()1{}[]?+~<>i!lI;:,\"^`'. "),
		linear:    180,
		quadratic: 75,
	}

	// Smooth adds slashes and bars to the middle of the ramp and uses a
	// gentler curve.
	Smooth = Palette{
		Name:      "smooth",
		Ramp:      []rune("$@B%8&WM#*oahkbdpqwmZO0QLCJUYXzcvunxrjft/\\|()1{}[]?+~<>i!lI;:,\"^`'. "),
		linear:    220,
		quadratic: 35,
	}

	// Blocks is a short ramp with strong contrast.
	Blocks = Palette{
		Name:      "blocks",
		Ramp:      []rune("@%#*+=-:. "),
		linear:    165,
		quadratic: 90,
	}
)

var palettes = []Palette{Classic, Smooth, Blocks}

// PaletteNames lists the accepted palette names.
func PaletteNames() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}

// ParsePalette looks a palette up by name, ignoring case.
func ParsePalette(name string) (Palette, error) {
	for _, p := range palettes {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Palette{}, fmt.Errorf("unknown palette %q (want %s)",
		name, strings.Join(PaletteNames(), ", "))
}

func (p Palette) String() string {
	return p.Name
}

// Levels returns the number of glyphs in the ramp.
func (p Palette) Levels() int {
	return len(p.Ramp)
}

// bend applies the palette curve to a stretched tone in 0..255.
func (p Palette) bend(v int) int {
	if p.linear == 0 && p.quadratic == 0 {
		return v
	}
	out := (v*p.linear + (v*v/255)*p.quadratic) / 255
	return min(max(out, 0), 255)
}
