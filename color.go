package img2ascii

import (
	"fmt"
	"strings"
)

// ColorMode is the user's color preference.
type ColorMode int

const (
	// ColorAuto decides from the environment and the destination.
	ColorAuto ColorMode = iota
	// ColorAlways emits escapes regardless of the destination.
	ColorAlways
	// ColorNever emits plain text.
	ColorNever
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode accepts auto, always and never.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// ColorEnv is a snapshot of the environment variables that influence
// color output. Capture it once per run.
type ColorEnv struct {
	NoColor       string
	CliColorForce string
	CliColor      string
	Term          string
	ColorTerm     string
}

// ColorEnvFrom reads the color variables through getenv, normally
// os.Getenv.
func ColorEnvFrom(getenv func(string) string) ColorEnv {
	return ColorEnv{
		NoColor:       getenv("NO_COLOR"),
		CliColorForce: getenv("CLICOLOR_FORCE"),
		CliColor:      getenv("CLICOLOR"),
		Term:          getenv("TERM"),
		ColorTerm:     getenv("COLORTERM"),
	}
}

// Destination describes where the text is going.
type Destination struct {
	// IsFile is set when writing to a named output file.
	IsFile bool
	// IsTerminal is set when standard output is a terminal.
	IsTerminal bool
}

// ResolveColor decides whether escapes are emitted. Explicit modes win.
// In auto mode NO_COLOR disables color, files never get color,
// CLICOLOR_FORCE enables it for non-terminals, and otherwise a terminal
// gets color unless TERM is dumb or CLICOLOR is 0.
func ResolveColor(mode ColorMode, env ColorEnv, dest Destination) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	switch {
	case env.NoColor != "":
		return false
	case dest.IsFile:
		return false
	case env.CliColorForce != "" && env.CliColorForce != "0":
		return true
	case env.Term == "dumb":
		return false
	case !dest.IsTerminal:
		return false
	case env.CliColor == "0":
		return false
	}
	return true
}

// ColorDepth selects the escape format.
type ColorDepth int

const (
	// DepthTrueColor uses 24-bit SGR 38;2 escapes.
	DepthTrueColor ColorDepth = iota
	// Depth256 uses xterm 256-color SGR 38;5 escapes.
	Depth256
)

func (d ColorDepth) String() string {
	if d == Depth256 {
		return "256"
	}
	return "truecolor"
}

// ParseColorDepth accepts truecolor (or 24bit) and 256. "auto" resolves
// through DetectColorDepth.
func ParseColorDepth(s string, env ColorEnv) (ColorDepth, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return DetectColorDepth(env), nil
	case "truecolor", "24bit":
		return DepthTrueColor, nil
	case "256":
		return Depth256, nil
	}
	return DepthTrueColor, fmt.Errorf("invalid color depth %q (want auto, truecolor or 256)", s)
}

// DetectColorDepth reports truecolor when COLORTERM or TERM advertise
// it, and 256 colors otherwise.
func DetectColorDepth(env ColorEnv) ColorDepth {
	switch strings.ToLower(env.ColorTerm) {
	case "truecolor", "24bit":
		return DepthTrueColor
	}
	term := strings.ToLower(env.Term)
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return DepthTrueColor
	}
	return Depth256
}

// ColorResolver produces the escape sequences for one render. The zero
// value emits nothing.
type ColorResolver struct {
	Enabled bool
	Depth   ColorDepth
}

// AppendEscape appends the foreground escape for c to dst. It appends
// nothing when color is disabled.
func (cr ColorResolver) AppendEscape(dst []byte, c RGB) []byte {
	if !cr.Enabled {
		return dst
	}
	if cr.Depth == Depth256 {
		return appendFg256(dst, Nearest256(c))
	}
	return appendFgRGB(dst, c)
}

// Escape returns the foreground escape for c, or nil when color is
// disabled.
func (cr ColorResolver) Escape(c RGB) []byte {
	return cr.AppendEscape(nil, c)
}

// Reset returns the sequence that ends a colored row, or nil when color
// is disabled.
func (cr ColorResolver) Reset() []byte {
	if !cr.Enabled {
		return nil
	}
	return csiReset
}
