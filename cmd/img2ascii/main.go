// Command img2ascii renders an image as character art.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

// version is overridden at link time with -ldflags "-X main.version=...".
var version = "1.0.0"

const (
	defaultWidth  = 80
	defaultHeight = 40
)

// errUsage marks command line errors; they print the usage text.
var errUsage = errors.New("usage error")

type options struct {
	color         img2ascii.ColorMode
	palette       string
	resample      string
	depth         string
	edgeThreshold float64
	thinEdges     bool
	noDither      bool
	noContrast    bool
	preview       string
	verbose       bool
	help          bool
	version       bool

	input  string
	width  int
	height int
	output string
}

func newFlagSet(opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet("img2ascii", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Func("color", "color mode: auto, always or never", func(s string) error {
		m, err := img2ascii.ParseColorMode(s)
		if err != nil {
			return err
		}
		opts.color = m
		return nil
	})
	fs.BoolFunc("ansi", "force color output (same as --color always)", func(string) error {
		opts.color = img2ascii.ColorAlways
		return nil
	})
	fs.BoolFunc("no-ansi", "disable color output (same as --color never)", func(string) error {
		opts.color = img2ascii.ColorNever
		return nil
	})
	fs.StringVar(&opts.palette, "palette", img2ascii.Classic.Name,
		"glyph ramp: "+strings.Join(img2ascii.PaletteNames(), ", "))
	fs.StringVar(&opts.resample, "resample", imageutil.InterpolationArea.String(),
		"resampling: area, linear, nearest or catmullrom")
	fs.StringVar(&opts.depth, "depth", "auto",
		"color escapes: auto, truecolor or 256")
	fs.Float64Var(&opts.edgeThreshold, "edge-threshold", img2ascii.DefaultEdgeThreshold,
		"gradient magnitude above which a cell gets a directional glyph")
	fs.BoolVar(&opts.thinEdges, "thin-edges", false, "keep only the ridge of each edge")
	fs.BoolVar(&opts.noDither, "no-dither", false, "disable error diffusion")
	fs.BoolVar(&opts.noContrast, "no-contrast", false, "disable local contrast enhancement")
	fs.StringVar(&opts.preview, "preview", "", "also write a PNG rendering of the result to `file`")
	fs.BoolVar(&opts.verbose, "v", false, "print diagnostics to stderr")
	fs.BoolVar(&opts.help, "h", false, "show this help")
	fs.BoolVar(&opts.help, "help", false, "show this help")
	fs.BoolVar(&opts.version, "V", false, "print version and exit")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	return fs
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: img2ascii [options] <input-image> [width] [height] [output-file]\n\n")
	fmt.Fprintf(w, "  width, height  output size in characters, 1..%d (default %dx%d)\n",
		img2ascii.MaxOutputDimension, defaultWidth, defaultHeight)
	fmt.Fprintf(w, "  output-file    write the text to a file instead of stdout\n\n")
	fmt.Fprintf(w, "options:\n")
	fs := newFlagSet(&options{})
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// parseArgs parses args. Options may appear before, between and after
// the positional arguments; color options take effect in order, so the
// last one wins.
func parseArgs(args []string) (*options, error) {
	opts := &options{width: defaultWidth, height: defaultHeight}
	fs := newFlagSet(opts)

	var positionals []string
	rest := args
	for {
		// A negative number after the input is a bad dimension, not a flag.
		if len(positionals) > 0 && len(rest) > 0 && isNumber(rest[0]) {
			positionals = append(positionals, rest[0])
			rest = rest[1:]
			continue
		}
		if err := fs.Parse(rest); err != nil {
			return nil, fmt.Errorf("%w: %w", errUsage, err)
		}
		remaining := fs.Args()
		if consumed := len(rest) - len(remaining); consumed > 0 && rest[consumed-1] == "--" {
			positionals = append(positionals, remaining...)
			break
		}
		if len(remaining) == 0 {
			break
		}
		positionals = append(positionals, remaining[0])
		rest = remaining[1:]
	}

	if opts.help || opts.version {
		return opts, nil
	}

	switch {
	case len(positionals) == 0:
		return nil, fmt.Errorf("%w: missing input image", errUsage)
	case len(positionals) > 4:
		return nil, fmt.Errorf("%w: too many arguments", errUsage)
	}

	opts.input = positionals[0]
	var err error
	if len(positionals) > 1 {
		if opts.width, err = parseDimension("width", positionals[1]); err != nil {
			return nil, err
		}
	}
	if len(positionals) > 2 {
		if opts.height, err = parseDimension("height", positionals[2]); err != nil {
			return nil, err
		}
	}
	if len(positionals) > 3 {
		opts.output = positionals[3]
	}
	return opts, nil
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func parseDimension(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > img2ascii.MaxOutputDimension {
		return 0, fmt.Errorf("%w: invalid %s %q: must be an integer between 1 and %d",
			errUsage, name, s, img2ascii.MaxOutputDimension)
	}
	return n, nil
}

// env is everything run reads from the process environment.
type env struct {
	stdout     io.Writer
	stderr     io.Writer
	color      img2ascii.ColorEnv
	isTerminal bool
}

func main() {
	os.Exit(run(os.Args[1:], env{
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		color:      img2ascii.ColorEnvFrom(os.Getenv),
		isTerminal: term.IsTerminal(int(os.Stdout.Fd())),
	}))
}

// run executes the command and returns the process exit code.
func run(args []string, e env) int {
	logger := log.New(e.stderr, "img2ascii: ", 0)

	if len(args) == 0 {
		printUsage(e.stderr)
		return 1
	}

	opts, err := parseArgs(args)
	if err != nil {
		logger.Print(strings.TrimPrefix(err.Error(), errUsage.Error()+": "))
		printUsage(e.stderr)
		return 1
	}
	if opts.help {
		printUsage(e.stdout)
		return 0
	}
	if opts.version {
		fmt.Fprintf(e.stdout, "img2ascii %s\n", version)
		return 0
	}

	renderer, err := newRenderer(opts, e)
	if err != nil {
		logger.Print(err)
		printUsage(e.stderr)
		return 1
	}

	if err := convert(opts, renderer, e, logger); err != nil {
		logger.Print(err)
		return 1
	}
	return 0
}

func newRenderer(opts *options, e env) (*img2ascii.Renderer, error) {
	palette, err := img2ascii.ParsePalette(opts.palette)
	if err != nil {
		return nil, err
	}
	interp, err := imageutil.ParseInterpolation(opts.resample)
	if err != nil {
		return nil, err
	}
	depth, err := img2ascii.ParseColorDepth(opts.depth, e.color)
	if err != nil {
		return nil, err
	}

	dest := img2ascii.Destination{
		IsFile:     opts.output != "",
		IsTerminal: opts.output == "" && e.isTerminal,
	}
	color := img2ascii.ColorResolver{
		Enabled: img2ascii.ResolveColor(opts.color, e.color, dest),
		Depth:   depth,
	}

	return img2ascii.NewRenderer(
		img2ascii.WithSize(opts.width, opts.height),
		img2ascii.WithPalette(palette),
		img2ascii.WithInterpolation(interp),
		img2ascii.WithEdgeThreshold(opts.edgeThreshold),
		img2ascii.WithThinEdges(opts.thinEdges),
		img2ascii.WithDither(!opts.noDither),
		img2ascii.WithLocalContrast(!opts.noContrast),
		img2ascii.WithColor(color),
	), nil
}

func convert(opts *options, renderer *img2ascii.Renderer, e env, logger *log.Logger) error {
	start := time.Now()
	grid, err := img2ascii.LoadPixelGrid(opts.input)
	if err != nil {
		return err
	}
	decodeTime := time.Since(start)

	frame, err := renderer.RenderFrame(grid)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := writeFile(opts.output, renderer, frame); err != nil {
			return err
		}
		fmt.Fprintf(e.stdout, "ascii art saved to: %s\n", opts.output)
	} else if err := renderer.WriteFrame(frame, e.stdout); err != nil {
		return err
	}

	if opts.preview != "" {
		if err := renderer.SavePreview(frame, opts.preview); err != nil {
			return err
		}
		logger.Printf("preview saved to: %s", opts.preview)
	}

	if opts.verbose {
		stats := renderer.Stats()
		logger.Printf("source: %dx%d color=%t", grid.Width, grid.Height, grid.HasColor())
		logger.Printf("output: %dx%d palette=%s resample=%s color=%t depth=%s",
			renderer.Width, renderer.Height, renderer.Palette, renderer.Interpolation,
			renderer.Color.Enabled, renderer.Color.Depth)
		logger.Printf("edge cells: %d", stats.EdgeCells)
		logger.Printf("decode time: %v", decodeTime)
		logger.Printf("resample time: %v", stats.ResampleTime)
		logger.Printf("analysis time: %v", stats.AnalyzeTime)
		logger.Printf("glyph mapping time: %v", stats.MapTime)
		logger.Printf("write time: %v", stats.WriteTime)
	}
	return nil
}

func writeFile(path string, renderer *img2ascii.Renderer, frame *img2ascii.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: cannot create %s: %w", img2ascii.ErrIO, path, err)
	}
	if err := renderer.WriteFrame(frame, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", img2ascii.ErrIO, path, err)
	}
	return nil
}
