package img2ascii

import (
	"strconv"
	"sync"
	"sync/atomic"
)

// ESC is the escape character that starts every control sequence.
const ESC = "\x1b"

// Pre-built SGR fragments.
var (
	csiFgRGB = []byte(ESC + "[38;2;") // followed by R;G;Bm
	csiFg256 = []byte(ESC + "[38;5;") // followed by Nm
	csiReset = []byte(ESC + "[0m")
)

func appendFgRGB(dst []byte, c RGB) []byte {
	dst = append(dst, csiFgRGB...)
	dst = strconv.AppendUint(dst, uint64(c.R), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(c.G), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(c.B), 10)
	return append(dst, 'm')
}

func appendFg256(dst []byte, index uint8) []byte {
	dst = append(dst, csiFg256...)
	dst = strconv.AppendUint(dst, uint64(index), 10)
	return append(dst, 'm')
}

// xterm256 returns the color of xterm palette index i for the 6×6×6
// cube (16..231) and the gray ramp (232..255). The first 16 entries are
// terminal-defined and are never chosen.
func xterm256(i int) RGB {
	if i >= 232 {
		v := uint8(8 + 10*(i-232))
		return RGB{R: v, G: v, B: v}
	}
	levels := [6]uint8{0, 95, 135, 175, 215, 255}
	n := i - 16
	return RGB{R: levels[n/36], G: levels[n/6%6], B: levels[n%6]}
}

// nearestCandidates is the number of RGB-nearest palette entries
// compared perceptually.
const nearestCandidates = 6

// maxNearestCache bounds the memoised Nearest256 results. The cache is
// dropped wholesale when it fills.
const maxNearestCache = 1 << 16

var (
	xtermTreeOnce sync.Once
	xtermTree     *ColorNode
	nearestCache  sync.Map // RGB -> uint8
	nearestCached atomic.Int64
)

func xtermPalette() *ColorNode {
	xtermTreeOnce.Do(func() {
		entries := make([]paletteEntry, 0, 240)
		for i := 16; i < 256; i++ {
			entries = append(entries, paletteEntry{Color: xterm256(i), Index: uint8(i)})
		}
		xtermTree = buildKDTree(entries)
	})
	return xtermTree
}

// Nearest256 returns the xterm palette index closest to c. Candidates
// are found in RGB space and ranked by CIE Lab distance.
func Nearest256(c RGB) uint8 {
	if v, ok := nearestCache.Load(c); ok {
		return v.(uint8)
	}

	candidates := xtermPalette().kNearestNeighbors(c, nearestCandidates)
	best := candidates[0]
	bestDist := labDistance(c, best.Color)
	for _, e := range candidates[1:] {
		if d := labDistance(c, e.Color); d < bestDist {
			best, bestDist = e, d
		}
	}

	rememberNearest(c, best.Index)
	return best.Index
}

func rememberNearest(c RGB, index uint8) {
	if _, loaded := nearestCache.LoadOrStore(c, index); loaded {
		return
	}
	if nearestCached.Add(1) > maxNearestCache {
		nearestCache.Clear()
		nearestCached.Store(0)
	}
}
