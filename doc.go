// Package img2ascii renders raster images as character art.
//
// A decoded PixelGrid is resampled onto a grid of cells, each cell is
// analyzed for luminance, color and edge orientation, and a Renderer
// turns the cells into glyphs: directional glyphs on sharp boundaries,
// a density ramp everywhere else. Output is plain text or text with
// 24-bit or 256-color ANSI escapes.
package img2ascii
