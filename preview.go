package img2ascii

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/wbrown/img2ascii/imageutil"
)

// Preview font sizes in points at 72 DPI. Large grids use smaller text
// so the image stays within imageutil.MaxImageDimension.
const (
	PreviewFontSize    = 12.0
	minPreviewFontSize = 4.0
)

var previewFont = sync.OnceValues(func() (*truetype.Font, error) {
	return freetype.ParseFont(gomono.TTF)
})

// DrawPreview rasterizes frame with Go Mono. Glyphs are drawn on white,
// in their cell color when colored is set and in black otherwise.
func DrawPreview(frame *Frame, colored bool) (*image.RGBA, error) {
	ttf, err := previewFont()
	if err != nil {
		return nil, classError(ErrIO, "loading preview font: %w", err)
	}

	cols, rows := frame.Cells.Width, frame.Cells.Height
	size := PreviewFontSize
	var face font.Face
	var cellW, cellH int
	for {
		face = truetype.NewFace(ttf, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		advance, _ := face.GlyphAdvance('M')
		cellW = max(advance.Ceil(), 1)
		cellH = max(face.Metrics().Height.Ceil(), 1)
		fits := cols*cellW <= imageutil.MaxImageDimension &&
			rows*cellH <= imageutil.MaxImageDimension
		if fits || size <= minPreviewFontSize {
			break
		}
		face.Close()
		size = max(size/2, minPreviewFontSize)
	}
	ascent := face.Metrics().Ascent.Ceil()
	face.Close()

	img := image.NewRGBA(image.Rect(0, 0, cols*cellW, rows*cellH))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(size)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetHinting(font.HintingFull)

	ink := image.NewUniform(color.Black)
	for y, glyphs := range frame.Glyphs {
		for x, g := range glyphs {
			if g == ' ' {
				continue
			}
			if colored {
				ink = image.NewUniform(frame.Cells.At(x, y).Color.ToColor())
			}
			ctx.SetSrc(ink)
			pt := freetype.Pt(x*cellW, y*cellH+ascent)
			if _, err := ctx.DrawString(string(g), pt); err != nil {
				return nil, classError(ErrIO, "drawing preview: %w", err)
			}
		}
	}
	return img, nil
}

// SavePreview writes frame as a PNG to path, colored the same way as
// the text output.
func (r *Renderer) SavePreview(frame *Frame, path string) error {
	img, err := DrawPreview(frame, r.Color.Enabled)
	if err != nil {
		return err
	}
	if err := imageutil.SavePNG(img, path); err != nil {
		return classError(ErrIO, "%w", err)
	}
	return nil
}

// RenderPreview renders grid and writes the result as a PNG to path.
func (r *Renderer) RenderPreview(grid *PixelGrid, path string) error {
	frame, err := r.RenderFrame(grid)
	if err != nil {
		return err
	}
	return r.SavePreview(frame, path)
}
