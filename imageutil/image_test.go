package imageutil

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewRGBAImage(t *testing.T) {
	img := NewRGBAImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
}

func TestRGBAImageGetSetRGB(t *testing.T) {
	img := NewRGBAImage(10, 10)
	c := RGB{R: 100, G: 150, B: 200}
	img.SetRGB(5, 5, c)

	if got := img.GetRGB(5, 5); got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
	if a := img.RGBAAt(5, 5).A; a != 255 {
		t.Errorf("SetRGB should store opaque pixels, alpha=%d", a)
	}
}

func TestGrayImageGetSetGray(t *testing.T) {
	img := NewGrayImage(10, 10)
	img.SetGrayValue(5, 5, 128)

	if got := img.GetGray(5, 5); got != 128 {
		t.Errorf("Expected 128, got %d", got)
	}
	if got := img.GrayAt(5, 5).Y; got != 128 {
		t.Errorf("GrayAt disagrees with GetGray: %d", got)
	}
}

func TestLuma(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		lo   uint8
		hi   uint8
	}{
		{"white", RGB{255, 255, 255}, 255, 255},
		{"black", RGB{0, 0, 0}, 0, 0},
		{"red", RGB{255, 0, 0}, 75, 77}, // 0.299 * 255 = 76.245
		{"gray", Gray(117), 117, 117},
	}
	for _, tt := range tests {
		if got := tt.c.Luma(); got < tt.lo || got > tt.hi {
			t.Errorf("%s: luma %d not in [%d, %d]", tt.name, got, tt.lo, tt.hi)
		}
	}
}

func TestFlattenCompositesOntoWhite(t *testing.T) {
	src := image.NewNRGBA(image.Rect(3, 7, 6, 8))
	src.SetNRGBA(3, 7, color.NRGBA{R: 0, G: 0, B: 0, A: 0})
	src.SetNRGBA(4, 7, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	src.SetNRGBA(5, 7, color.NRGBA{R: 0, G: 0, B: 0, A: 128})

	flat := Flatten(src)
	if flat.Width() != 3 || flat.Height() != 1 {
		t.Fatalf("Expected 3x1 at origin, got %v", flat.Bounds())
	}
	if got := flat.GetRGB(0, 0); got != Gray(255) {
		t.Errorf("Transparent pixel should become white, got %v", got)
	}
	if got := flat.GetRGB(1, 0); got != Gray(0) {
		t.Errorf("Opaque black should stay black, got %v", got)
	}
	if got := flat.GetRGB(2, 0).R; got < 126 || got > 128 {
		t.Errorf("Half transparent black should be mid gray, got %d", got)
	}
}

func TestIsGrayscale(t *testing.T) {
	if !IsGrayscale(image.NewGray(image.Rect(0, 0, 1, 1))) {
		t.Error("image.Gray should be grayscale")
	}
	if IsGrayscale(image.NewRGBA(image.Rect(0, 0, 1, 1))) {
		t.Error("image.RGBA should not be grayscale")
	}
}

func TestToGrayscale(t *testing.T) {
	img := CreateColorBarsImage(8, 1)
	gray := ToGrayscale(img)
	for x := 0; x < 8; x++ {
		if want := img.GetRGB(x, 0).Luma(); gray.GetGray(x, 0) != want {
			t.Errorf("x=%d: expected %d, got %d", x, want, gray.GetGray(x, 0))
		}
	}
}

func TestResize(t *testing.T) {
	img := CreateGradientImage(100, 100)

	resized := Resize(img, 50, 50, InterpolationArea)
	if resized.Width() != 50 || resized.Height() != 50 {
		t.Errorf("Expected 50x50, got %dx%d", resized.Width(), resized.Height())
	}

	resized = Resize(img, 200, 200, InterpolationLinear)
	if resized.Width() != 200 || resized.Height() != 200 {
		t.Errorf("Expected 200x200, got %dx%d", resized.Width(), resized.Height())
	}
}

func TestResizeGrayNearestIdentity(t *testing.T) {
	img := CreateRadialImage(9, 5)
	same := ResizeGray(img, 9, 5, InterpolationNearest)
	if diff := cmp.Diff(img.Pix, same.Pix); diff != "" {
		t.Errorf("Nearest resize to the same size changed pixels (-want +got):\n%s", diff)
	}
}

func TestParseInterpolation(t *testing.T) {
	for _, name := range []string{"area", "linear", "nearest", "catmullrom", "LINEAR"} {
		interp, err := ParseInterpolation(name)
		if err != nil {
			t.Errorf("ParseInterpolation(%q): %v", name, err)
			continue
		}
		if interp.String() == "" {
			t.Errorf("%q parsed to unnamed interpolation", name)
		}
	}
	if _, err := ParseInterpolation("bicubic"); err == nil {
		t.Error("Expected error for unknown interpolation")
	}
}

func TestSobelGradientsStep(t *testing.T) {
	// Vertical step: left half 0, right half 100.
	field := [][]float64{
		{0, 0, 100, 100},
		{0, 0, 100, 100},
		{0, 0, 100, 100},
	}
	gx, gy := SobelGradients(field)

	for y := range field {
		for x := range field[y] {
			if gy[y][x] != 0 {
				t.Errorf("gy(%d,%d) = %f, want 0", x, y, gy[y][x])
			}
		}
		if gx[y][1] != 400 || gx[y][2] != 400 {
			t.Errorf("row %d: expected 400 across the step, got %f %f", y, gx[y][1], gx[y][2])
		}
		if gx[y][0] != 0 || gx[y][3] != 0 {
			t.Errorf("row %d: expected no response away from the step, got %f %f", y, gx[y][0], gx[y][3])
		}
	}
}

func TestConvolveFloatIdentity(t *testing.T) {
	field := CreateRadialImage(6, 4).Field()
	identity := NewKernel([][]float64{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})
	if diff := cmp.Diff(field, ConvolveFloat(field, identity)); diff != "" {
		t.Errorf("Identity kernel changed the field (-want +got):\n%s", diff)
	}
	if ConvolveFloat(nil, identity) != nil {
		t.Error("Empty field should convolve to nil")
	}
}

func TestSuppressNonMaxima(t *testing.T) {
	magnitude := [][]float64{
		{1, 5, 2},
		{1, 5, 2},
	}
	direction := [][]float64{
		{0, 0, 0},
		{0, 0, 0},
	}
	got := SuppressNonMaxima(magnitude, direction)
	want := [][]float64{
		{0, 5, 0},
		{0, 5, 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SuppressNonMaxima mismatch (-want +got):\n%s", diff)
	}

	// A ridge on the border survives.
	border := SuppressNonMaxima([][]float64{{7, 3}}, [][]float64{{0, 0}})
	if border[0][0] != 7 {
		t.Errorf("Border ridge was suppressed: %v", border)
	}
}

func TestDecodeFormats(t *testing.T) {
	src := CreateCheckerboardImage(16, 8, 4)

	var pngBuf, jpgBuf bytes.Buffer
	if err := png.Encode(&pngBuf, src.Gray); err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(&jpgBuf, src.Gray, &jpeg.Options{Quality: 100}); err != nil {
		t.Fatal(err)
	}

	for name, data := range map[string][]byte{"png": pngBuf.Bytes(), "jpeg": jpgBuf.Bytes()} {
		img, format, err := Decode(data)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if format != name {
			t.Errorf("Expected format %q, got %q", name, format)
		}
		if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
			t.Errorf("%s: unexpected bounds %v", name, img.Bounds())
		}
		if !IsGrayscale(img) {
			t.Errorf("%s: grayscale source decoded as color", name)
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, _, err := Decode([]byte("definitely not an image")); err == nil {
		t.Error("Expected error decoding garbage")
	}
	if _, _, err := Decode(nil); err == nil {
		t.Error("Expected error decoding empty input")
	}
}

func TestDecodeRejectsHugeHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, MaxImageDimension+1, 1))); err != nil {
		t.Fatal(err)
	}
	_, _, err := Decode(buf.Bytes())
	if !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("Expected ErrImageTooLarge, got %v", err)
	}
}

func TestSavePNGRoundTrip(t *testing.T) {
	img := CreateColorBarsImage(64, 64)
	path := filepath.Join(t.TempDir(), "bars.png")
	if err := SavePNG(img.RGBA, path); err != nil {
		t.Fatalf("Failed to save PNG: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	decoded, _, err := Decode(data)
	if err != nil {
		t.Fatalf("Failed to load PNG: %v", err)
	}

	if mse := CalculateMSE(img, Flatten(decoded)); mse > 0.01 {
		t.Errorf("PNG should be lossless, MSE=%f", mse)
	}
}
