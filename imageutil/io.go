package imageutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// MaxImageDimension bounds the width and height of a decodable image.
const MaxImageDimension = 16384

var (
	// ErrEmptyImage is returned for images with no pixels.
	ErrEmptyImage = errors.New("image has no pixels")

	// ErrImageTooLarge is returned for images wider or taller than
	// MaxImageDimension.
	ErrImageTooLarge = errors.New("image too large")
)

// Decode decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image held in data.
// The header is checked against MaxImageDimension before any pixel data
// is decoded.
func Decode(data []byte) (image.Image, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, format, ErrEmptyImage
	}
	if cfg.Width > MaxImageDimension || cfg.Height > MaxImageDimension {
		return nil, format, fmt.Errorf("%w: %dx%d (max %dx%d)", ErrImageTooLarge,
			cfg.Width, cfg.Height, MaxImageDimension, MaxImageDimension)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, fmt.Errorf("failed to decode %s image: %w", format, err)
	}
	return img, format, nil
}

// SavePNG saves an image as PNG to the specified path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}
