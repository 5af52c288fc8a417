package img2ascii

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three failure classes of a render. Every error
// returned by this package matches exactly one of them with errors.Is.
var (
	// ErrDecode reports a malformed, unsupported or oversized image.
	ErrDecode = errors.New("decode error")

	// ErrInvalidDimensions reports a non-positive or oversized output
	// grid.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrIO reports a failure reading the input or writing the output.
	ErrIO = errors.New("i/o error")
)

// classError joins a sentinel with a contextual error so that both
// errors.Is(err, kind) and errors.Is(err, cause) hold.
func classError(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %w", kind, fmt.Errorf(format, args...))
}
