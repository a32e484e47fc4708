package vectortext

import "errors"

// Sentinel errors. Constructors return these (possibly wrapped); per-frame
// calls never fail.
var (
	// ErrEmptyFontData is returned when font data is nil or empty.
	ErrEmptyFontData = errors.New("vectortext: empty font data")

	// ErrInvalidFontData is returned when the font parser rejects the data.
	ErrInvalidFontData = errors.New("vectortext: invalid font data")

	// ErrNilFont is returned when creating a context without a font.
	ErrNilFont = errors.New("vectortext: font is nil")

	// ErrFontDestroyed is returned when using a font after Destroy.
	ErrFontDestroyed = errors.New("vectortext: font has been destroyed")

	// ErrNilDriver is returned when a graphics driver is required but nil.
	ErrNilDriver = errors.New("vectortext: render driver is nil")
)
