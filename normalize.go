package vectortext

import "golang.org/x/text/unicode/norm"

// normalizeNFC recomposes combining sequences. With no shaping beyond
// advances and pair kerning, precomposed forms are the only ones that
// render as single glyphs.
func normalizeNFC(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}
