package vectortext

import "unicode/utf16"

// runeError is emitted for malformed input; layout treats it like any
// other codepoint.
const runeError = '�'

const (
	surrHighMin = 0xD800
	surrHighMax = 0xDBFF
	surrLowMin  = 0xDC00
	surrLowMax  = 0xDFFF
)

// decodeUTF8 consumes one codepoint starting at b[i] and returns it with
// the next cursor position. A NUL byte or the end of the slice terminates
// with rune 0 and an unchanged cursor. Malformed sequences yield U+FFFD
// and advance only the bytes consumed so far, so a valid byte following a
// truncated sequence is decoded on the next call.
func decodeUTF8(b []byte, i int) (rune, int) {
	if i >= len(b) || b[i] == 0 {
		return 0, i
	}

	c := b[i]
	switch {
	case c < 0x80:
		return rune(c), i + 1
	case c&0xE0 == 0xC0:
		return decodeUTF8Tail(b, i, 1, rune(c&0x1F))
	case c&0xF0 == 0xE0:
		return decodeUTF8Tail(b, i, 2, rune(c&0x0F))
	case c&0xF8 == 0xF0:
		return decodeUTF8Tail(b, i, 3, rune(c&0x07))
	default:
		// Stray continuation byte or invalid lead.
		return runeError, i + 1
	}
}

// utf8Min is the smallest codepoint each sequence length may encode;
// anything below is an overlong form.
var utf8Min = [4]rune{0, 0x80, 0x800, 0x10000}

// decodeUTF8Tail consumes n continuation bytes after the lead at b[i].
func decodeUTF8Tail(b []byte, i, n int, r rune) (rune, int) {
	for k := 1; k <= n; k++ {
		if i+k >= len(b) {
			return runeError, len(b)
		}
		if b[i+k]&0xC0 != 0x80 {
			// Do not consume the offending byte.
			return runeError, i + k
		}
		r = r<<6 | rune(b[i+k]&0x3F)
	}
	if r < utf8Min[n] || r > 0x10FFFF || (r >= surrHighMin && r <= surrLowMax) {
		return runeError, i + n + 1
	}
	return r, i + n + 1
}

// decodeUTF16 consumes one codepoint starting at u[i]. A zero unit or the
// end of the slice terminates with rune 0. Lone surrogates yield U+FFFD.
func decodeUTF16(u []uint16, i int) (rune, int) {
	if i >= len(u) || u[i] == 0 {
		return 0, i
	}

	c := u[i]
	switch {
	case c >= surrHighMin && c <= surrHighMax:
		if i+1 < len(u) && u[i+1] >= surrLowMin && u[i+1] <= surrLowMax {
			return utf16.DecodeRune(rune(c), rune(u[i+1])), i + 2
		}
		return runeError, i + 1
	case c >= surrLowMin && c <= surrLowMax:
		return runeError, i + 1
	default:
		return rune(c), i + 1
	}
}

// decodeString decodes s up to its end or the first NUL byte.
func decodeString(s string) []rune {
	b := []byte(s)
	out := make([]rune, 0, len(b))
	for i := 0; i < len(b); {
		r, next := decodeUTF8(b, i)
		if r == 0 && next == i {
			break
		}
		out = append(out, r)
		i = next
	}
	return out
}

// decodeUTF16String decodes units up to the end or the first zero unit.
func decodeUTF16String(units []uint16) []rune {
	out := make([]rune, 0, len(units))
	for i := 0; i < len(units); {
		r, next := decodeUTF16(units, i)
		if r == 0 && next == i {
			break
		}
		out = append(out, r)
		i = next
	}
	return out
}
