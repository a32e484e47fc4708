package vectortext

// Align positions text horizontally relative to its anchor or box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// AlignY positions a text block vertically inside a box.
type AlignY int

const (
	AlignTop AlignY = iota
	AlignMiddle
	AlignBottom
)

// Fit selects how AddIn reconciles text with its box.
type Fit int

const (
	// FitNone lays the text out at its natural size, ignoring overflow.
	FitNone Fit = iota
	// FitWrap breaks lines so each fits the box width.
	FitWrap
	// FitSqueeze scales the block down, never up, to fit the box.
	FitSqueeze
	// FitExact scales the block up or down to exactly fill one axis.
	FitExact
	// FitClip drops glyphs whose leading edge passes the box width.
	FitClip
	// FitOverflow is FitNone under a name that states the intent.
	FitOverflow
)

// Box is a layout rectangle in world units, prior to the user transform.
type Box struct {
	W, H float32
}

// Pivot names the point on the box that coincides with the user
// transform's origin.
type Pivot struct {
	X Align
	Y AlignY
}

// BoxOptions controls AddIn placement.
type BoxOptions struct {
	Pivot  Pivot
	AlignX Align
	AlignY AlignY
	Fit    Fit
	Scroll Vec2
}

// placedGlyph is one shaped glyph: a cache index and its pen position in
// normalized units.
type placedGlyph struct {
	glyph int32
	x     float32
}

// layoutLine is one shaped line with its width in normalized units.
type layoutLine struct {
	glyphs []placedGlyph
	width  float32
}

// lineHeight returns the normalized baseline-to-baseline distance.
func (f *Font) lineHeight() float32 {
	return f.ascent - f.descent + f.lineGap
}

// shapeRun places one run of codepoints left to right, accumulating
// advances and pair kerning. Codepoints absent from the font contribute
// nothing. Returns the placed glyphs and the run width, normalized.
func (f *Font) shapeRun(runs []rune) ([]placedGlyph, float32) {
	out := make([]placedGlyph, 0, len(runs))
	var x float32
	prev := int32(-1)
	for _, r := range runs {
		g := f.glyphFor(r)
		if g < 0 {
			continue
		}
		if prev >= 0 {
			x += f.kern(prev, g)
		}
		out = append(out, placedGlyph{glyph: g, x: x})
		x += f.glyphs[g].Advance
		prev = g
	}
	return out, x
}

// MeasureWidth returns the width of text on a single line at the given
// size, in world units. Newlines are treated as ordinary codepoints.
func (f *Font) MeasureWidth(text string, size float32) float32 {
	if !f.Valid() {
		return 0
	}
	_, w := f.shapeRun(decodeString(f.maybeNormalize(text)))
	return w * size
}

// Measure returns the size of the text block at the given size, in world
// units. When maxWidth is positive, lines wrap to it as FitWrap would;
// otherwise only explicit newlines break.
func (f *Font) Measure(text string, size float32, maxWidth float32) Vec2 {
	if !f.Valid() {
		return Vec2{}
	}
	limit := float32(0)
	wrap := false
	if maxWidth > 0 && size > 0 {
		limit = maxWidth / size
		wrap = true
	}
	lines := f.breakLines(decodeString(f.maybeNormalize(text)), wrap, limit)
	var maxW float32
	for _, ln := range lines {
		maxW = max32(maxW, ln.width)
	}
	return Vec2{
		X: maxW * size,
		Y: float32(len(lines)) * f.lineHeight() * size,
	}
}

// breakLines splits the codepoint stream into shaped lines. Explicit
// newlines always break. With wrap set, a line that would exceed limit
// breaks at the last space when one exists, mid-word otherwise.
func (f *Font) breakLines(runes []rune, wrap bool, limit float32) []layoutLine {
	var lines []layoutLine
	flush := func(runs []rune) {
		glyphs, w := f.shapeRun(runs)
		lines = append(lines, layoutLine{glyphs: glyphs, width: w})
	}

	start := 0
	lastSpace := -1
	var x float32
	prev := int32(-1)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\n' {
			flush(runes[start:i])
			start = i + 1
			lastSpace = -1
			x = 0
			prev = -1
			continue
		}
		if !wrap {
			continue
		}
		if r == ' ' {
			lastSpace = i
		}
		g := f.glyphFor(r)
		if g < 0 {
			continue
		}
		if prev >= 0 {
			x += f.kern(prev, g)
		}
		x += f.glyphs[g].Advance
		prev = g
		if x <= limit || i == start {
			continue
		}
		// Over the limit. Break before this glyph, or back at the last
		// space when the word started inside the line.
		brk := i
		resume := i
		if lastSpace > start {
			brk = lastSpace
			resume = lastSpace + 1
		}
		flush(runes[start:brk])
		start = resume
		i = resume - 1
		lastSpace = -1
		x = 0
		prev = -1
	}
	flush(runes[start:])
	return lines
}

// alignOffset returns the horizontal shift for a run of the given width.
func alignOffset(a Align, width float32) float32 {
	switch a {
	case AlignCenter:
		return -width / 2
	case AlignRight:
		return -width
	default:
		return 0
	}
}

// pivotOffset returns the translation moving the layout origin so the
// user transform's origin lands on the named point of the box.
func pivotOffset(p Pivot, box Box) Vec2 {
	var off Vec2
	switch p.X {
	case AlignCenter:
		off.X = -box.W / 2
	case AlignRight:
		off.X = -box.W
	}
	switch p.Y {
	case AlignMiddle:
		off.Y = -box.H / 2
	case AlignBottom:
		off.Y = -box.H
	}
	return off
}

// fitScale returns the uniform scale a fit mode applies to the block.
// Widths and heights are in normalized units; size converts them to the
// box's world units.
func fitScale(fit Fit, box Box, maxLineW, blockH, size float32) float32 {
	if fit != FitSqueeze && fit != FitExact {
		return 1
	}
	sx := float32(1)
	sy := float32(1)
	if maxLineW > 0 {
		sx = box.W / (maxLineW * size)
	}
	if blockH > 0 {
		sy = box.H / (blockH * size)
	}
	s := min32(sx, sy)
	if fit == FitSqueeze {
		s = min32(1, s)
	}
	return s
}

func (f *Font) maybeNormalize(text string) string {
	if f.normalize {
		return normalizeNFC(text)
	}
	return text
}
