package vectortext

// fakeSource is a canned outline source with a handful of glyphs in a
// 1000-unit em: a square 'A', a triangle 'V', a blank space, and a pair
// kern between 'A' and 'V'. Ascent 800 makes the normalized advance of
// 'A' exactly 0.75.
type fakeSource struct{}

const (
	fakeGidA     = 1
	fakeGidV     = 2
	fakeGidSpace = 3
	fakeGidDot   = 4 // box but no outline, like a bitmap-only glyph

	fakeAscent  = 800
	fakeDescent = -200
	fakeLineGap = 100

	fakeAdvanceA     = 600
	fakeAdvanceSpace = 300
	fakeKernAV       = -50
)

func (fakeSource) GlyphIndex(r rune) uint16 {
	switch r {
	case 'A', 'a':
		return fakeGidA
	case 'V':
		return fakeGidV
	case ' ':
		return fakeGidSpace
	case '.':
		return fakeGidDot
	}
	return 0
}

func (fakeSource) Metrics() (float32, float32, float32) {
	return fakeAscent, fakeDescent, fakeLineGap
}

func (fakeSource) HMetrics(gid uint16) (float32, float32) {
	if gid == fakeGidSpace {
		return fakeAdvanceSpace, 0
	}
	return fakeAdvanceA, 100
}

func (fakeSource) Bounds(gid uint16) (Vec2, Vec2) {
	switch gid {
	case fakeGidSpace:
		return Vec2{}, Vec2{}
	case fakeGidDot:
		return Vec2{100, 0}, Vec2{300, 200}
	}
	return Vec2{100, 0}, Vec2{500, 600}
}

func (fakeSource) Outline(gid uint16) []Segment {
	switch gid {
	case fakeGidA:
		return []Segment{
			{Op: SegMoveTo, Args: [3]Vec2{{100, 0}}},
			{Op: SegLineTo, Args: [3]Vec2{{500, 0}}},
			{Op: SegLineTo, Args: [3]Vec2{{500, 600}}},
			{Op: SegLineTo, Args: [3]Vec2{{100, 600}}},
		}
	case fakeGidV:
		return []Segment{
			{Op: SegMoveTo, Args: [3]Vec2{{100, 600}}},
			{Op: SegLineTo, Args: [3]Vec2{{300, 0}}},
			{Op: SegLineTo, Args: [3]Vec2{{500, 600}}},
		}
	}
	return nil
}

func (fakeSource) Kern(a, b uint16) float32 {
	if a == fakeGidA && b == fakeGidV {
		return fakeKernAV
	}
	return 0
}

func init() {
	RegisterOutlineBackend("fake", func([]byte) (OutlineSource, error) {
		return fakeSource{}, nil
	})
}

// Normalized fake metrics used across tests.
const (
	fakeAdvA   = float32(fakeAdvanceA) / fakeAscent     // 0.75
	fakeAdvSp  = float32(fakeAdvanceSpace) / fakeAscent // 0.375
	fakeKernN  = float32(fakeKernAV) / fakeAscent       // -0.0625
	fakeLineH  = 1 - float32(fakeDescent)/fakeAscent + float32(fakeLineGap)/fakeAscent
	fakeGlyphW = float32(400) / fakeAscent // square glyph width 0.5
)
