package vectortext

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// sfntSource is the default outline backend on golang.org/x/image/font/sfnt.
//
// Queries run at ppem == unitsPerEm so the 26.6 fixed-point results are
// font units. sfnt's Y axis points down; every Y is negated on the way out
// to satisfy the Y-up OutlineSource contract.
type sfntSource struct {
	font *sfnt.Font
	buf  sfnt.Buffer
	ppem fixed.Int26_6
	segs []Segment
}

func newSFNTSource(data []byte) (OutlineSource, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}
	return &sfntSource{
		font: f,
		ppem: fixed.I(int(f.UnitsPerEm())),
	}, nil
}

func (s *sfntSource) GlyphIndex(r rune) uint16 {
	gid, err := s.font.GlyphIndex(&s.buf, r)
	if err != nil {
		return 0
	}
	return uint16(gid)
}

func (s *sfntSource) Metrics() (ascent, descent, lineGap float32) {
	m, err := s.font.Metrics(&s.buf, s.ppem, font.HintingNone)
	if err != nil {
		return 1, 0, 0
	}
	ascent = fromFixed(m.Ascent)
	descent = -fromFixed(m.Descent) // sfnt reports descent positive-down
	lineGap = fromFixed(m.Height - m.Ascent - m.Descent)
	return ascent, descent, lineGap
}

func (s *sfntSource) HMetrics(gid uint16) (advance, lsb float32) {
	adv, err := s.font.GlyphAdvance(&s.buf, sfnt.GlyphIndex(gid), s.ppem, font.HintingNone)
	if err != nil {
		return 0, 0
	}
	bounds, _, err := s.font.GlyphBounds(&s.buf, sfnt.GlyphIndex(gid), s.ppem, font.HintingNone)
	if err != nil {
		return fromFixed(adv), 0
	}
	return fromFixed(adv), fromFixed(bounds.Min.X)
}

func (s *sfntSource) Bounds(gid uint16) (min, max Vec2) {
	bounds, _, err := s.font.GlyphBounds(&s.buf, sfnt.GlyphIndex(gid), s.ppem, font.HintingNone)
	if err != nil {
		return Vec2{}, Vec2{}
	}
	// Flip to Y-up: sfnt's Min.Y is the top edge in Y-down coordinates.
	min = Vec2{X: fromFixed(bounds.Min.X), Y: -fromFixed(bounds.Max.Y)}
	max = Vec2{X: fromFixed(bounds.Max.X), Y: -fromFixed(bounds.Min.Y)}
	return min, max
}

func (s *sfntSource) Outline(gid uint16) []Segment {
	segments, err := s.font.LoadGlyph(&s.buf, sfnt.GlyphIndex(gid), s.ppem, nil)
	if err != nil {
		return nil
	}

	s.segs = s.segs[:0]
	for _, seg := range segments {
		out := Segment{}
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			out.Op = SegMoveTo
			out.Args[0] = fixedPoint(seg.Args[0])
		case sfnt.SegmentOpLineTo:
			out.Op = SegLineTo
			out.Args[0] = fixedPoint(seg.Args[0])
		case sfnt.SegmentOpQuadTo:
			out.Op = SegQuadTo
			out.Args[0] = fixedPoint(seg.Args[0])
			out.Args[1] = fixedPoint(seg.Args[1])
		case sfnt.SegmentOpCubeTo:
			out.Op = SegCubeTo
			out.Args[0] = fixedPoint(seg.Args[0])
			out.Args[1] = fixedPoint(seg.Args[1])
			out.Args[2] = fixedPoint(seg.Args[2])
		default:
			continue
		}
		s.segs = append(s.segs, out)
	}
	return s.segs
}

func (s *sfntSource) Kern(a, b uint16) float32 {
	k, err := s.font.Kern(&s.buf, sfnt.GlyphIndex(a), sfnt.GlyphIndex(b), s.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(k)
}

// fixedPoint converts a fixed.Point26_6 to a Y-up Vec2 in font units.
func fixedPoint(p fixed.Point26_6) Vec2 {
	return Vec2{X: fromFixed(p.X), Y: -fromFixed(p.Y)}
}

func fromFixed(v fixed.Int26_6) float32 {
	return float32(v) / 64.0
}
