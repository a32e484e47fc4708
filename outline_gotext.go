package vectortext

import (
	"bytes"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

// gotextSource is an alternate outline backend on go-text/typesetting.
// Select it with WithOutlineBackend("gotext").
//
// typesetting exposes pair kerning only through its shaper, so Kern always
// returns 0 here; the default sfnt backend implements the full contract.
type gotextSource struct {
	face *font.Face
	segs []Segment
}

func newGoTextSource(data []byte) (OutlineSource, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &gotextSource{face: face}, nil
}

func (s *gotextSource) GlyphIndex(r rune) uint16 {
	gid, ok := s.face.NominalGlyph(r)
	if !ok {
		return 0
	}
	return uint16(gid)
}

func (s *gotextSource) Metrics() (ascent, descent, lineGap float32) {
	ext, ok := s.face.FontHExtents()
	if !ok {
		return 1, 0, 0
	}
	// Descender is already negative (Y up).
	return ext.Ascender, ext.Descender, ext.LineGap
}

func (s *gotextSource) HMetrics(gid uint16) (advance, lsb float32) {
	advance = s.face.HorizontalAdvance(font.GID(gid))
	if ext, ok := s.face.GlyphExtents(font.GID(gid)); ok {
		lsb = ext.XBearing
	}
	return advance, lsb
}

func (s *gotextSource) Bounds(gid uint16) (min, max Vec2) {
	ext, ok := s.face.GlyphExtents(font.GID(gid))
	if !ok {
		return Vec2{}, Vec2{}
	}
	// YBearing is the top edge; Height extends downward from it.
	top := ext.YBearing
	bottom := ext.YBearing + ext.Height
	if bottom > top {
		top, bottom = bottom, top
	}
	return Vec2{X: ext.XBearing, Y: bottom}, Vec2{X: ext.XBearing + ext.Width, Y: top}
}

func (s *gotextSource) Outline(gid uint16) []Segment {
	data := s.face.GlyphData(font.GID(gid))
	outline, ok := data.(font.GlyphOutline)
	if !ok {
		return nil
	}
	s.segs = appendGoTextSegments(s.segs[:0], outline.Segments)
	return s.segs
}

// appendGoTextSegments converts typesetting outline segments. A segment
// packs up to three move/line ops (or one quad or cube) into Op, with the
// points laid out consecutively in Args; the ops are peeled off the low
// bits in order.
func appendGoTextSegments(dst []Segment, segs []ot.Segment) []Segment {
	for _, seg := range segs {
		op := seg.Op
		i := 0
		for op != 0 && i < len(seg.Args) {
			switch {
			case op&0x3F == ot.SegmentOpCubeTo && i+2 < len(seg.Args):
				dst = append(dst, Segment{Op: SegCubeTo, Args: [3]Vec2{
					{X: seg.Args[i].X, Y: seg.Args[i].Y},
					{X: seg.Args[i+1].X, Y: seg.Args[i+1].Y},
					{X: seg.Args[i+2].X, Y: seg.Args[i+2].Y},
				}})
				op >>= 6
				i += 3
			case op&0x0F == ot.SegmentOpQuadTo && i+1 < len(seg.Args):
				dst = append(dst, Segment{Op: SegQuadTo, Args: [3]Vec2{
					{X: seg.Args[i].X, Y: seg.Args[i].Y},
					{X: seg.Args[i+1].X, Y: seg.Args[i+1].Y},
				}})
				op >>= 4
				i += 2
			case op&0x03 == ot.SegmentOpMoveTo:
				dst = append(dst, Segment{Op: SegMoveTo, Args: [3]Vec2{
					{X: seg.Args[i].X, Y: seg.Args[i].Y},
				}})
				op >>= 2
				i++
			case op&0x03 == ot.SegmentOpLineTo:
				dst = append(dst, Segment{Op: SegLineTo, Args: [3]Vec2{
					{X: seg.Args[i].X, Y: seg.Args[i].Y},
				}})
				op >>= 2
				i++
			default:
				op = 0
			}
		}
	}
	return dst
}

func (s *gotextSource) Kern(a, b uint16) float32 {
	return 0
}
