package vectortext

// curveExtractor converts a glyph's contour commands into Y-monotonic
// quadratic Bézier curves with tight bounding boxes. The scratch slice is
// reused across glyphs; curves are copied into the font's global buffer by
// the band partitioner.
type curveExtractor struct {
	curves []Curve
	pen    Vec2
	start  Vec2
	open   bool
}

// extremumEpsilon keeps the monotonic split away from the endpoints, where
// splitting would produce a degenerate sliver instead of two usable curves.
const extremumEpsilon = 0.001

// reset clears the extractor for a new glyph.
func (e *curveExtractor) reset() {
	e.curves = e.curves[:0]
	e.pen = Vec2{}
	e.start = Vec2{}
	e.open = false
}

// extract runs the glyph's outline commands at the given scale.
func (e *curveExtractor) extract(segs []Segment, scale float32) {
	e.reset()
	for _, seg := range segs {
		switch seg.Op {
		case SegMoveTo:
			e.moveTo(seg.Args[0].Scale(scale))
		case SegLineTo:
			e.lineTo(seg.Args[0].Scale(scale))
		case SegQuadTo:
			e.quadTo(seg.Args[0].Scale(scale), seg.Args[1].Scale(scale))
		case SegCubeTo:
			e.cubeTo(seg.Args[0].Scale(scale), seg.Args[1].Scale(scale), seg.Args[2].Scale(scale))
		}
	}
	e.closeContour()
}

func (e *curveExtractor) moveTo(p Vec2) {
	e.closeContour()
	e.pen = p
	e.start = p
	e.open = true
}

// lineTo emits a degenerate quadratic: the control point at the segment
// midpoint represents the line exactly.
func (e *curveExtractor) lineTo(p Vec2) {
	e.emitQuad(e.pen, e.pen.Lerp(p, 0.5), p)
	e.pen = p
}

func (e *curveExtractor) quadTo(ctrl, p Vec2) {
	e.emitQuad(e.pen, ctrl, p)
	e.pen = p
}

// cubeTo approximates the cubic with two quadratics. Pulling each control
// point 3/4 of the way toward its endpoint and joining at the midpoint
// bounds the error well below visible thresholds for font curvature.
func (e *curveExtractor) cubeTo(c1, c2, p Vec2) {
	q0 := e.pen.Lerp(c1, 0.75)
	q1 := p.Lerp(c2, 0.75)
	mid := q0.Lerp(q1, 0.5)
	e.emitQuad(e.pen, q0, mid)
	e.emitQuad(mid, q1, p)
	e.pen = p
}

// closeContour welds the contour shut. Outline sources are not required
// to emit the closing edge, but the winding evaluation needs closed loops.
func (e *curveExtractor) closeContour() {
	if e.open && (e.pen != e.start) {
		e.lineTo(e.start)
	}
	e.open = false
}

// emitQuad splits the quadratic at its interior Y extremum, if any, and
// appends the monotonic pieces.
func (e *curveExtractor) emitQuad(p0, p1, p2 Vec2) {
	a := p0.Y - 2*p1.Y + p2.Y
	if a != 0 {
		t := (p0.Y - p1.Y) / a
		if t > extremumEpsilon && t < 1-extremumEpsilon {
			l0, l1, l2, r1, r2 := splitQuad(p0, p1, p2, t)
			e.push(l0, l1, l2)
			e.push(l2, r1, r2)
			return
		}
	}
	e.push(p0, p1, p2)
}

// push appends one monotonic curve with its tight bounding box.
func (e *curveExtractor) push(p0, p1, p2 Vec2) {
	c := Curve{P0: p0, P1: p1, P2: p2}
	c.XMin, c.XMax = axisBounds(p0.X, p1.X, p2.X)
	c.YMin, c.YMax = axisBounds(p0.Y, p1.Y, p2.Y)
	e.curves = append(e.curves, c)
}

// bounds returns the union of all curve boxes and whether any exist.
func (e *curveExtractor) bounds() (min, max Vec2, ok bool) {
	if len(e.curves) == 0 {
		return Vec2{}, Vec2{}, false
	}
	c := &e.curves[0]
	min = Vec2{c.XMin, c.YMin}
	max = Vec2{c.XMax, c.YMax}
	for i := 1; i < len(e.curves); i++ {
		c = &e.curves[i]
		min.X = min32(min.X, c.XMin)
		min.Y = min32(min.Y, c.YMin)
		max.X = max32(max.X, c.XMax)
		max.Y = max32(max.Y, c.YMax)
	}
	return min, max, true
}

// splitQuad subdivides a quadratic at t with de Casteljau, returning the
// left piece (l0, l1, l2) and the right piece (l2, r1, r2).
func splitQuad(p0, p1, p2 Vec2, t float32) (l0, l1, l2, r1, r2 Vec2) {
	q0 := p0.Lerp(p1, t)
	q1 := p1.Lerp(p2, t)
	m := q0.Lerp(q1, t)
	return p0, q0, m, q1, p2
}

// quadAt evaluates the quadratic (1-t)²p0 + 2(1-t)t·p1 + t²p2 on one axis.
func quadAt(p0, p1, p2, t float32) float32 {
	u := 1 - t
	return u*u*p0 + 2*u*t*p1 + t*t*p2
}

// axisBounds returns the tight min/max of the curve on one axis: the
// endpoints plus the interior derivative root, if it lies in (0, 1).
func axisBounds(p0, p1, p2 float32) (lo, hi float32) {
	lo, hi = min32(p0, p2), max32(p0, p2)
	a := p0 - 2*p1 + p2
	if a != 0 {
		t := (p0 - p1) / a
		if t > 0 && t < 1 {
			v := quadAt(p0, p1, p2, t)
			lo, hi = min32(lo, v), max32(hi, v)
		}
	}
	return lo, hi
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
