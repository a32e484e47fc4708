package vectortext

// partitionBands copies the extracted curves into the font's global curve
// buffer, grouped into BandCount horizontal slices of the glyph's bounding
// box, and fills in the glyph's band table. Curves are duplicated into
// every band they overlap so the shader can evaluate a single band per
// fragment without neighbor lookups.
//
// Each band table word packs the band's slice of the glyph's curve range:
// the offset relative to CurveStart in the high 16 bits and the curve
// count in the low 16 bits.
func partitionBands(g *Glyph, curves []Curve, global []Curve) []Curve {
	g.CurveStart = uint32(len(global))
	g.CurveCount = 0
	for i := range g.Bands {
		g.Bands[i] = 0
	}
	if len(curves) == 0 {
		return global
	}

	height := g.BoundsMax.Y - g.BoundsMin.Y
	bandH := height / BandCount
	// Overlap adjacent bands slightly so curves touching a boundary are
	// visible from both sides of it.
	margin := bandH * 0.01

	for b := 0; b < BandCount; b++ {
		y0 := g.BoundsMin.Y + float32(b)*bandH - margin
		y1 := g.BoundsMin.Y + float32(b+1)*bandH + margin
		offset := g.CurveCount
		count := uint32(0)
		for i := range curves {
			c := &curves[i]
			if c.YMin <= y1 && c.YMax >= y0 {
				global = append(global, *c)
				count++
			}
		}
		g.Bands[b] = offset<<16 | count
		g.CurveCount += count
	}
	return global
}
