package vectortext

import (
	"fmt"

	"github.com/gogpu/vectortext/render"
)

// Font owns everything derived from one font file: parsed outlines, the
// glyph cache, the packed curve and glyph arrays and their GPU buffers.
// All coordinates are normalized so the ascent is 1.0 and the baseline
// sits at y = 0.
//
// A Font is not safe for concurrent use.
type Font struct {
	drv  render.Driver
	data []byte
	src  OutlineSource

	scale   float32 // font units -> normalized
	ascent  float32
	descent float32
	lineGap float32

	// Glyph cache. ASCII codepoints resolve through a flat table, the
	// rest through an open-addressed map. Entries index glyphs and gids.
	ascii  [asciiSlots]int32
	lookup codepointMap
	glyphs []Glyph
	gids   []uint16

	curves []Curve
	ext    curveExtractor

	curveBuf render.Buffer
	glyphBuf render.Buffer
	dirty    bool

	normalize bool
	valid     bool
}

// LoadFont parses a TTF/OTF font and prepares it for rendering with the
// given driver. The data slice is copied; the caller may reuse it.
func LoadFont(drv render.Driver, data []byte, opts ...FontOption) (*Font, error) {
	if drv == nil {
		return nil, ErrNilDriver
	}
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	cfg := defaultFontConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	owned := make([]byte, len(data))
	copy(owned, data)

	src, err := outlineBackend(cfg.backend)(owned)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFontData, err)
	}

	ascent, descent, lineGap := src.Metrics()
	if ascent <= 0 {
		return nil, fmt.Errorf("%w: non-positive ascent", ErrInvalidFontData)
	}
	scale := 1 / ascent

	f := &Font{
		drv:       drv,
		data:      owned,
		src:       src,
		scale:     scale,
		ascent:    1,
		descent:   descent * scale,
		lineGap:   lineGap * scale,
		lookup:    newCodepointMap(),
		glyphs:    make([]Glyph, 0, initialGlyphCapacity),
		gids:      make([]uint16, 0, initialGlyphCapacity),
		normalize: cfg.normalize,
		valid:     true,
	}
	for i := range f.ascii {
		f.ascii[i] = -1
	}
	slogger().Debug("font loaded",
		"bytes", len(owned),
		"backend", cfg.backend,
		"descent", f.descent,
		"lineGap", f.lineGap)
	return f, nil
}

// Destroy releases the font's GPU buffers and invalidates it. Contexts
// created from the font must not be used afterwards. Destroy is
// idempotent.
func (f *Font) Destroy() {
	if !f.valid {
		return
	}
	if f.curveBuf != nil {
		f.drv.DestroyBuffer(f.curveBuf)
		f.curveBuf = nil
	}
	if f.glyphBuf != nil {
		f.drv.DestroyBuffer(f.glyphBuf)
		f.glyphBuf = nil
	}
	f.glyphs = nil
	f.gids = nil
	f.curves = nil
	f.data = nil
	f.src = nil
	f.valid = false
}

// Valid reports whether the font is usable.
func (f *Font) Valid() bool { return f != nil && f.valid }

// Ascent returns the normalized ascent, which is 1.0 by construction.
func (f *Font) Ascent() float32 { return f.ascent }

// Descent returns the normalized descent, zero or negative.
func (f *Font) Descent() float32 { return f.descent }

// LineGap returns the normalized extra spacing between lines.
func (f *Font) LineGap() float32 { return f.lineGap }

// glyphFor returns the cache index for a codepoint, loading the glyph on
// first use. It returns -1 when the font has no glyph for the codepoint;
// misses are not cached.
func (f *Font) glyphFor(r rune) int32 {
	if uint32(r) < asciiSlots {
		if idx := f.ascii[r]; idx >= 0 {
			return idx
		}
		idx := f.loadGlyph(r)
		if idx >= 0 {
			f.ascii[r] = idx
		}
		return idx
	}
	if idx, ok := f.lookup.lookup(uint32(r)); ok {
		return int32(idx)
	}
	idx := f.loadGlyph(r)
	if idx >= 0 {
		f.lookup.insert(uint32(r), uint32(idx))
	}
	return idx
}

// loadGlyph extracts one glyph's outline, partitions it into bands and
// appends it to the glyph array. Returns -1 when the codepoint is not in
// the font's character map.
func (f *Font) loadGlyph(r rune) int32 {
	gid := f.src.GlyphIndex(r)
	if gid == 0 {
		slogger().Debug("codepoint not in font", "codepoint", uint32(r))
		return -1
	}

	advance, lsb := f.src.HMetrics(gid)
	g := Glyph{
		Advance: advance * f.scale,
		LSB:     lsb * f.scale,
	}

	f.ext.extract(f.src.Outline(gid), f.scale)
	if min, max, ok := f.ext.bounds(); ok {
		g.BoundsMin, g.BoundsMax = min, max
	} else {
		// No extractable curves; fall back to the source's glyph box.
		min, max := f.src.Bounds(gid)
		g.BoundsMin = min.Scale(f.scale)
		g.BoundsMax = max.Scale(f.scale)
	}
	f.curves = partitionBands(&g, f.ext.curves, f.curves)

	if len(f.glyphs) == cap(f.glyphs) {
		f.growGlyphs()
	}
	f.glyphs = append(f.glyphs, g)
	f.gids = append(f.gids, gid)
	f.dirty = true
	return int32(len(f.glyphs) - 1)
}

// growGlyphs doubles the glyph and gid arrays together so their indices
// stay in lockstep.
func (f *Font) growGlyphs() {
	glyphs := make([]Glyph, len(f.glyphs), cap(f.glyphs)*2)
	copy(glyphs, f.glyphs)
	f.glyphs = glyphs
	gids := make([]uint16, len(f.gids), cap(f.gids)*2)
	copy(gids, f.gids)
	f.gids = gids
}

// kern returns the normalized kerning adjustment between two cached
// glyphs.
func (f *Font) kern(a, b int32) float32 {
	return f.src.Kern(f.gids[a], f.gids[b]) * f.scale
}

// sync re-uploads the curve and glyph arrays if any glyph was added since
// the last upload. The driver defers destruction of the old buffers until
// in-flight frames finish.
func (f *Font) sync() error {
	if !f.dirty {
		return nil
	}
	if f.curveBuf != nil {
		f.drv.DestroyBuffer(f.curveBuf)
		f.curveBuf = nil
	}
	if f.glyphBuf != nil {
		f.drv.DestroyBuffer(f.glyphBuf)
		f.glyphBuf = nil
	}
	if len(f.glyphs) == 0 {
		f.dirty = false
		return nil
	}
	// All cached glyphs can be blank (a lone space, say); the curve array
	// is empty then and gets no buffer.
	if len(f.curves) > 0 {
		curveBuf, err := f.drv.CreateStorageBuffer("text curves", encodeCurves(f.curves), CurveByteSize)
		if err != nil {
			return err
		}
		f.curveBuf = curveBuf
	}
	glyphBuf, err := f.drv.CreateStorageBuffer("text glyphs", encodeGlyphs(f.glyphs), GlyphByteSize)
	if err != nil {
		if f.curveBuf != nil {
			f.drv.DestroyBuffer(f.curveBuf)
			f.curveBuf = nil
		}
		return err
	}
	f.glyphBuf = glyphBuf
	f.dirty = false
	slogger().Debug("font buffers uploaded",
		"glyphs", len(f.glyphs),
		"curves", len(f.curves))
	return nil
}
