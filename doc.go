// Package vectortext prepares TrueType/OpenType glyph geometry for
// GPU-evaluated text rendering.
//
// # Overview
//
// vectortext is the CPU side of a vector text pipeline: it parses a font
// into piecewise quadratic Bézier curves, splits every curve so it is
// monotonic in Y, partitions each glyph's curves into 32 horizontal bands
// for sub-linear fragment-shader lookup, and mirrors the result into two
// read-only structured storage buffers. Per frame it assembles one compact
// 48-byte instance record per visible codepoint and submits a single
// instanced draw of a unit quad against a caller-owned shader and material.
//
// The fragment shader evaluates glyph coverage directly from the curve
// buffer using winding numbers, so text stays resolution independent with
// no atlas and no signed distance fields.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/vectortext"
//		"github.com/gogpu/vectortext/render"
//	)
//
//	font, err := vectortext.LoadFont(driver, ttfBytes)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer font.Destroy()
//
//	ctx, err := vectortext.NewContext(font, shader, material)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ctx.Destroy()
//
//	// Per frame:
//	ctx.Clear()
//	ctx.Add("hello", vectortext.Mat4Identity(), 0.1,
//		vectortext.Color{R: 1, G: 1, B: 1, A: 1}, vectortext.AlignLeft)
//	ctx.Render(list)
//
// # Coordinate System
//
// All glyph geometry is normalized so that 1.0 equals the font's ascent:
// a glyph's natural bounds lie roughly within [-0.25, 1.0] vertically with
// the baseline at 0 and Y pointing up. The size argument of Add and AddIn
// scales that into world units.
//
// # Concurrency
//
// A Font and a Context are single-threaded: the glyph cache and the GPU
// dirty flag are mutated by lazy loads. Distinct fonts may be used from
// distinct goroutines.
package vectortext
