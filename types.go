package vectortext

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Contract constants shared with the fragment shader. Changing BandCount
// requires rebuilding the shader; it is part of the storage buffer layout,
// not a tunable.
const (
	// BandCount is the number of horizontal bands per glyph.
	BandCount = 32

	// MaxInstances is the hard cap on staged instances per context per
	// frame. Glyphs beyond the cap are silently dropped.
	MaxInstances = 4096

	// CurveByteSize is the encoded size of one Curve record.
	CurveByteSize = 40

	// GlyphByteSize is the encoded size of one Glyph record.
	GlyphByteSize = 8 + 16 + 8 + 4*BandCount

	// InstanceByteSize is the encoded size of one Instance record.
	InstanceByteSize = 48

	// asciiSlots is the size of the direct-indexed codepoint fast path.
	asciiSlots = 128

	// initialGlyphCapacity is the starting capacity of a font's glyph
	// array; the array doubles when full.
	initialGlyphCapacity = 256
)

// Curve is one Y-monotonic quadratic Bézier curve in the layout the
// fragment shader reads: three control points followed by a tight
// axis-aligned bounding box computed from the curve itself, not the
// control polygon.
type Curve struct {
	P0, P1, P2 Vec2
	XMin, XMax float32
	YMin, YMax float32
}

// Glyph is the device-resident per-glyph record. CurveStart indexes the
// font's global curve buffer; Bands holds one packed (offset<<16)|count
// word per horizontal band, with offsets relative to CurveStart.
type Glyph struct {
	CurveStart uint32
	CurveCount uint32
	BoundsMin  Vec2
	BoundsMax  Vec2
	Advance    float32
	LSB        float32
	Bands      [BandCount]uint32
}

// Instance places one glyph quad in world space. Right and Up carry the
// basis columns pre-multiplied by the text size, so the vertex shader
// computes pos + right*u + up*v. Color is packed RGBA8, R in the low byte.
type Instance struct {
	Pos        Vec3
	GlyphIndex uint32
	Right      Vec3
	Color      uint32
	Up         Vec3
	Pad        uint32
}

// The in-memory layouts are part of the shader contract; a field
// reordering or an alignment hole breaks them at compile time here.
var (
	_ = [CurveByteSize]byte{} == [unsafe.Sizeof(Curve{})]byte{}
	_ = [GlyphByteSize]byte{} == [unsafe.Sizeof(Glyph{})]byte{}
	_ = [InstanceByteSize]byte{} == [unsafe.Sizeof(Instance{})]byte{}
)

func putF32(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}

func appendCurve(dst []byte, c *Curve) []byte {
	var b [CurveByteSize]byte
	putF32(b[0:], c.P0.X)
	putF32(b[4:], c.P0.Y)
	putF32(b[8:], c.P1.X)
	putF32(b[12:], c.P1.Y)
	putF32(b[16:], c.P2.X)
	putF32(b[20:], c.P2.Y)
	putF32(b[24:], c.XMin)
	putF32(b[28:], c.XMax)
	putF32(b[32:], c.YMin)
	putF32(b[36:], c.YMax)
	return append(dst, b[:]...)
}

func appendGlyph(dst []byte, g *Glyph) []byte {
	var b [GlyphByteSize]byte
	binary.LittleEndian.PutUint32(b[0:], g.CurveStart)
	binary.LittleEndian.PutUint32(b[4:], g.CurveCount)
	putF32(b[8:], g.BoundsMin.X)
	putF32(b[12:], g.BoundsMin.Y)
	putF32(b[16:], g.BoundsMax.X)
	putF32(b[20:], g.BoundsMax.Y)
	putF32(b[24:], g.Advance)
	putF32(b[28:], g.LSB)
	for i, w := range g.Bands {
		binary.LittleEndian.PutUint32(b[32+4*i:], w)
	}
	return append(dst, b[:]...)
}

func appendInstance(dst []byte, in *Instance) []byte {
	var b [InstanceByteSize]byte
	putF32(b[0:], in.Pos.X)
	putF32(b[4:], in.Pos.Y)
	putF32(b[8:], in.Pos.Z)
	binary.LittleEndian.PutUint32(b[12:], in.GlyphIndex)
	putF32(b[16:], in.Right.X)
	putF32(b[20:], in.Right.Y)
	putF32(b[24:], in.Right.Z)
	binary.LittleEndian.PutUint32(b[28:], in.Color)
	putF32(b[32:], in.Up.X)
	putF32(b[36:], in.Up.Y)
	putF32(b[40:], in.Up.Z)
	binary.LittleEndian.PutUint32(b[44:], in.Pad)
	return append(dst, b[:]...)
}

// encodeCurves serializes curves little-endian for the storage buffer.
func encodeCurves(curves []Curve) []byte {
	out := make([]byte, 0, len(curves)*CurveByteSize)
	for i := range curves {
		out = appendCurve(out, &curves[i])
	}
	return out
}

// encodeGlyphs serializes glyph records little-endian for the storage buffer.
func encodeGlyphs(glyphs []Glyph) []byte {
	out := make([]byte, 0, len(glyphs)*GlyphByteSize)
	for i := range glyphs {
		out = appendGlyph(out, &glyphs[i])
	}
	return out
}

// encodeInstances serializes staged instances for the per-frame draw.
func encodeInstances(instances []Instance) []byte {
	out := make([]byte, 0, len(instances)*InstanceByteSize)
	for i := range instances {
		out = appendInstance(out, &instances[i])
	}
	return out
}
