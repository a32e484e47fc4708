package vectortext

// SegmentOp is the type of outline path operation.
type SegmentOp uint8

const (
	// SegMoveTo starts a new contour at the target point.
	SegMoveTo SegmentOp = iota

	// SegLineTo draws a line to the target point.
	SegLineTo

	// SegQuadTo draws a quadratic Bézier; Args[0] is the control point,
	// Args[1] the target.
	SegQuadTo

	// SegCubeTo draws a cubic Bézier; Args[0] and Args[1] are the control
	// points, Args[2] the target.
	SegCubeTo
)

// String returns a string representation of the operation.
func (op SegmentOp) String() string {
	switch op {
	case SegMoveTo:
		return "MoveTo"
	case SegLineTo:
		return "LineTo"
	case SegQuadTo:
		return "QuadTo"
	case SegCubeTo:
		return "CubeTo"
	default:
		return "Unknown"
	}
}

// Segment is one outline command in font units with Y pointing up.
type Segment struct {
	Op   SegmentOp
	Args [3]Vec2
}

// OutlineSource is the capability set the pipeline consumes from a font
// parser. All values are in unscaled font units with Y up; the pipeline
// normalizes by 1/ascent. A glyph index of 0 means "missing".
//
// Implementations are used from a single goroutine per font and may reuse
// internal buffers between calls; returned segment slices are only valid
// until the next Outline call.
type OutlineSource interface {
	// GlyphIndex returns the glyph index for a codepoint, 0 if missing.
	GlyphIndex(r rune) uint16

	// Metrics returns ascent (> 0), descent (<= 0, below baseline) and
	// line gap.
	Metrics() (ascent, descent, lineGap float32)

	// HMetrics returns the horizontal advance and left side bearing.
	HMetrics(gid uint16) (advance, lsb float32)

	// Bounds returns the glyph's bounding box.
	Bounds(gid uint16) (min, max Vec2)

	// Outline returns the glyph's decomposed contour commands.
	Outline(gid uint16) []Segment

	// Kern returns the kerning adjustment for the glyph pair, 0 when the
	// font has none.
	Kern(a, b uint16) float32
}

// OutlineBackend parses font data into an OutlineSource.
type OutlineBackend func(data []byte) (OutlineSource, error)

// outlineBackends holds registered outline backends.
// The default backend is "sfnt" (golang.org/x/image).
var outlineBackends = map[string]OutlineBackend{
	"sfnt":   newSFNTSource,
	"gotext": newGoTextSource,
}

// defaultOutlineBackend is the name of the default backend.
const defaultOutlineBackend = "sfnt"

// RegisterOutlineBackend registers a custom outline backend. This allows
// users (and tests) to provide their own font parsing implementation.
func RegisterOutlineBackend(name string, backend OutlineBackend) {
	outlineBackends[name] = backend
}

// outlineBackend returns the backend by name, or the default if not found.
func outlineBackend(name string) OutlineBackend {
	if b, ok := outlineBackends[name]; ok {
		return b
	}
	return outlineBackends[defaultOutlineBackend]
}
