package vectortext

import (
	"github.com/gogpu/vectortext/render"
)

// Context stages text draws for one consumer. It owns the unit quad mesh
// and a bounded instance array; the font, shader and material are borrowed
// and must outlive it.
//
// A Context is not safe for concurrent use.
type Context struct {
	font     *Font
	shader   render.Shader
	material render.Material
	mesh     render.Mesh

	instances []Instance
}

// quad is the unit glyph quad the vertex shader stretches over each
// instance's bounds. UVs match positions so the fragment shader gets the
// glyph-local coordinate directly.
var (
	quadVerts = []render.Vertex{
		{Pos: [2]float32{0, 0}, UV: [2]float32{0, 0}},
		{Pos: [2]float32{1, 0}, UV: [2]float32{1, 0}},
		{Pos: [2]float32{1, 1}, UV: [2]float32{1, 1}},
		{Pos: [2]float32{0, 1}, UV: [2]float32{0, 1}},
	}
	quadIndices = []uint16{0, 1, 2, 2, 3, 0}
)

// NewContext creates a text context drawing with the given shader and
// material. The quad mesh is allocated on the font's driver.
func NewContext(font *Font, shader render.Shader, material render.Material) (*Context, error) {
	if font == nil {
		return nil, ErrNilFont
	}
	if !font.Valid() {
		return nil, ErrFontDestroyed
	}
	mesh, err := font.drv.CreateMesh("text quad", quadVerts, quadIndices)
	if err != nil {
		return nil, err
	}
	return &Context{
		font:      font,
		shader:    shader,
		material:  material,
		mesh:      mesh,
		instances: make([]Instance, 0, MaxInstances),
	}, nil
}

// Destroy releases the quad mesh. The font's buffers are untouched.
func (c *Context) Destroy() {
	if c.mesh != nil {
		c.font.drv.DestroyMesh(c.mesh)
		c.mesh = nil
	}
	c.instances = nil
}

// Clear drops all staged instances.
func (c *Context) Clear() {
	c.instances = c.instances[:0]
}

// InstanceCount returns the number of staged instances.
func (c *Context) InstanceCount() int {
	return len(c.instances)
}

// Add stages a single line of text. The transform's origin is the
// baseline start; align shifts the line relative to it. Glyphs beyond
// MaxInstances are silently dropped.
func (c *Context) Add(text string, transform Mat4, size float32, color Color, align Align) {
	if !c.font.Valid() {
		return
	}
	c.addRunes(decodeString(c.font.maybeNormalize(text)), transform, size, color, align)
}

// AddUTF16 is Add for NUL-terminated UTF-16 input.
func (c *Context) AddUTF16(units []uint16, transform Mat4, size float32, color Color, align Align) {
	if !c.font.Valid() {
		return
	}
	c.addRunes(decodeUTF16String(units), transform, size, color, align)
}

func (c *Context) addRunes(runes []rune, transform Mat4, size float32, color Color, align Align) {
	placed, width := c.font.shapeRun(runes)
	off := alignOffset(align, width)
	packed := color.Packed()
	for _, pg := range placed {
		if c.font.glyphs[pg.glyph].CurveCount == 0 {
			continue
		}
		world := transform.
			Mul(Mat4Translate((off+pg.x)*size, 0, 0)).
			Mul(Mat4Scale(size, size, 1))
		c.emit(world, pg.glyph, packed)
	}
}

// AddIn stages text laid out inside a box and returns the rendered block
// size in world units. The box hangs below and to the right of the
// layout origin; the pivot names which point of the box the transform's
// origin lands on. Scroll shifts the text within the box, applied after
// alignment, +Y moving it up.
func (c *Context) AddIn(text string, box Box, transform Mat4, size float32, color Color, opt BoxOptions) Vec2 {
	if !c.font.Valid() || size <= 0 {
		return Vec2{}
	}
	runes := decodeString(c.font.maybeNormalize(text))
	lines := c.font.breakLines(runes, opt.Fit == FitWrap, box.W/size)

	var maxLineW float32
	for _, ln := range lines {
		maxLineW = max32(maxLineW, ln.width)
	}
	lineH := c.font.lineHeight()
	blockH := float32(len(lines)) * lineH

	scale := fitScale(opt.Fit, box, maxLineW, blockH, size)

	// Pivot moves the box relative to the transform origin; everything
	// inside the scaled frame is measured against box.W/scale, box.H/scale.
	pv := pivotOffset(opt.Pivot, box)
	base := transform.
		Mul(Mat4Translate(pv.X, -pv.Y, 0)).
		Mul(Mat4Scale(scale, scale, 1))

	boxW := box.W / scale
	boxH := box.H / scale

	var yShift float32
	switch opt.AlignY {
	case AlignMiddle:
		yShift = (boxH - blockH*size) / 2
	case AlignBottom:
		yShift = boxH - blockH*size
	}

	packed := color.Packed()
	for i, ln := range lines {
		var xShift float32
		switch opt.AlignX {
		case AlignCenter:
			xShift = (boxW - ln.width*size) / 2
		case AlignRight:
			xShift = boxW - ln.width*size
		}
		down := yShift + float32(i)*lineH*size + c.font.ascent*size - opt.Scroll.Y
		for _, pg := range ln.glyphs {
			x := xShift + pg.x*size + opt.Scroll.X
			if opt.Fit == FitClip && x > boxW {
				continue
			}
			if c.font.glyphs[pg.glyph].CurveCount == 0 {
				continue
			}
			world := base.
				Mul(Mat4Translate(x, -down, 0)).
				Mul(Mat4Scale(size, size, 1))
			c.emit(world, pg.glyph, packed)
		}
	}
	return Vec2{X: maxLineW * size * scale, Y: blockH * size * scale}
}

// emit appends one instance unless the frame cap is reached.
func (c *Context) emit(world Mat4, glyph int32, packed uint32) {
	if len(c.instances) == MaxInstances {
		return
	}
	c.instances = append(c.instances, Instance{
		Pos:        world.translation(),
		GlyphIndex: uint32(glyph),
		Right:      world.right(),
		Color:      packed,
		Up:         world.up(),
	})
}

// Render syncs the font's buffers, binds them and enqueues one instanced
// draw of the staged text. A sync failure skips the draw for this frame.
func (c *Context) Render(list render.RenderList) {
	if len(c.instances) == 0 {
		return
	}
	if !c.font.Valid() {
		return
	}
	if err := c.font.sync(); err != nil {
		slogger().Warn("text buffer sync failed", "err", err)
		return
	}
	if c.font.glyphBuf == nil {
		return
	}
	if c.font.curveBuf != nil {
		c.material.BindStorageBuffer("curves", c.font.curveBuf)
	}
	c.material.BindStorageBuffer("glyphs", c.font.glyphBuf)
	list.AddInstanced(c.mesh, c.shader, c.material, encodeInstances(c.instances), InstanceByteSize, len(c.instances))
}
