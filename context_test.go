package vectortext

import (
	"strings"
	"testing"

	"github.com/gogpu/vectortext/rendertest"
)

type fakeShader struct{}

func newFakeContext(t *testing.T) (*Context, *Font, *rendertest.Driver, *rendertest.Material) {
	t.Helper()
	f, drv := loadFakeFont(t)
	mat := rendertest.NewMaterial()
	ctx, err := NewContext(f, fakeShader{}, mat)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	t.Cleanup(ctx.Destroy)
	return ctx, f, drv, mat
}

var white = Color{1, 1, 1, 1}

func TestNewContextErrors(t *testing.T) {
	if _, err := NewContext(nil, fakeShader{}, rendertest.NewMaterial()); err != ErrNilFont {
		t.Errorf("NewContext(nil font) error = %v, want %v", err, ErrNilFont)
	}
	f, _ := loadFakeFont(t)
	f.Destroy()
	if _, err := NewContext(f, fakeShader{}, rendertest.NewMaterial()); err != ErrFontDestroyed {
		t.Errorf("NewContext(destroyed font) error = %v, want %v", err, ErrFontDestroyed)
	}
}

func TestContextQuadMesh(t *testing.T) {
	_, _, drv, _ := newFakeContext(t)
	if len(drv.Meshes) != 1 {
		t.Fatalf("meshes = %d, want 1", len(drv.Meshes))
	}
	m := drv.Meshes[0]
	if m.IndexCount() != 6 {
		t.Errorf("index count = %d, want 6", m.IndexCount())
	}
	if len(m.Verts) != 4 {
		t.Errorf("vertices = %d, want 4", len(m.Verts))
	}
}

func TestAddEmpty(t *testing.T) {
	ctx, _, _, _ := newFakeContext(t)
	ctx.Add("", Mat4Identity(), 1, white, AlignLeft)
	if got := ctx.InstanceCount(); got != 0 {
		t.Errorf("instance count = %d, want 0", got)
	}
}

func TestAddSingleGlyph(t *testing.T) {
	ctx, f, _, _ := newFakeContext(t)
	ctx.Add("A", Mat4Identity(), 1, white, AlignLeft)
	if got := ctx.InstanceCount(); got != 1 {
		t.Fatalf("instance count = %d, want 1", got)
	}
	in := ctx.instances[0]
	if in.Pos != (Vec3{0, 0, 0}) {
		t.Errorf("pos = %v, want origin", in.Pos)
	}
	if in.Right != (Vec3{1, 0, 0}) {
		t.Errorf("right = %v, want {1 0 0}", in.Right)
	}
	if in.Up != (Vec3{0, 1, 0}) {
		t.Errorf("up = %v, want {0 1 0}", in.Up)
	}
	if in.Color != 0xFFFFFFFF {
		t.Errorf("color = %#08x, want 0xFFFFFFFF", in.Color)
	}
	if in.GlyphIndex != uint32(f.glyphFor('A')) {
		t.Errorf("glyph index = %d, want %d", in.GlyphIndex, f.glyphFor('A'))
	}
}

func TestAddAlignment(t *testing.T) {
	tests := []struct {
		name  string
		align Align
		wantX []float32
	}{
		{"left", AlignLeft, []float32{0, fakeAdvA, 2 * fakeAdvA, 3 * fakeAdvA}},
		{"center", AlignCenter, []float32{-2 * fakeAdvA, -fakeAdvA, 0, fakeAdvA}},
		{"right", AlignRight, []float32{-4 * fakeAdvA, -3 * fakeAdvA, -2 * fakeAdvA, -fakeAdvA}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _, _, _ := newFakeContext(t)
			ctx.Add("AAAA", Mat4Identity(), 1, white, tt.align)
			if got := ctx.InstanceCount(); got != 4 {
				t.Fatalf("instance count = %d, want 4", got)
			}
			for i, want := range tt.wantX {
				if got := ctx.instances[i].Pos.X; !approx32(got, want, 1e-6) {
					t.Errorf("instance %d x = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestAddSpaceAdvancesWithoutInstance(t *testing.T) {
	ctx, _, _, _ := newFakeContext(t)
	ctx.Add("A A", Mat4Identity(), 1, white, AlignLeft)
	if got := ctx.InstanceCount(); got != 2 {
		t.Fatalf("instance count = %d, want 2", got)
	}
	wantX := fakeAdvA + fakeAdvSp
	if got := ctx.instances[1].Pos.X; !approx32(got, wantX, 1e-6) {
		t.Errorf("second instance x = %v, want %v", got, wantX)
	}
}

func TestAddKerning(t *testing.T) {
	ctx, _, _, _ := newFakeContext(t)
	ctx.Add("AV", Mat4Identity(), 1, white, AlignLeft)
	if got := ctx.InstanceCount(); got != 2 {
		t.Fatalf("instance count = %d, want 2", got)
	}
	wantX := fakeAdvA + fakeKernN
	if got := ctx.instances[1].Pos.X; !approx32(got, wantX, 1e-6) {
		t.Errorf("kerned x = %v, want %v", got, wantX)
	}
}

func TestAddMissingCodepoint(t *testing.T) {
	ctx, f, _, _ := newFakeContext(t)
	ctx.Add("π", Mat4Identity(), 1, white, AlignLeft)
	if got := ctx.InstanceCount(); got != 0 {
		t.Errorf("instance count = %d, want 0", got)
	}
	grown := len(f.glyphs)
	ctx.Add("π", Mat4Identity(), 1, white, AlignLeft)
	if len(f.glyphs) != grown {
		t.Errorf("repeat add grew the glyph array")
	}
}

func TestAddTransformAndSize(t *testing.T) {
	ctx, _, _, _ := newFakeContext(t)
	ctx.Add("AA", Mat4Translate(10, 5, 0), 2, white, AlignLeft)
	if got := ctx.InstanceCount(); got != 2 {
		t.Fatalf("instance count = %d, want 2", got)
	}
	first := ctx.instances[0]
	if first.Pos != (Vec3{10, 5, 0}) {
		t.Errorf("pos = %v, want {10 5 0}", first.Pos)
	}
	if first.Right != (Vec3{2, 0, 0}) || first.Up != (Vec3{0, 2, 0}) {
		t.Errorf("basis = %v, %v, want scaled by 2", first.Right, first.Up)
	}
	second := ctx.instances[1]
	if want := 10 + 2*fakeAdvA; !approx32(second.Pos.X, want, 1e-5) {
		t.Errorf("second x = %v, want %v", second.Pos.X, want)
	}
}

func TestAddUTF16(t *testing.T) {
	ctx, _, _, _ := newFakeContext(t)
	ctx.AddUTF16([]uint16{'A', 'V', 0, 'A'}, Mat4Identity(), 1, white, AlignLeft)
	if got := ctx.InstanceCount(); got != 2 {
		t.Errorf("instance count = %d, want 2 (terminated at zero unit)", got)
	}
}

func TestInstanceCap(t *testing.T) {
	ctx, _, _, _ := newFakeContext(t)
	text := strings.Repeat("A", MaxInstances+100)
	ctx.Add(text, Mat4Identity(), 1, white, AlignLeft)
	if got := ctx.InstanceCount(); got != MaxInstances {
		t.Errorf("instance count = %d, want cap %d", got, MaxInstances)
	}
	// Further adds are dropped too.
	ctx.Add("A", Mat4Identity(), 1, white, AlignLeft)
	if got := ctx.InstanceCount(); got != MaxInstances {
		t.Errorf("instance count after extra add = %d, want %d", got, MaxInstances)
	}
	ctx.Clear()
	if got := ctx.InstanceCount(); got != 0 {
		t.Errorf("instance count after Clear = %d, want 0", got)
	}
}

func TestAddInDefault(t *testing.T) {
	ctx, _, _, _ := newFakeContext(t)
	size := ctx.AddIn("A", Box{W: 10, H: 10}, Mat4Identity(), 1, white, BoxOptions{})
	if got := ctx.InstanceCount(); got != 1 {
		t.Fatalf("instance count = %d, want 1", got)
	}
	in := ctx.instances[0]
	// First baseline sits one ascent below the box top.
	if !approx32(in.Pos.X, 0, 1e-6) || !approx32(in.Pos.Y, -1, 1e-6) {
		t.Errorf("pos = %v, want {0 -1 0}", in.Pos)
	}
	if !approx32(size.X, fakeAdvA, 1e-6) || !approx32(size.Y, fakeLineH, 1e-6) {
		t.Errorf("rendered size = %v, want {%v %v}", size, fakeAdvA, fakeLineH)
	}
}

func TestAddInSqueeze(t *testing.T) {
	ctx, _, _, _ := newFakeContext(t)
	// Natural size 1.5 x 1.375 in a 0.75 x 10 box: width drives the
	// scale to 0.5.
	size := ctx.AddIn("AA", Box{W: 0.75, H: 10}, Mat4Identity(), 1, white, BoxOptions{Fit: FitSqueeze})
	if got := ctx.InstanceCount(); got != 2 {
		t.Fatalf("instance count = %d, want 2", got)
	}
	if !approx32(size.X, 0.75, 1e-5) {
		t.Errorf("rendered width = %v, want 0.75", size.X)
	}
	in := ctx.instances[0]
	if !approx32(in.Right.X, 0.5, 1e-5) {
		t.Errorf("right.x = %v, want 0.5", in.Right.X)
	}
	second := ctx.instances[1]
	if want := 0.5 * fakeAdvA; !approx32(second.Pos.X, want, 1e-5) {
		t.Errorf("second x = %v, want %v", second.Pos.X, want)
	}
}

func TestAddInExactGrows(t *testing.T) {
	ctx, _, _, _ := newFakeContext(t)
	// Natural 0.75 x 1.375; exact fit against a tall box doubles it.
	size := ctx.AddIn("A", Box{W: 1.5, H: 100}, Mat4Identity(), 1, white, BoxOptions{Fit: FitExact})
	if !approx32(size.X, 1.5, 1e-5) {
		t.Errorf("rendered width = %v, want 1.5", size.X)
	}
	if got := ctx.instances[0].Right.X; !approx32(got, 2, 1e-5) {
		t.Errorf("right.x = %v, want 2", got)
	}
}

func TestAddInWrap(t *testing.T) {
	ctx, _, _, _ := newFakeContext(t)
	// Two glyphs per line.
	ctx.AddIn("AAAA", Box{W: 2 * fakeAdvA, H: 10}, Mat4Identity(), 1, white, BoxOptions{Fit: FitWrap})
	if got := ctx.InstanceCount(); got != 4 {
		t.Fatalf("instance count = %d, want 4", got)
	}
	// Second line drops one line height below the first.
	firstY := ctx.instances[0].Pos.Y
	thirdY := ctx.instances[2].Pos.Y
	if want := firstY - fakeLineH; !approx32(thirdY, want, 1e-5) {
		t.Errorf("second line y = %v, want %v", thirdY, want)
	}
	if !approx32(ctx.instances[2].Pos.X, 0, 1e-6) {
		t.Errorf("second line starts at x = %v, want 0", ctx.instances[2].Pos.X)
	}
}

func TestAddInClip(t *testing.T) {
	ctx, _, _, _ := newFakeContext(t)
	// Box fits two advances; the third glyph's leading edge is outside.
	ctx.AddIn("AAAA", Box{W: 2.2 * fakeAdvA, H: 10}, Mat4Identity(), 1, white, BoxOptions{Fit: FitClip})
	if got := ctx.InstanceCount(); got != 3 {
		t.Errorf("instance count = %d, want 3 (leading edges within the box)", got)
	}
}

func TestAddInOverflow(t *testing.T) {
	ctx, _, _, _ := newFakeContext(t)
	ctx.AddIn("AAAA", Box{W: fakeAdvA, H: 10}, Mat4Identity(), 1, white, BoxOptions{Fit: FitOverflow})
	if got := ctx.InstanceCount(); got != 4 {
		t.Errorf("instance count = %d, want all 4", got)
	}
}

func TestAddInPivotAndAlign(t *testing.T) {
	ctx, _, _, _ := newFakeContext(t)
	box := Box{W: 4, H: 2}
	ctx.AddIn("A", box, Mat4Identity(), 1, white, BoxOptions{
		Pivot:  Pivot{X: AlignCenter, Y: AlignMiddle},
		AlignX: AlignRight,
		AlignY: AlignBottom,
	})
	if got := ctx.InstanceCount(); got != 1 {
		t.Fatalf("instance count = %d, want 1", got)
	}
	in := ctx.instances[0]
	// Pivot center: box spans [-2, 2] x [1, -1]. Right-aligned glyph
	// starts at box right minus its width; bottom-aligned baseline sits
	// ascent below the block top at box bottom minus block height.
	wantX := float32(-2 + 4 - fakeAdvA)
	if !approx32(in.Pos.X, wantX, 1e-5) {
		t.Errorf("pos.x = %v, want %v", in.Pos.X, wantX)
	}
	// y: pivot middle lifts the box top to +1; bottom alignment pushes
	// the block down by box.H - lineH; baseline is ascent below block top.
	wantBaseY := float32(1) - (2 - fakeLineH) - 1
	if !approx32(in.Pos.Y, wantBaseY, 1e-5) {
		t.Errorf("pos.y = %v, want %v", in.Pos.Y, wantBaseY)
	}
}

func TestAddInScroll(t *testing.T) {
	ctx, _, _, _ := newFakeContext(t)
	ctx.AddIn("A", Box{W: 10, H: 10}, Mat4Identity(), 1, white, BoxOptions{
		Scroll: Vec2{0.5, 2},
	})
	in := ctx.instances[0]
	if !approx32(in.Pos.X, 0.5, 1e-6) {
		t.Errorf("scrolled x = %v, want 0.5", in.Pos.X)
	}
	if !approx32(in.Pos.Y, 1, 1e-6) {
		t.Errorf("scrolled y = %v, want 1", in.Pos.Y)
	}
}

func TestRender(t *testing.T) {
	ctx, f, drv, mat := newFakeContext(t)
	list := &rendertest.List{}

	// Nothing staged: no draw, no buffers.
	ctx.Render(list)
	if len(list.Draws) != 0 {
		t.Fatalf("draws = %d, want 0", len(list.Draws))
	}

	ctx.Add("AV A", Mat4Identity(), 1, white, AlignLeft)
	want := ctx.InstanceCount()
	ctx.Render(list)
	if len(list.Draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(list.Draws))
	}
	d := list.Draws[0]
	if d.Count != want {
		t.Errorf("draw count = %d, want %d", d.Count, want)
	}
	if d.Stride != InstanceByteSize {
		t.Errorf("stride = %d, want %d", d.Stride, InstanceByteSize)
	}
	if len(d.Instances) != want*InstanceByteSize {
		t.Errorf("instance bytes = %d, want %d", len(d.Instances), want*InstanceByteSize)
	}
	if d.Mesh != ctx.mesh {
		t.Errorf("draw mesh is not the context quad")
	}

	curves := mat.Binding("curves")
	glyphs := mat.Binding("glyphs")
	if curves == nil || glyphs == nil {
		t.Fatal("storage buffers not bound")
	}
	if uint64(len(f.curves)*CurveByteSize) != curves.Size() {
		t.Errorf("curves binding size = %d, want %d", curves.Size(), len(f.curves)*CurveByteSize)
	}
	if uint64(len(f.glyphs)*GlyphByteSize) != glyphs.Size() {
		t.Errorf("glyphs binding size = %d, want %d", glyphs.Size(), len(f.glyphs)*GlyphByteSize)
	}

	// Instances survive Render; a second Render draws again without a
	// fresh upload.
	before := len(drv.Buffers)
	ctx.Render(list)
	if len(list.Draws) != 2 {
		t.Errorf("draws = %d, want 2", len(list.Draws))
	}
	if len(drv.Buffers) != before {
		t.Errorf("clean re-render recreated font buffers")
	}
}

func TestRenderSyncFailure(t *testing.T) {
	ctx, _, drv, _ := newFakeContext(t)
	ctx.Add("A", Mat4Identity(), 1, white, AlignLeft)
	drv.FailBuffers = true
	list := &rendertest.List{}
	ctx.Render(list)
	if len(list.Draws) != 0 {
		t.Errorf("draws = %d, want 0 after sync failure", len(list.Draws))
	}
	drv.FailBuffers = false
	ctx.Render(list)
	if len(list.Draws) != 1 {
		t.Errorf("draws = %d, want 1 after recovery", len(list.Draws))
	}
}
