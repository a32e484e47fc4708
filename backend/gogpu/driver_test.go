package gogpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/vectortext"
	"github.com/gogpu/vectortext/render"
)

func TestInstanceStrideMatchesRecord(t *testing.T) {
	if instanceStride != vectortext.InstanceByteSize {
		t.Errorf("instanceStride = %d, want %d", instanceStride, vectortext.InstanceByteSize)
	}
}

func TestGlyphVertexLayout(t *testing.T) {
	layouts := glyphVertexLayout()
	if len(layouts) != 2 {
		t.Fatalf("layouts = %d, want 2", len(layouts))
	}

	quad := layouts[0]
	if quad.ArrayStride != quadVertexStride || quad.StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("quad stream stride/step = %d/%v", quad.ArrayStride, quad.StepMode)
	}

	inst := layouts[1]
	if inst.ArrayStride != instanceStride || inst.StepMode != gputypes.VertexStepModeInstance {
		t.Errorf("instance stream stride/step = %d/%v", inst.ArrayStride, inst.StepMode)
	}
	wantOffsets := []uint64{0, 12, 16, 28, 32}
	if len(inst.Attributes) != len(wantOffsets) {
		t.Fatalf("instance attributes = %d, want %d", len(inst.Attributes), len(wantOffsets))
	}
	locations := map[uint64]bool{}
	for i, attr := range inst.Attributes {
		if uint64(attr.Offset) != wantOffsets[i] {
			t.Errorf("attribute %d offset = %d, want %d", i, attr.Offset, wantOffsets[i])
		}
		loc := uint64(attr.ShaderLocation)
		if locations[loc] {
			t.Errorf("duplicate shader location %d", loc)
		}
		locations[loc] = true
	}
}

func TestEncodeVertices(t *testing.T) {
	verts := []render.Vertex{
		{Pos: [2]float32{0, 1}, UV: [2]float32{0.5, 0.25}},
	}
	data := encodeVertices(verts)
	if len(data) != quadVertexStride {
		t.Fatalf("len = %d, want %d", len(data), quadVertexStride)
	}
	f32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	}
	if f32(4) != 1 {
		t.Errorf("pos.y = %v, want 1", f32(4))
	}
	if f32(8) != 0.5 || f32(12) != 0.25 {
		t.Errorf("uv = %v, %v, want 0.5, 0.25", f32(8), f32(12))
	}
}

func TestEncodeIndicesPadding(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint16
		wantLen int
	}{
		{"even count", []uint16{0, 1, 2, 2, 3, 0}, 12},
		{"odd count padded", []uint16{0, 1, 2}, 8},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encodeIndices(tt.indices)
			if len(data) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(data), tt.wantLen)
			}
			for i, idx := range tt.indices {
				if got := binary.LittleEndian.Uint16(data[i*2:]); got != idx {
					t.Errorf("index %d = %d, want %d", i, got, idx)
				}
			}
		})
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil, nil); err != ErrNilDevice {
		t.Errorf("New(nil, nil) error = %v, want %v", err, ErrNilDevice)
	}
}
