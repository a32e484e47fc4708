package gogpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vectortext/render"
)

// List accumulates instanced draws and replays them into a render pass.
// Per-frame instance buffers are created at enqueue time and retired when
// the driver ends the frame.
type List struct {
	drv   *Driver
	draws []listDraw
}

type listDraw struct {
	mesh     *mesh
	pipe     *Pipeline
	mat      *Material
	instBuf  hal.Buffer
	instSize uint64
	count    int
}

// NewList creates an empty render list on the driver.
func NewList(d *Driver) *List {
	return &List{drv: d}
}

func (l *List) AddInstanced(m render.Mesh, shader render.Shader, material render.Material, instances []byte, stride, count int) {
	mm, ok := m.(*mesh)
	if !ok || count == 0 {
		return
	}
	pipe, ok := shader.(*Pipeline)
	if !ok {
		return
	}
	mat, ok := material.(*Material)
	if !ok {
		return
	}
	if stride != instanceStride || len(instances) < stride*count {
		return
	}
	instBuf, err := l.drv.createAndUploadBuffer("glyph_instances", instances[:stride*count],
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return
	}
	l.draws = append(l.draws, listDraw{
		mesh:     mm,
		pipe:     pipe,
		mat:      mat,
		instBuf:  instBuf,
		instSize: uint64(stride * count),
		count:    count,
	})
}

// Flush records every queued draw into the render pass, then clears the
// list. Instance buffers are retired to the driver for end-of-frame
// destruction.
func (l *List) Flush(rp hal.RenderPassEncoder) error {
	defer l.reset()
	for i := range l.draws {
		d := &l.draws[i]
		bg, err := d.mat.ensureBindGroup(d.pipe)
		if err != nil {
			return fmt.Errorf("flush draw %d: %w", i, err)
		}
		rp.SetPipeline(d.pipe.pipeline)
		rp.SetBindGroup(0, bg, nil)
		rp.SetVertexBuffer(0, d.mesh.vertBuf, 0)
		rp.SetVertexBuffer(1, d.instBuf, 0)
		rp.SetIndexBuffer(d.mesh.idxBuf, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(uint32(d.mesh.indexCount), uint32(d.count), 0, 0, 0)
	}
	return nil
}

func (l *List) reset() {
	for i := range l.draws {
		l.drv.retired = append(l.drv.retired, l.draws[i].instBuf)
	}
	l.draws = l.draws[:0]
}
