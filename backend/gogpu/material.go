package gogpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vectortext/render"
)

// Material holds the storage buffer bindings for one draw stream. The
// bind group is rebuilt lazily when a binding changes; the stale group is
// retired so in-flight frames keep theirs.
type Material struct {
	drv *Driver

	curves *buffer
	glyphs *buffer

	bindGroup hal.BindGroup
	dirty     bool
}

// NewMaterial creates an empty material on the driver.
func NewMaterial(d *Driver) *Material {
	return &Material{drv: d}
}

// BindStorageBuffer attaches buf under name. Known names are "curves"
// and "glyphs"; others are ignored.
func (m *Material) BindStorageBuffer(name string, buf render.Buffer) {
	b, _ := buf.(*buffer)
	switch name {
	case "curves":
		if m.curves != b {
			m.curves = b
			m.dirty = true
		}
	case "glyphs":
		if m.glyphs != b {
			m.glyphs = b
			m.dirty = true
		}
	}
}

// Destroy retires the material's bind group.
func (m *Material) Destroy() {
	if m.bindGroup != nil {
		m.drv.retiredBinds = append(m.drv.retiredBinds, m.bindGroup)
		m.bindGroup = nil
	}
}

// ensureBindGroup builds the bind group against the pipeline's layout.
// A missing curves binding gets the glyph buffer as a zero-read stand-in
// so the layout stays satisfied.
func (m *Material) ensureBindGroup(p *Pipeline) (hal.BindGroup, error) {
	if m.bindGroup != nil && !m.dirty {
		return m.bindGroup, nil
	}
	if m.glyphs == nil || m.glyphs.buf == nil {
		return nil, fmt.Errorf("gogpu: material has no glyph buffer bound")
	}
	curves := m.curves
	if curves == nil || curves.buf == nil {
		curves = m.glyphs
	}
	bg, err := m.drv.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "glyph_bind",
		Layout: p.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: curves.buf.NativeHandle(), Offset: 0, Size: curves.size,
			}},
			{Binding: 1, Resource: gputypes.BufferBinding{
				Buffer: m.glyphs.buf.NativeHandle(), Offset: 0, Size: m.glyphs.size,
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create glyph bind group: %w", err)
	}
	if m.bindGroup != nil {
		m.drv.retiredBinds = append(m.drv.retiredBinds, m.bindGroup)
	}
	m.bindGroup = bg
	m.dirty = false
	return bg, nil
}
