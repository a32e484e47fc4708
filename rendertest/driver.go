// Package rendertest provides an in-memory render.Driver for tests. It
// records every resource operation, retains uploaded bytes, and tracks
// live resources so tests can assert on buffer contents and lifetimes
// without a GPU.
package rendertest

import (
	"fmt"
	"sync"

	"github.com/gogpu/vectortext/render"
)

// Buffer is a recorded storage buffer upload.
type Buffer struct {
	Label    string
	Data     []byte
	ElemSize int

	destroyed bool
}

// Size returns the byte length of the uploaded data.
func (b *Buffer) Size() uint64 { return uint64(len(b.Data)) }

// Destroyed reports whether the driver has released the buffer.
func (b *Buffer) Destroyed() bool { return b.destroyed }

// Mesh is a recorded mesh upload.
type Mesh struct {
	Label   string
	Verts   []render.Vertex
	Indices []uint16

	destroyed bool
}

// IndexCount returns the number of uploaded indices.
func (m *Mesh) IndexCount() int { return len(m.Indices) }

// Destroyed reports whether the driver has released the mesh.
func (m *Mesh) Destroyed() bool { return m.destroyed }

// Material records storage buffer bindings by name.
type Material struct {
	mu       sync.Mutex
	bindings map[string]render.Buffer
}

// NewMaterial returns an empty recording material.
func NewMaterial() *Material {
	return &Material{bindings: make(map[string]render.Buffer)}
}

func (m *Material) BindStorageBuffer(name string, buf render.Buffer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings[name] = buf
}

// Binding returns the buffer bound under name, or nil.
func (m *Material) Binding(name string) render.Buffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bindings[name]
}

// Draw is one recorded instanced draw.
type Draw struct {
	Mesh      render.Mesh
	Shader    render.Shader
	Material  render.Material
	Instances []byte
	Stride    int
	Count     int
}

// List records instanced draws in submission order.
type List struct {
	Draws []Draw
}

func (l *List) AddInstanced(mesh render.Mesh, shader render.Shader, material render.Material, instances []byte, stride, count int) {
	data := make([]byte, len(instances))
	copy(data, instances)
	l.Draws = append(l.Draws, Draw{
		Mesh:      mesh,
		Shader:    shader,
		Material:  material,
		Instances: data,
		Stride:    stride,
		Count:     count,
	})
}

// Driver implements render.Driver in memory.
type Driver struct {
	Buffers []*Buffer
	Meshes  []*Mesh

	// FailBuffers makes CreateStorageBuffer return an error.
	FailBuffers bool
}

// New returns a fresh recording driver.
func New() *Driver { return &Driver{} }

func (d *Driver) CreateStorageBuffer(label string, data []byte, elemSize int) (render.Buffer, error) {
	if d.FailBuffers {
		return nil, fmt.Errorf("rendertest: buffer creation disabled")
	}
	owned := make([]byte, len(data))
	copy(owned, data)
	b := &Buffer{Label: label, Data: owned, ElemSize: elemSize}
	d.Buffers = append(d.Buffers, b)
	return b, nil
}

func (d *Driver) DestroyBuffer(buf render.Buffer) {
	if b, ok := buf.(*Buffer); ok {
		b.destroyed = true
	}
}

func (d *Driver) CreateMesh(label string, verts []render.Vertex, indices []uint16) (render.Mesh, error) {
	m := &Mesh{
		Label:   label,
		Verts:   append([]render.Vertex(nil), verts...),
		Indices: append([]uint16(nil), indices...),
	}
	d.Meshes = append(d.Meshes, m)
	return m, nil
}

func (d *Driver) DestroyMesh(mesh render.Mesh) {
	if m, ok := mesh.(*Mesh); ok {
		m.destroyed = true
	}
}

// LiveBuffers returns the buffers not yet destroyed.
func (d *Driver) LiveBuffers() []*Buffer {
	var live []*Buffer
	for _, b := range d.Buffers {
		if !b.destroyed {
			live = append(live, b)
		}
	}
	return live
}
