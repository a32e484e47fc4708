// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
)

// DeviceHandle is the host-provided GPU device wrapper backends unwrap to
// reach the underlying device and queue.
type DeviceHandle = gpucontext.DeviceProvider

// Vertex is one corner of the unit quad expanded per glyph instance.
type Vertex struct {
	Pos [2]float32
	UV  [2]float32
}

// Buffer is a device-resident storage buffer.
type Buffer interface {
	// Size returns the buffer's byte length.
	Size() uint64
}

// Mesh is an indexed vertex buffer pair.
type Mesh interface {
	// IndexCount returns the number of indices drawn per instance.
	IndexCount() int
}

// Shader identifies a compiled pipeline. Its concrete type belongs to the
// backend that produced it.
type Shader any

// Material binds a shader together with its resource bindings.
type Material interface {
	// BindStorageBuffer attaches buf under the named binding. Rebinding a
	// name replaces the previous buffer starting with the next draw.
	BindStorageBuffer(name string, buf Buffer)
}

// RenderList accumulates draws for the current frame.
type RenderList interface {
	// AddInstanced queues count instances of mesh drawn with shader and
	// material. The instance data is raw per-instance bytes at the given
	// stride; the list owns the upload and may copy the slice.
	AddInstanced(mesh Mesh, shader Shader, material Material, instances []byte, stride int, count int)
}

// Driver creates and destroys GPU resources. Destroy calls must be safe
// while the resource may still be referenced by in-flight frames; drivers
// defer the actual release until the frame completes.
type Driver interface {
	// CreateStorageBuffer uploads data into a new read-only storage
	// buffer. The element size is the shader-side struct stride.
	CreateStorageBuffer(label string, data []byte, elemSize int) (Buffer, error)

	// DestroyBuffer releases a buffer created by CreateStorageBuffer.
	DestroyBuffer(buf Buffer)

	// CreateMesh uploads an indexed mesh.
	CreateMesh(label string, verts []Vertex, indices []uint16) (Mesh, error)

	// DestroyMesh releases a mesh created by CreateMesh.
	DestroyMesh(mesh Mesh)
}
