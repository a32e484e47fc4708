package gogpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vectortext/render"
)

// Driver errors.
var (
	// ErrNilDevice is returned when creating a driver without a device.
	ErrNilDevice = errors.New("gogpu: device is nil")

	// ErrNilQueue is returned when creating a driver without a queue.
	ErrNilQueue = errors.New("gogpu: queue is nil")

	// ErrNoHALProvider is returned when a device provider does not expose
	// HAL types.
	ErrNoHALProvider = errors.New("gogpu: provider does not expose HAL types")
)

// Driver implements render.Driver on a wgpu HAL device.
//
// Destroyed resources are held until EndFrame so in-flight command buffers
// keep valid references. The host must call EndFrame once per frame after
// queue submission.
type Driver struct {
	device hal.Device
	queue  hal.Queue

	retired      []hal.Buffer
	retiredBinds []hal.BindGroup
}

// New creates a driver on an existing device and queue.
func New(device hal.Device, queue hal.Queue) (*Driver, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}
	return &Driver{device: device, queue: queue}, nil
}

// NewFromProvider unwraps a host device provider. The provider must
// implement HalDevice() any and HalQueue() any returning wgpu/hal types.
func NewFromProvider(provider render.DeviceHandle) (*Driver, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}
	return New(device, queue)
}

// Device returns the underlying HAL device.
func (d *Driver) Device() hal.Device { return d.device }

// Queue returns the underlying HAL queue.
func (d *Driver) Queue() hal.Queue { return d.queue }

// buffer is a storage buffer with its shader-side element stride.
type buffer struct {
	buf      hal.Buffer
	size     uint64
	elemSize int
}

func (b *buffer) Size() uint64 { return b.size }

// mesh pairs a vertex buffer with a uint16 index buffer.
type mesh struct {
	vertBuf    hal.Buffer
	idxBuf     hal.Buffer
	indexCount int
}

func (m *mesh) IndexCount() int { return m.indexCount }

func (d *Driver) CreateStorageBuffer(label string, data []byte, elemSize int) (render.Buffer, error) {
	buf, err := d.createAndUploadBuffer(label, data,
		gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	return &buffer{buf: buf, size: uint64(len(data)), elemSize: elemSize}, nil
}

func (d *Driver) DestroyBuffer(buf render.Buffer) {
	b, ok := buf.(*buffer)
	if !ok || b.buf == nil {
		return
	}
	d.retired = append(d.retired, b.buf)
	b.buf = nil
}

func (d *Driver) CreateMesh(label string, verts []render.Vertex, indices []uint16) (render.Mesh, error) {
	vertBuf, err := d.createAndUploadBuffer(label+"_verts", encodeVertices(verts),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	idxBuf, err := d.createAndUploadBuffer(label+"_indices", encodeIndices(indices),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		d.device.DestroyBuffer(vertBuf)
		return nil, err
	}
	return &mesh{vertBuf: vertBuf, idxBuf: idxBuf, indexCount: len(indices)}, nil
}

func (d *Driver) DestroyMesh(m render.Mesh) {
	mm, ok := m.(*mesh)
	if !ok {
		return
	}
	if mm.vertBuf != nil {
		d.retired = append(d.retired, mm.vertBuf)
		mm.vertBuf = nil
	}
	if mm.idxBuf != nil {
		d.retired = append(d.retired, mm.idxBuf)
		mm.idxBuf = nil
	}
}

// EndFrame releases resources retired during the frame. Call after the
// frame's command buffers are submitted.
func (d *Driver) EndFrame() {
	for _, bg := range d.retiredBinds {
		d.device.DestroyBindGroup(bg)
	}
	d.retiredBinds = d.retiredBinds[:0]
	for _, buf := range d.retired {
		d.device.DestroyBuffer(buf)
	}
	d.retired = d.retired[:0]
}

func (d *Driver) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	d.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

func encodeVertices(verts []render.Vertex) []byte {
	out := make([]byte, 0, len(verts)*16)
	for _, v := range verts {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v.Pos[0]))
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v.Pos[1]))
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v.UV[0]))
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v.UV[1]))
	}
	return out
}

func encodeIndices(indices []uint16) []byte {
	out := make([]byte, 0, (len(indices)*2+3)&^3)
	for _, i := range indices {
		out = binary.LittleEndian.AppendUint16(out, i)
	}
	// WriteBuffer sizes must be 4-byte aligned.
	for len(out)%4 != 0 {
		out = append(out, 0)
	}
	return out
}
