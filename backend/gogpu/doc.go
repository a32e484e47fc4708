// Package gogpu implements the render contract on a wgpu HAL device. It
// compiles the glyph shader from embedded WGSL through naga, owns the
// render pipeline and bind group layout, and defers buffer destruction
// until the frame that may reference them has been submitted.
//
// The device and queue come from the host application, either directly
// or through a gpucontext device provider; the backend never creates its
// own device.
package gogpu
