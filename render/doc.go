// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the graphics contract between the text pipeline
// and a GPU backend. The pipeline never talks to a device directly; it
// creates buffers and meshes through a Driver, binds storage buffers on a
// Material, and appends instanced draws to a RenderList. Backends adapt
// these interfaces to a concrete API; see the gogpu backend for the
// reference implementation and rendertest for an in-memory double.
package render
