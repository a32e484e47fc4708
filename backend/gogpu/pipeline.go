package gogpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/glyph.wgsl
var glyphShaderSource string

// quadVertexStride is the byte size of one quad vertex (pos + uv).
const quadVertexStride = 16

// instanceStride is the byte size of one glyph instance record. The
// attribute offsets in instanceVertexLayout and the struct layout in
// glyph.wgsl both depend on it.
const instanceStride = 48

// PipelineConfig selects the render target properties the pipeline is
// built against.
type PipelineConfig struct {
	// Format is the color target format. Default BGRA8Unorm.
	Format gputypes.TextureFormat

	// SampleCount is the MSAA sample count. Default 4. Alpha-to-coverage
	// is enabled whenever SampleCount > 1, which is what turns the
	// shader's binary coverage into antialiased edges.
	SampleCount uint32
}

func (c *PipelineConfig) applyDefaults() {
	if c.Format == 0 {
		c.Format = gputypes.TextureFormatBGRA8Unorm
	}
	if c.SampleCount == 0 {
		c.SampleCount = 4
	}
}

// Pipeline is the glyph render pipeline. It satisfies render.Shader and
// owns the shader module, layouts and pipeline object.
type Pipeline struct {
	device hal.Device

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// NewPipeline compiles the glyph shader and builds the render pipeline.
func NewPipeline(d *Driver, cfg PipelineConfig) (*Pipeline, error) {
	cfg.applyDefaults()
	p := &Pipeline{device: d.device}
	if err := p.create(cfg); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *Pipeline) create(cfg PipelineConfig) error {
	spirv, err := compileToSPIRV(glyphShaderSource)
	if err != nil {
		return fmt.Errorf("compile glyph shader: %w", err)
	}
	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "glyph_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("create glyph shader module: %w", err)
	}
	p.shader = shader

	// Binding 0: curve array. Binding 1: glyph array. The vertex stage
	// reads glyph bounds, the fragment stage walks bands and curves.
	bindLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "glyph_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create glyph bind layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "glyph_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create glyph pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "glyph_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    glyphVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    cfg.Format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count:                  cfg.SampleCount,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: cfg.SampleCount > 1,
		},
	})
	if err != nil {
		return fmt.Errorf("create glyph pipeline: %w", err)
	}
	p.pipeline = pipeline
	return nil
}

// Destroy releases all pipeline resources in reverse creation order. Safe
// to call multiple times.
func (p *Pipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// glyphVertexLayout describes the two vertex streams: the shared unit
// quad and the per-glyph instance records.
func glyphVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: quadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // uv
			},
		},
		{
			ArrayStride: instanceStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 2},  // pos
				{Format: gputypes.VertexFormatUint32, Offset: 12, ShaderLocation: 3},    // glyph index
				{Format: gputypes.VertexFormatFloat32x3, Offset: 16, ShaderLocation: 4}, // right
				{Format: gputypes.VertexFormatUint32, Offset: 28, ShaderLocation: 5},    // color
				{Format: gputypes.VertexFormatFloat32x3, Offset: 32, ShaderLocation: 6}, // up
			},
		},
	}
}

// compileToSPIRV compiles WGSL through naga and repacks the output into
// little-endian 32-bit words.
func compileToSPIRV(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, err
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
