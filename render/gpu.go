// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/fractal"
)

//go:embed shaders/fractal.wgsl
var fractalShaderSource string

// gpuFenceTimeout bounds how long Render waits for the GPU to finish.
const gpuFenceTimeout = 5 * time.Second

// GPURenderer renders scenes through a wgpu/hal device into an offscreen
// texture and reads the pixels back to the target.
//
// The renderer receives its device and queue from the caller -- any hal
// backend works, including the noop backend for tests. The render pipeline
// consumes the interleaved vertex stream directly: positions are already in
// clip space, so there are no uniforms and no bind groups.
//
// Frame flow: upload per-mesh vertex buffers, encode one render pass that
// clears to the scene color and draws each mesh in order, copy the color
// texture to a staging buffer, submit, wait on a fence, read back, and
// convert BGRA to RGBA into the target.
type GPURenderer struct {
	device hal.Device
	queue  hal.Queue

	// Pipeline objects, created lazily on first Render.
	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	// Offscreen color target, recreated when the target size changes.
	tex     hal.Texture
	texView hal.TextureView
	width   uint32
	height  uint32
}

// NewGPURenderer creates a GPU renderer on the given device and queue.
// No GPU resources are allocated until the first Render call.
func NewGPURenderer(device hal.Device, queue hal.Queue) *GPURenderer {
	return &GPURenderer{
		device: device,
		queue:  queue,
	}
}

// NewGPURendererFromHandle creates a GPU renderer from a host-provided
// device handle. The handle must expose the underlying HAL types through
// HalDevice() any and HalQueue() any, as gogpu's device providers do.
func NewGPURendererFromHandle(handle DeviceHandle) (*GPURenderer, error) {
	if handle == nil {
		return nil, ErrNilDeviceHandle
	}
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := handle.(halProvider)
	if !ok {
		return nil, fmt.Errorf("render: device handle does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("render: handle HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("render: handle HalQueue is not hal.Queue")
	}
	return NewGPURenderer(device, queue), nil
}

// Render draws the scene into the offscreen texture and reads the pixels
// back into the target.
func (gr *GPURenderer) Render(target RenderTarget, scene *fractal.Scene) error {
	if target == nil {
		return ErrNilTarget
	}
	if scene == nil {
		return ErrNilScene
	}
	w, h := target.Width(), target.Height()
	if w <= 0 || h <= 0 {
		return ErrEmptyTarget
	}
	if target.Pixels() == nil {
		return ErrNoCPUAccess
	}

	if err := gr.ensurePipeline(); err != nil {
		return err
	}
	//nolint:gosec // dimensions checked positive above
	if err := gr.ensureTexture(uint32(w), uint32(h)); err != nil {
		return err
	}

	// Upload one vertex buffer per mesh, in draw order. Indexed meshes are
	// expanded on the CPU so a single non-indexed pipeline covers both.
	draws := make([]meshDraw, 0, len(scene.Meshes))
	defer func() {
		for _, d := range draws {
			gr.device.DestroyBuffer(d.buf)
		}
	}()
	for _, m := range scene.Meshes {
		verts := m.ExpandedVertices()
		if len(verts) == 0 {
			continue
		}
		buf, err := gr.createAndUploadBuffer("fractal_verts_"+m.Label, floatBytes(verts),
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return fmt.Errorf("upload mesh %q: %w", m.Label, err)
		}
		//nolint:gosec // vertex count fits uint32
		draws = append(draws, meshDraw{buf: buf, count: uint32(len(verts) / fractal.VertexStride)})
	}

	return gr.encodeSubmitReadback(target, scene, draws)
}

// meshDraw pairs an uploaded vertex buffer with its vertex count.
type meshDraw struct {
	buf   hal.Buffer
	count uint32
}

// encodeSubmitReadback encodes the render pass, submits, waits for the
// fence, and copies the readback pixels into the target.
func (gr *GPURenderer) encodeSubmitReadback(target RenderTarget, scene *fractal.Scene, draws []meshDraw) error {
	w, h := gr.width, gr.height

	encoder, err := gr.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "fractal_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("fractal_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "fractal_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    gr.texView,
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: scene.Clear.R,
				G: scene.Clear.G,
				B: scene.Clear.B,
				A: scene.Clear.A,
			},
		}},
	})

	rp.SetPipeline(gr.pipeline)
	for _, d := range draws {
		rp.SetVertexBuffer(0, d.buf, 0)
		rp.Draw(d.count, 1, 0, 0)
	}
	rp.End()

	// The color texture must be in copy-source layout before the readback
	// copy. A no-op on backends without explicit layouts.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: gr.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	// WebGPU (and DX12) requires BytesPerRow aligned to 256 bytes.
	bytesPerRow := w * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := gr.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "fractal_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer gr.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(gr.tex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: gr.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	// Transition back so the next frame's render pass finds the texture in
	// render-attachment layout.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: gr.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer gr.device.FreeCommandBuffer(cmdBuf)

	fence, err := gr.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer gr.device.DestroyFence(fence)

	if err := gr.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := gr.device.Wait(fence, 1, gpuFenceTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, stagingSize)
	if err := gr.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}

	writeReadbackToTarget(target, readback, int(alignedBytesPerRow))
	return nil
}

// Flush is a no-op: Render waits for the fence before returning.
func (gr *GPURenderer) Flush() error {
	return nil
}

// Capabilities returns the GPU renderer's capabilities.
func (gr *GPURenderer) Capabilities() RendererCapabilities {
	return RendererCapabilities{
		IsGPU: true,
	}
}

// Ensure GPURenderer implements CapableRenderer.
var _ CapableRenderer = (*GPURenderer)(nil)

// Destroy releases all GPU resources held by the renderer. Safe to call
// multiple times or on a renderer with no allocated resources.
func (gr *GPURenderer) Destroy() {
	if gr.device == nil {
		return
	}
	gr.destroyTexture()
	if gr.pipeline != nil {
		gr.device.DestroyRenderPipeline(gr.pipeline)
		gr.pipeline = nil
	}
	if gr.pipeLayout != nil {
		gr.device.DestroyPipelineLayout(gr.pipeLayout)
		gr.pipeLayout = nil
	}
	if gr.shader != nil {
		gr.device.DestroyShaderModule(gr.shader)
		gr.shader = nil
	}
}

// ensurePipeline creates the shader module, pipeline layout, and render
// pipeline if they don't already exist.
func (gr *GPURenderer) ensurePipeline() error {
	if gr.pipeline != nil {
		return nil
	}
	if fractalShaderSource == "" {
		return fmt.Errorf("fractal shader source is empty")
	}

	// Pre-compile to SPIR-V for backends that want it; the WGSL source is
	// always attached for backends with native WGSL support.
	source := hal.ShaderSource{WGSL: fractalShaderSource}
	spirv, err := CompileShaderToSPIRV(fractalShaderSource)
	if err != nil {
		fractal.Logger().Warn("shader SPIR-V precompile failed, using WGSL only", "error", err)
	} else {
		source.SPIRV = spirv
	}

	shader, err := gr.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "fractal_shader",
		Source: source,
	})
	if err != nil {
		return fmt.Errorf("compile fractal shader: %w", err)
	}
	gr.shader = shader

	// No uniforms: geometry arrives pre-transformed in clip space.
	pipeLayout, err := gr.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "fractal_pipe_layout",
		BindGroupLayouts: nil,
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	gr.pipeLayout = pipeLayout

	pipeline, err := gr.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "fractal_pipeline",
		Layout: gr.pipeLayout,
		Vertex: hal.VertexState{
			Module:     gr.shader,
			EntryPoint: "vs_main",
			Buffers:    fractalVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     gr.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatBGRA8Unorm,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	gr.pipeline = pipeline

	return nil
}

// ensureTexture creates or recreates the offscreen color texture if the
// requested dimensions differ from the current size.
func (gr *GPURenderer) ensureTexture(w, h uint32) error {
	if gr.width == w && gr.height == h && gr.tex != nil {
		return nil
	}
	gr.destroyTexture()

	tex, err := gr.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "fractal_color",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create color texture: %w", err)
	}
	gr.tex = tex

	view, err := gr.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "fractal_color_view",
	})
	if err != nil {
		gr.destroyTexture()
		return fmt.Errorf("create color view: %w", err)
	}
	gr.texView = view

	gr.width = w
	gr.height = h
	return nil
}

// destroyTexture releases the offscreen texture and view.
func (gr *GPURenderer) destroyTexture() {
	if gr.texView != nil {
		gr.device.DestroyTextureView(gr.texView)
		gr.texView = nil
	}
	if gr.tex != nil {
		gr.device.DestroyTexture(gr.tex)
		gr.tex = nil
	}
	gr.width = 0
	gr.height = 0
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (gr *GPURenderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := gr.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	gr.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// fractalVertexLayout returns the vertex buffer layout for the fractal
// pipeline: interleaved position and color, both vec3<f32>.
func fractalVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: fractal.VertexStrideBytes,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x3, Offset: fractal.ColorOffsetBytes, ShaderLocation: 1},
			},
		},
	}
}

// floatBytes serializes a float32 slice to little-endian bytes, the layout
// vertex buffer uploads expect.
func floatBytes(src []float32) []byte {
	out := make([]byte, len(src)*4)
	for i, v := range src {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// writeReadbackToTarget strips per-row padding from the aligned readback
// data and converts BGRA to RGBA into the target's pixel buffer.
func writeReadbackToTarget(target RenderTarget, readback []byte, alignedBytesPerRow int) {
	pix := target.Pixels()
	w, h := target.Width(), target.Height()
	stride := target.Stride()

	for y := 0; y < h; y++ {
		src := readback[y*alignedBytesPerRow:]
		dst := pix[y*stride:]
		for x := 0; x < w; x++ {
			i := x * 4
			// BGRA -> RGBA
			dst[i+0] = src[i+2]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+0]
			dst[i+3] = src[i+3]
		}
	}
}
