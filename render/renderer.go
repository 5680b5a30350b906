// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/fractal"
)

// Rendering errors shared by all renderer implementations.
var (
	// ErrNilScene is returned when Render is called with a nil scene.
	ErrNilScene = errors.New("render: nil scene")

	// ErrNilTarget is returned when Render is called with a nil target.
	ErrNilTarget = errors.New("render: nil target")

	// ErrNoCPUAccess is returned when a renderer needs direct pixel access
	// but the target does not provide it.
	ErrNoCPUAccess = errors.New("render: target does not support CPU pixel access")

	// ErrEmptyTarget is returned when the target has a zero dimension.
	ErrEmptyTarget = errors.New("render: target has zero width or height")

	// ErrNilDeviceHandle is returned when a GPU renderer is constructed
	// from a nil device handle.
	ErrNilDeviceHandle = errors.New("render: nil device handle")
)

// Renderer draws a scene to a render target.
//
// Different implementations provide CPU or GPU rendering:
//
//   - SoftwareRenderer: CPU rasterization of the triangle streams
//   - GPURenderer: WebGPU offscreen rendering with readback
//
// Renderers are stateless between Render calls, allowing the same renderer
// to be used with different targets and scenes.
//
// Thread Safety: Renderers are NOT thread-safe. Each renderer should be used
// from a single goroutine, or external synchronization must be used.
type Renderer interface {
	// Render draws the scene to the target. Meshes are drawn in scene
	// order; within a mesh, triangles rasterize in stream order.
	//
	// The scene is not modified and can be rendered multiple times to
	// different targets.
	Render(target RenderTarget, scene *fractal.Scene) error

	// Flush ensures all pending rendering operations are complete.
	//
	// For CPU renderers this is a no-op as operations are synchronous.
	// For GPU renderers this may submit command buffers and wait for
	// completion.
	Flush() error
}

// RendererCapabilities describes the features supported by a renderer.
type RendererCapabilities struct {
	// IsGPU indicates if this is a GPU-accelerated renderer.
	IsGPU bool

	// SupportsAntialiasing indicates if anti-aliased rendering is supported.
	SupportsAntialiasing bool

	// MaxTargetSize is the maximum target dimension (0 = unlimited).
	MaxTargetSize int
}

// CapableRenderer is an optional interface for renderers that can
// report their capabilities.
type CapableRenderer interface {
	Renderer

	// Capabilities returns the renderer's capabilities.
	Capabilities() RendererCapabilities
}
