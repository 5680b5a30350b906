// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws fractal scenes to pixel targets.
//
// The package defines the renderer and target abstractions and ships two
// renderer implementations:
//
//   - SoftwareRenderer: CPU rasterization with optional supersampling
//   - GPURenderer: offscreen WebGPU rendering with CPU readback
//
// # Key Principle
//
// The GPU renderer RECEIVES a device from the host application, it does NOT
// create its own. This follows the Vello/femtovg/Skia pattern where the
// rendering library is injected with GPU resources rather than managing
// them itself. For standalone use, any wgpu/hal backend (including the noop
// backend for tests) can supply the device and queue.
//
// # Usage
//
//	scene := fractal.NewScene(fractal.DefaultMaxDepth)
//	target := render.NewPixmapTarget(800, 800)
//
//	renderer := render.NewSoftwareRenderer()
//	if err := renderer.Render(target, scene); err != nil {
//	    log.Fatal(err)
//	}
//	err := target.Pixmap().SavePNG("fractal.png")
package render
