// Package fractal generates Sierpinski triangle vertex geometry for
// rasterized display.
//
// # Overview
//
// fractal is a Pure Go geometry generator in the GoGPU ecosystem. Its core
// is a recursive subdivision procedure that turns three corner points into
// a flat, depth-annotated vertex stream: every triangle face at every
// recursion level, each vertex carrying a position and a depth-derived
// color, interleaved as 6 float32 values per vertex.
//
// # Quick Start
//
//	import "github.com/gogpu/fractal"
//
//	// Generate the classic triangle to the default depth of 8.
//	a, b, c := fractal.RootTriangle()
//	verts := fractal.Sierpinski(a, b, c, fractal.DefaultMaxDepth)
//
//	// verts is ready for vertex buffer upload: stride 24 bytes,
//	// position (3 x f32) at offset 0, color (3 x f32) at offset 12.
//
// # Rendering
//
// The generator has no rendering dependencies. The render/ subpackage
// consumes its output: a CPU rasterizer for offscreen images and a
// WebGPU renderer (via gogpu/wgpu) for hardware display.
//
// # Coordinate System
//
// Positions live in normalized device coordinates: [-1, 1] per axis,
// X right, Y up. The range is conventional, not enforced.
//
// # Depth Coloring
//
// Each vertex is colored (0.25, depth/maxDepth, 0.75): the green channel
// is the sole visual encoding of recursion depth. Triangles at every
// level are emitted, so deeper (greener, smaller) faces layer on top of
// their parents in draw order.
package fractal

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
