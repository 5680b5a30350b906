// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/fractal"
)

// SoftwareRenderer rasterizes triangle streams on the CPU.
//
// Triangles are filled with an edge-function test at pixel centers and
// colors interpolated barycentrically, so the background gradient and the
// flat-colored fractal faces both come out right. With a supersampling
// scale above 1, the scene is rasterized at scale times the target size
// and downscaled with a Catmull-Rom filter for anti-aliased edges.
type SoftwareRenderer struct {
	// scale is the supersampling factor. 1 means direct rasterization.
	scale int
}

// NewSoftwareRenderer creates a CPU renderer without supersampling.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{scale: 1}
}

// NewSupersampledRenderer creates a CPU renderer that rasterizes at
// scale times the target resolution and downscales. Scales below 2
// fall back to direct rasterization.
func NewSupersampledRenderer(scale int) *SoftwareRenderer {
	if scale < 2 {
		scale = 1
	}
	return &SoftwareRenderer{scale: scale}
}

// Render draws the scene to the target.
func (r *SoftwareRenderer) Render(target RenderTarget, scene *fractal.Scene) error {
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
	pix := target.Pixels()
	if pix == nil {
		return ErrNoCPUAccess
	}

	dst := &image.RGBA{
		Pix:    pix,
		Stride: target.Stride(),
		Rect:   image.Rect(0, 0, w, h),
	}

	if r.scale == 1 {
		rasterizeScene(dst, scene)
		return nil
	}

	// Supersample: rasterize big, downscale with a high-quality filter.
	big := image.NewRGBA(image.Rect(0, 0, w*r.scale, h*r.scale))
	rasterizeScene(big, scene)
	xdraw.CatmullRom.Scale(dst, dst.Rect, big, big.Rect, xdraw.Src, nil)
	return nil
}

// Flush is a no-op: software rendering is synchronous.
func (r *SoftwareRenderer) Flush() error {
	return nil
}

// Capabilities returns the software renderer's capabilities.
func (r *SoftwareRenderer) Capabilities() RendererCapabilities {
	return RendererCapabilities{
		IsGPU:                false,
		SupportsAntialiasing: r.scale > 1,
	}
}

// Ensure SoftwareRenderer implements CapableRenderer.
var _ CapableRenderer = (*SoftwareRenderer)(nil)

// rasterizeScene clears dst with the scene clear color and rasterizes every
// mesh in scene order.
func rasterizeScene(dst *image.RGBA, scene *fractal.Scene) {
	clearImage(dst, scene.Clear)
	for _, m := range scene.Meshes {
		rasterizeMesh(dst, m)
	}
}

// clearImage fills dst with the given color.
func clearImage(dst *image.RGBA, c fractal.RGBA) {
	cr := floatTo8(c.R)
	cg := floatTo8(c.G)
	cb := floatTo8(c.B)
	ca := floatTo8(c.A)

	b := dst.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := dst.Pix[dst.PixOffset(b.Min.X, y):dst.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			row[i+0] = cr
			row[i+1] = cg
			row[i+2] = cb
			row[i+3] = ca
		}
	}
}

// rasterizeMesh draws the mesh's triangles in stream order. Indexed meshes
// are resolved to a flat stream first, matching draw order on the GPU path.
func rasterizeMesh(dst *image.RGBA, m *fractal.Mesh) {
	verts := m.ExpandedVertices()
	for off := 0; off+3*fractal.VertexStride <= len(verts); off += 3 * fractal.VertexStride {
		rasterizeTriangle(dst,
			verts[off:off+fractal.VertexStride],
			verts[off+fractal.VertexStride:off+2*fractal.VertexStride],
			verts[off+2*fractal.VertexStride:off+3*fractal.VertexStride],
		)
	}
}

// screenVertex is a triangle corner transformed to pixel space.
type screenVertex struct {
	x, y    float64
	r, g, b float64
}

// toScreen maps one 6-float vertex record from NDC to pixel coordinates.
// NDC y points up, pixel y points down, so y is flipped. Z is carried in
// the stream but ignored: there is no depth test, draw order wins.
func toScreen(rec []float32, w, h float64) screenVertex {
	return screenVertex{
		x: (float64(rec[0]) + 1) * 0.5 * w,
		y: (1 - float64(rec[1])) * 0.5 * h,
		r: float64(rec[3]),
		g: float64(rec[4]),
		b: float64(rec[5]),
	}
}

// edgeFn is the signed doubled area of the triangle (a, b, p). Its sign
// tells which side of edge a->b the point p lies on.
func edgeFn(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// rasterizeTriangle fills a single triangle, testing pixel centers against
// the three edge functions and interpolating color barycentrically.
func rasterizeTriangle(dst *image.RGBA, rec0, rec1, rec2 []float32) {
	bounds := dst.Rect
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())

	v0 := toScreen(rec0, w, h)
	v1 := toScreen(rec1, w, h)
	v2 := toScreen(rec2, w, h)

	area := edgeFn(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if area == 0 {
		return
	}

	minX := int(math.Floor(min3(v0.x, v1.x, v2.x)))
	maxX := int(math.Ceil(max3(v0.x, v1.x, v2.x)))
	minY := int(math.Floor(min3(v0.y, v1.y, v2.y)))
	maxY := int(math.Ceil(max3(v0.y, v1.y, v2.y)))

	if minX < bounds.Min.X {
		minX = bounds.Min.X
	}
	if minY < bounds.Min.Y {
		minY = bounds.Min.Y
	}
	if maxX > bounds.Max.X {
		maxX = bounds.Max.X
	}
	if maxY > bounds.Max.Y {
		maxY = bounds.Max.Y
	}

	for y := minY; y < maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float64(x) + 0.5

			w0 := edgeFn(v1.x, v1.y, v2.x, v2.y, px, py)
			w1 := edgeFn(v2.x, v2.y, v0.x, v0.y, px, py)
			w2 := edgeFn(v0.x, v0.y, v1.x, v1.y, px, py)

			// Inside when all edge functions share the triangle's
			// winding. Either winding is accepted: no face culling.
			if area > 0 {
				if w0 < 0 || w1 < 0 || w2 < 0 {
					continue
				}
			} else {
				if w0 > 0 || w1 > 0 || w2 > 0 {
					continue
				}
			}

			b0 := w0 / area
			b1 := w1 / area
			b2 := w2 / area

			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = floatTo8(b0*v0.r + b1*v1.r + b2*v2.r)
			dst.Pix[i+1] = floatTo8(b0*v0.g + b1*v1.g + b2*v2.g)
			dst.Pix[i+2] = floatTo8(b0*v0.b + b1*v1.b + b2*v2.b)
			dst.Pix[i+3] = 255
		}
	}
}

// floatTo8 converts a [0, 1] color component to an 8-bit channel value.
func floatTo8(v float64) uint8 {
	s := v * 255
	if s <= 0 {
		return 0
	}
	if s >= 255 {
		return 255
	}
	return uint8(s + 0.5)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
