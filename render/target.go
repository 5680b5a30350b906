// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/fractal"
)

// RenderTarget defines where rendering output goes.
//
// A RenderTarget is an abstraction over rendering destinations. The shipped
// implementation is PixmapTarget, backed by a fractal.Pixmap that both
// renderers can write to. Targets may support CPU access (Pixels), GPU
// access, or both; the Renderer implementation chooses the access method.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// Pixels returns direct access to pixel data.
	// Returns nil for GPU-only targets.
	// For RGBA format, each pixel is 4 bytes: R, G, B, A.
	Pixels() []byte

	// Stride returns the number of bytes per row.
	// For RGBA, this is typically Width * 4, but may include padding.
	Stride() int
}

// PixmapTarget is a CPU-backed render target over a fractal.Pixmap.
//
// This target supports both renderers and provides direct pixel access.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 800)
//	renderer.Render(target, scene)
//	err := target.Pixmap().SavePNG("out.png")
type PixmapTarget struct {
	pm *fractal.Pixmap
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{pm: fractal.NewPixmap(width, height)}
}

// NewPixmapTargetFromPixmap wraps an existing pixmap as a render target.
// The pixmap is used directly without copying.
func NewPixmapTargetFromPixmap(pm *fractal.Pixmap) *PixmapTarget {
	return &PixmapTarget{pm: pm}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.pm.Width()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.pm.Height()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.pm.Data()
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.pm.Stride()
}

// Pixmap returns the underlying pixmap.
// The returned pixmap shares memory with the target.
func (t *PixmapTarget) Pixmap() *fractal.Pixmap {
	return t.pm
}

// Image returns an *image.RGBA view of the target.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.pm.Image()
}

// Clear fills the entire target with the given color.
func (t *PixmapTarget) Clear(c color.Color) {
	t.pm.Clear(fractal.FromColor(c))
}

// SetPixel sets a single pixel at the given coordinates.
func (t *PixmapTarget) SetPixel(x, y int, c color.Color) {
	t.pm.SetPixel(x, y, fractal.FromColor(c))
}

// GetPixel returns the color at the given coordinates.
func (t *PixmapTarget) GetPixel(x, y int) color.Color {
	return t.pm.GetPixel(x, y).Color()
}

// Resize creates a new backing pixmap with the given dimensions.
// The contents are not preserved.
func (t *PixmapTarget) Resize(width, height int) {
	t.pm = fractal.NewPixmap(width, height)
}

// Ensure PixmapTarget implements RenderTarget.
var _ RenderTarget = (*PixmapTarget)(nil)
