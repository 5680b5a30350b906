package fractal

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Pixmap is the CPU-side render target: a rectangular RGBA pixel
// buffer with 4 bytes per pixel and no row padding.
type Pixmap struct {
	width  int
	height int
	pix    []uint8
}

// NewPixmap creates a pixmap with the given dimensions, cleared to
// transparent black.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap in pixels.
func (p *Pixmap) Width() int { return p.width }

// Height returns the height of the pixmap in pixels.
func (p *Pixmap) Height() int { return p.height }

// Stride returns the number of bytes per pixel row.
func (p *Pixmap) Stride() int { return p.width * 4 }

// Data returns the raw RGBA pixel data. The slice aliases the
// pixmap's storage, writes through it are visible to readers.
func (p *Pixmap) Data() []uint8 {
	return p.pix
}

// pack quantizes c to four 8-bit channels, rounding to nearest.
func pack(c RGBA) (r, g, b, a uint8) {
	return uint8(clamp255(c.R*255 + 0.5)),
		uint8(clamp255(c.G*255 + 0.5)),
		uint8(clamp255(c.B*255 + 0.5)),
		uint8(clamp255(c.A*255 + 0.5))
}

// SetPixel sets a single pixel. Out-of-range coordinates are ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := y*p.Stride() + x*4
	p.pix[i+0], p.pix[i+1], p.pix[i+2], p.pix[i+3] = pack(c)
}

// GetPixel returns the color of a single pixel, or Transparent when
// the coordinates are out of range.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := y*p.Stride() + x*4
	return RGBA{
		R: float64(p.pix[i+0]) / 255,
		G: float64(p.pix[i+1]) / 255,
		B: float64(p.pix[i+2]) / 255,
		A: float64(p.pix[i+3]) / 255,
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	r, g, b, a := pack(c)
	for i := 0; i < len(p.pix); i += 4 {
		p.pix[i+0] = r
		p.pix[i+1] = g
		p.pix[i+2] = b
		p.pix[i+3] = a
	}
}

// Image returns an image.RGBA view sharing the pixmap's storage.
// Mutating the returned image mutates the pixmap and vice versa.
func (p *Pixmap) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    p.pix,
		Stride: p.Stride(),
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}

// SavePNG writes the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, p.Image())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
