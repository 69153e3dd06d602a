package tileraster

import (
	"image"
	"image/color"
	"image/draw"
)

// Compile-time interface checks.
var (
	_ image.Image = (*Framebuffer)(nil)
	_ draw.Image  = (*Framebuffer)(nil)
)

// Framebuffer is a width x height ARGB pixel buffer implementing both
// image.Image (read-only) and draw.Image (read-write), making rasterizer
// output compatible with Go's standard image ecosystem.
type Framebuffer struct {
	width  int
	height int
	pix    []uint32 // packed 0xAARRGGBB, row-major
}

// NewFramebuffer wraps a packed ARGB buffer. pix must hold width*height
// words.
func NewFramebuffer(width, height int, pix []uint32) *Framebuffer {
	return &Framebuffer{width: width, height: height, pix: pix}
}

// Framebuffer returns the composed output as a Framebuffer over a fresh
// copy of the pixel data. Returns nil after Dispose.
func (r *Rasterizer) Framebuffer() *Framebuffer {
	pix := r.Buffer()
	if pix == nil {
		return nil
	}
	return NewFramebuffer(r.width, r.height, pix)
}

// Image returns the composed output converted to an image.RGBA.
// Returns nil after Dispose.
func (r *Rasterizer) Image() *image.RGBA {
	fb := r.Framebuffer()
	if fb == nil {
		return nil
	}
	return fb.ToImage()
}

// Width returns the buffer width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the buffer height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// Pix returns the underlying packed ARGB words.
func (fb *Framebuffer) Pix() []uint32 { return fb.pix }

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// At implements image.Image.
func (fb *Framebuffer) At(x, y int) color.Color {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return color.RGBA{}
	}
	p := fb.pix[y*fb.width+x]
	return color.RGBA{
		R: uint8(p >> 16),
		G: uint8(p >> 8),
		B: uint8(p),
		A: uint8(p >> 24),
	}
}

// Set implements draw.Image.
func (fb *Framebuffer) Set(x, y int, c color.Color) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	fb.pix[y*fb.width+x] = uint32(rgba.A)<<24 | uint32(rgba.R)<<16 |
		uint32(rgba.G)<<8 | uint32(rgba.B)
}

// ToImage converts the buffer to an image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for i, p := range fb.pix {
		img.Pix[i*4+0] = uint8(p >> 16)
		img.Pix[i*4+1] = uint8(p >> 8)
		img.Pix[i*4+2] = uint8(p)
		img.Pix[i*4+3] = uint8(p >> 24)
	}
	return img
}
