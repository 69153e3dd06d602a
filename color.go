package tileraster

import "image/color"

// Common paint colors in packed ARGB.
const (
	White       = uint32(0xFFFFFFFF)
	Black       = uint32(0xFF000000)
	Transparent = uint32(0x00000000)
)

// ARGB packs 8-bit channels into a 0xAARRGGBB word.
func ARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// FromColor converts a standard library color to packed ARGB.
// The color's premultiplication is undone since paints are straight alpha.
func FromColor(c color.Color) uint32 {
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(nrgba.A, nrgba.R, nrgba.G, nrgba.B)
}
