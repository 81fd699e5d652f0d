package render

import "image/color"

// rgba8 is a colour reduced to 8 bits per channel.
type rgba8 [4]byte

func toRGBA8(c color.Color) rgba8 {
	r, g, b, a := c.RGBA()
	return rgba8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

// fillBinaryRGBA converts live/dead cells into RGBA pixels in buf, which must
// hold four bytes per cell.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	onPx, offPx := toRGBA8(on), toRGBA8(off)
	for i, c := range cells {
		px := offPx
		if c != 0 {
			px = onPx
		}
		copy(buf[i*4:i*4+4], px[:])
	}
}
