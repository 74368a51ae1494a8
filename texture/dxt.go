// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import (
	"encoding/binary"
)

func rgb565(v uint16) (r, g, b uint16) {
	r = (v >> 11) & 0x1f
	g = (v >> 5) & 0x3f
	b = v & 0x1f
	r = (r << 3) | (r >> 2)
	g = (g << 2) | (g >> 4)
	b = (b << 3) | (b >> 2)
	return
}

// colorBlock decodes the 8 byte color part of a DXT block into 16 RGBA
// pixels. In three color mode index 3 is black, transparent if oneBit.
func colorBlock(blk []byte, out *[64]byte, fourColor, oneBit bool) {
	c0 := binary.LittleEndian.Uint16(blk[0:])
	c1 := binary.LittleEndian.Uint16(blk[2:])
	code := binary.LittleEndian.Uint32(blk[4:])
	r0, g0, b0 := rgb565(c0)
	r1, g1, b1 := rgb565(c1)

	var pal [4][4]byte
	pal[0] = [4]byte{byte(r0), byte(g0), byte(b0), 0xff}
	pal[1] = [4]byte{byte(r1), byte(g1), byte(b1), 0xff}
	if fourColor || c0 > c1 {
		pal[2] = [4]byte{byte((2*r0 + r1) / 3), byte((2*g0 + g1) / 3), byte((2*b0 + b1) / 3), 0xff}
		pal[3] = [4]byte{byte((r0 + 2*r1) / 3), byte((g0 + 2*g1) / 3), byte((b0 + 2*b1) / 3), 0xff}
	} else {
		pal[2] = [4]byte{byte((r0 + r1) / 2), byte((g0 + g1) / 2), byte((b0 + b1) / 2), 0xff}
		pal[3] = [4]byte{0, 0, 0, 0xff}
		if oneBit {
			pal[3][3] = 0
		}
	}
	for i := 0; i < 16; i++ {
		copy(out[i*4:], pal[(code>>(2*uint(i)))&3][:])
	}
}

func alphaBlockDXT3(blk []byte, out *[64]byte) {
	for i := 0; i < 16; i++ {
		a := (blk[i/2] >> (4 * uint(i%2))) & 0xf
		out[i*4+3] = a<<4 | a
	}
}

func alphaBlockDXT5(blk []byte, out *[64]byte) {
	a0, a1 := uint16(blk[0]), uint16(blk[1])
	var pal [8]uint16
	pal[0], pal[1] = a0, a1
	if a0 > a1 {
		for i := uint16(1); i < 7; i++ {
			pal[i+1] = ((7-i)*a0 + i*a1) / 7
		}
	} else {
		for i := uint16(1); i < 5; i++ {
			pal[i+1] = ((5-i)*a0 + i*a1) / 5
		}
		pal[6], pal[7] = 0, 255
	}
	// 48 bits of 3 bit indices
	var bits uint64
	for i := 5; i >= 0; i-- {
		bits = bits<<8 | uint64(blk[2+i])
	}
	for i := 0; i < 16; i++ {
		out[i*4+3] = byte(pal[(bits>>(3*uint(i)))&7])
	}
}

// decodeBlocks expands a block compressed mip into w*h RGBA pixels.
func decodeBlocks(f Format, src []byte, w, h int) []byte {
	dst := make([]byte, w*h*4)
	bw := (w + 3) / 4
	bh := (h + 3) / 4
	size := formats[f].size
	var px [64]byte
	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			blk := src[(by*bw+bx)*size:]
			switch f {
			case FormatDXT1:
				colorBlock(blk, &px, false, false)
			case FormatDXT1OneBitAlpha:
				colorBlock(blk, &px, false, true)
			case FormatDXT3:
				colorBlock(blk[8:], &px, true, false)
				alphaBlockDXT3(blk, &px)
			case FormatDXT5:
				colorBlock(blk[8:], &px, true, false)
				alphaBlockDXT5(blk, &px)
			}
			for y := 0; y < 4; y++ {
				py := by*4 + y
				if py >= h {
					break
				}
				for x := 0; x < 4; x++ {
					pxx := bx*4 + x
					if pxx >= w {
						break
					}
					copy(dst[(py*w+pxx)*4:], px[(y*4+x)*4:(y*4+x)*4+4])
				}
			}
		}
	}
	return dst
}
