// SPDX-License-Identifier: GPL-2.0-or-later

package texture

const placeholderSize = 16

// Placeholder returns a 16x16 magenta/black checkerboard with a full mip
// chain, substituted for textures that failed to load.
func Placeholder(name string) *Texture {
	n := MaxMips(placeholderSize, placeholderSize)
	t := &Texture{
		Name:        name,
		Width:       placeholderSize,
		Height:      placeholderSize,
		Format:      FormatRGBA8888,
		Mips:        make([][]byte, n),
		Placeholder: true,
	}
	for l := 0; l < n; l++ {
		d := MipDim(placeholderSize, l)
		// checks stay 4 texels wide at level 0 and shrink with the mip
		cell := MipDim(4, l)
		pix := make([]byte, d*d*4)
		for y := 0; y < d; y++ {
			for x := 0; x < d; x++ {
				p := pix[(y*d+x)*4:]
				if (x/cell+y/cell)%2 == 0 {
					p[0], p[2] = 0xff, 0xff
				}
				p[3] = 0xff
			}
		}
		t.Mips[l] = pix
	}
	return t
}
