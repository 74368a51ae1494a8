// SPDX-License-Identifier: GPL-2.0-or-later

package vtf

import (
	"bytes"
	"encoding/binary"

	"goquell/texture"
)

// Encode writes a version 7.2 file without thumbnail. chain holds mips
// largest first, as texture.Decode expects.
func Encode(f texture.Format, width, height, mips int, flags uint32, chain []byte) []byte {
	const headerSize = 80
	var b bytes.Buffer
	b.Write(magic)
	le := func(v any) { binary.Write(&b, binary.LittleEndian, v) }
	le([2]uint32{7, 2})
	le(uint32(headerSize))
	le(uint16(width))
	le(uint16(height))
	le(flags)
	le(uint16(1)) // frames
	le(uint16(0)) // first frame
	b.Write(make([]byte, 4))
	le([3]float32{0.5, 0.5, 0.5})
	b.Write(make([]byte, 4))
	le(float32(1))
	le(int32(f))
	b.WriteByte(byte(mips))
	le(int32(texture.FormatNone))
	b.WriteByte(0)
	b.WriteByte(0)
	le(uint16(1)) // depth
	b.Write(make([]byte, headerSize-b.Len()))

	offs := make([]int, mips)
	o := 0
	for l := 0; l < mips; l++ {
		offs[l] = o
		o += texture.MipSize(f, width, height, l)
	}
	for l := mips - 1; l >= 0; l-- {
		b.Write(chain[offs[l] : offs[l]+texture.MipSize(f, width, height, l)])
	}
	return b.Bytes()
}
