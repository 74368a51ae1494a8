// SPDX-License-Identifier: GPL-2.0-or-later

package vtf

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"

	"goquell/texture"
)

func gradient(f texture.Format, w, h, mips int) []byte {
	chain := make([]byte, texture.ChainSize(f, w, h, mips))
	o := 0
	for l := 0; l < mips; l++ {
		n := texture.MipSize(f, w, h, l)
		for i := 0; i < n; i++ {
			chain[o+i] = byte(l*16 + i)
		}
		o += n
	}
	return chain
}

func TestDecodeRoundTrip(t *testing.T) {
	const w, h, mips = 8, 4, 4
	chain := gradient(texture.FormatRGBA8888, w, h, mips)
	data := Encode(texture.FormatRGBA8888, w, h, mips, 0x1234, chain)
	tex, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if tex.Width != w || tex.Height != h || len(tex.Mips) != mips || tex.Flags != 0x1234 {
		t.Fatalf("Decode = %dx%d %d mips flags %x", tex.Width, tex.Height, len(tex.Mips), tex.Flags)
	}
	want, _ := texture.Decode(chain, texture.FormatRGBA8888, w, h, mips)
	for l := range want.Mips {
		if !bytes.Equal(tex.Mips[l], want.Mips[l]) {
			t.Errorf("mip %d = %v, want %v", l, tex.Mips[l], want.Mips[l])
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	chain := gradient(texture.FormatDXT1, 16, 16, 5)
	data := Encode(texture.FormatDXT1, 16, 16, 5, 0, chain)
	if _, err := Decode(data[:len(data)-1]); !errors.Is(err, texture.ErrSizeMismatch) {
		t.Errorf("Decode(truncated) = %v, want ErrSizeMismatch", err)
	}
}

func TestDecodeBadHeader(t *testing.T) {
	if _, err := Decode([]byte("VTF")); !errors.Is(err, ErrBadMagic) {
		t.Errorf("Decode(short) = %v, want ErrBadMagic", err)
	}
	data := Encode(texture.FormatI8, 1, 1, 1, 0, []byte{1})
	binary.LittleEndian.PutUint32(data[4:], 8)
	if _, err := Decode(data); !errors.Is(err, ErrVersionUnsupported) {
		t.Errorf("Decode(v8) = %v, want ErrVersionUnsupported", err)
	}
	// a 7.2 header cut right before the depth field
	if _, err := Decode(Encode(texture.FormatI8, 1, 1, 1, 0, []byte{1})[:64]); !errors.Is(err, ErrBadMagic) {
		t.Errorf("Decode(64 byte 7.2) = %v, want ErrBadMagic", err)
	}
	data = Encode(texture.FormatI8, 1, 1, 1, 0, []byte{1})
	binary.LittleEndian.PutUint32(data[52:], 77)
	if _, err := Decode(data); !errors.Is(err, texture.ErrUnsupportedFormat) {
		t.Errorf("Decode(format 77) = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecodeResourceTable(t *testing.T) {
	// 7.3 layout: header, resource table, thumbnail-free image data
	var b bytes.Buffer
	le := func(v any) { binary.Write(&b, binary.LittleEndian, v) }
	b.WriteString("VTF\x00")
	le([2]uint32{7, 3})
	le(uint32(96))
	le(uint16(2))
	le(uint16(2))
	le(uint32(0))
	le(uint16(1))
	le(uint16(0))
	b.Write(make([]byte, 4))
	le([3]float32{})
	b.Write(make([]byte, 4))
	le(float32(1))
	le(int32(texture.FormatI8))
	b.WriteByte(2)
	le(int32(texture.FormatNone))
	b.Write([]byte{0, 0})
	le(uint16(1))
	b.Write(make([]byte, 3))
	le(uint32(2))
	b.Write(make([]byte, 8))
	// low res entry pointing nowhere useful, then high res
	b.Write([]byte{tagLowRes, 0, 0, 0})
	le(uint32(96))
	b.Write([]byte{tagHighRes, 0, 0, 0})
	le(uint32(100))
	b.Write(make([]byte, 100-b.Len()))
	// smallest first: 1x1 then 2x2
	b.Write([]byte{9, 1, 2, 3, 4})

	tex, err := Decode(b.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := tex.Mips[0][:4]; !bytes.Equal(got, []byte{1, 1, 1, 255}) {
		t.Errorf("mip 0 pixel 0 = %v", got)
	}
	if got := tex.Mips[1]; !bytes.Equal(got, []byte{9, 9, 9, 255}) {
		t.Errorf("mip 1 = %v", got)
	}
}
