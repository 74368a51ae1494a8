// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

func TestMipSize(t *testing.T) {
	tests := []struct {
		f     Format
		w, h  int
		level int
		want  int
	}{
		{FormatRGBA8888, 256, 256, 0, 256 * 256 * 4},
		{FormatRGBA8888, 256, 128, 8, 4},
		{FormatRGB888, 4, 1, 1, 2 * 1 * 3},
		{FormatDXT1, 256, 256, 0, 64 * 64 * 8},
		{FormatDXT1, 256, 256, 8, 8},
		{FormatDXT5, 6, 6, 0, 4 * 16},
		{FormatDXT5, 6, 6, 1, 16},
		{FormatI8, 3, 5, 0, 15},
		{Format(99), 4, 4, 0, -1},
	}
	for _, tt := range tests {
		if got := MipSize(tt.f, tt.w, tt.h, tt.level); got != tt.want {
			t.Errorf("MipSize(%v, %d, %d, %d) = %d, want %d", tt.f, tt.w, tt.h, tt.level, got, tt.want)
		}
	}
}

func TestChainSize(t *testing.T) {
	// 256 DXT1 with 9 mips: 32768+8192+2048+512+128+32+8+8+8
	if got, want := ChainSize(FormatDXT1, 256, 256, 9), 43704; got != want {
		t.Errorf("ChainSize(DXT1, 256, 256, 9) = %d, want %d", got, want)
	}
	if got, want := MaxMips(256, 64), 9; got != want {
		t.Errorf("MaxMips(256, 64) = %d, want %d", got, want)
	}
}

func TestDecodeSizeLaw(t *testing.T) {
	formats := []Format{FormatRGBA8888, FormatBGR888, FormatRGB565, FormatIA88, FormatDXT1, FormatDXT3, FormatDXT5, FormatBGRA4444}
	for _, f := range formats {
		const w, h, mips = 32, 8, 6
		raw := make([]byte, ChainSize(f, w, h, mips))
		tex, err := Decode(raw, f, w, h, mips)
		if err != nil {
			t.Fatalf("Decode(%v) exact size: %v", f, err)
		}
		if len(tex.Mips) != mips {
			t.Fatalf("Decode(%v) mips = %d, want %d", f, len(tex.Mips), mips)
		}
		for i, m := range tex.Mips {
			want := MipDim(w, i) * MipDim(h, i) * 4
			if len(m) != want {
				t.Errorf("Decode(%v) mip %d = %d bytes, want %d", f, i, len(m), want)
			}
		}
		if _, err := Decode(raw[:len(raw)-1], f, w, h, mips); !errors.Is(err, ErrSizeMismatch) {
			t.Errorf("Decode(%v) short = %v, want ErrSizeMismatch", f, err)
		}
		if _, err := Decode(append(raw, 1, 2, 3), f, w, h, mips); err != nil {
			t.Errorf("Decode(%v) with trailing bytes: %v", f, err)
		}
	}
}

func TestDecodeUnsupported(t *testing.T) {
	for _, f := range []Format{FormatP8, Format(42), FormatNone} {
		if _, err := Decode(make([]byte, 1024), f, 4, 4, 1); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Decode(%v) = %v, want ErrUnsupportedFormat", f, err)
		}
	}
}

func TestDecodePixels(t *testing.T) {
	tests := []struct {
		f    Format
		in   []byte
		want []byte
	}{
		{FormatBGR888, []byte{1, 2, 3}, []byte{3, 2, 1, 255}},
		{FormatABGR8888, []byte{1, 2, 3, 4}, []byte{4, 3, 2, 1}},
		{FormatARGB8888, []byte{1, 2, 3, 4}, []byte{2, 3, 4, 1}},
		{FormatBGRA8888, []byte{1, 2, 3, 4}, []byte{3, 2, 1, 4}},
		{FormatI8, []byte{7}, []byte{7, 7, 7, 255}},
		{FormatIA88, []byte{7, 9}, []byte{7, 7, 7, 9}},
		{FormatA8, []byte{9}, []byte{0, 0, 0, 9}},
		{FormatRGB565, []byte{0x00, 0xf8}, []byte{255, 0, 0, 255}},
		{FormatBGRA4444, []byte{0x0f, 0xf0}, []byte{0, 0, 255, 255}},
		{FormatRGB888Blue, []byte{0, 0, 255}, []byte{0, 0, 0, 0}},
		{FormatRGBA16161616F, []byte{0x00, 0x3c, 0x00, 0x38, 0x00, 0x00, 0x00, 0xbc}, []byte{255, 128, 0, 0}},
	}
	for _, tt := range tests {
		tex, err := Decode(tt.in, tt.f, 1, 1, 1)
		if err != nil {
			t.Fatalf("Decode(%v): %v", tt.f, err)
		}
		if !bytes.Equal(tex.Mips[0], tt.want) {
			t.Errorf("Decode(%v, %v) = %v, want %v", tt.f, tt.in, tex.Mips[0], tt.want)
		}
	}
}

func TestDXT1Block(t *testing.T) {
	// color0 pure red, color1 pure blue, indices 0,1,2,3 on the first row
	blk := []byte{0x00, 0xf8, 0x1f, 0x00, 0xe4, 0x00, 0x00, 0x00}
	tex, err := Decode(blk, FormatDXT1, 4, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]byte{
		{255, 0, 0, 255},
		{0, 0, 255, 255},
		{170, 0, 85, 255},
		{85, 0, 170, 255},
	}
	for i, w := range want {
		if got := tex.Mips[0][i*4 : i*4+4]; !bytes.Equal(got, w) {
			t.Errorf("DXT1 pixel %d = %v, want %v", i, got, w)
		}
	}
	// row 1 uses index 0
	if got := tex.Mips[0][16:20]; !bytes.Equal(got, want[0]) {
		t.Errorf("DXT1 pixel (0,1) = %v, want %v", got, want[0])
	}
}

func TestDXT1OneBitAlpha(t *testing.T) {
	// color0 <= color1 selects three color mode, index 3 transparent
	blk := []byte{0x1f, 0x00, 0x00, 0xf8, 0xff, 0xff, 0xff, 0xff}
	tex, err := Decode(blk, FormatDXT1OneBitAlpha, 4, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := tex.Mips[0][3]; got != 0 {
		t.Errorf("alpha = %d, want 0", got)
	}
}

func TestDXT5Block(t *testing.T) {
	blk := make([]byte, 16)
	blk[0], blk[1] = 255, 0
	// pixel 0 index 0 (255), pixel 1 index 1 (0), pixel 2 index 2 ((6*255)/7)
	blk[2] = 0x08 | 0x80
	blk[3] = 0x00
	// white color block, all indices 0
	blk[8], blk[9] = 0xff, 0xff
	tex, err := Decode(blk, FormatDXT5, 4, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	px := tex.Mips[0]
	if px[0] != 255 || px[1] != 255 || px[2] != 255 {
		t.Errorf("color = %v, want white", px[:3])
	}
	if got, want := []byte{px[3], px[7], px[11]}, []byte{255, 0, 218}; !bytes.Equal(got, want) {
		t.Errorf("alpha = %v, want %v", got, want)
	}
}

func TestDXTClipsSmallMips(t *testing.T) {
	tex, err := Decode(make([]byte, ChainSize(FormatDXT1, 2, 1, 1)), FormatDXT1, 2, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(tex.Mips[0]) != 2*1*4 {
		t.Errorf("len = %d, want 8", len(tex.Mips[0]))
	}
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder("dev/missing")
	if !p.Placeholder || p.Name != "dev/missing" {
		t.Errorf("Placeholder = %+v", p)
	}
	if len(p.Mips) != 5 {
		t.Fatalf("mips = %d, want 5", len(p.Mips))
	}
	img := p.Image(0)
	if c := img.NRGBAAt(0, 0); c.R != 255 || c.G != 0 || c.B != 255 || c.A != 255 {
		t.Errorf("(0,0) = %v, want magenta", c)
	}
	if c := img.NRGBAAt(4, 0); c.R != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("(4,0) = %v, want black", c)
	}
	if b := p.Image(4).Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("last mip bounds = %v", b)
	}
}
