// SPDX-License-Identifier: GPL-2.0-or-later

// Package texture decodes mip chains of raw and block compressed pixel data
// into RGBA8.
package texture

import (
	"encoding/binary"
	"image"
	"math"

	"github.com/pkg/errors"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported texture format")
	ErrSizeMismatch      = errors.New("texture size mismatch")
)

// Texture is a decoded mip chain. Mips are RGBA8, largest first.
type Texture struct {
	Name   string
	Width  int
	Height int
	Format Format
	Mips   [][]byte
	Flags  uint32
	// Placeholder is set on substitutes for textures that failed to load.
	Placeholder bool
}

// MipCount returns the number of decoded levels.
func (t *Texture) MipCount() int {
	return len(t.Mips)
}

// Image wraps a mip level without copying.
func (t *Texture) Image(level int) *image.NRGBA {
	w, h := MipDim(t.Width, level), MipDim(t.Height, level)
	return &image.NRGBA{
		Pix:    t.Mips[level],
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	}
}

// Decode converts raw, a chain of mipCount levels stored largest first, into
// RGBA8. raw must hold at least ChainSize bytes; extra bytes are ignored.
func Decode(raw []byte, f Format, width, height, mipCount int) (*Texture, error) {
	info, ok := formats[f]
	if !ok || f == FormatP8 {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%v", f)
	}
	if width < 1 || height < 1 || mipCount < 1 {
		return nil, errors.Wrapf(ErrSizeMismatch, "%dx%d with %d mips", width, height, mipCount)
	}
	need := ChainSize(f, width, height, mipCount)
	if len(raw) < need {
		return nil, errors.Wrapf(ErrSizeMismatch, "%v %dx%d %d mips needs %d bytes, got %d", f, width, height, mipCount, need, len(raw))
	}
	t := &Texture{
		Width:  width,
		Height: height,
		Format: f,
		Mips:   make([][]byte, mipCount),
	}
	off := 0
	for i := 0; i < mipCount; i++ {
		n := MipSize(f, width, height, i)
		w, h := MipDim(width, i), MipDim(height, i)
		src := raw[off : off+n]
		if info.block {
			t.Mips[i] = decodeBlocks(f, src, w, h)
		} else {
			t.Mips[i] = decodePixels(f, src, w*h, info.size)
		}
		off += n
	}
	return t, nil
}

func decodePixels(f Format, src []byte, n, bpp int) []byte {
	dst := make([]byte, n*4)
	for i := 0; i < n; i++ {
		p := src[i*bpp : i*bpp+bpp]
		d := dst[i*4 : i*4+4]
		switch f {
		case FormatRGBA8888, FormatUVWQ8888, FormatUVLX8888:
			copy(d, p)
		case FormatABGR8888:
			d[0], d[1], d[2], d[3] = p[3], p[2], p[1], p[0]
		case FormatRGB888:
			d[0], d[1], d[2], d[3] = p[0], p[1], p[2], 0xff
		case FormatBGR888:
			d[0], d[1], d[2], d[3] = p[2], p[1], p[0], 0xff
		case FormatRGB888Blue, FormatBGR888Blue:
			r, g, b := p[0], p[1], p[2]
			if f == FormatBGR888Blue {
				r, b = b, r
			}
			d[0], d[1], d[2], d[3] = r, g, b, 0xff
			// pure blue is the transparent key color
			if r == 0 && g == 0 && b == 0xff {
				d[0], d[1], d[2], d[3] = 0, 0, 0, 0
			}
		case FormatRGB565:
			r, g, b := rgb565(binary.LittleEndian.Uint16(p))
			d[0], d[1], d[2], d[3] = byte(r), byte(g), byte(b), 0xff
		case FormatBGR565:
			r, g, b := rgb565(binary.LittleEndian.Uint16(p))
			d[0], d[1], d[2], d[3] = byte(b), byte(g), byte(r), 0xff
		case FormatI8:
			d[0], d[1], d[2], d[3] = p[0], p[0], p[0], 0xff
		case FormatIA88:
			d[0], d[1], d[2], d[3] = p[0], p[0], p[0], p[1]
		case FormatA8:
			d[0], d[1], d[2], d[3] = 0, 0, 0, p[0]
		case FormatARGB8888:
			d[0], d[1], d[2], d[3] = p[1], p[2], p[3], p[0]
		case FormatBGRA8888:
			d[0], d[1], d[2], d[3] = p[2], p[1], p[0], p[3]
		case FormatBGRX8888:
			d[0], d[1], d[2], d[3] = p[2], p[1], p[0], 0xff
		case FormatBGRX5551, FormatBGRA5551:
			v := binary.LittleEndian.Uint16(p)
			d[0] = expand5(v >> 10)
			d[1] = expand5(v >> 5)
			d[2] = expand5(v)
			d[3] = 0xff
			if f == FormatBGRA5551 && v&0x8000 == 0 {
				d[3] = 0
			}
		case FormatBGRA4444:
			v := binary.LittleEndian.Uint16(p)
			d[0] = expand4(v >> 8)
			d[1] = expand4(v >> 4)
			d[2] = expand4(v)
			d[3] = expand4(v >> 12)
		case FormatUV88:
			d[0], d[1], d[2], d[3] = p[0], p[1], 0, 0xff
		case FormatRGBA16161616:
			for c := 0; c < 4; c++ {
				d[c] = p[c*2+1]
			}
		case FormatRGBA16161616F:
			for c := 0; c < 4; c++ {
				v := halfToFloat(binary.LittleEndian.Uint16(p[c*2:]))
				d[c] = byte(math.Round(float64(clamp01(v)) * 255))
			}
		}
	}
	return dst
}

func expand5(v uint16) byte {
	v &= 0x1f
	return byte(v<<3 | v>>2)
}

func expand4(v uint16) byte {
	v &= 0xf
	return byte(v<<4 | v)
}

func clamp01(v float32) float32 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func halfToFloat(h uint16) float32 {
	sign := uint32(h>>15) << 31
	exp := uint32(h>>10) & 0x1f
	mant := uint32(h) & 0x3ff
	switch {
	case exp == 0 && mant == 0:
		return math.Float32frombits(sign)
	case exp == 0:
		// subnormal
		f := float32(mant) / 1024 * float32(math.Pow(2, -14))
		if sign != 0 {
			return -f
		}
		return f
	case exp == 0x1f:
		return math.Float32frombits(sign | 0x7f800000 | mant<<13)
	}
	return math.Float32frombits(sign | (exp+112)<<23 | mant<<13)
}
