// SPDX-License-Identifier: GPL-2.0-or-later

// Package vtf reads Valve texture files.
package vtf

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"

	qmath "goquell/math"
	"goquell/texture"
)

var (
	ErrBadMagic           = errors.New("not a vtf file")
	ErrVersionUnsupported = errors.New("unsupported vtf version")
)

const (
	FlagEnvMap = 0x4000

	headerMin = 64
	// 7.2 added the depth field, headers from 7.2 on are 80 bytes
	headerMin72 = 80

	// resource tags
	tagLowRes  = 0x01
	tagHighRes = 0x30
)

var magic = []byte("VTF\x00")

// Header is the fixed part of a vtf file.
type Header struct {
	Major, Minor uint32
	HeaderSize   uint32
	Width        uint16
	Height       uint16
	Flags        uint32
	Frames       uint16
	FirstFrame   uint16
	Reflectivity [3]float32
	BumpScale    float32
	Format       texture.Format
	MipCount     uint8
	LowFormat    texture.Format
	LowWidth     uint8
	LowHeight    uint8
	Depth        uint16
}

type rawHeader struct {
	Magic        [4]byte
	Major, Minor uint32
	HeaderSize   uint32
	Width        uint16
	Height       uint16
	Flags        uint32
	Frames       uint16
	FirstFrame   uint16
	_            [4]byte
	Reflectivity [3]float32
	_            [4]byte
	BumpScale    float32
	Format       int32
	MipCount     uint8
	LowFormat    int32
	LowWidth     uint8
	LowHeight    uint8
}

// ReadHeader parses and validates the header of data.
func ReadHeader(data []byte) (*Header, error) {
	if len(data) < headerMin || !bytes.Equal(data[:4], magic) {
		return nil, ErrBadMagic
	}
	var rh rawHeader
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &rh); err != nil {
		return nil, errors.Wrap(ErrBadMagic, err.Error())
	}
	if rh.Major != 7 || rh.Minor > 5 {
		return nil, errors.Wrapf(ErrVersionUnsupported, "%d.%d", rh.Major, rh.Minor)
	}
	h := &Header{
		Major:        rh.Major,
		Minor:        rh.Minor,
		HeaderSize:   rh.HeaderSize,
		Width:        rh.Width,
		Height:       rh.Height,
		Flags:        rh.Flags,
		Frames:       rh.Frames,
		FirstFrame:   rh.FirstFrame,
		Reflectivity: rh.Reflectivity,
		BumpScale:    rh.BumpScale,
		Format:       texture.Format(rh.Format),
		MipCount:     rh.MipCount,
		LowFormat:    texture.Format(rh.LowFormat),
		LowWidth:     rh.LowWidth,
		LowHeight:    rh.LowHeight,
		Depth:        1,
	}
	if h.Minor >= 2 {
		if len(data) < headerMin72 {
			return nil, errors.Wrapf(ErrBadMagic, "%d byte 7.%d header", len(data), h.Minor)
		}
		// depth follows the low res size at 63
		h.Depth = binary.LittleEndian.Uint16(data[63:])
		if h.Depth == 0 {
			h.Depth = 1
		}
	}
	if h.Frames == 0 {
		h.Frames = 1
	}
	if h.MipCount == 0 {
		h.MipCount = 1
	}
	return h, nil
}

func (h *Header) faces() int {
	if h.Flags&FlagEnvMap == 0 {
		return 1
	}
	// pre 7.5 cube maps carry a seventh sphere map face
	if h.Minor < 5 && h.FirstFrame != 0xffff {
		return 7
	}
	return 6
}

func (h *Header) lowResSize() int {
	if h.LowFormat == texture.FormatNone || h.LowWidth == 0 || h.LowHeight == 0 {
		return 0
	}
	return texture.MipSize(h.LowFormat, int(h.LowWidth), int(h.LowHeight), 0)
}

// imageOffset locates the high resolution data.
func (h *Header) imageOffset(data []byte) (int, error) {
	if h.Minor < 3 {
		return int(h.HeaderSize) + h.lowResSize(), nil
	}
	// 7.3+: 3 bytes padding, resource count, 8 bytes padding, entries
	const countAt = 68
	const entriesAt = 80
	if len(data) < entriesAt {
		return 0, errors.Wrap(texture.ErrSizeMismatch, "resource table")
	}
	n := int(binary.LittleEndian.Uint32(data[countAt:]))
	if entriesAt+n*8 > len(data) {
		return 0, errors.Wrapf(texture.ErrSizeMismatch, "%d resources", n)
	}
	for i := 0; i < n; i++ {
		e := data[entriesAt+i*8:]
		if e[0] == tagHighRes && e[1] == 0 && e[2] == 0 {
			return int(binary.LittleEndian.Uint32(e[4:])), nil
		}
	}
	return 0, errors.Wrap(texture.ErrSizeMismatch, "no high resolution image resource")
}

// Decode returns frame 0, face 0, slice 0 of every mip, largest first.
func Decode(data []byte) (*texture.Texture, error) {
	h, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}
	f := h.Format
	if !f.Known() {
		return nil, errors.Wrapf(texture.ErrUnsupportedFormat, "%v", f)
	}
	off, err := h.imageOffset(data)
	if err != nil {
		return nil, err
	}
	w, ht, mips := int(h.Width), int(h.Height), int(h.MipCount)
	frames, faces, depth := int(h.Frames), h.faces(), int(h.Depth)

	// stored smallest mip first; each level holds frames*faces*slices images
	starts := make([]int, mips)
	pos := off
	for l := mips - 1; l >= 0; l-- {
		starts[l] = pos
		slices := qmath.Max1(depth >> uint(l))
		pos += frames * faces * slices * texture.MipSize(f, w, ht, l)
	}
	if off < 0 || pos > len(data) {
		return nil, errors.Wrapf(texture.ErrSizeMismatch, "%v %dx%d needs %d bytes, have %d", f, w, ht, pos, len(data))
	}
	chain := make([]byte, 0, texture.ChainSize(f, w, ht, mips))
	for l := 0; l < mips; l++ {
		n := texture.MipSize(f, w, ht, l)
		chain = append(chain, data[starts[l]:starts[l]+n]...)
	}
	t, err := texture.Decode(chain, f, w, ht, mips)
	if err != nil {
		return nil, err
	}
	t.Flags = h.Flags
	return t, nil
}
