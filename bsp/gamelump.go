// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// decodeGameLump reads the game lump directory and decodes the static props.
// Directory offsets are relative to the start of the file.
func decodeGameLump(m *Map, f []byte, l Lump) error {
	b := slice(f, l)
	if len(b) == 0 {
		return nil
	}
	if len(b) < 4 {
		return errors.Wrap(ErrTruncatedLump, "game lump count")
	}
	n := int(int32(binary.LittleEndian.Uint32(b)))
	if n < 0 || 4+int64(n)*16 > int64(len(b)) {
		return errors.Wrapf(ErrTruncatedLump, "%d game lumps", n)
	}
	entries := make([]gameLumpEntry, n)
	if err := binary.Read(bytes.NewReader(b[4:]), binary.LittleEndian, entries); err != nil {
		return errors.Wrap(ErrTruncatedLump, err.Error())
	}
	for _, e := range entries {
		if e.ID != gameLumpStaticProps {
			continue
		}
		if e.Flags&1 != 0 {
			return errors.Wrap(ErrCompressedLump, "static props")
		}
		if e.FileOfs < 0 || e.FileLen < 0 || int64(e.FileOfs)+int64(e.FileLen) > int64(len(f)) {
			return errors.Wrapf(ErrTruncatedLump, "static props at %d+%d", e.FileOfs, e.FileLen)
		}
		props, err := decodeStaticProps(f[e.FileOfs:e.FileOfs+e.FileLen], e.Version)
		if err != nil {
			return errors.Wrapf(err, "static props v%d", e.Version)
		}
		m.StaticProps = props
	}
	return nil
}

type propReader struct {
	b   []byte
	pos int
}

func (r *propReader) int32() (int, error) {
	if r.pos+4 > len(r.b) {
		return 0, ErrTruncatedLump
	}
	v := int32(binary.LittleEndian.Uint32(r.b[r.pos:]))
	r.pos += 4
	if v < 0 {
		return 0, errors.Wrapf(ErrTruncatedLump, "negative count %d", v)
	}
	return int(v), nil
}

func (r *propReader) bytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.b) {
		return nil, ErrTruncatedLump
	}
	s := r.b[r.pos : r.pos+n]
	r.pos += n
	return s, nil
}

func decodeStaticProps(b []byte, version uint16) ([]StaticProp, error) {
	if version < 4 || version > 11 {
		return nil, errors.Wrapf(ErrVersionUnsupported, "static prop version %d", version)
	}
	r := &propReader{b: b}
	nDict, err := r.int32()
	if err != nil {
		return nil, err
	}
	if int64(nDict)*128 > int64(len(r.b)-r.pos) {
		return nil, errors.Wrapf(ErrTruncatedLump, "%d prop models in %d bytes", nDict, len(r.b)-r.pos)
	}
	names := make([]string, nDict)
	for i := range names {
		raw, err := r.bytes(128)
		if err != nil {
			return nil, err
		}
		if z := bytes.IndexByte(raw, 0); z >= 0 {
			raw = raw[:z]
		}
		names[i] = string(raw)
	}
	nLeafs, err := r.int32()
	if err != nil {
		return nil, err
	}
	if _, err := r.bytes(nLeafs * 2); err != nil {
		return nil, err
	}
	nProps, err := r.int32()
	if err != nil {
		return nil, err
	}
	if nProps == 0 {
		return nil, nil
	}
	rest := len(r.b) - r.pos
	stride := rest / nProps
	if stride < 56 {
		return nil, errors.Wrapf(ErrTruncatedLump, "prop stride %d", stride)
	}
	props := make([]StaticProp, nProps)
	for i := range props {
		raw, err := r.bytes(stride)
		if err != nil {
			return nil, err
		}
		var p staticPropV4
		if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, &p); err != nil {
			return nil, errors.Wrapf(ErrTruncatedLump, "prop %d: %v", i, err)
		}
		if int(p.PropType) >= len(names) {
			return nil, errors.Wrapf(ErrBadIndex, "prop %d: model %d of %d", i, p.PropType, len(names))
		}
		props[i] = StaticProp{
			Origin:         p.Origin,
			Angles:         p.Angles,
			Model:          names[p.PropType],
			PropType:       p.PropType,
			FirstLeaf:      p.FirstLeaf,
			LeafCount:      p.LeafCount,
			Solid:          p.Solid,
			Flags:          p.Flags,
			Skin:           p.Skin,
			FadeMinDist:    p.FadeMinDist,
			FadeMaxDist:    p.FadeMaxDist,
			LightingOrigin: p.LightingOrigin,
			Scale:          1,
		}
		if version >= 11 {
			s := math.Float32frombits(binary.LittleEndian.Uint32(raw[stride-4:]))
			if s > 0 {
				props[i].Scale = s
			}
		}
	}
	return props, nil
}
