// SPDX-License-Identifier: GPL-2.0-or-later

package mdl

import (
	"github.com/pkg/errors"

	"goquell/math/vec"
)

// decodeVVD returns the LOD 0 vertices with the fixup table applied.
func decodeVVD(data []byte) ([]Vertex, error) {
	if len(data) < vvdHeaderSize {
		return nil, errors.Wrap(ErrTruncatedSection, "vvd header")
	}
	var h vvdHeader
	if err := read(data, &h); err != nil {
		return nil, errors.Wrap(ErrTruncatedSection, err.Error())
	}
	if h.ID != vvdMagic {
		return nil, errors.Wrap(ErrBadMagic, "vvd")
	}
	if h.Version != vvdVersion {
		return nil, errors.Wrapf(ErrVersionUnsupported, "vvd %d", h.Version)
	}
	count := h.LODVertices[0]
	raw, err := section(data, h.VertexStart, count, vvdVertexSize, "vvd vertices")
	if err != nil {
		return nil, err
	}
	all := make([]Vertex, count)
	for i := range all {
		var v vvdVertex
		if err := read(raw[i*vvdVertexSize:], &v); err != nil {
			return nil, errors.Wrap(ErrTruncatedSection, err.Error())
		}
		all[i] = Vertex{Position: vec.Vec3(v.Pos), Normal: vec.Vec3(v.Normal), UV: v.UV}
	}
	if h.NumFixups == 0 {
		return all, nil
	}
	fsec, err := section(data, h.FixupStart, h.NumFixups, fixupSize, "vvd fixups")
	if err != nil {
		return nil, err
	}
	// the fixup source ids index the full vertex table, which can be larger
	// than the LOD 0 count
	fixups := make([]vvdFixup, h.NumFixups)
	var total int64
	for i := range fixups {
		f := &fixups[i]
		if err := read(fsec[i*fixupSize:], f); err != nil {
			return nil, errors.Wrap(ErrTruncatedSection, err.Error())
		}
		if f.LOD < 0 || f.Source < 0 || f.Count < 0 {
			return nil, errors.Wrapf(ErrTruncatedSection, "vvd fixup %d", i)
		}
		if end := int64(f.Source) + int64(f.Count); end > total {
			total = end
		}
	}
	if total > int64(len(data)/vvdVertexSize) {
		return nil, errors.Wrapf(ErrTruncatedSection, "vvd fixups reach vertex %d", total)
	}
	if total > int64(count) {
		raw, err = section(data, h.VertexStart, int32(total), vvdVertexSize, "vvd vertices")
		if err != nil {
			return nil, err
		}
		for i := int64(count); i < total; i++ {
			var v vvdVertex
			if err := read(raw[i*vvdVertexSize:], &v); err != nil {
				return nil, errors.Wrap(ErrTruncatedSection, err.Error())
			}
			all = append(all, Vertex{Position: vec.Vec3(v.Pos), Normal: vec.Vec3(v.Normal), UV: v.UV})
		}
	}
	out := make([]Vertex, 0, count)
	for i, f := range fixups {
		lo, hi := int64(f.Source), int64(f.Source)+int64(f.Count)
		if hi > int64(len(all)) {
			return nil, errors.Wrapf(ErrTruncatedSection, "vvd fixup %d ends at %d of %d", i, hi, len(all))
		}
		out = append(out, all[lo:hi]...)
	}
	return out, nil
}
