// SPDX-License-Identifier: GPL-2.0-or-later

package mdl

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// readVTX walks body part -> model 0 -> LOD 0 -> mesh -> strip group ->
// strip and appends triangles that index m.Vertices.
func (m *Model) readVTX(data []byte, models []modelRef) error {
	if len(data) < vtxHeaderSize {
		return errors.Wrap(ErrTruncatedSection, "vtx header")
	}
	var h vtxHeader
	if err := read(data, &h); err != nil {
		return errors.Wrap(ErrTruncatedSection, err.Error())
	}
	if h.Version != vtxVersion {
		return errors.Wrapf(ErrVersionUnsupported, "vtx %d", h.Version)
	}
	bps, err := section(data, h.BodyPartOffset, h.NumBodyParts, vtxBodyPartSize, "vtx body parts")
	if err != nil {
		return err
	}
	for bi := 0; bi < int(h.NumBodyParts) && bi < len(models); bi++ {
		ref := models[bi]
		var bp vtxPair
		if err := read(bps[bi*vtxBodyPartSize:], &bp); err != nil {
			return errors.Wrap(ErrTruncatedSection, err.Error())
		}
		if bp.Count == 0 {
			continue
		}
		bpOff := h.BodyPartOffset + int32(bi*vtxBodyPartSize)
		msec, err := section(data, bpOff+bp.Offset, 1, vtxModelSize, "vtx model")
		if err != nil {
			return err
		}
		var mod vtxPair
		if err := read(msec, &mod); err != nil {
			return errors.Wrap(ErrTruncatedSection, err.Error())
		}
		if mod.Count == 0 {
			continue
		}
		modOff := bpOff + bp.Offset
		lsec, err := section(data, modOff+mod.Offset, 1, vtxLODSize, "vtx lod")
		if err != nil {
			return err
		}
		var lod vtxPair
		if err := read(lsec, &lod); err != nil {
			return errors.Wrap(ErrTruncatedSection, err.Error())
		}
		lodOff := modOff + mod.Offset
		meshes, err := section(data, lodOff+lod.Offset, lod.Count, vtxMeshSize, "vtx meshes")
		if err != nil {
			return err
		}
		for mi := 0; mi < int(lod.Count); mi++ {
			if mi >= len(ref.meshes) {
				return errors.Wrapf(ErrTruncatedSection, "vtx mesh %d has no mdl mesh", mi)
			}
			dm := ref.meshes[mi]
			var mh vtxPair
			if err := read(meshes[mi*vtxMeshSize:], &mh); err != nil {
				return errors.Wrap(ErrTruncatedSection, err.Error())
			}
			meshOff := lodOff + lod.Offset + int32(mi*vtxMeshSize)
			first := len(m.Indices)
			base := ref.firstVertex + int(dm.VertexOffset)
			if err := m.readStripGroups(data, meshOff+mh.Offset, mh.Count, base); err != nil {
				return err
			}
			if n := len(m.Indices) - first; n > 0 {
				m.Meshes = append(m.Meshes, Mesh{Material: int(dm.Material), FirstIndex: first, IndexCount: n})
			}
		}
	}
	return nil
}

func (m *Model) readStripGroups(data []byte, off, count int32, base int) error {
	groups, err := section(data, off, count, vtxStripGroupSize, "vtx strip groups")
	if err != nil {
		return err
	}
	for gi := int32(0); gi < count; gi++ {
		var g vtxStripGroup
		if err := read(groups[gi*vtxStripGroupSize:], &g); err != nil {
			return errors.Wrap(ErrTruncatedSection, err.Error())
		}
		gOff := off + gi*vtxStripGroupSize
		vsec, err := section(data, gOff+g.VertOffset, g.NumVerts, vtxVertexSize, "vtx vertices")
		if err != nil {
			return err
		}
		isec, err := section(data, gOff+g.IndexOffset, g.NumIndices, 2, "vtx indices")
		if err != nil {
			return err
		}
		ssec, err := section(data, gOff+g.StripOffset, g.NumStrips, vtxStripSize, "vtx strips")
		if err != nil {
			return err
		}
		// strip group index -> model vertex
		lookup := func(i int) (uint32, error) {
			if i < 0 || i >= int(g.NumIndices) {
				return 0, errors.Wrapf(ErrTruncatedSection, "vtx index %d", i)
			}
			vi := int(binary.LittleEndian.Uint16(isec[i*2:]))
			if vi >= int(g.NumVerts) {
				return 0, errors.Wrapf(ErrTruncatedSection, "vtx vertex %d", vi)
			}
			var v vtxVertex
			if err := read(vsec[vi*vtxVertexSize:], &v); err != nil {
				return 0, errors.Wrap(ErrTruncatedSection, err.Error())
			}
			// base comes from signed mdl offsets
			id := base + int(v.OrigMeshID)
			if id < 0 || id >= len(m.Vertices) {
				return 0, errors.Wrapf(ErrTruncatedSection, "vvd vertex %d of %d", id, len(m.Vertices))
			}
			return uint32(id), nil
		}
		for si := int32(0); si < g.NumStrips; si++ {
			var s vtxStrip
			if err := read(ssec[si*vtxStripSize:], &s); err != nil {
				return errors.Wrap(ErrTruncatedSection, err.Error())
			}
			start, n := int(s.IndexOffset), int(s.NumIndices)
			switch {
			case s.Flags&stripTriStrip != 0:
				for k := 0; k+2 < n; k++ {
					a, b, c := start+k, start+k+1, start+k+2
					if k%2 == 1 {
						a, b = b, a
					}
					if err := m.addTriangle(lookup, a, b, c); err != nil {
						return err
					}
				}
			default:
				for k := 0; k+2 < n; k += 3 {
					if err := m.addTriangle(lookup, start+k, start+k+1, start+k+2); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func (m *Model) addTriangle(lookup func(int) (uint32, error), a, b, c int) error {
	for _, i := range [3]int{a, b, c} {
		v, err := lookup(i)
		if err != nil {
			return err
		}
		m.Indices = append(m.Indices, v)
	}
	return nil
}
