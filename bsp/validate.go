// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bytes"

	"github.com/pkg/errors"

	"goquell/math/vec"
)

func badIndex(format string, args ...any) error {
	return errors.Wrapf(ErrBadIndex, format, args...)
}

// validate checks the references between essential lumps and resolves the
// texture names.
func (m *Map) validate() error {
	m.TexNames = make([]string, len(m.TexData))
	for i, td := range m.TexData {
		id := int(td.NameStringTableID)
		if id < 0 || id >= len(m.stringTable) {
			return badIndex("texdata %d: string table index %d", i, id)
		}
		off := int(m.stringTable[id])
		if off < 0 || off >= len(m.stringData) {
			return badIndex("texdata %d: string offset %d", i, off)
		}
		s := m.stringData[off:]
		if n := bytes.IndexByte(s, 0); n >= 0 {
			s = s[:n]
		}
		m.TexNames[i] = string(s)
	}
	for i, ti := range m.TexInfos {
		if ti.TexData < -1 || int(ti.TexData) >= len(m.TexData) {
			return badIndex("texinfo %d: texdata %d", i, ti.TexData)
		}
	}
	for i, e := range m.Edges {
		if int(e[0]) >= len(m.Vertexes) || int(e[1]) >= len(m.Vertexes) {
			return badIndex("edge %d: vertex %v", i, e)
		}
	}
	for i, se := range m.SurfEdges {
		a := int64(se)
		if a < 0 {
			a = -a
		}
		if a >= int64(len(m.Edges)) {
			return badIndex("surfedge %d: edge %d", i, se)
		}
	}
	for i := range m.Faces {
		f := &m.Faces[i]
		if int(f.PlaneNum) >= len(m.Planes) {
			return badIndex("face %d: plane %d", i, f.PlaneNum)
		}
		if f.TexInfo < 0 || int(f.TexInfo) >= len(m.TexInfos) {
			return badIndex("face %d: texinfo %d", i, f.TexInfo)
		}
		if f.FirstEdge < 0 || f.NumEdges < 0 || int64(f.FirstEdge)+int64(f.NumEdges) > int64(len(m.SurfEdges)) {
			return badIndex("face %d: edges %d+%d", i, f.FirstEdge, f.NumEdges)
		}
	}
	for i, sm := range m.Models {
		if sm.FirstFace < 0 || sm.NumFaces < 0 || int64(sm.FirstFace)+int64(sm.NumFaces) > int64(len(m.Faces)) {
			return badIndex("model %d: faces %d+%d", i, sm.FirstFace, sm.NumFaces)
		}
	}
	return nil
}

// validateOptional drops non-essential lumps whose references are broken.
func (m *Map) validateOptional() {
	if err := m.validateTree(); err != nil {
		m.degrade(LumpNodes, err)
	}
	if err := m.validateDisplacements(); err != nil {
		m.degrade(LumpDispInfo, err)
	}
	if m.Visibility != nil && len(m.Leafs) > 0 {
		for i, l := range m.Leafs {
			if int(l.Cluster) >= m.Visibility.NumClusters {
				m.degrade(LumpVisibility, badIndex("leaf %d: cluster %d of %d", i, l.Cluster, m.Visibility.NumClusters))
				break
			}
		}
	}
}

func (m *Map) validateTree() error {
	if len(m.Nodes) == 0 && len(m.Leafs) == 0 {
		return nil
	}
	if len(m.Leafs) == 0 {
		return errors.New("nodes without leafs")
	}
	for i, n := range m.Nodes {
		if n.PlaneNum < 0 || int(n.PlaneNum) >= len(m.Planes) {
			return badIndex("node %d: plane %d", i, n.PlaneNum)
		}
		for _, c := range n.Children {
			if c >= 0 && int(c) >= len(m.Nodes) {
				return badIndex("node %d: child node %d", i, c)
			}
			if c < 0 && int(-1-c) >= len(m.Leafs) {
				return badIndex("node %d: child leaf %d", i, -1-c)
			}
		}
	}
	for i, sm := range m.Models {
		if len(m.Nodes) > 0 && (sm.HeadNode < 0 || int(sm.HeadNode) >= len(m.Nodes)) {
			return badIndex("model %d: head node %d", i, sm.HeadNode)
		}
	}
	return nil
}

func (m *Map) validateDisplacements() error {
	for i, d := range m.DispInfos {
		if d.Power < 1 || d.Power > 4 {
			return badIndex("dispinfo %d: power %d", i, d.Power)
		}
		n := d.VertsPerSide()
		if d.DispVertStart < 0 || int(d.DispVertStart)+n*n > len(m.DispVerts) {
			return badIndex("dispinfo %d: verts %d+%d", i, d.DispVertStart, n*n)
		}
		if int(d.MapFace) >= len(m.Faces) {
			return badIndex("dispinfo %d: face %d", i, d.MapFace)
		}
	}
	return nil
}

// TextureName returns the material name of a texinfo, or "" when it has none.
func (m *Map) TextureName(texInfo int) string {
	if texInfo < 0 || texInfo >= len(m.TexInfos) {
		return ""
	}
	td := m.TexInfos[texInfo].TexData
	if td < 0 {
		return ""
	}
	return m.TexNames[td]
}

// TexSize returns the texture size of a texinfo, at least 1x1.
func (m *Map) TexSize(texInfo int) (float32, float32) {
	w, h := float32(1), float32(1)
	if texInfo >= 0 && texInfo < len(m.TexInfos) {
		if td := m.TexInfos[texInfo].TexData; td >= 0 {
			if d := m.TexData[td]; d.Width > 0 && d.Height > 0 {
				w, h = float32(d.Width), float32(d.Height)
			}
		}
	}
	return w, h
}

// FaceVertices appends the polygon of a face to dst, honouring the surfedge
// direction.
func (m *Map) FaceVertices(face int, dst []vec.Vec3) []vec.Vec3 {
	f := &m.Faces[face]
	for i := int32(0); i < int32(f.NumEdges); i++ {
		se := m.SurfEdges[f.FirstEdge+i]
		var v uint16
		if se >= 0 {
			v = m.Edges[se][0]
		} else {
			v = m.Edges[-se][1]
		}
		dst = append(dst, m.Vertexes[v])
	}
	return dst
}

// FacesOf returns the face range of a brush model.
func (m *Map) FacesOf(model int) (first, count int) {
	if model < 0 || model >= len(m.Models) {
		return 0, 0
	}
	return int(m.Models[model].FirstFace), int(m.Models[model].NumFaces)
}
