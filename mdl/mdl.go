// SPDX-License-Identifier: GPL-2.0-or-later

// Package mdl loads the bind pose of studio models from their .mdl, .vvd
// and .vtx parts.
package mdl

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"

	"goquell/math/vec"
)

var (
	ErrBadMagic           = errors.New("bad model magic")
	ErrVersionUnsupported = errors.New("unsupported model version")
	ErrTruncatedSection   = errors.New("truncated model section")
	ErrBadSkeleton        = errors.New("bad model skeleton")
)

// Files holds the raw parts of one model.
type Files struct {
	MDL []byte
	VVD []byte
	VTX []byte
}

type Vertex struct {
	Position vec.Vec3
	Normal   vec.Vec3
	UV       [2]float32
}

// Mesh is a range of Model.Indices drawn with one material.
type Mesh struct {
	Material   int
	FirstIndex int
	IndexCount int
}

type Bone struct {
	Name     string
	Parent   int
	Position vec.Vec3
	Rotation [4]float32
}

type Model struct {
	name         string
	Version      int
	Vertices     []Vertex
	Indices      []uint32
	Meshes       []Mesh
	Materials    []string
	MaterialDirs []string
	Bones        []Bone
	mins, maxs   vec.Vec3
}

func (m *Model) Name() string   { return m.name }
func (m *Model) Mins() vec.Vec3 { return m.mins }
func (m *Model) Maxs() vec.Vec3 { return m.maxs }

// MaterialPaths lists the candidate material paths of mesh material i in
// search order.
func (m *Model) MaterialPaths(i int) []string {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	dirs := m.MaterialDirs
	if len(dirs) == 0 {
		dirs = []string{""}
	}
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, d+m.Materials[i])
	}
	return out
}

// section bounds checks count records of size bytes at off.
func section(data []byte, off, count int32, size int, what string) ([]byte, error) {
	if count == 0 {
		return nil, nil
	}
	if off < 0 || count < 0 {
		return nil, errors.Wrapf(ErrTruncatedSection, "%s: offset %d count %d", what, off, count)
	}
	end := int64(off) + int64(count)*int64(size)
	if end > int64(len(data)) {
		return nil, errors.Wrapf(ErrTruncatedSection, "%s: %d bytes past end", what, end-int64(len(data)))
	}
	return data[off:end], nil
}

func read(b []byte, v any) error {
	return binary.Read(bytes.NewReader(b), binary.LittleEndian, v)
}

func cstring(data []byte, off int64) string {
	if off < 0 || off >= int64(len(data)) {
		return ""
	}
	b := data[off:]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// Decode combines the parts into one model. VVD and VTX may be empty, in
// which case the model has a skeleton and materials but no geometry.
func Decode(name string, f Files) (*Model, error) {
	data := f.MDL
	if len(data) < 8 || int32(binary.LittleEndian.Uint32(data)) != Magic {
		return nil, ErrBadMagic
	}
	if len(data) < headerSize {
		return nil, errors.Wrap(ErrTruncatedSection, "header")
	}
	var h header
	if err := read(data, &h); err != nil {
		return nil, errors.Wrap(ErrTruncatedSection, err.Error())
	}
	if h.Version < minVersion || h.Version > maxVersion {
		return nil, errors.Wrapf(ErrVersionUnsupported, "%d", h.Version)
	}
	m := &Model{
		name:    name,
		Version: int(h.Version),
		mins:    vec.Vec3(h.HullMin),
		maxs:    vec.Vec3(h.HullMax),
	}
	if err := m.readBones(data, &h); err != nil {
		return nil, err
	}
	if err := m.readMaterials(data, &h); err != nil {
		return nil, err
	}
	models, err := readModels(data, &h)
	if err != nil {
		return nil, err
	}
	if len(f.VVD) > 0 && len(f.VTX) > 0 {
		verts, err := decodeVVD(f.VVD)
		if err != nil {
			return nil, err
		}
		m.Vertices = verts
		if err := m.readVTX(f.VTX, models); err != nil {
			return nil, err
		}
	}
	if m.mins == (vec.Vec3{}) && m.maxs == (vec.Vec3{}) {
		var b vec.Bounds
		for _, v := range m.Vertices {
			b.Extend(v.Position)
		}
		if !b.Empty() {
			m.mins, m.maxs = b.Min, b.Max
		}
	}
	return m, nil
}

func (m *Model) readMaterials(data []byte, h *header) error {
	sec, err := section(data, h.TextureIndex, h.NumTextures, textureSize, "textures")
	if err != nil {
		return err
	}
	for i := 0; i < int(h.NumTextures); i++ {
		var t diskTexture
		if err := read(sec[i*textureSize:], &t); err != nil {
			return errors.Wrap(ErrTruncatedSection, err.Error())
		}
		base := int64(h.TextureIndex) + int64(i*textureSize)
		m.Materials = append(m.Materials, normalizeMaterial(cstring(data, base+int64(t.NameIndex))))
	}
	sec, err = section(data, h.CDTextureIndex, h.NumCDTextures, 4, "texture dirs")
	if err != nil {
		return err
	}
	for i := 0; i < int(h.NumCDTextures); i++ {
		off := int32(binary.LittleEndian.Uint32(sec[i*4:]))
		d := normalizeMaterial(cstring(data, int64(off)))
		if d != "" && d[len(d)-1] != '/' {
			d += "/"
		}
		m.MaterialDirs = append(m.MaterialDirs, d)
	}
	return m.applySkin(data, h)
}

// applySkin remaps mesh material slots through skin family 0.
func (m *Model) applySkin(data []byte, h *header) error {
	if h.NumSkinRef == 0 || h.NumSkinFamilies == 0 {
		return nil
	}
	sec, err := section(data, h.SkinIndex, h.NumSkinRef, 2, "skins")
	if err != nil {
		return err
	}
	mats := make([]string, h.NumSkinRef)
	for i := range mats {
		ref := int(int16(binary.LittleEndian.Uint16(sec[i*2:])))
		if ref >= 0 && ref < len(m.Materials) {
			mats[i] = m.Materials[ref]
		}
	}
	m.Materials = mats
	return nil
}

func normalizeMaterial(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c == '\\':
			b[i] = '/'
		case c >= 'A' && c <= 'Z':
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

type modelRef struct {
	firstVertex int
	meshes      []diskMesh
}

// readModels returns model 0 of every body part.
func readModels(data []byte, h *header) ([]modelRef, error) {
	sec, err := section(data, h.BodyPartIndex, h.NumBodyParts, bodyPartSize, "body parts")
	if err != nil {
		return nil, err
	}
	var out []modelRef
	for i := 0; i < int(h.NumBodyParts); i++ {
		var bp diskBodyPart
		if err := read(sec[i*bodyPartSize:], &bp); err != nil {
			return nil, errors.Wrap(ErrTruncatedSection, err.Error())
		}
		if bp.NumModels == 0 {
			out = append(out, modelRef{})
			continue
		}
		bpOff := h.BodyPartIndex + int32(i*bodyPartSize)
		msec, err := section(data, bpOff+bp.ModelIndex, 1, modelSize, "model")
		if err != nil {
			return nil, err
		}
		var dm diskModel
		if err := read(msec, &dm); err != nil {
			return nil, errors.Wrap(ErrTruncatedSection, err.Error())
		}
		ref := modelRef{firstVertex: int(dm.VertexIndex) / vvdVertexSize}
		mOff := bpOff + bp.ModelIndex
		meshSec, err := section(data, mOff+dm.MeshIndex, dm.NumMeshes, meshSize, "meshes")
		if err != nil {
			return nil, err
		}
		ref.meshes = make([]diskMesh, dm.NumMeshes)
		for j := range ref.meshes {
			if err := read(meshSec[j*meshSize:], &ref.meshes[j]); err != nil {
				return nil, errors.Wrap(ErrTruncatedSection, err.Error())
			}
		}
		out = append(out, ref)
	}
	return out, nil
}
