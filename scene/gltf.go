// SPDX-License-Identifier: GPL-2.0-or-later

package scene

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"goquell/filesystem"
	qimage "goquell/image"
	"goquell/math/vec"
	"goquell/mdl"
	"goquell/mesh"
	"goquell/texture"
	"goquell/vmt"
)

// TextureSource supplies decoded textures to ExportGLTF. If it also has a
// Material(name) (*vmt.Material, error) method, model materials are
// resolved through it.
type TextureSource interface {
	Texture(name string) (*texture.Texture, error)
}

type materialSource interface {
	Material(name string) (*vmt.Material, error)
}

type exporter struct {
	doc      *gltf.Document
	textures TextureSource
	sampler  uint32
	// texture index by texture name
	images    map[string]uint32
	materials map[string]uint32
	meshes    map[string]uint32
	lightmap  *uint32
	s         *Scene
}

// ExportGLTF writes the scene as binary glTF.
func ExportGLTF(w io.Writer, s *Scene, textures TextureSource) error {
	doc, err := GLTFDocument(s, textures)
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return errors.Wrap(enc.Encode(doc), "encoding glb")
}

// GLTFDocument converts the scene: the world as one mesh with a primitive
// per batch, and a node per visible studio model entity. Material base
// textures are embedded as PNG, the lightmap atlas is referenced from the
// extras of lightmapped materials and read with TEXCOORD_1.
func GLTFDocument(s *Scene, textures TextureSource) (*gltf.Document, error) {
	x := &exporter{
		doc:       gltf.NewDocument(),
		textures:  textures,
		images:    make(map[string]uint32),
		materials: make(map[string]uint32),
		meshes:    make(map[string]uint32),
		s:         s,
	}
	x.sampler = uint32(len(x.doc.Samplers))
	x.doc.Samplers = append(x.doc.Samplers, &gltf.Sampler{
		MinFilter: gltf.MinLinear,
		MagFilter: gltf.MagLinear,
		WrapS:     gltf.WrapRepeat,
		WrapT:     gltf.WrapRepeat,
	})
	if err := x.lightmapTexture(); err != nil {
		return nil, err
	}
	if err := x.world(); err != nil {
		return nil, err
	}
	for _, e := range s.Entities {
		if !e.Visible || (e.Ref.Kind != RefModel && e.Ref.Kind != RefStaticProp) {
			continue
		}
		md := s.Models[filesystem.Normalize(e.Ref.Path)]
		if md == nil {
			continue
		}
		mi, ok, err := x.model(md)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		x.node(&gltf.Node{
			Name:   fmt.Sprintf("%s_%d", e.ClassName, e.Index),
			Mesh:   gltf.Index(mi),
			Matrix: [16]float32(e.Transform),
		})
	}
	return x.doc, nil
}

func (x *exporter) node(n *gltf.Node) {
	x.doc.Scenes[0].Nodes = append(x.doc.Scenes[0].Nodes, uint32(len(x.doc.Nodes)))
	x.doc.Nodes = append(x.doc.Nodes, n)
}

func (x *exporter) image(name string, data []byte, w, h int) (uint32, error) {
	b, err := qimage.PNG(data, w, h)
	if err != nil {
		return 0, errors.Wrapf(err, "texture %q", name)
	}
	img, err := modeler.WriteImage(x.doc, name, "image/png", bytes.NewReader(b))
	if err != nil {
		return 0, errors.Wrapf(err, "texture %q", name)
	}
	ti := uint32(len(x.doc.Textures))
	x.doc.Textures = append(x.doc.Textures, &gltf.Texture{
		Name:    name,
		Sampler: gltf.Index(x.sampler),
		Source:  gltf.Index(img),
	})
	return ti, nil
}

func (x *exporter) lightmapTexture() error {
	lm := x.s.Lightmap
	if lm == nil || len(lm.Pix) == 0 {
		return nil
	}
	ti, err := x.image("lightmap", lm.Pix, lm.Width, lm.Height)
	if err != nil {
		return err
	}
	x.lightmap = &ti
	return nil
}

// texture returns the glTF texture of a texture name, decoding it once.
func (x *exporter) texture(name string) (*uint32, error) {
	if name == "" || x.textures == nil {
		return nil, nil
	}
	if ti, ok := x.images[name]; ok {
		return &ti, nil
	}
	t, err := x.textures.Texture(name)
	if err != nil || t == nil || len(t.Mips) == 0 {
		return nil, nil
	}
	ti, err := x.image(name, t.Mips[0], t.Width, t.Height)
	if err != nil {
		return nil, err
	}
	x.images[name] = ti
	return &ti, nil
}

// material returns the glTF material of a material id.
func (x *exporter) material(name string, m *vmt.Material, lightmapped bool) (uint32, error) {
	key := name
	if lightmapped {
		key += "\x00lm"
	}
	if mi, ok := x.materials[key]; ok {
		return mi, nil
	}
	if m == nil {
		m = vmt.Default(name)
	}
	gm := &gltf.Material{
		Name:        name,
		DoubleSided: m.Flags&vmt.TwoSided != 0,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{m.Color[0], m.Color[1], m.Color[2], m.Alpha},
			MetallicFactor:  new(float32),
		},
	}
	if gm.Name == "" {
		gm.Name = "default"
	}
	switch {
	case m.Flags&(vmt.Translucent|vmt.Additive) != 0:
		gm.AlphaMode = gltf.AlphaBlend
	case m.Flags&vmt.AlphaTest != 0:
		gm.AlphaMode = gltf.AlphaMask
	}
	ti, err := x.texture(m.BaseTexture)
	if err != nil {
		return 0, err
	}
	if ti != nil {
		gm.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: *ti}
	}
	if lightmapped && x.lightmap != nil && m.Flags&(vmt.Unlit|vmt.Sky) == 0 {
		gm.Extras = map[string]any{"lightmap": *x.lightmap, "lightmapTexCoord": 1}
	}
	mi := uint32(len(x.doc.Materials))
	x.doc.Materials = append(x.doc.Materials, gm)
	x.materials[key] = mi
	return mi, nil
}

func (x *exporter) world() error {
	if len(x.s.Batches) == 0 {
		return nil
	}
	gm := &gltf.Mesh{Name: "world"}
	for _, b := range x.s.Batches {
		p, err := x.batch(b)
		if err != nil {
			return err
		}
		gm.Primitives = append(gm.Primitives, p)
	}
	mi := uint32(len(x.doc.Meshes))
	x.doc.Meshes = append(x.doc.Meshes, gm)
	x.node(&gltf.Node{Name: "world", Mesh: gltf.Index(mi)})
	return nil
}

func (x *exporter) batch(b *mesh.Batch) (*gltf.Primitive, error) {
	n := len(b.Vertices)
	pos := make([][3]float32, n)
	nrm := make([][3]float32, n)
	uv := make([][2]float32, n)
	luv := make([][2]float32, n)
	for i, v := range b.Vertices {
		pos[i] = v.Position
		nrm[i] = v.Normal
		uv[i] = v.UV
		luv[i] = v.LightmapUV
	}
	mat, err := x.material(b.Material, b.Mat, true)
	if err != nil {
		return nil, err
	}
	indices := modeler.WriteIndices(x.doc, b.Indices)
	return &gltf.Primitive{
		Indices: gltf.Index(indices),
		Attributes: map[string]uint32{
			"POSITION":   modeler.WritePosition(x.doc, pos),
			"NORMAL":     modeler.WriteNormal(x.doc, nrm),
			"TEXCOORD_0": modeler.WriteTextureCoord(x.doc, uv),
			"TEXCOORD_1": modeler.WriteTextureCoord(x.doc, luv),
		},
		Material: gltf.Index(mat),
	}, nil
}

// modelMaterial resolves the first candidate path of a model material.
func (x *exporter) modelMaterial(md *mdl.Model, i int) (string, *vmt.Material) {
	paths := md.MaterialPaths(i)
	if ms, ok := x.textures.(materialSource); ok {
		for _, p := range paths {
			if m, err := ms.Material(p); err == nil && m != nil && !m.Default {
				return p, m
			}
		}
	}
	if len(paths) > 0 {
		return paths[0], nil
	}
	return "", nil
}

// model converts a studio model once and returns its mesh index. Vertices
// get the same unit and axis conversion as the world. Models without
// triangles have no mesh.
func (x *exporter) model(md *mdl.Model) (uint32, bool, error) {
	if mi, ok := x.meshes[md.Name()]; ok {
		return mi, true, nil
	}
	if len(md.Indices) == 0 {
		return 0, false, nil
	}
	n := len(md.Vertices)
	pos := make([][3]float32, n)
	nrm := make([][3]float32, n)
	uv := make([][2]float32, n)
	for i, v := range md.Vertices {
		pos[i] = convertPoint(v.Position, x.s.Scale, x.s.YUp)
		nrm[i] = v.Normal
		if x.s.YUp {
			nrm[i] = vec.ZUpToYUp(v.Normal)
		}
		uv[i] = v.UV
	}
	attrs := map[string]uint32{
		"POSITION":   modeler.WritePosition(x.doc, pos),
		"NORMAL":     modeler.WriteNormal(x.doc, nrm),
		"TEXCOORD_0": modeler.WriteTextureCoord(x.doc, uv),
	}
	gm := &gltf.Mesh{Name: md.Name()}
	for _, ms := range md.Meshes {
		if ms.IndexCount == 0 {
			continue
		}
		name, m := x.modelMaterial(md, ms.Material)
		mat, err := x.material(name, m, false)
		if err != nil {
			return 0, false, err
		}
		idx := modeler.WriteIndices(x.doc, md.Indices[ms.FirstIndex:ms.FirstIndex+ms.IndexCount])
		gm.Primitives = append(gm.Primitives, &gltf.Primitive{
			Indices:    gltf.Index(idx),
			Attributes: attrs,
			Material:   gltf.Index(mat),
		})
	}
	mi := uint32(len(x.doc.Meshes))
	x.doc.Meshes = append(x.doc.Meshes, gm)
	x.meshes[md.Name()] = mi
	return mi, true, nil
}
