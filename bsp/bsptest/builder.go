// SPDX-License-Identifier: GPL-2.0-or-later

// Package bsptest writes small synthetic VBSP files for tests.
package bsptest

import (
	"bytes"
	"encoding/binary"

	"goquell/bsp"
	"goquell/math/vec"
)

// Prop describes one static prop for the game lump.
type Prop struct {
	Model  string
	Origin vec.Vec3
	Angles vec.Vec3
}

type Builder struct {
	Version     int32
	Entities    string
	Planes      []bsp.Plane
	TexData     []bsp.TexData
	TexNames    []string
	Vertexes    []vec.Vec3
	Nodes       []bsp.Node
	TexInfos    []bsp.TexInfo
	Faces       []bsp.Face
	Leafs       []bsp.Leaf
	Edges       []bsp.Edge
	SurfEdges   []int32
	Models      []bsp.Submodel
	DispInfos   []bsp.DispInfo
	DispVerts   []bsp.DispVert
	Visibility  []byte
	Lighting    []byte
	LightingHDR []byte
	Pakfile     []byte
	Props       []Prop

	// PropLump replaces the static prop lump encoded from Props.
	PropLump []byte

	// Patch rewrites lump directory entries after layout, for malformed input.
	Patch map[int]bsp.Lump
}

func New() *Builder {
	return &Builder{Version: 20}
}

// AddTexture registers a material of the given size and returns a texinfo
// projecting world x/y onto s/t with one texel per unit.
func (b *Builder) AddTexture(name string, w, h int32) int16 {
	b.TexNames = append(b.TexNames, name)
	b.TexData = append(b.TexData, bsp.TexData{
		NameStringTableID: int32(len(b.TexNames) - 1),
		Width:             w,
		Height:            h,
		ViewWidth:         w,
		ViewHeight:        h,
	})
	b.TexInfos = append(b.TexInfos, bsp.TexInfo{
		TextureVecs:  [2][4]float32{{1, 0, 0, 0}, {0, 1, 0, 0}},
		LightmapVecs: [2][4]float32{{1.0 / 16, 0, 0, 0}, {0, 1.0 / 16, 0, 0}},
		TexData:      int32(len(b.TexData) - 1),
	})
	return int16(len(b.TexInfos) - 1)
}

// AddPolygon adds a convex face through the given points. Every second edge
// is stored reversed to exercise negative surfedges.
func (b *Builder) AddPolygon(points []vec.Vec3, texInfo int16) int {
	e1 := vec.Sub(points[1], points[0])
	e2 := vec.Sub(points[2], points[0])
	n := vec.Cross(e1, e2).Normalize()
	b.Planes = append(b.Planes, bsp.Plane{Normal: n, Dist: vec.Dot(n, points[0])})
	base := len(b.Vertexes)
	b.Vertexes = append(b.Vertexes, points...)
	first := len(b.SurfEdges)
	for i := range points {
		v0 := uint16(base + i)
		v1 := uint16(base + (i+1)%len(points))
		if i%2 == 0 {
			b.Edges = append(b.Edges, bsp.Edge{v0, v1})
			b.SurfEdges = append(b.SurfEdges, int32(len(b.Edges)-1))
		} else {
			b.Edges = append(b.Edges, bsp.Edge{v1, v0})
			b.SurfEdges = append(b.SurfEdges, -int32(len(b.Edges)-1))
		}
	}
	b.Faces = append(b.Faces, bsp.Face{
		PlaneNum:  uint16(len(b.Planes) - 1),
		FirstEdge: int32(first),
		NumEdges:  int16(len(points)),
		TexInfo:   texInfo,
		DispInfo:  -1,
		LightOfs:  -1,
		Styles:    [4]uint8{255, 255, 255, 255},
	})
	return len(b.Faces) - 1
}

// AddQuad adds an axis aligned square of the given size at height z.
func (b *Builder) AddQuad(x, y, z, size float32, texInfo int16) int {
	return b.AddPolygon([]vec.Vec3{
		{x, y, z},
		{x + size, y, z},
		{x + size, y + size, z},
		{x, y + size, z},
	}, texInfo)
}

// SetLightmap attaches a lightmap of (w+1)x(h+1) luxels of one color to face.
func (b *Builder) SetLightmap(face int, w, h int32, c bsp.ColorRGBExp32) {
	f := &b.Faces[face]
	f.LightOfs = int32(len(b.Lighting))
	f.Styles = [4]uint8{0, 255, 255, 255}
	f.LightmapSize = [2]int32{w, h}
	for i := int32(0); i < (w+1)*(h+1); i++ {
		b.Lighting = append(b.Lighting, c.R, c.G, c.B, byte(c.Exponent))
	}
}

// AddDisplacement turns a quad face into a displacement of the given power
// with every vertex raised by height along +z.
func (b *Builder) AddDisplacement(face int, power int32, height float32) {
	f := &b.Faces[face]
	start := b.Vertexes[b.Edges[b.SurfEdges[f.FirstEdge]][0]]
	n := int(1<<uint(power) + 1)
	b.DispInfos = append(b.DispInfos, bsp.DispInfo{
		StartPosition: start,
		DispVertStart: int32(len(b.DispVerts)),
		Power:         power,
		MapFace:       uint16(face),
	})
	for i := 0; i < n*n; i++ {
		b.DispVerts = append(b.DispVerts, bsp.DispVert{Vec: vec.Vec3{0, 0, 1}, Dist: height, Alpha: 0})
	}
	f.DispInfo = int16(len(b.DispInfos) - 1)
}

// Bytes lays the map out. A world model spanning all faces is added when no
// model was given.
func (b *Builder) Bytes() []byte {
	models := b.Models
	if len(models) == 0 {
		models = []bsp.Submodel{{FirstFace: 0, NumFaces: int32(len(b.Faces))}}
	}
	var strData bytes.Buffer
	table := make([]int32, len(b.TexNames))
	for i, n := range b.TexNames {
		table[i] = int32(strData.Len())
		strData.WriteString(n)
		strData.WriteByte(0)
	}
	lumps := map[int][]byte{
		bsp.LumpEntities:           append([]byte(b.Entities), 0),
		bsp.LumpPlanes:             enc(b.Planes),
		bsp.LumpTexData:            enc(b.TexData),
		bsp.LumpVertexes:           enc(b.Vertexes),
		bsp.LumpVisibility:         b.Visibility,
		bsp.LumpNodes:              enc(b.Nodes),
		bsp.LumpTexInfo:            enc(b.TexInfos),
		bsp.LumpFaces:              enc(b.Faces),
		bsp.LumpLighting:           b.Lighting,
		bsp.LumpLeafs:              enc(b.Leafs),
		bsp.LumpEdges:              enc(b.Edges),
		bsp.LumpSurfEdges:          enc(b.SurfEdges),
		bsp.LumpModels:             enc(models),
		bsp.LumpDispInfo:           enc(b.DispInfos),
		bsp.LumpDispVerts:          enc(b.DispVerts),
		bsp.LumpPakfile:            b.Pakfile,
		bsp.LumpTexDataStringData:  strData.Bytes(),
		bsp.LumpTexDataStringTable: enc(table),
		bsp.LumpLightingHDR:        b.LightingHDR,
	}
	var dir [bsp.NumLumps]bsp.Lump
	var body bytes.Buffer
	pos := int32(bsp.HeaderSize)
	place := func(id int, data []byte) {
		dir[id] = bsp.Lump{Offset: pos, Length: int32(len(data)), Version: 1}
		body.Write(data)
		pos += int32(len(data))
		// keep lumps 4 byte aligned
		for pos%4 != 0 {
			body.WriteByte(0)
			pos++
		}
	}
	for id := 0; id < bsp.NumLumps; id++ {
		if data, ok := lumps[id]; ok {
			place(id, data)
		}
	}
	if len(b.Props) > 0 || b.PropLump != nil {
		// the game lump directory points at data right behind it
		dirLen := int32(4 + 16)
		props := b.PropLump
		if props == nil {
			props = staticProps(b.Props)
		}
		var gl bytes.Buffer
		binary.Write(&gl, binary.LittleEndian, int32(1))
		binary.Write(&gl, binary.LittleEndian, struct {
			ID      int32
			Flags   uint16
			Version uint16
			FileOfs int32
			FileLen int32
		}{'s'<<24 | 'p'<<16 | 'r'<<8 | 'p', 0, 6, pos + dirLen, int32(len(props))})
		gl.Write(props)
		place(bsp.LumpGame, gl.Bytes())
	}
	for id, l := range b.Patch {
		dir[id] = l
	}
	var out bytes.Buffer
	out.WriteString("VBSP")
	binary.Write(&out, binary.LittleEndian, b.Version)
	binary.Write(&out, binary.LittleEndian, dir)
	binary.Write(&out, binary.LittleEndian, int32(1))
	out.Write(body.Bytes())
	return out.Bytes()
}

// staticProps encodes a version 6 static prop lump (64 byte records).
func staticProps(props []Prop) []byte {
	var names []string
	index := map[string]uint16{}
	for _, p := range props {
		if _, ok := index[p.Model]; !ok {
			index[p.Model] = uint16(len(names))
			names = append(names, p.Model)
		}
	}
	var b bytes.Buffer
	w := func(v any) { binary.Write(&b, binary.LittleEndian, v) }
	w(int32(len(names)))
	for _, n := range names {
		var raw [128]byte
		copy(raw[:], n)
		w(raw)
	}
	w(int32(0))
	w(int32(len(props)))
	for _, p := range props {
		w(p.Origin)
		w(p.Angles)
		w(index[p.Model])
		w([2]uint16{})    // first leaf, leaf count
		w([2]uint8{6, 0}) // solid, flags
		w(int32(0))       // skin
		w([2]float32{})   // fade distances
		w(p.Origin)       // lighting origin
		w(float32(1))     // forced fade scale
		w([2]uint16{})    // dx levels
	}
	return b.Bytes()
}

func enc(v any) []byte {
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, v)
	return b.Bytes()
}
