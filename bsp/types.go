// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"math"
	"strconv"

	"goquell/math/vec"
)

const (
	HeaderSize = 4 + 4 + NumLumps*16 + 4
	NumLumps   = 64
)

// Lump ids.
const (
	LumpEntities           = 0
	LumpPlanes             = 1
	LumpTexData            = 2
	LumpVertexes           = 3
	LumpVisibility         = 4
	LumpNodes              = 5
	LumpTexInfo            = 6
	LumpFaces              = 7
	LumpLighting           = 8
	LumpLeafs              = 10
	LumpEdges              = 12
	LumpSurfEdges          = 13
	LumpModels             = 14
	LumpDispInfo           = 26
	LumpDispVerts          = 33
	LumpGame               = 35
	LumpPakfile            = 40
	LumpTexDataStringData  = 43
	LumpTexDataStringTable = 44
	LumpLightingHDR        = 53
)

// Surface flags of TexInfo.Flags.
const (
	SurfLight     = 0x0001
	SurfSky2D     = 0x0002
	SurfSky       = 0x0004
	SurfWarp      = 0x0008
	SurfTrans     = 0x0010
	SurfNoPortal  = 0x0020
	SurfTrigger   = 0x0040
	SurfNoDraw    = 0x0080
	SurfHint      = 0x0100
	SurfSkip      = 0x0200
	SurfNoLight   = 0x0400
	SurfBumpLight = 0x0800
)

// called lump_t in c
type Lump struct {
	Offset  int32
	Length  int32
	Version int32
	// FourCC holds the uncompressed size of LZMA compressed lumps, else zero.
	FourCC [4]byte
}

type header struct {
	Ident       [4]byte
	Version     int32
	Lumps       [NumLumps]Lump
	MapRevision int32
}

type Plane struct {
	Normal vec.Vec3
	Dist   float32
	Type   int32
}

type TexData struct {
	Reflectivity      vec.Vec3
	NameStringTableID int32
	Width             int32
	Height            int32
	ViewWidth         int32
	ViewHeight        int32
}

// TexInfo projects world positions onto texture and lightmap space:
// s = dot(vecs[0].xyz, p) + vecs[0].w
type TexInfo struct {
	TextureVecs  [2][4]float32
	LightmapVecs [2][4]float32
	Flags        int32
	TexData      int32
}

type Face struct {
	PlaneNum           uint16
	Side               uint8
	OnNode             uint8
	FirstEdge          int32
	NumEdges           int16
	TexInfo            int16
	DispInfo           int16
	SurfaceFogVolumeID int16
	Styles             [4]uint8
	LightOfs           int32
	Area               float32
	LightmapMins       [2]int32
	LightmapSize       [2]int32
	OrigFace           int32
	NumPrims           uint16
	FirstPrimID        uint16
	SmoothingGroups    uint32
}

// HasLightmap reports whether the face points into the lighting lump.
func (f *Face) HasLightmap() bool {
	return f.LightOfs >= 0 && f.Styles[0] != 255
}

// LightmapBytes is the size of one style block of the face lightmap, 0 for
// negative or absurd sizes.
func (f *Face) LightmapBytes() int64 {
	w, h := int64(f.LightmapSize[0])+1, int64(f.LightmapSize[1])+1
	if w < 1 || h < 1 || w*h > math.MaxInt64/4 {
		return 0
	}
	return w * h * 4
}

type Edge [2]uint16

// Submodel is a brush model, index 0 is the world.
type Submodel struct {
	Mins      vec.Vec3
	Maxs      vec.Vec3
	Origin    vec.Vec3
	HeadNode  int32
	FirstFace int32
	NumFaces  int32
}

type Node struct {
	PlaneNum  int32
	Children  [2]int32 // negative numbers are -(leafs+1)
	Mins      [3]int16
	Maxs      [3]int16
	FirstFace uint16
	NumFaces  uint16
	Area      int16
	Padding   int16
}

type Leaf struct {
	Contents       int32
	Cluster        int16
	AreaFlags      int16
	Mins           [3]int16
	Maxs           [3]int16
	FirstLeafFace  uint16
	NumLeafFaces   uint16
	FirstLeafBrush uint16
	NumLeafBrushes uint16
	LeafWaterData  int16
	Padding        int16
}

// leafV0 carries the ambient light cube of version 0 leaf lumps.
type leafV0 struct {
	Leaf
	Ambient [24]byte
}

type DispInfo struct {
	StartPosition       vec.Vec3
	DispVertStart       int32
	DispTriStart        int32
	Power               int32
	MinTess             int32
	SmoothingAngle      float32
	Contents            int32
	MapFace             uint16
	Padding             uint16
	LightmapAlphaStart  int32
	LightmapSampleStart int32
	Neighbors           [88]byte
	AllowedVerts        [10]uint32
}

// VertsPerSide is 2^power+1.
func (d *DispInfo) VertsPerSide() int {
	return 1<<uint(d.Power) + 1
}

type DispVert struct {
	Vec   vec.Vec3
	Dist  float32
	Alpha float32
}

// ColorRGBExp32 is one lightmap luxel.
type ColorRGBExp32 struct {
	R, G, B  uint8
	Exponent int8
}

type gameLumpEntry struct {
	ID      int32
	Flags   uint16
	Version uint16
	FileOfs int32
	FileLen int32
}

const gameLumpStaticProps = 's'<<24 | 'p'<<16 | 'r'<<8 | 'p'

// StaticProp is one placement of the static prop game lump.
type StaticProp struct {
	Origin         vec.Vec3
	Angles         vec.Vec3
	Model          string
	PropType       uint16
	FirstLeaf      uint16
	LeafCount      uint16
	Solid          uint8
	Flags          uint8
	Skin           int32
	FadeMinDist    float32
	FadeMaxDist    float32
	LightingOrigin vec.Vec3
	Scale          float32
}

// staticPropV4 is the common prefix of all static prop versions.
type staticPropV4 struct {
	Origin         vec.Vec3
	Angles         vec.Vec3
	PropType       uint16
	FirstLeaf      uint16
	LeafCount      uint16
	Solid          uint8
	Flags          uint8
	Skin           int32
	FadeMinDist    float32
	FadeMaxDist    float32
	LightingOrigin vec.Vec3
}

var lumpNames = map[int]string{
	LumpEntities:           "entities",
	LumpPlanes:             "planes",
	LumpTexData:            "texdata",
	LumpVertexes:           "vertexes",
	LumpVisibility:         "visibility",
	LumpNodes:              "nodes",
	LumpTexInfo:            "texinfo",
	LumpFaces:              "faces",
	LumpLighting:           "lighting",
	LumpLeafs:              "leafs",
	LumpEdges:              "edges",
	LumpSurfEdges:          "surfedges",
	LumpModels:             "models",
	LumpDispInfo:           "dispinfo",
	LumpDispVerts:          "dispverts",
	LumpGame:               "game",
	LumpPakfile:            "pakfile",
	LumpTexDataStringData:  "texdata_string_data",
	LumpTexDataStringTable: "texdata_string_table",
	LumpLightingHDR:        "lighting_hdr",
}

// LumpName returns a readable name for a lump id.
func LumpName(id int) string {
	if n, ok := lumpNames[id]; ok {
		return n
	}
	return "lump" + strconv.Itoa(id)
}
