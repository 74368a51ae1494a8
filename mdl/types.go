// SPDX-License-Identifier: GPL-2.0-or-later

package mdl

const (
	Magic    = 'T'<<24 | 'S'<<16 | 'D'<<8 | 'I' // IDST
	vvdMagic = 'V'<<24 | 'S'<<16 | 'D'<<8 | 'I' // IDSV

	minVersion = 44
	maxVersion = 49
	vvdVersion = 4
	vtxVersion = 7

	headerSize    = 408
	boneSize      = 216
	bodyPartSize  = 16
	modelSize     = 148
	meshSize      = 116
	textureSize   = 64
	vvdHeaderSize = 64
	vvdVertexSize = 48
	fixupSize     = 12

	vtxHeaderSize     = 36
	vtxBodyPartSize   = 8
	vtxModelSize      = 8
	vtxLODSize        = 12
	vtxMeshSize       = 9
	vtxStripGroupSize = 25
	vtxVertexSize     = 9
	vtxStripSize      = 27

	stripTriList  = 0x01
	stripTriStrip = 0x02
)

// studiohdr_t up to the body parts
type header struct {
	ID              int32
	Version         int32
	Checksum        int32
	Name            [64]byte
	Length          int32
	EyePosition     [3]float32
	IllumPosition   [3]float32
	HullMin         [3]float32
	HullMax         [3]float32
	ViewMin         [3]float32
	ViewMax         [3]float32
	Flags           int32
	NumBones        int32
	BoneIndex       int32
	NumControllers  int32
	ControllerIndex int32
	NumHitboxSets   int32
	HitboxSetIndex  int32
	NumLocalAnim    int32
	LocalAnimIndex  int32
	NumLocalSeq     int32
	LocalSeqIndex   int32
	ActivityVersion int32
	EventsIndexed   int32
	NumTextures     int32
	TextureIndex    int32
	NumCDTextures   int32
	CDTextureIndex  int32
	NumSkinRef      int32
	NumSkinFamilies int32
	SkinIndex       int32
	NumBodyParts    int32
	BodyPartIndex   int32
}

type diskBone struct {
	NameIndex  int32
	Parent     int32
	Controller [6]int32
	Pos        [3]float32
	Quat       [4]float32
	Rot        [3]float32
	PosScale   [3]float32
	RotScale   [3]float32
	PoseToBone [12]float32
	Alignment  [4]float32
	Flags      int32
	ProcType   int32
	ProcIndex  int32
	Physics    int32
	SurfProp   int32
	Contents   int32
	_          [8]int32
}

type diskBodyPart struct {
	NameIndex  int32
	NumModels  int32
	Base       int32
	ModelIndex int32
}

type diskModel struct {
	Name           [64]byte
	Type           int32
	Radius         float32
	NumMeshes      int32
	MeshIndex      int32
	NumVertices    int32
	VertexIndex    int32
	TangentIndex   int32
	NumAttachments int32
	AttachIndex    int32
	NumEyeballs    int32
	EyeballIndex   int32
	_              [2]int32
	_              [8]int32
}

type diskMesh struct {
	Material      int32
	ModelIndex    int32
	NumVertices   int32
	VertexOffset  int32
	NumFlexes     int32
	FlexIndex     int32
	MaterialType  int32
	MaterialParam int32
	MeshID        int32
	Center        [3]float32
	_             int32
	LODVertices   [8]int32
	_             [8]int32
}

type diskTexture struct {
	NameIndex int32
	Flags     int32
	Used      int32
	_         int32
	_         [2]int32
	_         [10]int32
}

type vvdHeader struct {
	ID           int32
	Version      int32
	Checksum     int32
	NumLODs      int32
	LODVertices  [8]int32
	NumFixups    int32
	FixupStart   int32
	VertexStart  int32
	TangentStart int32
}

type vvdFixup struct {
	LOD    int32
	Source int32
	Count  int32
}

type vvdVertex struct {
	Weights  [3]float32
	Bones    [3]byte
	NumBones byte
	Pos      [3]float32
	Normal   [3]float32
	UV       [2]float32
}

type vtxHeader struct {
	Version          int32
	VertCacheSize    int32
	MaxBonesPerStrip uint16
	MaxBonesPerTri   uint16
	MaxBonesPerVert  int32
	Checksum         int32
	NumLODs          int32
	MaterialReplace  int32
	NumBodyParts     int32
	BodyPartOffset   int32
}

type vtxPair struct {
	Count  int32
	Offset int32
}

type vtxStripGroup struct {
	NumVerts    int32
	VertOffset  int32
	NumIndices  int32
	IndexOffset int32
	NumStrips   int32
	StripOffset int32
	Flags       uint8
}

type vtxVertex struct {
	BoneWeight [3]uint8
	NumBones   uint8
	OrigMeshID uint16
	BoneID     [3]int8
}

type vtxStrip struct {
	NumIndices   int32
	IndexOffset  int32
	NumVerts     int32
	VertOffset   int32
	NumBones     int16
	Flags        uint8
	NumBoneState int32
	BoneStateOff int32
}
