// SPDX-License-Identifier: GPL-2.0-or-later

package scene

import (
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"

	"goquell/math/vec"
	"goquell/mesh"
	"goquell/scene/scenepb"
)

var ErrWire = errors.New("malformed scene message")

// MarshalWire encodes the scene as a scenepb.Scene message. Models and
// material definitions are left out, batches reference materials by id.
func (s *Scene) MarshalWire() ([]byte, error) {
	pb := &scenepb.Scene{
		Id:    s.ID[:],
		Map:   s.Map,
		Sky:   s.SkyName,
		Scale: s.Scale,
		YUp:   s.YUp,
	}
	for _, b := range s.Batches {
		pb.Batches = append(pb.Batches, batchToWire(b))
	}
	for _, e := range s.Entities {
		pb.Entities = append(pb.Entities, entityToWire(e))
	}
	if !s.Bounds.Empty() {
		pb.Bounds = []float32{
			s.Bounds.Min[0], s.Bounds.Min[1], s.Bounds.Min[2],
			s.Bounds.Max[0], s.Bounds.Max[1], s.Bounds.Max[2],
		}
	}
	if lm := s.Lightmap; lm != nil {
		w := &scenepb.Lightmap{Width: uint32(lm.Width), Height: uint32(lm.Height), Pix: lm.Pix}
		faces := make([]int, 0, len(lm.Rects))
		for f := range lm.Rects {
			faces = append(faces, f)
		}
		sort.Ints(faces)
		for _, f := range faces {
			r := lm.Rects[f]
			w.Rects = append(w.Rects, &scenepb.Rect{
				Face: uint32(f), X: uint32(r.X), Y: uint32(r.Y), W: uint32(r.W), H: uint32(r.H),
			})
		}
		pb.Lightmap = w
	}
	out, err := proto.MarshalOptions{Deterministic: true}.Marshal(pb)
	if err != nil {
		// proto3 strings must be UTF-8
		return nil, errors.Wrap(ErrWire, err.Error())
	}
	return out, nil
}

func batchToWire(b *mesh.Batch) *scenepb.Batch {
	n := len(b.Vertices)
	w := &scenepb.Batch{
		Material:    b.Material,
		Positions:   make([]float32, 0, 3*n),
		Normals:     make([]float32, 0, 3*n),
		Uvs:         make([]float32, 0, 2*n),
		LightmapUvs: make([]float32, 0, 2*n),
		Indices:     b.Indices,
	}
	for _, v := range b.Vertices {
		w.Positions = append(w.Positions, v.Position[:]...)
		w.Normals = append(w.Normals, v.Normal[:]...)
		w.Uvs = append(w.Uvs, v.UV[:]...)
		w.LightmapUvs = append(w.LightmapUvs, v.LightmapUV[:]...)
	}
	for _, f := range b.Faces {
		w.Faces = append(w.Faces, &scenepb.FaceRange{
			Face:       uint32(f.Face),
			Model:      int32(f.Model),
			FirstIndex: uint32(f.FirstIndex),
			IndexCount: uint32(f.IndexCount),
		})
	}
	return w
}

func entityToWire(e *Entity) *scenepb.Entity {
	return &scenepb.Entity{
		Index:      uint32(e.Index),
		Class:      e.ClassName,
		Transform:  e.Transform[:],
		RefKind:    scenepb.RefKind(e.Ref.Kind),
		Path:       e.Ref.Path,
		Submodel:   int32(e.Ref.Submodel),
		Cluster:    int32(e.Cluster),
		Visible:    e.Visible,
		Origin:     e.Origin[:],
		Angles:     e.Angles[:],
		Scale:      e.Scale,
		Properties: e.Properties,
	}
}

// UnmarshalWire decodes MarshalWire output. The result has no Models and
// its batches carry no material definitions.
func UnmarshalWire(b []byte) (*Scene, error) {
	var pb scenepb.Scene
	if err := proto.Unmarshal(b, &pb); err != nil {
		return nil, errors.Wrap(ErrWire, err.Error())
	}
	id, err := uuid.FromBytes(pb.GetId())
	if err != nil {
		return nil, errors.Wrap(ErrWire, err.Error())
	}
	s := &Scene{
		ID:      id,
		Map:     pb.GetMap(),
		SkyName: pb.GetSky(),
		Scale:   pb.GetScale(),
		YUp:     pb.GetYUp(),
	}
	for i, wb := range pb.GetBatches() {
		b, err := batchFromWire(wb)
		if err != nil {
			return nil, errors.Wrapf(err, "batch %d", i)
		}
		s.Batches = append(s.Batches, b)
	}
	for i, we := range pb.GetEntities() {
		e, err := entityFromWire(we)
		if err != nil {
			return nil, errors.Wrapf(err, "entity %d", i)
		}
		s.Entities = append(s.Entities, e)
	}
	switch bounds := pb.GetBounds(); len(bounds) {
	case 0:
	case 6:
		s.Bounds.Extend(vec.Vec3{bounds[0], bounds[1], bounds[2]})
		s.Bounds.Extend(vec.Vec3{bounds[3], bounds[4], bounds[5]})
	default:
		return nil, errors.Wrapf(ErrWire, "%d bound values", len(bounds))
	}
	if wl := pb.GetLightmap(); wl != nil {
		lm := &mesh.Lightmap{
			Width:  int(wl.GetWidth()),
			Height: int(wl.GetHeight()),
			Pix:    wl.GetPix(),
			Rects:  make(map[int]mesh.Rect, len(wl.GetRects())),
		}
		if int64(len(lm.Pix)) != int64(lm.Width)*int64(lm.Height)*4 {
			return nil, errors.Wrapf(ErrWire, "%dx%d lightmap in %d bytes", lm.Width, lm.Height, len(lm.Pix))
		}
		for _, r := range wl.GetRects() {
			lm.Rects[int(r.GetFace())] = mesh.Rect{X: int(r.GetX()), Y: int(r.GetY()), W: int(r.GetW()), H: int(r.GetH())}
		}
		s.Lightmap = lm
	}
	return s, nil
}

func batchFromWire(w *scenepb.Batch) (*mesh.Batch, error) {
	n := len(w.GetPositions()) / 3
	if len(w.GetPositions()) != 3*n || len(w.GetNormals()) != 3*n ||
		len(w.GetUvs()) != 2*n || len(w.GetLightmapUvs()) != 2*n {
		return nil, errors.Wrapf(ErrWire, "vertex arrays %d %d %d %d",
			len(w.GetPositions()), len(w.GetNormals()), len(w.GetUvs()), len(w.GetLightmapUvs()))
	}
	b := &mesh.Batch{
		Material: w.GetMaterial(),
		Vertices: make([]mesh.Vertex, n),
		Indices:  w.GetIndices(),
	}
	p, nm, uv, lm := w.GetPositions(), w.GetNormals(), w.GetUvs(), w.GetLightmapUvs()
	for i := range b.Vertices {
		b.Vertices[i] = mesh.Vertex{
			Position:   vec.Vec3{p[3*i], p[3*i+1], p[3*i+2]},
			Normal:     vec.Vec3{nm[3*i], nm[3*i+1], nm[3*i+2]},
			UV:         [2]float32{uv[2*i], uv[2*i+1]},
			LightmapUV: [2]float32{lm[2*i], lm[2*i+1]},
		}
	}
	for _, idx := range b.Indices {
		if int(idx) >= n {
			return nil, errors.Wrapf(ErrWire, "index %d of %d vertices", idx, n)
		}
	}
	for _, f := range w.GetFaces() {
		fr := mesh.FaceRange{
			Face:       int(f.GetFace()),
			Model:      int(f.GetModel()),
			FirstIndex: int(f.GetFirstIndex()),
			IndexCount: int(f.GetIndexCount()),
		}
		if fr.FirstIndex+fr.IndexCount > len(b.Indices) {
			return nil, errors.Wrapf(ErrWire, "face %d past the index list", fr.Face)
		}
		b.Faces = append(b.Faces, fr)
	}
	return b, nil
}

func entityFromWire(w *scenepb.Entity) (*Entity, error) {
	if len(w.GetTransform()) != 16 || len(w.GetOrigin()) != 3 || len(w.GetAngles()) != 3 {
		return nil, errors.Wrapf(ErrWire, "transform %d origin %d angles %d",
			len(w.GetTransform()), len(w.GetOrigin()), len(w.GetAngles()))
	}
	e := &Entity{
		Index:     int(w.GetIndex()),
		ClassName: w.GetClass(),
		Ref: Ref{
			Kind:     RefKind(w.GetRefKind()),
			Path:     w.GetPath(),
			Submodel: int(w.GetSubmodel()),
		},
		Cluster:    int(w.GetCluster()),
		Visible:    w.GetVisible(),
		Scale:      w.GetScale(),
		Properties: w.GetProperties(),
	}
	copy(e.Transform[:], w.GetTransform())
	copy(e.Origin[:], w.GetOrigin())
	copy(e.Angles[:], w.GetAngles())
	return e, nil
}

// Summary is the header part of a wire encoded scene.
type Summary struct {
	ID             uuid.UUID
	Map            string
	SkyName        string
	Batches        []BatchSummary
	Entities       int
	Visible        int
	Bounds         [6]float32
	LightmapWidth  int
	LightmapHeight int
}

type BatchSummary struct {
	Material string
	Vertices int
	Indices  int
	Faces    int
}

// UnmarshalWireSummary decodes MarshalWire output down to counts.
func UnmarshalWireSummary(b []byte) (*Summary, error) {
	var pb scenepb.Scene
	if err := proto.Unmarshal(b, &pb); err != nil {
		return nil, errors.Wrap(ErrWire, err.Error())
	}
	id, err := uuid.FromBytes(pb.GetId())
	if err != nil {
		return nil, errors.Wrap(ErrWire, err.Error())
	}
	s := &Summary{
		ID:             id,
		Map:            pb.GetMap(),
		SkyName:        pb.GetSky(),
		Entities:       len(pb.GetEntities()),
		LightmapWidth:  int(pb.GetLightmap().GetWidth()),
		LightmapHeight: int(pb.GetLightmap().GetHeight()),
	}
	for _, b := range pb.GetBatches() {
		s.Batches = append(s.Batches, BatchSummary{
			Material: b.GetMaterial(),
			Vertices: len(b.GetPositions()) / 3,
			Indices:  len(b.GetIndices()),
			Faces:    len(b.GetFaces()),
		})
	}
	for _, e := range pb.GetEntities() {
		if e.GetVisible() {
			s.Visible++
		}
	}
	if bounds := pb.GetBounds(); len(bounds) == len(s.Bounds) {
		copy(s.Bounds[:], bounds)
	}
	return s, nil
}
