// SPDX-License-Identifier: GPL-2.0-or-later

// Package mesh turns the faces of a decoded map into triangle batches, one
// per material, and packs their lightmaps into an atlas.
package mesh

import (
	"log/slog"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"goquell/bsp"
	"goquell/math/vec"
	"goquell/vmt"
)

// MaterialFunc resolves a material name. Errors are the caller's to record;
// the face is then drawn with the default material.
type MaterialFunc func(name string) (*vmt.Material, error)

type Options struct {
	Workers int
	// Scale multiplies positions.
	Scale float32
	// YUp converts Z-up positions and normals to Y-up.
	YUp bool
	// SkipTools drops faces whose material lives under tools/, except sky.
	SkipTools  bool
	AtlasWidth int
	Gamma      float32
	Log        *slog.Logger
}

func (o *Options) defaults() {
	if o.Workers < 1 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.AtlasWidth < 16 {
		o.AtlasWidth = 1024
	}
	if o.Gamma <= 0 {
		o.Gamma = 2.2
	}
	if o.Log == nil {
		o.Log = slog.Default()
	}
}

type Vertex struct {
	Position   vec.Vec3
	Normal     vec.Vec3
	UV         [2]float32
	LightmapUV [2]float32
}

// FaceRange is the part of a batch built from one map face.
type FaceRange struct {
	Face       int
	Model      int
	FirstIndex int
	IndexCount int
}

type Batch struct {
	// Material is the material id, "" for the default material.
	Material string
	Mat      *vmt.Material
	Vertices []Vertex
	Indices  []uint32
	Faces    []FaceRange
}

// Triangles returns the number of triangles in the batch.
func (b *Batch) Triangles() int {
	return len(b.Indices) / 3
}

type Result struct {
	Batches []*Batch
	Atlas   *Lightmap
	// Skipped counts faces dropped for their surface flags or material.
	Skipped int
}

// Batch returns the batch of a material id.
func (r *Result) Batch(material string) *Batch {
	for _, b := range r.Batches {
		if b.Material == material {
			return b
		}
	}
	return nil
}

type faceJob struct {
	face  int
	model int
}

// built is the output of one face before merging.
type built struct {
	skip     bool
	material string
	mat      *vmt.Material
	verts    []Vertex
	indices  []uint32
	// luxel space lightmap coordinates, parallel to verts
	luxels [][2]float32
	light  *block
}

// Build meshes every face of every model of m.
func Build(m *bsp.Map, lookup MaterialFunc, opts Options) (*Result, error) {
	if m == nil {
		return nil, errors.New("mesh: nil map")
	}
	opts.defaults()

	jobs := faceJobs(m)
	out := make([]built, len(jobs))
	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i, j := range jobs {
		g.Go(func() error {
			b, err := buildFace(m, j, lookup, &opts)
			if err != nil {
				return errors.Wrapf(err, "face %d", j.face)
			}
			out[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	atlas := packLightmaps(m, out, opts.AtlasWidth, opts.Gamma)
	res := merge(jobs, out, atlas)
	res.Atlas = atlas
	opts.Log.Debug("mesh built", "faces", len(jobs), "batches", len(res.Batches), "skipped", res.Skipped, "atlas", atlas.String())
	return res, nil
}

// faceJobs lists faces in model order. A face claimed by two models is
// built once.
func faceJobs(m *bsp.Map) []faceJob {
	seen := make([]bool, len(m.Faces))
	var jobs []faceJob
	for mi := range m.Models {
		first, n := m.FacesOf(mi)
		for f := first; f < first+n && f < len(m.Faces); f++ {
			if f < 0 || seen[f] {
				continue
			}
			seen[f] = true
			jobs = append(jobs, faceJob{face: f, model: mi})
		}
	}
	return jobs
}

func skipFlags(flags int32) bool {
	return flags&(bsp.SurfNoDraw|bsp.SurfSkip|bsp.SurfHint) != 0
}

func buildFace(m *bsp.Map, j faceJob, lookup MaterialFunc, opts *Options) (built, error) {
	f := &m.Faces[j.face]
	if f.TexInfo < 0 || int(f.TexInfo) >= len(m.TexInfos) {
		return built{}, errors.Wrapf(bsp.ErrBadIndex, "texinfo %d", f.TexInfo)
	}
	ti := &m.TexInfos[f.TexInfo]
	if skipFlags(ti.Flags) {
		return built{skip: true}, nil
	}
	name := strings.ToLower(m.TextureName(int(f.TexInfo)))
	sky := ti.Flags&(bsp.SurfSky|bsp.SurfSky2D) != 0
	if opts.SkipTools && !sky && strings.HasPrefix(name, "tools/") {
		return built{skip: true}, nil
	}

	b := built{material: name}
	if name != "" && lookup != nil {
		mat, err := lookup(name)
		if err == nil && mat != nil {
			b.mat = mat
		} else {
			b.material = ""
		}
	} else {
		b.material = ""
	}
	if b.material == "" {
		b.mat = vmt.Default("")
	}
	if b.mat.Flags&vmt.NoDraw != 0 && !sky {
		return built{skip: true}, nil
	}

	if d, ok := displacement(m, f); ok {
		b.displacement(m, j.face, d)
	} else {
		b.polygon(m, j.face)
	}
	b.light = lightBlock(m, j.face)
	b.finish(opts)
	return b, nil
}

// finish converts positions and normals into the output space.
func (b *built) finish(opts *Options) {
	for i := range b.verts {
		v := &b.verts[i]
		v.Position = v.Position.Scale(opts.Scale)
		if opts.YUp {
			v.Position = vec.ZUpToYUp(v.Position)
			v.Normal = vec.ZUpToYUp(v.Normal)
		}
	}
}

func merge(jobs []faceJob, out []built, atlas *Lightmap) *Result {
	res := &Result{}
	index := map[string]*Batch{}
	for i, b := range out {
		if b.skip {
			res.Skipped++
			continue
		}
		if len(b.indices) == 0 {
			continue
		}
		batch, ok := index[b.material]
		if !ok {
			batch = &Batch{Material: b.material, Mat: b.mat}
			index[b.material] = batch
			res.Batches = append(res.Batches, batch)
		}
		atlas.apply(jobs[i].face, &b)
		base := uint32(len(batch.Vertices))
		first := len(batch.Indices)
		batch.Vertices = append(batch.Vertices, b.verts...)
		for _, ix := range b.indices {
			batch.Indices = append(batch.Indices, base+ix)
		}
		batch.Faces = append(batch.Faces, FaceRange{
			Face:       jobs[i].face,
			Model:      jobs[i].model,
			FirstIndex: first,
			IndexCount: len(b.indices),
		})
	}
	return res
}
