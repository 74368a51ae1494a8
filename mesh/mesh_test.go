// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"math"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"goquell/bsp"
	"goquell/bsp/bsptest"
	"goquell/conlog"
	"goquell/math/vec"
	"goquell/vmt"
)

func decode(t *testing.T, b *bsptest.Builder) *bsp.Map {
	t.Helper()
	m, err := bsp.Decode(b.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return m
}

// materials resolves every name in the map and fails for the rest.
type materials map[string]*vmt.Material

func (ms materials) lookup(name string) (*vmt.Material, error) {
	if m, ok := ms[name]; ok {
		return m, nil
	}
	return nil, errors.Wrap(vmt.ErrParse, name)
}

func opts() Options {
	return Options{Workers: 4, Log: conlog.Discard()}
}

func TestBuildBatches(t *testing.T) {
	b := bsptest.New()
	flat := b.AddTexture("DEV/Flat", 64, 64)
	missing := b.AddTexture("dev/missing", 64, 64)
	b.AddQuad(0, 0, 0, 64, flat)
	b.AddQuad(64, 0, 0, 64, missing)
	b.AddQuad(128, 0, 0, 64, flat)
	m := decode(t, b)

	mats := materials{"dev/flat": &vmt.Material{Name: "dev/flat", BaseTexture: "dev/flat"}}
	res, err := Build(m, mats.lookup, opts())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(res.Batches) != 2 {
		t.Fatalf("batches = %d, want 2", len(res.Batches))
	}
	fb, db := res.Batches[0], res.Batches[1]
	if fb.Material != "dev/flat" || db.Material != "" {
		t.Errorf("batch order = %q, %q", fb.Material, db.Material)
	}
	if fb.Triangles() != 4 || len(fb.Faces) != 2 {
		t.Errorf("flat batch: %d triangles from %d faces, want 4 from 2", fb.Triangles(), len(fb.Faces))
	}
	if db.Triangles() != 2 || !db.Mat.Default {
		t.Errorf("default batch: %d triangles, material %+v", db.Triangles(), db.Mat)
	}
	if want := (FaceRange{Face: 2, Model: 0, FirstIndex: 6, IndexCount: 6}); fb.Faces[1] != want {
		t.Errorf("Faces[1] = %+v, want %+v", fb.Faces[1], want)
	}
	// second face's indices point at its own vertices
	if fb.Indices[6] != 4 {
		t.Errorf("Indices[6] = %d, want 4", fb.Indices[6])
	}
}

func TestIndexCountLaw(t *testing.T) {
	b := bsptest.New()
	tex := b.AddTexture("dev/flat", 64, 64)
	b.AddPolygon([]vec.Vec3{{0, 0, 0}, {2, 0, 0}, {3, 1, 0}, {1, 3, 0}, {-1, 1, 0}}, tex)
	b.AddPolygon([]vec.Vec3{{0, 0, 5}, {1, 0, 5}, {0, 1, 5}}, tex)
	b.AddQuad(0, 0, 9, 1, tex)
	m := decode(t, b)
	res, err := Build(m, nil, opts())
	if err != nil {
		t.Fatal(err)
	}
	want := 3 * ((5 - 2) + (3 - 2) + (4 - 2))
	got := 0
	for _, bt := range res.Batches {
		got += len(bt.Indices)
	}
	if got != want {
		t.Errorf("indices = %d, want %d", got, want)
	}
}

func TestTexCoords(t *testing.T) {
	b := bsptest.New()
	b.AddQuad(0, 0, 0, 64, b.AddTexture("dev/flat", 64, 32))
	m := decode(t, b)
	res, err := Build(m, nil, opts())
	if err != nil {
		t.Fatal(err)
	}
	want := [][2]float32{{0, 0}, {1, 0}, {1, 2}, {0, 2}}
	for i, v := range res.Batches[0].Vertices {
		if v.UV != want[i] {
			t.Errorf("vertex %d uv = %v, want %v", i, v.UV, want[i])
		}
		if v.Normal != (vec.Vec3{0, 0, 1}) {
			t.Errorf("vertex %d normal = %v", i, v.Normal)
		}
	}
}

func TestSkipFlags(t *testing.T) {
	b := bsptest.New()
	tex := b.AddTexture("dev/flat", 64, 64)
	nodraw := b.AddTexture("tools/toolsnodraw", 64, 64)
	b.TexInfos[nodraw].Flags = bsp.SurfNoDraw
	clip := b.AddTexture("tools/toolsclip", 64, 64)
	sky := b.AddTexture("tools/toolsskybox", 64, 64)
	b.TexInfos[sky].Flags = bsp.SurfSky
	b.AddQuad(0, 0, 0, 1, tex)
	b.AddQuad(0, 0, 1, 1, nodraw)
	b.AddQuad(0, 0, 2, 1, clip)
	b.AddQuad(0, 0, 3, 1, sky)
	m := decode(t, b)

	o := opts()
	o.SkipTools = true
	res, err := Build(m, nil, o)
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", res.Skipped)
	}
	tris := 0
	for _, bt := range res.Batches {
		tris += bt.Triangles()
	}
	if tris != 4 {
		t.Errorf("triangles = %d, want 4", tris)
	}
}

func TestNoDrawMaterial(t *testing.T) {
	b := bsptest.New()
	b.AddQuad(0, 0, 0, 1, b.AddTexture("dev/hidden", 64, 64))
	m := decode(t, b)
	mats := materials{"dev/hidden": &vmt.Material{Flags: vmt.NoDraw}}
	res, err := Build(m, mats.lookup, opts())
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped != 1 || len(res.Batches) != 0 {
		t.Errorf("Skipped = %d, batches = %d", res.Skipped, len(res.Batches))
	}
}

func TestScaleAndYUp(t *testing.T) {
	b := bsptest.New()
	b.AddPolygon([]vec.Vec3{{1, 2, 3}, {2, 2, 3}, {2, 3, 3}}, b.AddTexture("dev/flat", 1, 1))
	m := decode(t, b)
	o := opts()
	o.Scale = 2
	o.YUp = true
	res, err := Build(m, nil, o)
	if err != nil {
		t.Fatal(err)
	}
	v := res.Batches[0].Vertices[0]
	if v.Position != (vec.Vec3{2, 6, -4}) {
		t.Errorf("position = %v, want [2 6 -4]", v.Position)
	}
	if v.Normal != (vec.Vec3{0, 1, 0}) {
		t.Errorf("normal = %v, want [0 1 0]", v.Normal)
	}
	// texture coordinates stay in map units
	if v.UV != [2]float32{1, 2} {
		t.Errorf("uv = %v, want [1 2]", v.UV)
	}
}

func TestDisplacement(t *testing.T) {
	b := bsptest.New()
	f := b.AddQuad(0, 0, 0, 64, b.AddTexture("dev/flat", 64, 64))
	b.AddDisplacement(f, 2, 8)
	m := decode(t, b)
	res, err := Build(m, nil, opts())
	if err != nil {
		t.Fatal(err)
	}
	bt := res.Batches[0]
	if len(bt.Vertices) != 25 {
		t.Errorf("vertices = %d, want 25", len(bt.Vertices))
	}
	if bt.Triangles() != 2*4*4 {
		t.Errorf("triangles = %d, want 32", bt.Triangles())
	}
	for i, v := range bt.Vertices {
		if v.Position[2] != 8 {
			t.Fatalf("vertex %d z = %v, want 8", i, v.Position[2])
		}
	}
	// winding matches the upward face
	v := bt.Vertices
	p0, p1, p2 := v[bt.Indices[0]].Position, v[bt.Indices[1]].Position, v[bt.Indices[2]].Position
	if n := vec.Cross(vec.Sub(p1, p0), vec.Sub(p2, p0)); n[2] <= 0 {
		t.Errorf("first triangle normal = %v, want +z", n)
	}
}

func TestLightmapAtlas(t *testing.T) {
	b := bsptest.New()
	tex := b.AddTexture("dev/flat", 64, 64)
	lit := b.AddQuad(0, 0, 0, 48, tex)
	b.AddQuad(0, 0, 10, 48, tex)
	b.SetLightmap(lit, 3, 3, bsp.ColorRGBExp32{R: 255, G: 0, B: 0, Exponent: 0})
	m := decode(t, b)

	o := opts()
	o.AtlasWidth = 64
	res, err := Build(m, nil, o)
	if err != nil {
		t.Fatal(err)
	}
	at := res.Atlas
	r, ok := at.Rects[lit]
	if !ok || r.W != 4 || r.H != 4 {
		t.Fatalf("rect = %+v, %v", r, ok)
	}
	if px := at.Pix[:4]; px[0] != 255 || px[1] != 255 || px[2] != 255 {
		t.Errorf("ambient texel = %v", px)
	}
	img := at.Image()
	if c := img.NRGBAAt(r.X+1, r.Y+1); c.R != 255 || c.G != 0 || c.B != 0 {
		t.Errorf("lit texel = %v", c)
	}
	vs := res.Batches[0].Vertices
	// vertex 0 sits on luxel (0,0) of the lit face
	want := [2]float32{(float32(r.X) + 0.5) / float32(at.Width), (float32(r.Y) + 0.5) / float32(at.Height)}
	if vs[0].LightmapUV != want {
		t.Errorf("lit uv = %v, want %v", vs[0].LightmapUV, want)
	}
	if vs[4].LightmapUV != at.AmbientUV() {
		t.Errorf("unlit uv = %v, want ambient %v", vs[4].LightmapUV, at.AmbientUV())
	}
}

func TestNoLighting(t *testing.T) {
	b := bsptest.New()
	f := b.AddQuad(0, 0, 0, 48, b.AddTexture("dev/flat", 64, 64))
	b.SetLightmap(f, 3, 3, bsp.ColorRGBExp32{R: 1})
	// lightmap offset beyond the lump
	b.Faces[f].LightOfs = 4096
	m := decode(t, b)
	res, err := Build(m, nil, opts())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Atlas.Rects) != 0 {
		t.Errorf("rects = %v", res.Atlas.Rects)
	}
	for _, v := range res.Batches[0].Vertices {
		if v.LightmapUV != res.Atlas.AmbientUV() {
			t.Errorf("uv = %v, want ambient", v.LightmapUV)
		}
	}
}

func TestHugeLightmapSize(t *testing.T) {
	b := bsptest.New()
	f := b.AddQuad(0, 0, 0, 48, b.AddTexture("dev/flat", 64, 64))
	b.SetLightmap(f, 0, 0, bsp.ColorRGBExp32{R: 1})
	// one plus the width overflows 32 bits
	b.Faces[f].LightmapSize = [2]int32{math.MaxInt32, 0}
	m := decode(t, b)
	res, err := Build(m, nil, opts())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Atlas.Rects) != 0 {
		t.Errorf("rects = %v", res.Atlas.Rects)
	}
	for _, v := range res.Batches[0].Vertices {
		if v.LightmapUV != res.Atlas.AmbientUV() {
			t.Errorf("uv = %v, want ambient", v.LightmapUV)
		}
	}
}

func TestDeterministic(t *testing.T) {
	b := bsptest.New()
	texs := []int16{b.AddTexture("a", 64, 64), b.AddTexture("b", 64, 64), b.AddTexture("c", 64, 64)}
	for i := 0; i < 60; i++ {
		f := b.AddQuad(float32(i)*64, 0, 0, 16+float32(i%5)*16, texs[(i*7)%3])
		b.SetLightmap(f, int32(1+i%5), int32(1+i%5), bsp.ColorRGBExp32{R: byte(i), G: 128, B: 9, Exponent: 1})
	}
	m := decode(t, b)
	mats := materials{"a": vmt.Default("a"), "b": vmt.Default("b"), "c": vmt.Default("c")}
	o1 := opts()
	o1.Workers = 1
	o1.AtlasWidth = 32
	r1, err := Build(m, mats.lookup, o1)
	if err != nil {
		t.Fatal(err)
	}
	o8 := o1
	o8.Workers = 8
	r8, err := Build(m, mats.lookup, o8)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r1, r8) {
		t.Error("results differ between 1 and 8 workers")
	}
}
