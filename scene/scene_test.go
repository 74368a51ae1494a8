// SPDX-License-Identifier: GPL-2.0-or-later

package scene

import (
	"bytes"
	"reflect"
	"sync"
	"testing"

	"github.com/chewxy/math32"
	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"

	"goquell/bsp"
	"goquell/bsp/bsptest"
	"goquell/conlog"
	"goquell/filesystem"
	"goquell/math/vec"
	"goquell/mdl"
	"goquell/mesh"
	"goquell/scene/scenepb"
	"goquell/texture"
	"goquell/vmt"
)

var errNoModel = errors.New("no such model")

// models is a ModelSource counting loads per path.
type models struct {
	mu    sync.Mutex
	have  map[string]*mdl.Model
	loads map[string]int
}

func newModels(have map[string]*mdl.Model) *models {
	return &models{have: have, loads: map[string]int{}}
}

func (ms *models) Model(path string) (*mdl.Model, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.loads[path]++
	if m, ok := ms.have[path]; ok {
		return m, nil
	}
	return nil, errors.Wrap(errNoModel, path)
}

func triangle() *mdl.Model {
	return &mdl.Model{
		Vertices: []mdl.Vertex{
			{Position: vec.Vec3{0, 0, 0}, Normal: vec.Vec3{0, 0, 1}},
			{Position: vec.Vec3{8, 0, 0}, Normal: vec.Vec3{0, 0, 1}, UV: [2]float32{1, 0}},
			{Position: vec.Vec3{0, 8, 0}, Normal: vec.Vec3{0, 0, 1}, UV: [2]float32{0, 1}},
		},
		Indices:      []uint32{0, 1, 2},
		Meshes:       []mdl.Mesh{{Material: 0, FirstIndex: 0, IndexCount: 3}},
		Materials:    []string{"crate"},
		MaterialDirs: []string{"models/props/"},
	}
}

const entityText = `
{
"classname" "worldspawn"
"skyname" "sky_day01_01"
}
{
"classname" "func_door"
"model" "*1"
"origin" "10 0 0"
}
{
"classname" "func_brush"
"model" "*9"
}
{
"classname" "prop_dynamic"
"model" "models/props/crate.mdl"
"origin" "0 0 8"
"angles" "0 90 0"
"modelscale" "2"
}
{
"classname" "prop_dynamic"
"model" "models/props/missing.mdl"
}
{
"classname" "info_player_start"
"origin" "1 2 3"
"angle" "-1"
}
`

func testMap(t *testing.T) *bsp.Map {
	t.Helper()
	b := bsptest.New()
	tex := b.AddTexture("dev/flat", 64, 64)
	b.AddQuad(0, 0, 0, 64, tex)
	b.AddQuad(64, 0, 0, 64, tex)
	b.Models = []bsp.Submodel{
		{Maxs: vec.Vec3{128, 64, 0}, FirstFace: 0, NumFaces: 1},
		{Mins: vec.Vec3{64, 0, 0}, Maxs: vec.Vec3{128, 64, 0}, FirstFace: 1, NumFaces: 1},
	}
	b.Entities = entityText
	b.Props = []bsptest.Prop{{Model: "models/props/crate.mdl", Origin: vec.Vec3{32, 32, 0}}}
	m, err := bsp.Decode(b.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return m
}

type reported struct {
	mu    sync.Mutex
	paths []string
	errs  []error
}

func (r *reported) add(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	r.errs = append(r.errs, err)
}

func TestAssemble(t *testing.T) {
	m := testMap(t)
	src := newModels(map[string]*mdl.Model{"models/props/crate.mdl": triangle()})
	var rep reported
	s, err := Assemble(m, m.Entities, src, Options{
		MapName: "test",
		Workers: 4,
		Log:     conlog.Discard(),
		Report:  rep.add,
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if s.SkyName != "sky_day01_01" {
		t.Errorf("SkyName = %q", s.SkyName)
	}
	if len(s.Entities) != 7 {
		t.Fatalf("entities = %d, want 7", len(s.Entities))
	}
	want := []struct {
		class   string
		kind    RefKind
		visible bool
	}{
		{"worldspawn", RefNone, false},
		{"func_door", RefBrush, true},
		{"func_brush", RefBrush, false},
		{"prop_dynamic", RefModel, true},
		{"prop_dynamic", RefModel, false},
		{"info_player_start", RefNone, false},
		{"prop_static", RefStaticProp, true},
	}
	for i, w := range want {
		e := s.Entities[i]
		if e.Index != i || e.ClassName != w.class || e.Ref.Kind != w.kind || e.Visible != w.visible {
			t.Errorf("entity %d = {%d %q %v %v}, want {%d %q %v %v}",
				i, e.Index, e.ClassName, e.Ref.Kind, e.Visible, i, w.class, w.kind, w.visible)
		}
		if e.Cluster != -1 {
			t.Errorf("entity %d cluster = %d, want -1", i, e.Cluster)
		}
	}
	if s.Entities[1].Ref.Submodel != 1 {
		t.Errorf("submodel = %d, want 1", s.Entities[1].Ref.Submodel)
	}
	if len(rep.errs) != 1 || rep.paths[0] != "*9" || !errors.Is(rep.errs[0], ErrBrushRef) {
		t.Errorf("reported %v %v, want one ErrBrushRef for *9", rep.paths, rep.errs)
	}
	if got := src.loads["models/props/crate.mdl"]; got != 1 {
		t.Errorf("crate loaded %d times, want 1", got)
	}
	if len(s.Models) != 1 || s.Models["models/props/crate.mdl"] == nil {
		t.Errorf("models = %v", s.Models)
	}
	if got := len(s.Visible()); got != 3 {
		t.Errorf("visible = %d, want 3", got)
	}
	if s.Bounds.Max != (vec.Vec3{128, 64, 0}) {
		t.Errorf("bounds = %+v", s.Bounds)
	}
	if got := s.Entities[5].Angles; got != (vec.Vec3{-90, 0, 0}) {
		t.Errorf("angle -1 = %v, want straight up", got)
	}
	if got := s.Entities[3].Scale; got != 2 {
		t.Errorf("modelscale = %v, want 2", got)
	}
	if v, ok := s.Entities[3].Property("ModelScale"); !ok || v != "2" {
		t.Errorf("Property(ModelScale) = %q, %v", v, ok)
	}
}

func TestAssembleBadEntities(t *testing.T) {
	m := testMap(t)
	_, err := Assemble(m, []byte(`{ "classname" "worldspawn"`), nil, Options{Log: conlog.Discard()})
	if !errors.Is(err, ErrEntities) {
		t.Errorf("Assemble = %v, want ErrEntities", err)
	}
}

func TestPitchKey(t *testing.T) {
	m := testMap(t)
	text := []byte(`{ "classname" "light_spot" "angles" "0 45 0" "pitch" "30" }`)
	s, err := Assemble(m, text, nil, Options{Log: conlog.Discard()})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Entities[0].Angles; got != (vec.Vec3{-30, 45, 0}) {
		t.Errorf("angles = %v", got)
	}
}

func near(a, b vec.Vec3) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > 1e-4 {
			return false
		}
	}
	return true
}

func TestTransform(t *testing.T) {
	tests := []struct {
		origin, angles vec.Vec3
		scale          float32
		in, want       vec.Vec3
	}{
		{vec.Vec3{1, 2, 3}, vec.Vec3{0, 90, 0}, 1, vec.Vec3{1, 0, 0}, vec.Vec3{1, 3, 3}},
		{vec.Vec3{}, vec.Vec3{90, 0, 0}, 1, vec.Vec3{1, 0, 0}, vec.Vec3{0, 0, -1}},
		{vec.Vec3{}, vec.Vec3{0, 0, 90}, 1, vec.Vec3{0, 1, 0}, vec.Vec3{0, 0, 1}},
		{vec.Vec3{0, 0, 5}, vec.Vec3{}, 2, vec.Vec3{1, 1, 1}, vec.Vec3{2, 2, 7}},
	}
	for _, tc := range tests {
		got := Apply(Transform(tc.origin, tc.angles, tc.scale), tc.in)
		if !near(got, tc.want) {
			t.Errorf("Transform(%v, %v, %v) * %v = %v, want %v", tc.origin, tc.angles, tc.scale, tc.in, got, tc.want)
		}
	}
}

func TestConvert(t *testing.T) {
	m := Transform(vec.Vec3{10, 0, 0}, vec.Vec3{0, 90, 0}, 1)
	a := Axes(0.5, true)
	p := vec.Vec3{1, 0, 0}
	// the model vertex is converted like the world geometry
	got := Apply(Convert(a, m), convertPoint(p, 0.5, true))
	want := convertPoint(Apply(m, p), 0.5, true)
	if !near(got, want) {
		t.Errorf("converted = %v, want %v", got, want)
	}
	if !near(want, vec.Vec3{5, 0, -0.5}) {
		t.Errorf("world point = %v", want)
	}
}

// wireView drops what MarshalWire leaves out and folds empty slices and
// maps to nil.
func wireView(s *Scene) *Scene {
	v := *s
	v.Models = nil
	v.Batches = nil
	for _, b := range s.Batches {
		c := *b
		c.Mat = nil
		if len(c.Indices) == 0 {
			c.Indices = nil
		}
		if len(c.Faces) == 0 {
			c.Faces = nil
		}
		v.Batches = append(v.Batches, &c)
	}
	v.Entities = nil
	for _, e := range s.Entities {
		c := *e
		if len(c.Properties) == 0 {
			c.Properties = nil
		}
		v.Entities = append(v.Entities, &c)
	}
	if s.Lightmap != nil {
		lm := *s.Lightmap
		if len(lm.Rects) == 0 {
			lm.Rects = nil
		}
		v.Lightmap = &lm
	}
	return &v
}

func TestWire(t *testing.T) {
	m := testMap(t)
	res, err := mesh.Build(m, nil, mesh.Options{Workers: 2, Log: conlog.Discard()})
	if err != nil {
		t.Fatal(err)
	}
	src := newModels(map[string]*mdl.Model{"models/props/crate.mdl": triangle()})
	s, err := Assemble(m, m.Entities, src, Options{MapName: "maps/test.bsp", Mesh: res, Log: conlog.Discard()})
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.MarshalWire()
	if err != nil {
		t.Fatalf("MarshalWire: %v", err)
	}
	again, err := s.MarshalWire()
	if err != nil || !bytes.Equal(b, again) {
		t.Errorf("MarshalWire is not deterministic")
	}

	got, err := UnmarshalWire(b)
	if err != nil {
		t.Fatalf("UnmarshalWire: %v", err)
	}
	if want := wireView(s); !reflect.DeepEqual(wireView(got), want) {
		t.Errorf("round trip = %s\nwant %s", spew.Sdump(wireView(got)), spew.Sdump(want))
	}

	sum, err := UnmarshalWireSummary(b)
	if err != nil {
		t.Fatalf("UnmarshalWireSummary: %v", err)
	}
	if sum.ID != s.ID || sum.Map != "maps/test.bsp" || sum.SkyName != "sky_day01_01" {
		t.Errorf("header = %v %q %q", sum.ID, sum.Map, sum.SkyName)
	}
	if sum.Entities != 7 || sum.Visible != 3 {
		t.Errorf("entities = %d visible = %d, want 7 3", sum.Entities, sum.Visible)
	}
	if len(sum.Batches) != 1 {
		t.Fatalf("batches = %v", sum.Batches)
	}
	bs := sum.Batches[0]
	if bs.Material != "" || bs.Faces != 2 || bs.Indices != 12 || bs.Vertices != len(res.Batches[0].Vertices) {
		t.Errorf("batch = %+v", bs)
	}
	if sum.Bounds != [6]float32{0, 0, 0, 128, 64, 0} {
		t.Errorf("bounds = %v", sum.Bounds)
	}
	if sum.LightmapWidth != res.Atlas.Width || sum.LightmapHeight != res.Atlas.Height {
		t.Errorf("lightmap = %dx%d", sum.LightmapWidth, sum.LightmapHeight)
	}
}

func TestWireErrors(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name string
		msg  *scenepb.Scene
	}{
		{"short id", &scenepb.Scene{Id: id[:8]}},
		{"ragged vertices", &scenepb.Scene{Id: id[:], Batches: []*scenepb.Batch{{Positions: []float32{1, 2, 3}}}}},
		{"index past vertices", &scenepb.Scene{Id: id[:], Batches: []*scenepb.Batch{{
			Positions: []float32{1, 2, 3}, Normals: []float32{0, 0, 1},
			Uvs: []float32{0, 0}, LightmapUvs: []float32{0, 0}, Indices: []uint32{0, 0, 1},
		}}}},
		{"short transform", &scenepb.Scene{Id: id[:], Entities: []*scenepb.Entity{{Transform: []float32{1}}}}},
		{"bounds", &scenepb.Scene{Id: id[:], Bounds: []float32{1, 2}}},
		{"lightmap size", &scenepb.Scene{Id: id[:], Lightmap: &scenepb.Lightmap{Width: 2, Height: 2, Pix: []byte{1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := proto.Marshal(tt.msg)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := UnmarshalWire(b); !errors.Is(err, ErrWire) {
				t.Errorf("UnmarshalWire = %v, want ErrWire", err)
			}
		})
	}

	if _, err := UnmarshalWire([]byte{0xff}); !errors.Is(err, ErrWire) {
		t.Errorf("truncated = %v, want ErrWire", err)
	}
	if _, err := UnmarshalWireSummary([]byte{0xff}); !errors.Is(err, ErrWire) {
		t.Errorf("truncated summary = %v, want ErrWire", err)
	}
	// entity text kept as raw bytes is not always UTF-8
	s := &Scene{ID: id, Entities: []*Entity{{Properties: map[string]string{"message": "caf\xe9"}}}}
	if _, err := s.MarshalWire(); !errors.Is(err, ErrWire) {
		t.Errorf("MarshalWire(latin1) = %v, want ErrWire", err)
	}
}

// placeholders hands out checkerboards and knows one material.
type placeholders struct{}

func (placeholders) Texture(name string) (*texture.Texture, error) {
	return texture.Placeholder(name), nil
}

func (placeholders) Material(name string) (*vmt.Material, error) {
	if filesystem.Normalize(name) == "models/props/crate" {
		m := vmt.Default(name)
		m.Default = false
		m.BaseTexture = "models/props/crate_diffuse"
		return m, nil
	}
	return nil, vmt.ErrParse
}

func TestGLTF(t *testing.T) {
	m := testMap(t)
	mats := func(name string) (*vmt.Material, error) {
		mat := vmt.Default(name)
		mat.Default = false
		return mat, nil
	}
	res, err := mesh.Build(m, mats, mesh.Options{Workers: 2, Log: conlog.Discard()})
	if err != nil {
		t.Fatal(err)
	}
	src := newModels(map[string]*mdl.Model{"models/props/crate.mdl": triangle()})
	s, err := Assemble(m, m.Entities, src, Options{Mesh: res, YUp: true, Scale: 0.5, Log: conlog.Discard()})
	if err != nil {
		t.Fatal(err)
	}
	doc, err := GLTFDocument(s, placeholders{})
	if err != nil {
		t.Fatalf("GLTFDocument: %v", err)
	}
	// world plus one shared crate mesh
	if len(doc.Meshes) != 2 {
		t.Errorf("meshes = %d, want 2", len(doc.Meshes))
	}
	// world, prop_dynamic and prop_static
	if len(doc.Nodes) != 3 || len(doc.Scenes[0].Nodes) != 3 {
		t.Errorf("nodes = %d, scene nodes = %d, want 3", len(doc.Nodes), len(doc.Scenes[0].Nodes))
	}
	// lightmap, dev/flat, crate_diffuse
	if len(doc.Textures) != 3 {
		t.Errorf("textures = %d, want 3", len(doc.Textures))
	}
	if len(doc.Materials) != 2 || doc.Materials[1].Name != "models/props/crate" {
		t.Errorf("materials = %d", len(doc.Materials))
	}
	if doc.Materials[0].Extras == nil {
		t.Errorf("world material has no lightmap")
	}
	if doc.Nodes[1].Matrix != [16]float32(s.Entities[3].Transform) {
		t.Errorf("node matrix = %v", doc.Nodes[1].Matrix)
	}

	var buf bytes.Buffer
	if err := ExportGLTF(&buf, s, placeholders{}); err != nil {
		t.Fatalf("ExportGLTF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("glTF")) {
		t.Errorf("output is not binary glTF: % x", buf.Bytes()[:4])
	}
}
