// SPDX-License-Identifier: GPL-2.0-or-later

// Package scene turns a decoded map, its entities and its meshes into the
// description a renderer consumes.
package scene

import (
	"log/slog"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"

	"goquell/bsp"
	"goquell/config"
	"goquell/filesystem"
	"goquell/math/vec"
	"goquell/mdl"
	"goquell/mesh"
)

var (
	ErrEntities = errors.New("unbalanced entity text")
	ErrBrushRef = errors.New("brush model out of range")
)

type RefKind int

const (
	RefNone RefKind = iota
	RefModel
	RefBrush
	RefStaticProp
)

func (k RefKind) String() string {
	switch k {
	case RefModel:
		return "model"
	case RefBrush:
		return "brush"
	case RefStaticProp:
		return "static_prop"
	}
	return "none"
}

// Ref is what an entity draws. Path is the model path for RefModel and
// RefStaticProp, the raw key value for RefBrush and RefNone.
type Ref struct {
	Kind     RefKind
	Path     string
	Submodel int
}

type Entity struct {
	// Index is the position in the entity lump. Static props follow the
	// lump entities.
	Index     int
	ClassName string
	// Transform maps model space into scene space.
	Transform mgl32.Mat4
	// Origin and Angles are in map units and degrees.
	Origin     vec.Vec3
	Angles     vec.Vec3
	Scale      float32
	Ref        Ref
	Cluster    int
	Visible    bool
	Properties map[string]string
}

// Property returns a case-insensitive entity key.
func (e *Entity) Property(name string) (string, bool) {
	v, ok := e.Properties[strings.ToLower(name)]
	return v, ok
}

type Scene struct {
	ID       uuid.UUID
	Map      string
	Batches  []*mesh.Batch
	Lightmap *mesh.Lightmap
	Entities []*Entity
	// Models holds every model that loaded, by normalized path.
	Models  map[string]*mdl.Model
	SkyName string
	Bounds  vec.Bounds
	// Scale and YUp are the conversion applied to positions.
	Scale float32
	YUp   bool
}

// Visible returns the entities that draw something.
func (s *Scene) Visible() []*Entity {
	var out []*Entity
	for _, e := range s.Entities {
		if e.Visible {
			out = append(out, e)
		}
	}
	return out
}

// ModelSource loads studio models. It records its own failures.
type ModelSource interface {
	Model(path string) (*mdl.Model, error)
}

type Options struct {
	MapName string
	Scale   float32
	YUp     bool
	// Charmap decodes the entity text, nil keeps the bytes.
	Charmap *charmap.Charmap
	// Mesh is the built world geometry.
	Mesh    *mesh.Result
	Workers int
	Log     *slog.Logger
	// Report receives reference errors that no model source saw.
	Report func(path string, err error)
}

func (o *Options) defaults() {
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Workers < 1 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Log == nil {
		o.Log = slog.Default()
	}
	if o.Report == nil {
		o.Report = func(string, error) {}
	}
}

// Assemble builds the scene of m. entityText is normally m.Entities.
// Only unparsable entity text fails; broken references leave invisible
// entities.
func Assemble(m *bsp.Map, entityText []byte, assets ModelSource, opts Options) (*Scene, error) {
	if m == nil {
		return nil, errors.New("assemble: no map")
	}
	opts.defaults()
	text := config.DecodeText(opts.Charmap, entityText)
	ents := bsp.ParseEntities(text)
	if ents == nil {
		return nil, errors.Wrapf(ErrEntities, "%d bytes", len(text))
	}
	s := &Scene{
		ID:     uuid.New(),
		Map:    opts.MapName,
		Models: make(map[string]*mdl.Model),
		Scale:  opts.Scale,
		YUp:    opts.YUp,
	}
	if opts.Mesh != nil {
		s.Batches = opts.Mesh.Batches
		s.Lightmap = opts.Mesh.Atlas
	}
	if len(m.Models) > 0 {
		s.Bounds.Extend(convertPoint(m.Models[0].Mins, opts.Scale, opts.YUp))
		s.Bounds.Extend(convertPoint(m.Models[0].Maxs, opts.Scale, opts.YUp))
	}
	for i, e := range ents {
		s.Entities = append(s.Entities, newEntity(i, e))
	}
	for _, p := range m.StaticProps {
		s.Entities = append(s.Entities, staticProp(len(s.Entities), p))
	}
	if len(ents) > 0 {
		if class, _ := ents[0].Name(); class == "worldspawn" {
			s.SkyName, _ = ents[0].Property("skyname")
		}
	}

	models := s.loadModels(assets, &opts)
	axes := Axes(opts.Scale, opts.YUp)
	for _, e := range s.Entities {
		s.resolve(m, e, models, &opts)
		e.Transform = Convert(axes, Transform(e.Origin, e.Angles, e.Scale))
		e.Cluster = -1
		if len(m.Nodes) > 0 && len(m.Leafs) > 0 {
			e.Cluster = m.ClusterAt(e.Origin)
		}
	}
	opts.Log.Debug("Assembled scene", "map", s.Map, "entities", len(s.Entities),
		"models", len(s.Models), "batches", len(s.Batches))
	return s, nil
}

func newEntity(i int, e *bsp.Entity) *Entity {
	se := &Entity{
		Index:      i,
		Scale:      1,
		Properties: make(map[string]string),
	}
	for _, k := range e.PropertyNames() {
		v, _ := e.Property(k)
		se.Properties[k] = v
	}
	se.ClassName = se.Properties["classname"]
	if v, ok := se.Properties["origin"]; ok {
		se.Origin = parseVec3(v)
	}
	if v, ok := se.Properties["angles"]; ok {
		se.Angles = parseVec3(v)
	} else if v, ok := se.Properties["angle"]; ok {
		se.Angles = angle(parseFloat(v))
	}
	if v, ok := se.Properties["pitch"]; ok {
		se.Angles[0] = -parseFloat(v)
	}
	if v, ok := se.Properties["modelscale"]; ok {
		if f := parseFloat(v); f > 0 {
			se.Scale = f
		}
	}
	if v, ok := se.Properties["model"]; ok {
		se.Ref = parseRef(v)
	}
	return se
}

func staticProp(i int, p bsp.StaticProp) *Entity {
	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}
	return &Entity{
		Index:     i,
		ClassName: "prop_static",
		Origin:    p.Origin,
		Angles:    p.Angles,
		Scale:     scale,
		Ref:       Ref{Kind: RefStaticProp, Path: p.Model},
		Properties: map[string]string{
			"classname": "prop_static",
			"model":     p.Model,
			"skin":      strconv.Itoa(int(p.Skin)),
		},
	}
}

// angle expands the single "angle" key, where -1 means up and -2 down.
func angle(yaw float32) vec.Vec3 {
	switch yaw {
	case -1:
		return vec.Vec3{-90, 0, 0}
	case -2:
		return vec.Vec3{90, 0, 0}
	}
	return vec.Vec3{0, yaw, 0}
}

func parseRef(v string) Ref {
	if strings.HasPrefix(v, "*") {
		n, err := strconv.Atoi(v[1:])
		if err != nil {
			n = -1
		}
		return Ref{Kind: RefBrush, Path: v, Submodel: n}
	}
	if strings.EqualFold(filesystem.Ext(v), ".mdl") {
		return Ref{Kind: RefModel, Path: v}
	}
	return Ref{Kind: RefNone, Path: v}
}

func parseFloat(s string) float32 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0
	}
	return float32(f)
}

// parseVec3 reads "x y z". Missing components are zero.
func parseVec3(s string) vec.Vec3 {
	var v vec.Vec3
	for i, f := range strings.Fields(s) {
		if i == 3 {
			break
		}
		v[i] = parseFloat(f)
	}
	return v
}

// loadModels decodes every referenced model once, in parallel.
func (s *Scene) loadModels(assets ModelSource, opts *Options) map[string]*mdl.Model {
	paths := map[string]bool{}
	for _, e := range s.Entities {
		if e.Ref.Kind == RefModel || e.Ref.Kind == RefStaticProp {
			paths[filesystem.Normalize(e.Ref.Path)] = true
		}
	}
	if assets == nil || len(paths) == 0 {
		return nil
	}
	keys := make([]string, 0, len(paths))
	for p := range paths {
		keys = append(keys, p)
	}
	sort.Strings(keys)
	loaded := make([]*mdl.Model, len(keys))
	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i, p := range keys {
		g.Go(func() error {
			md, err := assets.Model(p)
			if err != nil {
				opts.Log.Debug("Model not loaded", "path", p, "err", err)
				return nil
			}
			loaded[i] = md
			return nil
		})
	}
	g.Wait()
	out := make(map[string]*mdl.Model, len(keys))
	for i, p := range keys {
		if loaded[i] != nil {
			out[p] = loaded[i]
			s.Models[p] = loaded[i]
		}
	}
	return out
}

func (s *Scene) resolve(m *bsp.Map, e *Entity, models map[string]*mdl.Model, opts *Options) {
	switch e.Ref.Kind {
	case RefBrush:
		n := e.Ref.Submodel
		if n < 0 || n >= len(m.Models) {
			opts.Report(e.Ref.Path, errors.Wrapf(ErrBrushRef, "entity %d model %q", e.Index, e.Ref.Path))
			return
		}
		e.Visible = true
	case RefModel, RefStaticProp:
		_, e.Visible = models[filesystem.Normalize(e.Ref.Path)]
	}
}
