// SPDX-License-Identifier: GPL-2.0-or-later

// Package bsp decodes Source engine VBSP maps into flat, index linked lump
// slices.
package bsp

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"runtime"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"goquell/math/vec"
)

var (
	ErrBadMagic           = errors.New("bad magic")
	ErrTruncatedLump      = errors.New("truncated lump")
	ErrVersionUnsupported = errors.New("version unsupported")
	ErrBadIndex           = errors.New("index out of range")
	ErrCompressedLump     = errors.New("compressed lump")
)

const (
	minVersion = 19
	maxVersion = 21
)

// Degraded names a non-essential lump that was dropped.
type Degraded struct {
	Lump int
	Err  error
}

func (d Degraded) Name() string {
	return LumpName(d.Lump)
}

// Map is a decoded VBSP file. All cross references are indices into the
// lump slices and were range checked by Decode.
type Map struct {
	Version  int32
	Revision int32
	Lumps    [NumLumps]Lump

	Entities  []byte
	Planes    []Plane
	TexData   []TexData
	TexNames  []string // parallel to TexData
	Vertexes  []vec.Vec3
	Nodes     []Node
	TexInfos  []TexInfo
	Faces     []Face
	Leafs     []Leaf
	Edges     []Edge
	SurfEdges []int32
	Models    []Submodel
	DispInfos []DispInfo
	DispVerts []DispVert

	Visibility *Visibility
	// Lighting holds ColorRGBExp32 samples, HDR when LDR data is absent
	// or was dropped.
	Lighting    []byte
	LightingHDR bool
	ldr, hdr    []byte

	StaticProps []StaticProp
	Pakfile     []byte

	stringData  []byte
	stringTable []int32

	Degraded []Degraded
}

type Options struct {
	Workers int
	Log     *slog.Logger
}

func (o *Options) defaults() {
	if o.Workers < 1 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Log == nil {
		o.Log = slog.Default()
	}
}

type lumpSpec struct {
	id        int
	essential bool
	decode    func(m *Map, file []byte, l Lump) error
}

var lumpSpecs = []lumpSpec{
	{LumpEntities, true, decodeEntities},
	{LumpPlanes, true, func(m *Map, f []byte, l Lump) (err error) {
		m.Planes, err = records[Plane](slice(f, l), 20)
		return
	}},
	{LumpTexData, true, func(m *Map, f []byte, l Lump) (err error) {
		m.TexData, err = records[TexData](slice(f, l), 32)
		return
	}},
	{LumpVertexes, true, func(m *Map, f []byte, l Lump) (err error) {
		m.Vertexes, err = records[vec.Vec3](slice(f, l), 12)
		return
	}},
	{LumpVisibility, false, decodeVisibility},
	{LumpNodes, false, func(m *Map, f []byte, l Lump) (err error) {
		m.Nodes, err = records[Node](slice(f, l), 32)
		return
	}},
	{LumpTexInfo, true, func(m *Map, f []byte, l Lump) (err error) {
		m.TexInfos, err = records[TexInfo](slice(f, l), 72)
		return
	}},
	{LumpFaces, true, func(m *Map, f []byte, l Lump) (err error) {
		m.Faces, err = records[Face](slice(f, l), 56)
		return
	}},
	{LumpLighting, false, func(m *Map, f []byte, l Lump) error {
		b := slice(f, l)
		if len(b)%4 != 0 {
			return errors.Wrapf(ErrTruncatedLump, "%d bytes", len(b))
		}
		m.ldr = b
		return nil
	}},
	{LumpLeafs, false, decodeLeafs},
	{LumpEdges, true, func(m *Map, f []byte, l Lump) (err error) {
		m.Edges, err = records[Edge](slice(f, l), 4)
		return
	}},
	{LumpSurfEdges, true, func(m *Map, f []byte, l Lump) (err error) {
		m.SurfEdges, err = records[int32](slice(f, l), 4)
		return
	}},
	{LumpModels, true, func(m *Map, f []byte, l Lump) (err error) {
		m.Models, err = records[Submodel](slice(f, l), 48)
		return
	}},
	{LumpDispInfo, false, func(m *Map, f []byte, l Lump) (err error) {
		m.DispInfos, err = records[DispInfo](slice(f, l), 176)
		return
	}},
	{LumpDispVerts, false, func(m *Map, f []byte, l Lump) (err error) {
		m.DispVerts, err = records[DispVert](slice(f, l), 20)
		return
	}},
	{LumpGame, false, decodeGameLump},
	{LumpPakfile, false, func(m *Map, f []byte, l Lump) error {
		if l.Length > 0 {
			m.Pakfile = slice(f, l)
		}
		return nil
	}},
	{LumpTexDataStringData, true, func(m *Map, f []byte, l Lump) error {
		m.stringData = slice(f, l)
		return nil
	}},
	{LumpTexDataStringTable, true, func(m *Map, f []byte, l Lump) (err error) {
		m.stringTable, err = records[int32](slice(f, l), 4)
		return
	}},
	{LumpLightingHDR, false, func(m *Map, f []byte, l Lump) error {
		b := slice(f, l)
		if len(b)%4 != 0 {
			return errors.Wrapf(ErrTruncatedLump, "%d bytes", len(b))
		}
		m.hdr = b
		return nil
	}},
}

// Decode parses a map with default options.
func Decode(data []byte) (*Map, error) {
	return DecodeWith(data, Options{})
}

// DecodeWith parses the header, then decodes the lumps in parallel. Errors in
// essential lumps are returned; non-essential lumps that fail are dropped and
// listed in Map.Degraded.
func DecodeWith(data []byte, opts Options) (*Map, error) {
	opts.defaults()
	var h header
	if len(data) < 4 {
		return nil, errors.Wrap(ErrTruncatedLump, "header")
	}
	switch string(data[:4]) {
	case "VBSP":
	case "PSBV":
		return nil, errors.Wrap(ErrBadMagic, "big endian map")
	default:
		return nil, errors.Wrapf(ErrBadMagic, "%q", data[:4])
	}
	if len(data) < HeaderSize {
		return nil, errors.Wrap(ErrTruncatedLump, "header")
	}
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, &h); err != nil {
		return nil, errors.Wrap(ErrTruncatedLump, "header")
	}
	if h.Version < minVersion || h.Version > maxVersion {
		return nil, errors.Wrapf(ErrVersionUnsupported, "version %d", h.Version)
	}
	m := &Map{
		Version:  h.Version,
		Revision: h.MapRevision,
		Lumps:    h.Lumps,
	}

	errs := make([]error, len(lumpSpecs))
	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i, s := range lumpSpecs {
		i, s := i, s
		g.Go(func() error {
			errs[i] = decodeLump(m, data, s)
			return nil
		})
	}
	g.Wait()

	for i, s := range lumpSpecs {
		if errs[i] == nil {
			continue
		}
		if s.essential {
			return nil, errors.Wrapf(errs[i], "lump %s", LumpName(s.id))
		}
		m.degrade(s.id, errs[i])
	}
	m.pickLighting()
	if err := m.validate(); err != nil {
		return nil, err
	}
	m.validateOptional()
	for _, d := range m.Degraded {
		opts.Log.Warn("lump dropped", "lump", d.Name(), "err", d.Err)
	}
	opts.Log.Debug("map decoded", "version", m.Version, "faces", len(m.Faces), "texinfos", len(m.TexInfos), "models", len(m.Models))
	return m, nil
}

func decodeLump(m *Map, data []byte, s lumpSpec) error {
	l := m.Lumps[s.id]
	if l.Offset < 0 || l.Length < 0 || int64(l.Offset)+int64(l.Length) > int64(len(data)) {
		return errors.Wrapf(ErrTruncatedLump, "offset %d length %d file %d", l.Offset, l.Length, len(data))
	}
	if l.FourCC != [4]byte{} {
		return errors.Wrapf(ErrCompressedLump, "uncompressed size %d", binary.LittleEndian.Uint32(l.FourCC[:]))
	}
	return s.decode(m, data, l)
}

func (m *Map) degrade(id int, err error) {
	m.Degraded = append(m.Degraded, Degraded{Lump: id, Err: err})
	sort.SliceStable(m.Degraded, func(i, j int) bool { return m.Degraded[i].Lump < m.Degraded[j].Lump })
	switch id {
	case LumpVisibility:
		m.Visibility = nil
	case LumpNodes, LumpLeafs:
		m.Nodes, m.Leafs = nil, nil
	case LumpLighting:
		m.ldr = nil
	case LumpLightingHDR:
		m.hdr = nil
	case LumpDispInfo, LumpDispVerts:
		m.DispInfos, m.DispVerts = nil, nil
	case LumpGame:
		m.StaticProps = nil
	case LumpPakfile:
		m.Pakfile = nil
	}
}

// pickLighting prefers the LDR samples and falls back to HDR ones when the
// LDR lump is empty or was dropped.
func (m *Map) pickLighting() {
	switch {
	case len(m.ldr) > 0:
		m.Lighting, m.LightingHDR = m.ldr, false
	case len(m.hdr) > 0:
		m.Lighting, m.LightingHDR = m.hdr, true
	}
	m.ldr, m.hdr = nil, nil
}

// IsDegraded reports whether lump id was dropped.
func (m *Map) IsDegraded(id int) bool {
	for _, d := range m.Degraded {
		if d.Lump == id {
			return true
		}
	}
	return false
}

func slice(f []byte, l Lump) []byte {
	return f[l.Offset : l.Offset+l.Length]
}

// records decodes a lump of fixed size little-endian records.
func records[T any](b []byte, size int) ([]T, error) {
	if len(b)%size != 0 {
		return nil, errors.Wrapf(ErrTruncatedLump, "%d bytes is not a multiple of %d", len(b), size)
	}
	r := make([]T, len(b)/size)
	if len(r) == 0 {
		return r, nil
	}
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, r); err != nil {
		return nil, errors.Wrap(ErrTruncatedLump, err.Error())
	}
	return r, nil
}

func decodeEntities(m *Map, f []byte, l Lump) error {
	b := slice(f, l)
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	m.Entities = b
	return nil
}

func decodeLeafs(m *Map, f []byte, l Lump) (err error) {
	b := slice(f, l)
	if l.Version == 0 && m.Version <= 19 {
		var v0 []leafV0
		if v0, err = records[leafV0](b, 56); err != nil {
			return err
		}
		m.Leafs = make([]Leaf, len(v0))
		for i := range v0 {
			m.Leafs[i] = v0[i].Leaf
		}
		return nil
	}
	m.Leafs, err = records[Leaf](b, 32)
	return err
}
