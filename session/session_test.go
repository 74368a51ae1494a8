// SPDX-License-Identifier: GPL-2.0-or-later

package session

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"goquell/bsp/bsptest"
	"goquell/config"
	"goquell/conlog"
	"goquell/report"
	"goquell/texture"
	"goquell/vmt"
	"goquell/vtf"
)

const (
	flatVMT = `"LightmappedGeneric"
{
	"$basetexture" "dev/flat"
	"$surfaceprop" "concrete"
}
`
	// the value of $basetexture is missing
	brokenVMT = `"LightmappedGeneric"
{
	"$basetexture"
`
)

func flatVTF() []byte {
	w, h := 4, 4
	chain := make([]byte, texture.ChainSize(texture.FormatRGBA8888, w, h, 3))
	for i := range chain {
		chain[i] = 0x80
	}
	return vtf.Encode(texture.FormatRGBA8888, w, h, 3, 0, chain)
}

func writeFiles(t *testing.T, root string, files map[string][]byte) {
	t.Helper()
	for n, c := range files {
		p := filepath.Join(root, filepath.FromSlash(n))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, c, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func zipFiles(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for n, c := range files {
		w, err := zw.Create(n)
		if err != nil {
			t.Fatal(err)
		}
		w.Write([]byte(c))
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// scenario writes a game directory and a map with two dev/flat faces and
// one dev/missing face. It returns the map path and the config.
func scenario(t *testing.T, edit func(b *bsptest.Builder)) (string, *config.Config) {
	t.Helper()
	game := t.TempDir()
	writeFiles(t, game, map[string][]byte{
		"materials/dev/flat.vmt":    []byte(flatVMT),
		"materials/dev/flat.vtf":    flatVTF(),
		"materials/dev/missing.vmt": []byte(brokenVMT),
	})
	b := bsptest.New()
	flat := b.AddTexture("DEV/FLAT", 64, 64)
	missing := b.AddTexture("dev/missing", 64, 64)
	b.AddQuad(0, 0, 0, 64, flat)
	b.AddQuad(64, 0, 0, 64, missing)
	b.AddQuad(128, 0, 0, 64, flat)
	b.Entities = `{ "classname" "worldspawn" "skyname" "sky_test" }
{ "classname" "prop_dynamic" "model" "models/gone.mdl" }`
	if edit != nil {
		edit(b)
	}
	mapPath := filepath.Join(t.TempDir(), "test.bsp")
	if err := os.WriteFile(mapPath, b.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Workers = 4
	cfg.Search = []config.Source{{Kind: config.SourceDir, Path: game}}
	return mapPath, cfg
}

func open(t *testing.T, cfg *config.Config) *Session {
	t.Helper()
	s, err := New(cfg, conlog.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadScenario(t *testing.T) {
	mapPath, cfg := scenario(t, nil)
	s := open(t, cfg)
	sc, rep, err := s.Load(mapPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sc.Batches) != 2 {
		t.Fatalf("batches = %d, want 2: %s", len(sc.Batches), spew.Sdump(sc.Batches))
	}
	flat, def := sc.Batches[0], sc.Batches[1]
	if flat.Material != "dev/flat" || len(flat.Faces) != 2 || len(flat.Indices) != 12 {
		t.Errorf("flat batch = %q, %d faces, %d indices", flat.Material, len(flat.Faces), len(flat.Indices))
	}
	if def.Material != "" || len(def.Faces) != 1 || !def.Mat.Default {
		t.Errorf("default batch = %q, %d faces", def.Material, len(def.Faces))
	}

	parse := rep.ErrorsOfKind(report.Parse)
	if len(parse) != 1 || parse[0].Path != "materials/dev/missing.vmt" || !errors.Is(parse[0], vmt.ErrParse) {
		t.Errorf("parse errors = %v, want one for dev/missing", parse)
	}
	missing := rep.ErrorsOfKind(report.Missing)
	if len(missing) != 1 || missing[0].Path != "models/gone.mdl" {
		t.Errorf("missing errors = %v, want models/gone.mdl", missing)
	}
	if rep.Count() != 2 {
		t.Errorf("report = %v", rep.Errors())
	}
	if sc.SkyName != "sky_test" || len(sc.Entities) != 2 || sc.Entities[1].Visible {
		t.Errorf("scene = %q, %d entities", sc.SkyName, len(sc.Entities))
	}

	tex, err := s.Assets().Texture("dev/flat")
	if err != nil || tex.Placeholder || tex.Width != 4 {
		t.Errorf("Texture(dev/flat) = %+v, %v", tex, err)
	}
	if _, texs, _ := s.Assets().Counts(); texs != 1 {
		t.Errorf("textures decoded = %d, want 1", texs)
	}
}

func TestPakfileWins(t *testing.T) {
	mapPath, cfg := scenario(t, func(b *bsptest.Builder) {
		b.Pakfile = zipFiles(t, map[string]string{
			"materials/dev/missing.vmt": `"UnlitGeneric" { "$basetexture" "dev/flat" }`,
		})
	})
	s := open(t, cfg)
	sc, rep, err := s.Load(mapPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sc.Batches) != 2 || sc.Batches[1].Material != "dev/missing" {
		t.Fatalf("batches = %s", spew.Sdump(sc.Batches))
	}
	if sc.Batches[1].Mat.Flags&vmt.Unlit == 0 {
		t.Errorf("pakfile material not used: %v", sc.Batches[1].Mat.Flags)
	}
	if len(rep.ErrorsOfKind(report.Parse)) != 0 {
		t.Errorf("report = %v", rep.Errors())
	}
	// the pakfile does not leak into the session index
	if s.Index().Exists("materials/dev/missing.vmt") {
		if b, _ := s.Index().ReadFile("materials/dev/missing.vmt"); string(b) != brokenVMT {
			t.Errorf("session index serves the pakfile")
		}
	}
}

func TestCorruptPakfile(t *testing.T) {
	mapPath, cfg := scenario(t, func(b *bsptest.Builder) {
		b.Pakfile = []byte("PK\x03\x04 not really a zip")
	})
	s := open(t, cfg)
	_, rep, err := s.Load(mapPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := rep.ErrorsOfKind(report.Corrupt); len(got) != 1 {
		t.Errorf("corrupt errors = %v, want 1", got)
	}
}

func TestLoadFatal(t *testing.T) {
	_, cfg := scenario(t, nil)
	s := open(t, cfg)
	_, _, err := s.Load(filepath.Join(t.TempDir(), "nope.bsp"))
	if !report.IsFatal(err) {
		t.Errorf("missing map = %v, want fatal", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.bsp")
	os.WriteFile(bad, []byte("IBSP\x1e\x00\x00\x00"), 0o644)
	if _, _, err := s.Load(bad); !report.IsFatal(err) {
		t.Errorf("bad map = %v, want fatal", err)
	}
}

func TestNewRequiredSource(t *testing.T) {
	cfg := config.Default()
	cfg.Search = []config.Source{{Kind: config.SourceDir, Path: filepath.Join(t.TempDir(), "absent")}}
	if _, err := New(cfg, conlog.Discard()); err == nil {
		t.Errorf("New with a missing directory succeeded")
	}
	cfg.Search[0].Optional = true
	s, err := New(cfg, conlog.Discard())
	if err != nil {
		t.Fatalf("New with an optional missing directory: %v", err)
	}
	s.Close()
}

func TestAssetPaths(t *testing.T) {
	tests := []struct {
		f        func(string) string
		in, want string
	}{
		{MaterialPath, "DEV\\Flat", "materials/dev/flat.vmt"},
		{MaterialPath, "materials/dev/flat.vmt", "materials/dev/flat.vmt"},
		{MaterialPath, "maps/cp_a/blend.v2_1", "materials/maps/cp_a/blend.v2_1.vmt"},
		{TexturePath, "dev/flat", "materials/dev/flat.vtf"},
	}
	for _, tc := range tests {
		if got := tc.f(tc.in); got != tc.want {
			t.Errorf("path(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
