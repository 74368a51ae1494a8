// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"goquell/config"
)

func parse(t *testing.T, args ...string) *Flags {
	t.Helper()
	var flags flag.FlagSet
	flags.Init("test", flag.ContinueOnError)
	f := &Flags{}
	f.Register(&flags)
	if err := flags.Parse(args); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestSearchOrder(t *testing.T) {
	f := parse(t, "-dir", "custom", "-vpk", "hl2/pak01_dir.vpk", "-basedir", "hl2", "-pak", "id1/pak0.pak", "-dir", "last")
	want := []config.Source{
		{Kind: config.SourceDir, Path: "custom"},
		{Kind: config.SourceVPK, Path: "hl2/pak01_dir.vpk"},
		{Kind: config.SourceGame, Path: "hl2"},
		{Kind: config.SourcePak, Path: "id1/pak0.pak"},
		{Kind: config.SourceDir, Path: "last"},
	}
	if !reflect.DeepEqual(f.Search, want) {
		t.Errorf("Search = %v, want %v", f.Search, want)
	}
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "goquell.yaml")
	yaml := "workers: 3\nscale: 2\nsearch:\n  - kind: dir\n    path: from_file\n"
	if err := os.WriteFile(file, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	f := parse(t, "-config", file, "-dir", "from_flag", "-scale", "0.5", "-yup", "-set", "lm_gamma=1.8")
	cfg, err := f.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3 from the file", cfg.Workers)
	}
	if cfg.Scale != 0.5 || !cfg.YUp || cfg.Gamma != 1.8 {
		t.Errorf("Scale = %v YUp = %v Gamma = %v", cfg.Scale, cfg.YUp, cfg.Gamma)
	}
	if len(cfg.Search) != 2 || cfg.Search[0].Path != "from_flag" || cfg.Search[1].Path != "from_file" {
		t.Errorf("Search = %v", cfg.Search)
	}
	if got := Dirs(cfg); len(got) != 2 {
		t.Errorf("Dirs = %v", got)
	}
}

func TestBadFlags(t *testing.T) {
	var flags flag.FlagSet
	flags.Init("test", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	f := &Flags{}
	f.Register(&flags)
	if err := flags.Parse([]string{"-set", "novalue"}); err == nil {
		t.Errorf("-set novalue accepted")
	}
	f = parse(t, "-set", "no_such_var=1")
	if _, err := f.Config(); err == nil {
		t.Errorf("unknown setting accepted")
	}
	f = parse(t, "-workers", "-3")
	cfg, err := f.Config()
	if err != nil || cfg.Workers < 1 {
		t.Errorf("negative -workers = %v, %v; want it ignored", cfg, err)
	}
}
