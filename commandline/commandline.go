// SPDX-License-Identifier: GPL-2.0-or-later

// Package commandline holds the flags of the goquell binary and merges
// them into a configuration.
package commandline

import (
	"flag"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"goquell/config"
)

// sources collects search path flags of several kinds in command line
// order.
type sources struct {
	list *[]config.Source
	kind config.SourceKind
}

func (s sources) Set(v string) error {
	if v == "" {
		return errors.New("empty path")
	}
	*s.list = append(*s.list, config.Source{Kind: s.kind, Path: v})
	return nil
}

func (s sources) String() string {
	if s.list == nil {
		return ""
	}
	var p []string
	for _, src := range *s.list {
		if src.Kind == s.kind {
			p = append(p, src.Path)
		}
	}
	return strings.Join(p, ",")
}

// assignment is a repeatable name=value flag.
type assignment [][2]string

func (a *assignment) Set(v string) error {
	name, value, ok := strings.Cut(v, "=")
	if !ok || name == "" {
		return errors.Errorf("%q is not name=value", v)
	}
	*a = append(*a, [2]string{name, value})
	return nil
}

func (a *assignment) String() string {
	var p []string
	for _, kv := range *a {
		p = append(p, kv[0]+"="+kv[1])
	}
	return strings.Join(p, ",")
}

// optFloat remembers whether it was given.
type optFloat struct {
	set bool
	v   float64
}

func (o *optFloat) Set(s string) error {
	if _, err := fmt.Sscan(s, &o.v); err != nil {
		return err
	}
	o.set = true
	return nil
}

func (o *optFloat) String() string {
	return fmt.Sprint(o.v)
}

type Flags struct {
	ConfigFile string
	Search     []config.Source
	Workers    int
	Scale      optFloat
	YUp        bool
	LogLevel   string
	Sets       assignment

	GLTF     string
	Wire     string
	Lightmap string
	Dump     bool
	Watch    bool
}

// Register adds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigFile, "config", "", "yaml or toml configuration file")
	fs.Var(sources{&f.Search, config.SourceGame}, "basedir", "game directory, its vpks and paks (repeatable)")
	fs.Var(sources{&f.Search, config.SourceVPK}, "vpk", "vpk archive (repeatable)")
	fs.Var(sources{&f.Search, config.SourcePak}, "pak", "pak archive (repeatable)")
	fs.Var(sources{&f.Search, config.SourceDir}, "dir", "loose directory (repeatable)")
	fs.IntVar(&f.Workers, "workers", 0, "decode workers, 0 keeps the configured value")
	fs.Var(&f.Scale, "scale", "world unit scale")
	fs.BoolVar(&f.YUp, "yup", false, "convert z-up to y-up")
	fs.StringVar(&f.LogLevel, "loglevel", "", "debug, info, warn or error")
	fs.Var(&f.Sets, "set", "name=value override of a setting (repeatable)")
	fs.StringVar(&f.GLTF, "gltf", "", "write the scene as binary glTF")
	fs.StringVar(&f.Wire, "wire", "", "write the protobuf scene description")
	fs.StringVar(&f.Lightmap, "lightmap", "", "write the lightmap atlas as PNG")
	fs.BoolVar(&f.Dump, "dump", false, "dump the scene to stdout")
	fs.BoolVar(&f.Watch, "watch", false, "reload when the map or a loose directory changes")
}

// Config loads the configuration file, if any, and applies the flags on
// top. Search paths from flags are searched before configured ones.
func (f *Flags) Config() (*config.Config, error) {
	cfg := config.Default()
	if f.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(f.ConfigFile); err != nil {
			return nil, err
		}
	}
	cfg.Search = append(append([]config.Source(nil), f.Search...), cfg.Search...)
	set := func(name, value string) error {
		return errors.Wrapf(cfg.Set(name, value), "-set %s", name)
	}
	if f.Workers > 0 {
		if err := set("r_workers", fmt.Sprint(f.Workers)); err != nil {
			return nil, err
		}
	}
	if f.Scale.set {
		if err := set("mesh_scale", fmt.Sprint(f.Scale.v)); err != nil {
			return nil, err
		}
	}
	if f.YUp {
		if err := set("mesh_yup", "1"); err != nil {
			return nil, err
		}
	}
	if f.LogLevel != "" {
		if err := set("log_level", f.LogLevel); err != nil {
			return nil, err
		}
	}
	for _, kv := range f.Sets {
		if err := set(kv[0], kv[1]); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

// Dirs lists the loose directories of the search path, the ones worth
// watching.
func Dirs(cfg *config.Config) []string {
	var d []string
	for _, s := range cfg.Search {
		if s.Kind == config.SourceDir || s.Kind == config.SourceGame {
			d = append(d, s.Path)
		}
	}
	return d
}
