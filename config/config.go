// SPDX-License-Identifier: GPL-2.0-or-later

// Package config holds the settings of a map load. Values come from a YAML or
// TOML file and can be overridden by name, cvar style.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"goquell/cvar"
)

// SourceKind names the container type of a search path entry.
type SourceKind string

const (
	SourceVPK SourceKind = "vpk"
	SourcePak SourceKind = "pak"
	SourceZip SourceKind = "zip"
	SourceDir SourceKind = "dir"
	// SourceGame is a game directory: its VPKs, numbered paks and loose files.
	SourceGame SourceKind = "game"
)

// Source is one search path entry. Earlier entries win.
type Source struct {
	Kind SourceKind `yaml:"kind" toml:"kind"`
	Path string     `yaml:"path" toml:"path"`
	// Optional sources are skipped with a warning when they cannot be opened.
	Optional bool `yaml:"optional" toml:"optional"`
}

type Config struct {
	Search     []Source `yaml:"search" toml:"search"`
	Workers    int      `yaml:"workers" toml:"workers"`
	Scale      float32  `yaml:"scale" toml:"scale"`
	YUp        bool     `yaml:"yup" toml:"yup"`
	AtlasWidth int      `yaml:"atlas_width" toml:"atlas_width"`
	Gamma      float32  `yaml:"gamma" toml:"gamma"`
	Charset    string   `yaml:"charset" toml:"charset"`
	LogLevel   string   `yaml:"log_level" toml:"log_level"`
	SkipTools  bool     `yaml:"skip_tools" toml:"skip_tools"`
	VerifyCRC  bool     `yaml:"verify_crc" toml:"verify_crc"`

	vars *cvar.Vars
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	c := &Config{
		Workers:    runtime.GOMAXPROCS(0),
		Scale:      1,
		AtlasWidth: 1024,
		Gamma:      2.2,
		Charset:    "windows-1252",
		LogLevel:   "info",
		SkipTools:  true,
	}
	c.bind()
	return c
}

// Load reads a configuration file on top of the defaults. The format is
// picked by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	c := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		err = toml.Unmarshal(data, c)
	default:
		return nil, errors.Errorf("config %s: unknown format", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	// resync the named variables with the file values
	c.bind()
	return c, c.Validate()
}

// Validate rejects settings the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.AtlasWidth < 16 {
		return errors.Errorf("atlas_width must be at least 16, got %d", c.AtlasWidth)
	}
	if c.Scale <= 0 {
		return errors.Errorf("scale must be positive, got %v", c.Scale)
	}
	if c.Gamma <= 0 {
		return errors.Errorf("gamma must be positive, got %v", c.Gamma)
	}
	if _, err := Charmap(c.Charset); err != nil {
		return err
	}
	for _, s := range c.Search {
		switch s.Kind {
		case SourceVPK, SourcePak, SourceZip, SourceDir, SourceGame:
		default:
			return errors.Errorf("search path %s: unknown kind %q", s.Path, s.Kind)
		}
	}
	return nil
}

// Set overrides a setting by its variable name, e.g. "mesh_scale".
func (c *Config) Set(name, value string) error {
	if err := c.vars.Set(name, value); err != nil {
		return err
	}
	return c.Validate()
}

// Get returns the current value of a named setting.
func (c *Config) Get(name string) (string, bool) {
	cv, ok := c.vars.Get(name)
	if !ok {
		return "", false
	}
	return cv.String(), true
}

// Vars lists the named settings.
func (c *Config) Vars() []*cvar.Cvar {
	return c.vars.All()
}

func (c *Config) bind() {
	v := cvar.New()
	v.MustRegister("r_workers", strconv.Itoa(c.Workers), "decode worker count", cvar.NONE).
		SetCallback(func(cv *cvar.Cvar) { c.Workers = int(cv.Value()) })
	v.MustRegister("mesh_scale", ftoa(c.Scale), "world unit scale", cvar.NONE).
		SetCallback(func(cv *cvar.Cvar) { c.Scale = cv.Value() })
	v.MustRegister("mesh_yup", btoa(c.YUp), "convert z-up to y-up", cvar.NONE).
		SetCallback(func(cv *cvar.Cvar) { c.YUp = cv.Bool() })
	v.MustRegister("mesh_skiptools", btoa(c.SkipTools), "drop tool textures", cvar.NONE).
		SetCallback(func(cv *cvar.Cvar) { c.SkipTools = cv.Bool() })
	v.MustRegister("lm_atlas_width", strconv.Itoa(c.AtlasWidth), "lightmap atlas width", cvar.NONE).
		SetCallback(func(cv *cvar.Cvar) { c.AtlasWidth = int(cv.Value()) })
	v.MustRegister("lm_gamma", ftoa(c.Gamma), "lightmap gamma", cvar.NONE).
		SetCallback(func(cv *cvar.Cvar) { c.Gamma = cv.Value() })
	v.MustRegister("fs_charset", c.Charset, "text encoding of scripts", cvar.NONE).
		SetCallback(func(cv *cvar.Cvar) { c.Charset = cv.String() })
	v.MustRegister("fs_verifycrc", btoa(c.VerifyCRC), "check archive checksums", cvar.NONE).
		SetCallback(func(cv *cvar.Cvar) { c.VerifyCRC = cv.Bool() })
	v.MustRegister("log_level", c.LogLevel, "log level", cvar.NONE).
		SetCallback(func(cv *cvar.Cvar) { c.LogLevel = cv.String() })
	c.vars = v
}

func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

func btoa(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
