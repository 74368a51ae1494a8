// SPDX-License-Identifier: GPL-2.0-or-later

package session

import (
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"

	"goquell/cache"
	"goquell/filesystem"
	"goquell/mdl"
	"goquell/model"
	"goquell/report"
	"goquell/texture"
	"goquell/vmt"
	"goquell/vtf"
)

var errNotStudio = errors.New("not a studio model")

// Assets resolves materials, textures and models of one map load. Every
// asset is decoded at most once. Failures are recorded in the report;
// textures fall back to a placeholder, materials and models return the
// error so callers can substitute.
type Assets struct {
	fs      *filesystem.Index
	report  *report.Report
	log     *slog.Logger
	charmap *charmap.Charmap
	workers int

	materials *cache.Cache[*vmt.Material]
	textures  *cache.Cache[*texture.Texture]
	models    *cache.Cache[*mdl.Model]
}

func NewAssets(fs *filesystem.Index, rep *report.Report, cm *charmap.Charmap, workers int, log *slog.Logger) *Assets {
	if workers < 1 {
		workers = 1
	}
	return &Assets{
		fs:        fs,
		report:    rep,
		log:       log,
		charmap:   cm,
		workers:   workers,
		materials: cache.New[*vmt.Material](),
		textures:  cache.New[*texture.Texture](),
		models:    cache.New[*mdl.Model](),
	}
}

// MaterialPath maps a material name as used by maps and models to its file.
func MaterialPath(name string) string {
	return assetPath("materials/", name, ".vmt")
}

// TexturePath maps a texture name as used by materials to its file.
func TexturePath(name string) string {
	return assetPath("materials/", name, ".vtf")
}

func assetPath(dir, name, ext string) string {
	p := filesystem.Normalize(name)
	if !strings.HasPrefix(p, dir) {
		p = dir + p
	}
	// names may contain dots, only a matching extension is kept
	if filesystem.Ext(p) != ext {
		p += ext
	}
	return p
}

// Record adds err for path to the report and returns it as an asset error.
func (a *Assets) Record(path string, err error) error {
	ae := report.Classify(path, err)
	if a.report.Add(ae) {
		a.log.Debug("Asset failed", "path", path, "kind", ae.Kind.String(), "err", err)
	}
	return ae
}

func (a *Assets) Material(name string) (*vmt.Material, error) {
	return a.materials.Get(name, func() (*vmt.Material, error) {
		p := MaterialPath(name)
		b, err := a.fs.ReadFile(p)
		if err != nil {
			return nil, a.Record(p, err)
		}
		m, err := vmt.ResolveWith(filesystem.Normalize(name), b, vmt.Options{
			Charmap: a.charmap,
			Include: a.fs.ReadFile,
		})
		if err != nil {
			return nil, a.Record(p, err)
		}
		return m, nil
	})
}

// Texture never fails: broken or missing textures become placeholders.
func (a *Assets) Texture(name string) (*texture.Texture, error) {
	return a.textures.Get(name, func() (*texture.Texture, error) {
		p := TexturePath(name)
		t, err := a.decodeTexture(p)
		if err != nil {
			a.Record(p, err)
			return texture.Placeholder(filesystem.Normalize(name)), nil
		}
		t.Name = filesystem.Normalize(name)
		return t, nil
	})
}

func (a *Assets) decodeTexture(p string) (*texture.Texture, error) {
	b, err := a.fs.ReadFile(p)
	if err != nil {
		return nil, err
	}
	return vtf.Decode(b)
}

func (a *Assets) Model(path string) (*mdl.Model, error) {
	return a.models.Get(path, func() (*mdl.Model, error) {
		p := filesystem.Normalize(path)
		m, err := model.Load(p, a.fs)
		if err != nil {
			return nil, a.Record(p, err)
		}
		sm, ok := m.(*mdl.Model)
		if !ok {
			return nil, a.Record(p, errors.Wrapf(errNotStudio, "%T", m))
		}
		return sm, nil
	})
}

// Prefetch decodes the named materials and their textures in parallel.
func (a *Assets) Prefetch(materials []string) {
	var g errgroup.Group
	g.SetLimit(a.workers)
	for _, name := range materials {
		if name == "" {
			continue
		}
		g.Go(func() error {
			m, err := a.Material(name)
			if err != nil {
				return nil
			}
			for _, t := range []string{m.BaseTexture, m.BaseTexture2} {
				if t != "" {
					a.Texture(t)
				}
			}
			return nil
		})
	}
	g.Wait()
}

// Counts returns the number of distinct materials, textures and models
// requested so far.
func (a *Assets) Counts() (materials, textures, models int) {
	return a.materials.Len(), a.textures.Len(), a.models.Len()
}
