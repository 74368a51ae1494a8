// SPDX-License-Identifier: GPL-2.0-or-later

// Package session wires the pipeline for map loads: the archive index of a
// configuration, the decoders, the asset caches and the report.
package session

import (
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"

	"goquell/bsp"
	"goquell/config"
	"goquell/filesystem"
	"goquell/mesh"
	"goquell/report"
	"goquell/scene"
)

// Session owns an archive index. Maps are loaded one at a time; each load
// gets fresh caches and an overlay holding the map's own pakfile.
type Session struct {
	ID uuid.UUID

	cfg     *config.Config
	log     *slog.Logger
	charmap *charmap.Charmap
	index   *filesystem.Index

	mu      sync.Mutex
	overlay *filesystem.Index
	assets  *Assets
}

// New opens the search path of cfg. Earlier sources win over later ones.
func New(cfg *config.Config, log *slog.Logger) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = slog.Default()
	}
	cm, err := config.Charmap(cfg.Charset)
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "session id")
	}
	s := &Session{
		ID:      id,
		cfg:     cfg,
		log:     log.With("session", id.String()),
		charmap: cm,
	}
	s.index = filesystem.NewIndex(s.log)
	s.index.SetVerify(cfg.VerifyCRC)
	for _, src := range cfg.Search {
		if err := s.addSource(src); err != nil {
			if src.Optional {
				s.log.Warn("Search path skipped", "kind", src.Kind, "path", src.Path, "err", err)
				continue
			}
			s.index.Close()
			return nil, err
		}
	}
	s.log.Info("Session ready", "sources", len(cfg.Search), "files", s.index.Len())
	return s, nil
}

func (s *Session) addSource(src config.Source) error {
	var err error
	switch src.Kind {
	case config.SourceVPK:
		_, err = s.index.AddVPK(src.Path)
	case config.SourcePak:
		_, err = s.index.AddPak(src.Path)
	case config.SourceZip:
		_, err = s.index.AddZipFile(src.Path)
	case config.SourceDir:
		_, err = s.index.AddDir(src.Path)
	case config.SourceGame:
		err = s.index.AddGameDir(src.Path)
	default:
		err = errors.Errorf("unknown source kind %q", src.Kind)
	}
	return err
}

// Index returns the search path without any map pakfile.
func (s *Session) Index() *filesystem.Index {
	return s.index
}

// Assets returns the assets of the most recent load, nil before the first.
func (s *Session) Assets() *Assets {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assets
}

// readMap prefers a file on disk and falls back to the search path.
func (s *Session) readMap(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err == nil {
		return b, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	return s.index.ReadFile(path)
}

// Load decodes a map and everything it references. The error is a
// *report.FatalLoadError; asset problems end up in the report.
func (s *Session) Load(mapPath string) (*scene.Scene, *report.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()

	data, err := s.readMap(mapPath)
	if err != nil {
		return nil, nil, report.Fatal(errors.Wrapf(err, "reading %s", mapPath))
	}
	m, err := bsp.DecodeWith(data, bsp.Options{Workers: s.cfg.Workers, Log: s.log})
	if err != nil {
		return nil, nil, report.Fatal(errors.Wrap(err, mapPath))
	}
	rep := report.New()
	for _, d := range m.Degraded {
		rep.Degrade(d.Name(), d.Err.Error())
	}

	s.release()
	s.overlay = s.index.Overlay()
	if len(m.Pakfile) > 0 {
		name := filesystem.Normalize(mapPath) + ":pakfile"
		if _, err := s.overlay.AddZip(name, m.Pakfile); err != nil {
			rep.Add(report.Classify(name, err))
		}
	}
	s.assets = NewAssets(s.overlay, rep, s.charmap, s.cfg.Workers, s.log)

	res, err := mesh.Build(m, s.assets.Material, mesh.Options{
		Workers:    s.cfg.Workers,
		Scale:      s.cfg.Scale,
		YUp:        s.cfg.YUp,
		SkipTools:  s.cfg.SkipTools,
		AtlasWidth: s.cfg.AtlasWidth,
		Gamma:      s.cfg.Gamma,
		Log:        s.log,
	})
	if err != nil {
		return nil, nil, report.Fatal(errors.Wrap(err, mapPath))
	}
	s.assets.Prefetch(materialNames(res))

	sc, err := scene.Assemble(m, m.Entities, s.assets, scene.Options{
		MapName: filesystem.Normalize(mapPath),
		Scale:   s.cfg.Scale,
		YUp:     s.cfg.YUp,
		Charmap: s.charmap,
		Mesh:    res,
		Workers: s.cfg.Workers,
		Log:     s.log,
		Report:  func(path string, err error) { s.assets.Record(path, err) },
	})
	if err != nil {
		return nil, nil, report.Fatal(errors.Wrap(err, mapPath))
	}
	if id, err := uuid.NewV7(); err == nil {
		sc.ID = id
	}
	mats, texs, mdls := s.assets.Counts()
	s.log.Info("Map loaded", "map", sc.Map, "batches", len(sc.Batches),
		"entities", len(sc.Entities), "materials", mats, "textures", texs,
		"models", mdls, "errors", rep.Count(), "skipped", res.Skipped,
		"took", time.Since(start))
	return sc, rep, nil
}

func materialNames(res *mesh.Result) []string {
	names := make([]string, 0, len(res.Batches))
	for _, b := range res.Batches {
		if b.Material != "" {
			names = append(names, b.Material)
		}
	}
	sort.Strings(names)
	return names
}

func (s *Session) release() {
	if s.overlay != nil {
		if err := s.overlay.Close(); err != nil {
			s.log.Warn("Closing pakfile", "err", err)
		}
		s.overlay = nil
	}
	s.assets = nil
}

// Close releases all archives. The session is unusable afterwards.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.release()
	return s.index.Close()
}
