// SPDX-License-Identifier: GPL-2.0-or-later

// Package filesystem indexes archives and loose directories into one search
// path. Registration reads directories only. After registration the index is
// read-only and lookups take no locks.
package filesystem

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"goquell/pack"
	"goquell/vpk"
)

var (
	ErrNotExist       = errors.New("file does not exist")
	ErrArchiveCorrupt = errors.New("archive corrupt")
	ErrUnsupported    = errors.New("unsupported archive entry")
)

// Locator addresses the payload of one file inside a registered source.
type Locator struct {
	Archive int
	// Name is the entry name inside the source, original case.
	Name   string
	Offset int64
	// Length is the number of stored bytes, Size the payload size.
	Length     int64
	Size       int64
	Compressed bool
	// Preload holds bytes stored in a VPK directory ahead of the payload.
	Preload []byte
	method  uint16
}

// Index maps normalized logical paths to locators. The first source that
// registers a path owns it.
type Index struct {
	log     *slog.Logger
	parent  *Index
	base    int
	sources []source
	files   map[string]Locator
	verify  bool
}

func NewIndex(log *slog.Logger) *Index {
	return &Index{log: log, files: make(map[string]Locator)}
}

// Overlay returns an index searched before ix. ix stays unchanged and must
// outlive the overlay.
func (ix *Index) Overlay() *Index {
	return &Index{
		log:    ix.log,
		parent: ix,
		base:   ix.base + len(ix.sources),
		files:  make(map[string]Locator),
		verify: ix.verify,
	}
}

// SetVerify enables checksum checks on archive reads that carry one.
func (ix *Index) SetVerify(v bool) {
	ix.verify = v
	for _, s := range ix.sources {
		if vs, ok := s.(*vpkSource); ok {
			vs.verify = v
		}
	}
}

func (ix *Index) register(s source) (int, error) {
	fs, err := s.files()
	if err != nil {
		s.Close()
		return 0, errors.Wrap(err, s.String())
	}
	id := ix.base + len(ix.sources)
	ix.sources = append(ix.sources, s)
	shadowed := 0
	for k, l := range fs {
		if _, ok := ix.files[k]; ok {
			shadowed++
			continue
		}
		l.Archive = id
		ix.files[k] = l
	}
	ix.log.Debug("source registered", "source", s.String(), "id", id, "entries", len(fs), "shadowed", shadowed)
	return id, nil
}

// AddArchive opens a container picked by file extension.
func (ix *Index) AddArchive(path string) (int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vpk":
		return ix.AddVPK(path)
	case ".pak":
		return ix.AddPak(path)
	case ".zip":
		return ix.AddZipFile(path)
	}
	return 0, errors.Errorf("%s: unknown archive type", path)
}

func (ix *Index) AddVPK(path string) (int, error) {
	a, err := vpk.Open(path)
	if err != nil {
		return 0, errors.Wrap(ErrArchiveCorrupt, err.Error())
	}
	return ix.register(&vpkSource{a: a, verify: ix.verify})
}

func (ix *Index) AddPak(path string) (int, error) {
	p, err := pack.NewPackReader(path)
	if err != nil {
		return 0, errors.Wrap(ErrArchiveCorrupt, err.Error())
	}
	return ix.register(packSource{p})
}

func (ix *Index) AddZipFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return 0, err
	}
	s, err := newZipSource(path, f, st.Size(), f)
	if err != nil {
		f.Close()
		return 0, errors.Wrap(err, path)
	}
	return ix.register(s)
}

// AddZip registers an in-memory zip such as the pakfile lump of a map.
func (ix *Index) AddZip(name string, data []byte) (int, error) {
	s, err := newZipSource(name, bytes.NewReader(data), int64(len(data)), nil)
	if err != nil {
		return 0, errors.Wrap(err, name)
	}
	return ix.register(s)
}

// AddDir registers a loose directory.
func (ix *Index) AddDir(path string) (int, error) {
	st, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if !st.IsDir() {
		return 0, errors.Errorf("%s is not a directory", path)
	}
	return ix.register(dirSource{root: path})
}

// AddGameDir registers the VPK directories of dir, its numbered paks from
// high to low and finally the loose files.
func (ix *Index) AddGameDir(dir string) error {
	vpks, _ := filepath.Glob(filepath.Join(dir, "*_dir.vpk"))
	sort.Strings(vpks)
	for _, v := range vpks {
		if _, err := ix.AddVPK(v); err != nil {
			return err
		}
	}
	var paks []string
	for i := 0; ; i++ {
		p := filepath.Join(dir, fmt.Sprintf("pak%d.pak", i))
		if _, err := os.Stat(p); err != nil {
			break
		}
		paks = append(paks, p)
	}
	for i := len(paks) - 1; i >= 0; i-- {
		if _, err := ix.AddPak(paks[i]); err != nil {
			return err
		}
	}
	_, err := ix.AddDir(dir)
	return err
}

// Resolve returns the locator of the first source containing p.
func (ix *Index) Resolve(p string) (Locator, bool) {
	k := Normalize(p)
	for i := ix; i != nil; i = i.parent {
		if l, ok := i.files[k]; ok {
			return l, true
		}
	}
	return Locator{}, false
}

func (ix *Index) Exists(p string) bool {
	_, ok := ix.Resolve(p)
	return ok
}

// ReadFile returns the payload of p.
func (ix *Index) ReadFile(p string) ([]byte, error) {
	l, ok := ix.Resolve(p)
	if !ok {
		return nil, errors.Wrap(ErrNotExist, Normalize(p))
	}
	return ix.ReadLocator(l)
}

func (ix *Index) ReadLocator(l Locator) ([]byte, error) {
	for i := ix; i != nil; i = i.parent {
		if l.Archive >= i.base && l.Archive < i.base+len(i.sources) {
			return i.sources[l.Archive-i.base].read(l)
		}
	}
	return nil, errors.Errorf("no source with id %d", l.Archive)
}

// Source returns the name of a registered source.
func (ix *Index) Source(id int) string {
	for i := ix; i != nil; i = i.parent {
		if id >= i.base && id < i.base+len(i.sources) {
			return i.sources[id-i.base].String()
		}
	}
	return ""
}

// Len counts distinct paths including parents.
func (ix *Index) Len() int {
	seen := map[string]struct{}{}
	for i := ix; i != nil; i = i.parent {
		for k := range i.files {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}

// Glob lists the paths below prefix with the given extension, sorted.
func (ix *Index) Glob(prefix, ext string) []string {
	prefix = Normalize(prefix)
	ext = strings.ToLower(ext)
	seen := map[string]struct{}{}
	for i := ix; i != nil; i = i.parent {
		for k := range i.files {
			if strings.HasPrefix(k, prefix) && (ext == "" || Ext(k) == ext) {
				seen[k] = struct{}{}
			}
		}
	}
	r := make([]string, 0, len(seen))
	for k := range seen {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// Close releases the sources registered on ix, not those of its parent.
func (ix *Index) Close() error {
	var first error
	for _, s := range ix.sources {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	ix.sources = nil
	return first
}
