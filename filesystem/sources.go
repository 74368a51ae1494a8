// SPDX-License-Identifier: GPL-2.0-or-later

package filesystem

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"goquell/pack"
	"goquell/vpk"
)

// source is one registered container.
type source interface {
	String() string
	// files lists the entries with their locators, Archive left unset.
	files() (map[string]Locator, error)
	read(l Locator) ([]byte, error)
	Close() error
}

type vpkSource struct {
	a      *vpk.Archive
	verify bool
}

func (s *vpkSource) String() string { return s.a.String() }

func (s *vpkSource) files() (map[string]Locator, error) {
	es := s.a.Entries()
	m := make(map[string]Locator, len(es))
	for _, e := range es {
		m[Normalize(e.Path)] = Locator{
			Name:    e.Path,
			Offset:  e.Offset,
			Length:  e.Length,
			Size:    e.Size(),
			Preload: e.Preload,
		}
	}
	return m, nil
}

func (s *vpkSource) read(l Locator) ([]byte, error) {
	e, ok := s.a.Entry(l.Name)
	if !ok {
		return nil, errors.Wrap(ErrNotExist, l.Name)
	}
	b, err := s.a.Read(e)
	if err != nil {
		return nil, err
	}
	if s.verify {
		if err := vpk.Verify(e, b); err != nil {
			return nil, errors.Wrap(ErrArchiveCorrupt, err.Error())
		}
	}
	return b, nil
}

func (s *vpkSource) Close() error { return s.a.Close() }

type packSource struct {
	p *pack.Pack
}

func (s packSource) String() string { return s.p.String() }

func (s packSource) files() (map[string]Locator, error) {
	names := s.p.Names()
	m := make(map[string]Locator, len(names))
	for _, n := range names {
		e, _ := s.p.Entry(n)
		m[Normalize(n)] = Locator{Name: n, Offset: e.Offset, Length: e.Size, Size: e.Size}
	}
	return m, nil
}

func (s packSource) read(l Locator) ([]byte, error) {
	b := make([]byte, l.Length)
	if _, err := s.p.ReadAt(b, l.Offset); err != nil && err != io.EOF {
		return nil, err
	}
	return b, nil
}

func (s packSource) Close() error { return s.p.Close() }

// zipSource covers zip files on disk and the pakfile lump of a map.
type zipSource struct {
	name string
	r    io.ReaderAt
	zr   *zip.Reader
	c    io.Closer
}

func newZipSource(name string, r io.ReaderAt, size int64, c io.Closer) (*zipSource, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrap(ErrArchiveCorrupt, err.Error())
	}
	return &zipSource{name: name, r: r, zr: zr, c: c}, nil
}

func (s *zipSource) String() string { return s.name }

func (s *zipSource) files() (map[string]Locator, error) {
	m := make(map[string]Locator, len(s.zr.File))
	for _, f := range s.zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		off, err := f.DataOffset()
		if err != nil {
			return nil, errors.Wrapf(ErrArchiveCorrupt, "%s: %v", f.Name, err)
		}
		l := Locator{
			Name:   f.Name,
			Offset: off,
			Length: int64(f.CompressedSize64),
			Size:   int64(f.UncompressedSize64),
			method: f.Method,
		}
		l.Compressed = f.Method != zip.Store
		m[Normalize(f.Name)] = l
	}
	return m, nil
}

func (s *zipSource) read(l Locator) ([]byte, error) {
	raw := make([]byte, l.Length)
	if _, err := s.r.ReadAt(raw, l.Offset); err != nil && err != io.EOF {
		return nil, err
	}
	switch l.method {
	case zip.Store:
		return raw, nil
	case zip.Deflate:
		fr := flate.NewReader(bytes.NewReader(raw))
		defer fr.Close()
		out := make([]byte, 0, l.Size)
		buf := bytes.NewBuffer(out)
		if _, err := io.Copy(buf, fr); err != nil {
			return nil, errors.Wrapf(ErrArchiveCorrupt, "%s: %v", l.Name, err)
		}
		return buf.Bytes(), nil
	}
	return nil, errors.Wrapf(ErrUnsupported, "%s: zip method %d", l.Name, l.method)
}

func (s *zipSource) Close() error {
	if s.c != nil {
		return s.c.Close()
	}
	return nil
}

// dirSource is a loose directory. Its listing is taken at registration.
type dirSource struct {
	root string
}

func (s dirSource) String() string { return s.root }

func (s dirSource) files() (map[string]Locator, error) {
	m := map[string]Locator{}
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		k := Normalize(filepath.ToSlash(rel))
		if _, ok := m[k]; !ok {
			m[k] = Locator{Name: rel, Length: info.Size(), Size: info.Size()}
		}
		return nil
	})
	return m, err
}

func (s dirSource) read(l Locator) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(s.root, l.Name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(ErrNotExist, l.Name)
	}
	return b, err
}

func (dirSource) Close() error { return nil }
