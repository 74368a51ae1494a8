// SPDX-License-Identifier: GPL-2.0-or-later

// Package vpk reads Valve VPK directory archives. Only the directory tree is
// read at open time. Payloads are read on demand from the _dir file or the
// numbered sibling archives.
package vpk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

const (
	Signature = 0x55aa1234
	// DirArchive marks entries whose payload follows the tree in the _dir file.
	DirArchive = 0x7fff
	terminator = 0xffff
)

var (
	ErrBadSignature = errors.New("vpk: bad signature")
	ErrVersion      = errors.New("vpk: unsupported version")
	ErrTruncated    = errors.New("vpk: truncated directory")
	ErrCRC          = errors.New("vpk: checksum mismatch")
)

type header struct {
	Signature uint32
	Version   uint32
	TreeSize  uint32
}

type headerV2 struct {
	FileDataSectionSize   uint32
	ArchiveMD5SectionSize uint32
	OtherMD5SectionSize   uint32
	SignatureSectionSize  uint32
}

type dirEntry struct {
	CRC          uint32
	PreloadBytes uint16
	ArchiveIndex uint16
	EntryOffset  uint32
	EntryLength  uint32
	Terminator   uint16
}

// Entry is one file of the archive.
type Entry struct {
	Path    string
	CRC     uint32
	Archive uint16
	Offset  int64
	Length  int64
	Preload []byte
}

// Size is the total payload size including preload bytes.
func (e *Entry) Size() int64 {
	return int64(len(e.Preload)) + e.Length
}

type Archive struct {
	name       string
	version    uint32
	dataOffset int64
	entries    map[string]*Entry
	mem        []byte

	mu    sync.Mutex
	files map[uint16]*os.File
}

// Open reads the directory of a VPK. name may be the _dir file or a
// single-file archive.
func Open(name string) (*Archive, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	// the tree is small compared to the payload; read header first to size it
	var hb [28]byte
	n, _ := f.ReadAt(hb[:], 0)
	treeEnd, err := treeExtent(hb[:n])
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, name)
	}
	if treeEnd > st.Size() {
		f.Close()
		return nil, errors.Wrap(ErrTruncated, name)
	}
	buf := make([]byte, treeEnd)
	if _, err := f.ReadAt(buf, 0); err != nil {
		f.Close()
		return nil, errors.Wrap(err, name)
	}
	a, err := parse(buf)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, name)
	}
	a.name = name
	a.files = map[uint16]*os.File{DirArchive: f}
	return a, nil
}

// Parse reads a directory from memory. Reads of DirArchive entries use data.
func Parse(data []byte) (*Archive, error) {
	a, err := parse(data)
	if err != nil {
		return nil, err
	}
	a.mem = data
	return a, nil
}

func treeExtent(b []byte) (int64, error) {
	if len(b) < 12 {
		return 0, ErrTruncated
	}
	var h header
	binary.Read(bytes.NewReader(b), binary.LittleEndian, &h)
	if h.Signature != Signature {
		return 0, ErrBadSignature
	}
	switch h.Version {
	case 1:
		return 12 + int64(h.TreeSize), nil
	case 2:
		return 28 + int64(h.TreeSize), nil
	}
	return 0, errors.Wrapf(ErrVersion, "version %d", h.Version)
}

func parse(data []byte) (*Archive, error) {
	treeEnd, err := treeExtent(data)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) < treeEnd {
		return nil, ErrTruncated
	}
	r := bytes.NewReader(data)
	var h header
	binary.Read(r, binary.LittleEndian, &h)
	if h.Version == 2 {
		var h2 headerV2
		if err := binary.Read(r, binary.LittleEndian, &h2); err != nil {
			return nil, ErrTruncated
		}
	}
	a := &Archive{
		version:    h.Version,
		dataOffset: treeEnd,
		entries:    make(map[string]*Entry),
	}
	tree := data[:treeEnd]
	pos := int(treeEnd) - int(h.TreeSize)
	str := func() (string, error) {
		i := bytes.IndexByte(tree[pos:], 0)
		if i < 0 {
			return "", ErrTruncated
		}
		s := string(tree[pos : pos+i])
		pos += i + 1
		return s, nil
	}
	for {
		ext, err := str()
		if err != nil {
			return nil, err
		}
		if ext == "" {
			break
		}
		for {
			dir, err := str()
			if err != nil {
				return nil, err
			}
			if dir == "" {
				break
			}
			for {
				file, err := str()
				if err != nil {
					return nil, err
				}
				if file == "" {
					break
				}
				var de dirEntry
				if pos+18 > len(tree) {
					return nil, ErrTruncated
				}
				binary.Read(bytes.NewReader(tree[pos:pos+18]), binary.LittleEndian, &de)
				pos += 18
				if de.Terminator != terminator {
					return nil, errors.Wrapf(ErrTruncated, "bad terminator in %s/%s.%s", dir, file, ext)
				}
				if pos+int(de.PreloadBytes) > len(tree) {
					return nil, ErrTruncated
				}
				e := &Entry{
					Path:    joinPath(dir, file, ext),
					CRC:     de.CRC,
					Archive: de.ArchiveIndex,
					Offset:  int64(de.EntryOffset),
					Length:  int64(de.EntryLength),
				}
				if de.PreloadBytes > 0 {
					e.Preload = tree[pos : pos+int(de.PreloadBytes)]
					pos += int(de.PreloadBytes)
				}
				if e.Archive == DirArchive {
					e.Offset += a.dataOffset
				}
				a.entries[strings.ToLower(e.Path)] = e
			}
		}
	}
	return a, nil
}

func joinPath(dir, file, ext string) string {
	p := file
	if ext != " " {
		p += "." + ext
	}
	if dir != " " {
		p = dir + "/" + p
	}
	return p
}

func (a *Archive) String() string {
	return a.name
}

func (a *Archive) Version() int {
	return int(a.version)
}

// Entries returns all entries sorted by path.
func (a *Archive) Entries() []*Entry {
	r := make([]*Entry, 0, len(a.entries))
	for _, e := range a.entries {
		r = append(r, e)
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Path < r[j].Path })
	return r
}

// Entry looks up a lower case path.
func (a *Archive) Entry(path string) (*Entry, bool) {
	e, ok := a.entries[strings.ToLower(path)]
	return e, ok
}

// Read returns the full payload of e.
func (a *Archive) Read(e *Entry) ([]byte, error) {
	b := make([]byte, e.Size())
	copy(b, e.Preload)
	if e.Length > 0 {
		if err := a.readAt(e.Archive, b[len(e.Preload):], e.Offset); err != nil {
			return nil, errors.Wrapf(err, "reading %s", e.Path)
		}
	}
	return b, nil
}

// Verify checks data against the directory checksum.
func Verify(e *Entry, data []byte) error {
	if c := crc32.ChecksumIEEE(data); c != e.CRC {
		return errors.Wrapf(ErrCRC, "%s: %08x != %08x", e.Path, c, e.CRC)
	}
	return nil
}

func (a *Archive) readAt(archive uint16, b []byte, off int64) error {
	if archive == DirArchive && a.mem != nil {
		if off < 0 || off+int64(len(b)) > int64(len(a.mem)) {
			return ErrTruncated
		}
		copy(b, a.mem[off:])
		return nil
	}
	f, err := a.file(archive)
	if err != nil {
		return err
	}
	_, err = f.ReadAt(b, off)
	return err
}

// file opens numbered archives on first use.
func (a *Archive) file(archive uint16) (*os.File, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if f, ok := a.files[archive]; ok {
		return f, nil
	}
	if a.name == "" {
		return nil, errors.Errorf("archive %d not available", archive)
	}
	n := a.siblingName(archive)
	f, err := os.Open(n)
	if err != nil {
		return nil, err
	}
	a.files[archive] = f
	return f, nil
}

func (a *Archive) siblingName(archive uint16) string {
	dir, base := filepath.Split(a.name)
	base = strings.TrimSuffix(base, ".vpk")
	base = strings.TrimSuffix(base, "_dir")
	return filepath.Join(dir, fmt.Sprintf("%s_%03d.vpk", base, archive))
}

func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	var first error
	for k, f := range a.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
		delete(a.files, k)
	}
	return first
}
