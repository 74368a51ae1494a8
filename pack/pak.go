// SPDX-License-Identifier: GPL-2.0-or-later

package pack

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
)

var ErrNotPack = errors.New("not a pack")

type header struct {
	ID     [4]byte
	Offset int32
	Size   int32
}

type entry struct {
	Name   [56]byte
	Offset int32
	Size   int32
}

const entrySize = 64

// Pack is a Quake PACK archive. Only the directory is read at open time.
type Pack struct {
	f     *os.File
	files map[string]File
	name  string
}

// File is the byte range of one entry.
type File struct {
	Offset int64
	Size   int64
}

// Open returns a io.SectionReader or os.ErrNotExist if the pak has no entry
// with the provided name.
func (p *Pack) Open(name string) (*io.SectionReader, error) {
	q, ok := p.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NewSectionReader(p.f, q.Offset, q.Size), nil
}

// ReadAt reads from the underlying archive file.
func (p *Pack) ReadAt(b []byte, off int64) (int, error) {
	return p.f.ReadAt(b, off)
}

// Names returns the entry names in sorted order.
func (p *Pack) Names() []string {
	n := make([]string, 0, len(p.files))
	for k := range p.files {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// Entry returns the byte range of name.
func (p *Pack) Entry(name string) (File, bool) {
	f, ok := p.files[name]
	return f, ok
}

func (p *Pack) String() string {
	return p.name
}

func (p *Pack) Close() error {
	return p.f.Close()
}

func (p *Pack) init() error {
	st, err := p.f.Stat()
	if err != nil {
		return err
	}
	var h header
	if err := binary.Read(p.f, binary.LittleEndian, &h); err != nil {
		return errors.Wrap(ErrNotPack, err.Error())
	}
	if !bytes.Equal([]byte("PACK"), h.ID[:]) {
		return ErrNotPack
	}
	if h.Offset < 0 || h.Size < 0 || int64(h.Offset)+int64(h.Size) > st.Size() {
		return errors.Wrap(ErrNotPack, "directory out of range")
	}
	if _, err := p.f.Seek(int64(h.Offset), io.SeekStart); err != nil {
		return err
	}
	filenum := h.Size / entrySize
	p.files = make(map[string]File, filenum)
	for i := int32(0); i < filenum; i++ {
		var e entry
		if err := binary.Read(p.f, binary.LittleEndian, &e); err != nil {
			return err
		}
		n := bytes.IndexByte(e.Name[:], 0)
		if n < 0 {
			n = len(e.Name)
		}
		name := string(e.Name[:n])
		if _, ok := p.files[name]; ok {
			return errors.Errorf("files in pack are not unique: %s", name)
		}
		if e.Offset < 0 || e.Size < 0 || int64(e.Offset)+int64(e.Size) > st.Size() {
			return errors.Wrapf(ErrNotPack, "entry %s out of range", name)
		}
		p.files[name] = File{
			Offset: int64(e.Offset),
			Size:   int64(e.Size),
		}
	}
	return nil
}

func NewPackReader(name string) (*Pack, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	p := &Pack{f: f, name: name}
	if err := p.init(); err != nil {
		p.Close()
		return nil, errors.Wrap(err, name)
	}
	return p, nil
}

// Write creates a PACK archive holding files in name order.
func Write(w io.Writer, files map[string][]byte) error {
	names := make([]string, 0, len(files))
	for n := range files {
		if len(n) >= 56 {
			return errors.Errorf("name too long: %s", n)
		}
		names = append(names, n)
	}
	sort.Strings(names)
	off := int32(12)
	var body bytes.Buffer
	dir := make([]entry, 0, len(names))
	for _, n := range names {
		var e entry
		copy(e.Name[:], n)
		e.Offset = off
		e.Size = int32(len(files[n]))
		body.Write(files[n])
		off += e.Size
		dir = append(dir, e)
	}
	h := header{ID: [4]byte{'P', 'A', 'C', 'K'}, Offset: off, Size: int32(len(dir) * entrySize)}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, dir)
}
