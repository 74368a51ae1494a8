// SPDX-License-Identifier: GPL-2.0-or-later

package model

import (
	"encoding/binary"
	"sync"

	"github.com/pkg/errors"
)

var ErrUnknownFormat = errors.New("unknown model format")

var (
	loadersMu sync.RWMutex
	loaders   = make(map[uint32]LoadFunc)
)

// Reader reads files related to a model, e.g. its vertex data.
type Reader interface {
	ReadFile(name string) ([]byte, error)
}

// LoadFunc decodes data, the content of name. Companion files are read
// through fs.
type LoadFunc func(name string, data []byte, fs Reader) (Model, error)

func Register(magic uint32, f LoadFunc) {
	loadersMu.Lock()
	defer loadersMu.Unlock()
	loaders[magic] = f
}

func Load(name string, fs Reader) (Model, error) {
	data, err := fs.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if len(data) < 4 {
		return nil, errors.Wrapf(ErrUnknownFormat, "%s", name)
	}
	magic := binary.LittleEndian.Uint32(data)
	loadersMu.RLock()
	f, ok := loaders[magic]
	loadersMu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFormat, "%s: magic %08x", name, magic)
	}
	return f(name, data, fs)
}
