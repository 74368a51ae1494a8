// SPDX-License-Identifier: GPL-2.0-or-later

package model

import (
	"testing"

	"github.com/pkg/errors"

	"goquell/math/vec"
)

type files map[string][]byte

func (f files) ReadFile(name string) ([]byte, error) {
	b, ok := f[name]
	if !ok {
		return nil, errors.Errorf("%s: not found", name)
	}
	return b, nil
}

type stub struct{ name string }

func (s stub) Name() string   { return s.name }
func (s stub) Mins() vec.Vec3 { return vec.Vec3{} }
func (s stub) Maxs() vec.Vec3 { return vec.Vec3{} }

func TestLoad(t *testing.T) {
	const magic = 'T'<<24 | 'S'<<16 | 'E'<<8 | 'T'
	Register(magic, func(name string, data []byte, fs Reader) (Model, error) {
		if _, err := fs.ReadFile("extra"); err != nil {
			return nil, err
		}
		return stub{name}, nil
	})
	fs := files{
		"a.tst": []byte("TEST...."),
		"b.tst": []byte("NOPE...."),
		"c.tst": []byte("TE"),
		"extra": nil,
	}
	m, err := Load("a.tst", fs)
	if err != nil || m.Name() != "a.tst" {
		t.Errorf("Load(a.tst) = %v, %v", m, err)
	}
	for _, n := range []string{"b.tst", "c.tst"} {
		if _, err := Load(n, fs); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Load(%s) = %v, want ErrUnknownFormat", n, err)
		}
	}
	if _, err := Load("missing", fs); err == nil {
		t.Errorf("Load(missing) succeeded")
	}
}
