// SPDX-License-Identifier: GPL-2.0-or-later

package image

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestPNG(t *testing.T) {
	data := []byte{255, 0, 0, 255, 0, 255, 0, 128}
	b, err := PNG(data, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Dx(); got != 2 {
		t.Errorf("width = %d, want 2", got)
	}
	if _, err := PNG(data, 3, 1); !errors.Is(err, ErrShortData) {
		t.Errorf("PNG(short) = %v, want ErrShortData", err)
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	data := make([]byte, 16)
	for i := range data {
		data[i] = 255
	}
	tests := []struct {
		name   string
		decode func(b []byte) error
	}{
		{"a/b.png", func(b []byte) error { _, err := png.Decode(bytes.NewReader(b)); return err }},
		{"c.BMP", func(b []byte) error { _, err := bmp.Decode(bytes.NewReader(b)); return err }},
		{"d.tiff", func(b []byte) error { _, err := tiff.Decode(bytes.NewReader(b)); return err }},
	}
	for _, tc := range tests {
		name := filepath.Join(dir, filepath.FromSlash(tc.name))
		if err := Write(name, data, 2, 2); err != nil {
			t.Fatalf("Write(%s): %v", tc.name, err)
		}
		b, err := os.ReadFile(name)
		if err != nil {
			t.Fatal(err)
		}
		if err := tc.decode(b); err != nil {
			t.Errorf("decoding %s: %v", tc.name, err)
		}
	}
	if err := Write(filepath.Join(dir, "e.png"), data, 4, 4); !errors.Is(err, ErrShortData) {
		t.Errorf("Write(short) = %v, want ErrShortData", err)
	}
}
