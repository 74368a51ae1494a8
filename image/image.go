// SPDX-License-Identifier: GPL-2.0-or-later

// Package image writes decoded RGBA8 pixel data as PNG, BMP or TIFF.
package image

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var ErrShortData = errors.New("not enough pixel data")

func wrap(data []byte, width, height int) (*image.NRGBA, error) {
	if width < 1 || height < 1 || len(data) < width*height*4 {
		return nil, errors.Wrapf(ErrShortData, "%dx%d from %d bytes", width, height, len(data))
	}
	return &image.NRGBA{
		Pix:    data,
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// Encode writes RGBA 8bit data as PNG to w.
func Encode(w io.Writer, data []byte, width, height int) error {
	img, err := wrap(data, width, height)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// PNG returns the PNG encoding of RGBA 8bit data.
func PNG(data []byte, width, height int) ([]byte, error) {
	var b bytes.Buffer
	if err := Encode(&b, data, width, height); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

type encodeFunc func(io.Writer, image.Image) error

// encoder picks the file format by extension, PNG unless .bmp or .tif(f).
func encoder(name string) encodeFunc {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".bmp":
		return bmp.Encode
	case ".tif", ".tiff":
		return func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
		}
	}
	return png.Encode
}

// Write expects RGBA 8bit data. Missing directories are created.
func Write(name string, data []byte, width, height int) error {
	img, err := wrap(data, width, height)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := encoder(name)(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", name)
	}
	return f.Close()
}
