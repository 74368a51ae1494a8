// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import "strconv"

// Format uses the VTF image format numbering.
type Format int32

const (
	FormatNone            Format = -1
	FormatRGBA8888        Format = 0
	FormatABGR8888        Format = 1
	FormatRGB888          Format = 2
	FormatBGR888          Format = 3
	FormatRGB565          Format = 4
	FormatI8              Format = 5
	FormatIA88            Format = 6
	FormatP8              Format = 7
	FormatA8              Format = 8
	FormatRGB888Blue      Format = 9
	FormatBGR888Blue      Format = 10
	FormatARGB8888        Format = 11
	FormatBGRA8888        Format = 12
	FormatDXT1            Format = 13
	FormatDXT3            Format = 14
	FormatDXT5            Format = 15
	FormatBGRX8888        Format = 16
	FormatBGR565          Format = 17
	FormatBGRX5551        Format = 18
	FormatBGRA4444        Format = 19
	FormatDXT1OneBitAlpha Format = 20
	FormatBGRA5551        Format = 21
	FormatUV88            Format = 22
	FormatUVWQ8888        Format = 23
	FormatRGBA16161616F   Format = 24
	FormatRGBA16161616    Format = 25
	FormatUVLX8888        Format = 26
)

type formatInfo struct {
	name string
	// bytes per pixel, or per 4x4 block for block formats
	size  int
	block bool
}

var formats = map[Format]formatInfo{
	FormatRGBA8888:        {"RGBA8888", 4, false},
	FormatABGR8888:        {"ABGR8888", 4, false},
	FormatRGB888:          {"RGB888", 3, false},
	FormatBGR888:          {"BGR888", 3, false},
	FormatRGB565:          {"RGB565", 2, false},
	FormatI8:              {"I8", 1, false},
	FormatIA88:            {"IA88", 2, false},
	FormatP8:              {"P8", 1, false},
	FormatA8:              {"A8", 1, false},
	FormatRGB888Blue:      {"RGB888_BLUESCREEN", 3, false},
	FormatBGR888Blue:      {"BGR888_BLUESCREEN", 3, false},
	FormatARGB8888:        {"ARGB8888", 4, false},
	FormatBGRA8888:        {"BGRA8888", 4, false},
	FormatDXT1:            {"DXT1", 8, true},
	FormatDXT3:            {"DXT3", 16, true},
	FormatDXT5:            {"DXT5", 16, true},
	FormatBGRX8888:        {"BGRX8888", 4, false},
	FormatBGR565:          {"BGR565", 2, false},
	FormatBGRX5551:        {"BGRX5551", 2, false},
	FormatBGRA4444:        {"BGRA4444", 2, false},
	FormatDXT1OneBitAlpha: {"DXT1_ONEBITALPHA", 8, true},
	FormatBGRA5551:        {"BGRA5551", 2, false},
	FormatUV88:            {"UV88", 2, false},
	FormatUVWQ8888:        {"UVWQ8888", 4, false},
	FormatRGBA16161616F:   {"RGBA16161616F", 8, false},
	FormatRGBA16161616:    {"RGBA16161616", 8, false},
	FormatUVLX8888:        {"UVLX8888", 4, false},
}

func (f Format) String() string {
	if i, ok := formats[f]; ok {
		return i.name
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// Known reports whether the size of f is known.
func (f Format) Known() bool {
	_, ok := formats[f]
	return ok
}

// Block reports whether f stores 4x4 pixel blocks.
func (f Format) Block() bool {
	return formats[f].block
}
