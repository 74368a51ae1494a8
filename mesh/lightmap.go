// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"fmt"
	"image"
	"sort"

	"github.com/chewxy/math32"

	"goquell/bsp"
	qmath "goquell/math"
)

// block is the style 0 lightmap of one face in luxels.
type block struct {
	face int
	w, h int
	data []byte // ColorRGBExp32 samples
}

// Rect is a face's place in the atlas.
type Rect struct {
	X, Y, W, H int
}

// Lightmap is the atlas of all face lightmaps. Texel (0,0) is white and
// serves faces without lightmap data.
type Lightmap struct {
	Width  int
	Height int
	Pix    []byte // RGBA
	Rects  map[int]Rect
}

func (l *Lightmap) String() string {
	if l == nil {
		return "none"
	}
	return fmt.Sprintf("%dx%d/%d", l.Width, l.Height, len(l.Rects))
}

// Image wraps the atlas pixels.
func (l *Lightmap) Image() *image.NRGBA {
	return &image.NRGBA{Pix: l.Pix, Stride: 4 * l.Width, Rect: image.Rect(0, 0, l.Width, l.Height)}
}

// AmbientUV is the texture coordinate of the white texel.
func (l *Lightmap) AmbientUV() [2]float32 {
	return [2]float32{0.5 / float32(l.Width), 0.5 / float32(l.Height)}
}

// lightBlock returns the lightmap block of face, or nil if it has none or
// the samples lie outside the lighting lump.
func lightBlock(m *bsp.Map, face int) *block {
	f := &m.Faces[face]
	if len(m.Lighting) == 0 || !f.HasLightmap() {
		return nil
	}
	if m.TexInfos[f.TexInfo].Flags&bsp.SurfNoLight != 0 {
		return nil
	}
	n := f.LightmapBytes()
	if n <= 0 || int64(f.LightOfs)+n > int64(len(m.Lighting)) {
		return nil
	}
	w, h := int(f.LightmapSize[0])+1, int(f.LightmapSize[1])+1
	return &block{face: face, w: w, h: h, data: m.Lighting[f.LightOfs : int64(f.LightOfs)+n]}
}

// luxelColor converts one ColorRGBExp32 sample to 8 bit with gamma.
func luxelColor(c []byte, invGamma float32) [3]byte {
	scale := math32.Ldexp(1, int(int8(c[3])))
	var out [3]byte
	for i := 0; i < 3; i++ {
		v := float32(c[i]) * scale / 255
		v = math32.Pow(qmath.Clamp(0, v, 1), invGamma)
		out[i] = byte(qmath.Clamp(0, v*255+0.5, 255))
	}
	return out
}

const atlasPadding = 1

// packLightmaps places all blocks with a shelf packer. Blocks are sorted
// by height, then face index, so the layout only depends on the map.
func packLightmaps(m *bsp.Map, out []built, width int, gamma float32) *Lightmap {
	var blocks []*block
	for i := range out {
		if out[i].light != nil && !out[i].skip && len(out[i].indices) > 0 {
			blocks = append(blocks, out[i].light)
		}
	}
	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].h != blocks[j].h {
			return blocks[i].h > blocks[j].h
		}
		return blocks[i].face < blocks[j].face
	})

	l := &Lightmap{Width: width, Rects: make(map[int]Rect, len(blocks))}
	// the ambient texel occupies the start of the first shelf
	x, y, shelf := 1+atlasPadding, 0, 1
	for _, b := range blocks {
		if b.w > width {
			continue
		}
		if x+b.w > width {
			y += shelf + atlasPadding
			x, shelf = 0, 0
		}
		l.Rects[b.face] = Rect{x, y, b.w, b.h}
		x += b.w + atlasPadding
		if b.h > shelf {
			shelf = b.h
		}
	}
	l.Height = qmath.Max1(y + shelf)
	l.Pix = make([]byte, 4*l.Width*l.Height)
	copy(l.Pix, []byte{255, 255, 255, 255})

	inv := 1 / gamma
	for _, b := range blocks {
		r, ok := l.Rects[b.face]
		if !ok {
			continue
		}
		for ty := 0; ty < b.h; ty++ {
			for tx := 0; tx < b.w; tx++ {
				c := luxelColor(b.data[(ty*b.w+tx)*4:], inv)
				p := l.Pix[4*((r.Y+ty)*l.Width+r.X+tx):]
				p[0], p[1], p[2], p[3] = c[0], c[1], c[2], 255
			}
		}
	}
	return l
}

// apply sets the lightmap coordinates of a built face.
func (l *Lightmap) apply(face int, b *built) {
	r, ok := l.Rects[face]
	for i := range b.verts {
		if !ok {
			b.verts[i].LightmapUV = l.AmbientUV()
			continue
		}
		lx := qmath.Clamp(0, b.luxels[i][0], float32(r.W-1))
		ly := qmath.Clamp(0, b.luxels[i][1], float32(r.H-1))
		b.verts[i].LightmapUV = [2]float32{
			(float32(r.X) + lx + 0.5) / float32(l.Width),
			(float32(r.Y) + ly + 0.5) / float32(l.Height),
		}
	}
}
