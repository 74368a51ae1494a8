// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"github.com/chewxy/math32"

	"goquell/bsp"
	"goquell/math/vec"
)

func faceNormal(m *bsp.Map, f *bsp.Face) vec.Vec3 {
	n := m.Planes[f.PlaneNum].Normal
	if f.Side != 0 {
		n = n.Scale(-1)
	}
	return n
}

func texCoord(ti *bsp.TexInfo, p vec.Vec3, w, h float32) [2]float32 {
	s, t := ti.TextureVecs[0], ti.TextureVecs[1]
	return [2]float32{
		(s[0]*p[0] + s[1]*p[1] + s[2]*p[2] + s[3]) / w,
		(t[0]*p[0] + t[1]*p[1] + t[2]*p[2] + t[3]) / h,
	}
}

// luxel returns the lightmap position of p relative to the face's lightmap
// origin, in luxels.
func luxel(ti *bsp.TexInfo, f *bsp.Face, p vec.Vec3) [2]float32 {
	s, t := ti.LightmapVecs[0], ti.LightmapVecs[1]
	return [2]float32{
		s[0]*p[0] + s[1]*p[1] + s[2]*p[2] + s[3] - float32(f.LightmapMins[0]),
		t[0]*p[0] + t[1]*p[1] + t[2]*p[2] + t[3] - float32(f.LightmapMins[1]),
	}
}

func (b *built) vertex(m *bsp.Map, f *bsp.Face, flat, pos, normal vec.Vec3) {
	ti := &m.TexInfos[f.TexInfo]
	w, h := m.TexSize(int(f.TexInfo))
	b.verts = append(b.verts, Vertex{
		Position: pos,
		Normal:   normal,
		UV:       texCoord(ti, flat, w, h),
	})
	b.luxels = append(b.luxels, luxel(ti, f, flat))
}

// polygon fans the face from its first vertex.
func (b *built) polygon(m *bsp.Map, face int) {
	f := &m.Faces[face]
	pts := m.FaceVertices(face, nil)
	if len(pts) < 3 {
		return
	}
	n := faceNormal(m, f)
	for _, p := range pts {
		b.vertex(m, f, p, p, n)
	}
	for i := 2; i < len(pts); i++ {
		b.indices = append(b.indices, 0, uint32(i-1), uint32(i))
	}
}

// displacement returns the displacement info of f if its data is usable.
func displacement(m *bsp.Map, f *bsp.Face) (*bsp.DispInfo, bool) {
	if f.DispInfo < 0 || int(f.DispInfo) >= len(m.DispInfos) || f.NumEdges != 4 {
		return nil, false
	}
	d := &m.DispInfos[f.DispInfo]
	n := d.VertsPerSide()
	if int(d.DispVertStart) < 0 || int(d.DispVertStart)+n*n > len(m.DispVerts) {
		return nil, false
	}
	return d, true
}

// displacement builds the (2^power+1)^2 grid of a displacement face.
func (b *built) displacement(m *bsp.Map, face int, d *bsp.DispInfo) {
	f := &m.Faces[face]
	corners := m.FaceVertices(face, nil)
	// rotate so that the corner nearest the start position comes first
	start := 0
	best := math32.Inf(1)
	for i, c := range corners {
		if l := vec.Sub(c, d.StartPosition).Length(); l < best {
			best, start = l, i
		}
	}
	var c [4]vec.Vec3
	for i := range c {
		c[i] = corners[(start+i)%4]
	}

	n := d.VertsPerSide()
	verts := m.DispVerts[d.DispVertStart : int(d.DispVertStart)+n*n]
	pos := make([]vec.Vec3, n*n)
	flat := make([]vec.Vec3, n*n)
	for row := 0; row < n; row++ {
		t := float32(row) / float32(n-1)
		left := vec.Lerp(c[0], c[1], t)
		right := vec.Lerp(c[3], c[2], t)
		for col := 0; col < n; col++ {
			s := float32(col) / float32(n-1)
			i := row*n + col
			flat[i] = vec.Lerp(left, right, s)
			pos[i] = vec.Add(flat[i], verts[i].Vec.Scale(verts[i].Dist))
		}
	}

	var idx []uint32
	for row := 0; row < n-1; row++ {
		for col := 0; col < n-1; col++ {
			a := uint32(row*n + col)
			bb := a + 1
			cc := a + uint32(n)
			dd := cc + 1
			// alternate the diagonal in a checker pattern
			if (row+col)%2 == 0 {
				idx = append(idx, a, cc, dd, a, dd, bb)
			} else {
				idx = append(idx, a, cc, bb, bb, cc, dd)
			}
		}
	}

	normals := make([]vec.Vec3, n*n)
	plane := faceNormal(m, f)
	for k := 0; k < len(idx); k += 3 {
		p0, p1, p2 := pos[idx[k]], pos[idx[k+1]], pos[idx[k+2]]
		tn := vec.Cross(vec.Sub(p1, p0), vec.Sub(p2, p0))
		// keep the grid facing the same way as the base face
		if vec.Dot(tn, plane) < 0 {
			tn = tn.Scale(-1)
		}
		for _, v := range idx[k : k+3] {
			normals[v] = vec.Add(normals[v], tn)
		}
	}
	for i := range pos {
		nn := normals[i]
		if nn.Length() == 0 {
			nn = plane
		}
		b.vertex(m, f, flat[i], pos[i], nn.Normalize())
	}
	// emit triangles with the winding of the base face
	first := vec.Cross(vec.Sub(pos[idx[1]], pos[idx[0]]), vec.Sub(pos[idx[2]], pos[idx[0]]))
	if vec.Dot(first, plane) < 0 {
		for k := 0; k < len(idx); k += 3 {
			idx[k+1], idx[k+2] = idx[k+2], idx[k+1]
		}
	}
	b.indices = idx
}
