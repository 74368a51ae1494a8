// SPDX-License-Identifier: GPL-2.0-or-later

package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	qmath "goquell/math"
	"goquell/math/vec"
)

// zUpToYUp is vec.ZUpToYUp as a matrix.
var zUpToYUp = mgl32.Mat4{
	1, 0, 0, 0,
	0, 0, -1, 0,
	0, 1, 0, 0,
	0, 0, 0, 1,
}

// Transform builds the map space matrix T * Rz(yaw) * Ry(pitch) * Rx(roll) * S
// from an origin, pitch/yaw/roll angles in degrees and a uniform scale.
func Transform(origin, angles vec.Vec3, scale float32) mgl32.Mat4 {
	rad := func(deg float32) float32 {
		return qmath.Radians(qmath.AngleMod32(deg))
	}
	m := mgl32.Translate3D(origin[0], origin[1], origin[2])
	m = m.Mul4(mgl32.HomogRotate3DZ(rad(angles[1])))
	m = m.Mul4(mgl32.HomogRotate3DY(rad(angles[0])))
	m = m.Mul4(mgl32.HomogRotate3DX(rad(angles[2])))
	return m.Mul4(mgl32.Scale3D(scale, scale, scale))
}

// Axes is the conversion from map units into output space.
func Axes(scale float32, yUp bool) mgl32.Mat4 {
	a := mgl32.Scale3D(scale, scale, scale)
	if yUp {
		a = zUpToYUp.Mul4(a)
	}
	return a
}

// Convert rewrites a map space transform for geometry that was itself
// converted by axes.
func Convert(axes, m mgl32.Mat4) mgl32.Mat4 {
	return axes.Mul4(m).Mul4(axes.Inv())
}

func convertPoint(p vec.Vec3, scale float32, yUp bool) vec.Vec3 {
	p = p.Scale(scale)
	if yUp {
		p = vec.ZUpToYUp(p)
	}
	return p
}

// Apply transforms a point.
func Apply(m mgl32.Mat4, p vec.Vec3) vec.Vec3 {
	r := m.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
	return vec.Vec3{r[0], r[1], r[2]}
}
