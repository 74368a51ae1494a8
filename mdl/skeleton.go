// SPDX-License-Identifier: GPL-2.0-or-later

package mdl

import (
	"github.com/pkg/errors"

	"goquell/math/vec"
)

func (m *Model) readBones(data []byte, h *header) error {
	sec, err := section(data, h.BoneIndex, h.NumBones, boneSize, "bones")
	if err != nil {
		return err
	}
	m.Bones = make([]Bone, h.NumBones)
	for i := range m.Bones {
		var b diskBone
		if err := read(sec[i*boneSize:], &b); err != nil {
			return errors.Wrap(ErrTruncatedSection, err.Error())
		}
		base := int64(h.BoneIndex) + int64(i*boneSize)
		m.Bones[i] = Bone{
			Name:     cstring(data, base+int64(b.NameIndex)),
			Parent:   int(b.Parent),
			Position: vec.Vec3(b.Pos),
			Rotation: b.Quat,
		}
	}
	return checkSkeleton(m.Bones)
}

// checkSkeleton requires parents to be -1 or in range and the parent links
// to form a forest.
func checkSkeleton(bones []Bone) error {
	const (
		white = iota
		grey
		black
	)
	color := make([]uint8, len(bones))
	for i, b := range bones {
		if b.Parent < -1 || b.Parent >= len(bones) {
			return errors.Wrapf(ErrBadSkeleton, "bone %d %q: parent %d out of range", i, b.Name, b.Parent)
		}
	}
	for i := range bones {
		// follow the parent chain, greying the path
		j := i
		for j != -1 && color[j] == white {
			color[j] = grey
			j = bones[j].Parent
		}
		if j != -1 && color[j] == grey {
			return errors.Wrapf(ErrBadSkeleton, "bone %d %q: parent cycle", j, bones[j].Name)
		}
		for j = i; j != -1 && color[j] == grey; j = bones[j].Parent {
			color[j] = black
		}
	}
	return nil
}
