// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"

	"goquell/math/vec"
)

// Visibility holds the run length encoded potentially visible sets per
// cluster.
type Visibility struct {
	NumClusters int
	pvs         []int32
	data        []byte
}

func decodeVisibility(m *Map, f []byte, l Lump) error {
	b := slice(f, l)
	if len(b) == 0 {
		return nil
	}
	if len(b) < 4 {
		return errors.Wrap(ErrTruncatedLump, "cluster count")
	}
	n := int(int32(binary.LittleEndian.Uint32(b)))
	if n < 0 || 4+int64(n)*8 > int64(len(b)) {
		return errors.Wrapf(ErrTruncatedLump, "%d clusters", n)
	}
	v := &Visibility{NumClusters: n, pvs: make([]int32, n), data: b}
	for i := 0; i < n; i++ {
		off := int32(binary.LittleEndian.Uint32(b[4+i*8:]))
		if off < 0 || int(off) > len(b) {
			return errors.Wrapf(ErrBadIndex, "cluster %d pvs offset %d", i, off)
		}
		v.pvs[i] = off
	}
	m.Visibility = v
	return nil
}

// RowBytes is the size of one decompressed cluster bit set.
func (v *Visibility) RowBytes() int {
	return (v.NumClusters + 7) / 8
}

// DecompressVis expands a run length encoded cluster set into row bytes.
// Empty input marks everything visible.
func DecompressVis(in []byte, row int) []byte {
	out := make([]byte, row)
	if len(in) == 0 {
		// no vis info, so make all visible
		for i := range out {
			out[i] = 0xff
		}
		return out
	}

	// 'in' is compressed and looks like
	// 70550311
	// and gets uncompressed to
	// 700000500011	(7 5x0 5 3x0 1 1)
	j := 0
	for i := 0; i < len(in) && j < row; i++ {
		if in[i] != 0 {
			out[j] = in[i]
			j++
			continue
		}
		i++
		if i >= len(in) {
			break
		}
		// zeros are already there
		j += int(in[i])
	}
	return out
}

// ClusterPVS returns the decompressed visible set of a cluster. Without
// visibility data or for cluster -1 every cluster is visible.
func (m *Map) ClusterPVS(cluster int) []byte {
	v := m.Visibility
	if v == nil || cluster < 0 || cluster >= v.NumClusters {
		n := 1
		if v != nil {
			n = v.RowBytes()
		}
		return bytes.Repeat([]byte{0xff}, n)
	}
	return DecompressVis(v.data[v.pvs[cluster]:], v.RowBytes())
}

// ClusterVisible reports whether to is in the visible set of from.
func (m *Map) ClusterVisible(from, to int) bool {
	if m.Visibility == nil || from < 0 || to < 0 || to >= m.Visibility.NumClusters {
		return true
	}
	pvs := m.ClusterPVS(from)
	return pvs[to>>3]&(1<<uint(to&7)) != 0
}

// PointInLeaf walks the world tree and returns the leaf containing p, or -1
// without tree data.
func (m *Map) PointInLeaf(p vec.Vec3) int {
	if len(m.Nodes) == 0 || len(m.Models) == 0 {
		return -1
	}
	node := m.Models[0].HeadNode
	// bounded by the node count against malformed cycles
	for steps := 0; steps <= len(m.Nodes); steps++ {
		if node < 0 {
			return int(-1 - node)
		}
		n := &m.Nodes[node]
		plane := &m.Planes[n.PlaneNum]
		d := vec.Dot(p, plane.Normal) - plane.Dist
		if d >= 0 {
			node = n.Children[0]
		} else {
			node = n.Children[1]
		}
	}
	return -1
}

// ClusterAt returns the visibility cluster of p, or -1.
func (m *Map) ClusterAt(p vec.Vec3) int {
	l := m.PointInLeaf(p)
	if l < 0 {
		return -1
	}
	return int(m.Leafs[l].Cluster)
}
