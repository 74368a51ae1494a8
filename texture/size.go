// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import (
	qmath "goquell/math"
)

// MipDim returns the size of a dimension at a mip level, floored at 1.
func MipDim(d, level int) int {
	return qmath.Max1(d >> uint(level))
}

// MipSize returns the byte size of one mip level, or -1 for unknown formats.
func MipSize(f Format, width, height, level int) int {
	info, ok := formats[f]
	if !ok {
		return -1
	}
	w, h := MipDim(width, level), MipDim(height, level)
	if info.block {
		return qmath.CeilDiv(w, 4) * qmath.CeilDiv(h, 4) * info.size
	}
	return w * h * info.size
}

// ChainSize sums MipSize over mips levels.
func ChainSize(f Format, width, height, mips int) int {
	n := 0
	for i := 0; i < mips; i++ {
		s := MipSize(f, width, height, i)
		if s < 0 {
			return -1
		}
		n += s
	}
	return n
}

// MaxMips is the number of levels until both dimensions reach 1.
func MaxMips(width, height int) int {
	n := 1
	for width > 1 || height > 1 {
		width >>= 1
		height >>= 1
		n++
	}
	return n
}
