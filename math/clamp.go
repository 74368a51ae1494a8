// SPDX-License-Identifier: GPL-2.0-or-later

package math

import "golang.org/x/exp/constraints"

type Number interface {
	constraints.Integer | constraints.Float
}

func Clamp[K Number](min, val, max K) K {
	if min > val {
		return min
	} else if max < val {
		return max
	}
	return val
}

// CeilDiv returns ceil(a/b) for positive b.
func CeilDiv[K constraints.Integer](a, b K) K {
	return (a + b - 1) / b
}

// Max1 floors a dimension at one.
func Max1[K constraints.Integer](v K) K {
	if v < 1 {
		return 1
	}
	return v
}
