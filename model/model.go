// SPDX-License-Identifier: GPL-2.0-or-later

// Package model dispatches model files to the decoder registered for their
// magic number.
package model

import (
	"goquell/math/vec"
)

type Model interface {
	Name() string
	Mins() vec.Vec3
	Maxs() vec.Vec3
}
