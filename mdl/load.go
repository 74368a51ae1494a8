// SPDX-License-Identifier: GPL-2.0-or-later

package mdl

import (
	"strings"

	"goquell/model"
)

func init() {
	model.Register(Magic, load)
}

// vtx variants in the order they are tried
var vtxSuffixes = []string{".dx90.vtx", ".dx80.vtx", ".sw.vtx", ".vtx"}

func load(name string, data []byte, fs model.Reader) (model.Model, error) {
	base := strings.TrimSuffix(name, ".mdl")
	f := Files{MDL: data}
	// models without geometry parts still carry a skeleton
	if b, err := fs.ReadFile(base + ".vvd"); err == nil {
		f.VVD = b
	}
	for _, s := range vtxSuffixes {
		if b, err := fs.ReadFile(base + s); err == nil {
			f.VTX = b
			break
		}
	}
	return Decode(name, f)
}
