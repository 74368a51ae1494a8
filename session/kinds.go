// SPDX-License-Identifier: GPL-2.0-or-later

package session

import (
	"goquell/filesystem"
	"goquell/mdl"
	"goquell/model"
	"goquell/report"
	"goquell/scene"
	"goquell/texture"
	"goquell/vmt"
	"goquell/vtf"
)

func init() {
	report.Map(filesystem.ErrNotExist, report.Missing)
	report.Map(scene.ErrBrushRef, report.Missing)
	report.Map(vmt.ErrParse, report.Parse)
	report.Map(texture.ErrSizeMismatch, report.SizeMismatch)
	report.Map(texture.ErrUnsupportedFormat, report.Unsupported)
	report.Map(vtf.ErrVersionUnsupported, report.Unsupported)
	report.Map(mdl.ErrVersionUnsupported, report.Unsupported)
	report.Map(model.ErrUnknownFormat, report.Unsupported)
	report.Map(filesystem.ErrUnsupported, report.Unsupported)
	report.Map(vtf.ErrBadMagic, report.Corrupt)
	report.Map(mdl.ErrBadMagic, report.Corrupt)
	report.Map(mdl.ErrTruncatedSection, report.Corrupt)
	report.Map(filesystem.ErrArchiveCorrupt, report.Corrupt)
}
