// SPDX-License-Identifier: GPL-2.0-or-later

package filesystem

import (
	"path"
	"strings"
)

// Normalize turns a logical asset path into its index key: lower case,
// forward slashes, cleaned, relative.
func Normalize(p string) string {
	p = strings.ToLower(strings.ReplaceAll(p, "\\", "/"))
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}

func isSep(c uint8) bool {
	return c == '/' || c == '\\'
}

func Ext(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}

func StripExt(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}

// WithExt returns p with its extension replaced by ext, which includes the dot.
func WithExt(p, ext string) string {
	return StripExt(p) + ext
}
