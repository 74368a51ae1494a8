// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

// Charmap looks up a single byte character set by name, e.g. "windows-1252".
func Charmap(name string) (*charmap.Charmap, error) {
	want := normalizeCharset(name)
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			if normalizeCharset(cm.String()) == want {
				return cm, nil
			}
		}
	}
	return nil, errors.Errorf("unknown charset %q", name)
}

// Decoder returns the charmap of the configured charset.
func (c *Config) Decoder() *charmap.Charmap {
	cm, err := Charmap(c.Charset)
	if err != nil {
		return charmap.Windows1252
	}
	return cm
}

// DecodeText converts script bytes into UTF-8. Invalid input is returned as is.
func DecodeText(cm *charmap.Charmap, b []byte) []byte {
	if cm == nil {
		return b
	}
	out, err := cm.NewDecoder().Bytes(b)
	if err != nil {
		return b
	}
	return out
}

func normalizeCharset(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
	return s
}
