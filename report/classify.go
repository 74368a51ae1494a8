// SPDX-License-Identifier: GPL-2.0-or-later

package report

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	kindsMu sync.RWMutex
	kinds   []kindRule
)

type kindRule struct {
	err  error
	kind Kind
}

// Map teaches Classify that errors matching err belong to kind. Rules are
// tried in registration order.
func Map(err error, kind Kind) {
	kindsMu.Lock()
	defer kindsMu.Unlock()
	kinds = append(kinds, kindRule{err, kind})
}

// Classify wraps err as an asset error for path. Errors without a matching
// rule are Decode errors. An *AssetError is returned unchanged.
func Classify(path string, err error) *AssetError {
	if err == nil {
		return nil
	}
	var ae *AssetError
	if errors.As(err, &ae) {
		return ae
	}
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	for _, r := range kinds {
		if errors.Is(err, r.err) {
			return &AssetError{Kind: r.kind, Path: path, Err: err}
		}
	}
	return &AssetError{Kind: Decode, Path: path, Err: err}
}
