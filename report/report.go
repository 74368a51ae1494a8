// SPDX-License-Identifier: GPL-2.0-or-later

// Package report separates load-fatal errors from asset-scoped ones and
// collects the latter for display next to the loaded scene.
package report

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// FatalLoadError aborts a map load.
type FatalLoadError struct {
	Err error
}

func (e *FatalLoadError) Error() string {
	return "fatal: " + e.Err.Error()
}

func (e *FatalLoadError) Unwrap() error {
	return e.Err
}

func (e *FatalLoadError) Cause() error {
	return e.Err
}

// Fatal marks err as load-fatal. Already fatal errors are returned unchanged.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	var f *FatalLoadError
	if errors.As(err, &f) {
		return err
	}
	return &FatalLoadError{Err: err}
}

func IsFatal(err error) bool {
	var f *FatalLoadError
	return errors.As(err, &f)
}

type Kind int

const (
	Missing Kind = iota
	Parse
	Decode
	SizeMismatch
	Corrupt
	Unsupported
)

func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Parse:
		return "parse"
	case Decode:
		return "decode"
	case SizeMismatch:
		return "size mismatch"
	case Corrupt:
		return "corrupt"
	case Unsupported:
		return "unsupported"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// AssetError is scoped to one asset. The pipeline substitutes a placeholder
// and continues.
type AssetError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *AssetError) Unwrap() error {
	return e.Err
}

// Degraded records a non-essential lump that was dropped.
type Degraded struct {
	Lump   string
	Reason string
}

// Report is safe for concurrent use.
type Report struct {
	mu       sync.Mutex
	errs     map[key]*AssetError
	degraded []Degraded
}

type key struct {
	kind Kind
	path string
}

func New() *Report {
	return &Report{errs: make(map[key]*AssetError)}
}

// Add records e once per kind and path. It reports whether e was new.
func (r *Report) Add(e *AssetError) bool {
	if e == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{e.Kind, e.Path}
	if _, ok := r.errs[k]; ok {
		return false
	}
	r.errs[k] = e
	return true
}

func (r *Report) Degrade(lump, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.degraded = append(r.degraded, Degraded{Lump: lump, Reason: reason})
}

// Errors returns the asset errors ordered by path, then kind.
func (r *Report) Errors() []*AssetError {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*AssetError, 0, len(r.errs))
	for _, e := range r.errs {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// ErrorsOfKind filters Errors by kind.
func (r *Report) ErrorsOfKind(k Kind) []*AssetError {
	var out []*AssetError
	for _, e := range r.Errors() {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

func (r *Report) Degraded() []Degraded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Degraded(nil), r.degraded...)
}

func (r *Report) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs)
}

// Log writes the report as warnings.
func (r *Report) Log(l *slog.Logger) {
	for _, d := range r.Degraded() {
		l.Warn("lump dropped", "lump", d.Lump, "reason", d.Reason)
	}
	for _, e := range r.Errors() {
		l.Warn("asset replaced", "path", e.Path, "kind", e.Kind.String(), "err", e.Err)
	}
}
