// SPDX-License-Identifier: GPL-2.0-or-later

package vmt

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

const maxPatchDepth = 8

// Options configure script decoding and patch includes.
type Options struct {
	// Charmap decodes script bytes into UTF-8. nil keeps them as is.
	Charmap *charmap.Charmap
	// Include returns the script of an included material path.
	Include func(path string) ([]byte, error)
}

func (o Options) decode(script []byte) []byte {
	if o.Charmap == nil {
		return script
	}
	out, err := o.Charmap.NewDecoder().Bytes(script)
	if err != nil {
		return script
	}
	return out
}

func (o Options) includer() func(string) (*Document, error) {
	if o.Include == nil {
		return nil
	}
	return func(path string) (*Document, error) {
		b, err := o.Include(path)
		if err != nil {
			return nil, err
		}
		return Parse(o.decode(b))
	}
}

// ResolvePatch applies a patch document onto the material it includes.
// Documents of other shaders are returned unchanged.
func ResolvePatch(doc *Document, include func(path string) (*Document, error)) (*Document, error) {
	return resolvePatch(doc, include, 0)
}

func resolvePatch(doc *Document, include func(string) (*Document, error), depth int) (*Document, error) {
	if !strings.EqualFold(doc.Shader, "patch") {
		return doc, nil
	}
	if depth >= maxPatchDepth {
		return nil, errors.Wrap(ErrParse, "patch include depth exceeded")
	}
	path, ok := doc.Root.Get("include")
	if !ok {
		return nil, errors.Wrap(ErrParse, "patch without include")
	}
	if include == nil {
		return nil, errors.Wrapf(ErrParse, "patch include %q: no loader", path)
	}
	base, err := include(path)
	if err != nil {
		return nil, errors.Wrapf(err, "patch include %q", path)
	}
	base, err = resolvePatch(base, include, depth+1)
	if err != nil {
		return nil, err
	}
	out := &Document{Shader: base.Shader, Root: base.Root.clone()}
	if ins := doc.Root.Sub("insert"); ins != nil {
		for _, n := range ins.Nodes {
			if n.Group != nil {
				if out.Root.Sub(n.Key) == nil {
					out.Root.Nodes = append(out.Root.Nodes, &Node{Key: n.Key, Group: n.Group.clone()})
				}
				continue
			}
			if _, ok := out.Root.Get(n.Key); !ok {
				out.Root.Set(n.Key, n.Value)
			}
		}
	}
	if rep := doc.Root.Sub("replace"); rep != nil {
		for _, n := range rep.Nodes {
			if n.Group == nil {
				out.Root.Set(n.Key, n.Value)
			}
		}
	}
	return out, nil
}
