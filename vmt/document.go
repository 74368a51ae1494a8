// SPDX-License-Identifier: GPL-2.0-or-later

package vmt

import (
	"strings"

	"github.com/pkg/errors"
)

var ErrParse = errors.New("material parse error")

// Node is a key with either a value or a nested group.
type Node struct {
	Key   string
	Value string
	Group *Group
}

// Group is an ordered list of nodes. Key lookups ignore case.
type Group struct {
	Nodes []*Node
}

// Document is a parsed material script.
type Document struct {
	Shader string
	Root   *Group
}

// Get returns the first value stored under key.
func (g *Group) Get(key string) (string, bool) {
	for _, n := range g.Nodes {
		if n.Group == nil && strings.EqualFold(n.Key, key) {
			return n.Value, true
		}
	}
	return "", false
}

// Sub returns the first nested group named key.
func (g *Group) Sub(key string) *Group {
	for _, n := range g.Nodes {
		if n.Group != nil && strings.EqualFold(n.Key, key) {
			return n.Group
		}
	}
	return nil
}

// Set replaces the value of key or appends it.
func (g *Group) Set(key, value string) {
	for _, n := range g.Nodes {
		if n.Group == nil && strings.EqualFold(n.Key, key) {
			n.Value = value
			return
		}
	}
	g.Nodes = append(g.Nodes, &Node{Key: key, Value: value})
}

func (g *Group) clone() *Group {
	c := &Group{Nodes: make([]*Node, len(g.Nodes))}
	for i, n := range g.Nodes {
		cn := *n
		if n.Group != nil {
			cn.Group = n.Group.clone()
		}
		c.Nodes[i] = &cn
	}
	return c
}

// Parse reads `shader { key value ... }`. Nested groups are kept as is.
func Parse(script []byte) (*Document, error) {
	toks, err := tokenize(script)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, errors.Wrap(ErrParse, "empty script")
	}
	if toks[0].typ != tokString && toks[0].typ != tokWord {
		return nil, errors.Wrapf(ErrParse, "line %d: expected shader name", toks[0].line)
	}
	p := &parser{toks: toks, pos: 1}
	if !p.accept(tokOpen) {
		return nil, errors.Wrapf(ErrParse, "line %d: expected {", toks[0].line)
	}
	root, err := p.group()
	if err != nil {
		return nil, err
	}
	// trailing tokens after the closing brace are ignored
	return &Document{Shader: toks[0].text, Root: root}, nil
}

type parser struct {
	toks []tok
	pos  int
}

func (p *parser) accept(typ int) bool {
	if p.pos < len(p.toks) && p.toks[p.pos].typ == typ {
		p.pos++
		return true
	}
	return false
}

func (p *parser) line() int {
	if p.pos < len(p.toks) {
		return p.toks[p.pos].line
	}
	if len(p.toks) > 0 {
		return p.toks[len(p.toks)-1].line
	}
	return 0
}

// group parses nodes up to and including the closing brace.
func (p *parser) group() (*Group, error) {
	g := &Group{}
	for {
		if p.pos >= len(p.toks) {
			return nil, errors.Wrapf(ErrParse, "line %d: missing }", p.line())
		}
		t := p.toks[p.pos]
		switch t.typ {
		case tokClose:
			p.pos++
			return g, nil
		case tokOpen:
			return nil, errors.Wrapf(ErrParse, "line %d: unexpected {", t.line)
		}
		p.pos++
		if p.accept(tokOpen) {
			sub, err := p.group()
			if err != nil {
				return nil, err
			}
			g.Nodes = append(g.Nodes, &Node{Key: t.text, Group: sub})
			continue
		}
		v, err := p.value()
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", t.text)
		}
		g.Nodes = append(g.Nodes, &Node{Key: t.text, Value: v})
	}
}

// value reads a quoted or bare value. Bare bracket vectors such as
// [1 0 0] span several words.
func (p *parser) value() (string, error) {
	if p.pos >= len(p.toks) {
		return "", errors.Wrapf(ErrParse, "line %d: missing value", p.line())
	}
	t := p.toks[p.pos]
	if t.typ != tokString && t.typ != tokWord {
		return "", errors.Wrapf(ErrParse, "line %d: missing value", t.line)
	}
	p.pos++
	if t.typ == tokString || !strings.HasPrefix(t.text, "[") || strings.HasSuffix(t.text, "]") {
		return t.text, nil
	}
	parts := []string{t.text}
	for p.pos < len(p.toks) && p.toks[p.pos].typ == tokWord {
		w := p.toks[p.pos].text
		p.pos++
		parts = append(parts, w)
		if strings.HasSuffix(w, "]") {
			return strings.Join(parts, " "), nil
		}
	}
	return "", errors.Wrapf(ErrParse, "line %d: unterminated vector", t.line)
}
