// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bytes"
	"sort"
)

// KeyValue is one property of an entity in file order.
type KeyValue struct {
	Key, Value string
}

type Entity struct {
	properties map[string]string
	pairs      []KeyValue
	src        []byte
}

// NewEntity parses the quoted "key" "value" pairs of one brace block.
// Keys are case-insensitive; for repeated keys the first one wins, all are
// kept in Pairs.
func NewEntity(p []byte) *Entity {
	e := &Entity{properties: make(map[string]string), src: p}
	var strs []string
	r := p
	for {
		q := bytes.IndexByte(r, '"')
		if q == -1 {
			break
		}
		r = r[q+1:]
		q = bytes.IndexByte(r, '"')
		if q == -1 {
			break
		}
		strs = append(strs, string(r[:q]))
		r = r[q+1:]
	}
	for i := 0; i+1 < len(strs); i += 2 {
		key, value := strs[i], strs[i+1]
		e.pairs = append(e.pairs, KeyValue{key, value})
		k := lower(key)
		if _, ok := e.properties[k]; !ok {
			e.properties[k] = value
		}
	}
	return e
}

func lower(s string) string {
	return string(bytes.ToLower([]byte(s)))
}

func (e *Entity) Property(name string) (string, bool) {
	v, ok := e.properties[lower(name)]
	return v, ok
}

func (e *Entity) Name() (string, bool) {
	v, ok := e.properties["classname"]
	return v, ok
}

// PropertyNames returns the lower case keys, sorted.
func (e *Entity) PropertyNames() []string {
	n := make([]string, 0, len(e.properties))
	for k := range e.properties {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// Pairs returns all key value pairs in file order, duplicates included.
func (e *Entity) Pairs() []KeyValue {
	return e.pairs
}

// Source returns the raw block text.
func (e *Entity) Source() []byte {
	return e.src
}

// ParseEntities splits the entity lump into brace blocks. Braces inside
// quotes are ignored. It returns nil for unbalanced input.
func ParseEntities(data []byte) []*Entity {
	/*
		The data looks like:
		{
		"classname" "worldspawn"
		"skyname" "sky_day01_01"
		}
		{
		"origin" "0 0 64"
		"OnTrigger" "relay,Trigger,,0,-1"
		}
	*/
	es := []*Entity{}
	var depth int
	var quoted bool
	start := -1
	for i, b := range data {
		switch b {
		case '{':
			if quoted {
				break
			}
			if start == -1 {
				start = i
			} else {
				depth++
			}
		case '}':
			if quoted {
				break
			}
			if start == -1 {
				// Bad input
				return nil
			}
			if depth == 0 {
				es = append(es, NewEntity(data[start:i+1]))
				start = -1
			} else {
				depth--
			}
		case '"':
			quoted = !quoted
		}
	}
	if start != -1 {
		return nil
	}
	return es
}
