// SPDX-License-Identifier: GPL-2.0-or-later

// Package vmt parses material scripts and resolves them into typed
// materials.
package vmt

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Flag uint32

const (
	Translucent Flag = 1 << iota
	AlphaTest
	Additive
	NoDraw
	Sky
	TwoSided
	SelfIllum
	Unlit
	Water
	VertexColor
	NoFog
)

var flagNames = []struct {
	f    Flag
	name string
}{
	{Translucent, "translucent"},
	{AlphaTest, "alphatest"},
	{Additive, "additive"},
	{NoDraw, "nodraw"},
	{Sky, "sky"},
	{TwoSided, "twosided"},
	{SelfIllum, "selfillum"},
	{Unlit, "unlit"},
	{Water, "water"},
	{VertexColor, "vertexcolor"},
	{NoFog, "nofog"},
}

func (f Flag) String() string {
	var s []string
	for _, n := range flagNames {
		if f&n.f != 0 {
			s = append(s, n.name)
		}
	}
	return strings.Join(s, "|")
}

// keys whose numeric value switches a flag on
var flagKeys = map[string]Flag{
	"$translucent":        Translucent,
	"$alphatest":          AlphaTest,
	"$additive":           Additive,
	"$nocull":             TwoSided,
	"$selfillum":          SelfIllum,
	"$vertexcolor":        VertexColor,
	"$nofog":              NoFog,
	"$nodraw":             NoDraw,
	"%compilenodraw":      NoDraw,
	"%compilesky":         Sky,
	"%compile2dsky":       Sky,
	"%compilewater":       Water,
	"%compiletranslucent": Translucent,
}

type Material struct {
	Name         string
	Shader       string
	BaseTexture  string
	BaseTexture2 string
	Detail       string
	DetailScale  float32
	BumpMap      string
	EnvMap       string
	EnvMapMask   string
	SurfaceProp  string
	Color        [3]float32
	Alpha        float32
	Flags        Flag
	// Params holds every top level key, lowercased.
	Params map[string]string
	// Default is set on the identity material used after a failure.
	Default bool
}

// Default returns the identity material for name.
func Default(name string) *Material {
	return &Material{
		Name:        name,
		Shader:      "LightmappedGeneric",
		BaseTexture: name,
		DetailScale: 4,
		Color:       [3]float32{1, 1, 1},
		Alpha:       1,
		Params:      map[string]string{},
		Default:     true,
	}
}

// Resolve parses a material script that does not use patch.
func Resolve(name string, script []byte) (*Material, error) {
	return ResolveWith(name, script, Options{})
}

// ResolveWith parses script, applies patches and converts the result.
func ResolveWith(name string, script []byte, opts Options) (*Material, error) {
	doc, err := Parse(opts.decode(script))
	if err != nil {
		return nil, err
	}
	doc, err = ResolvePatch(doc, opts.includer())
	if err != nil {
		return nil, err
	}
	return FromDocument(name, doc)
}

// FromDocument types the top level keys of doc. $basetexture is required.
func FromDocument(name string, doc *Document) (*Material, error) {
	m := Default(name)
	m.Default = false
	m.Shader = doc.Shader
	m.BaseTexture = ""

	shader := strings.ToLower(doc.Shader)
	switch {
	case shader == "unlitgeneric":
		m.Flags |= Unlit
	case shader == "water":
		m.Flags |= Water
	case strings.HasPrefix(shader, "sky"):
		m.Flags |= Sky
	}

	for _, n := range doc.Root.Nodes {
		if n.Group != nil {
			continue
		}
		k := strings.ToLower(n.Key)
		if _, ok := m.Params[k]; ok {
			continue
		}
		m.Params[k] = n.Value
		if f, ok := flagKeys[k]; ok {
			if on(n.Value) {
				m.Flags |= f
			}
			continue
		}
		switch k {
		case "$basetexture":
			m.BaseTexture = texturePath(n.Value)
		case "$basetexture2":
			m.BaseTexture2 = texturePath(n.Value)
		case "$detail":
			m.Detail = texturePath(n.Value)
		case "$detailscale":
			if v, ok := number(n.Value); ok {
				m.DetailScale = v
			}
		case "$bumpmap", "$normalmap":
			if m.BumpMap == "" {
				m.BumpMap = texturePath(n.Value)
			}
		case "$envmap":
			m.EnvMap = n.Value
		case "$envmapmask":
			m.EnvMapMask = texturePath(n.Value)
		case "$surfaceprop":
			m.SurfaceProp = n.Value
		case "$color":
			if c, ok := color(n.Value); ok {
				m.Color = c
			}
		case "$alpha":
			if v, ok := number(n.Value); ok {
				m.Alpha = v
			}
		}
	}
	if m.BaseTexture == "" {
		return nil, errors.Wrapf(ErrParse, "%s: no $basetexture", name)
	}
	return m, nil
}

func texturePath(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\\", "/")
	return strings.ToLower(s)
}

func number(s string) (float32, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, false
	}
	return float32(v), true
}

func on(s string) bool {
	v, ok := number(s)
	return ok && v != 0
}

// color accepts "[r g b]" in 0-1 and "{r g b}" in 0-255.
func color(s string) ([3]float32, bool) {
	var c [3]float32
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return c, false
	}
	scale := float32(1)
	switch {
	case s[0] == '[' && s[len(s)-1] == ']':
	case s[0] == '{' && s[len(s)-1] == '}':
		scale = 255
	default:
		return c, false
	}
	f := strings.Fields(s[1 : len(s)-1])
	if len(f) != 3 {
		return c, false
	}
	for i := range c {
		v, ok := number(f[i])
		if !ok {
			return c, false
		}
		c[i] = v / scale
	}
	return c, true
}
