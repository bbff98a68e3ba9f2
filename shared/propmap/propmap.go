// Package propmap implementa o mapa hierárquico de propriedades que descreve templates.
// Caminhos são pontuados ("Template.Render.AniMesh") e a ordem dos filhos é preservada.
package propmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Prop é um par chave/valor. Em Children a chave é o nome do filho,
// em Flatten é o caminho completo.
type Prop struct {
	Key   string
	Value string
}

type node struct {
	name     string
	value    string
	children []*node
}

func (n *node) child(name string) *node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// PropertyMap é a árvore de propriedades de um template.
type PropertyMap struct {
	root *node
}

// New cria um mapa vazio.
func New() *PropertyMap {
	return &PropertyMap{root: &node{}}
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

func (pm *PropertyMap) find(path string) *node {
	n := pm.root
	for _, part := range splitPath(path) {
		if n = n.child(part); n == nil {
			return nil
		}
	}
	return n
}

// Set grava value em path, criando as seções intermediárias na ordem de chegada.
func (pm *PropertyMap) Set(path, value string) {
	n := pm.root
	for _, part := range splitPath(path) {
		c := n.child(part)
		if c == nil {
			c = &node{name: part}
			n.children = append(n.children, c)
		}
		n = c
	}
	n.value = value
}

// HasSection informa se path existe (como folha ou seção).
func (pm *PropertyMap) HasSection(path string) bool {
	return pm.find(path) != nil
}

// GetString retorna o valor bruto em path.
func (pm *PropertyMap) GetString(path string) (string, bool) {
	n := pm.find(path)
	if n == nil {
		return "", false
	}
	return n.value, true
}

// GetBool interpreta o valor em path como booleano ("true", "1", "false", "0"...).
func (pm *PropertyMap) GetBool(path string) (bool, bool) {
	s, ok := pm.GetString(path)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return false, false
	}
	return b, true
}

// GetFloat32 interpreta o valor em path como float.
func (pm *PropertyMap) GetFloat32(path string) (float32, bool) {
	s, ok := pm.GetString(path)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, false
	}
	return float32(f), true
}

// GetUint32 interpreta o valor em path como inteiro sem sinal.
func (pm *PropertyMap) GetUint32(path string) (uint32, bool) {
	s, ok := pm.GetString(path)
	if !ok {
		return 0, false
	}
	u, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(u), true
}

// GetVec3 interpreta "x y z", "x,y,z" ou "(x, y, z)".
func (pm *PropertyMap) GetVec3(path string) (mgl32.Vec3, bool) {
	s, ok := pm.GetString(path)
	if !ok {
		return mgl32.Vec3{}, false
	}
	f, err := parseFloats(s, 3)
	if err != nil {
		return mgl32.Vec3{}, false
	}
	return mgl32.Vec3{f[0], f[1], f[2]}, true
}

// GetVec2 interpreta "u v", "u,v" ou "(u, v)".
func (pm *PropertyMap) GetVec2(path string) (mgl32.Vec2, bool) {
	s, ok := pm.GetString(path)
	if !ok {
		return mgl32.Vec2{}, false
	}
	f, err := parseFloats(s, 2)
	if err != nil {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{f[0], f[1]}, true
}

// Children lista os filhos imediatos de path, na ordem em que foram definidos.
func (pm *PropertyMap) Children(path string) []Prop {
	n := pm.find(path)
	if n == nil {
		return nil
	}
	out := make([]Prop, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, Prop{Key: c.name, Value: c.value})
	}
	return out
}

// Flatten lista todos os nós em pré-ordem com o caminho completo.
// Reaplicar o resultado com Set reconstrói o mesmo mapa.
func (pm *PropertyMap) Flatten() []Prop {
	var out []Prop
	var walk func(prefix string, n *node)
	walk = func(prefix string, n *node) {
		for _, c := range n.children {
			path := c.name
			if prefix != "" {
				path = prefix + "." + c.name
			}
			out = append(out, Prop{Key: path, Value: c.value})
			walk(path, c)
		}
	}
	walk("", pm.root)
	return out
}

func parseFloats(s string, n int) ([]float32, error) {
	s = strings.Trim(strings.TrimSpace(s), "()[]")
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) != n {
		return nil, fmt.Errorf("esperados %d componentes, recebidos %d em %q", n, len(fields), s)
	}
	out := make([]float32, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}
