// Package sim guarda o estado compartilhado das entidades da simulação.
// Espaço de coordenadas: mão direita, Z para cima, rotações em graus.
package sim

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// ID identifica uma entidade da simulação.
type ID uint32

// Kind é a máscara de tipo da entidade (obstáculo, agente...).
// Vai nos bits baixos do id do nó de cena, por isso deve ser pequena.
type Kind uint32

// DirtyBits marca os campos alterados desde a última sincronização.
type DirtyBits uint32

const (
	DirtyPosition DirtyBits = 1 << iota
	DirtyRotation
	DirtyScale
	DirtyLabel
	DirtyColor

	DirtyNone DirtyBits = 0
	DirtyAll            = DirtyPosition | DirtyRotation | DirtyScale | DirtyLabel | DirtyColor
)

// EntityData é o estado compartilhado entre simulação e renderização.
// Os setters marcam o bit correspondente. Só a sincronização de cena limpa os bits.
type EntityData struct {
	id       ID
	kind     Kind
	template string

	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3
	label    string
	color    color.RGBA

	dirty DirtyBits
}

// NewEntityData cria o estado com escala unitária, cor branca e todos os bits sujos,
// para que o primeiro tick empurre tudo para o nó.
func NewEntityData(id ID, kind Kind, template string, pos, rot mgl32.Vec3) *EntityData {
	return &EntityData{
		id:       id,
		kind:     kind,
		template: template,
		position: pos,
		rotation: rot,
		scale:    mgl32.Vec3{1, 1, 1},
		color:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
		dirty:    DirtyAll,
	}
}

func (e *EntityData) ID() ID { return e.id }
func (e *EntityData) Kind() Kind { return e.kind }
func (e *EntityData) Template() string { return e.template }
func (e *EntityData) Position() mgl32.Vec3 { return e.position }
func (e *EntityData) Rotation() mgl32.Vec3 { return e.rotation }
func (e *EntityData) Scale() mgl32.Vec3 { return e.scale }
func (e *EntityData) Label() string { return e.label }
func (e *EntityData) Color() color.RGBA { return e.color }

func (e *EntityData) SetPosition(p mgl32.Vec3) {
	e.position = p
	e.dirty |= DirtyPosition
}

func (e *EntityData) SetRotation(r mgl32.Vec3) {
	e.rotation = r
	e.dirty |= DirtyRotation
}

func (e *EntityData) SetScale(s mgl32.Vec3) {
	e.scale = s
	e.dirty |= DirtyScale
}

func (e *EntityData) SetLabel(l string) {
	e.label = l
	e.dirty |= DirtyLabel
}

func (e *EntityData) SetColor(c color.RGBA) {
	e.color = c
	e.dirty |= DirtyColor
}

// IsDirty informa se algum dos bits pedidos está marcado.
func (e *EntityData) IsDirty(bits DirtyBits) bool {
	return e.dirty&bits != 0
}

// Dirty retorna a máscara atual.
func (e *EntityData) Dirty() DirtyBits {
	return e.dirty
}

// MarkDirty força bits sem alterar valores.
func (e *EntityData) MarkDirty(bits DirtyBits) {
	e.dirty |= bits
}

// ClearDirty limpa todos os bits.
func (e *EntityData) ClearDirty() {
	e.dirty = DirtyNone
}
