package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Tudo nesta interface está no espaço do renderizador (Y para cima).
// Instance faz a conversão a partir do espaço da simulação.

// RefCounted é a contagem de referências dos objetos do renderizador.
// Drop retorna true quando a última referência foi liberada.
type RefCounted interface {
	Grab()
	Drop() bool
}

// Texture é uma textura carregada.
type Texture interface {
	Name() string
}

// Mesh é uma malha animada carregada, compartilhada entre nós.
type Mesh interface {
	RefCounted
	Name() string
	BoundingBox() Box
}

// Hit é o resultado de um teste de raio contra um seletor.
type Hit struct {
	Distance float32
	Point    mgl32.Vec3
	NodeID   uint32
}

// Selector responde consultas geométricas contra os triângulos de um nó.
type Selector interface {
	RayHit(origin, dir mgl32.Vec3) (Hit, bool)
}

// MetaSelector é a união de vários seletores.
type MetaSelector interface {
	Selector
	AddSelector(s Selector)
}

// Node é um nó do grafo de cena.
type Node interface {
	RefCounted
	Remove()
	Parent() Node

	SetPosition(p mgl32.Vec3)
	Position() mgl32.Vec3
	SetRotation(r mgl32.Vec3)
	Rotation() mgl32.Vec3
	SetScale(s mgl32.Vec3)
	Scale() mgl32.Vec3

	SetMaterialTexture(layer int, tex Texture)
	SetMaterialFlag(flag MaterialFlagKind, on bool)
	SetMaterialType(t MaterialType)

	SetID(id uint32)
	ID() uint32

	BoundingBox() Box
	TransformedBoundingBox() Box
	AbsoluteTransform() mgl32.Mat4

	TriangleSelector() Selector
	SetTriangleSelector(s Selector)
}

// AnimatedNode é um nó de malha animada.
type AnimatedNode interface {
	Node
	SetAnimationSpeed(fps float32)
	StartFrame() int32
	EndFrame() int32
	SetFrameLoop(begin, end int32) bool
	SetCurrentFrame(frame float32)
	SetMD2Animation(anim MD2Animation) bool
	AddShadowVolume()
	SetDiffuseColor(slot int, c color.RGBA)
}

// TerrainNode é um nó de terreno gerado a partir de heightmap.
type TerrainNode interface {
	Node
	ScaleTexture(u, v float32)
}

// TextNode é um rótulo flutuante preso a um nó.
type TextNode interface {
	SetText(text string)
	Remove()
}

// Renderer cria nós e seletores.
type Renderer interface {
	Root() Node
	AddAnimatedMeshNode(mesh Mesh) (AnimatedNode, error)
	AddTerrainNode(heightmap string) (TerrainNode, error)
	AddParticleSystemNode(descriptor string) (Node, error)
	AddTextNode(text string, c color.RGBA, parent Node, offset mgl32.Vec3) TextNode
	CreateTriangleSelector(n AnimatedNode) Selector
	CreateTerrainTriangleSelector(n TerrainNode) Selector
	CreateMetaSelector() MetaSelector
}

// ShaderLoader carrega um par de shaders e devolve o tipo de material registrado.
type ShaderLoader interface {
	LoadShader(vertPath, fragPath string) (MaterialType, error)
}

// AssetLoader carrega os recursos referenciados pelos templates.
type AssetLoader interface {
	ShaderLoader
	LoadAnimatedMesh(path string) (Mesh, error)
	LoadTexture(path string) (Texture, error)
}

// Box é uma caixa alinhada aos eixos.
type Box struct {
	Min, Max mgl32.Vec3
}

// Corners retorna os 8 vértices. Bit 2 do índice = X máximo,
// bit 0 = Y máximo, bit 1 = Z máximo.
func (b Box) Corners() [8]mgl32.Vec3 {
	var c [8]mgl32.Vec3
	for i := range c {
		p := b.Min
		if i&4 != 0 {
			p[0] = b.Max[0]
		}
		if i&1 != 0 {
			p[1] = b.Max[1]
		}
		if i&2 != 0 {
			p[2] = b.Max[2]
		}
		c[i] = p
	}
	return c
}

// Extent retorna as dimensões da caixa.
func (b Box) Extent() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// IsZero informa se a caixa é a caixa vazia padrão.
func (b Box) IsZero() bool {
	return b == Box{}
}
