package render

import (
	"NeroView/cliente/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

const maxTextureLayers = 4

// sceneNode é o que o grafo percorre a cada frame.
type sceneNode interface {
	scene.Node
	base() *node
	update(dt float32)
	draw(r *Renderer)
}

// node guarda o estado comum a todos os nós: transformação, material,
// hierarquia e contagem de referências. O nó nasce com uma referência,
// que pertence ao pai e é liberada em Remove.
type node struct {
	self     sceneNode
	parent   *node
	children []sceneNode

	pos, rot, scale mgl32.Vec3

	id       uint32
	refs     int32
	box      scene.Box
	selector scene.Selector

	textures [maxTextureLayers]scene.Texture
	flags    scene.MaterialFlagKind
	matType  scene.MaterialType

	release func()
}

func newNode(self sceneNode) node {
	return node{
		self:  self,
		scale: mgl32.Vec3{1, 1, 1},
		refs:  1,
		flags: scene.FlagLighting | scene.FlagZBuffer | scene.FlagZWriteEnable | scene.FlagBackFaceCulling,
	}
}

func (n *node) base() *node { return n }

func (n *node) Grab() { n.refs++ }

func (n *node) Drop() bool {
	n.refs--
	if n.refs > 0 {
		return false
	}
	if n.release != nil {
		n.release()
		n.release = nil
	}
	return true
}

// attach pendura o nó em p.
func (n *node) attach(p *node) {
	n.parent = p
	p.children = append(p.children, n.self)
}

// Remove desliga o nó do pai e libera a referência do grafo.
func (n *node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	for idx, c := range p.children {
		if c.base() == n {
			p.children = append(p.children[:idx], p.children[idx+1:]...)
			break
		}
	}
	n.parent = nil
	n.self.Drop()
}

func (n *node) Parent() scene.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.self
}

func (n *node) SetPosition(p mgl32.Vec3) { n.pos = p }
func (n *node) Position() mgl32.Vec3     { return n.pos }
func (n *node) SetRotation(r mgl32.Vec3) { n.rot = r }
func (n *node) Rotation() mgl32.Vec3     { return n.rot }
func (n *node) SetScale(s mgl32.Vec3)    { n.scale = s }
func (n *node) Scale() mgl32.Vec3        { return n.scale }

func (n *node) SetMaterialTexture(layer int, tex scene.Texture) {
	if layer < 0 || layer >= maxTextureLayers {
		log.Warnf("Camada de textura %d fora do limite (%d)", layer, maxTextureLayers)
		return
	}
	n.textures[layer] = tex
}

func (n *node) SetMaterialFlag(flag scene.MaterialFlagKind, on bool) {
	if on {
		n.flags |= flag
	} else {
		n.flags &^= flag
	}
}

func (n *node) flag(f scene.MaterialFlagKind) bool {
	return n.flags&f != 0
}

func (n *node) SetMaterialType(t scene.MaterialType) { n.matType = t }

func (n *node) SetID(id uint32) { n.id = id }
func (n *node) ID() uint32      { return n.id }

func (n *node) BoundingBox() scene.Box { return n.box }

func (n *node) TransformedBoundingBox() scene.Box {
	return transformBox(n.box, n.AbsoluteTransform())
}

func (n *node) relativeTransform() mgl32.Mat4 {
	return localTransform(n.pos, n.rot, n.scale)
}

func (n *node) AbsoluteTransform() mgl32.Mat4 {
	m := n.relativeTransform()
	for p := n.parent; p != nil; p = p.parent {
		m = p.relativeTransform().Mul4(m)
	}
	return m
}

func (n *node) TriangleSelector() scene.Selector     { return n.selector }
func (n *node) SetTriangleSelector(s scene.Selector) { n.selector = s }

// walk visita o nó e os descendentes em profundidade.
func (n *node) walk(fn func(sceneNode)) {
	fn(n.self)
	for _, c := range n.children {
		c.base().walk(fn)
	}
}

// rootNode é a raiz do grafo; não desenha nada.
type rootNode struct {
	node
}

func newRootNode() *rootNode {
	r := &rootNode{}
	r.node = newNode(r)
	return r
}

func (r *rootNode) update(float32) {}
func (r *rootNode) draw(*Renderer) {}
