package render

import (
	"image/color"
	"math"

	"NeroView/cliente/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh é um modelo carregado do disco, com as animações que o arquivo trouxer.
// O cache do renderizador segura uma referência; cada nó e cada template
// seguram outra.
type Mesh struct {
	name  string
	model rl.Model
	anims []rl.ModelAnimation
	box   scene.Box
	refs  int32

	// unload é nil quando não há GPU (testes).
	unload func(*Mesh)
}

func (m *Mesh) Name() string           { return m.name }
func (m *Mesh) BoundingBox() scene.Box { return m.box }
func (m *Mesh) Grab()                  { m.refs++ }

func (m *Mesh) Drop() bool {
	m.refs--
	if m.refs > 0 {
		return false
	}
	if m.unload != nil {
		m.unload(m)
		m.unload = nil
	}
	return true
}

// frameCount é o número de quadros do primeiro clipe (1 para malhas estáticas).
func (m *Mesh) frameCount() int32 {
	if len(m.anims) == 0 || m.anims[0].FrameCount <= 0 {
		return 1
	}
	return m.anims[0].FrameCount
}

// clip procura um clipe pelo nome gravado no arquivo.
func (m *Mesh) clip(name string) (int, bool) {
	for i, a := range m.anims {
		if clipName(a) == name {
			return i, true
		}
	}
	return 0, false
}

func clipName(a rl.ModelAnimation) string {
	n := 0
	for n < len(a.Name) && a.Name[n] != 0 {
		n++
	}
	return string(a.Name[:n])
}

// md2Range é o intervalo clássico de quadros de cada animação MD2 e o fps sugerido.
type md2Range struct {
	begin, end int32
	fps        float32
}

var md2Ranges = [...]md2Range{
	scene.AnimStand:             {0, 39, 9},
	scene.AnimRun:               {40, 45, 10},
	scene.AnimAttack:            {46, 53, 10},
	scene.AnimPainA:             {54, 57, 7},
	scene.AnimPainB:             {58, 61, 7},
	scene.AnimPainC:             {62, 65, 7},
	scene.AnimJump:              {66, 71, 7},
	scene.AnimFlip:              {72, 83, 7},
	scene.AnimSalute:            {84, 94, 7},
	scene.AnimFallback:          {95, 111, 10},
	scene.AnimWave:              {112, 122, 7},
	scene.AnimPoint:             {123, 134, 6},
	scene.AnimCrouchStand:       {135, 153, 10},
	scene.AnimCrouchWalk:        {154, 159, 7},
	scene.AnimCrouchAttack:      {160, 168, 10},
	scene.AnimCrouchPain:        {169, 172, 7},
	scene.AnimCrouchDeath:       {173, 177, 5},
	scene.AnimDeathFallback:     {178, 183, 7},
	scene.AnimDeathFallforward:  {184, 189, 7},
	scene.AnimDeathFallbackSlow: {190, 197, 7},
	scene.AnimBoom:              {198, 198, 5},
}

// meshNode desenha um Mesh com animação por quadros.
type meshNode struct {
	node
	mesh *Mesh

	clip       int
	speed      float32
	loopBegin  int32
	loopEnd    int32
	frame      float32
	shadow     bool
	diffuse    [maxTextureLayers]color.RGBA
	hasDiffuse [maxTextureLayers]bool
}

func newMeshNode(m *Mesh) *meshNode {
	n := &meshNode{mesh: m}
	n.node = newNode(n)
	n.box = m.box
	n.loopEnd = n.EndFrame()
	m.Grab()
	n.release = func() { m.Drop() }
	return n
}

func (n *meshNode) SetAnimationSpeed(fps float32) { n.speed = fps }
func (n *meshNode) StartFrame() int32             { return 0 }
func (n *meshNode) EndFrame() int32               { return n.mesh.frameCount() - 1 }

// SetFrameLoop restringe a animação a [begin, end]. Falha se o intervalo
// estiver fora dos quadros da malha.
func (n *meshNode) SetFrameLoop(begin, end int32) bool {
	last := n.EndFrame()
	if begin < 0 || end > last || begin > end {
		return false
	}
	n.loopBegin, n.loopEnd = begin, end
	if n.frame < float32(begin) || n.frame > float32(end) {
		n.frame = float32(begin)
	}
	return true
}

func (n *meshNode) SetCurrentFrame(frame float32) {
	n.frame = mgl32.Clamp(frame, float32(n.loopBegin), float32(n.loopEnd))
}

// CurrentFrame retorna o quadro atual (fracionário).
func (n *meshNode) CurrentFrame() float32 { return n.frame }

// SetMD2Animation usa o clipe de mesmo nome quando o arquivo tem um; senão
// recorta o intervalo MD2 clássico do primeiro clipe.
func (n *meshNode) SetMD2Animation(anim scene.MD2Animation) bool {
	if anim < 0 || int(anim) >= len(md2Ranges) {
		return false
	}
	if idx, ok := n.mesh.clip(anim.String()); ok {
		n.clip = idx
		n.loopBegin, n.loopEnd = 0, n.mesh.anims[idx].FrameCount-1
		n.frame = 0
		n.speed = md2Ranges[anim].fps
		return true
	}
	rg := md2Ranges[anim]
	n.clip = 0
	if !n.SetFrameLoop(rg.begin, rg.end) {
		return false
	}
	n.frame = float32(rg.begin)
	n.speed = rg.fps
	return true
}

func (n *meshNode) AddShadowVolume() { n.shadow = true }

func (n *meshNode) SetDiffuseColor(slot int, c color.RGBA) {
	if slot < 0 || slot >= maxTextureLayers {
		return
	}
	n.diffuse[slot] = c
	n.hasDiffuse[slot] = true
}

func (n *meshNode) tint() color.RGBA {
	if n.hasDiffuse[0] {
		return n.diffuse[0]
	}
	return rl.White
}

// update avança o quadro respeitando o laço.
func (n *meshNode) update(dt float32) {
	if n.speed == 0 || n.loopBegin == n.loopEnd {
		return
	}
	n.frame += n.speed * dt
	span := float32(n.loopEnd - n.loopBegin + 1)
	if n.frame > float32(n.loopEnd)+1 || n.frame < float32(n.loopBegin) {
		rel := float32(math.Mod(float64(n.frame-float32(n.loopBegin)), float64(span)))
		if rel < 0 {
			rel += span
		}
		n.frame = float32(n.loopBegin) + rel
	}
}

func (n *meshNode) draw(r *Renderer) {
	model := n.mesh.model
	if model.MeshCount == 0 {
		return
	}
	if n.clip < len(n.mesh.anims) {
		frame := int32(n.frame)
		if frame > n.loopEnd {
			frame = n.loopEnd
		}
		rl.UpdateModelAnimation(model, n.mesh.anims[n.clip], frame)
	}

	world := n.AbsoluteTransform()
	model.Transform = toRLMatrix(world)
	r.bindMaterials(model, &n.node, mgl32.Vec2{1, 1})
	r.drawModel(model, &n.node, n.tint())

	if n.shadow {
		r.drawBlobShadow(n.TransformedBoundingBox())
	}
}
