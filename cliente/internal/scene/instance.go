package scene

import (
	"fmt"
	"image/color"
	"math/rand"

	"NeroView/shared/sim"
	"NeroView/shared/util"

	"github.com/go-gl/mathgl/mgl32"
)

// NodeKind é a variante do nó de cena ativo de uma instância.
type NodeKind int

const (
	KindNone NodeKind = iota
	KindMesh
	KindTerrain
	KindParticle
)

func (k NodeKind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindTerrain:
		return "terrain"
	case KindParticle:
		return "particle"
	}
	return "none"
}

var (
	labelOffset = mgl32.Vec3{0, 0, 10}
	labelColor  = color.RGBA{R: 128, G: 0, B: 0, A: 255}
)

// Frame agrupa os colaboradores usados em um tick.
type Frame struct {
	Lines   *LineSet
	Spawner Spawner
	Cameras CameraProvider
}

// Instance é a representação visual de uma entidade. Guarda só o ID do dono;
// os dados da entidade chegam a cada tick.
type Instance struct {
	owner sim.ID
	tmpl  *VisualTemplate

	r    Renderer
	kind NodeKind
	node Node // payload da variante; nil quando kind == KindNone
	text TextNode

	startFrame int32
	endFrame   int32

	trail  *FootprintTrail
	camera Camera
	follow cameraFollow
}

// NewInstance prepara a instância; o nó só é criado em Realize.
func NewInstance(owner sim.ID, tmpl *VisualTemplate, rng *rand.Rand) *Instance {
	if tmpl == nil {
		panic(fmt.Sprintf("scene: instância %d sem template", owner))
	}
	inst := &Instance{owner: owner, tmpl: tmpl}
	if tmpl.Footprints != nil {
		inst.trail = NewFootprintTrail(*tmpl.Footprints, rng)
	}
	return inst
}

// Realize cria o nó de cena a partir do template. A prioridade é
// malha > terreno > partículas; sem nenhum deles a instância fica sem nó.
func (i *Instance) Realize(r Renderer, data *sim.EntityData) error {
	if r == nil {
		panic("scene: Realize sem renderizador")
	}
	if i.node != nil {
		panic(fmt.Sprintf("scene: instância %d já realizada", i.owner))
	}
	i.r = r

	switch {
	case i.tmpl.Mesh != nil:
		n, err := r.AddAnimatedMeshNode(i.tmpl.Mesh)
		if err != nil {
			return fmt.Errorf("nó de malha da entidade %d: %w", data.ID(), err)
		}
		if i.tmpl.CastsShadow {
			n.AddShadowVolume()
		}

		// Congela a animação no primeiro quadro
		n.SetAnimationSpeed(0)
		i.startFrame = n.StartFrame()
		i.endFrame = n.EndFrame()
		n.SetFrameLoop(0, 0)
		n.SetCurrentFrame(0)

		sel := r.CreateTriangleSelector(n)
		if sel == nil {
			panic(fmt.Sprintf("scene: sem seletor de colisão para a entidade %d", data.ID()))
		}
		n.SetTriangleSelector(sel)
		if parent := n.Parent(); parent != nil {
			meta := r.CreateMetaSelector()
			if prev := parent.TriangleSelector(); prev != nil {
				meta.AddSelector(prev)
			}
			meta.AddSelector(sel)
			parent.SetTriangleSelector(meta)
		}
		i.kind, i.node = KindMesh, n

	case i.tmpl.Heightmap != "":
		n, err := r.AddTerrainNode(i.tmpl.Heightmap)
		if err != nil {
			return fmt.Errorf("terreno %s: %w", i.tmpl.Heightmap, err)
		}
		n.ScaleTexture(i.tmpl.TextureScale.X(), i.tmpl.TextureScale.Y())
		sel := r.CreateTerrainTriangleSelector(n)
		if sel == nil {
			panic(fmt.Sprintf("scene: sem seletor de colisão para a entidade %d", data.ID()))
		}
		n.SetTriangleSelector(sel)
		i.kind, i.node = KindTerrain, n

	case i.tmpl.ParticleSystem != "":
		n, err := r.AddParticleSystemNode(i.tmpl.ParticleSystem)
		if err != nil {
			return fmt.Errorf("partículas %s: %w", i.tmpl.ParticleSystem, err)
		}
		i.kind, i.node = KindParticle, n

	default:
		return nil
	}

	for layer, tex := range i.tmpl.Textures {
		i.node.SetMaterialTexture(layer, tex)
	}
	for _, f := range i.tmpl.MaterialFlags {
		i.node.SetMaterialFlag(f.Kind, f.Value)
	}
	i.node.SetMaterialType(i.tmpl.MaterialType)
	i.node.SetScale(util.SimToRenderPosition(i.effectiveScale(data)))

	i.node.Grab()
	i.node.SetID(PackSceneID(data.ID(), data.Kind()))

	log.Debugf("Entidade %d realizada como %s", data.ID(), i.kind)
	return nil
}

func (i *Instance) effectiveScale(data *sim.EntityData) mgl32.Vec3 {
	if data == nil {
		return i.tmpl.Scale
	}
	return util.MulComponents(i.tmpl.Scale, data.Scale())
}

// ProcessTick copia para o nó os campos marcados como sujos e limpa as marcas.
// Sem nó, não faz nada (nem limpa).
func (i *Instance) ProcessTick(data *sim.EntityData, f Frame) {
	if i.node == nil {
		return
	}

	if data.IsDirty(sim.DirtyPosition) {
		if i.camera != nil {
			i.follow.updatePosition(i.camera, data)
		}
		i.node.SetPosition(util.SimToRenderPosition(data.Position()))
		if i.kind == KindMesh && i.trail != nil && f.Spawner != nil {
			i.trail.Step(data, f.Spawner)
		}
	}

	if data.IsDirty(sim.DirtyRotation) {
		if i.camera != nil {
			i.follow.updateRotation(i.camera, data)
		}
		i.node.SetRotation(util.SimToRenderRotation(data.Rotation()))
	}

	if data.IsDirty(sim.DirtyScale) {
		i.node.SetScale(util.SimToRenderPosition(i.effectiveScale(data)))
	}

	if data.IsDirty(sim.DirtyLabel) && i.tmpl.DrawLabel {
		i.setText(data.Label())
	}

	if data.IsDirty(sim.DirtyColor) && i.kind == KindMesh {
		i.node.(AnimatedNode).SetDiffuseColor(0, data.Color())
	}

	if i.tmpl.DrawBoundingBox && f.Lines != nil {
		box := i.node.TransformedBoundingBox()
		f.Lines.AddBox(box, BoundingBoxColor)
	}

	if i.tmpl.FPSCamera != nil && i.camera == nil && f.Cameras != nil {
		if cam := f.Cameras.ActiveCamera(); cam != nil && cam.SupportsFirstPerson() {
			i.AttachCamera(cam, data)
		}
	}

	data.ClearDirty()
}

func (i *Instance) setText(text string) {
	if text == "" {
		if i.text != nil {
			i.text.Remove()
			i.text = nil
		}
		return
	}
	if i.text == nil {
		i.text = i.r.AddTextNode(text, labelColor, i.node, util.SimToRenderPosition(labelOffset))
		return
	}
	i.text.SetText(text)
}

// AttachCamera prende a câmera em primeira pessoa a esta instância.
// Uma câmera anterior diferente volta ao modo órbita.
func (i *Instance) AttachCamera(cam Camera, data *sim.EntityData) {
	if cam == nil || !cam.SupportsFirstPerson() {
		panic("scene: só câmeras em primeira pessoa podem ser presas")
	}
	if i.tmpl.FPSCamera == nil {
		panic("scene: template sem seção FPSCamera")
	}
	if i.camera != nil && i.camera != cam {
		i.camera.SetMode(ModeOrbit)
	}
	i.camera = cam
	cam.SetMode(ModeFirstPerson)
	i.follow.attach(i.tmpl.FPSCamera, cam, data)
}

// DetachCamera solta a câmera presa e a devolve ao modo órbita.
func (i *Instance) DetachCamera() {
	if i.camera == nil {
		return
	}
	i.camera.SetMode(ModeOrbit)
	i.camera = nil
}

// Camera retorna a câmera presa, se houver.
func (i *Instance) Camera() Camera {
	return i.camera
}

// SetAnimation troca a animação MD2 e volta a tocar em loop. speed <= 0
// usa a velocidade do template.
func (i *Instance) SetAnimation(name string, speed float32) bool {
	n, ok := i.node.(AnimatedNode)
	if !ok || i.kind != KindMesh {
		log.Warnf("Nó não é animado ao trocar animação para %s", name)
		return false
	}
	anim, ok := ParseMD2Animation(name)
	if !ok {
		log.Warnf("Animação desconhecida: %s", name)
		return false
	}
	if !n.SetMD2Animation(anim) {
		log.Warnf("Malha não tem a animação %s", name)
		return false
	}
	if speed <= 0 {
		speed = i.tmpl.AnimationSpeed
	}
	n.SetAnimationSpeed(speed)
	return true
}

// Destroy remove o nó, o rótulo e as pegadas.
func (i *Instance) Destroy(spawner Spawner) {
	if i.trail != nil && spawner != nil {
		i.trail.Clear(spawner)
	}
	if i.text != nil {
		i.text.Remove()
		i.text = nil
	}
	if i.camera != nil {
		i.camera.SetMode(ModeOrbit)
		i.camera = nil
	}
	if i.node != nil {
		i.node.Remove()
		i.node.Drop()
		i.node = nil
		i.kind = KindNone
	}
}

// Kind retorna a variante do nó.
func (i *Instance) Kind() NodeKind {
	return i.kind
}

// Node retorna o nó de cena, ou nil.
func (i *Instance) Node() Node {
	return i.node
}

// Template retorna o template compartilhado.
func (i *Instance) Template() *VisualTemplate {
	return i.tmpl
}

// Owner retorna o ID da entidade dona.
func (i *Instance) Owner() sim.ID {
	return i.owner
}

// Trail retorna o rastro de pegadas, ou nil.
func (i *Instance) Trail() *FootprintTrail {
	return i.trail
}

// FrameRange retorna o intervalo de quadros nativo da malha.
func (i *Instance) FrameRange() (start, end int32) {
	return i.startFrame, i.endFrame
}

// BoundingBox retorna a caixa no espaço do objeto, em coordenadas da simulação.
func (i *Instance) BoundingBox() Box {
	if i.node == nil {
		return Box{}
	}
	return boxToSim(i.node.BoundingBox())
}

// TransformedBoundingBox retorna a caixa no espaço do mundo, em coordenadas da simulação.
func (i *Instance) TransformedBoundingBox() Box {
	if i.node == nil {
		return Box{}
	}
	return boxToSim(i.node.TransformedBoundingBox())
}

func boxToSim(b Box) Box {
	return Box{Min: util.RenderToSimPosition(b.Min), Max: util.RenderToSimPosition(b.Max)}
}

// TransformVector aplica a transformação absoluta do nó a v.
func (i *Instance) TransformVector(v mgl32.Vec3) mgl32.Vec3 {
	if i.node == nil {
		return mgl32.Vec3{}
	}
	p := util.SimToRenderPosition(v)
	out := i.node.AbsoluteTransform().Mul4x1(p.Vec4(1)).Vec3()
	return util.RenderToSimPosition(out)
}

// SceneID retorna o ID empacotado do nó, ou -1 sem nó.
func (i *Instance) SceneID() int64 {
	if i.node == nil {
		return -1
	}
	return int64(i.node.ID())
}

// Position retorna a posição atual do nó. Exige nó.
func (i *Instance) Position() mgl32.Vec3 {
	if i.node == nil {
		panic("scene: Position sem nó")
	}
	return util.RenderToSimPosition(i.node.Position())
}

// Scale retorna a escala atual do nó. Exige nó.
func (i *Instance) Scale() mgl32.Vec3 {
	if i.node == nil {
		panic("scene: Scale sem nó")
	}
	return util.RenderToSimPosition(i.node.Scale())
}
