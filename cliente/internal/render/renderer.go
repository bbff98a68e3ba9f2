package render

import (
	"fmt"
	"image/color"
	"math/rand"
	"unsafe"

	"NeroView/cliente/internal/scene"
	"NeroView/shared/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

var log = logger.For("render")

var shadowColor = color.RGBA{R: 0, G: 0, B: 0, A: 90}

// Renderer é o grafo de cena sobre a raylib. Implementa scene.Renderer e
// scene.AssetLoader. Todos os métodos rodam na goroutine da janela.
type Renderer struct {
	root  *rootNode
	texts []*textNode

	// Caminhos relativos dos templates são resolvidos a partir daqui
	AssetDir string

	meshes   map[string]*Mesh
	textures map[string]*Texture

	shaders     map[scene.MaterialType]rl.Shader
	shaderPairs map[string]scene.MaterialType
	nextShader  scene.MaterialType

	defaultShader rl.Shader
	lighting      rl.Shader
	texScaleLoc   int32
	viewPosLoc    int32

	camera rl.Camera3D
	rng    *rand.Rand
	gpu    bool
}

// NewRenderer cria o renderizador. Shaders só são compilados se a janela já existir.
func NewRenderer(assetDir string) *Renderer {
	return newRenderer(assetDir, rl.IsWindowReady())
}

func newRenderer(assetDir string, gpu bool) *Renderer {
	r := &Renderer{
		root:        newRootNode(),
		AssetDir:    assetDir,
		meshes:      make(map[string]*Mesh),
		textures:    make(map[string]*Texture),
		shaders:     make(map[scene.MaterialType]rl.Shader),
		shaderPairs: make(map[string]scene.MaterialType),
		nextShader:  scene.MaterialCustomBase,
		rng:         rand.New(rand.NewSource(1)),
		gpu:         gpu,
	}

	if gpu {
		r.defaultShader = rl.LoadMaterialDefault().Shader
		r.lighting = rl.LoadShaderFromMemory(lightingVertexShader, lightingFragmentShader)
		if rl.IsShaderValid(r.lighting) {
			// Locs aponta para o array em C com as localizações padrão
			locs := unsafe.Slice(r.lighting.Locs, rl.ShaderLocMapBrdf+1)
			locs[rl.ShaderLocMatrixModel] = rl.GetShaderLocation(r.lighting, "matModel")
			locs[rl.ShaderLocMapDiffuse] = rl.GetShaderLocation(r.lighting, "texture0")
			locs[rl.ShaderLocColorDiffuse] = rl.GetShaderLocation(r.lighting, "colDiffuse")
			r.texScaleLoc = rl.GetShaderLocation(r.lighting, "texScale")
			r.viewPosLoc = rl.GetShaderLocation(r.lighting, "viewPos")
		} else {
			log.Warn("Shader de iluminação não compilou, usando o padrão")
			r.lighting = rl.Shader{}
		}
	}

	log.Debugf("Renderizador criado (gpu=%v, assets=%s)", gpu, assetDir)
	return r
}

// Root retorna a raiz do grafo.
func (r *Renderer) Root() scene.Node {
	return r.root
}

// AddAnimatedMeshNode cria um nó de malha pendurado na raiz.
func (r *Renderer) AddAnimatedMeshNode(m scene.Mesh) (scene.AnimatedNode, error) {
	mesh, ok := m.(*Mesh)
	if !ok || mesh == nil {
		return nil, fmt.Errorf("malha %v não pertence a este renderizador", m)
	}
	n := newMeshNode(mesh)
	n.attach(&r.root.node)
	return n, nil
}

// AddTerrainNode gera o terreno a partir do heightmap.
func (r *Renderer) AddTerrainNode(heightmap string) (scene.TerrainNode, error) {
	if !r.gpu {
		return nil, fmt.Errorf("terreno %s exige janela aberta", heightmap)
	}
	path, err := r.resolve(heightmap)
	if err != nil {
		return nil, err
	}
	n, err := loadTerrain(path)
	if err != nil {
		return nil, err
	}
	n.attach(&r.root.node)
	return n, nil
}

// AddParticleSystemNode lê o descritor XML do emissor.
func (r *Renderer) AddParticleSystemNode(descriptor string) (scene.Node, error) {
	desc, err := r.loadParticleDescriptor(descriptor)
	if err != nil {
		return nil, err
	}
	n := newParticleNode(desc, r.rng)
	n.attach(&r.root.node)
	return n, nil
}

// AddTextNode cria um rótulo preso a parent (ou à origem, se parent for nil).
func (r *Renderer) AddTextNode(text string, c color.RGBA, parent scene.Node, offset mgl32.Vec3) scene.TextNode {
	t := &textNode{r: r, text: text, color: c, offset: offset}
	if sn, ok := parent.(sceneNode); ok {
		t.parent = sn.base()
	}
	r.texts = append(r.texts, t)
	return t
}

// CreateTriangleSelector testa contra os triângulos da malha. Sem malha na GPU,
// cai na caixa do nó.
func (r *Renderer) CreateTriangleSelector(n scene.AnimatedNode) scene.Selector {
	mn, ok := n.(*meshNode)
	if !ok {
		return nil
	}
	if mn.mesh.model.MeshCount == 0 {
		return &boxSelector{n: &mn.node}
	}
	return &modelSelector{n: &mn.node, model: func() rl.Model { return mn.mesh.model }}
}

// CreateTerrainTriangleSelector testa contra a malha do terreno.
func (r *Renderer) CreateTerrainTriangleSelector(n scene.TerrainNode) scene.Selector {
	tn, ok := n.(*terrainNode)
	if !ok {
		return nil
	}
	return &modelSelector{n: &tn.node, model: func() rl.Model { return tn.model }}
}

// CreateMetaSelector cria uma união vazia de seletores.
func (r *Renderer) CreateMetaSelector() scene.MetaSelector {
	return &metaSelector{}
}

// Update avança animações e partículas.
func (r *Renderer) Update(dt float32) {
	r.root.walk(func(n sceneNode) { n.update(dt) })
}

// Draw desenha o grafo. Deve ser chamado entre BeginMode3D e EndMode3D.
func (r *Renderer) Draw(cam rl.Camera3D) {
	r.camera = cam
	if r.lighting.ID != 0 {
		p := cam.Position
		rl.SetShaderValue(r.lighting, r.viewPosLoc, []float32{p.X, p.Y, p.Z}, rl.ShaderUniformVec3)
	}
	r.root.walk(func(n sceneNode) { n.draw(r) })
}

// DrawLines desenha o buffer de debug e o esvazia.
func (r *Renderer) DrawLines(lines *scene.LineSet) {
	for _, s := range lines.Segments() {
		rl.DrawLine3D(toRL(s.From), toRL(s.To), s.Color)
	}
	lines.Clear()
}

// DrawTexts desenha os rótulos em 2D. Chamar depois de EndMode3D.
func (r *Renderer) DrawTexts(cam rl.Camera3D) {
	for _, t := range r.texts {
		t.draw(cam)
	}
}

// NodeCount conta os nós abaixo da raiz.
func (r *Renderer) NodeCount() int {
	count := -1
	r.root.walk(func(sceneNode) { count++ })
	return count
}

// Unload remove todos os nós e libera malhas, texturas e shaders.
func (r *Renderer) Unload() {
	for len(r.root.children) > 0 {
		r.root.children[0].Remove()
	}
	r.texts = nil
	for _, m := range r.meshes {
		m.Drop()
	}
	for _, t := range r.textures {
		if r.gpu {
			rl.UnloadTexture(t.tex)
		}
	}
	r.textures = make(map[string]*Texture)
	if r.gpu {
		for _, s := range r.shaders {
			rl.UnloadShader(s)
		}
		if r.lighting.ID != 0 {
			rl.UnloadShader(r.lighting)
		}
	}
	r.shaders = make(map[scene.MaterialType]rl.Shader)
	r.shaderPairs = make(map[string]scene.MaterialType)
	log.Info("Renderizador descarregado")
}

func (r *Renderer) texture(t scene.Texture) (rl.Texture2D, bool) {
	tex, ok := t.(*Texture)
	if !ok || tex == nil || tex.tex.ID == 0 {
		return rl.Texture2D{}, false
	}
	return tex.tex, true
}

// shaderFor escolhe o shader do nó: customizado, iluminação ou padrão.
func (r *Renderer) shaderFor(n *node) rl.Shader {
	if s, ok := r.shaders[n.matType]; ok {
		return s
	}
	if n.flag(scene.FlagLighting) && r.lighting.ID != 0 {
		return r.lighting
	}
	return r.defaultShader
}

// bindMaterials aplica o estado do nó aos materiais do modelo. Malhas são
// compartilhadas entre nós, então o estado é reaplicado antes de cada desenho.
func (r *Renderer) bindMaterials(model rl.Model, n *node, texScale mgl32.Vec2) {
	shader := r.shaderFor(n)
	if shader.ID == r.lighting.ID && r.lighting.ID != 0 {
		rl.SetShaderValue(shader, r.texScaleLoc, []float32{texScale[0], texScale[1]}, rl.ShaderUniformVec2)
	}

	mats := model.GetMaterials()
	for i := range mats {
		if shader.ID != 0 {
			mats[i].Shader = shader
		}
		for layer, t := range n.textures {
			tex, ok := r.texture(t)
			if !ok {
				continue
			}
			r.applySampling(tex, n)
			rl.SetMaterialTexture(&mats[i], int32(layer), tex)
		}
	}
}

func (r *Renderer) applySampling(tex rl.Texture2D, n *node) {
	switch {
	case n.flag(scene.FlagAnisotropicFilter):
		rl.SetTextureFilter(tex, rl.FilterAnisotropic8x)
	case n.flag(scene.FlagTrilinearFilter):
		rl.SetTextureFilter(tex, rl.FilterTrilinear)
	case n.flag(scene.FlagBilinearFilter):
		rl.SetTextureFilter(tex, rl.FilterBilinear)
	}
	if n.flag(scene.FlagTextureWrap) {
		rl.SetTextureWrap(tex, rl.WrapRepeat)
	}
}

// drawModel respeita as flags de arame, nuvem de pontos, culling e transparência.
// A transformação do nó já deve estar em model.Transform.
func (r *Renderer) drawModel(model rl.Model, n *node, tint color.RGBA) {
	if !n.flag(scene.FlagBackFaceCulling) {
		rl.DisableBackfaceCulling()
		defer rl.EnableBackfaceCulling()
	}
	switch {
	case n.matType == scene.MaterialTransparentAddColor:
		rl.BeginBlendMode(rl.BlendAdditive)
		defer rl.EndBlendMode()
	case n.matType.IsTransparent():
		rl.BeginBlendMode(rl.BlendAlpha)
		defer rl.EndBlendMode()
	}

	origin := rl.Vector3{}
	switch {
	case n.flag(scene.FlagWireframe):
		rl.DrawModelWires(model, origin, 1, tint)
	case n.flag(scene.FlagPointCloud):
		rl.DrawModelPointsEx(model, origin, rl.Vector3{Y: 1}, 0, rl.Vector3{X: 1, Y: 1, Z: 1}, tint)
	default:
		rl.DrawModel(model, origin, 1, tint)
	}
}

// drawBlobShadow desenha um disco escuro sob a caixa.
func (r *Renderer) drawBlobShadow(box scene.Box) {
	ext := box.Extent()
	radius := max(ext[0], ext[2]) / 2
	center := rl.Vector3{
		X: (box.Min[0] + box.Max[0]) / 2,
		Y: box.Min[1] + 0.02,
		Z: (box.Min[2] + box.Max[2]) / 2,
	}
	rl.BeginBlendMode(rl.BlendAlpha)
	rl.DrawCylinder(center, radius, radius, 0.01, 16, shadowColor)
	rl.EndBlendMode()
}
