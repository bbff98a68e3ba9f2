package scene

import (
	"errors"
	"fmt"
	"image/color"

	"NeroView/shared/propmap"
	"NeroView/shared/sim"

	"github.com/go-gl/mathgl/mgl32"
)

// Implementações em memória das interfaces do renderizador.

type fakeMesh struct {
	name string
	refs int
	box  Box
}

func (m *fakeMesh) Grab()            { m.refs++ }
func (m *fakeMesh) Drop() bool       { m.refs--; return m.refs == 0 }
func (m *fakeMesh) Name() string     { return m.name }
func (m *fakeMesh) BoundingBox() Box { return m.box }

type fakeTexture string

func (t fakeTexture) Name() string { return string(t) }

type fakeNode struct {
	refs     int
	removed  bool
	parent   *fakeNode
	children []*fakeNode

	pos, rot, scale mgl32.Vec3
	textures        map[int]Texture
	flags           map[MaterialFlagKind]bool
	matType         MaterialType
	id              uint32
	box             Box
	selector        Selector

	speed              float32
	start, end         int32
	loopBegin, loopEnd int32
	frame              float32
	md2                MD2Animation
	md2Set             bool
	shadow             bool
	diffuse            color.RGBA
	texScale           mgl32.Vec2

	calls map[string]int
}

func newFakeNode(parent *fakeNode) *fakeNode {
	n := &fakeNode{
		parent:   parent,
		scale:    mgl32.Vec3{1, 1, 1},
		textures: make(map[int]Texture),
		flags:    make(map[MaterialFlagKind]bool),
		box:      Box{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}},
		calls:    make(map[string]int),
		refs:     1,
	}
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	return n
}

func (n *fakeNode) Grab()      { n.refs++ }
func (n *fakeNode) Drop() bool { n.refs--; return n.refs == 0 }
func (n *fakeNode) Remove()    { n.removed = true }

func (n *fakeNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *fakeNode) SetPosition(p mgl32.Vec3) { n.calls["position"]++; n.pos = p }
func (n *fakeNode) Position() mgl32.Vec3     { return n.pos }
func (n *fakeNode) SetRotation(r mgl32.Vec3) { n.calls["rotation"]++; n.rot = r }
func (n *fakeNode) Rotation() mgl32.Vec3     { return n.rot }
func (n *fakeNode) SetScale(s mgl32.Vec3)    { n.calls["scale"]++; n.scale = s }
func (n *fakeNode) Scale() mgl32.Vec3        { return n.scale }

func (n *fakeNode) SetMaterialTexture(layer int, tex Texture) { n.textures[layer] = tex }
func (n *fakeNode) SetMaterialFlag(f MaterialFlagKind, on bool) {
	n.flags[f] = on
}
func (n *fakeNode) SetMaterialType(t MaterialType) { n.matType = t }

func (n *fakeNode) SetID(id uint32) { n.id = id }
func (n *fakeNode) ID() uint32      { return n.id }

func (n *fakeNode) BoundingBox() Box { return n.box }

func (n *fakeNode) TransformedBoundingBox() Box {
	m := n.AbsoluteTransform()
	return Box{
		Min: mgl32.TransformCoordinate(n.box.Min, m),
		Max: mgl32.TransformCoordinate(n.box.Max, m),
	}
}

func (n *fakeNode) AbsoluteTransform() mgl32.Mat4 {
	return mgl32.Translate3D(n.pos.X(), n.pos.Y(), n.pos.Z()).
		Mul4(mgl32.Scale3D(n.scale.X(), n.scale.Y(), n.scale.Z()))
}

func (n *fakeNode) TriangleSelector() Selector      { return n.selector }
func (n *fakeNode) SetTriangleSelector(s Selector) { n.selector = s }

func (n *fakeNode) SetAnimationSpeed(fps float32) { n.speed = fps }
func (n *fakeNode) StartFrame() int32             { return n.start }
func (n *fakeNode) EndFrame() int32               { return n.end }
func (n *fakeNode) SetFrameLoop(b, e int32) bool {
	n.loopBegin, n.loopEnd = b, e
	return true
}
func (n *fakeNode) SetCurrentFrame(f float32) { n.frame = f }
func (n *fakeNode) SetMD2Animation(a MD2Animation) bool {
	n.md2, n.md2Set = a, true
	n.loopBegin, n.loopEnd = int32(a)*10, int32(a)*10+9
	return true
}
func (n *fakeNode) AddShadowVolume()                       { n.shadow = true }
func (n *fakeNode) SetDiffuseColor(slot int, c color.RGBA) { n.calls["color"]++; n.diffuse = c }
func (n *fakeNode) ScaleTexture(u, v float32)              { n.texScale = mgl32.Vec2{u, v} }

// fakeSelector acerta raios que passam a menos de 1 unidade do nó.
type fakeSelector struct {
	node *fakeNode
}

func (s *fakeSelector) RayHit(origin, dir mgl32.Vec3) (Hit, bool) {
	d := dir.Normalize()
	t := s.node.pos.Sub(origin).Dot(d)
	if t < 0 {
		return Hit{}, false
	}
	p := origin.Add(d.Mul(t))
	if p.Sub(s.node.pos).Len() > 1 {
		return Hit{}, false
	}
	return Hit{Distance: t, Point: p, NodeID: s.node.id}, true
}

type fakeMeta struct {
	selectors []Selector
}

func (m *fakeMeta) AddSelector(s Selector) { m.selectors = append(m.selectors, s) }

func (m *fakeMeta) RayHit(origin, dir mgl32.Vec3) (Hit, bool) {
	var best Hit
	found := false
	for _, s := range m.selectors {
		if h, ok := s.RayHit(origin, dir); ok && (!found || h.Distance < best.Distance) {
			best, found = h, true
		}
	}
	return best, found
}

type fakeText struct {
	text    string
	color   color.RGBA
	parent  Node
	offset  mgl32.Vec3
	removed bool
}

func (t *fakeText) SetText(s string) { t.text = s }
func (t *fakeText) Remove()          { t.removed = true }

type fakeRenderer struct {
	root        *fakeNode
	nodes       []*fakeNode
	texts       []*fakeText
	meshErr     error
	noSelectors bool
	startFrame  int32
	endFrame    int32
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{root: newFakeNode(nil), startFrame: 0, endFrame: 197}
}

func (r *fakeRenderer) Root() Node { return r.root }

func (r *fakeRenderer) newNode() *fakeNode {
	n := newFakeNode(r.root)
	r.nodes = append(r.nodes, n)
	return n
}

func (r *fakeRenderer) AddAnimatedMeshNode(mesh Mesh) (AnimatedNode, error) {
	if r.meshErr != nil {
		return nil, r.meshErr
	}
	n := r.newNode()
	n.box = mesh.BoundingBox()
	n.start, n.end = r.startFrame, r.endFrame
	n.speed = defaultAnimationSpeed
	return n, nil
}

func (r *fakeRenderer) AddTerrainNode(heightmap string) (TerrainNode, error) {
	return r.newNode(), nil
}

func (r *fakeRenderer) AddParticleSystemNode(desc string) (Node, error) {
	return r.newNode(), nil
}

func (r *fakeRenderer) AddTextNode(text string, c color.RGBA, parent Node, offset mgl32.Vec3) TextNode {
	t := &fakeText{text: text, color: c, parent: parent, offset: offset}
	r.texts = append(r.texts, t)
	return t
}

func (r *fakeRenderer) CreateTriangleSelector(n AnimatedNode) Selector {
	if r.noSelectors {
		return nil
	}
	return &fakeSelector{node: n.(*fakeNode)}
}

func (r *fakeRenderer) CreateTerrainTriangleSelector(n TerrainNode) Selector {
	if r.noSelectors {
		return nil
	}
	return &fakeSelector{node: n.(*fakeNode)}
}

func (r *fakeRenderer) CreateMetaSelector() MetaSelector { return &fakeMeta{} }

// fakeAssets carrega qualquer malha listada em meshes e qualquer textura
// que não comece com "missing".
type fakeAssets struct {
	meshes  map[string]*fakeMesh
	shaders map[string]bool
	loaded  []string
}

func newFakeAssets(meshes ...string) *fakeAssets {
	a := &fakeAssets{meshes: make(map[string]*fakeMesh), shaders: make(map[string]bool)}
	for _, m := range meshes {
		a.meshes[m] = &fakeMesh{name: m, box: Box{Min: mgl32.Vec3{-1, 0, -1}, Max: mgl32.Vec3{1, 2, 1}}}
	}
	return a
}

func (a *fakeAssets) LoadAnimatedMesh(path string) (Mesh, error) {
	m, ok := a.meshes[path]
	if !ok {
		return nil, fmt.Errorf("malha %s não encontrada", path)
	}
	return m, nil
}

func (a *fakeAssets) LoadTexture(path string) (Texture, error) {
	if len(path) >= 7 && path[:7] == "missing" {
		return nil, errors.New("textura não encontrada")
	}
	return fakeTexture(path), nil
}

func (a *fakeAssets) LoadShader(vert, frag string) (MaterialType, error) {
	a.loaded = append(a.loaded, vert+"+"+frag)
	base := vert[:len(vert)-len(".vert")]
	if !a.shaders[base] {
		return 0, fmt.Errorf("shader %s não encontrado", base)
	}
	return MaterialCustomBase, nil
}

type fakeCamera struct {
	fps    bool
	mode   CameraMode
	anchor mgl32.Vec3
	offset mgl32.Vec3
	target mgl32.Vec3
	near   float32
	far    float32
}

func (c *fakeCamera) SupportsFirstPerson() bool { return c.fps }
func (c *fakeCamera) Mode() CameraMode          { return c.mode }
func (c *fakeCamera) SetMode(m CameraMode)      { c.mode = m }
func (c *fakeCamera) SetAnchor(p mgl32.Vec3)    { c.anchor = p }
func (c *fakeCamera) SetOffset(o mgl32.Vec3)    { c.offset = o }
func (c *fakeCamera) Target() mgl32.Vec3        { return c.target }
func (c *fakeCamera) SetTarget(t mgl32.Vec3)    { c.target = t }
func (c *fakeCamera) SetNearPlane(d float32)    { c.near = d }
func (c *fakeCamera) SetFarPlane(d float32)     { c.far = d }

type staticCameras struct{ cam Camera }

func (s staticCameras) ActiveCamera() Camera { return s.cam }

type spawnCall struct {
	template string
	pos, rot mgl32.Vec3
}

// recordSpawner anota criações e remoções de pegadas.
type recordSpawner struct {
	next    sim.ID
	spawned []spawnCall
	removed []sim.ID
	fail    bool
}

func (s *recordSpawner) Spawn(template string, pos, rot mgl32.Vec3) (sim.ID, error) {
	if s.fail {
		return 0, errors.New("falhou")
	}
	s.next++
	s.spawned = append(s.spawned, spawnCall{template, pos, rot})
	return s.next, nil
}

func (s *recordSpawner) Remove(id sim.ID) { s.removed = append(s.removed, id) }

// mapSource serve templates de um mapa em memória.
type mapSource map[string]*propmap.PropertyMap

func (m mapSource) LoadTemplate(name string) (*propmap.PropertyMap, error) {
	pm, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("template %s não existe", name)
	}
	return pm, nil
}

func propMap(kv ...string) *propmap.PropertyMap {
	pm := propmap.New()
	for i := 0; i+1 < len(kv); i += 2 {
		pm.Set(kv[i], kv[i+1])
	}
	return pm
}

func vecNear(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-4)
}
