package render

import (
	"NeroView/cliente/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// modelSelector testa o raio contra todas as malhas de um modelo na
// transformação atual do nó.
type modelSelector struct {
	n     *node
	model func() rl.Model
}

func (s *modelSelector) alive() bool { return s.n.parent != nil }

func (s *modelSelector) RayHit(origin, dir mgl32.Vec3) (scene.Hit, bool) {
	if !s.alive() {
		return scene.Hit{}, false
	}
	model := s.model()
	if model.MeshCount == 0 {
		return scene.Hit{}, false
	}

	world := s.n.AbsoluteTransform()
	if _, ok := rayBox(origin, dir, transformBox(s.n.box, world)); !ok {
		return scene.Hit{}, false
	}

	ray := rl.Ray{Position: toRL(origin), Direction: toRL(dir.Normalize())}
	transform := toRLMatrix(world)

	var best scene.Hit
	found := false
	for _, mesh := range model.GetMeshes() {
		c := rl.GetRayCollisionMesh(ray, mesh, transform)
		if c.Hit && (!found || c.Distance < best.Distance) {
			best = scene.Hit{Distance: c.Distance, Point: fromRL(c.Point), NodeID: s.n.id}
			found = true
		}
	}
	return best, found
}

// boxSelector usa só a caixa transformada do nó.
type boxSelector struct {
	n *node
}

func (s *boxSelector) alive() bool { return s.n.parent != nil }

func (s *boxSelector) RayHit(origin, dir mgl32.Vec3) (scene.Hit, bool) {
	if !s.alive() {
		return scene.Hit{}, false
	}
	d, ok := rayBox(origin, dir, s.n.TransformedBoundingBox())
	if !ok {
		return scene.Hit{}, false
	}
	return scene.Hit{Distance: d, Point: origin.Add(dir.Normalize().Mul(d)), NodeID: s.n.id}, true
}

// nodeSelector é um seletor preso a um nó; morre quando o nó sai do grafo.
type nodeSelector interface {
	scene.Selector
	alive() bool
}

// metaSelector devolve o acerto mais próximo entre os seletores filhos.
// Uniões aninhadas são achatadas e seletores de nós removidos são descartados,
// para que a união da raiz não cresça a cada pegada.
type metaSelector struct {
	children []scene.Selector
}

func (m *metaSelector) AddSelector(s scene.Selector) {
	switch sel := s.(type) {
	case nil:
	case *metaSelector:
		for _, c := range sel.children {
			m.AddSelector(c)
		}
	case nodeSelector:
		if sel.alive() {
			m.children = append(m.children, sel)
		}
	default:
		m.children = append(m.children, s)
	}
}

// Len retorna quantos seletores a união guarda.
func (m *metaSelector) Len() int { return len(m.children) }

func (m *metaSelector) RayHit(origin, dir mgl32.Vec3) (scene.Hit, bool) {
	var best scene.Hit
	found := false
	for _, s := range m.children {
		if h, ok := s.RayHit(origin, dir); ok && (!found || h.Distance < best.Distance) {
			best, found = h, true
		}
	}
	return best, found
}

// rayBox é o teste de lajes. Devolve a distância de entrada ao longo da
// direção normalizada (0 se a origem estiver dentro).
func rayBox(origin, dir mgl32.Vec3, b scene.Box) (float32, bool) {
	if dir.Len() == 0 {
		return 0, false
	}
	dir = dir.Normalize()
	tmin, tmax := float32(0), float32(1e30)
	for k := 0; k < 3; k++ {
		if dir[k] == 0 {
			if origin[k] < b.Min[k] || origin[k] > b.Max[k] {
				return 0, false
			}
			continue
		}
		t1 := (b.Min[k] - origin[k]) / dir[k]
		t2 := (b.Max[k] - origin[k]) / dir[k]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
