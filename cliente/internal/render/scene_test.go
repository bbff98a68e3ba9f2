package render

import (
	"math/rand"
	"testing"

	"NeroView/cliente/internal/scene"
	"NeroView/shared/propmap"
	"NeroView/shared/sim"

	"github.com/go-gl/mathgl/mgl32"
)

// Realiza uma instância de verdade contra o grafo sem GPU.
func TestInstanceOnRenderer(t *testing.T) {
	r := newRenderer("", false)
	r.meshes["walker.glb"] = testMesh("walker.glb")

	pm := propmap.New()
	pm.Set("Template.Render.AniMesh", "walker.glb")
	pm.Set("Template.Render.Scale", "2 2 2")
	pm.Set("Template.Render.DrawLabel", "true")
	tmpl, err := scene.ParseTemplate(pm, r)
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}

	data := sim.NewEntityData(5, 3, "walker", mgl32.Vec3{5, 7, 1}, mgl32.Vec3{})
	data.SetLabel("andarilho")
	inst := scene.NewInstance(data.ID(), tmpl, rand.New(rand.NewSource(1)))
	if err := inst.Realize(r, data); err != nil {
		t.Fatalf("Realize: %v", err)
	}
	inst.ProcessTick(data, scene.Frame{})

	n := inst.Node()
	if got := n.Position(); !vecNear(got, mgl32.Vec3{5, 1, 7}) {
		t.Errorf("posição no renderizador = %v, want (5, 1, 7)", got)
	}
	if len(r.texts) != 1 || r.texts[0].text != "andarilho" {
		t.Errorf("rótulo não criado: %d rótulos", len(r.texts))
	}

	// A raiz recebeu o seletor da malha
	hit, ok := r.Root().TriangleSelector().RayHit(mgl32.Vec3{5, 1, -10}, mgl32.Vec3{0, 0, 1})
	if !ok {
		t.Fatal("raio deveria acertar a instância")
	}
	if hit.NodeID != scene.PackSceneID(5, 3) || hit.Distance != 15 {
		t.Errorf("hit = %+v, want nó %d a 15 unidades", hit, scene.PackSceneID(5, 3))
	}

	inst.Destroy(nil)
	if r.NodeCount() != 0 || len(r.texts) != 0 {
		t.Errorf("Destroy deixou %d nós e %d rótulos", r.NodeCount(), len(r.texts))
	}
	tmpl.Release()
	if m := r.meshes["walker.glb"]; m.refs != 1 {
		t.Errorf("refs da malha = %d, want 1 (só o cache)", m.refs)
	}
}
