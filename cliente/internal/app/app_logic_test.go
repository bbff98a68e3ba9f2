package app

import (
	"math/rand"
	"testing"

	"NeroView/cliente/internal/camera"
	"NeroView/shared/netsync"
	"NeroView/shared/sim"
)

func TestLocalSimEmitsOneFramePerTick(t *testing.T) {
	l := newLocalSim(10, 3, "shapes/walker/Walker.xml", "", rand.New(rand.NewSource(1)))

	tests := []struct {
		dt     float32
		frames int
	}{
		{0.05, 0}, // meio tick
		{0.05, 1},
		{0.35, 3},
		{0, 0},
	}
	for i, tt := range tests {
		if got := len(l.Advance(tt.dt)); got != tt.frames {
			t.Errorf("passo %d: %d frames, want %d", i, got, tt.frames)
		}
	}
	if l.tick != 4 {
		t.Errorf("tick = %d, want 4", l.tick)
	}
}

func TestLocalSimFirstFrameCarriesEverything(t *testing.T) {
	l := newLocalSim(20, 2, "walker.xml", "", rand.New(rand.NewSource(1)))
	frames := l.Advance(0.05)
	if len(frames) != 1 {
		t.Fatalf("%d frames, want 1", len(frames))
	}

	f := frames[0]
	if len(f.Updates) != 2 {
		t.Fatalf("%d atualizações, want 2", len(f.Updates))
	}
	for _, u := range f.Updates {
		if u.Template != "walker.xml" || u.Kind != sim.WalkerKind || u.Label == "" {
			t.Errorf("atualização incompleta: %+v", u)
		}
	}

	// Depois do primeiro frame só vão posição e rotação
	next := l.Advance(0.05)[0]
	for _, u := range next.Updates {
		if u.Dirty != sim.DirtyPosition|sim.DirtyRotation {
			t.Errorf("entidade %d com Dirty = %b", u.ID, u.Dirty)
		}
	}
}

func TestLocalSimRemovalReachesNextFrame(t *testing.T) {
	l := newLocalSim(20, 2, "walker.xml", "", rand.New(rand.NewSource(1)))
	l.Advance(0.05)

	if l.Remove(999) {
		t.Error("Remove de id inexistente deveria falhar")
	}
	if !l.Remove(1) {
		t.Fatal("Remove(1) falhou")
	}

	f := l.Advance(0.05)[0]
	var removed []sim.ID
	for _, u := range f.Updates {
		if u.Removed {
			removed = append(removed, u.ID)
		}
	}
	if len(removed) != 1 || removed[0] != 1 {
		t.Errorf("removidos = %v, want [1]", removed)
	}
	if g := l.Advance(0.05); len(g) != 1 || hasRemoval(g[0].Updates) {
		t.Error("remoção repetida no frame seguinte")
	}
}

func hasRemoval(updates []netsync.EntityUpdate) bool {
	for _, u := range updates {
		if u.Removed {
			return true
		}
	}
	return false
}

func TestCameraGateHandsOutOnce(t *testing.T) {
	g := &cameraGate{cam: camera.New()}
	if g.ActiveCamera() != nil {
		t.Fatal("trava fechada entregou a câmera")
	}
	g.open = true
	if g.ActiveCamera() == nil {
		t.Fatal("trava aberta não entregou a câmera")
	}
	if g.ActiveCamera() != nil {
		t.Error("câmera entregue duas vezes")
	}
}
