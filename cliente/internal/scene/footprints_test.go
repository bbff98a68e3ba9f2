package scene

import (
	"math/rand"
	"testing"

	"NeroView/shared/sim"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFootprintCadenceAndBound(t *testing.T) {
	tests := []struct {
		frames, trail uint32
		calls         int
		wantFired     []int
		wantIDs       []sim.ID
	}{
		{frames: 3, trail: 2, calls: 10, wantFired: []int{0, 3, 6, 9}, wantIDs: []sim.ID{3, 4}},
		{frames: 1, trail: 3, calls: 2, wantFired: []int{0, 1}, wantIDs: []sim.ID{1, 2}},
		{frames: 5, trail: 3, calls: 16, wantFired: []int{0, 5, 10, 15}, wantIDs: []sim.ID{2, 3, 4}},
		{frames: 4, trail: 0, calls: 5, wantFired: []int{0, 4}, wantIDs: []sim.ID{}},
	}

	for _, tt := range tests {
		trail := NewFootprintTrail(FootprintTemplate{Frames: tt.frames, Trail: tt.trail, Object: "decal"}, nil)
		sp := &recordSpawner{}
		data := newEntity(1)

		var fired []int
		for i := 0; i < tt.calls; i++ {
			if trail.Step(data, sp) {
				fired = append(fired, i)
			}
			if uint32(trail.Len()) > tt.trail {
				t.Fatalf("frames=%d trail=%d: fila com %d > limite", tt.frames, tt.trail, trail.Len())
			}
		}

		if !equalInts(fired, tt.wantFired) {
			t.Errorf("frames=%d: disparos em %v, want %v", tt.frames, fired, tt.wantFired)
		}
		if got := trail.IDs(); !equalIDs(got, tt.wantIDs) {
			t.Errorf("frames=%d trail=%d: IDs = %v, want %v", tt.frames, tt.trail, got, tt.wantIDs)
		}
		wantRemoved := len(tt.wantFired) - len(tt.wantIDs)
		if len(sp.removed) != wantRemoved {
			t.Errorf("frames=%d trail=%d: %d removidas, want %d", tt.frames, tt.trail, len(sp.removed), wantRemoved)
		}
		for i, id := range sp.removed {
			if id != sim.ID(i+1) {
				t.Errorf("remoção %d = %d, want %d (mais antiga primeiro)", i, id, i+1)
			}
		}
	}
}

func TestFootprintPlacement(t *testing.T) {
	trail := NewFootprintTrail(FootprintTemplate{Frames: 1, Trail: 10, Object: "decal"}, rand.New(rand.NewSource(3)))
	sp := &recordSpawner{}
	data := sim.NewEntityData(1, 0, "walker", mgl32.Vec3{10, 20, 30}, mgl32.Vec3{0, 0, 45})

	for i := 0; i < 10; i++ {
		trail.Step(data, sp)
	}
	for _, c := range sp.spawned {
		if c.template != "decal" || c.rot != (mgl32.Vec3{0, 0, 45}) {
			t.Errorf("spawn = %+v", c)
		}
		d := c.pos.Sub(data.Position())
		if d.X() < -0.5 || d.X() >= 0.5 || d.Y() < -0.5 || d.Y() >= 0.5 || d.Z() != -1.5 {
			t.Errorf("deslocamento da pegada = %v", d)
		}
	}
}

func TestFootprintSpawnFailureKeepsCadence(t *testing.T) {
	trail := NewFootprintTrail(FootprintTemplate{Frames: 2, Trail: 3, Object: "decal"}, nil)
	sp := &recordSpawner{fail: true}
	data := newEntity(1)

	trail.Step(data, sp)
	sp.fail = false
	if trail.Step(data, sp) {
		t.Error("segunda chamada não deveria disparar")
	}
	if !trail.Step(data, sp) || trail.Len() != 1 {
		t.Errorf("terceira chamada deveria disparar, fila %d", trail.Len())
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalIDs(a, b []sim.ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
