package sim

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSettersMarkDirtyBits(t *testing.T) {
	e := NewEntityData(1, 0, "", mgl32.Vec3{}, mgl32.Vec3{})
	if e.Dirty() != DirtyAll {
		t.Fatalf("nova entidade Dirty = %b, want DirtyAll", e.Dirty())
	}
	e.ClearDirty()

	tests := []struct {
		name string
		set  func()
		bit  DirtyBits
	}{
		{"position", func() { e.SetPosition(mgl32.Vec3{1, 2, 3}) }, DirtyPosition},
		{"rotation", func() { e.SetRotation(mgl32.Vec3{0, 0, 90}) }, DirtyRotation},
		{"scale", func() { e.SetScale(mgl32.Vec3{2, 2, 2}) }, DirtyScale},
		{"label", func() { e.SetLabel("ogro") }, DirtyLabel},
		{"color", func() { e.SetColor(color.RGBA{R: 255, A: 255}) }, DirtyColor},
	}
	for _, tt := range tests {
		tt.set()
		if e.Dirty() != tt.bit {
			t.Errorf("%s: Dirty = %b, want %b", tt.name, e.Dirty(), tt.bit)
		}
		e.ClearDirty()
	}
}

func TestWorldAllocatesAndRemoves(t *testing.T) {
	w := NewWorld(LocalIDBase)
	a := w.Add(2, "a.xml", mgl32.Vec3{}, mgl32.Vec3{})
	b := w.Add(2, "b.xml", mgl32.Vec3{}, mgl32.Vec3{})
	if a.ID() != LocalIDBase || b.ID() != LocalIDBase+1 {
		t.Errorf("ids = %d,%d", a.ID(), b.ID())
	}

	if _, err := w.AddWithID(7, 1, "c.xml", mgl32.Vec3{}, mgl32.Vec3{}); err != nil {
		t.Fatalf("AddWithID: %v", err)
	}
	if _, err := w.AddWithID(7, 1, "c.xml", mgl32.Vec3{}, mgl32.Vec3{}); err == nil {
		t.Error("AddWithID duplicado deveria falhar")
	}

	ids := w.IDs()
	if len(ids) != 3 || ids[0] != 7 {
		t.Errorf("IDs = %v", ids)
	}
	if !w.Remove(7) || w.Remove(7) {
		t.Error("Remove deveria ser verdadeiro só na primeira vez")
	}
	if w.Len() != 2 {
		t.Errorf("Len = %d", w.Len())
	}
}

func TestWorldSkipsTakenIDs(t *testing.T) {
	w := NewWorld(5)
	if _, err := w.AddWithID(5, 0, "", mgl32.Vec3{}, mgl32.Vec3{}); err != nil {
		t.Fatal(err)
	}
	if e := w.Add(0, "", mgl32.Vec3{}, mgl32.Vec3{}); e.ID() != 6 {
		t.Errorf("Add após colisão = %d, want 6", e.ID())
	}
}
