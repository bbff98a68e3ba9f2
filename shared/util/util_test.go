package util

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPositionConversionRoundTrip(t *testing.T) {
	tests := []mgl32.Vec3{
		{0, 0, 0},
		{1, 2, 3},
		{-4.5, 10, 0.25},
	}
	for _, v := range tests {
		r := SimToRenderPosition(v)
		if r.Y() != v.Z() || r.Z() != v.Y() {
			t.Errorf("SimToRenderPosition(%v) = %v, want Y/Z swapped", v, r)
		}
		if back := RenderToSimPosition(r); back != v {
			t.Errorf("RenderToSimPosition(%v) = %v, want %v", r, back, v)
		}
	}
}

func TestRotationConversionRoundTrip(t *testing.T) {
	v := mgl32.Vec3{10, 20, 90}
	r := SimToRenderRotation(v)
	if r != (mgl32.Vec3{-10, -90, -20}) {
		t.Errorf("SimToRenderRotation(%v) = %v", v, r)
	}
	if back := RenderToSimRotation(r); back != v {
		t.Errorf("RenderToSimRotation(%v) = %v, want %v", r, back, v)
	}
}

func TestRotateXYBy(t *testing.T) {
	got := RotateXYBy(mgl32.Vec3{2, 0, 7}, 90, mgl32.Vec3{1, 0, 0})
	want := mgl32.Vec3{1, 1, 7}
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("RotateXYBy = %v, want %v", got, want)
	}
}

func TestThreadSafeQueueDrain(t *testing.T) {
	q := NewThreadSafeQueue[int]()
	for i := 1; i <= 3; i++ {
		q.Push(i)
	}
	if v, ok := q.Pop(); !ok || v != 1 {
		t.Fatalf("Pop = %d,%v, want 1,true", v, ok)
	}
	got := q.Drain()
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("Drain = %v, want [2 3]", got)
	}
	if q.Len() != 0 {
		t.Errorf("Len after drain = %d", q.Len())
	}
}
