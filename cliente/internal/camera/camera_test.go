package camera

import (
	"math"
	"testing"

	"NeroView/cliente/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b rl.Vector3) bool {
	return mgl32.Vec3{a.X, a.Y, a.Z}.ApproxEqualThreshold(mgl32.Vec3{b.X, b.Y, b.Z}, 1e-3)
}

var _ scene.Camera = (*CameraController)(nil)
var _ scene.CameraProvider = (*CameraController)(nil)

func TestNewStartsInOrbit(t *testing.T) {
	c := New()
	if c.Mode() != scene.ModeOrbit {
		t.Errorf("Mode = %v, want órbita", c.Mode())
	}
	if !c.SupportsFirstPerson() {
		t.Error("controlador deveria suportar primeira pessoa")
	}
	if n, f := c.ClipPlanes(); n != defaultNearPlane || f != defaultFarPlane {
		t.Errorf("ClipPlanes = %v/%v, want padrão", n, f)
	}
}

func TestOrbitPositionFromAngles(t *testing.T) {
	c := New()
	c.TargetAngleY = 0
	c.TargetAngleX = -math.Pi / 2
	c.CurrentZoom = 10
	c.CurrentLookAt = rl.Vector3{X: 1, Y: 2, Z: 3}
	c.UpdateWait(0)

	// Olhando reto de cima
	if want := (rl.Vector3{X: 1, Y: 12, Z: 3}); !near(c.RLCamera.Position, want) {
		t.Errorf("Position = %+v, want %+v", c.RLCamera.Position, want)
	}
	if c.RLCamera.Target != c.CurrentLookAt {
		t.Errorf("Target = %+v, want %+v", c.RLCamera.Target, c.CurrentLookAt)
	}
}

func TestOrbitUpdateConvergesOnLargeStep(t *testing.T) {
	c := New()
	c.TargetLookAt = rl.Vector3{X: 50, Y: 0, Z: -20}
	c.TargetZoom = 30

	c.Update(1.0) // fator saturado em 1

	if !near(c.CurrentLookAt, c.TargetLookAt) || c.CurrentZoom != 30 {
		t.Errorf("LookAt %+v zoom %v, want %+v zoom 30", c.CurrentLookAt, c.CurrentZoom, c.TargetLookAt)
	}
}

func TestFirstPersonUsesSimSpace(t *testing.T) {
	c := New()
	c.SetAnchor(mgl32.Vec3{10, 0, 0})
	c.SetOffset(mgl32.Vec3{0, 0, 5})
	c.SetTarget(mgl32.Vec3{110, 0, 0})
	c.SetNearPlane(1)
	c.SetFarPlane(500)
	c.SetMode(scene.ModeFirstPerson)

	if want := (rl.Vector3{X: 10, Y: 5, Z: 0}); !near(c.RLCamera.Position, want) {
		t.Errorf("olho = %+v, want %+v", c.RLCamera.Position, want)
	}
	if want := (rl.Vector3{X: 110, Y: 0, Z: 0}); !near(c.RLCamera.Target, want) {
		t.Errorf("alvo = %+v, want %+v", c.RLCamera.Target, want)
	}
	if n, f := c.ClipPlanes(); n != 1 || f != 500 {
		t.Errorf("ClipPlanes = %v/%v, want 1/500", n, f)
	}

	// A entidade andou: o tick seguinte acompanha
	c.SetAnchor(mgl32.Vec3{10, 20, 0})
	c.Update(0.016)
	if want := (rl.Vector3{X: 10, Y: 5, Z: 20}); !near(c.RLCamera.Position, want) {
		t.Errorf("olho depois do passo = %+v, want %+v", c.RLCamera.Position, want)
	}
}

func TestBackToOrbitRecentersOnAnchor(t *testing.T) {
	c := New()
	c.SetAnchor(mgl32.Vec3{4, 8, 1})
	c.SetMode(scene.ModeFirstPerson)
	c.SetMode(scene.ModeOrbit)

	if want := (rl.Vector3{X: 4, Y: 1, Z: 8}); !near(c.CurrentLookAt, want) {
		t.Errorf("LookAt = %+v, want %+v", c.CurrentLookAt, want)
	}
	if n, f := c.ClipPlanes(); n != defaultNearPlane || f != defaultFarPlane {
		t.Errorf("ClipPlanes = %v/%v, want padrão", n, f)
	}
}
