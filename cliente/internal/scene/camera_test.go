package scene

import (
	"testing"

	"NeroView/shared/sim"

	"github.com/go-gl/mathgl/mgl32"
)

func fpsTemplate(t *testing.T) *VisualTemplate {
	return parseOrFail(t, newFakeAssets("ogre.mesh"),
		"Template.Render.AniMesh", "ogre.mesh",
		"Template.Render.FPSCamera.attach_point", "0 0 5",
		"Template.Render.FPSCamera.far_plane", "500")
}

func TestCameraLazyAttachAndFollow(t *testing.T) {
	r := newFakeRenderer()
	data := sim.NewEntityData(1, 0, "walker", mgl32.Vec3{}, mgl32.Vec3{})
	inst := realizeOrFail(t, r, fpsTemplate(t), data)
	cam := &fakeCamera{fps: true}
	f := Frame{Cameras: staticCameras{cam}}

	inst.ProcessTick(data, f)
	if inst.Camera() != Camera(cam) || cam.mode != ModeFirstPerson {
		t.Fatalf("câmera não foi presa: mode %v", cam.mode)
	}
	if cam.offset != (mgl32.Vec3{0, 0, 5}) || cam.target != (mgl32.Vec3{100, 0, 0}) ||
		cam.near != 10 || cam.far != 500 {
		t.Errorf("câmera = %+v", cam)
	}

	data.SetPosition(mgl32.Vec3{10, 0, 0})
	inst.ProcessTick(data, f)
	if cam.target != (mgl32.Vec3{110, 0, 0}) || cam.anchor != (mgl32.Vec3{10, 0, 0}) {
		t.Errorf("após mover: target %v anchor %v", cam.target, cam.anchor)
	}

	data.SetRotation(mgl32.Vec3{30, 0, 90})
	inst.ProcessTick(data, f)
	if !vecNear(cam.target, mgl32.Vec3{10, 100, 0}) {
		t.Errorf("após girar: target %v, want (10 100 0)", cam.target)
	}

	// Um giro só em X não mexe no alvo
	data.SetRotation(mgl32.Vec3{60, 0, 90})
	inst.ProcessTick(data, f)
	if !vecNear(cam.target, mgl32.Vec3{10, 100, 0}) {
		t.Errorf("giro fora do yaw alterou o alvo: %v", cam.target)
	}
}

func TestCameraLazyAttachSkipsOrbitOnlyCamera(t *testing.T) {
	r := newFakeRenderer()
	data := newEntity(1)
	inst := realizeOrFail(t, r, fpsTemplate(t), data)
	cam := &fakeCamera{}

	inst.ProcessTick(data, Frame{Cameras: staticCameras{cam}})
	if inst.Camera() != nil || cam.mode != ModeOrbit {
		t.Error("câmera sem primeira pessoa não deveria ser presa")
	}
}

func TestAttachCameraDemotesPrevious(t *testing.T) {
	r := newFakeRenderer()
	data := newEntity(1)
	inst := realizeOrFail(t, r, fpsTemplate(t), data)
	a := &fakeCamera{fps: true}
	b := &fakeCamera{fps: true}

	inst.AttachCamera(a, data)
	inst.AttachCamera(b, data)
	if a.mode != ModeOrbit || b.mode != ModeFirstPerson {
		t.Errorf("modos = %v %v, want orbit first-person", a.mode, b.mode)
	}

	inst.AttachCamera(b, data)
	if b.mode != ModeFirstPerson {
		t.Error("reprender a mesma câmera não deveria rebaixá-la")
	}
}

func TestAttachCameraPreconditions(t *testing.T) {
	r := newFakeRenderer()
	data := newEntity(1)

	inst := realizeOrFail(t, r, fpsTemplate(t), data)
	expectPanic(t, "câmera sem primeira pessoa", func() {
		inst.AttachCamera(&fakeCamera{}, data)
	})

	plain := realizeOrFail(t, r, parseOrFail(t, newFakeAssets("ogre.mesh"), "Template.Render.AniMesh", "ogre.mesh"), data)
	expectPanic(t, "template sem FPSCamera", func() {
		plain.AttachCamera(&fakeCamera{fps: true}, data)
	})
}

func TestDetachCameraStopsFollowing(t *testing.T) {
	r := newFakeRenderer()
	data := newEntity(1)
	inst := realizeOrFail(t, r, fpsTemplate(t), data)
	cam := &fakeCamera{fps: true}

	inst.AttachCamera(cam, data)
	inst.DetachCamera()
	if inst.Camera() != nil || cam.mode != ModeOrbit {
		t.Fatalf("câmera ainda presa: mode %v", cam.mode)
	}

	// Sem provedor a instância não volta a pegar a câmera
	data.SetPosition(mgl32.Vec3{10, 0, 0})
	inst.ProcessTick(data, Frame{})
	if cam.anchor == (mgl32.Vec3{10, 0, 0}) {
		t.Error("câmera solta continuou seguindo a entidade")
	}

	inst.DetachCamera() // sem câmera: nada acontece
}

func TestAttachCameraTargetFollowsEntityPosition(t *testing.T) {
	r := newFakeRenderer()
	data := sim.NewEntityData(1, 0, "walker", mgl32.Vec3{50, 20, 0}, mgl32.Vec3{})
	inst := realizeOrFail(t, r, fpsTemplate(t), data)
	cam := &fakeCamera{fps: true}

	inst.AttachCamera(cam, data)
	if cam.target != (mgl32.Vec3{150, 20, 0}) || cam.anchor != (mgl32.Vec3{50, 20, 0}) {
		t.Errorf("target %v anchor %v, want (150 20 0) (50 20 0)", cam.target, cam.anchor)
	}
}
