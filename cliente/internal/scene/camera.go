package scene

import (
	"NeroView/shared/sim"
	"NeroView/shared/util"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraMode é o modo de operação da câmera.
type CameraMode int

const (
	ModeOrbit       CameraMode = iota // órbita livre (padrão)
	ModeFirstPerson                   // segue uma entidade
)

// Camera é a câmera ativa vista pela cena. Todos os valores estão no
// espaço da simulação.
type Camera interface {
	SupportsFirstPerson() bool
	Mode() CameraMode
	SetMode(m CameraMode)

	SetAnchor(p mgl32.Vec3)
	SetOffset(o mgl32.Vec3)
	Target() mgl32.Vec3
	SetTarget(t mgl32.Vec3)
	SetNearPlane(d float32)
	SetFarPlane(d float32)
}

// CameraProvider expõe a câmera ativa, se houver.
type CameraProvider interface {
	ActiveCamera() Camera
}

// cameraFollow guarda a última posição/rotação observada da entidade seguida.
type cameraFollow struct {
	lastPosition mgl32.Vec3
	lastRotation mgl32.Vec3
}

// attach aplica o template. O alvo é relativo à posição da entidade.
func (f *cameraFollow) attach(tmpl *FPSCameraTemplate, cam Camera, data *sim.EntityData) {
	f.lastPosition = data.Position()
	f.lastRotation = data.Rotation()
	cam.SetAnchor(data.Position())
	cam.SetOffset(tmpl.AttachPoint)
	cam.SetTarget(data.Position().Add(tmpl.Target))
	cam.SetNearPlane(tmpl.NearPlane)
	cam.SetFarPlane(tmpl.FarPlane)
	log.Infof("Câmera presa à entidade %d: %v", data.ID(), tmpl)
}

// updatePosition desloca o alvo da câmera pelo mesmo delta da entidade.
func (f *cameraFollow) updatePosition(cam Camera, data *sim.EntityData) {
	displacement := data.Position().Sub(f.lastPosition)
	cam.SetTarget(cam.Target().Add(displacement))
	cam.SetAnchor(data.Position())
	f.lastPosition = data.Position()
}

// updateRotation gira o alvo em torno do eixo vertical que passa pela
// nova posição. Só o yaw (Z) é aplicado.
func (f *cameraFollow) updateRotation(cam Camera, data *sim.EntityData) {
	rotor := data.Rotation().Sub(f.lastRotation)
	cam.SetTarget(util.RotateXYBy(cam.Target(), rotor.Z(), data.Position()))
	f.lastRotation = data.Rotation()
}
