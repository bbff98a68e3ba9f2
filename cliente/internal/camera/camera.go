package camera

import (
	"math"

	"NeroView/cliente/internal/scene"
	"NeroView/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Planos de corte padrão da raylib, restaurados ao voltar para a órbita.
const (
	defaultNearPlane = 0.05
	defaultFarPlane  = 4000.0
)

// Projection define o tipo de projeção da órbita.
type Projection int

const (
	ProjectionPerspective Projection = iota
	ProjectionOrthographic
)

// CameraController gerencia a câmera da janela. No modo órbita gira em torno
// de um ponto com movimento suave; no modo primeira pessoa fica presa a uma
// entidade e implementa scene.Camera.
type CameraController struct {
	// Estado interno do Raylib
	RLCamera rl.Camera3D

	// Configurações
	Projection   Projection
	MinZoom      float32
	MaxZoom      float32
	MoveSpeed    float32
	RotateSpeed  float32
	ZoomSpeed    float32
	SmoothFactor float32 // 0.0 a 1.0 (quanto menor, mais suave/lento)

	// Estado alvo da órbita (renderizador, Y para cima)
	TargetLookAt rl.Vector3
	TargetZoom   float32
	TargetAngleY float32 // azimute (radianos)
	TargetAngleX float32 // elevação (radianos)

	// Estado atual (interpolado)
	CurrentLookAt rl.Vector3
	CurrentZoom   float32

	// Primeira pessoa (simulação, Z para cima)
	mode      scene.CameraMode
	anchor    mgl32.Vec3
	offset    mgl32.Vec3
	target    mgl32.Vec3
	nearPlane float32
	farPlane  float32
}

// New cria um novo controlador de câmera em modo órbita.
func New() *CameraController {
	c := &CameraController{
		Projection:   ProjectionPerspective,
		MinZoom:      5.0,
		MaxZoom:      400.0,
		MoveSpeed:    50.0,
		RotateSpeed:  2.0,
		ZoomSpeed:    10.0,
		SmoothFactor: 0.1,

		TargetZoom:   80.0,
		TargetAngleY: 45.0 * rl.Deg2rad,
		TargetAngleX: -30.0 * rl.Deg2rad,

		nearPlane: defaultNearPlane,
		farPlane:  defaultFarPlane,
	}

	c.CurrentLookAt = c.TargetLookAt
	c.CurrentZoom = c.TargetZoom

	c.RLCamera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}

	c.UpdateWait(1.0)
	return c
}

// SetLookAt centraliza a órbita em pos (renderizador) sem suavização.
func (c *CameraController) SetLookAt(pos rl.Vector3) {
	c.TargetLookAt = pos
	c.CurrentLookAt = pos
	c.UpdateWait(1.0)
}

// Update interpola a órbita ou reposiciona a câmera presa. Chamar a cada frame.
func (c *CameraController) Update(dt float32) {
	if c.mode == scene.ModeFirstPerson {
		c.updateFirstPerson()
		return
	}

	factor := c.SmoothFactor * 60.0 * dt // normaliza para 60 FPS
	if factor > 1.0 {
		factor = 1.0
	}

	cur := mgl32.Vec3{c.CurrentLookAt.X, c.CurrentLookAt.Y, c.CurrentLookAt.Z}
	tgt := mgl32.Vec3{c.TargetLookAt.X, c.TargetLookAt.Y, c.TargetLookAt.Z}
	lerped := util.LerpVec3(cur, tgt, factor)

	c.CurrentLookAt = rl.Vector3{X: lerped.X(), Y: lerped.Y(), Z: lerped.Z()}
	c.CurrentZoom = util.Lerp(c.CurrentZoom, c.TargetZoom, factor)

	c.UpdateWait(dt)
}

// UpdateWait recalcula a posição da órbita a partir dos ângulos e do zoom atuais.
func (c *CameraController) UpdateWait(dt float32) {
	dist := c.CurrentZoom

	// No ortográfico o zoom é o Fovy; a câmera fica longe para não cortar geometria.
	if c.Projection == ProjectionOrthographic {
		c.RLCamera.Fovy = c.CurrentZoom * 0.5
		c.RLCamera.Projection = rl.CameraOrthographic
		dist = 400.0
	} else {
		c.RLCamera.Fovy = 45.0
		c.RLCamera.Projection = rl.CameraPerspective
	}

	cosX := float32(math.Cos(float64(c.TargetAngleX)))
	sinX := float32(math.Sin(float64(c.TargetAngleX)))
	cosY := float32(math.Cos(float64(c.TargetAngleY)))
	sinY := float32(math.Sin(float64(c.TargetAngleY)))

	c.RLCamera.Position = rl.Vector3{
		X: c.CurrentLookAt.X + dist*cosX*sinY,
		Y: c.CurrentLookAt.Y + dist*-sinX, // sinX negativo: olhando de cima
		Z: c.CurrentLookAt.Z + dist*cosX*cosY,
	}
	c.RLCamera.Target = c.CurrentLookAt
}

// updateFirstPerson coloca o olho em anchor+offset olhando para target.
func (c *CameraController) updateFirstPerson() {
	eye := util.SimToRenderPosition(c.anchor.Add(c.offset))
	look := util.SimToRenderPosition(c.target)
	c.RLCamera.Position = rl.Vector3{X: eye.X(), Y: eye.Y(), Z: eye.Z()}
	c.RLCamera.Target = rl.Vector3{X: look.X(), Y: look.Y(), Z: look.Z()}
	c.RLCamera.Fovy = 45.0
	c.RLCamera.Projection = rl.CameraPerspective
}

// SetProjection alterna entre perspectiva e ortográfica na órbita.
func (c *CameraController) SetProjection(p Projection) {
	c.Projection = p
	c.UpdateWait(0)
}

// ClipPlanes retorna os planos de corte do modo atual.
func (c *CameraController) ClipPlanes() (near, far float32) {
	if c.mode == scene.ModeFirstPerson {
		return c.nearPlane, c.farPlane
	}
	return defaultNearPlane, defaultFarPlane
}

// ApplyClipPlanes envia os planos de corte para a raylib. Chamar antes de BeginMode3D.
func (c *CameraController) ApplyClipPlanes() {
	near, far := c.ClipPlanes()
	rl.SetClipPlanes(float64(near), float64(far))
}

// scene.Camera

func (c *CameraController) SupportsFirstPerson() bool   { return true }
func (c *CameraController) Mode() scene.CameraMode      { return c.mode }
func (c *CameraController) SetAnchor(p mgl32.Vec3)      { c.anchor = p }
func (c *CameraController) SetOffset(o mgl32.Vec3)      { c.offset = o }
func (c *CameraController) Target() mgl32.Vec3          { return c.target }
func (c *CameraController) SetTarget(t mgl32.Vec3)      { c.target = t }
func (c *CameraController) SetNearPlane(d float32)      { c.nearPlane = d }
func (c *CameraController) SetFarPlane(d float32)       { c.farPlane = d }
func (c *CameraController) ActiveCamera() scene.Camera { return c }

// SetMode troca o modo. Ao voltar para a órbita, ela se centraliza onde a
// câmera presa estava.
func (c *CameraController) SetMode(m scene.CameraMode) {
	if c.mode == m {
		return
	}
	c.mode = m
	if m == scene.ModeOrbit {
		look := util.SimToRenderPosition(c.anchor)
		c.SetLookAt(rl.Vector3{X: look.X(), Y: look.Y(), Z: look.Z()})
		return
	}
	c.updateFirstPerson()
}

// HandleInput processa entrada do usuário. Retorna true se houve movimento.
// No modo primeira pessoa a entidade comanda a câmera e o input é ignorado.
func (c *CameraController) HandleInput(dt float32) bool {
	if c.mode == scene.ModeFirstPerson {
		return false
	}

	moved := false
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		moved = true
		c.TargetZoom = util.Clamp(c.TargetZoom-wheel*c.ZoomSpeed, c.MinZoom, c.MaxZoom)
	}

	// Órbita com o botão direito (o esquerdo seleciona)
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			moved = true
		}
		c.TargetAngleY -= delta.X * c.RotateSpeed * 0.005
		c.TargetAngleX -= delta.Y * c.RotateSpeed * 0.005
		c.TargetAngleX = util.Clamp(c.TargetAngleX, -89.0*rl.Deg2rad, -5.0*rl.Deg2rad)
	}

	// WASD relativo à câmera, projetado no chão (XZ)
	camPos := mgl32.Vec3{c.RLCamera.Position.X, c.RLCamera.Position.Y, c.RLCamera.Position.Z}
	targetPos := mgl32.Vec3{c.TargetLookAt.X, c.TargetLookAt.Y, c.TargetLookAt.Z}

	forward := targetPos.Sub(camPos)
	forward[1] = 0
	if forward.Len() == 0 {
		return moved
	}
	forward = forward.Normalize()
	right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()

	// Quanto mais longe, mais rápido
	speed := c.MoveSpeed * (c.CurrentZoom / 50.0) * dt

	move := mgl32.Vec3{}
	if rl.IsKeyDown(rl.KeyW) {
		move = move.Add(forward)
	}
	if rl.IsKeyDown(rl.KeyS) {
		move = move.Sub(forward)
	}
	if rl.IsKeyDown(rl.KeyD) {
		move = move.Add(right)
	}
	if rl.IsKeyDown(rl.KeyA) {
		move = move.Sub(right)
	}

	if move.Len() > 0 {
		targetPos = targetPos.Add(move.Normalize().Mul(speed))
		c.TargetLookAt = rl.Vector3{X: targetPos.X(), Y: targetPos.Y(), Z: targetPos.Z()}
		moved = true
	}
	return moved
}
