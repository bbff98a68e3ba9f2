package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Máscaras de tipo das entidades de demonstração.
const (
	WalkerKind  Kind = 1
	SceneryKind Kind = 2
)

type wanderer struct {
	id      ID
	heading float32 // graus em torno de Z
}

// Wanderers move agentes ao acaso dentro de um quadrado centrado na origem.
// Serve de demonstração para o servidor e para o modo local do cliente.
type Wanderers struct {
	world *World
	rng   *rand.Rand

	HalfSize float32 // metade do lado da arena
	Speed    float32 // unidades por segundo
	TurnRate float32 // giro máximo em graus por segundo

	agents []wanderer
}

// NewWanderers cria o controlador sobre w.
func NewWanderers(w *World, rng *rand.Rand) *Wanderers {
	return &Wanderers{
		world:    w,
		rng:      rng,
		HalfSize: 50,
		Speed:    4,
		TurnRate: 90,
	}
}

// Spawn cria n agentes em posições aleatórias e retorna seus ids.
func (ws *Wanderers) Spawn(n int, kind Kind, template string) []ID {
	ids := make([]ID, 0, n)
	for i := 0; i < n; i++ {
		pos := mgl32.Vec3{ws.uniform(), ws.uniform(), 0}
		h := ws.rng.Float32() * 360
		e := ws.world.Add(kind, template, pos, mgl32.Vec3{0, 0, h})
		e.SetLabel(fmt.Sprintf("agente %d", e.ID()))
		ws.agents = append(ws.agents, wanderer{id: e.ID(), heading: h})
		ids = append(ids, e.ID())
	}
	return ids
}

// Len retorna quantos agentes ainda existem no mundo.
func (ws *Wanderers) Len() int { return len(ws.agents) }

// Step avança todos os agentes dt segundos. Agentes removidos do mundo
// por fora são esquecidos.
func (ws *Wanderers) Step(dt float32) {
	alive := ws.agents[:0]
	for _, a := range ws.agents {
		e, ok := ws.world.Get(a.id)
		if !ok {
			continue
		}

		a.heading += (ws.rng.Float32()*2 - 1) * ws.TurnRate * dt
		rad := float64(a.heading) * math.Pi / 180
		dir := mgl32.Vec3{float32(math.Cos(rad)), float32(math.Sin(rad)), 0}
		p := e.Position().Add(dir.Mul(ws.Speed * dt))

		// Reflete nas paredes
		if p.X() > ws.HalfSize || p.X() < -ws.HalfSize {
			p[0] = mgl32.Clamp(p.X(), -ws.HalfSize, ws.HalfSize)
			a.heading = 180 - a.heading
		}
		if p.Y() > ws.HalfSize || p.Y() < -ws.HalfSize {
			p[1] = mgl32.Clamp(p.Y(), -ws.HalfSize, ws.HalfSize)
			a.heading = -a.heading
		}
		a.heading = normalizeDegrees(a.heading)

		e.SetPosition(p)
		e.SetRotation(mgl32.Vec3{0, 0, a.heading})
		alive = append(alive, a)
	}
	ws.agents = alive
}

func (ws *Wanderers) uniform() float32 {
	return (ws.rng.Float32()*2 - 1) * ws.HalfSize
}

func normalizeDegrees(d float32) float32 {
	d = float32(math.Mod(float64(d), 360))
	if d < 0 {
		d += 360
	}
	return d
}
