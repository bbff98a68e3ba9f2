package render

import (
	"fmt"
	"image/color"
	"math/rand"

	"NeroView/shared/propmap"
	"NeroView/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// ParticleDescriptor descreve um emissor. Vetores no arquivo estão no
// espaço da simulação (Z para cima) e são convertidos na leitura.
type ParticleDescriptor struct {
	Rate         float32 // partículas por segundo
	MaxParticles int
	Lifetime     float32 // segundos
	Direction    mgl32.Vec3
	Spread       float32
	Speed        float32
	Size         float32
	Gravity      mgl32.Vec3
	StartColor   color.RGBA
	EndColor     color.RGBA
}

func defaultParticleDescriptor() ParticleDescriptor {
	return ParticleDescriptor{
		Rate:         20,
		MaxParticles: 200,
		Lifetime:     2,
		Direction:    mgl32.Vec3{0, 1, 0},
		Spread:       0.3,
		Speed:        2,
		Size:         0.3,
		StartColor:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		EndColor:     color.RGBA{R: 255, G: 255, B: 255, A: 0},
	}
}

// ParseParticleDescriptor lê a seção ParticleSystem. Chaves ausentes ficam no padrão.
func ParseParticleDescriptor(pm *propmap.PropertyMap) (ParticleDescriptor, error) {
	const sec = "ParticleSystem"
	if !pm.HasSection(sec) {
		return ParticleDescriptor{}, fmt.Errorf("descritor sem seção %s", sec)
	}
	d := defaultParticleDescriptor()
	if v, ok := pm.GetFloat32(sec + ".Rate"); ok {
		d.Rate = v
	}
	if v, ok := pm.GetUint32(sec + ".MaxParticles"); ok {
		d.MaxParticles = int(v)
	}
	if v, ok := pm.GetFloat32(sec + ".Lifetime"); ok {
		d.Lifetime = v
	}
	if v, ok := pm.GetVec3(sec + ".Direction"); ok {
		d.Direction = util.SimToRenderPosition(v)
	}
	if v, ok := pm.GetFloat32(sec + ".Spread"); ok {
		d.Spread = v
	}
	if v, ok := pm.GetFloat32(sec + ".Speed"); ok {
		d.Speed = v
	}
	if v, ok := pm.GetFloat32(sec + ".Size"); ok {
		d.Size = v
	}
	if v, ok := pm.GetVec3(sec + ".Gravity"); ok {
		d.Gravity = util.SimToRenderPosition(v)
	}
	if c, ok := parseColor(pm, sec+".StartColor", sec+".StartAlpha"); ok {
		d.StartColor = c
	}
	if c, ok := parseColor(pm, sec+".EndColor", sec+".EndAlpha"); ok {
		d.EndColor = c
	}
	if d.Lifetime <= 0 {
		return d, fmt.Errorf("Lifetime deve ser positivo, recebido %v", d.Lifetime)
	}
	return d, nil
}

func parseColor(pm *propmap.PropertyMap, rgbKey, alphaKey string) (color.RGBA, bool) {
	rgb, ok := pm.GetVec3(rgbKey)
	if !ok {
		return color.RGBA{}, false
	}
	c := color.RGBA{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2]), A: 255}
	if a, ok := pm.GetFloat32(alphaKey); ok {
		c.A = uint8(a)
	}
	return c, true
}

type particle struct {
	pos, vel mgl32.Vec3
	age      float32
}

// particleNode emite partículas a partir da origem do nó.
type particleNode struct {
	node
	desc      ParticleDescriptor
	particles []particle
	pending   float32
	rng       *rand.Rand
}

func newParticleNode(desc ParticleDescriptor, rng *rand.Rand) *particleNode {
	n := &particleNode{desc: desc, rng: rng}
	n.node = newNode(n)
	n.particles = make([]particle, 0, desc.MaxParticles)
	h := desc.Size / 2
	n.box.Min = mgl32.Vec3{-h, -h, -h}
	n.box.Max = mgl32.Vec3{h, h, h}
	return n
}

// Count retorna quantas partículas estão vivas.
func (n *particleNode) Count() int { return len(n.particles) }

func (n *particleNode) update(dt float32) {
	alive := n.particles[:0]
	for _, p := range n.particles {
		p.age += dt
		if p.age >= n.desc.Lifetime {
			continue
		}
		p.vel = p.vel.Add(n.desc.Gravity.Mul(dt))
		p.pos = p.pos.Add(p.vel.Mul(dt))
		alive = append(alive, p)
	}
	n.particles = alive

	n.pending += n.desc.Rate * dt
	origin := n.AbsoluteTransform().Col(3).Vec3()
	for n.pending >= 1 {
		n.pending--
		if len(n.particles) >= n.desc.MaxParticles {
			continue
		}
		n.particles = append(n.particles, particle{pos: origin, vel: n.emitVelocity()})
	}
}

func (n *particleNode) emitVelocity() mgl32.Vec3 {
	jitter := mgl32.Vec3{
		(n.rng.Float32()*2 - 1) * n.desc.Spread,
		(n.rng.Float32()*2 - 1) * n.desc.Spread,
		(n.rng.Float32()*2 - 1) * n.desc.Spread,
	}
	dir := n.desc.Direction.Add(jitter)
	if dir.Len() == 0 {
		return mgl32.Vec3{}
	}
	return dir.Normalize().Mul(n.desc.Speed)
}

func (n *particleNode) colorAt(age float32) color.RGBA {
	t := age / n.desc.Lifetime
	lerp := func(a, b uint8) uint8 {
		return uint8(util.Lerp(float32(a), float32(b), t))
	}
	s, e := n.desc.StartColor, n.desc.EndColor
	return color.RGBA{R: lerp(s.R, e.R), G: lerp(s.G, e.G), B: lerp(s.B, e.B), A: lerp(s.A, e.A)}
}

func (n *particleNode) draw(r *Renderer) {
	tex, hasTex := r.texture(n.textures[0])
	rl.BeginBlendMode(rl.BlendAdditive)
	for _, p := range n.particles {
		c := n.colorAt(p.age)
		if hasTex {
			rl.DrawBillboard(r.camera, tex, toRL(p.pos), n.desc.Size, c)
		} else {
			rl.DrawCube(toRL(p.pos), n.desc.Size, n.desc.Size, n.desc.Size, c)
		}
	}
	rl.EndBlendMode()
}
