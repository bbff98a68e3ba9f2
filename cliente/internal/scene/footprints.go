package scene

import (
	"math/rand"

	"NeroView/shared/sim"

	"github.com/go-gl/mathgl/mgl32"
)

// Spawner cria e remove entidades transitórias (pegadas).
type Spawner interface {
	Spawn(template string, pos, rot mgl32.Vec3) (sim.ID, error)
	Remove(id sim.ID)
}

// FootprintTrail deixa um rastro limitado de entidades atrás de um objeto.
// A fila vai da mais antiga para a mais nova e nunca passa de bound.
type FootprintTrail struct {
	tmpl    FootprintTemplate
	queue   []sim.ID
	counter uint32
	rng     *rand.Rand
}

// NewFootprintTrail cria o rastro. rng nil usa uma fonte com semente fixa.
func NewFootprintTrail(tmpl FootprintTemplate, rng *rand.Rand) *FootprintTrail {
	if tmpl.Frames == 0 {
		panic("scene: rastro de pegadas com cadência zero")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &FootprintTrail{tmpl: tmpl, rng: rng}
}

// Step avança o contador e, na cadência configurada, cria uma pegada na
// posição da entidade. Retorna true se disparou.
func (f *FootprintTrail) Step(data *sim.EntityData, spawner Spawner) bool {
	fire := f.counter%f.tmpl.Frames == 0
	f.counter++
	if !fire {
		return false
	}

	jitter := mgl32.Vec3{f.rng.Float32() - 0.5, f.rng.Float32() - 0.5, -1.5}
	id, err := spawner.Spawn(f.tmpl.Object, data.Position().Add(jitter), data.Rotation())
	if err != nil {
		log.Warnf("Pegada %s não foi criada: %v", f.tmpl.Object, err)
		return true
	}

	f.queue = append(f.queue, id)
	for uint32(len(f.queue)) > f.tmpl.Trail {
		oldest := f.queue[0]
		f.queue = f.queue[1:]
		spawner.Remove(oldest)
	}
	return true
}

// IDs retorna uma cópia da fila, da mais antiga para a mais nova.
func (f *FootprintTrail) IDs() []sim.ID {
	out := make([]sim.ID, len(f.queue))
	copy(out, f.queue)
	return out
}

// Len retorna o número de pegadas vivas.
func (f *FootprintTrail) Len() int {
	return len(f.queue)
}

// Clear remove todas as pegadas do rastro.
func (f *FootprintTrail) Clear(spawner Spawner) {
	for _, id := range f.queue {
		spawner.Remove(id)
	}
	f.queue = nil
}
