package app

import (
	"math/rand"
	"time"

	"NeroView/shared/netsync"
	"NeroView/shared/sim"

	"github.com/go-gl/mathgl/mgl32"
)

// localSim roda a mesma simulação do servidor dentro do cliente quando não
// há ServerURL. Os frames passam pelo mesmo caminho de netsync.Apply.
type localSim struct {
	world   *sim.World
	walkers *sim.Wanderers
	step    float32
	acc     float32
	tick    uint64
	removed []sim.ID
}

func newLocalSim(tickRate float32, walkers int, template, scenery string, rng *rand.Rand) *localSim {
	if tickRate <= 0 {
		tickRate = 20
	}
	l := &localSim{
		world: sim.NewWorld(1),
		step:  1 / tickRate,
	}
	if scenery != "" {
		l.world.Add(sim.SceneryKind, scenery, mgl32.Vec3{}, mgl32.Vec3{})
	}
	l.walkers = sim.NewWanderers(l.world, rng)
	l.walkers.Spawn(walkers, sim.WalkerKind, template)
	return l
}

// Advance acumula dt e devolve um frame por tick completo.
func (l *localSim) Advance(dt float32) []netsync.Frame {
	l.acc += dt
	var frames []netsync.Frame
	for l.acc >= l.step {
		l.acc -= l.step
		l.walkers.Step(l.step)
		l.tick++
		frames = append(frames, netsync.Collect(l.world, l.tick, l.removed))
		l.removed = l.removed[:0]
	}
	return frames
}

// Remove apaga um agente; a remoção segue no próximo frame.
func (l *localSim) Remove(id sim.ID) bool {
	if !l.world.Remove(id) {
		return false
	}
	l.removed = append(l.removed, id)
	return true
}

// startLocal cria o mundo de demonstração.
func (a *App) startLocal() {
	a.local = newLocalSim(a.Config.TickRate, a.Config.Walkers, a.Config.WalkerTemplate, a.Config.Scenery,
		rand.New(rand.NewSource(time.Now().UnixNano())))
	a.setStatus("Mundo local")
	a.State = StateViewing
	log.Infof("Mundo local com %d agentes (%s)", a.Config.Walkers, a.Config.WalkerTemplate)
}

// updateSimulation aplica os frames do mundo local ou da rede.
func (a *App) updateSimulation(dt float32) {
	if a.local != nil {
		for _, f := range a.local.Advance(dt) {
			a.applyFrame(&f)
		}
		return
	}
	a.applyNetwork()
}

func (a *App) applyNetwork() {
	c := a.client()
	if c == nil {
		return
	}
	for _, f := range c.Drain() {
		a.applyFrame(&f)
		if a.State == StateConnecting {
			a.State = StateViewing
		}
	}
}

func (a *App) applyFrame(f *netsync.Frame) {
	netsync.Apply(f, a.scene)
	a.lastTick = f.Tick

	if a.hasSelected {
		if _, ok := a.scene.World().Get(a.selected); !ok {
			a.clearSelection()
		}
	}
}

// selectAt seleciona a entidade sob o raio (espaço da simulação).
func (a *App) selectAt(origin, dir mgl32.Vec3) {
	id, hit, ok := a.scene.Pick(origin, dir)
	if !ok {
		a.clearSelection()
		return
	}
	a.selected, a.hasSelected = id, true
	log.Debugf("Entidade %d selecionada em %v (distância %.1f)", id, hit.Point, hit.Distance)
}

func (a *App) clearSelection() {
	a.selected, a.hasSelected = 0, false
}

// toggleFollow prende a câmera na entidade selecionada ou solta se já estiver presa.
func (a *App) toggleFollow() {
	for _, id := range a.scene.World().IDs() {
		if inst, ok := a.scene.Instance(id); ok && inst.Camera() != nil {
			inst.DetachCamera()
			log.Infof("Câmera solta da entidade %d", id)
			return
		}
	}

	if !a.hasSelected {
		// Sem seleção: a próxima entidade com câmera FPS assume
		a.gate.open = true
		return
	}
	inst, ok := a.scene.Instance(a.selected)
	if !ok || inst.Template().FPSCamera == nil {
		log.Warnf("Entidade %d não tem câmera em primeira pessoa", a.selected)
		return
	}
	data, _ := a.scene.World().Get(a.selected)
	inst.AttachCamera(a.Cam, data)
}

func (a *App) setStatus(s string) {
	a.statusMu.Lock()
	a.statusText = s
	a.statusMu.Unlock()
}

func (a *App) status() (string, netsync.Status) {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	return a.statusText, a.serverStatus
}
