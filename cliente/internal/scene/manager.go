package scene

import (
	"fmt"
	"math/rand"

	"NeroView/shared/sim"
	"NeroView/shared/util"

	"github.com/go-gl/mathgl/mgl32"
)

// Manager liga o mundo da simulação às instâncias visuais.
// Tudo roda na thread principal.
type Manager struct {
	world     *sim.World
	cache     *TemplateCache
	r         Renderer
	rng       *rand.Rand
	cameras   CameraProvider
	instances map[sim.ID]*Instance
}

// NewManager cria o gerenciador. Entidades criadas localmente recebem ids a
// partir de sim.LocalIDBase.
func NewManager(r Renderer, cache *TemplateCache, rng *rand.Rand) *Manager {
	if r == nil {
		panic("scene: Manager sem renderizador")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Manager{
		world:     sim.NewWorld(sim.LocalIDBase),
		cache:     cache,
		r:         r,
		rng:       rng,
		instances: make(map[sim.ID]*Instance),
	}
}

// SetCameraProvider define de onde vem a câmera ativa.
func (m *Manager) SetCameraProvider(p CameraProvider) {
	m.cameras = p
}

// World retorna o mundo da simulação.
func (m *Manager) World() *sim.World {
	return m.world
}

// Instance retorna a instância visual de uma entidade.
func (m *Manager) Instance(id sim.ID) (*Instance, bool) {
	inst, ok := m.instances[id]
	return inst, ok
}

// Len retorna o número de instâncias vivas.
func (m *Manager) Len() int {
	return len(m.instances)
}

// Spawn cria uma entidade local a partir de um template.
func (m *Manager) Spawn(template string, pos, rot mgl32.Vec3) (sim.ID, error) {
	return m.SpawnKind(0, template, pos, rot)
}

// SpawnKind cria uma entidade local com a máscara de tipo informada.
func (m *Manager) SpawnKind(kind sim.Kind, template string, pos, rot mgl32.Vec3) (sim.ID, error) {
	tmpl, err := m.cache.Acquire(template)
	if err != nil {
		return 0, err
	}

	data := m.world.Add(kind, template, pos, rot)
	if err := m.bind(data, tmpl); err != nil {
		m.world.Remove(data.ID())
		return 0, err
	}
	return data.ID(), nil
}

// Adopt registra uma entidade cujo id veio de fora (servidor). Se o template
// falhar, a entidade fica no mundo sem representação visual.
func (m *Manager) Adopt(id sim.ID, kind sim.Kind, template string, pos, rot mgl32.Vec3) (*sim.EntityData, error) {
	if err := CheckSceneID(id, kind); err != nil {
		return nil, fmt.Errorf("adotar entidade: %w", err)
	}
	data, err := m.world.AddWithID(id, kind, template, pos, rot)
	if err != nil {
		return nil, err
	}
	if template == "" {
		return data, nil
	}

	tmpl, err := m.cache.Acquire(template)
	if err != nil {
		log.Warnf("Entidade %d sem visual: %v", id, err)
		return data, nil
	}
	if err := m.bind(data, tmpl); err != nil {
		log.Warnf("Entidade %d sem visual: %v", id, err)
	}
	return data, nil
}

func (m *Manager) bind(data *sim.EntityData, tmpl *VisualTemplate) error {
	inst := NewInstance(data.ID(), tmpl, m.rng)
	if err := inst.Realize(m.r, data); err != nil {
		m.cache.Release(data.Template())
		return fmt.Errorf("realizar entidade %d: %w", data.ID(), err)
	}
	m.instances[data.ID()] = inst
	return nil
}

// Remove destrói a instância, libera o template e apaga a entidade.
func (m *Manager) Remove(id sim.ID) {
	data, ok := m.world.Get(id)
	if !ok {
		return
	}
	if inst, ok := m.instances[id]; ok {
		delete(m.instances, id)
		inst.Destroy(m)
		m.cache.Release(data.Template())
	}
	m.world.Remove(id)
}

// Tick sincroniza todas as instâncias em ordem crescente de id. Entidades
// removidas durante o tick (pegadas antigas) são puladas.
func (m *Manager) Tick(lines *LineSet) {
	f := Frame{Lines: lines, Spawner: m, Cameras: m.cameras}
	for _, id := range m.world.IDs() {
		inst, ok := m.instances[id]
		if !ok {
			continue
		}
		data, ok := m.world.Get(id)
		if !ok {
			continue
		}
		inst.ProcessTick(data, f)
	}
}

// Pick lança um raio (espaço da simulação) contra a cena e retorna a
// entidade atingida.
func (m *Manager) Pick(origin, dir mgl32.Vec3) (sim.ID, Hit, bool) {
	root := m.r.Root()
	if root == nil {
		return 0, Hit{}, false
	}
	sel := root.TriangleSelector()
	if sel == nil {
		return 0, Hit{}, false
	}
	hit, ok := sel.RayHit(util.SimToRenderPosition(origin), util.SimToRenderPosition(dir))
	if !ok {
		return 0, Hit{}, false
	}
	id, _ := UnpackSceneID(hit.NodeID)
	if _, alive := m.world.Get(id); !alive {
		return 0, Hit{}, false
	}
	hit.Point = util.RenderToSimPosition(hit.Point)
	return id, hit, true
}

// Close remove todas as entidades e libera os templates.
func (m *Manager) Close() {
	for _, id := range m.world.IDs() {
		m.Remove(id)
	}
	m.cache.Clear()
}
