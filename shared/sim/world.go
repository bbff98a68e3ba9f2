package sim

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// LocalIDBase é o primeiro id usado por entidades criadas no próprio cliente
// (pegadas, efeitos). Ids abaixo disso pertencem ao servidor.
const LocalIDBase ID = 1 << 20

// World é o registro de entidades. Não é thread-safe: vive na thread de simulação.
type World struct {
	entities map[ID]*EntityData
	nextID   ID
}

// NewWorld cria um mundo vazio que aloca ids a partir de firstID.
func NewWorld(firstID ID) *World {
	if firstID == 0 {
		firstID = 1
	}
	return &World{
		entities: make(map[ID]*EntityData),
		nextID:   firstID,
	}
}

// Add cria uma entidade com o próximo id livre.
func (w *World) Add(kind Kind, template string, pos, rot mgl32.Vec3) *EntityData {
	for w.entities[w.nextID] != nil {
		w.nextID++
	}
	e := NewEntityData(w.nextID, kind, template, pos, rot)
	w.entities[e.id] = e
	w.nextID++
	return e
}

// AddWithID cria uma entidade com id imposto de fora (rede).
func (w *World) AddWithID(id ID, kind Kind, template string, pos, rot mgl32.Vec3) (*EntityData, error) {
	if id == 0 {
		return nil, fmt.Errorf("id 0 é reservado")
	}
	if _, ok := w.entities[id]; ok {
		return nil, fmt.Errorf("entidade %d já existe", id)
	}
	e := NewEntityData(id, kind, template, pos, rot)
	w.entities[id] = e
	return e, nil
}

// Get busca uma entidade pelo id.
func (w *World) Get(id ID) (*EntityData, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// Remove apaga a entidade. Retorna false se ela não existia.
func (w *World) Remove(id ID) bool {
	if _, ok := w.entities[id]; !ok {
		return false
	}
	delete(w.entities, id)
	return true
}

// Len retorna o número de entidades vivas.
func (w *World) Len() int {
	return len(w.entities)
}

// IDs retorna os ids vivos em ordem crescente (iteração determinística).
func (w *World) IDs() []ID {
	ids := make([]ID, 0, len(w.entities))
	for id := range w.entities {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
