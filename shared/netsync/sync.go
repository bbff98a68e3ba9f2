package netsync

import (
	"NeroView/shared/logger"
	"NeroView/shared/sim"

	"github.com/go-gl/mathgl/mgl32"
)

var log = logger.For("net")

func updateFrom(e *sim.EntityData, dirty sim.DirtyBits) EntityUpdate {
	return EntityUpdate{
		ID:       e.ID(),
		Kind:     e.Kind(),
		Dirty:    dirty,
		Position: e.Position(),
		Rotation: e.Rotation(),
		Scale:    e.Scale(),
		Label:    e.Label(),
		Color:    e.Color(),
		Template: e.Template(),
	}
}

// Collect monta o frame com os campos sujos de cada entidade e limpa as marcas.
// No servidor não há cena, então a rede é a única consumidora dos bits.
// removed lista entidades apagadas desde o último frame.
func Collect(w *sim.World, tick uint64, removed []sim.ID) Frame {
	f := Frame{Tick: tick}
	for _, id := range w.IDs() {
		e, _ := w.Get(id)
		if e.Dirty() == sim.DirtyNone {
			continue
		}
		f.Updates = append(f.Updates, updateFrom(e, e.Dirty()))
		e.ClearDirty()
	}
	for _, id := range removed {
		f.Updates = append(f.Updates, EntityUpdate{ID: id, Removed: true})
	}
	return f
}

// Snapshot monta um frame completo sem tocar nos bits sujos. Enviado a
// clientes recém-conectados.
func Snapshot(w *sim.World, tick uint64) Frame {
	f := Frame{Tick: tick}
	for _, id := range w.IDs() {
		e, _ := w.Get(id)
		f.Updates = append(f.Updates, updateFrom(e, sim.DirtyAll))
	}
	return f
}

// Target é o lado do cliente que recebe as atualizações (scene.Manager).
type Target interface {
	World() *sim.World
	Adopt(id sim.ID, kind sim.Kind, template string, pos, rot mgl32.Vec3) (*sim.EntityData, error)
	Remove(id sim.ID)
}

// Apply aplica o frame: adota entidades desconhecidas, copia os campos
// marcados e remove as apagadas. Roda na thread principal.
func Apply(f *Frame, t Target) {
	for i := range f.Updates {
		u := &f.Updates[i]
		if u.Removed {
			t.Remove(u.ID)
			continue
		}

		e, ok := t.World().Get(u.ID)
		if !ok {
			var err error
			e, err = t.Adopt(u.ID, u.Kind, u.Template, u.Position, u.Rotation)
			if err != nil {
				log.Warnf("Entidade %d ignorada: %v", u.ID, err)
				continue
			}
		}

		if u.Dirty&sim.DirtyPosition != 0 {
			e.SetPosition(u.Position)
		}
		if u.Dirty&sim.DirtyRotation != 0 {
			e.SetRotation(u.Rotation)
		}
		if u.Dirty&sim.DirtyScale != 0 {
			e.SetScale(u.Scale)
		}
		if u.Dirty&sim.DirtyLabel != 0 {
			e.SetLabel(u.Label)
		}
		if u.Dirty&sim.DirtyColor != 0 {
			e.SetColor(u.Color)
		}
	}
}
