package scene

import (
	"fmt"
	"math"

	"NeroView/shared/sim"
)

// BitmaskSize é a largura dos bits baixos reservados para o Kind no id do nó.
const BitmaskSize = 4

const kindMask = 1<<BitmaskSize - 1

// MaxSceneEntityID é o maior id de entidade que cabe no id do nó de cena.
const MaxSceneEntityID sim.ID = math.MaxUint32 >> BitmaskSize

// PackSceneID combina id da entidade e Kind no id do nó de cena.
// Id e Kind precisam caber nos bits reservados, senão o id não seria reversível.
func PackSceneID(id sim.ID, kind sim.Kind) uint32 {
	if err := CheckSceneID(id, kind); err != nil {
		panic("scene: " + err.Error())
	}
	return uint32(id)<<BitmaskSize | uint32(kind)
}

// CheckSceneID diz se o par pode ser empacotado. Entradas vindas da rede
// passam por aqui antes de chegar em PackSceneID.
func CheckSceneID(id sim.ID, kind sim.Kind) error {
	if kind > kindMask {
		return fmt.Errorf("kind %d não cabe em %d bits", kind, BitmaskSize)
	}
	if id > MaxSceneEntityID {
		return fmt.Errorf("id %d não cabe em %d bits", id, 32-BitmaskSize)
	}
	return nil
}

// UnpackSceneID é a inversa de PackSceneID.
func UnpackSceneID(sceneID uint32) (sim.ID, sim.Kind) {
	return sim.ID(sceneID >> BitmaskSize), sim.Kind(sceneID & kindMask)
}
