package scene

import "strings"

// MD2Animation são as animações padrão do formato MD2.
type MD2Animation int

const (
	AnimStand MD2Animation = iota
	AnimRun
	AnimAttack
	AnimPainA
	AnimPainB
	AnimPainC
	AnimJump
	AnimFlip
	AnimSalute
	AnimFallback
	AnimWave
	AnimPoint
	AnimCrouchStand
	AnimCrouchWalk
	AnimCrouchAttack
	AnimCrouchPain
	AnimCrouchDeath
	AnimDeathFallback
	AnimDeathFallforward
	AnimDeathFallbackSlow
	AnimBoom
)

var md2Names = []string{
	"stand", "run", "attack", "pain_a", "pain_b", "pain_c", "jump", "flip",
	"salute", "fallback", "wave", "point", "crouch_stand", "crouch_walk",
	"crouch_attack", "crouch_pain", "crouch_death", "death_fallback",
	"death_fallforward", "death_fallbackslow", "boom",
}

var md2Table = func() map[string]MD2Animation {
	m := make(map[string]MD2Animation, len(md2Names))
	for i, n := range md2Names {
		m[n] = MD2Animation(i)
	}
	return m
}()

// ParseMD2Animation aceita o nome em qualquer caixa.
func ParseMD2Animation(name string) (MD2Animation, bool) {
	a, ok := md2Table[strings.ToLower(name)]
	return a, ok
}

func (a MD2Animation) String() string {
	if a < 0 || int(a) >= len(md2Names) {
		return "unknown"
	}
	return md2Names[a]
}
