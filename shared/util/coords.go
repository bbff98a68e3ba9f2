package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Espaço da simulação: mão direita, plano X-Y horizontal, Z para cima.
// Espaço do renderizador: mão esquerda, plano X-Z horizontal, Y para cima.
// A troca Y<->Z cobre tanto o eixo vertical quanto a inversão de mão.

// SimToRenderPosition converte posição (ou escala) da simulação para o renderizador.
func SimToRenderPosition(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X(), v.Z(), v.Y()}
}

// RenderToSimPosition é a inversa de SimToRenderPosition.
func RenderToSimPosition(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X(), v.Z(), v.Y()}
}

// SimToRenderRotation converte ângulos de Euler (graus) da simulação para o renderizador.
// Com a troca de mão o sentido de rotação também inverte, por isso o sinal.
func SimToRenderRotation(r mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{-r.X(), -r.Z(), -r.Y()}
}

// RenderToSimRotation é a inversa de SimToRenderRotation.
func RenderToSimRotation(r mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{-r.X(), -r.Z(), -r.Y()}
}

// RotateXYBy gira v no plano X-Y em torno de center por deg graus (Z preservado).
func RotateXYBy(v mgl32.Vec3, deg float32, center mgl32.Vec3) mgl32.Vec3 {
	rad := float64(mgl32.DegToRad(deg))
	cs := float32(math.Cos(rad))
	sn := float32(math.Sin(rad))
	x := v.X() - center.X()
	y := v.Y() - center.Y()
	return mgl32.Vec3{
		x*cs - y*sn + center.X(),
		x*sn + y*cs + center.Y(),
		v.Z(),
	}
}

// MulComponents multiplica dois vetores componente a componente.
func MulComponents(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}
