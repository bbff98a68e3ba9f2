package render

import (
	"NeroView/cliente/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

func toRL(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func fromRL(v rl.Vector3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// toRLMatrix copia uma Mat4 do mathgl para a raylib. As duas guardam por coluna,
// então M<i> corresponde a m[i].
func toRLMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M4: m[4], M8: m[8], M12: m[12],
		M1: m[1], M5: m[5], M9: m[9], M13: m[13],
		M2: m[2], M6: m[6], M10: m[10], M14: m[14],
		M3: m[3], M7: m[7], M11: m[11], M15: m[15],
	}
}

func boxFromRL(b rl.BoundingBox) scene.Box {
	return scene.Box{Min: fromRL(b.Min), Max: fromRL(b.Max)}
}

// transformBox leva os 8 cantos pela matriz e devolve a caixa alinhada que os contém.
func transformBox(b scene.Box, m mgl32.Mat4) scene.Box {
	corners := b.Corners()
	first := m.Mul4x1(corners[0].Vec4(1)).Vec3()
	out := scene.Box{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := m.Mul4x1(c.Vec4(1)).Vec3()
		for k := 0; k < 3; k++ {
			if p[k] < out.Min[k] {
				out.Min[k] = p[k]
			}
			if p[k] > out.Max[k] {
				out.Max[k] = p[k]
			}
		}
	}
	return out
}

// localTransform monta T * R * S; a rotação é em graus, aplicada em X, depois Y, depois Z.
func localTransform(pos, rot, scale mgl32.Vec3) mgl32.Mat4 {
	r := mgl32.HomogRotate3DZ(mgl32.DegToRad(rot[2])).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(rot[1]))).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(rot[0])))
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(r).Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}
