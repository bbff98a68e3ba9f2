package render

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// terrainHeight é a altura de um pixel branco do heightmap.
const terrainHeight = 255.0

// terrainNode é uma malha gerada a partir de um heightmap em escala de cinza.
// Um pixel do mapa vira uma unidade no chão.
type terrainNode struct {
	node
	model    rl.Model
	texScale mgl32.Vec2
}

func loadTerrain(path string) (*terrainNode, error) {
	img := rl.LoadImage(path)
	if img == nil || img.Data == nil || img.Width == 0 {
		return nil, fmt.Errorf("heightmap %s não carregou", path)
	}
	size := rl.Vector3{X: float32(img.Width), Y: terrainHeight, Z: float32(img.Height)}
	mesh := rl.GenMeshHeightmap(*img, size)
	rl.UnloadImage(img)

	n := &terrainNode{texScale: mgl32.Vec2{1, 1}}
	n.node = newNode(n)
	n.model = rl.LoadModelFromMesh(mesh)
	n.box = boxFromRL(rl.GetModelBoundingBox(n.model))
	n.release = func() { rl.UnloadModel(n.model) }
	return n, nil
}

// ScaleTexture repete a textura u vezes em X e v vezes em Z.
func (n *terrainNode) ScaleTexture(u, v float32) {
	n.texScale = mgl32.Vec2{u, v}
}

func (n *terrainNode) update(float32) {}

func (n *terrainNode) draw(r *Renderer) {
	n.model.Transform = toRLMatrix(n.AbsoluteTransform())
	r.bindMaterials(n.model, &n.node, n.texScale)
	r.drawModel(n.model, &n.node, rl.White)
}
