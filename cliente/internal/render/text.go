package render

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

const labelFontSize = 16

// textNode é um rótulo em tela que segue um ponto do mundo.
type textNode struct {
	r      *Renderer
	text   string
	color  color.RGBA
	parent *node
	offset mgl32.Vec3
}

func (t *textNode) SetText(text string) { t.text = text }

// Remove tira o rótulo da lista de desenho.
func (t *textNode) Remove() {
	r := t.r
	for i, other := range r.texts {
		if other == t {
			r.texts = append(r.texts[:i], r.texts[i+1:]...)
			return
		}
	}
}

// anchor é a posição no mundo onde o rótulo é centralizado.
func (t *textNode) anchor() mgl32.Vec3 {
	if t.parent == nil {
		return t.offset
	}
	return t.parent.AbsoluteTransform().Col(3).Vec3().Add(t.offset)
}

func (t *textNode) draw(cam rl.Camera3D) {
	if t.text == "" {
		return
	}
	screen := rl.GetWorldToScreen(toRL(t.anchor()), cam)
	w := rl.MeasureText(t.text, labelFontSize)
	rl.DrawText(t.text, int32(screen.X)-w/2, int32(screen.Y), labelFontSize, t.color)
}
