package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// BoundingBoxColor é a cor das caixas de debug.
var BoundingBoxColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}

// boxEdges são as 12 arestas da caixa: 4 de baixo, 4 de cima, 4 verticais.
var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{4, 0}, {5, 1}, {6, 2}, {7, 3},
}

// Segment é um segmento de linha no espaço do renderizador.
type Segment struct {
	From, To mgl32.Vec3
	Color    color.RGBA
}

// LineSet acumula segmentos de debug durante um frame.
// Quem desenha é responsável por chamar Clear depois.
type LineSet struct {
	segments []Segment
}

// NewLineSet cria um buffer vazio.
func NewLineSet() *LineSet {
	return &LineSet{segments: make([]Segment, 0, 256)}
}

// AddSegment enfileira um segmento.
func (l *LineSet) AddSegment(from, to mgl32.Vec3, c color.RGBA) {
	l.segments = append(l.segments, Segment{From: from, To: to, Color: c})
}

// AddBox enfileira as 12 arestas da caixa.
func (l *LineSet) AddBox(b Box, c color.RGBA) {
	corners := b.Corners()
	for _, e := range boxEdges {
		l.AddSegment(corners[e[0]], corners[e[1]], c)
	}
}

// Segments retorna os segmentos acumulados (não copiar enquanto outro frame escreve).
func (l *LineSet) Segments() []Segment {
	return l.segments
}

// Len retorna o número de segmentos.
func (l *LineSet) Len() int {
	return len(l.segments)
}

// Clear esvazia o buffer mantendo a capacidade.
func (l *LineSet) Clear() {
	l.segments = l.segments[:0]
}
