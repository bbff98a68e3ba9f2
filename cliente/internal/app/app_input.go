package app

import (
	"NeroView/cliente/internal/camera"
	"NeroView/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// updateCamera processa o input da câmera e interpola.
func (a *App) updateCamera(dt float32) {
	a.Cam.HandleInput(dt)
	a.Cam.Update(dt)

	// Alternar projeção com P
	if rl.IsKeyPressed(rl.KeyP) {
		if a.Cam.Projection == camera.ProjectionPerspective {
			a.Cam.SetProjection(camera.ProjectionOrthographic)
			log.Info("Câmera ortográfica")
		} else {
			a.Cam.SetProjection(camera.ProjectionPerspective)
			log.Info("Câmera em perspectiva")
		}
	}
}

// updateInput processa entradas de teclado e mouse gerais.
func (a *App) updateInput() {
	if rl.IsKeyPressed(rl.KeyF3) {
		a.Config.ShowDebugInfo = !a.Config.ShowDebugInfo
	}
	if rl.IsKeyPressed(rl.KeyG) {
		a.Config.ShowGrid = !a.Config.ShowGrid
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// ESC: alternar pausa
	if rl.IsKeyPressed(rl.KeyEscape) {
		switch a.State {
		case StateViewing:
			a.State = StatePaused
			log.Info("Pausado")
		case StatePaused:
			a.State = StateViewing
			log.Info("Retomando")
		}
	}

	if a.State != StateViewing {
		return
	}

	// Selecionar com clique esquerdo
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), a.Cam.RLCamera)
		origin := util.RenderToSimPosition(mgl32.Vec3{ray.Position.X, ray.Position.Y, ray.Position.Z})
		dir := util.RenderToSimPosition(mgl32.Vec3{ray.Direction.X, ray.Direction.Y, ray.Direction.Z})
		a.selectAt(origin, dir)
	}

	// F: prender/soltar a câmera em primeira pessoa
	if rl.IsKeyPressed(rl.KeyF) {
		a.toggleFollow()
	}

	// Remover a entidade selecionada (só no mundo local)
	if rl.IsKeyPressed(rl.KeyDelete) && a.hasSelected && a.local != nil {
		if a.local.Remove(a.selected) {
			log.Infof("Entidade %d removida", a.selected)
		}
		a.clearSelection()
	}
}
