package app

import (
	"fmt"
	"image/color"

	"NeroView/cliente/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var selectionColor = color.RGBA{R: 255, G: 215, B: 0, A: 255}

// draw renderiza a cena.
func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(30, 30, 40, 255))

	if a.State == StateConnecting {
		a.drawConnectingScreen()
	} else {
		a.drawScene()
		a.drawHUD()
		a.drawSelectionInfo()

		if a.State == StatePaused {
			a.drawPauseMenu()
		}
	}

	rl.EndDrawing()
}

// drawScene renderiza a cena 3D e os rótulos por cima.
func (a *App) drawScene() {
	a.Cam.ApplyClipPlanes()
	rl.BeginMode3D(a.Cam.RLCamera)

	if a.Config.ShowGrid {
		rl.DrawGrid(40, 5)
	}

	a.renderer.Draw(a.Cam.RLCamera)

	// Destaque da seleção entra no mesmo lote das caixas de debug
	if inst, ok := a.selectedInstance(); ok && inst.Node() != nil {
		a.lines.AddBox(inst.Node().TransformedBoundingBox(), selectionColor)
	}
	a.renderer.DrawLines(a.lines)

	rl.EndMode3D()

	a.renderer.DrawTexts(a.Cam.RLCamera)
}

func (a *App) selectedInstance() (*scene.Instance, bool) {
	if !a.hasSelected {
		return nil, false
	}
	return a.scene.Instance(a.selected)
}

// drawHUD desenha o painel de debug.
func (a *App) drawHUD() {
	if !a.Config.ShowDebugInfo {
		return
	}

	width := int32(320)
	height := int32(190)
	x := int32(rl.GetScreenWidth()) - width - 10
	y := int32(10)

	rl.DrawRectangle(x, y, width, height, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(x, y, width, height, rl.NewColor(50, 50, 50, 255))

	// FPS
	fps := rl.GetFPS()
	fpsColor := rl.Green
	if fps < 30 {
		fpsColor = rl.Red
	} else if fps < 50 {
		fpsColor = rl.Yellow
	}
	rl.DrawText(fmt.Sprintf("FPS: %d", fps), x+10, y+10, 20, fpsColor)

	mode := "Local"
	if a.local == nil {
		mode = "Offline"
		if c := a.client(); c != nil && c.IsConnected() {
			mode = "Conectado"
		}
	}
	rl.DrawText(mode, x+200, y+10, 20, rl.SkyBlue)

	rl.DrawLine(x+10, y+35, x+width-10, y+35, rl.NewColor(100, 100, 100, 100))

	text, srv := a.status()
	rl.DrawText("CENA", x+10, y+45, 12, rl.Gray)
	rl.DrawText(fmt.Sprintf("Entidades: %d  Instâncias: %d", a.scene.World().Len(), a.scene.Len()), x+10, y+60, 16, rl.White)
	rl.DrawText(fmt.Sprintf("Nós: %d  Tick: %d", a.renderer.NodeCount(), a.lastTick), x+10, y+80, 14, rl.LightGray)
	rl.DrawText(text, x+10, y+98, 14, rl.LightGray)
	if srv.TickRate > 0 {
		rl.DrawText(fmt.Sprintf("Servidor: %d entidades a %.0f ticks/s", srv.Entities, srv.TickRate), x+10, y+114, 14, rl.LightGray)
	}

	rl.DrawLine(x+10, y+135, x+width-10, y+135, rl.NewColor(100, 100, 100, 100))

	rl.DrawText("CONTROLES", x+10, y+143, 12, rl.Gray)
	rl.DrawText("Clique: Selecionar | F: Câmera | WASD: Mover", x+10, y+158, 14, rl.LightGray)
	rl.DrawText("P: Projeção | G: Grade | F3: HUD | F11: Tela", x+10, y+173, 14, rl.SkyBlue)

	title := "NeroView"
	titleWidth := rl.MeasureText(title, 18)
	rl.DrawText(title,
		int32(rl.GetScreenWidth())-titleWidth-20, int32(rl.GetScreenHeight())-30,
		18, rl.NewColor(200, 200, 200, 150))
}

// drawSelectionInfo mostra o painel da entidade selecionada.
func (a *App) drawSelectionInfo() {
	if !a.hasSelected {
		return
	}
	data, ok := a.scene.World().Get(a.selected)
	if !ok {
		return
	}

	width := int32(280)
	height := int32(130)
	x := int32(10)
	y := int32(10)

	rl.DrawRectangle(x, y, width, height, rl.NewColor(0, 0, 0, 200))
	rl.DrawRectangleLines(x, y, width, height, rl.NewColor(255, 215, 0, 255))

	title := fmt.Sprintf("ENTIDADE %d", data.ID())
	if data.Label() != "" {
		title = data.Label()
	}
	rl.DrawText(title, x+15, y+15, 18, rl.Gold)
	rl.DrawLine(x+15, y+40, x+width-15, y+40, rl.NewColor(100, 100, 100, 255))

	p := data.Position()
	rl.DrawText(fmt.Sprintf("Posição: %.1f %.1f %.1f", p.X(), p.Y(), p.Z()), x+15, y+50, 16, rl.White)
	rl.DrawText(fmt.Sprintf("Rumo: %.0f°", data.Rotation().Z()), x+15, y+70, 16, rl.LightGray)
	rl.DrawText(data.Template(), x+15, y+90, 14, rl.LightGray)

	if inst, ok := a.scene.Instance(a.selected); ok && inst.Camera() != nil {
		rl.DrawText("[PRIMEIRA PESSOA]", x+15, y+108, 14, rl.SkyBlue)
	}
}

// drawPauseMenu desenha o menu de pausa centralizado.
func (a *App) drawPauseMenu() {
	screenWidth := int32(rl.GetScreenWidth())
	screenHeight := int32(rl.GetScreenHeight())

	rl.DrawRectangle(0, 0, screenWidth, screenHeight, rl.NewColor(0, 0, 0, 150))

	panelWidth := int32(400)
	panelHeight := int32(200)
	panelX := (screenWidth - panelWidth) / 2
	panelY := (screenHeight - panelHeight) / 2

	rl.DrawRectangle(panelX, panelY, panelWidth, panelHeight, rl.NewColor(30, 30, 35, 255))
	rl.DrawRectangleLines(panelX, panelY, panelWidth, panelHeight, rl.White)

	menuTitle := "PAUSADO"
	titleWidth := rl.MeasureText(menuTitle, 24)
	rl.DrawText(menuTitle, panelX+(panelWidth-titleWidth)/2, panelY+30, 24, rl.Gold)

	if a.drawButton(panelX+50, panelY+90, panelWidth-100, 40, "RETOMAR (ESC)", rl.Green) {
		a.State = StateViewing
	}
}

// drawButton desenha um botão com hover e retorna true se clicado.
func (a *App) drawButton(x, y, w, h int32, text string, c rl.Color) bool {
	mousePos := rl.GetMousePosition()
	isHover := mousePos.X >= float32(x) && mousePos.X <= float32(x+w) &&
		mousePos.Y >= float32(y) && mousePos.Y <= float32(y+h)

	drawColor := c
	if isHover {
		drawColor.R += 30
		drawColor.G += 30
		drawColor.B += 30
	}

	rl.DrawRectangle(x, y, w, h, rl.NewColor(50, 50, 50, 255))
	rl.DrawRectangleLines(x, y, w, h, drawColor)

	textWidth := rl.MeasureText(text, 18)
	rl.DrawText(text, x+(w-textWidth)/2, y+(h-18)/2, 18, rl.White)

	return isHover && rl.IsMouseButtonPressed(rl.MouseLeftButton)
}

// drawConnectingScreen aparece até o primeiro frame do servidor chegar.
func (a *App) drawConnectingScreen() {
	screenWidth := int32(rl.GetScreenWidth())
	screenHeight := int32(rl.GetScreenHeight())

	rl.DrawRectangle(0, 0, screenWidth, screenHeight, rl.NewColor(20, 20, 25, 255))

	title := "NEROVIEW"
	titleWidth := rl.MeasureText(title, 40)
	rl.DrawText(title, (screenWidth-titleWidth)/2, screenHeight/2-60, 40, rl.Gold)

	text, _ := a.status()
	statusWidth := rl.MeasureText(text, 18)
	rl.DrawText(text, (screenWidth-statusWidth)/2, screenHeight/2+20, 18, rl.LightGray)
}
