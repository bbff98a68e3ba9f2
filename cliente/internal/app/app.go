package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"NeroView/cliente/internal/camera"
	"NeroView/cliente/internal/render"
	"NeroView/cliente/internal/scene"
	"NeroView/shared/config"
	"NeroView/shared/logger"
	"NeroView/shared/netsync"
	"NeroView/shared/sim"
	"NeroView/shared/templatestore"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var log = logger.For("app")

// AppState representa os estados possíveis da aplicação.
type AppState int

const (
	StateConnecting AppState = iota // Esperando o servidor
	StateViewing                    // Visualizando a cena
	StatePaused                     // Pausado
)

// App é a aplicação principal do NeroView.
type App struct {
	Config *config.Config
	State  AppState

	// Controlador de câmera e a trava que entrega a câmera em primeira pessoa
	Cam  *camera.CameraController
	gate *cameraGate

	// Informações de debug
	frameCount int

	// Cena
	renderer *render.Renderer
	store    *templatestore.Store // nil quando os templates vêm do diretório
	cache    *scene.TemplateCache
	scene    *scene.Manager
	lines    *scene.LineSet

	// Entidade selecionada com o clique esquerdo
	selected    sim.ID
	hasSelected bool

	// Rede ou mundo local
	netClient *netsync.Client
	cancel    context.CancelFunc
	local     *localSim
	lastTick  uint64

	statusMu     sync.Mutex
	serverStatus netsync.Status
	statusText   string
}

// New cria uma nova instância da aplicação.
func New(cfg *config.Config) *App {
	return &App{
		Config:     cfg,
		State:      StateConnecting,
		lines:      scene.NewLineSet(),
		statusText: "Iniciando...",
	}
}

// Run inicia o loop principal da aplicação.
func (a *App) Run() error {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Erro fatal recuperado: %v", r)
			panic(r)
		}
	}()

	// Inicializar janela raylib
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(a.Config.WindowWidth, a.Config.WindowHeight, a.Config.WindowTitle)
	rl.SetTraceLogLevel(rl.LogWarning)

	if a.Config.Fullscreen {
		rl.ToggleFullscreen()
	}

	rl.SetTargetFPS(a.Config.TargetFPS)
	rl.SetExitKey(0) // ESC pausa em vez de fechar

	a.Cam = camera.New()
	a.Cam.MoveSpeed = a.Config.CameraSpeed * 5
	a.Cam.RotateSpeed = a.Config.CameraSensitivity * 6
	a.Cam.ZoomSpeed = a.Config.ZoomSpeed * 2
	a.gate = &cameraGate{cam: a.Cam}

	log.Infof("Janela inicializada (%dx%d)", a.Config.WindowWidth, a.Config.WindowHeight)

	if err := a.initScene(); err != nil {
		rl.CloseWindow()
		return err
	}

	if a.Config.ServerURL == "" {
		a.startLocal()
	} else {
		ctx, cancel := context.WithCancel(context.Background())
		a.cancel = cancel
		go a.connectServer(ctx)
	}

	for !rl.WindowShouldClose() {
		a.update()
		a.draw()
	}

	a.shutdown()
	rl.CloseWindow()
	return nil
}

// initScene monta renderizador, cache de templates e gerenciador.
func (a *App) initScene() error {
	a.renderer = render.NewRenderer(a.Config.TemplateDir)

	var source scene.TemplateSource = scene.DirSource{Root: a.Config.TemplateDir}
	if a.Config.TemplateDB != "" {
		store, err := templatestore.Open(a.Config.TemplateDB)
		if err != nil {
			return err
		}
		a.store = store
		source = store
		log.Infof("Templates lidos do banco %s", a.Config.TemplateDB)
	}

	a.cache = scene.NewTemplateCache(source, a.renderer)
	a.scene = scene.NewManager(a.renderer, a.cache, rand.New(rand.NewSource(time.Now().UnixNano())))
	a.scene.SetCameraProvider(a.gate)
	return nil
}

// update atualiza a lógica a cada frame.
func (a *App) update() {
	a.frameCount++
	dt := rl.GetFrameTime()

	switch a.State {
	case StateConnecting:
		a.applyNetwork()
		a.updateInput()
	case StateViewing:
		a.updateCamera(dt)
		a.updateInput()
		a.updateSimulation(dt)
		a.scene.Tick(a.lines)
		a.renderer.Update(dt)
	case StatePaused:
		a.updateInput() // Permite detectar ESC para despausar
	}
}

// shutdown realiza a limpeza de recursos.
func (a *App) shutdown() {
	log.Info("Finalizando aplicação...")

	if a.cancel != nil {
		a.cancel()
	}
	if c := a.client(); c != nil {
		c.Close()
	}

	a.scene.Close()
	a.renderer.Unload()

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Warnf("Erro ao fechar banco de templates: %v", err)
		}
	}

	if err := a.Config.Save(); err != nil {
		log.Warnf("Erro ao salvar configurações: %v", err)
	}
}

// cameraGate entrega a câmera à próxima instância com câmera em primeira
// pessoa que a pedir, uma vez por abertura.
type cameraGate struct {
	cam  *camera.CameraController
	open bool
}

func (g *cameraGate) ActiveCamera() scene.Camera {
	if !g.open || g.cam == nil {
		return nil
	}
	g.open = false
	return g.cam
}
