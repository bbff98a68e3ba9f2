package main

import (
	"flag"
	"io"
	"os"
	"runtime"

	"NeroView/cliente/internal/app"
	"NeroView/shared/config"
	"NeroView/shared/logger"
)

func main() {
	// Raylib/OpenGL exige rodar na thread principal do SO
	runtime.LockOSThread()

	serverURL := flag.String("server", "", "URL do servidor (ex: ws://localhost:8080/ws); vazio roda o mundo local")
	templates := flag.String("templates", "", "Diretório de templates")
	templateDB := flag.String("db", "", "Banco SQLite de templates gerado pelo builder")
	fullscreen := flag.Bool("fullscreen", false, "Iniciar em tela cheia")
	debug := flag.Bool("debug", false, "Mostrar informações de debug e log detalhado")
	width := flag.Int("width", 0, "Largura da janela")
	height := flag.Int("height", 0, "Altura da janela")
	flag.Parse()

	cfg := config.Load()

	// Flags sobrescrevem o config salvo
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	if *templates != "" {
		cfg.TemplateDir = *templates
	}
	if *templateDB != "" {
		cfg.TemplateDB = *templateDB
	}
	if *fullscreen {
		cfg.Fullscreen = true
	}
	if *debug {
		cfg.ShowDebugInfo = true
		cfg.LogLevel = "debug"
	}
	if *width > 0 {
		cfg.WindowWidth = int32(*width)
	}
	if *height > 0 {
		cfg.WindowHeight = int32(*height)
	}

	// Log em arquivo e no console
	var out io.Writer = os.Stdout
	if f, err := os.OpenFile("debug_nv.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666); err == nil {
		defer f.Close()
		out = io.MultiWriter(os.Stdout, f)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat, out)
	log := logger.For("main")
	log.Info("--- INICIANDO NEROVIEW ---")

	application := app.New(cfg)
	if err := application.Run(); err != nil {
		log.Fatalf("Erro ao iniciar: %v", err)
	}
}
