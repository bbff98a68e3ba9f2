package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"NeroView/servidor/internal/simserver"
	"NeroView/shared/config"
	"NeroView/shared/logger"
	"NeroView/shared/netsync"
)

var log = logger.For("server")

func main() {
	// Caminhos relativos (tmp/) partem do diretório do executável
	if exePath, err := os.Executable(); err == nil {
		os.Chdir(filepath.Dir(exePath))
	}

	addr := flag.String("addr", "", "Endereço de escuta (padrão do config: :8080)")
	walkers := flag.Int("walkers", -1, "Número de agentes de demonstração")
	tickRate := flag.Float64("tick", 0, "Ticks de simulação por segundo")
	flag.Parse()

	cfg := config.Load()
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if *walkers >= 0 {
		cfg.Walkers = *walkers
	}
	if *tickRate > 0 {
		cfg.TickRate = float32(*tickRate)
	}

	// Console e arquivo ao mesmo tempo
	var out io.Writer = os.Stdout
	if err := os.MkdirAll("tmp", 0755); err == nil {
		if f, err := os.OpenFile("tmp/server.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat, out)
	log.Info("NeroView SERVER iniciando")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := netsync.NewHub()
	go hub.Run(ctx)

	srv := simserver.New(hub, cfg.TickRate, cfg.Walkers, cfg.WalkerTemplate, cfg.Scenery, rand.New(rand.NewSource(time.Now().UnixNano())))
	hub.OnConnect = srv.Snapshot
	go srv.Run(ctx, 2*time.Second)

	// Verifica a porta antes de subir o HTTP
	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Fatalf("Não foi possível abrir %s (outra instância rodando?): %v", cfg.ListenAddr, err)
	}

	httpSrv := &http.Server{Handler: hub.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	log.Infof("Servidor iniciado em %s", cfg.ListenAddr)
	if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Erro fatal no servidor HTTP: %v", err)
	}
	log.Info("Servidor encerrado")
}
