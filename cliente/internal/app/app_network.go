package app

import (
	"context"
	"fmt"

	"NeroView/shared/netsync"
)

// connectServer conecta ao servidor de simulação. Roda numa goroutine; os
// frames ficam na fila do cliente até a thread principal drená-los.
func (a *App) connectServer(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Erro em connectServer: %v", r)
		}
	}()

	c := netsync.NewClient(a.Config.ServerURL)
	c.OnStatus = func(s netsync.Status) {
		a.statusMu.Lock()
		a.serverStatus = s
		a.statusText = s.Message
		a.statusMu.Unlock()
		log.Debugf("Status do servidor: %s (%d entidades, %.0f ticks/s)", s.Message, s.Entities, s.TickRate)
	}

	a.setStatus(fmt.Sprintf("Conectando a %s...", a.Config.ServerURL))
	if err := c.Connect(ctx); err != nil {
		log.Errorf("Erro ao conectar: %v", err)
		a.setStatus("Erro ao conectar ao servidor. Verifique se ele está rodando.")
		return
	}

	a.statusMu.Lock()
	a.netClient = c
	a.statusText = "Sincronizando com o mundo..."
	a.statusMu.Unlock()
	log.Infof("Conectado ao servidor %s", a.Config.ServerURL)
}

// client retorna o cliente de rede quando a conexão já foi feita.
func (a *App) client() *netsync.Client {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	return a.netClient
}
