// Package simserver roda a simulação autoritativa e publica os frames.
package simserver

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"NeroView/shared/logger"
	"NeroView/shared/netsync"
	"NeroView/shared/sim"

	"github.com/go-gl/mathgl/mgl32"
)

var log = logger.For("sim")

// Broadcaster é o lado de rede do servidor (netsync.Hub).
type Broadcaster interface {
	Broadcast(data []byte)
	BroadcastFrame(f *netsync.Frame)
}

// Server guarda o mundo e o avança num ticker fixo.
type Server struct {
	mu      sync.Mutex
	world   *sim.World
	walkers *sim.Wanderers
	out     Broadcaster

	tickRate float32
	tick     uint64
	removed  []sim.ID
}

// New cria o servidor com walkers agentes usando template e, se scenery não
// for vazio, um objeto fixo na origem.
func New(out Broadcaster, tickRate float32, walkers int, template, scenery string, rng *rand.Rand) *Server {
	if tickRate <= 0 {
		tickRate = 20
	}
	s := &Server{
		world:    sim.NewWorld(1),
		out:      out,
		tickRate: tickRate,
	}
	if scenery != "" {
		s.world.Add(sim.SceneryKind, scenery, mgl32.Vec3{}, mgl32.Vec3{})
	}
	s.walkers = sim.NewWanderers(s.world, rng)
	s.walkers.Spawn(walkers, sim.WalkerKind, template)
	return s
}

// Step avança um tick e transmite o que mudou.
func (s *Server) Step() netsync.Frame {
	s.mu.Lock()
	s.walkers.Step(1 / s.tickRate)
	s.tick++
	f := netsync.Collect(s.world, s.tick, s.removed)
	s.removed = s.removed[:0]
	s.mu.Unlock()

	s.out.BroadcastFrame(&f)
	return f
}

// Remove apaga uma entidade; clientes recebem a remoção no próximo tick.
func (s *Server) Remove(id sim.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.world.Remove(id) {
		return false
	}
	s.removed = append(s.removed, id)
	return true
}

// Snapshot codifica o mundo inteiro para um cliente recém-conectado.
func (s *Server) Snapshot() []byte {
	s.mu.Lock()
	f := netsync.Snapshot(s.world, s.tick)
	s.mu.Unlock()
	return netsync.EncodeFrame(&f)
}

// Status descreve o estado atual do servidor.
func (s *Server) Status() netsync.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return netsync.Status{
		Message:  fmt.Sprintf("Tick %d", s.tick),
		TickRate: s.tickRate,
		Entities: uint32(s.world.Len()),
	}
}

// Run avança a simulação até ctx ser cancelado e envia o status a cada
// statusEvery.
func (s *Server) Run(ctx context.Context, statusEvery time.Duration) {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / float64(s.tickRate)))
	defer ticker.Stop()
	status := time.NewTicker(statusEvery)
	defer status.Stop()

	log.Infof("Simulação iniciada a %.0f ticks/s com %d entidades", s.tickRate, s.walkers.Len())
	for {
		select {
		case <-ctx.Done():
			log.Info("Simulação encerrada")
			return
		case <-ticker.C:
			s.Step()
		case <-status.C:
			st := s.Status()
			s.out.Broadcast(netsync.EncodeStatus(&st))
		}
	}
}
