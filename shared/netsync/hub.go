package netsync

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub gerencia as conexões WebSocket ativas
type Hub struct {
	clients   map[*websocket.Conn]*sync.Mutex
	broadcast chan []byte
	mu        sync.Mutex

	// OnConnect, se definido, gera a primeira mensagem de cada cliente novo
	// (normalmente um Snapshot do mundo).
	OnConnect func() []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]*sync.Mutex),
		broadcast: make(chan []byte, 256), // Bufferizado para o loop de simulação não bloquear
	}
}

// Run distribui os broadcasts até ctx ser cancelado.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Hub recuperado de pânico: %v", r)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case message := <-h.broadcast:
			h.mu.Lock()
			// Lista de clientes para iterar fora do lock do hub
			type clientEntry struct {
				conn *websocket.Conn
				lock *sync.Mutex
			}
			targets := make([]clientEntry, 0, len(h.clients))
			for c, l := range h.clients {
				targets = append(targets, clientEntry{c, l})
			}
			h.mu.Unlock()

			for _, target := range targets {
				target.lock.Lock()
				err := target.conn.WriteMessage(websocket.BinaryMessage, message)
				target.lock.Unlock()
				if err != nil {
					log.Warnf("Erro ao enviar para cliente %s: %v", target.conn.RemoteAddr(), err)
					h.unregister(target.conn)
				}
			}
		}
	}
}

func (h *Hub) register(conn *websocket.Conn, lock *sync.Mutex) {
	h.mu.Lock()
	h.clients[conn] = lock
	h.mu.Unlock()
	log.Infof("Cliente registrado: %s", conn.RemoteAddr())
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	lock, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
	}
	h.mu.Unlock()
	if !ok {
		return
	}
	lock.Lock()
	conn.Close()
	lock.Unlock()
	log.Infof("Cliente desregistrado: %s", conn.RemoteAddr())
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.Unlock()
	for _, c := range conns {
		h.unregister(c)
	}
}

// Clients retorna o número de clientes conectados.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// WriteSafe garante que apenas uma goroutine escreva no WebSocket por vez
func (h *Hub) WriteSafe(conn *websocket.Conn, messageType int, data []byte) error {
	h.mu.Lock()
	lock, ok := h.clients[conn]
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("cliente não encontrado no hub")
	}

	lock.Lock()
	defer lock.Unlock()
	return conn.WriteMessage(messageType, data)
}

// Broadcast enfileira a mensagem para todos os clientes. Bloqueia se o
// buffer estiver cheio; não segurar h.mu aqui.
func (h *Hub) Broadcast(data []byte) {
	h.broadcast <- data
}

// BroadcastFrame codifica e envia um frame.
func (h *Hub) BroadcastFrame(f *Frame) {
	if len(f.Updates) == 0 {
		return
	}
	h.Broadcast(EncodeFrame(f))
}

// ServeWS promove a requisição HTTP a WebSocket e registra o cliente.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("Erro no upgrade: %v", err)
		return
	}
	// A conexão entra no hub já travada: broadcasts esperam o snapshot sair
	// e nunca chegam antes dele.
	lock := &sync.Mutex{}
	lock.Lock()
	h.register(conn, lock)

	if h.OnConnect != nil {
		if msg := h.OnConnect(); msg != nil {
			err = conn.WriteMessage(websocket.BinaryMessage, msg)
		}
	}
	lock.Unlock()
	if err != nil {
		log.Warnf("Erro ao enviar snapshot: %v", err)
		h.unregister(conn)
		return
	}

	// O cliente não manda nada; ler só detecta o fechamento
	go func() {
		defer h.unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Handler expõe o hub em /ws e um /health simples.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok %d\n", h.Clients())
	})
	return mux
}
