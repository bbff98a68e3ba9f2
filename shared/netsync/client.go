package netsync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"NeroView/shared/util"

	"github.com/gorilla/websocket"
)

// Client recebe frames do servidor numa goroutine e os enfileira para a
// thread principal.
type Client struct {
	url       string
	conn      *websocket.Conn
	connected bool
	mu        sync.RWMutex

	frames *util.ThreadSafeQueue[Frame]

	MaxRetries int
	RetryDelay time.Duration

	// OnStatus é chamado na goroutine de leitura.
	OnStatus func(s Status)
}

func NewClient(url string) *Client {
	return &Client{
		url:        url,
		frames:     util.NewThreadSafeQueue[Frame](),
		MaxRetries: 10,
		RetryDelay: 2 * time.Second,
	}
}

// Connect disca com novas tentativas e inicia a leitura.
func (c *Client) Connect(ctx context.Context) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
	}

	var conn *websocket.Conn
	var err error
	for i := 0; i < c.MaxRetries; i++ {
		log.Infof("Tentativa de conexão %d/%d em %s...", i+1, c.MaxRetries, c.url)
		conn, _, err = dialer.DialContext(ctx, c.url, nil)
		if err == nil {
			break
		}
		log.Warnf("Servidor ainda não está pronto: %v. Aguardando...", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.RetryDelay):
		}
	}
	if err != nil {
		return fmt.Errorf("conectar em %s após %d tentativas: %w", c.url, c.MaxRetries, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	go c.readLoop(conn)
	return nil
}

func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Drain retorna os frames recebidos desde a última chamada, em ordem.
func (c *Client) Drain() []Frame {
	return c.frames.Drain()
}

// Close encerra a conexão.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	if c.conn == nil {
		return nil
	}
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}

func (c *Client) readLoop(conn *websocket.Conn) {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		conn.Close()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Infof("Conexão encerrada: %v", err)
			return
		}

		var env Envelope
		if err := env.Unmarshal(message); err != nil {
			log.Warnf("Erro ao desempacotar envelope: %v", err)
			continue
		}
		if err := c.handleMessage(&env); err != nil {
			log.Warnf("Mensagem descartada: %v", err)
		}
	}
}

func (c *Client) handleMessage(env *Envelope) error {
	switch env.Type {
	case MsgFrame:
		var f Frame
		if err := f.Unmarshal(env.Payload); err != nil {
			return fmt.Errorf("frame: %w", err)
		}
		c.frames.Push(f)
	case MsgStatus:
		var s Status
		if err := s.Unmarshal(env.Payload); err != nil {
			return fmt.Errorf("status: %w", err)
		}
		if c.OnStatus != nil {
			c.OnStatus(s)
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownMessage, env.Type)
	}
	return nil
}
