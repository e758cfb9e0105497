// Package spectate streams game frames to read-only websocket viewers
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/playarea"
)

const shutdownTimeout = 2 * time.Second

// Message is one broadcast frame, msgpack encoded on the wire
type Message struct {
	Frame     playarea.Frame `msgpack:"frame"`
	Score     int            `msgpack:"score"`
	HighScore int            `msgpack:"high_score"`
	Lives     int            `msgpack:"lives"`
	State     string         `msgpack:"state"`
	Paused    bool           `msgpack:"paused"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans frames out to connected spectators
// A client whose buffer is full is dropped rather than stalling the game loop
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	every   int
	ticks   int

	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewHub creates a hub that broadcasts one of every `every` published frames
func NewHub(log zerolog.Logger, every int) *Hub {
	if every <= 0 {
		every = parameter.SpectateFrameEvery
	}
	return &Hub{
		clients:  make(map[*client]struct{}),
		every:    every,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		log:      log.With().Str("component", "spectate").Logger(),
	}
}

// Router exposes /ws for viewers and /healthz for probes
func (h *Hub) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/ws", h.handleWebSocket).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	return r
}

// Serve listens on addr until ctx is cancelled
func (h *Hub) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h.Router(), ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	h.log.Info().Str("addr", addr).Msg("spectator server listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectator server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	h.Close()
	return err
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug().Err(err).Msg("upgrade failed")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, parameter.SpectateClientBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Debug().Str("remote", r.RemoteAddr).Int("clients", n).Msg("spectator joined")

	go h.writeLoop(c)
	go h.readLoop(c)
}

func (h *Hub) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "clients": h.Clients()})
}

// writeLoop is the only writer on the connection
func (h *Hub) writeLoop(c *client) {
	for data := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(parameter.SpectateWriteTimeout)); err != nil {
			h.remove(c)
			return
		}
		if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			h.log.Debug().Err(err).Msg("spectator write failed")
			h.remove(c)
			return
		}
	}
}

// readLoop discards viewer input and notices disconnects
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()

	if ok && c.conn != nil {
		_ = c.conn.Close()
	}
}

// Publish counts one update and broadcasts every n-th message
func (h *Hub) Publish(msg Message) {
	h.mu.Lock()
	h.ticks++
	due := h.ticks%h.every == 0 && len(h.clients) > 0
	h.mu.Unlock()
	if !due {
		return
	}

	data, err := msgpack.Marshal(&msg)
	if err != nil {
		h.log.Error().Err(err).Msg("encode frame")
		return
	}
	h.broadcast(data)
}

func (h *Hub) broadcast(data []byte) {
	var slow []*client
	h.mu.Lock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.Unlock()

	for _, c := range slow {
		h.log.Debug().Msg("dropping slow spectator")
		h.remove(c)
	}
}

// Clients returns the number of connected viewers
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every viewer
func (h *Hub) Close() {
	h.mu.Lock()
	all := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		all = append(all, c)
	}
	h.mu.Unlock()

	for _, c := range all {
		h.remove(c)
	}
}

// Decode parses a broadcast frame
func Decode(data []byte) (Message, error) {
	var msg Message
	if err := msgpack.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("decode spectator frame: %w", err)
	}
	return msg, nil
}
