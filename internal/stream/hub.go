// Package stream ticks a flock on a fixed cadence and broadcasts every frame
// to websocket viewers, which render at their own pace.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"antflock/internal/core"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
)

const (
	// viewerBuffer frames may queue per viewer before new frames are dropped.
	viewerBuffer = 8
	writeTimeout = 2 * time.Second
)

// Source is the simulation surface the hub needs.
type Source interface {
	Step()
	Ticks() int
	Bounds() (w, h float64)
	Positions() [][2]float64
	Parameters() core.ParameterSnapshot
}

// Frame is one broadcast snapshot of the flock.
type Frame struct {
	Tick   int          `json:"tick"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Boids  [][2]float64 `json:"boids"`
}

type viewer struct {
	id      uuid.UUID
	conn    *websocket.Conn
	send    chan []byte
	dropped int
}

// Hub owns the source exclusively. Tick must only be called from one
// goroutine; handlers only read cached state.
type Hub struct {
	src      Source
	upgrader websocket.Upgrader

	mu      sync.Mutex
	viewers map[uuid.UUID]*viewer
	last    []byte
	params  core.ParameterSnapshot
}

// NewHub prepares a hub around src and caches its initial frame.
func NewHub(src Source) *Hub {
	h := &Hub{
		src:     src,
		viewers: map[uuid.UUID]*viewer{},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	h.last = h.encode(h.snapshot())
	h.params = src.Parameters()
	return h
}

func (h *Hub) snapshot() Frame {
	w, ht := h.src.Bounds()
	return Frame{Tick: h.src.Ticks(), Width: w, Height: ht, Boids: h.src.Positions()}
}

func (h *Hub) encode(f Frame) []byte {
	data, err := json.Marshal(f)
	if err != nil {
		log.WithError(err).Error("encode frame")
		return nil
	}
	return data
}

// Tick advances the source once and broadcasts the resulting frame. Viewers
// whose queue is full miss the frame.
func (h *Hub) Tick() Frame {
	h.src.Step()
	frame := h.snapshot()
	data := h.encode(frame)
	params := h.src.Parameters()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = data
	h.params = params
	if data == nil {
		return frame
	}
	for _, v := range h.viewers {
		select {
		case v.send <- data:
		default:
			v.dropped++
			if v.dropped%100 == 1 {
				log.WithFields(log.Fields{"viewer": v.id, "dropped": v.dropped}).Warn("viewer is falling behind")
			}
		}
	}
	return frame
}

// ValidateTPS rejects tick rates the frame loop cannot poll: non-positive
// rates and rates whose half-interval rounds to zero nanoseconds.
func ValidateTPS(tps int) error {
	if tps <= 0 || time.Second/time.Duration(tps) < 2*time.Nanosecond {
		return fmt.Errorf("stream: tps must be in [1, %d], got %d: %w", time.Second/2, tps, core.ErrInvalidArgument)
	}
	return nil
}

// Run ticks at tps until ctx is cancelled, then disconnects every viewer.
// An invalid tps fails before the loop starts.
func (h *Hub) Run(ctx context.Context, tps int) error {
	if err := ValidateTPS(tps); err != nil {
		return err
	}
	fs := core.NewFixedStep(tps)
	poll := time.NewTicker(fs.Interval() / 2)
	defer poll.Stop()
	log.WithField("tps", tps).Info("frame loop started")
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			log.Info("frame loop stopped")
			return ctx.Err()
		case <-poll.C:
			if fs.ShouldStep() {
				h.Tick()
			}
		}
	}
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// Routes returns the HTTP handler exposing the hub.
func (h *Hub) Routes() http.Handler {
	router := way.NewRouter()
	router.HandleFunc("GET", "/frames", h.HandleFrames())
	router.HandleFunc("GET", "/params", h.HandleParams())
	return router
}

// HandleParams serves the latest parameter snapshot as JSON.
func (h *Hub) HandleParams() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		params := h.params
		h.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(params); err != nil {
			log.WithError(err).Warn("write params")
		}
	}
}

// HandleFrames upgrades the request to a websocket and streams frames until
// the viewer disconnects.
func (h *Hub) HandleFrames() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.WithError(err).Warn("websocket upgrade failed")
			return
		}
		v := &viewer{id: uuid.New(), conn: conn, send: make(chan []byte, viewerBuffer)}
		h.register(v)
		entry := log.WithFields(log.Fields{"viewer": v.id, "remote": r.RemoteAddr})
		entry.Info("viewer connected")

		go h.writeLoop(v, entry)
		// Viewers never send anything meaningful; reading detects closure.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		h.unregister(v)
		entry.Info("viewer disconnected")
	}
}

func (h *Hub) register(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewers[v.id] = v
	if h.last != nil {
		v.send <- h.last
	}
}

func (h *Hub) unregister(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.viewers[v.id]; !ok {
		return
	}
	delete(h.viewers, v.id)
	close(v.send)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	viewers := make([]*viewer, 0, len(h.viewers))
	for _, v := range h.viewers {
		viewers = append(viewers, v)
	}
	h.mu.Unlock()
	for _, v := range viewers {
		h.unregister(v)
	}
}

func (h *Hub) writeLoop(v *viewer, entry *log.Entry) {
	defer v.conn.Close()
	for data := range v.send {
		if err := v.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			entry.WithError(err).Debug("set write deadline")
		}
		if err := v.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			entry.WithError(err).Debug("write frame")
			return
		}
	}
	if err := v.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		entry.WithError(err).Debug("set write deadline")
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := v.conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
		entry.WithError(err).Debug("write close frame")
	}
}
