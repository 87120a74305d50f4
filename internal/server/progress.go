package server

import (
	"net/http"
	"sync"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/hedgelab/hedgebench/internal/modules/evaluation"
)

// ProgressHub fans batch progress out to websocket subscribers. Broadcast
// never blocks the evaluation loop: a slow subscriber just misses updates.
type ProgressHub struct {
	mu   sync.Mutex
	subs map[chan evaluation.Progress]struct{}
}

// NewProgressHub creates an empty hub.
func NewProgressHub() *ProgressHub {
	return &ProgressHub{
		subs: make(map[chan evaluation.Progress]struct{}),
	}
}

// Subscribe registers a new subscriber. The returned cancel function must be
// called when the subscriber goes away.
func (h *ProgressHub) Subscribe() (<-chan evaluation.Progress, func()) {
	ch := make(chan evaluation.Progress, 16)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

// Broadcast delivers the progress update to every subscriber that has buffer
// room.
func (h *ProgressHub) Broadcast(p evaluation.Progress) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- p:
		default:
		}
	}
}

// handleProgressSocket streams batch progress over a websocket until the
// client disconnects.
func (s *Server) handleProgressSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // same-origin policy handled by CORS middleware
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("Websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	updates, cancel := s.hub.Subscribe()
	defer cancel()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case p := <-updates:
			if err := wsjson.Write(ctx, conn, p); err != nil {
				return
			}
		}
	}
}
