// apps/go-server/internal/httpserver/ws.go
//
// GET /game/{id}/ws streams a JSON snapshot after every transition, starting
// with the current state. It is how the page learns about the automatic
// round advance, which no request of its own triggers.

package httpserver

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pinyin-pop/apps/go-server/internal/game"
)

const (
	wsWriteWait  = 5 * time.Second
	wsPingPeriod = 30 * time.Second
	wsBuffer     = 16
)

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || origin == s.cfg.ClientOrigin {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && u.Host == r.Host
		},
	}
}

// handleWatch upgrades the connection and forwards snapshots until the client
// goes away. Slow clients drop intermediate snapshots rather than block the game.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	updates := make(chan game.State, wsBuffer)
	cancel := g.Subscribe(func(st game.State) {
		select {
		case updates <- st:
		default:
		}
	})
	defer cancel()

	// reader: only needed to notice the client closing
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(st game.State) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(st)
	}
	if err := send(g.Snapshot()); err != nil {
		return
	}

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()
	for {
		select {
		case st := <-updates:
			if err := send(st); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
