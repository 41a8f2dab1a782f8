// apps/go-server/internal/httpserver/routes_game.go
//
// Game endpoints:
//   - POST   /game/new     → create a game in the intro state, set session cookie
//   - POST   /game/start   → start (or restart) at round 1
//   - POST   /game/select  → click one bubble
//   - GET    /game/{id}    → current snapshot
//   - DELETE /game/{id}    → tear the game down (cancels any pending advance)
//
// Rejected selections (wrong status, unknown or found item) still answer 200
// with outcome.applied=false; they are no-ops, not errors.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pinyin-pop/apps/go-server/internal/game"
	"github.com/robalobadob/pinyin-pop/apps/go-server/internal/store"
)

// gameReq is the body shared by /game/start and /game/select.
type gameReq struct {
	GameID string `json:"gameId"`
	ItemID string `json:"itemId"`
}

type newGameRes struct {
	GameID string     `json:"gameId"`
	State  game.State `json:"state"`
}

type stateRes struct {
	State   game.State    `json:"state"`
	Outcome *game.Outcome `json:"outcome,omitempty"`
}

// handleNewGame creates a game and remembers it in the session cookie.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	g := game.New(game.Options{Lists: s.cfg.Lists, AdvanceDelay: s.cfg.AdvanceDelay})
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	if tok, exp, err := s.signSession(g.ID); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("sign session")
	} else {
		s.setSessionCookie(w, tok, exp)
	}
	log.Info().Str("gameId", g.ID).Msg("game created")
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: g.ID, State: g.Snapshot()})
}

// handleStart starts or restarts the game.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req gameReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	g, ok := s.lookup(w, r, req.GameID)
	if !ok {
		return
	}
	st := g.Start()
	_ = s.store.Save(r.Context(), g) // refresh idle expiry
	log.Debug().Str("gameId", g.ID).Str("target", string(st.TargetLetter)).Msg("game started")
	_ = json.NewEncoder(w).Encode(stateRes{State: st})
}

// handleSelect applies a bubble click. When the server has its own speakers
// the label is spoken in the background.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req gameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "missing_item")
		return
	}
	g, ok := s.lookup(w, r, req.GameID)
	if !ok {
		return
	}
	st, out := g.Select(req.ItemID)
	_ = s.store.Save(r.Context(), g)

	if out.Applied {
		if sp := s.cfg.Speaker; sp != nil && sp.HasOutput() {
			if it, found := findItem(st, req.ItemID); found {
				sp.PlayAsync(it.Text)
			}
		}
		if out.RoundComplete {
			log.Info().Str("gameId", g.ID).Int("round", st.Round).Int("score", st.Score).Msg("round complete")
		}
	}
	_ = json.NewEncoder(w).Encode(stateRes{State: st, Outcome: &out})
}

// handleGetGame returns the current snapshot.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(stateRes{State: g.Snapshot()})
}

// handleDeleteGame removes and tears down a game.
func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	if sessionGameID(r) == id {
		s.clearSessionCookie(w)
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// lookup resolves a game from an explicit id or the session cookie, writing
// the error response itself when it fails.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request, id string) (*game.Game, bool) {
	if id == "" {
		id = sessionGameID(r)
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing_game")
		return nil, false
	}
	g, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Str("gameId", id).Msg("load game")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return nil, false
	}
	return g, true
}

func findItem(st game.State, id string) (game.Item, bool) {
	for _, it := range st.Items {
		if it.ID == id {
			return it, true
		}
	}
	return game.Item{}, false
}

// writeError sends {"error": code} with the given status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
