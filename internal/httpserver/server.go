// apps/go-server/internal/httpserver/server.go
//
// HTTP server wiring for the P/Q game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/" (embedded page), "/health", "/debug/words".
//   - Game endpoints: POST /game/new, /game/start, /game/select; GET/DELETE /game/{id}.
//   - Observer stream: GET /game/{id}/ws (websocket, one snapshot per transition).
//   - Speech: GET /speech/{label} → audio/wav.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the session cookie works).
//   - The session cookie only remembers which game a browser owns; game ids in
//     request bodies take precedence.
//   - The websocket route sits outside the handler timeout.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pinyin-pop/apps/go-server/assets"
	"github.com/robalobadob/pinyin-pop/apps/go-server/internal/speech"
	"github.com/robalobadob/pinyin-pop/apps/go-server/internal/store"
	"github.com/robalobadob/pinyin-pop/apps/go-server/internal/words"
)

// Config carries everything the server needs besides the store.
type Config struct {
	ClientOrigin  string        // CORS origin; defaults to http://localhost:5173
	SessionSecret string        // HS256 key for the session cookie
	SessionTTL    time.Duration // cookie lifetime; defaults to 2h
	Secure        bool          // production cookies (Secure, SameSite=None)
	AdvanceDelay  time.Duration // pause before the next round
	Lists         words.Lists
	Speaker       *speech.Speaker // nil disables /speech
}

// Server bundles router, game store and speech adapter.
type Server struct {
	r     *chi.Mux
	store store.Store
	cfg   Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, cfg Config) *Server {
	if cfg.ClientOrigin == "" {
		cfg.ClientOrigin = "http://localhost:5173"
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "dev_secret_change_me"
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 2 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), store: st, cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)        // add X-Request-ID
	s.r.Use(chimw.RealIP)           // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)        // recover from panics
	s.r.Use(cors(cfg.ClientOrigin)) // credentials-friendly CORS
	s.r.Use(s.withSession)          // game id from cookie, if any

	// long-lived observer stream: no handler timeout
	s.r.Get("/game/{id}/ws", s.handleWatch)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time

		r.Get("/", s.handleIndex)
		r.Get("/speech/{label}", s.handleSpeech)

		r.Group(func(r chi.Router) {
			r.Use(jsonContentType) // default JSON responses

			r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"ok":true}`))
			})
			r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
				p, q := len(s.cfg.Lists.P), len(s.cfg.Lists.Q)
				_ = json.NewEncoder(w).Encode(map[string]int{"p": p, "q": q, "games": s.store.Len()})
			})

			r.Post("/game/new", s.handleNewGame)
			r.Post("/game/start", s.handleStart)
			r.Post("/game/select", s.handleSelect)
			r.Get("/game/{id}", s.handleGetGame)
			r.Delete("/game/{id}", s.handleDeleteGame)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// handleIndex serves the embedded single-page front end.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := assets.IndexHTML()
	if err != nil {
		log.Error().Err(err).Msg("read index.html")
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
