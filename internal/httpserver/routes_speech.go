package httpserver

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// handleSpeech serves GET /speech/{label} as audio/wav. Only syllables from
// the loaded word lists are accepted, so the endpoint cannot be used to
// synthesize arbitrary text on our API key.
func (s *Server) handleSpeech(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")
	if !slices.Contains(s.cfg.Lists.P, label) && !slices.Contains(s.cfg.Lists.Q, label) {
		writeError(w, http.StatusNotFound, "unknown_label")
		return
	}
	sp := s.cfg.Speaker
	if sp == nil {
		writeError(w, http.StatusServiceUnavailable, "speech_disabled")
		return
	}
	clip, err := sp.Clip(r.Context(), label)
	if err != nil {
		log.Warn().Err(err).Str("label", label).Msg("speech unavailable")
		writeError(w, http.StatusBadGateway, "speech_unavailable")
		return
	}
	wav := clip.WAV()
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(wav)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(wav)
}
