// apps/go-server/internal/httpserver/session.go
//
// Session cookie: an HS256 JWT whose only claim of interest is the game id.
// It lets a browser find its game again after a reload without the page
// having to keep the id. It is not authentication: anyone holding a game id
// can drive that game.

package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionCookieName = "pinyin_session"

// ctxGameKey is the context key type for the session's game id.
type ctxGameKey struct{}

// signSession creates an HS256 token carrying gameID.
func (s *Server) signSession(gameID string) (string, time.Time, error) {
	exp := time.Now().Add(s.cfg.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gameId": gameID,
		"exp":    exp.Unix(),
		"iat":    time.Now().Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.SessionSecret))
	return ss, exp, err
}

// parseSession validates a token and returns its game id ("" if invalid).
func (s *Server) parseSession(tok string) string {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SessionSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return ""
	}
	id, _ := claims["gameId"].(string)
	return id
}

// withSession decorates requests with the session game id when a valid
// token is present. It never rejects a request.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := bearerOrCookie(r); tok != "" {
			if id := s.parseSession(tok); id != "" {
				r = r.WithContext(context.WithValue(r.Context(), ctxGameKey{}, id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// sessionGameID returns the game id attached by withSession, if any.
func sessionGameID(r *http.Request) string {
	id, _ := r.Context().Value(ctxGameKey{}).(string)
	return id
}

// setSessionCookie writes the session cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: s.sameSite(),
		Expires:  exp,
	})
}

// clearSessionCookie deletes the session cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: s.sameSite(),
		MaxAge:   -1,
	})
}

func (s *Server) sameSite() http.SameSite {
	if s.cfg.Secure {
		return http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	return http.SameSiteLaxMode
}

// bearerOrCookie extracts a bearer token from Authorization header or session cookie.
func bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}
