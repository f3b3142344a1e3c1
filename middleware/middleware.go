package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"github.com/tcp_snm/problemhub/internal/service"
)

const (
	KeyJwtSessionCookieName = "jwt_session"
	bearerPrefix            = "Bearer "
)

type Auth struct {
	Tokens *service.JWTIssuer
}

// JWTMiddleware lets the request through only with a valid session token,
// read from the session cookie or the Authorization header. The claims are
// put in the request context.
func (a *Auth) JWTMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			unauthorized(w, "missing session token")
			return
		}

		claims, err := a.Tokens.Parse(token)
		if err != nil {
			log.WithField("path", r.URL.Path).Debugf("rejected session, %v", err)
			msg := "invalid session token"
			if errors.Is(err, hub_errors.ErrUnAuthorized) {
				msg = err.Error()
			}
			unauthorized(w, msg)
			return
		}

		ctx := service.WithClaims(r.Context(), claims)
		next(w, r.WithContext(ctx))
	}
}

func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(KeyJwtSessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, bearerPrefix); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"kind":    "unauthorized",
		"message": msg,
	})
}
