package api

import (
	"net/http"
	"time"

	"github.com/tcp_snm/problemhub/middleware"
)

func (a *Api) HandlerLogout(w http.ResponseWriter, r *http.Request) {
	expiredCookie := &http.Cookie{
		Name:     middleware.KeyJwtSessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, expiredCookie)

	respondWithMessage(w, http.StatusOK, "logged out")
}
