package api

import (
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/service/auth_service"
)

func (a *Api) HandlerLogin(w http.ResponseWriter, r *http.Request) {
	var request auth_service.LoginRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		handlerError(err, w)
		return
	}

	// validate the admin and gen a jwt token
	session, err := a.AuthServiceConfig.Login(r.Context(), request)
	if err != nil {
		handlerError(err, w)
		return
	}

	setSessionCookie(w, session.Token, session.ExpiresAt)

	log.WithFields(log.Fields{
		"admin_id": session.Admin.AdminID,
		"email":    session.Admin.Email,
	}).Info("logged in")

	marshalAndRespond(w, http.StatusOK, session)
}
