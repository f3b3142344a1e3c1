package api

import (
	"net/http"

	"github.com/tcp_snm/problemhub/internal/service/auth_service"
)

func (a *Api) HandlerSignUp(w http.ResponseWriter, r *http.Request) {
	var request auth_service.SignUpRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		handlerError(err, w)
		return
	}

	if err := a.AuthServiceConfig.RequestSignUp(r.Context(), request); err != nil {
		handlerError(err, w)
		return
	}

	respondWithMessage(w, http.StatusOK, "otp sent to email. please verify to complete signup")
}

func (a *Api) HandlerVerifySignUp(w http.ResponseWriter, r *http.Request) {
	var request auth_service.VerifySignUpRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		handlerError(err, w)
		return
	}

	session, err := a.AuthServiceConfig.VerifySignUp(r.Context(), request)
	if err != nil {
		handlerError(err, w)
		return
	}

	setSessionCookie(w, session.Token, session.ExpiresAt)
	marshalAndRespond(w, http.StatusCreated, sessionMessageResponse{
		Message:         "signup successful",
		SessionResponse: session,
	})
}
