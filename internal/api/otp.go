package api

import (
	"net/http"

	"github.com/tcp_snm/problemhub/internal/service/auth_service"
)

func (a *Api) HandlerRequestOTP(w http.ResponseWriter, r *http.Request) {
	var request auth_service.OTPRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		handlerError(err, w)
		return
	}

	if err := a.AuthServiceConfig.RequestOTP(r.Context(), request); err != nil {
		handlerError(err, w)
		return
	}

	respondWithMessage(w, http.StatusOK, "otp sent to email")
}

func (a *Api) HandlerVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var request auth_service.VerifySignUpRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		handlerError(err, w)
		return
	}

	if err := a.AuthServiceConfig.VerifyOTP(r.Context(), request); err != nil {
		handlerError(err, w)
		return
	}

	respondWithMessage(w, http.StatusOK, "otp verified")
}
