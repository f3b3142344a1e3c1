package api

import (
	"net/http"

	"github.com/tcp_snm/problemhub/internal/service/auth_service"
)

func (a *Api) HandlerResetPassword(w http.ResponseWriter, r *http.Request) {
	var request auth_service.ResetPasswordRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		handlerError(err, w)
		return
	}

	if err := a.AuthServiceConfig.ResetPassword(r.Context(), request); err != nil {
		handlerError(err, w)
		return
	}

	respondWithMessage(w, http.StatusOK, "password updated successfully")
}
