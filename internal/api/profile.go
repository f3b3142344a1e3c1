package api

import (
	"net/http"

	"github.com/tcp_snm/problemhub/internal/service/admin_service"
)

func (a *Api) HandlerGetProfile(w http.ResponseWriter, r *http.Request) {
	admin, err := a.AdminServiceConfig.GetProfile(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, adminResponse{Admin: admin})
}

func (a *Api) HandlerEditProfile(w http.ResponseWriter, r *http.Request) {
	var request admin_service.EditProfileRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		handlerError(err, w)
		return
	}

	admin, err := a.AdminServiceConfig.EditProfile(r.Context(), request)
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, adminResponse{Message: "profile updated", Admin: admin})
}

func (a *Api) HandlerDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := a.AdminServiceConfig.DeleteProfile(r.Context()); err != nil {
		handlerError(err, w)
		return
	}
	respondWithMessage(w, http.StatusOK, "profile deleted")
}
