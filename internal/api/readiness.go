package api

import "net/http"

func (a *Api) HandlerReadiness(w http.ResponseWriter, r *http.Request) {
	respondWithMessage(w, http.StatusOK, "API is running")
}
