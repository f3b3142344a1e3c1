package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"github.com/tcp_snm/problemhub/middleware"
)

func decodeJsonBody(body io.Reader, v any) error {
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w, empty request body", hub_errors.ErrInvalidRequest)
		}
		if errors.Is(err, hub_errors.ErrInvalidInput) {
			return err
		}
		return fmt.Errorf("%w, invalid request payload, %s", hub_errors.ErrInvalidRequest, err.Error())
	}
	return nil
}

func respondWithJson(w http.ResponseWriter, statusCode int, response []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(response); err != nil {
		log.Errorf("cannot write response, %v", err)
	}
}

// marshalAndRespond writes v as json, or a 500 if it cannot be marshalled.
func marshalAndRespond(w http.ResponseWriter, statusCode int, v any) {
	response, err := json.Marshal(v)
	if err != nil {
		log.Errorf("unable to marshal %T, %v", v, err)
		handlerError(hub_errors.ErrInternal, w)
		return
	}
	respondWithJson(w, statusCode, response)
}

func respondWithMessage(w http.ResponseWriter, statusCode int, msg string) {
	marshalAndRespond(w, statusCode, messageResponse{Message: msg})
}

// handlerError maps a service error to its status code and error kind.
func handlerError(err error, w http.ResponseWriter) {
	var (
		status int
		kind   string
	)
	msg := err.Error()

	switch {
	case errors.Is(err, hub_errors.ErrInvalidOrExpiredOTP):
		status, kind = http.StatusBadRequest, "invalid_or_expired_otp"
	case errors.Is(err, hub_errors.ErrNoPendingSignup):
		status, kind = http.StatusBadRequest, "no_pending_signup"
	case errors.Is(err, hub_errors.ErrEmailServiceStopped):
		status, kind = http.StatusServiceUnavailable, "delivery"
		msg = hub_errors.ErrEmailServiceStopped.Error()
	case errors.Is(err, hub_errors.ErrEmailDelivery):
		status, kind = http.StatusBadGateway, "delivery"
		msg = hub_errors.ErrEmailDelivery.Error()
	case errors.Is(err, hub_errors.ErrInvalidInput),
		errors.Is(err, hub_errors.ErrInvalidRequest):
		status, kind = http.StatusBadRequest, "validation"
	case errors.Is(err, hub_errors.ErrEntityAlreadyExist):
		status, kind = http.StatusConflict, "conflict"
	case errors.Is(err, hub_errors.ErrInvalidUserCredentials):
		status, kind = http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, hub_errors.ErrUnAuthorized):
		status, kind = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, hub_errors.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	default:
		// never leak internals
		log.Errorf("internal error, %v", err)
		status, kind = http.StatusInternalServerError, "internal"
		msg = hub_errors.ErrInternal.Error()
	}

	response, marshalErr := json.Marshal(errorResponse{Kind: kind, Message: msg})
	if marshalErr != nil {
		http.Error(w, msg, status)
		return
	}
	respondWithJson(w, status, response)
}

func uuidFromURLParam(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w, %s must be a valid uuid", hub_errors.ErrInvalidRequest, key)
	}
	return id, nil
}

func setSessionCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.KeyJwtSessionCookieName,
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
