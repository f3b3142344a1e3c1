package auth_service

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"github.com/tcp_snm/problemhub/internal/service"
)

func (a *AuthService) Login(
	ctx context.Context,
	request LoginRequest,
) (SessionResponse, error) {
	request.Email = normalizeEmail(request.Email)
	if err := service.ValidateInput(request); err != nil {
		return SessionResponse{}, err
	}

	admin, found, err := a.findAdminByEmail(ctx, request.Email)
	if err != nil {
		return SessionResponse{}, err
	}
	if !found {
		return SessionResponse{}, hub_errors.ErrInvalidUserCredentials
	}

	if err = a.Hasher.Compare(admin.PasswordHash, request.Password); err != nil {
		if errors.Is(err, hub_errors.ErrInvalidUserCredentials) {
			log.WithField("admin_id", admin.AdminID).Warn("login with wrong password")
		}
		return SessionResponse{}, err
	}

	return a.newSession(admin)
}
