package auth_service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"github.com/tcp_snm/problemhub/internal/service"
)

// ResetPassword changes the password of the logged in admin. email and
// admin_id are optional, when given they must identify the caller.
func (a *AuthService) ResetPassword(
	ctx context.Context,
	request ResetPasswordRequest,
) error {
	request.Email = normalizeEmail(request.Email)

	// create a custom logger
	resetLogger := log.WithField("request", request)

	if err := service.ValidateInput(request); err != nil {
		return err
	}

	claims, err := service.GetClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	// an admin may only reset their own password
	if (request.Email != "" && request.Email != normalizeEmail(claims.Email)) ||
		(request.AdminID != nil && *request.AdminID != claims.AdminID) {
		resetLogger.Warnf("admin %v tried to reset the password of another admin", claims.AdminID)
		return fmt.Errorf(
			"%w, cannot reset the password of another admin",
			hub_errors.ErrUnAuthorized,
		)
	}

	// fetch admin from db
	admin, err := a.DB.GetAdminByID(ctx, claims.AdminID)
	if err != nil {
		return hub_errors.HandleDBErrors(err, errMsgs, "admin not found")
	}

	// generate password hash
	passwordHash, err := a.Hasher.Hash(request.NewPassword)
	if err != nil {
		return err
	}

	rows, err := a.DB.UpdateAdminPassword(ctx, admin.AdminID, passwordHash)
	if err != nil {
		resetLogger.Errorf("unable to reset password, %v", err)
		return fmt.Errorf("%w, unable to reset password", hub_errors.ErrInternal)
	}
	if rows == 0 {
		return fmt.Errorf("%w, admin not found", hub_errors.ErrNotFound)
	}

	resetLogger.Info("password reset")
	return nil
}
