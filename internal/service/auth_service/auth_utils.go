package auth_service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/database"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func adminToResponse(admin database.Admin) AdminResponse {
	return AdminResponse{
		AdminID: admin.AdminID,
		Name:    admin.Name,
		Email:   admin.Email,
	}
}

// findAdminByEmail returns found=false with a nil error when no admin has email.
func (a *AuthService) findAdminByEmail(
	ctx context.Context,
	email string,
) (admin database.Admin, found bool, err error) {
	admin, err = a.DB.GetAdminByEmail(ctx, email)
	if err == nil {
		return admin, true, nil
	}
	err = hub_errors.HandleDBErrors(
		err,
		errMsgs,
		fmt.Sprintf("cannot fetch admin with email %s from db", email),
	)
	if errors.Is(err, hub_errors.ErrNotFound) {
		return database.Admin{}, false, nil
	}
	return database.Admin{}, false, err
}

func (a *AuthService) newSession(admin database.Admin) (SessionResponse, error) {
	token, expiry, err := a.Tokens.Issue(admin.AdminID, admin.Email)
	if err != nil {
		return SessionResponse{}, err
	}
	return SessionResponse{
		Token:     token,
		ExpiresAt: expiry,
		Admin:     adminToResponse(admin),
	}, nil
}

// sendOTP issues a fresh code for email and mails it.
func (a *AuthService) sendOTP(ctx context.Context, email string) error {
	code, err := a.OTP.Issue(email)
	if err != nil {
		return err
	}
	return a.mailOTP(ctx, email, code)
}

func (a *AuthService) mailOTP(ctx context.Context, email string, code string) error {
	if err := a.Mailer.SendOTP(ctx, email, code); err != nil {
		if !errors.Is(err, hub_errors.ErrEmailDelivery) &&
			!errors.Is(err, hub_errors.ErrEmailServiceStopped) {
			err = fmt.Errorf("%w, %w", hub_errors.ErrEmailDelivery, err)
		}
		log.WithField("email", email).Errorf("cannot send otp, %v", err)
		return err
	}
	return nil
}
