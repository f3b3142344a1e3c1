package auth_service

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"github.com/tcp_snm/problemhub/internal/service"
)

// RequestOTP mails a standalone otp to the email.
func (a *AuthService) RequestOTP(ctx context.Context, request OTPRequest) error {
	request.Email = normalizeEmail(request.Email)
	if err := service.ValidateInput(request); err != nil {
		return err
	}

	if err := a.sendOTP(ctx, request.Email); err != nil {
		return err
	}

	log.WithField("email", request.Email).Info("otp sent")
	return nil
}

// VerifyOTP consumes the otp of the email.
func (a *AuthService) VerifyOTP(ctx context.Context, request VerifySignUpRequest) error {
	request.Email = normalizeEmail(request.Email)
	if err := service.ValidateInput(request); err != nil {
		return err
	}

	if !a.OTP.Verify(request.Email, request.OTP) {
		return hub_errors.ErrInvalidOrExpiredOTP
	}
	return nil
}
