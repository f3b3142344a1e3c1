package auth_service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/database"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"github.com/tcp_snm/problemhub/internal/service"
	"github.com/tcp_snm/problemhub/internal/service/pending_service"
)

// RequestSignUp holds the signup in memory and mails an otp to the email.
// A second request for the same email replaces the first one.
func (a *AuthService) RequestSignUp(
	ctx context.Context,
	request SignUpRequest,
) error {
	request.Email = normalizeEmail(request.Email)

	// Validate
	if err := service.ValidateInput(request); err != nil {
		return err
	}

	// the email must not belong to a finalized account
	_, found, err := a.findAdminByEmail(ctx, request.Email)
	if err != nil {
		return err
	}
	if found {
		return fmt.Errorf("%w, email already registered", hub_errors.ErrEntityAlreadyExist)
	}

	// issue before saving so the pending signup never expires ahead of its otp
	code, err := a.OTP.Issue(request.Email)
	if err != nil {
		return err
	}

	a.Pending.Save(request.Email, pending_service.PendingRegistration{
		Name:        request.Name,
		RawPassword: request.Password,
	})

	if err = a.mailOTP(ctx, request.Email, code); err != nil {
		return err
	}

	log.WithField("request", request).Info("signup otp sent")
	return nil
}

// VerifySignUp finalizes a pending signup once its otp is verified.
func (a *AuthService) VerifySignUp(
	ctx context.Context,
	request VerifySignUpRequest,
) (SessionResponse, error) {
	request.Email = normalizeEmail(request.Email)
	verifyLogger := log.WithField("email", request.Email)

	if err := service.ValidateInput(request); err != nil {
		return SessionResponse{}, err
	}

	if !a.OTP.Verify(request.Email, request.OTP) {
		if a.signUpCompleted(ctx, request.Email) {
			return SessionResponse{}, fmt.Errorf(
				"%w, signup for this email is already complete",
				hub_errors.ErrNoPendingSignup,
			)
		}
		return SessionResponse{}, hub_errors.ErrInvalidOrExpiredOTP
	}

	// the otp may outlive its pending signup if the store evicted it
	pending, ok := a.Pending.Get(request.Email)
	if !ok {
		verifyLogger.Warn("otp verified but no pending signup found")
		return SessionResponse{}, hub_errors.ErrNoPendingSignup
	}

	// Hash the password.
	passwordHash, err := a.Hasher.Hash(pending.RawPassword)
	if err != nil {
		return SessionResponse{}, err
	}

	dbAdmin, err := a.DB.CreateAdmin(ctx, database.CreateAdminParams{
		AdminID:      uuid.New(),
		Name:         pending.Name,
		Email:        pending.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return SessionResponse{}, hub_errors.HandleDBErrors(
			err,
			errMsgs,
			"failed to insert admin into db",
		)
	}

	a.Pending.Remove(request.Email)

	verifyLogger.WithField("admin_id", dbAdmin.AdminID).Info("created admin")

	return a.newSession(dbAdmin)
}

// signUpCompleted reports whether there is nothing left to verify for email
// because its signup was already finalized.
func (a *AuthService) signUpCompleted(ctx context.Context, email string) bool {
	if _, ok := a.Pending.Get(email); ok {
		return false
	}
	_, found, err := a.findAdminByEmail(ctx, email)
	if err != nil {
		return false
	}
	return found
}
