package auth_service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tcp_snm/problemhub/internal/database"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"github.com/tcp_snm/problemhub/internal/service"
	"github.com/tcp_snm/problemhub/internal/service/otp_service"
	"github.com/tcp_snm/problemhub/internal/service/pending_service"
)

var (
	msgUniqueKey = map[string]string{
		"uq_admins_email": "admin with that email already exist",
	}

	errMsgs = map[string]map[string]string{
		hub_errors.CodeUniqueConstraint: msgUniqueKey,
	}
)

// AdminStore is the persistent account store. *database.Queries satisfies it.
type AdminStore interface {
	GetAdminByEmail(ctx context.Context, email string) (database.Admin, error)
	GetAdminByID(ctx context.Context, adminID uuid.UUID) (database.Admin, error)
	CreateAdmin(ctx context.Context, arg database.CreateAdminParams) (database.Admin, error)
	UpdateAdminPassword(ctx context.Context, adminID uuid.UUID, passwordHash string) (int64, error)
}

// Notifier delivers one time codes out of band.
type Notifier interface {
	SendOTP(ctx context.Context, email string, code string) error
}

type AuthService struct {
	DB      AdminStore
	OTP     *otp_service.OTPService
	Pending *pending_service.PendingService
	Mailer  Notifier
	Hasher  service.PasswordHasher
	Tokens  *service.JWTIssuer
}

type SignUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

func (s SignUpRequest) String() string {
	return fmt.Sprintf("name=%s, email=%s", s.Name, s.Email)
}

type VerifySignUpRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

type OTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// either Email or AdminID identifies the admin
type ResetPasswordRequest struct {
	Email       string     `json:"email" validate:"omitempty,email"`
	AdminID     *uuid.UUID `json:"admin_id"`
	NewPassword string     `json:"new_password" validate:"required,min=6,max=72"`
}

func (r ResetPasswordRequest) String() string {
	ids := "<nil>"
	if r.AdminID != nil {
		ids = r.AdminID.String()
	}
	return fmt.Sprintf("email=%s, admin_id=%s", r.Email, ids)
}

type AdminResponse struct {
	AdminID uuid.UUID `json:"admin_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
}

type SessionResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     AdminResponse `json:"admin"`
}
