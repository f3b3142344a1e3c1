package admin_service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tcp_snm/problemhub/internal/database"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"github.com/tcp_snm/problemhub/internal/service"
)

var (
	msgUniqueKey = map[string]string{
		"uq_admins_email": "admin with that email already exist",
	}

	errMsgs = map[string]map[string]string{
		hub_errors.CodeUniqueConstraint: msgUniqueKey,
	}
)

type AdminStore interface {
	GetAdminByID(ctx context.Context, adminID uuid.UUID) (database.Admin, error)
	UpdateAdmin(ctx context.Context, arg database.UpdateAdminParams) (database.Admin, error)
	DeleteAdmin(ctx context.Context, adminID uuid.UUID) (int64, error)
}

type AdminService struct {
	DB     AdminStore
	Hasher service.PasswordHasher
}

type Admin struct {
	AdminID   uuid.UUID `json:"admin_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// nil fields are left unchanged
type EditProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
}
