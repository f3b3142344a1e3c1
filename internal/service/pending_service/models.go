package pending_service

import (
	"fmt"
	"time"

	"github.com/tcp_snm/problemhub/internal/cache"
)

// PendingRegistration is a signup waiting for its otp to be verified.
type PendingRegistration struct {
	Name        string
	Email       string
	RawPassword string
	CreatedAt   time.Time
}

// never print the password
func (p PendingRegistration) String() string {
	return fmt.Sprintf("name=%s, email=%s, created_at=%v", p.Name, p.Email, p.CreatedAt)
}

type PendingService struct {
	Store cache.Store[PendingRegistration]
	Now   func() time.Time
}
