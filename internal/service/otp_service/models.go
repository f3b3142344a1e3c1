package otp_service

import (
	"time"

	"github.com/tcp_snm/problemhub/internal/cache"
)

const (
	DefaultOTPTTL = 5 * time.Minute
	minOTP        = 100000
	maxOTP        = 999999
)

type OTPRecord struct {
	Code      string
	ExpiresAt time.Time
}

// OTPService issues single use numeric codes bound to an email.
// At most one record is kept per email.
type OTPService struct {
	Store cache.Store[OTPRecord]
	TTL   time.Duration
	Now   func() time.Time
}
