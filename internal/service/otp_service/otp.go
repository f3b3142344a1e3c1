package otp_service

import (
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/service"
)

func (o *OTPService) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

func (o *OTPService) ttl() time.Duration {
	if o.TTL <= 0 {
		return DefaultOTPTTL
	}
	return o.TTL
}

// Issue generates a new code for email, replacing any code issued before.
// The caller is responsible for delivering it.
func (o *OTPService) Issue(email string) (string, error) {
	n, err := service.GenerateSecureRandomInt(minOTP, maxOTP)
	if err != nil {
		return "", err
	}
	code := strconv.Itoa(n)

	o.Store.Set(email, OTPRecord{
		Code:      code,
		ExpiresAt: o.now().Add(o.ttl()),
	})
	log.WithField("email", email).Debug("issued otp")

	return code, nil
}

// Verify reports whether code is the live code for email. A successful
// verification consumes the code.
func (o *OTPService) Verify(email string, code string) bool {
	record, ok := o.Store.Get(email)
	if !ok {
		return false
	}
	if o.now().After(record.ExpiresAt) {
		o.Store.Delete(email)
		log.WithField("email", email).Debug("otp expired")
		return false
	}
	if record.Code != code {
		return false
	}
	o.Store.Delete(email)
	return true
}
