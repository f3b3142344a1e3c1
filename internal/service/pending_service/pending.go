package pending_service

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Save stores data for email, overwriting any previous pending signup.
func (p *PendingService) Save(email string, data PendingRegistration) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	data.Email = email
	data.CreatedAt = now()
	p.Store.Set(email, data)
	log.WithField("email", email).Debug("saved pending signup")
}

func (p *PendingService) Get(email string) (PendingRegistration, bool) {
	return p.Store.Get(email)
}

func (p *PendingService) Remove(email string) {
	p.Store.Delete(email)
}
