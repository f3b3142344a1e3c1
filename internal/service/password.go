package service

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"golang.org/x/crypto/bcrypt"
)

const DefaultBcryptCost = 10

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil only if password matches hash
	Compare(hash string, password string) error
}

type BcryptHasher struct {
	Cost int
}

func (b BcryptHasher) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		err = fmt.Errorf("%w, cannot hash password, %w", hub_errors.ErrInternal, err)
		log.Error(err)
		return "", err
	}
	return string(hash), nil
}

func (b BcryptHasher) Compare(hash string, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return hub_errors.ErrInvalidUserCredentials
	}
	err = fmt.Errorf("%w, cannot compare password hash, %w", hub_errors.ErrInternal, err)
	log.Error(err)
	return err
}
