package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
)

const DefaultSessionTTL = 24 * time.Hour

// JWTIssuer signs and parses the session credentials of admins.
type JWTIssuer struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func (j *JWTIssuer) Issue(adminID uuid.UUID, email string) (string, time.Time, error) {
	now := time.Now()
	if j.Now != nil {
		now = j.Now()
	}
	ttl := j.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	expiry := now.Add(ttl)

	claims := AdminCredentialClaims{
		AdminID: adminID,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.Secret)
	if err != nil {
		err = fmt.Errorf("%w, cannot sign jwt, %w", hub_errors.ErrInternal, err)
		log.Error(err)
		return "", time.Time{}, err
	}
	return token, expiry, nil
}

func (j *JWTIssuer) Parse(tokenString string) (AdminCredentialClaims, error) {
	var claims AdminCredentialClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return j.Secret, nil
		},
	)
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return AdminCredentialClaims{}, fmt.Errorf("%w, session expired. please login again", hub_errors.ErrUnAuthorized)
		}
		return AdminCredentialClaims{}, fmt.Errorf("%w, invalid session token", hub_errors.ErrUnAuthorized)
	}
	if !token.Valid {
		return AdminCredentialClaims{}, fmt.Errorf("%w, invalid session token", hub_errors.ErrUnAuthorized)
	}
	return claims, nil
}
