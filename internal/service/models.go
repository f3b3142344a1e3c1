package service

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type AdminCredentialClaims struct {
	AdminID uuid.UUID `json:"admin_id"`
	Email   string    `json:"email"`
	jwt.RegisteredClaims
}
