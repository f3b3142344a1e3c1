package service

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
)

type contextKey string

const (
	MinPasswordLength = 6
	// bcrypt ignores everything after 72 bytes
	MaxPasswordLength                = 72
	KeyJWTSecret                     = "JWT_SECRET"
	KeyAdminID                       = "admin_id"
	KeyEmail                         = "email"
	KeyCtxAdminCredClaims contextKey = "AdminCredClaims"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func InitializeServices() {
	validateOnce.Do(func() {
		validate = initValidator() // used for validating struct fields
	})
}

func initValidator() *validator.Validate {
	log.Info("initializing validator")
	validate := validator.New(validator.WithRequiredStructEnabled())

	// This makes error.Field() return "new_password" instead of "NewPassword"
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// WithClaims returns a copy of ctx carrying the claims of the logged in admin.
func WithClaims(ctx context.Context, claims AdminCredentialClaims) context.Context {
	return context.WithValue(ctx, KeyCtxAdminCredClaims, claims)
}

func GetClaimsFromContext(
	ctx context.Context,
) (claims AdminCredentialClaims, err error) {
	claimsValue := ctx.Value(KeyCtxAdminCredClaims)
	claims, ok := claimsValue.(AdminCredentialClaims)
	if !ok {
		err = fmt.Errorf(
			"%w, unable to parse claims to service.AdminCredentialClaims, type of claims found is %T",
			hub_errors.ErrInternal,
			claimsValue,
		)
		log.Error(err)
	}
	return
}
