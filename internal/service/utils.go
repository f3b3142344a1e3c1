package service

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"reflect"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
)

// GenerateSecureRandomInt returns a uniformly distributed int in [min, max].
func GenerateSecureRandomInt(min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("min cannot be greater than max")
	}
	diff := big.NewInt(int64(max - min + 1))
	result, err := crand.Int(crand.Reader, diff)
	if err != nil {
		log.Errorf("unable to generate secure random int, %v", err)
		return 0, errors.Join(hub_errors.ErrInternal, err)
	}
	return int(result.Int64()) + min, nil
}

// custom function for translating validation error into user readable errors
func translateValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field())
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "len":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be exactly %s characters long", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must have exactly %s items", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", e.Field(), e.Param())
	case "numeric":
		return fmt.Sprintf("%s must be a numeric value", e.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", e.Field(), e.Param())
	case "required_without":
		return fmt.Sprintf("%s is required when %s is not provided", e.Field(), e.Param())
	default:
		return fmt.Sprintf("Validation failed for %s with rule %s", e.Field(), e.Tag())
	}
}

// ValidateInput validates the input struct using the package validator.
// If validation fails, it logs and returns the first user-friendly error message.
// Returns nil if input is valid.
func ValidateInput(inp any) error {
	InitializeServices()
	if err := validate.Struct(inp); err != nil {
		var validationErrors validator.ValidationErrors
		// Check if the error is a set of validation errors
		if errors.As(err, &validationErrors) {
			if len(validationErrors) > 0 {
				// Grab and translate the first validation error for user feedback
				errorMessage := translateValidationError(validationErrors[0])
				log.Debug(errorMessage)
				// Wrap the error with a custom invalid input error
				return fmt.Errorf("%w, %s", hub_errors.ErrInvalidInput, errorMessage)
			}
		}
		// non struct input or a broken validation tag
		log.Errorf("unable to validate %T, %v", inp, err)
		return fmt.Errorf("%w, %w", hub_errors.ErrInternal, err)
	}
	// All good, input is valid
	return nil
}
