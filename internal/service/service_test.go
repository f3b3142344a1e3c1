package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
)

func TestGenerateSecureRandomInt(t *testing.T) {
	for range 500 {
		n, err := GenerateSecureRandomInt(100000, 999999)
		if err != nil {
			t.Fatal(err)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("%d out of range", n)
		}
	}
	if _, err := GenerateSecureRandomInt(5, 1); err == nil {
		t.Error("expected error when min > max")
	}
}

func TestValidateInput(t *testing.T) {
	type request struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	tests := []struct {
		name    string
		input   request
		wantErr string
	}{
		{"valid", request{"ada@x.com", "secret1"}, ""},
		{"missing email", request{"", "secret1"}, "invalid input, email is required"},
		{"bad email", request{"ada", "secret1"}, "invalid input, email must be a valid email address"},
		{"short password", request{"ada@x.com", "abc"}, "invalid input, password must be at least 6 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error %v", err)
				}
				return
			}
			if !errors.Is(err, hub_errors.ErrInvalidInput) {
				t.Fatalf("error = %v, want ErrInvalidInput", err)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestJWTIssuer(t *testing.T) {
	issuer := &JWTIssuer{Secret: []byte("test-secret"), TTL: time.Hour}
	adminID := uuid.New()

	token, expiry, err := issuer.Issue(adminID, "ada@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if time.Until(expiry) <= 0 {
		t.Errorf("expiry %v is not in the future", expiry)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.AdminID != adminID || claims.Email != "ada@x.com" {
		t.Errorf("unexpected claims %+v", claims)
	}

	other := &JWTIssuer{Secret: []byte("other-secret")}
	if _, err := other.Parse(token); !errors.Is(err, hub_errors.ErrUnAuthorized) {
		t.Errorf("token signed with another secret: error = %v, want ErrUnAuthorized", err)
	}
}

func TestJWTIssuerExpired(t *testing.T) {
	issuer := &JWTIssuer{
		Secret: []byte("test-secret"),
		TTL:    time.Minute,
		Now:    func() time.Time { return time.Now().Add(-time.Hour) },
	}
	token, _, err := issuer.Issue(uuid.New(), "ada@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := issuer.Parse(token); !errors.Is(err, hub_errors.ErrUnAuthorized) {
		t.Errorf("error = %v, want ErrUnAuthorized", err)
	}
}

func TestBcryptHasher(t *testing.T) {
	hasher := BcryptHasher{Cost: 4}
	hash, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "secret1" {
		t.Fatal("hash must differ from the password")
	}
	if err := hasher.Compare(hash, "secret1"); err != nil {
		t.Errorf("Compare() with right password = %v", err)
	}
	if err := hasher.Compare(hash, "secret2"); !errors.Is(err, hub_errors.ErrInvalidUserCredentials) {
		t.Errorf("Compare() with wrong password = %v, want ErrInvalidUserCredentials", err)
	}
}

func TestClaimsContext(t *testing.T) {
	if _, err := GetClaimsFromContext(context.Background()); !errors.Is(err, hub_errors.ErrInternal) {
		t.Errorf("error = %v, want ErrInternal", err)
	}

	claims := AdminCredentialClaims{AdminID: uuid.New(), Email: "ada@x.com"}
	got, err := GetClaimsFromContext(WithClaims(context.Background(), claims))
	if err != nil {
		t.Fatal(err)
	}
	if got.AdminID != claims.AdminID {
		t.Errorf("AdminID = %v, want %v", got.AdminID, claims.AdminID)
	}
}
