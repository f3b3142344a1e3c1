package hub_errors

import (
	"errors"
	"net"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestHandleDBErrors(t *testing.T) {
	errMsgs := map[string]map[string]string{
		CodeUniqueConstraint: {
			"uq_admins_email": "admin with that email already exist",
		},
	}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "no rows",
			err:  pgx.ErrNoRows,
			want: ErrNotFound,
		},
		{
			name: "known unique violation",
			err: &pgconn.PgError{
				Code:           CodeUniqueConstraint,
				ConstraintName: "uq_admins_email",
			},
			want: ErrEntityAlreadyExist,
		},
		{
			name: "unknown unique violation",
			err: &pgconn.PgError{
				Code:           CodeUniqueConstraint,
				ConstraintName: "uq_something_else",
			},
			want: ErrEntityAlreadyExist,
		},
		{
			name: "foreign key without messages",
			err: &pgconn.PgError{
				Code: CodeForeignKeyConstraint,
			},
			want: ErrInvalidRequest,
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HandleDBErrors(tt.err, errMsgs, "test")
			if !errors.Is(got, tt.want) {
				t.Errorf("HandleDBErrors() = %v, want wrapping %v", got, tt.want)
			}
		})
	}
}

func TestHandleUniqueKeyErrorMessage(t *testing.T) {
	err := HandleUniqueKeyError(
		&pgconn.PgError{ConstraintName: "uq_admins_email"},
		map[string]string{"uq_admins_email": "admin with that email already exist"},
	)
	want := "entity with given key already exist, admin with that email already exist"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestWrapIPCError(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	if err := WrapIPCError(opErr); !errors.Is(err, ErrInternal) {
		t.Errorf("expected ErrInternal, got %v", err)
	}
	if err := WrapIPCError(errors.New("boom")); !errors.Is(err, ErrInternal) {
		t.Errorf("expected ErrInternal, got %v", err)
	}
}
