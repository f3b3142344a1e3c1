package hub_errors

import (
	"database/sql"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

const (
	CodeUniqueConstraint     = "23505"
	CodeForeignKeyConstraint = "23503"
)

var (
	ErrInternal               = errors.New("internal service error. please try again later")
	ErrInvalidRequest         = errors.New("invalid request")
	ErrInvalidInput           = errors.New("invalid input")
	ErrEntityAlreadyExist     = errors.New("entity with given key already exist")
	ErrInvalidUserCredentials = errors.New("invalid email or password")
	ErrUnAuthorized           = errors.New("user not allowed to perform this action")
	ErrNotFound               = errors.New("entity not found")
	ErrInvalidOrExpiredOTP    = errors.New("invalid or expired otp")
	ErrNoPendingSignup        = errors.New("no pending signup for this email")
	ErrEmailServiceStopped    = errors.New("email service is stopped currently")
	ErrEmailDelivery          = errors.New("unable to deliver email")
)

// HandleDBErrors converts a db error into one of the sentinel errors above.
// errMsgs maps a pg error code to a map of constraint name -> user facing message.
func HandleDBErrors(
	err error,
	errMsgs map[string]map[string]string,
	contextMessage string,
) error {
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		log.Debugf("%s, %v", contextMessage, ErrNotFound)
		return fmt.Errorf("%w, %s", ErrNotFound, contextMessage)
	}

	// assume its an internal error first
	wrapped := fmt.Errorf(
		"%w, %s, %w",
		ErrInternal,
		contextMessage,
		err,
	)

	// check if its a pg error
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		log.Error(wrapped)
		return wrapped
	}

	if errMsgs == nil {
		log.Warnf("got null errMsgs")
		log.Error(wrapped)
		return wrapped
	}

	// check if its a foriegn key error
	if pgErr.Code == CodeForeignKeyConstraint {
		msgForeignKey, ok := errMsgs[CodeForeignKeyConstraint]
		if !ok {
			log.Warnf("no msg map found for foreign key constraint.")
			return fmt.Errorf(
				"%w, %s",
				ErrInvalidRequest,
				pgErr.Detail,
			)
		}
		return HandleForeignKeyError(pgErr, msgForeignKey)
	}

	// check if its a unique key error
	if pgErr.Code == CodeUniqueConstraint {
		msgUniqueConstraint, ok := errMsgs[CodeUniqueConstraint]
		if !ok {
			log.Warnf("no msg map found for unique key constraint.")
			return fmt.Errorf(
				"%w, %s",
				ErrEntityAlreadyExist,
				pgErr.Detail,
			)
		}
		return HandleUniqueKeyError(pgErr, msgUniqueConstraint)
	}

	// unknown error
	log.Error(wrapped)
	return wrapped
}

func HandleForeignKeyError(pgErr *pgconn.PgError, msgForeignKey map[string]string) error {
	msg, ok := msgForeignKey[pgErr.ConstraintName]
	if !ok {
		log.Warnf(
			"unknown foreign key violation, %s occured",
			pgErr.ConstraintName,
		)
		msg = pgErr.Detail
	}
	err := fmt.Errorf(
		"%w, %s",
		ErrInvalidRequest,
		msg,
	)
	log.Error(err)
	return err
}

func HandleUniqueKeyError(pgErr *pgconn.PgError, msgUniqueConstraint map[string]string) error {
	msg, ok := msgUniqueConstraint[pgErr.ConstraintName]
	if !ok {
		log.Warnf(
			"unknown unique key violation, %s occured",
			pgErr.ConstraintName,
		)
		msg = pgErr.Detail
	}
	err := fmt.Errorf(
		"%w, %s",
		ErrEntityAlreadyExist,
		msg,
	)
	log.Error(err)
	return err
}

// handles errors from talking to other processes (smtp server, db server)
func WrapIPCError(err error) error {
	var opError *net.OpError
	if errors.As(err, &opError) {
		err = fmt.Errorf(
			"%w, \"%s\" error occurred during \"%s\" operation, network: %s, dest: %s",
			ErrInternal,
			opError.Error(),
			opError.Op,
			opError.Net,
			opError.Addr,
		)
		return err
	}

	// unknown error
	err = fmt.Errorf(
		"%w, %w", ErrInternal, err,
	)
	return err
}
