package testcase_service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
)

func (t *TestcaseService) listTestcases(
	ctx context.Context,
	problemID uuid.UUID,
	visibleOnly bool,
) ([]Testcase, error) {
	if err := t.ensureProblem(ctx, problemID); err != nil {
		return nil, err
	}

	dbTestcases, err := t.DB.ListTestcases(ctx, problemID, visibleOnly)
	if err != nil {
		err = fmt.Errorf(
			"%w, cannot fetch testcases of problem %v, %w",
			hub_errors.ErrInternal,
			problemID,
			err,
		)
		log.Error(err)
		return nil, err
	}
	return dbTestcasesToServiceTestcases(dbTestcases), nil
}

// GetAll returns visible and hidden testcases, newest first.
func (t *TestcaseService) GetAll(ctx context.Context, problemID uuid.UUID) ([]Testcase, error) {
	return t.listTestcases(ctx, problemID, false)
}

// GetPublic returns only the visible testcases.
func (t *TestcaseService) GetPublic(ctx context.Context, problemID uuid.UUID) ([]Testcase, error) {
	return t.listTestcases(ctx, problemID, true)
}

func (t *TestcaseService) GetSingle(
	ctx context.Context,
	problemID uuid.UUID,
	testcaseID uuid.UUID,
) (Testcase, error) {
	dbTestcase, err := t.fetchTestcase(ctx, problemID, testcaseID)
	if err != nil {
		return Testcase{}, err
	}
	return dbTestcaseToServiceTestcase(dbTestcase), nil
}
