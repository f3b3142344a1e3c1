package testcase_service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tcp_snm/problemhub/internal/database"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
)

func dbTestcaseToServiceTestcase(dbTestcase database.Testcase) Testcase {
	var createdBy *uuid.UUID
	if dbTestcase.CreatedBy.Valid {
		createdBy = &dbTestcase.CreatedBy.UUID
	}
	return Testcase{
		TestcaseID: dbTestcase.TestcaseID,
		ProblemID:  dbTestcase.ProblemID,
		Input:      dbTestcase.Input,
		Output:     dbTestcase.Output,
		Visible:    dbTestcase.Visible,
		CreatedBy:  createdBy,
		CreatedAt:  dbTestcase.CreatedAt,
		UpdatedAt:  dbTestcase.UpdatedAt,
	}
}

func dbTestcasesToServiceTestcases(dbTestcases []database.Testcase) []Testcase {
	res := make([]Testcase, 0, len(dbTestcases))
	for _, dbTestcase := range dbTestcases {
		res = append(res, dbTestcaseToServiceTestcase(dbTestcase))
	}
	return res
}

// ensureProblem returns ErrNotFound when the problem does not exist.
func (t *TestcaseService) ensureProblem(ctx context.Context, problemID uuid.UUID) error {
	_, err := t.DB.GetProblemByID(ctx, problemID)
	if err != nil {
		return hub_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("no problem exist with id %v", problemID),
		)
	}
	return nil
}

func (t *TestcaseService) fetchTestcase(
	ctx context.Context,
	problemID uuid.UUID,
	testcaseID uuid.UUID,
) (database.Testcase, error) {
	if err := t.ensureProblem(ctx, problemID); err != nil {
		return database.Testcase{}, err
	}
	dbTestcase, err := t.DB.GetTestcase(ctx, testcaseID, problemID)
	if err != nil {
		return database.Testcase{}, hub_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("no testcase exist with id %v", testcaseID),
		)
	}
	return dbTestcase, nil
}
