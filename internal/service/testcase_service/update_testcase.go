package testcase_service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/database"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"github.com/tcp_snm/problemhub/internal/service"
)

func (t *TestcaseService) Update(
	ctx context.Context,
	problemID uuid.UUID,
	testcaseID uuid.UUID,
	request UpdateTestcaseRequest,
) (Testcase, error) {
	if err := service.ValidateInput(request); err != nil {
		return Testcase{}, err
	}

	dbTestcase, err := t.fetchTestcase(ctx, problemID, testcaseID)
	if err != nil {
		return Testcase{}, err
	}

	params := database.UpdateTestcaseParams{
		TestcaseID: dbTestcase.TestcaseID,
		ProblemID:  dbTestcase.ProblemID,
		Input:      dbTestcase.Input,
		Output:     dbTestcase.Output,
		Visible:    dbTestcase.Visible,
	}
	if request.Input != nil {
		params.Input = *request.Input
	}
	if request.Output != nil {
		params.Output = *request.Output
	}
	if request.Visible != nil {
		params.Visible = *request.Visible
	}

	updated, err := t.DB.UpdateTestcase(ctx, params)
	if err != nil {
		return Testcase{}, hub_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot update testcase %v", testcaseID),
		)
	}

	log.WithFields(log.Fields{
		"problem_id":  problemID,
		"testcase_id": testcaseID,
	}).Info("testcase updated")

	return dbTestcaseToServiceTestcase(updated), nil
}

func (t *TestcaseService) Delete(
	ctx context.Context,
	problemID uuid.UUID,
	testcaseID uuid.UUID,
) error {
	if err := t.ensureProblem(ctx, problemID); err != nil {
		return err
	}

	rows, err := t.DB.DeleteTestcase(ctx, testcaseID, problemID)
	if err != nil {
		return hub_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot delete testcase %v", testcaseID),
		)
	}
	if rows == 0 {
		return fmt.Errorf("%w, no testcase exist with id %v", hub_errors.ErrNotFound, testcaseID)
	}

	log.WithFields(log.Fields{
		"problem_id":  problemID,
		"testcase_id": testcaseID,
	}).Info("testcase deleted")
	return nil
}
