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

// AddTestcases stores the visible and hidden testcases of a problem in one
// transaction.
func (t *TestcaseService) AddTestcases(
	ctx context.Context,
	problemID uuid.UUID,
	request AddTestcasesRequest,
) (AddTestcasesResponse, error) {
	claims, err := service.GetClaimsFromContext(ctx)
	if err != nil {
		return AddTestcasesResponse{}, err
	}

	if err = t.ensureProblem(ctx, problemID); err != nil {
		return AddTestcasesResponse{}, err
	}

	// validate
	if err = service.ValidateInput(request); err != nil {
		return AddTestcasesResponse{}, err
	}

	createdBy := uuid.NullUUID{UUID: claims.AdminID, Valid: true}
	params := make([]database.CreateTestcaseParams, 0, len(request.Visible)+len(request.Hidden))
	for _, tc := range request.Visible {
		params = append(params, database.CreateTestcaseParams{
			TestcaseID: uuid.New(),
			ProblemID:  problemID,
			Input:      tc.Input,
			Output:     tc.Output,
			Visible:    true,
			CreatedBy:  createdBy,
		})
	}
	for _, tc := range request.Hidden {
		params = append(params, database.CreateTestcaseParams{
			TestcaseID: uuid.New(),
			ProblemID:  problemID,
			Input:      tc.Input,
			Output:     tc.Output,
			Visible:    false,
			CreatedBy:  createdBy,
		})
	}

	inserted, err := t.DB.CreateTestcases(ctx, params)
	if err != nil {
		return AddTestcasesResponse{}, hub_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot insert testcases of problem %v", problemID),
		)
	}

	log.WithFields(log.Fields{
		"problem_id": problemID,
		"visible":    len(request.Visible),
		"hidden":     len(request.Hidden),
	}).Info("testcases added")

	return AddTestcasesResponse{
		Count:     len(inserted),
		Testcases: dbTestcasesToServiceTestcases(inserted),
	}, nil
}
