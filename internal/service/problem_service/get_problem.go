package problem_service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/database"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"github.com/tcp_snm/problemhub/internal/service"
)

func (p *ProblemService) GetProblem(ctx context.Context, problemID uuid.UUID) (Problem, error) {
	dbProblem, err := p.fetchProblem(ctx, problemID)
	if err != nil {
		return Problem{}, err
	}
	return dbProblemToServiceProblem(dbProblem)
}

// ListProblems returns the newest problems first, one page at a time.
func (p *ProblemService) ListProblems(
	ctx context.Context,
	request ListProblemsRequest,
) ([]Problem, error) {
	// validate
	if err := service.ValidateInput(request); err != nil {
		return nil, err
	}

	if request.PageNumber == 0 {
		request.PageNumber = 1
	}
	if request.PageSize == 0 {
		request.PageSize = DefaultPageSize
	}
	offset := int64(request.PageNumber-1) * int64(request.PageSize)
	if offset > math.MaxInt32 {
		return nil, fmt.Errorf(
			"%w, page %d is out of range",
			hub_errors.ErrInvalidInput,
			request.PageNumber,
		)
	}

	params := database.ListProblemsParams{
		Title:  request.Title,
		Limit:  request.PageSize,
		Offset: int32(offset),
	}
	if request.Difficulty != "" {
		params.Difficulty = &request.Difficulty
	}
	if request.Tag != "" {
		params.Tag = &request.Tag
	}

	dbProblems, err := p.DB.ListProblems(ctx, params)
	if err != nil {
		err = fmt.Errorf(
			"%w, cannot fetch problems by filters from db, %w",
			hub_errors.ErrInternal,
			err,
		)
		log.WithField("request", request).Error(err)
		return nil, err
	}

	res := make([]Problem, 0, len(dbProblems))
	for _, dbProblem := range dbProblems {
		problem, err := dbProblemToServiceProblem(dbProblem)
		if err != nil {
			return nil, err
		}
		res = append(res, problem)
	}
	return res, nil
}
