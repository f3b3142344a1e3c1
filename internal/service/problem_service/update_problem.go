package problem_service

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/database"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"github.com/tcp_snm/problemhub/internal/service"
)

// UpdateProblem applies the non nil fields of request. New images are
// appended to the existing ones.
func (p *ProblemService) UpdateProblem(
	ctx context.Context,
	problemID uuid.UUID,
	request ProblemRequest,
	images []io.Reader,
) (Problem, error) {
	if _, err := service.GetClaimsFromContext(ctx); err != nil {
		return Problem{}, err
	}
	if err := service.ValidateInput(request); err != nil {
		return Problem{}, err
	}
	if request.Title != nil && strings.TrimSpace(*request.Title) == "" {
		return Problem{}, fmt.Errorf("%w, title cannot be empty", hub_errors.ErrInvalidInput)
	}

	dbProblem, err := p.fetchProblem(ctx, problemID)
	if err != nil {
		return Problem{}, err
	}

	params := database.UpdateProblemParams{
		ProblemID:   dbProblem.ProblemID,
		Title:       dbProblem.Title,
		Difficulty:  dbProblem.Difficulty,
		Tags:        dbProblem.Tags,
		Description: dbProblem.Description,
		Images:      slices.Clone(dbProblem.Images),
		Constraints: dbProblem.Constraints,
		Hints:       dbProblem.Hints,
	}
	if request.Title != nil {
		params.Title = strings.TrimSpace(*request.Title)
	}
	if request.Difficulty != nil {
		params.Difficulty = *request.Difficulty
	}
	if request.Tags != nil {
		params.Tags = request.Tags
	}
	if request.Description != nil {
		params.Description = *request.Description
	}
	if request.Constraints != nil {
		params.Constraints = *request.Constraints
	}
	if request.Hints != nil {
		params.Hints, err = marshalHints(hintsFromInput(request.Hints, time.Now()))
		if err != nil {
			return Problem{}, err
		}
	}
	if params.Tags == nil {
		params.Tags = []string{}
	}
	if params.Images == nil {
		params.Images = []string{}
	}

	urls, err := p.saveImages(images)
	if err != nil {
		return Problem{}, err
	}
	params.Images = append(params.Images, urls...)

	updated, err := p.DB.UpdateProblem(ctx, params)
	if err != nil {
		p.discardImages(urls)
		return Problem{}, hub_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot update problem %v", problemID),
		)
	}

	log.WithFields(log.Fields{
		"problem_id": problemID,
		"new_images": len(urls),
	}).Info("problem updated")

	return dbProblemToServiceProblem(updated)
}
