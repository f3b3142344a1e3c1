package problem_service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/database"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"github.com/tcp_snm/problemhub/internal/service"
)

func (p *ProblemService) CreateProblem(
	ctx context.Context,
	request ProblemRequest,
	images []io.Reader,
) (Problem, error) {
	// the creator comes from the session
	claims, err := service.GetClaimsFromContext(ctx)
	if err != nil {
		return Problem{}, err
	}

	// validate
	if request.Title == nil || strings.TrimSpace(*request.Title) == "" {
		return Problem{}, fmt.Errorf("%w, title is required", hub_errors.ErrInvalidInput)
	}
	if err = service.ValidateInput(request); err != nil {
		return Problem{}, err
	}

	difficulty := DifficultyEasy
	if request.Difficulty != nil {
		difficulty = *request.Difficulty
	}
	tags := []string(request.Tags)
	if tags == nil {
		tags = []string{}
	}
	var description, constraints string
	if request.Description != nil {
		description = *request.Description
	}
	if request.Constraints != nil {
		constraints = *request.Constraints
	}

	hints, err := marshalHints(hintsFromInput(request.Hints, time.Now()))
	if err != nil {
		return Problem{}, err
	}

	urls, err := p.saveImages(images)
	if err != nil {
		return Problem{}, err
	}

	dbProblem, err := p.DB.CreateProblem(ctx, database.CreateProblemParams{
		ProblemID:   uuid.New(),
		Title:       strings.TrimSpace(*request.Title),
		Difficulty:  difficulty,
		Tags:        tags,
		Description: description,
		Images:      urls,
		Constraints: constraints,
		Hints:       hints,
		CreatedBy:   uuid.NullUUID{UUID: claims.AdminID, Valid: true},
	})
	if err != nil {
		p.discardImages(urls)
		return Problem{}, hub_errors.HandleDBErrors(
			err,
			errMsgs,
			"failed to insert problem into db",
		)
	}

	log.WithFields(log.Fields{
		"problem_id": dbProblem.ProblemID,
		"admin_id":   claims.AdminID,
		"images":     len(urls),
	}).Info("problem created")

	return dbProblemToServiceProblem(dbProblem)
}
