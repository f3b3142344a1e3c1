package problem_service

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"github.com/tcp_snm/problemhub/internal/service"
)

// DeleteProblem removes the problem, its testcases and its image files.
func (p *ProblemService) DeleteProblem(ctx context.Context, problemID uuid.UUID) error {
	if _, err := service.GetClaimsFromContext(ctx); err != nil {
		return err
	}

	dbProblem, err := p.fetchProblem(ctx, problemID)
	if err != nil {
		return err
	}

	// testcases go with the problem (on delete cascade)
	rows, err := p.DB.DeleteProblem(ctx, problemID)
	if err != nil {
		return hub_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot delete problem %v", problemID),
		)
	}
	if rows == 0 {
		return fmt.Errorf("%w, no problem exist with id %v", hub_errors.ErrNotFound, problemID)
	}

	p.discardImages(dbProblem.Images)

	log.WithField("problem_id", problemID).Info("problem deleted")
	return nil
}

func (p *ProblemService) DeleteProblemImage(
	ctx context.Context,
	problemID uuid.UUID,
	image string,
) (Problem, error) {
	if _, err := service.GetClaimsFromContext(ctx); err != nil {
		return Problem{}, err
	}
	if image == "" {
		return Problem{}, fmt.Errorf("%w, image is required", hub_errors.ErrInvalidInput)
	}

	dbProblem, err := p.fetchProblem(ctx, problemID)
	if err != nil {
		return Problem{}, err
	}
	if !slices.Contains(dbProblem.Images, image) {
		return Problem{}, fmt.Errorf(
			"%w, image %s is not attached to problem %v",
			hub_errors.ErrNotFound,
			image,
			problemID,
		)
	}

	updated, err := p.DB.RemoveProblemImage(ctx, problemID, image)
	if err != nil {
		return Problem{}, hub_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot remove image from problem %v", problemID),
		)
	}

	p.discardImages([]string{image})

	log.WithFields(log.Fields{
		"problem_id": problemID,
		"image":      image,
	}).Info("problem image deleted")

	return dbProblemToServiceProblem(updated)
}
