package problem_service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/database"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
)

// ParseTags decodes a json array of strings as sent in multipart forms.
// An empty string yields no tags.
func ParseTags(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf(
			"%w, tags must be a json array of strings, got %q",
			hub_errors.ErrInvalidInput,
			raw,
		)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

func hintsFromInput(inputs []HintInput, now time.Time) []Hint {
	hints := make([]Hint, 0, len(inputs))
	for _, in := range inputs {
		visible := true
		if in.VisibleToStudents != nil {
			visible = *in.VisibleToStudents
		}
		hints = append(hints, Hint{
			Text:              in.Text,
			Order:             in.Order,
			VisibleToStudents: visible,
			CreatedAt:         now,
		})
	}
	return hints
}

func marshalHints(hints []Hint) ([]byte, error) {
	if hints == nil {
		hints = []Hint{}
	}
	data, err := json.Marshal(hints)
	if err != nil {
		err = fmt.Errorf("%w, unable to marshal hints, %w", hub_errors.ErrInternal, err)
		log.Error(err)
		return nil, err
	}
	return data, nil
}

func dbProblemToServiceProblem(dbProblem database.Problem) (Problem, error) {
	hints := []Hint{}
	if len(dbProblem.Hints) > 0 {
		if err := json.Unmarshal(dbProblem.Hints, &hints); err != nil {
			err = fmt.Errorf(
				"%w, cannot unmarshal hints of problem %v, %w",
				hub_errors.ErrInternal,
				dbProblem.ProblemID,
				err,
			)
			log.Error(err)
			return Problem{}, err
		}
	}

	var createdBy *uuid.UUID
	if dbProblem.CreatedBy.Valid {
		createdBy = &dbProblem.CreatedBy.UUID
	}

	tags := dbProblem.Tags
	if tags == nil {
		tags = []string{}
	}
	images := dbProblem.Images
	if images == nil {
		images = []string{}
	}

	return Problem{
		ProblemID:       dbProblem.ProblemID,
		Title:           dbProblem.Title,
		Difficulty:      dbProblem.Difficulty,
		Tags:            tags,
		Description:     dbProblem.Description,
		Images:          images,
		Constraints:     dbProblem.Constraints,
		Hints:           hints,
		AcceptanceRate:  dbProblem.AcceptanceRate,
		SubmissionCount: dbProblem.SubmissionCount,
		CreatedBy:       createdBy,
		CreatedAt:       dbProblem.CreatedAt,
		UpdatedAt:       dbProblem.UpdatedAt,
	}, nil
}

func (p *ProblemService) fetchProblem(ctx context.Context, problemID uuid.UUID) (database.Problem, error) {
	dbProblem, err := p.DB.GetProblemByID(ctx, problemID)
	if err != nil {
		return database.Problem{}, hub_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("no problem exist with id %v", problemID),
		)
	}
	return dbProblem, nil
}

// saveImages stores every image or none of them.
func (p *ProblemService) saveImages(images []io.Reader) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, image := range images {
		url, err := p.Images.SaveImage(image)
		if err != nil {
			p.discardImages(urls)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (p *ProblemService) discardImages(urls []string) {
	for _, url := range urls {
		if err := p.Images.Delete(url); err != nil {
			log.WithField("image", url).Warnf("cannot remove image, %v", err)
		}
	}
}
