package problem_service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/tcp_snm/problemhub/internal/database"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	DefaultPageSize = 100
	MaxPageSize     = 100
)

var (
	msgForeignKey = map[string]string{
		"problems_created_by_fkey": "creator of the problem does not exist",
	}

	errMsgs = map[string]map[string]string{
		hub_errors.CodeForeignKeyConstraint: msgForeignKey,
	}
)

// ProblemStore is satisfied by *database.Queries.
type ProblemStore interface {
	CreateProblem(ctx context.Context, arg database.CreateProblemParams) (database.Problem, error)
	GetProblemByID(ctx context.Context, problemID uuid.UUID) (database.Problem, error)
	ListProblems(ctx context.Context, arg database.ListProblemsParams) ([]database.Problem, error)
	UpdateProblem(ctx context.Context, arg database.UpdateProblemParams) (database.Problem, error)
	RemoveProblemImage(ctx context.Context, problemID uuid.UUID, image string) (database.Problem, error)
	DeleteProblem(ctx context.Context, problemID uuid.UUID) (int64, error)
}

// ImageStore is satisfied by *uploads.DiskStore.
type ImageStore interface {
	SaveImage(r io.Reader) (string, error)
	Delete(url string) error
}

type ProblemService struct {
	DB     ProblemStore
	Images ImageStore
}

type Hint struct {
	Text              string    `json:"text"`
	Order             int       `json:"order"`
	VisibleToStudents bool      `json:"visible_to_students"`
	CreatedAt         time.Time `json:"created_at"`
}

type HintInput struct {
	Text  string `json:"text" validate:"required"`
	Order int    `json:"order"`
	// defaults to true
	VisibleToStudents *bool `json:"visible_to_students"`
}

// Tags accepts either a json array or a string holding a json array,
// which is how multipart clients send it.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		parsed, err := ParseTags(encoded)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}

	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return fmt.Errorf("%w, tags must be an array of strings", hub_errors.ErrInvalidInput)
	}
	if tags == nil {
		tags = []string{}
	}
	*t = tags
	return nil
}

// ProblemRequest is used for both create and update.
// On update nil fields are left unchanged.
type ProblemRequest struct {
	Title       *string     `json:"title" validate:"omitempty,min=1,max=200"`
	Difficulty  *string     `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Tags        Tags        `json:"tags" validate:"dive,required"`
	Description *string     `json:"description"`
	Constraints *string     `json:"constraints"`
	Hints       []HintInput `json:"hints" validate:"dive"`
}

type Problem struct {
	ProblemID       uuid.UUID  `json:"problem_id"`
	Title           string     `json:"title"`
	Difficulty      string     `json:"difficulty"`
	Tags            []string   `json:"tags"`
	Description     string     `json:"description"`
	Images          []string   `json:"images"`
	Constraints     string     `json:"constraints"`
	Hints           []Hint     `json:"hints"`
	AcceptanceRate  float64    `json:"acceptance_rate"`
	SubmissionCount int32      `json:"submission_count"`
	CreatedBy       *uuid.UUID `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type ListProblemsRequest struct {
	Title      string `json:"title"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Tag        string `json:"tag"`
	PageNumber int32  `json:"page" validate:"omitempty,min=1"`
	PageSize   int32  `json:"page_size" validate:"omitempty,min=1,max=100"`
}
