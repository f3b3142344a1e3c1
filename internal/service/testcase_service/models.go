package testcase_service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tcp_snm/problemhub/internal/database"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
)

var (
	msgForeignKey = map[string]string{
		"fk_testcases_problem":      "problem of the testcase does not exist",
		"testcases_created_by_fkey": "creator of the testcase does not exist",
	}

	errMsgs = map[string]map[string]string{
		hub_errors.CodeForeignKeyConstraint: msgForeignKey,
	}
)

// TestcaseStore is satisfied by *database.Store.
type TestcaseStore interface {
	GetProblemByID(ctx context.Context, problemID uuid.UUID) (database.Problem, error)
	CreateTestcases(ctx context.Context, args []database.CreateTestcaseParams) ([]database.Testcase, error)
	ListTestcases(ctx context.Context, problemID uuid.UUID, visibleOnly bool) ([]database.Testcase, error)
	GetTestcase(ctx context.Context, testcaseID uuid.UUID, problemID uuid.UUID) (database.Testcase, error)
	UpdateTestcase(ctx context.Context, arg database.UpdateTestcaseParams) (database.Testcase, error)
	DeleteTestcase(ctx context.Context, testcaseID uuid.UUID, problemID uuid.UUID) (int64, error)
}

type TestcaseService struct {
	DB TestcaseStore
}

type TestcaseInput struct {
	Input  string `json:"input" validate:"required"`
	Output string `json:"output" validate:"required"`
}

type AddTestcasesRequest struct {
	Visible []TestcaseInput `json:"visible" validate:"dive"`
	Hidden  []TestcaseInput `json:"hidden" validate:"dive"`
}

type AddTestcasesResponse struct {
	Count     int        `json:"count"`
	Testcases []Testcase `json:"testcases"`
}

// nil fields are left unchanged
type UpdateTestcaseRequest struct {
	Input   *string `json:"input" validate:"omitempty,min=1"`
	Output  *string `json:"output" validate:"omitempty,min=1"`
	Visible *bool   `json:"visible"`
}

type Testcase struct {
	TestcaseID uuid.UUID  `json:"testcase_id"`
	ProblemID  uuid.UUID  `json:"problem_id"`
	Input      string     `json:"input"`
	Output     string     `json:"output"`
	Visible    bool       `json:"visible"`
	CreatedBy  *uuid.UUID `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
