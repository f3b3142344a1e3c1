package database

import (
	"time"

	"github.com/google/uuid"
)

type Admin struct {
	AdminID      uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Problem struct {
	ProblemID       uuid.UUID
	Title           string
	Difficulty      string
	Tags            []string
	Description     string
	Images          []string
	Constraints     string
	Hints           []byte
	AcceptanceRate  float64
	SubmissionCount int32
	CreatedBy       uuid.NullUUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Testcase struct {
	TestcaseID uuid.UUID
	ProblemID  uuid.UUID
	Input      string
	Output     string
	Visible    bool
	CreatedBy  uuid.NullUUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
