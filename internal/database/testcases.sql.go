package database

import (
	"context"

	"github.com/google/uuid"
)

const testcaseColumns = `testcase_id, problem_id, input, output, visible, created_by, created_at, updated_at`

func scanTestcase(row interface{ Scan(...any) error }) (Testcase, error) {
	var i Testcase
	err := row.Scan(
		&i.TestcaseID,
		&i.ProblemID,
		&i.Input,
		&i.Output,
		&i.Visible,
		&i.CreatedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createTestcase = `-- name: CreateTestcase :one
INSERT INTO testcases (testcase_id, problem_id, input, output, visible, created_by)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + testcaseColumns

type CreateTestcaseParams struct {
	TestcaseID uuid.UUID
	ProblemID  uuid.UUID
	Input      string
	Output     string
	Visible    bool
	CreatedBy  uuid.NullUUID
}

func (q *Queries) CreateTestcase(ctx context.Context, arg CreateTestcaseParams) (Testcase, error) {
	row := q.db.QueryRow(ctx, createTestcase,
		arg.TestcaseID,
		arg.ProblemID,
		arg.Input,
		arg.Output,
		arg.Visible,
		arg.CreatedBy,
	)
	return scanTestcase(row)
}

const listTestcases = `-- name: ListTestcases :many
SELECT ` + testcaseColumns + ` FROM testcases
WHERE problem_id = $1 AND (NOT $2::boolean OR visible)
ORDER BY created_at DESC, testcase_id DESC`

// ListTestcases returns the testcases of a problem, newest first.
// When visibleOnly is set hidden testcases are left out.
func (q *Queries) ListTestcases(ctx context.Context, problemID uuid.UUID, visibleOnly bool) ([]Testcase, error) {
	rows, err := q.db.Query(ctx, listTestcases, problemID, visibleOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Testcase{}
	for rows.Next() {
		i, err := scanTestcase(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getTestcase = `-- name: GetTestcase :one
SELECT ` + testcaseColumns + ` FROM testcases WHERE testcase_id = $1 AND problem_id = $2`

func (q *Queries) GetTestcase(ctx context.Context, testcaseID uuid.UUID, problemID uuid.UUID) (Testcase, error) {
	row := q.db.QueryRow(ctx, getTestcase, testcaseID, problemID)
	return scanTestcase(row)
}

const updateTestcase = `-- name: UpdateTestcase :one
UPDATE testcases
SET input = $3, output = $4, visible = $5, updated_at = NOW()
WHERE testcase_id = $1 AND problem_id = $2
RETURNING ` + testcaseColumns

type UpdateTestcaseParams struct {
	TestcaseID uuid.UUID
	ProblemID  uuid.UUID
	Input      string
	Output     string
	Visible    bool
}

func (q *Queries) UpdateTestcase(ctx context.Context, arg UpdateTestcaseParams) (Testcase, error) {
	row := q.db.QueryRow(ctx, updateTestcase,
		arg.TestcaseID,
		arg.ProblemID,
		arg.Input,
		arg.Output,
		arg.Visible,
	)
	return scanTestcase(row)
}

const deleteTestcase = `-- name: DeleteTestcase :execrows
DELETE FROM testcases WHERE testcase_id = $1 AND problem_id = $2`

func (q *Queries) DeleteTestcase(ctx context.Context, testcaseID uuid.UUID, problemID uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteTestcase, testcaseID, problemID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
