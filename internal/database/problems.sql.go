package database

import (
	"context"

	"github.com/google/uuid"
)

const problemColumns = `problem_id, title, difficulty, tags, description, images, constraints,
hints, acceptance_rate, submission_count, created_by, created_at, updated_at`

func scanProblem(row interface{ Scan(...any) error }) (Problem, error) {
	var i Problem
	err := row.Scan(
		&i.ProblemID,
		&i.Title,
		&i.Difficulty,
		&i.Tags,
		&i.Description,
		&i.Images,
		&i.Constraints,
		&i.Hints,
		&i.AcceptanceRate,
		&i.SubmissionCount,
		&i.CreatedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createProblem = `-- name: CreateProblem :one
INSERT INTO problems (
    problem_id, title, difficulty, tags, description, images, constraints, hints, created_by
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + problemColumns

type CreateProblemParams struct {
	ProblemID   uuid.UUID
	Title       string
	Difficulty  string
	Tags        []string
	Description string
	Images      []string
	Constraints string
	Hints       []byte
	CreatedBy   uuid.NullUUID
}

func (q *Queries) CreateProblem(ctx context.Context, arg CreateProblemParams) (Problem, error) {
	row := q.db.QueryRow(ctx, createProblem,
		arg.ProblemID,
		arg.Title,
		arg.Difficulty,
		arg.Tags,
		arg.Description,
		arg.Images,
		arg.Constraints,
		arg.Hints,
		arg.CreatedBy,
	)
	return scanProblem(row)
}

const getProblemByID = `-- name: GetProblemByID :one
SELECT ` + problemColumns + ` FROM problems WHERE problem_id = $1`

func (q *Queries) GetProblemByID(ctx context.Context, problemID uuid.UUID) (Problem, error) {
	row := q.db.QueryRow(ctx, getProblemByID, problemID)
	return scanProblem(row)
}

const listProblems = `-- name: ListProblems :many
SELECT ` + problemColumns + ` FROM problems
WHERE title ILIKE '%' || $1::text || '%' ESCAPE '\'
  AND ($2::text IS NULL OR difficulty = $2::text)
  AND ($3::text IS NULL OR $3::text = ANY(tags))
ORDER BY created_at DESC
LIMIT $4 OFFSET $5`

type ListProblemsParams struct {
	Title      string
	Difficulty *string
	Tag        *string
	Limit      int32
	Offset     int32
}

func (q *Queries) ListProblems(ctx context.Context, arg ListProblemsParams) ([]Problem, error) {
	rows, err := q.db.Query(ctx, listProblems,
		escapeLikePattern(arg.Title),
		arg.Difficulty,
		arg.Tag,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Problem{}
	for rows.Next() {
		i, err := scanProblem(rows)
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

const updateProblem = `-- name: UpdateProblem :one
UPDATE problems
SET title = $2, difficulty = $3, tags = $4, description = $5, images = $6,
    constraints = $7, hints = $8, updated_at = NOW()
WHERE problem_id = $1
RETURNING ` + problemColumns

type UpdateProblemParams struct {
	ProblemID   uuid.UUID
	Title       string
	Difficulty  string
	Tags        []string
	Description string
	Images      []string
	Constraints string
	Hints       []byte
}

func (q *Queries) UpdateProblem(ctx context.Context, arg UpdateProblemParams) (Problem, error) {
	row := q.db.QueryRow(ctx, updateProblem,
		arg.ProblemID,
		arg.Title,
		arg.Difficulty,
		arg.Tags,
		arg.Description,
		arg.Images,
		arg.Constraints,
		arg.Hints,
	)
	return scanProblem(row)
}

const removeProblemImage = `-- name: RemoveProblemImage :one
UPDATE problems
SET images = array_remove(images, $2::text), updated_at = NOW()
WHERE problem_id = $1
RETURNING ` + problemColumns

func (q *Queries) RemoveProblemImage(ctx context.Context, problemID uuid.UUID, image string) (Problem, error) {
	row := q.db.QueryRow(ctx, removeProblemImage, problemID, image)
	return scanProblem(row)
}

const deleteProblem = `-- name: DeleteProblem :execrows
DELETE FROM problems WHERE problem_id = $1`

func (q *Queries) DeleteProblem(ctx context.Context, problemID uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteProblem, problemID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
