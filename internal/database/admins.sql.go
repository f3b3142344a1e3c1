package database

import (
	"context"

	"github.com/google/uuid"
)

const adminColumns = `admin_id, name, email, password_hash, created_at, updated_at`

func scanAdmin(row interface{ Scan(...any) error }) (Admin, error) {
	var i Admin
	err := row.Scan(
		&i.AdminID,
		&i.Name,
		&i.Email,
		&i.PasswordHash,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createAdmin = `-- name: CreateAdmin :one
INSERT INTO admins (admin_id, name, email, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING ` + adminColumns

type CreateAdminParams struct {
	AdminID      uuid.UUID
	Name         string
	Email        string
	PasswordHash string
}

func (q *Queries) CreateAdmin(ctx context.Context, arg CreateAdminParams) (Admin, error) {
	row := q.db.QueryRow(ctx, createAdmin,
		arg.AdminID,
		arg.Name,
		arg.Email,
		arg.PasswordHash,
	)
	return scanAdmin(row)
}

const getAdminByEmail = `-- name: GetAdminByEmail :one
SELECT ` + adminColumns + ` FROM admins WHERE email = $1`

func (q *Queries) GetAdminByEmail(ctx context.Context, email string) (Admin, error) {
	row := q.db.QueryRow(ctx, getAdminByEmail, email)
	return scanAdmin(row)
}

const getAdminByID = `-- name: GetAdminByID :one
SELECT ` + adminColumns + ` FROM admins WHERE admin_id = $1`

func (q *Queries) GetAdminByID(ctx context.Context, adminID uuid.UUID) (Admin, error) {
	row := q.db.QueryRow(ctx, getAdminByID, adminID)
	return scanAdmin(row)
}

const updateAdmin = `-- name: UpdateAdmin :one
UPDATE admins
SET name = $2, email = $3, password_hash = $4, updated_at = NOW()
WHERE admin_id = $1
RETURNING ` + adminColumns

type UpdateAdminParams struct {
	AdminID      uuid.UUID
	Name         string
	Email        string
	PasswordHash string
}

func (q *Queries) UpdateAdmin(ctx context.Context, arg UpdateAdminParams) (Admin, error) {
	row := q.db.QueryRow(ctx, updateAdmin,
		arg.AdminID,
		arg.Name,
		arg.Email,
		arg.PasswordHash,
	)
	return scanAdmin(row)
}

const updateAdminPassword = `-- name: UpdateAdminPassword :execrows
UPDATE admins SET password_hash = $2, updated_at = NOW() WHERE admin_id = $1`

func (q *Queries) UpdateAdminPassword(ctx context.Context, adminID uuid.UUID, passwordHash string) (int64, error) {
	result, err := q.db.Exec(ctx, updateAdminPassword, adminID, passwordHash)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteAdmin = `-- name: DeleteAdmin :execrows
DELETE FROM admins WHERE admin_id = $1`

func (q *Queries) DeleteAdmin(ctx context.Context, adminID uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteAdmin, adminID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
