package admin_service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/database"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"github.com/tcp_snm/problemhub/internal/service"
)

func dbAdminToServiceAdmin(dbAdmin database.Admin) Admin {
	return Admin{
		AdminID:   dbAdmin.AdminID,
		Name:      dbAdmin.Name,
		Email:     dbAdmin.Email,
		CreatedAt: dbAdmin.CreatedAt,
		UpdatedAt: dbAdmin.UpdatedAt,
	}
}

func (a *AdminService) fetchAdmin(ctx context.Context, adminID uuid.UUID) (database.Admin, error) {
	dbAdmin, err := a.DB.GetAdminByID(ctx, adminID)
	if err != nil {
		return database.Admin{}, hub_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot fetch admin with id %v from db", adminID),
		)
	}
	return dbAdmin, nil
}

// GetProfile returns the admin who owns the session in ctx.
func (a *AdminService) GetProfile(ctx context.Context) (Admin, error) {
	claims, err := service.GetClaimsFromContext(ctx)
	if err != nil {
		return Admin{}, err
	}

	dbAdmin, err := a.fetchAdmin(ctx, claims.AdminID)
	if err != nil {
		return Admin{}, err
	}
	return dbAdminToServiceAdmin(dbAdmin), nil
}

func (a *AdminService) EditProfile(
	ctx context.Context,
	request EditProfileRequest,
) (Admin, error) {
	claims, err := service.GetClaimsFromContext(ctx)
	if err != nil {
		return Admin{}, err
	}

	if request.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*request.Email))
		request.Email = &email
	}
	if err = service.ValidateInput(request); err != nil {
		return Admin{}, err
	}

	dbAdmin, err := a.fetchAdmin(ctx, claims.AdminID)
	if err != nil {
		return Admin{}, err
	}

	params := database.UpdateAdminParams{
		AdminID:      dbAdmin.AdminID,
		Name:         dbAdmin.Name,
		Email:        dbAdmin.Email,
		PasswordHash: dbAdmin.PasswordHash,
	}
	if request.Name != nil {
		params.Name = *request.Name
	}
	if request.Email != nil {
		params.Email = *request.Email
	}
	if request.Password != nil {
		params.PasswordHash, err = a.Hasher.Hash(*request.Password)
		if err != nil {
			return Admin{}, err
		}
	}

	updated, err := a.DB.UpdateAdmin(ctx, params)
	if err != nil {
		return Admin{}, hub_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot update admin %v", dbAdmin.AdminID),
		)
	}

	log.WithFields(log.Fields{
		"admin_id":         updated.AdminID,
		"password_changed": request.Password != nil,
	}).Info("admin profile updated")

	return dbAdminToServiceAdmin(updated), nil
}

func (a *AdminService) DeleteProfile(ctx context.Context) error {
	claims, err := service.GetClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	rows, err := a.DB.DeleteAdmin(ctx, claims.AdminID)
	if err != nil {
		return hub_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot delete admin %v", claims.AdminID),
		)
	}
	if rows == 0 {
		return fmt.Errorf("%w, admin %v does not exist", hub_errors.ErrNotFound, claims.AdminID)
	}

	log.WithField("admin_id", claims.AdminID).Info("admin deleted")
	return nil
}
