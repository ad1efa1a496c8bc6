package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/CastingWorksHQ/casting-api/internal/domain/application"
	"github.com/CastingWorksHQ/casting-api/internal/httperr"
	"github.com/CastingWorksHQ/casting-api/internal/models"
)

type ApplicationGormRepository struct {
	db *gorm.DB
}

func NewApplicationGormRepository(db *gorm.DB) *ApplicationGormRepository {
	return &ApplicationGormRepository{db: db}
}

func (r *ApplicationGormRepository) GetForStudio(
	ctx context.Context,
	applicationID uint,
	studioID uint,
) (*models.Application, error) {

	var app models.Application
	err := r.db.WithContext(ctx).
		Preload("CastingCall").
		First(&app, applicationID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	// Absence and ownership are distinct outcomes: a row that exists but
	// hangs off another studio's call is forbidden, not missing.
	if app.CastingCall.StudioID != studioID {
		return nil, httperr.ErrForbidden
	}
	return &app, nil
}

func (r *ApplicationGormRepository) Update(
	ctx context.Context,
	app *models.Application,
) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *ApplicationGormRepository) EnsureProjectMember(
	ctx context.Context,
	projectID uint,
	profileID uint,
	roleName string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProjectMember{}).
		Where("project_id = ? AND profile_id = ?", projectID, profileID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		ProfileID: profileID,
		RoleName:  roleName,
	}
	if err := r.db.WithContext(ctx).Create(&member).Error; err != nil {
		return false, err
	}
	return true, nil
}

// Compile-time check
var _ domain.Repository = (*ApplicationGormRepository)(nil)
