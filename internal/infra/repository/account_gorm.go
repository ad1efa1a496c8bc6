package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/CastingWorksHQ/casting-api/internal/domain/account"
	"github.com/CastingWorksHQ/casting-api/internal/httperr"
	"github.com/CastingWorksHQ/casting-api/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

// --------------------------------------------------
// Target resolution
// --------------------------------------------------

func (r *AccountGormRepository) ResolveTarget(
	ctx context.Context,
	userID uint,
) (*domain.Target, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}

	t := &domain.Target{User: &user}

	if user.TenantID == nil {
		return t, nil
	}

	var tenant models.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, *user.TenantID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return t, nil
	}
	t.Tenant = &tenant

	switch tenant.TenantType {
	case models.TenantTypeTalent:
		var profile models.Profile
		err := r.db.WithContext(ctx).
			Where("tenant_id = ?", tenant.ID).
			First(&profile).Error
		if err == nil {
			t.Profile = &profile
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

	case models.TenantTypeStudio:
		var studio models.Studio
		err := r.db.WithContext(ctx).
			Where("tenant_id = ?", tenant.ID).
			First(&studio).Error
		if err == nil {
			t.Studio = &studio
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return t, nil
}

// --------------------------------------------------
// Talent-rooted deletes
// --------------------------------------------------

func (r *AccountGormRepository) DeleteProfileImages(ctx context.Context, profileID uint) error {
	return r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.ProfileImage{}).Error
}

func (r *AccountGormRepository) DeleteApplicationsByProfile(ctx context.Context, profileID uint) error {
	return r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.Application{}).Error
}

func (r *AccountGormRepository) DeleteSceneAssignmentsByProfile(ctx context.Context, profileID uint) error {
	return r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.SceneAssignment{}).Error
}

func (r *AccountGormRepository) DeleteProjectMembershipsByProfile(ctx context.Context, profileID uint) error {
	return r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.ProjectMember{}).Error
}

func (r *AccountGormRepository) DeleteInvitationsByProfile(ctx context.Context, profileID uint) error {
	return r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.ProjectInvitation{}).Error
}

func (r *AccountGormRepository) DeleteStudioNotesByProfile(ctx context.Context, profileID uint) error {
	return r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.StudioNote{}).Error
}

func (r *AccountGormRepository) DeleteProfile(ctx context.Context, profileID uint) error {
	return r.db.WithContext(ctx).Delete(&models.Profile{}, profileID).Error
}

// --------------------------------------------------
// Studio-rooted deletes
// --------------------------------------------------

func (r *AccountGormRepository) DeleteApplicationsForStudioCalls(ctx context.Context, studioID uint) error {
	return r.db.WithContext(ctx).
		Where("casting_call_id IN (?)",
			r.db.Model(&models.CastingCall{}).
				Select("id").
				Where("studio_id = ?", studioID),
		).
		Delete(&models.Application{}).Error
}

func (r *AccountGormRepository) DeleteSceneAssignmentsForStudio(ctx context.Context, studioID uint) error {
	return r.db.WithContext(ctx).
		Where("scene_id IN (?)",
			r.db.Model(&models.Scene{}).
				Select("scenes.id").
				Joins("JOIN projects ON projects.id = scenes.project_id").
				Where("projects.studio_id = ?", studioID),
		).
		Delete(&models.SceneAssignment{}).Error
}

func (r *AccountGormRepository) DeleteProjectMembershipsForStudio(ctx context.Context, studioID uint) error {
	return r.db.WithContext(ctx).
		Where("project_id IN (?)",
			r.db.Model(&models.Project{}).
				Select("id").
				Where("studio_id = ?", studioID),
		).
		Delete(&models.ProjectMember{}).Error
}

func (r *AccountGormRepository) DeleteInvitationsForStudio(ctx context.Context, studioID uint) error {
	return r.db.WithContext(ctx).
		Where("project_id IN (?)",
			r.db.Model(&models.Project{}).
				Select("id").
				Where("studio_id = ?", studioID),
		).
		Delete(&models.ProjectInvitation{}).Error
}

func (r *AccountGormRepository) DeleteStudioNotesByStudio(ctx context.Context, studioID uint) error {
	return r.db.WithContext(ctx).
		Where("studio_id = ?", studioID).
		Delete(&models.StudioNote{}).Error
}

func (r *AccountGormRepository) DeleteCastingCallsByStudio(ctx context.Context, studioID uint) error {
	return r.db.WithContext(ctx).
		Where("studio_id = ?", studioID).
		Delete(&models.CastingCall{}).Error
}

func (r *AccountGormRepository) DeleteScenesForStudio(ctx context.Context, studioID uint) error {
	return r.db.WithContext(ctx).
		Where("project_id IN (?)",
			r.db.Model(&models.Project{}).
				Select("id").
				Where("studio_id = ?", studioID),
		).
		Delete(&models.Scene{}).Error
}

func (r *AccountGormRepository) DeleteProjectsByStudio(ctx context.Context, studioID uint) error {
	return r.db.WithContext(ctx).
		Where("studio_id = ?", studioID).
		Delete(&models.Project{}).Error
}

func (r *AccountGormRepository) DeleteExternalActorsByStudio(ctx context.Context, studioID uint) error {
	// Converted profiles keep working after the roster entry is gone;
	// only the back-reference is cleared.
	if err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("source_actor_id IN (?)",
			r.db.Model(&models.ExternalActor{}).
				Select("id").
				Where("studio_id = ?", studioID),
		).
		Update("source_actor_id", nil).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("studio_id = ?", studioID).
		Delete(&models.ExternalActor{}).Error
}

func (r *AccountGormRepository) DeleteStudio(ctx context.Context, studioID uint) error {
	return r.db.WithContext(ctx).Delete(&models.Studio{}, studioID).Error
}

// --------------------------------------------------
// User-rooted deletes
// --------------------------------------------------

func (r *AccountGormRepository) DeleteMessagesByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("sender_user_id = ? OR recipient_user_id = ?", userID, userID).
		Delete(&models.Message{}).Error
}

func (r *AccountGormRepository) DeleteSubscriptionsByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Subscription{}).Error
}

func (r *AccountGormRepository) DeleteTenant(ctx context.Context, tenantID uint) error {
	return r.db.WithContext(ctx).Delete(&models.Tenant{}, tenantID).Error
}

func (r *AccountGormRepository) DeleteUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, userID).Error
}

// Compile-time check
var _ domain.Repository = (*AccountGormRepository)(nil)
