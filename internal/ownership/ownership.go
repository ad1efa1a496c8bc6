package ownership

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/httperr"
	"github.com/CastingWorksHQ/casting-api/internal/models"
	"github.com/CastingWorksHQ/casting-api/internal/session"
)

// Resolver proves that a target resource belongs to the requesting
// principal's tenant before a handler may touch it. Checks are re-derived
// on every request, never cached. Admins bypass the tenant comparison but
// an absent resource is still not_found.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// --------------------------------------------------
// Principal -> owner record
// --------------------------------------------------

func (r *Resolver) StudioFor(ctx context.Context, p *session.Principal) (*models.Studio, error) {
	if p.TenantID == nil || p.TenantType != models.TenantTypeStudio {
		return nil, httperr.ErrForbidden
	}

	var studio models.Studio
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", *p.TenantID).
		First(&studio).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return &studio, nil
}

func (r *Resolver) ProfileFor(ctx context.Context, p *session.Principal) (*models.Profile, error) {
	if p.TenantID == nil || p.TenantType != models.TenantTypeTalent {
		return nil, httperr.ErrForbidden
	}

	var profile models.Profile
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", *p.TenantID).
		First(&profile).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// --------------------------------------------------
// Studio-owned resources
// --------------------------------------------------

func (r *Resolver) CastingCall(ctx context.Context, p *session.Principal, id uint) (*models.CastingCall, error) {
	var call models.CastingCall
	if err := r.fetch(ctx, &call, id); err != nil {
		return nil, err
	}
	if p.IsAdmin() {
		return &call, nil
	}

	studio, err := r.StudioFor(ctx, p)
	if err != nil {
		return nil, err
	}
	if call.StudioID != studio.ID {
		return nil, httperr.ErrForbidden
	}
	return &call, nil
}

func (r *Resolver) Project(ctx context.Context, p *session.Principal, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.fetch(ctx, &project, id); err != nil {
		return nil, err
	}
	if p.IsAdmin() {
		return &project, nil
	}

	studio, err := r.StudioFor(ctx, p)
	if err != nil {
		return nil, err
	}
	if project.StudioID != studio.ID {
		return nil, httperr.ErrForbidden
	}
	return &project, nil
}

// Application resolves through the owning casting call for studios, and
// through the applicant profile for talent.
func (r *Resolver) Application(ctx context.Context, p *session.Principal, id uint) (*models.Application, error) {
	var app models.Application
	if err := r.db.WithContext(ctx).
		Preload("CastingCall").
		First(&app, id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	if p.IsAdmin() {
		return &app, nil
	}

	switch p.TenantType {
	case models.TenantTypeStudio:
		studio, err := r.StudioFor(ctx, p)
		if err != nil {
			return nil, err
		}
		if app.CastingCall.StudioID != studio.ID {
			return nil, httperr.ErrForbidden
		}
		return &app, nil

	case models.TenantTypeTalent:
		profile, err := r.ProfileFor(ctx, p)
		if err != nil {
			return nil, err
		}
		if app.ProfileID != profile.ID {
			return nil, httperr.ErrForbidden
		}
		return &app, nil
	}

	return nil, httperr.ErrForbidden
}

// --------------------------------------------------
// Profile access
// --------------------------------------------------

// Profile grants access to the owning talent, admins, and a studio whose
// external-actor record the profile was converted from.
func (r *Resolver) Profile(ctx context.Context, p *session.Principal, id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.fetch(ctx, &profile, id); err != nil {
		return nil, err
	}
	if p.IsAdmin() {
		return &profile, nil
	}

	if p.TenantType == models.TenantTypeTalent {
		if profile.TenantID != nil && p.TenantID != nil && *profile.TenantID == *p.TenantID {
			return &profile, nil
		}
		return nil, httperr.ErrForbidden
	}

	if p.TenantType == models.TenantTypeStudio {
		ok, err := r.convertedFromStudioActor(ctx, p, &profile)
		if err != nil {
			return nil, err
		}
		if ok {
			return &profile, nil
		}
	}

	return nil, httperr.ErrForbidden
}

func (r *Resolver) convertedFromStudioActor(ctx context.Context, p *session.Principal, profile *models.Profile) (bool, error) {
	if profile.SourceActorID == nil {
		return false, nil
	}

	studio, err := r.StudioFor(ctx, p)
	if err != nil {
		if errors.Is(err, httperr.ErrForbidden) || errors.Is(err, httperr.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ExternalActor{}).
		Where("id = ? AND studio_id = ?", *profile.SourceActorID, studio.ID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Resolver) fetch(ctx context.Context, dest any, id uint) error {
	if err := r.db.WithContext(ctx).First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrNotFound
		}
		return err
	}
	return nil
}
