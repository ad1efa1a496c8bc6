package invitation

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domainapp "github.com/CastingWorksHQ/casting-api/internal/domain/application"
	domain "github.com/CastingWorksHQ/casting-api/internal/domain/invitation"
	"github.com/CastingWorksHQ/casting-api/internal/httperr"
	"github.com/CastingWorksHQ/casting-api/internal/models"
)

// RespondInvitation lets talent accept or decline a project invitation.
// Accepting creates the project membership idempotently; a lapsed
// invitation is marked EXPIRED on the way out and cannot be accepted.
type RespondInvitation struct {
	db   *gorm.DB
	apps domainapp.Repository
}

func NewRespondInvitation(db *gorm.DB, apps domainapp.Repository) *RespondInvitation {
	return &RespondInvitation{db: db, apps: apps}
}

func (uc *RespondInvitation) Execute(
	ctx context.Context,
	profileID uint,
	invitationID uint,
	accept bool,
) (*models.ProjectInvitation, error) {

	var inv models.ProjectInvitation
	err := uc.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", invitationID, profileID).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}

	now := time.Now()

	if domain.IsExpired(domain.Status(inv.Status), inv.ExpiresAt, now) {
		inv.Status = string(domain.StatusExpired)
		if err := uc.db.WithContext(ctx).Save(&inv).Error; err != nil {
			return nil, err
		}
	}

	if err := domain.CanRespond(domain.Status(inv.Status), inv.ExpiresAt, now); err != nil {
		return nil, err
	}

	if accept {
		inv.Status = string(domain.StatusAccepted)
	} else {
		inv.Status = string(domain.StatusDeclined)
	}
	inv.RespondedAt = &now

	if err := uc.db.WithContext(ctx).Save(&inv).Error; err != nil {
		return nil, err
	}

	if accept {
		if _, err := uc.apps.EnsureProjectMember(ctx, inv.ProjectID, inv.ProfileID, inv.RoleName); err != nil {
			return nil, err
		}
	}

	return &inv, nil
}
