package application

import (
	"context"
	"time"

	"github.com/CastingWorksHQ/casting-api/internal/audit"
	domain "github.com/CastingWorksHQ/casting-api/internal/domain/application"
	"github.com/CastingWorksHQ/casting-api/internal/httperr"
	"github.com/CastingWorksHQ/casting-api/internal/models"
)

type UpdateApplicationInput struct {
	Status       domain.Status
	AddToProject bool
	ProjectRole  string
}

type UpdateApplication struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateApplication(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *UpdateApplication {
	return &UpdateApplication{
		repo:  repo,
		audit: auditDispatcher,
	}
}

// Execute decides a pending application for the studio. Approval with
// AddToProject inserts a project membership iff none exists for the
// (project, profile) pair, so repeated approvals stay single-membered.
func (uc *UpdateApplication) Execute(
	ctx context.Context,
	studioID uint,
	actingUserID uint,
	applicationID uint,
	in UpdateApplicationInput,
	ipAddress string,
	userAgent string,
) (*models.Application, error) {

	if !domain.ValidStatus(in.Status) || in.Status == domain.StatusPending {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	app, err := uc.repo.GetForStudio(ctx, applicationID, studioID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanDecide(domain.Status(app.Status)); err != nil {
		return nil, err
	}

	// Validate the membership target before any row is touched.
	if in.Status == domain.StatusApproved && in.AddToProject && app.CastingCall.ProjectID == nil {
		return nil, httperr.ErrBusiness("call_has_no_project")
	}

	now := time.Now()
	app.Status = string(in.Status)
	app.DecidedAt = &now

	if err := uc.repo.Update(ctx, app); err != nil {
		return nil, err
	}

	memberAdded := false
	if in.Status == domain.StatusApproved && in.AddToProject {
		memberAdded, err = uc.repo.EnsureProjectMember(
			ctx,
			*app.CastingCall.ProjectID,
			app.ProfileID,
			in.ProjectRole,
		)
		if err != nil {
			return nil, err
		}
	}

	actorID := actingUserID
	uc.audit.Dispatch(audit.Event{
		Action:    audit.ActionApplicationDecision,
		AdminID:   &actorID,
		TargetID:  &app.ID,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Details: map[string]any{
			"status":      app.Status,
			"memberAdded": memberAdded,
		},
	})

	return app, nil
}
