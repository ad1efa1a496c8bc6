package subscription

import (
	"context"
	"time"

	"github.com/CastingWorksHQ/casting-api/internal/audit"
	domain "github.com/CastingWorksHQ/casting-api/internal/domain/subscription"
	"github.com/CastingWorksHQ/casting-api/internal/models"
	"github.com/CastingWorksHQ/casting-api/internal/session"
)

type GrantLifetime struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewGrantLifetime(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *GrantLifetime {
	return &GrantLifetime{
		repo:  repo,
		audit: auditDispatcher,
	}
}

// Execute gives the target user a lifetime subscription. Lifetime is
// simulated with a far-future period end; the data model has no native
// lifetime state. An existing ACTIVE/TRIALING subscription is stretched,
// otherwise a new one is created against the singleton lifetime plan.
func (uc *GrantLifetime) Execute(
	ctx context.Context,
	admin *session.Principal,
	targetUserID uint,
	ipAddress string,
	userAgent string,
) (*models.Subscription, error) {

	if _, err := uc.repo.GetUser(ctx, targetUserID); err != nil {
		return nil, err
	}

	now := time.Now()
	horizon := now.Add(domain.LifetimeHorizon)

	current, err := uc.repo.GetCurrentSubscription(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	var (
		sub        *models.Subscription
		actionType string
		planName   string
	)

	if current != nil {
		current.CurrentPeriodEnd = horizon
		current.CancelAtPeriodEnd = false
		current.Status = string(domain.StatusActive)

		if err := uc.repo.UpdateSubscription(ctx, current); err != nil {
			return nil, err
		}
		sub = current
		actionType = "update_existing"
		planName = current.Plan.Name

	} else {
		plan, err := uc.repo.FindOrCreatePlan(ctx, domain.LifetimePlanName, 0, "lifetime")
		if err != nil {
			return nil, err
		}

		sub = &models.Subscription{
			UserID:             targetUserID,
			PlanID:             plan.ID,
			Plan:               *plan,
			Status:             string(domain.StatusActive),
			CurrentPeriodStart: now,
			CurrentPeriodEnd:   horizon,
		}
		if err := uc.repo.CreateSubscription(ctx, sub); err != nil {
			return nil, err
		}
		actionType = "create_new"
		planName = plan.Name
	}

	adminID := admin.UserID
	uc.audit.Dispatch(audit.Event{
		Action:    audit.ActionSubscriptionGrantLifetime,
		AdminID:   &adminID,
		TargetID:  &targetUserID,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Details: map[string]any{
			"planName":   planName,
			"actionType": actionType,
		},
	})

	return sub, nil
}
