package subscription

import (
	"context"

	"go.uber.org/zap"

	"github.com/CastingWorksHQ/casting-api/internal/audit"
	"github.com/CastingWorksHQ/casting-api/internal/billing"
	domain "github.com/CastingWorksHQ/casting-api/internal/domain/subscription"
	"github.com/CastingWorksHQ/casting-api/internal/httperr"
	"github.com/CastingWorksHQ/casting-api/internal/models"
	"github.com/CastingWorksHQ/casting-api/internal/session"
)

// CancelSubscription flips cancel_at_period_end on the caller's current
// subscription and mirrors the change to the billing provider. The local
// row is the source of truth for the API; provider sync is reported but
// does not roll the flag back.
type CancelSubscription struct {
	repo     domain.Repository
	provider billing.Provider
	audit    *audit.Dispatcher
	log      *zap.Logger
}

func NewCancelSubscription(
	repo domain.Repository,
	provider billing.Provider,
	auditDispatcher *audit.Dispatcher,
	log *zap.Logger,
) *CancelSubscription {
	return &CancelSubscription{
		repo:     repo,
		provider: provider,
		audit:    auditDispatcher,
		log:      log,
	}
}

func (uc *CancelSubscription) Execute(
	ctx context.Context,
	p *session.Principal,
	ipAddress string,
	userAgent string,
) (*models.Subscription, error) {

	sub, err := uc.repo.GetCurrentSubscription(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, httperr.ErrNotFound
	}

	sub.CancelAtPeriodEnd = true
	if err := uc.repo.UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	if sub.ExternalRef != "" {
		if err := uc.provider.UpdatePreapprovalStatus(ctx, sub.ExternalRef, billing.StatusCancelled); err != nil {
			return nil, httperr.ErrBusiness("billing_sync_failed")
		}
	}

	targetID := p.UserID
	uc.audit.Dispatch(audit.Event{
		Action:    audit.ActionSubscriptionCancel,
		TargetID:  &targetID,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	})

	return sub, nil
}

// ReactivateSubscription clears a pending cancellation before the period
// ends.
type ReactivateSubscription struct {
	repo     domain.Repository
	provider billing.Provider
	audit    *audit.Dispatcher
}

func NewReactivateSubscription(
	repo domain.Repository,
	provider billing.Provider,
	auditDispatcher *audit.Dispatcher,
) *ReactivateSubscription {
	return &ReactivateSubscription{
		repo:     repo,
		provider: provider,
		audit:    auditDispatcher,
	}
}

func (uc *ReactivateSubscription) Execute(
	ctx context.Context,
	p *session.Principal,
	ipAddress string,
	userAgent string,
) (*models.Subscription, error) {

	sub, err := uc.repo.GetCurrentSubscription(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if sub == nil || !sub.CancelAtPeriodEnd {
		return nil, httperr.ErrNotFound
	}

	sub.CancelAtPeriodEnd = false
	if err := uc.repo.UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	if sub.ExternalRef != "" {
		if err := uc.provider.UpdatePreapprovalStatus(ctx, sub.ExternalRef, billing.StatusAuthorized); err != nil {
			return nil, httperr.ErrBusiness("billing_sync_failed")
		}
	}

	targetID := p.UserID
	uc.audit.Dispatch(audit.Event{
		Action:    audit.ActionSubscriptionReactivate,
		TargetID:  &targetID,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	})

	return sub, nil
}
