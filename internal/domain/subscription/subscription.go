package subscription

import (
	"context"
	"time"

	"github.com/CastingWorksHQ/casting-api/internal/models"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusTrialing Status = "TRIALING"
	StatusCanceled Status = "CANCELED"
)

// LifetimePlanName is the singleton plan backing lifetime grants.
const LifetimePlanName = "Lifetime Access"

// LifetimeHorizon simulates "lifetime": the data model has no native
// lifetime state, so a far-future period end stands in for one.
const LifetimeHorizon = 100 * 365 * 24 * time.Hour

type Repository interface {
	GetUser(ctx context.Context, userID uint) (*models.User, error)

	// GetCurrentSubscription returns the user's ACTIVE or TRIALING
	// subscription, or nil when there is none.
	GetCurrentSubscription(ctx context.Context, userID uint) (*models.Subscription, error)

	GetSubscription(ctx context.Context, id uint) (*models.Subscription, error)
	UpdateSubscription(ctx context.Context, sub *models.Subscription) error
	CreateSubscription(ctx context.Context, sub *models.Subscription) error

	// FindOrCreatePlan returns the plan with the given name, creating it
	// on first use.
	FindOrCreatePlan(ctx context.Context, name string, price float64, interval string) (*models.SubscriptionPlan, error)
}
