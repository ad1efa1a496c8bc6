package billing

import (
	"context"

	"go.uber.org/zap"
)

// Preapproval statuses understood by the provider.
const (
	StatusAuthorized = "authorized"
	StatusCancelled  = "cancelled"
)

// Provider mirrors subscription state changes to the billing gateway.
// The gateway's responses are opaque external state; the Subscription
// table is the local mirror.
type Provider interface {
	UpdatePreapprovalStatus(ctx context.Context, externalRef, status string) error
}

// NoOp serves deployments without billing credentials and tests.
type NoOp struct {
	log *zap.Logger
}

func NewNoOp(log *zap.Logger) *NoOp {
	return &NoOp{log: log}
}

func (n *NoOp) UpdatePreapprovalStatus(_ context.Context, externalRef, status string) error {
	n.log.Debug("billing sync skipped (no provider configured)",
		zap.String("external_ref", externalRef),
		zap.String("status", status),
	)
	return nil
}
