package account

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/CastingWorksHQ/casting-api/internal/audit"
	domain "github.com/CastingWorksHQ/casting-api/internal/domain/account"
	"github.com/CastingWorksHQ/casting-api/internal/session"
)

type DeleteAccount struct {
	repo     domain.Repository
	sessions *session.Resolver
	audit    *audit.Dispatcher
	log      *zap.Logger
}

func NewDeleteAccount(
	repo domain.Repository,
	sessions *session.Resolver,
	auditDispatcher *audit.Dispatcher,
	log *zap.Logger,
) *DeleteAccount {
	return &DeleteAccount{
		repo:     repo,
		sessions: sessions,
		audit:    auditDispatcher,
		log:      log,
	}
}

// Execute removes the target user and everything its tenant owns, in
// dependency order. A step failure aborts the walk and leaves earlier
// steps committed: every step is a no-op on absent rows, so the caller
// can simply retry. Sign-out afterwards is best-effort.
func (uc *DeleteAccount) Execute(
	ctx context.Context,
	p *session.Principal,
	targetUserID uint,
	ipAddress string,
	userAgent string,
) error {

	target, err := uc.repo.ResolveTarget(ctx, targetUserID)
	if err != nil {
		return err
	}

	for _, step := range domain.Plan() {
		if err := step.Run(ctx, uc.repo, target); err != nil {
			return fmt.Errorf("delete step %s: %w", step.Name, err)
		}
	}

	// Self-deletion invalidates the presenting token. Failure here must
	// not fail the deletion; the row is already gone and the session
	// dies with it at token expiry.
	if p.UserID == targetUserID {
		if err := uc.sessions.SignOut(ctx, p); err != nil {
			uc.log.Warn("sign-out after account deletion failed",
				zap.Uint("user_id", targetUserID),
				zap.Error(err),
			)
		}
	}

	ev := audit.Event{
		Action:    audit.ActionAccountDelete,
		TargetID:  &targetUserID,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Details: map[string]any{
			"self": p.UserID == targetUserID,
		},
	}
	if p.IsAdmin() {
		adminID := p.UserID
		ev.AdminID = &adminID
	}
	uc.audit.Dispatch(ev)

	return nil
}
