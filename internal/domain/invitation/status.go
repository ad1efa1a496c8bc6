package invitation

import (
	"time"

	"github.com/CastingWorksHQ/casting-api/internal/httperr"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusDeclined Status = "DECLINED"
	StatusExpired  Status = "EXPIRED"
)

// CanRespond rejects responses to anything but a live pending invitation.
func CanRespond(current Status, expiresAt *time.Time, now time.Time) error {
	if current != StatusPending {
		return httperr.ErrBusiness("already_responded")
	}
	if expiresAt != nil && now.After(*expiresAt) {
		return httperr.ErrBusiness("invitation_expired")
	}
	return nil
}

// IsExpired reports whether a pending invitation has lapsed.
func IsExpired(current Status, expiresAt *time.Time, now time.Time) bool {
	return current == StatusPending && expiresAt != nil && now.After(*expiresAt)
}
