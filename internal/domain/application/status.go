package application

import "github.com/CastingWorksHQ/casting-api/internal/httperr"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CanDecide allows a decision only while the application is pending.
func CanDecide(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("already_decided")
	}
	return nil
}
