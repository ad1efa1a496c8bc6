package account

import (
	"context"

	"github.com/CastingWorksHQ/casting-api/internal/models"
)

// Target is the resolved ownership context of the user being deleted.
// Profile and Studio are nil when the user's tenant is of the other type.
type Target struct {
	User    *models.User
	Tenant  *models.Tenant
	Profile *models.Profile
	Studio  *models.Studio
}

// Repository exposes one delete primitive per owned entity kind. Every
// primitive is a no-op when no matching rows exist, so re-running a
// partially completed deletion is safe.
type Repository interface {
	ResolveTarget(ctx context.Context, userID uint) (*Target, error)

	DeleteProfileImages(ctx context.Context, profileID uint) error

	DeleteApplicationsByProfile(ctx context.Context, profileID uint) error
	DeleteApplicationsForStudioCalls(ctx context.Context, studioID uint) error

	DeleteSceneAssignmentsByProfile(ctx context.Context, profileID uint) error
	DeleteSceneAssignmentsForStudio(ctx context.Context, studioID uint) error

	DeleteProjectMembershipsByProfile(ctx context.Context, profileID uint) error
	DeleteProjectMembershipsForStudio(ctx context.Context, studioID uint) error

	DeleteInvitationsByProfile(ctx context.Context, profileID uint) error
	DeleteInvitationsForStudio(ctx context.Context, studioID uint) error

	DeleteMessagesByUser(ctx context.Context, userID uint) error

	DeleteStudioNotesByStudio(ctx context.Context, studioID uint) error
	DeleteStudioNotesByProfile(ctx context.Context, profileID uint) error

	DeleteCastingCallsByStudio(ctx context.Context, studioID uint) error
	DeleteScenesForStudio(ctx context.Context, studioID uint) error
	DeleteProjectsByStudio(ctx context.Context, studioID uint) error

	DeleteExternalActorsByStudio(ctx context.Context, studioID uint) error

	DeleteStudio(ctx context.Context, studioID uint) error

	DeleteSubscriptionsByUser(ctx context.Context, userID uint) error

	DeleteProfile(ctx context.Context, profileID uint) error
	DeleteTenant(ctx context.Context, tenantID uint) error
	DeleteUser(ctx context.Context, userID uint) error
}
