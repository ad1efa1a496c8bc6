package application

import (
	"context"

	"github.com/CastingWorksHQ/casting-api/internal/models"
)

type Repository interface {
	// GetForStudio fetches an application with its casting call. A
	// missing row yields not_found; a row whose call belongs to another
	// studio yields forbidden.
	GetForStudio(ctx context.Context, applicationID uint, studioID uint) (*models.Application, error)

	Update(ctx context.Context, app *models.Application) error

	// EnsureProjectMember inserts a membership row iff none exists for
	// (projectID, profileID). Returns true when a row was created.
	EnsureProjectMember(ctx context.Context, projectID, profileID uint, roleName string) (bool, error)
}
