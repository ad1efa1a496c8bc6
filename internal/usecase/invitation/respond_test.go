package invitation

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbpkg "github.com/CastingWorksHQ/casting-api/internal/db"
	domain "github.com/CastingWorksHQ/casting-api/internal/domain/invitation"
	"github.com/CastingWorksHQ/casting-api/internal/httperr"
	infraRepo "github.com/CastingWorksHQ/casting-api/internal/infra/repository"
	"github.com/CastingWorksHQ/casting-api/internal/models"
)

func setup(t *testing.T) (*gorm.DB, *RespondInvitation, models.Project, models.Profile) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(dbpkg.AllModels()...))

	project := models.Project{StudioID: 1, Title: "Feature"}
	require.NoError(t, gdb.Create(&project).Error)

	profile := models.Profile{StageName: "Ada"}
	require.NoError(t, gdb.Create(&profile).Error)

	uc := NewRespondInvitation(gdb, infraRepo.NewApplicationGormRepository(gdb))
	return gdb, uc, project, profile
}

func pendingInvitation(t *testing.T, gdb *gorm.DB, projectID, profileID uint, expiresAt *time.Time) models.ProjectInvitation {
	t.Helper()
	inv := models.ProjectInvitation{
		ProjectID: projectID,
		ProfileID: profileID,
		RoleName:  "Supporting",
		Status:    string(domain.StatusPending),
		ExpiresAt: expiresAt,
	}
	require.NoError(t, gdb.Create(&inv).Error)
	return inv
}

func TestAccept_CreatesMembership(t *testing.T) {
	gdb, uc, project, profile := setup(t)
	inv := pendingInvitation(t, gdb, project.ID, profile.ID, nil)

	got, err := uc.Execute(context.Background(), profile.ID, inv.ID, true)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusAccepted), got.Status)
	assert.NotNil(t, got.RespondedAt)

	var member models.ProjectMember
	require.NoError(t, gdb.Where("project_id = ? AND profile_id = ?", project.ID, profile.ID).First(&member).Error)
	assert.Equal(t, "Supporting", member.RoleName)
}

func TestDecline_NoMembership(t *testing.T) {
	gdb, uc, project, profile := setup(t)
	inv := pendingInvitation(t, gdb, project.ID, profile.ID, nil)

	got, err := uc.Execute(context.Background(), profile.ID, inv.ID, false)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusDeclined), got.Status)

	var n int64
	gdb.Model(&models.ProjectMember{}).Count(&n)
	assert.Zero(t, n)
}

func TestRespond_Twice(t *testing.T) {
	gdb, uc, project, profile := setup(t)
	inv := pendingInvitation(t, gdb, project.ID, profile.ID, nil)

	_, err := uc.Execute(context.Background(), profile.ID, inv.ID, false)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), profile.ID, inv.ID, true)
	assert.True(t, httperr.IsBusiness(err, "already_responded"))
}

func TestRespond_LapsedInvitationExpires(t *testing.T) {
	gdb, uc, project, profile := setup(t)
	past := time.Now().Add(-time.Hour)
	inv := pendingInvitation(t, gdb, project.ID, profile.ID, &past)

	_, err := uc.Execute(context.Background(), profile.ID, inv.ID, true)
	assert.True(t, httperr.IsBusiness(err, "invitation_expired"))

	// The lapse is persisted.
	var got models.ProjectInvitation
	require.NoError(t, gdb.First(&got, inv.ID).Error)
	assert.Equal(t, string(domain.StatusExpired), got.Status)
}

func TestRespond_WrongProfileSeesNotFound(t *testing.T) {
	gdb, uc, project, profile := setup(t)
	inv := pendingInvitation(t, gdb, project.ID, profile.ID, nil)

	other := models.Profile{StageName: "Eve"}
	require.NoError(t, gdb.Create(&other).Error)

	_, err := uc.Execute(context.Background(), other.ID, inv.ID, true)
	assert.True(t, httperr.IsBusiness(err, "not_found"))
}
