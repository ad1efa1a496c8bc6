package account

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/audit"
	dbpkg "github.com/CastingWorksHQ/casting-api/internal/db"
	"github.com/CastingWorksHQ/casting-api/internal/httperr"
	infraRepo "github.com/CastingWorksHQ/casting-api/internal/infra/repository"
	"github.com/CastingWorksHQ/casting-api/internal/models"
	"github.com/CastingWorksHQ/casting-api/internal/session"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(dbpkg.AllModels()...))
	return gdb
}

func newUsecase(t *testing.T, gdb *gorm.DB) *DeleteAccount {
	t.Helper()
	repo := infraRepo.NewAccountGormRepository(gdb)
	sessions := session.NewResolver(gdb, "test-secret", session.NewMemoryRevocationStore())
	dispatcher := audit.NewDispatcher(audit.New(gdb), zap.NewNop())
	return NewDeleteAccount(repo, sessions, dispatcher, zap.NewNop())
}

// seedStudioUser builds a studio account with the full ownership tree
// hanging off it, plus an unrelated studio that must survive deletion.
func seedStudioUser(t *testing.T, gdb *gorm.DB) (target *models.User, bystander *models.Studio) {
	t.Helper()

	tenant := models.Tenant{TenantType: models.TenantTypeStudio}
	require.NoError(t, gdb.Create(&tenant).Error)

	user := models.User{TenantID: &tenant.ID, Name: "Zed", Email: "zed@studio.example"}
	require.NoError(t, gdb.Create(&user).Error)

	studio := models.Studio{TenantID: tenant.ID, Name: "Doomed"}
	require.NoError(t, gdb.Create(&studio).Error)

	project := models.Project{StudioID: studio.ID, Title: "Feature"}
	require.NoError(t, gdb.Create(&project).Error)

	scene := models.Scene{ProjectID: project.ID, Title: "Opening"}
	require.NoError(t, gdb.Create(&scene).Error)

	call := models.CastingCall{StudioID: studio.ID, ProjectID: &project.ID, Title: "Lead", Status: "open"}
	require.NoError(t, gdb.Create(&call).Error)

	// An applicant from an unrelated talent profile.
	profile := models.Profile{StageName: "Someone"}
	require.NoError(t, gdb.Create(&profile).Error)
	app := models.Application{CastingCallID: call.ID, ProfileID: profile.ID, Status: "PENDING"}
	require.NoError(t, gdb.Create(&app).Error)

	actor := models.ExternalActor{StudioID: studio.ID, Name: "Roster"}
	require.NoError(t, gdb.Create(&actor).Error)

	note := models.StudioNote{StudioID: studio.ID, ProfileID: profile.ID, Note: "promising"}
	require.NoError(t, gdb.Create(&note).Error)

	sub := models.Subscription{
		UserID:             user.ID,
		Status:             "ACTIVE",
		CurrentPeriodStart: time.Now(),
		CurrentPeriodEnd:   time.Now().Add(30 * 24 * time.Hour),
	}
	require.NoError(t, gdb.Create(&sub).Error)

	otherTenant := models.Tenant{TenantType: models.TenantTypeStudio}
	require.NoError(t, gdb.Create(&otherTenant).Error)
	other := models.Studio{TenantID: otherTenant.ID, Name: "Bystander"}
	require.NoError(t, gdb.Create(&other).Error)
	otherCall := models.CastingCall{StudioID: other.ID, Title: "Keep me", Status: "open"}
	require.NoError(t, gdb.Create(&otherCall).Error)

	return &user, &other
}

func count(t *testing.T, gdb *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func TestExecute_RemovesWholeOwnershipTree(t *testing.T) {
	gdb := newTestDB(t)
	user, bystander := seedStudioUser(t, gdb)
	uc := newUsecase(t, gdb)

	p := &session.Principal{UserID: user.ID, Role: models.RoleUser, TenantID: user.TenantID, TenantType: models.TenantTypeStudio}
	require.NoError(t, uc.Execute(context.Background(), p, user.ID, "127.0.0.1", "test"))

	assert.Zero(t, count(t, gdb, &models.User{}, "id = ?", user.ID))
	assert.Zero(t, count(t, gdb, &models.Tenant{}, "id = ?", *user.TenantID))
	assert.Zero(t, count(t, gdb, &models.Studio{}, "tenant_id = ?", *user.TenantID))
	assert.Zero(t, count(t, gdb, &models.Project{}, "studio_id != ?", bystander.ID))
	assert.Zero(t, count(t, gdb, &models.CastingCall{}, "studio_id != ?", bystander.ID))
	assert.Zero(t, count(t, gdb, &models.Application{}, "1 = 1"))
	assert.Zero(t, count(t, gdb, &models.ExternalActor{}, "1 = 1"))
	assert.Zero(t, count(t, gdb, &models.StudioNote{}, "1 = 1"))
	assert.Zero(t, count(t, gdb, &models.Subscription{}, "user_id = ?", user.ID))

	// Unrelated studio data is untouched.
	assert.Equal(t, int64(1), count(t, gdb, &models.Studio{}, "id = ?", bystander.ID))
	assert.Equal(t, int64(1), count(t, gdb, &models.CastingCall{}, "studio_id = ?", bystander.ID))
}

func TestExecute_AuditTrail(t *testing.T) {
	gdb := newTestDB(t)
	user, _ := seedStudioUser(t, gdb)
	uc := newUsecase(t, gdb)

	admin := &session.Principal{UserID: 42, Role: models.RoleAdmin}
	require.NoError(t, uc.Execute(context.Background(), admin, user.ID, "10.0.0.1", "admin-ui"))

	// The audit write happens off the request path.
	assert.Eventually(t, func() bool {
		return count(t, gdb, &models.AuditLog{}, "action = ? AND target_id = ?",
			audit.ActionAccountDelete, user.ID) == 1
	}, 2*time.Second, 10*time.Millisecond)

	var entry models.AuditLog
	require.NoError(t, gdb.Where("action = ?", audit.ActionAccountDelete).First(&entry).Error)
	require.NotNil(t, entry.AdminID)
	assert.Equal(t, uint(42), *entry.AdminID)
	assert.Contains(t, entry.Details, `"self":false`)
}

func TestExecute_MissingUserIsNotFound(t *testing.T) {
	gdb := newTestDB(t)
	_, bystander := seedStudioUser(t, gdb)
	uc := newUsecase(t, gdb)

	admin := &session.Principal{UserID: 42, Role: models.RoleAdmin}
	err := uc.Execute(context.Background(), admin, 9999, "10.0.0.1", "admin-ui")
	assert.True(t, httperr.IsBusiness(err, "not_found"))

	// Nothing was mutated.
	assert.Equal(t, int64(1), count(t, gdb, &models.Studio{}, "id = ?", bystander.ID))
}

func TestExecute_SecondDeleteIsNotFound(t *testing.T) {
	gdb := newTestDB(t)
	user, _ := seedStudioUser(t, gdb)
	uc := newUsecase(t, gdb)

	admin := &session.Principal{UserID: 42, Role: models.RoleAdmin}
	require.NoError(t, uc.Execute(context.Background(), admin, user.ID, "10.0.0.1", "admin-ui"))

	err := uc.Execute(context.Background(), admin, user.ID, "10.0.0.1", "admin-ui")
	assert.True(t, httperr.IsBusiness(err, "not_found"))
}

func TestExecute_TalentAccount(t *testing.T) {
	gdb := newTestDB(t)
	uc := newUsecase(t, gdb)

	tenant := models.Tenant{TenantType: models.TenantTypeTalent}
	require.NoError(t, gdb.Create(&tenant).Error)
	user := models.User{TenantID: &tenant.ID, Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, gdb.Create(&user).Error)
	profile := models.Profile{TenantID: &tenant.ID, StageName: "Ada"}
	require.NoError(t, gdb.Create(&profile).Error)
	img := models.ProfileImage{ProfileID: profile.ID, URL: "https://img.example/1.jpg", IsPrimary: true}
	require.NoError(t, gdb.Create(&img).Error)

	p := &session.Principal{UserID: user.ID, Role: models.RoleUser, TenantID: &tenant.ID, TenantType: models.TenantTypeTalent}
	require.NoError(t, uc.Execute(context.Background(), p, user.ID, "127.0.0.1", "test"))

	assert.Zero(t, count(t, gdb, &models.Profile{}, "id = ?", profile.ID))
	assert.Zero(t, count(t, gdb, &models.ProfileImage{}, "profile_id = ?", profile.ID))
	assert.Zero(t, count(t, gdb, &models.User{}, "id = ?", user.ID))
}
