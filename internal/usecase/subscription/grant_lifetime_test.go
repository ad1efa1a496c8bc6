package subscription

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
	domain "github.com/CastingWorksHQ/casting-api/internal/domain/subscription"
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

func newGrantUsecase(t *testing.T, gdb *gorm.DB) *GrantLifetime {
	t.Helper()
	repo := infraRepo.NewSubscriptionGormRepository(gdb)
	dispatcher := audit.NewDispatcher(audit.New(gdb), zap.NewNop())
	return NewGrantLifetime(repo, dispatcher)
}

func seedTargetUser(t *testing.T, gdb *gorm.DB) *models.User {
	t.Helper()
	user := models.User{Name: "Target", Email: "target@example.com"}
	require.NoError(t, gdb.Create(&user).Error)
	return &user
}

func adminP() *session.Principal {
	return &session.Principal{UserID: 7, Role: models.RoleAdmin}
}

func minHorizon() time.Time {
	return time.Now().Add(99 * 365 * 24 * time.Hour)
}

func TestGrantLifetime_CreateNew(t *testing.T) {
	gdb := newTestDB(t)
	user := seedTargetUser(t, gdb)
	uc := newGrantUsecase(t, gdb)

	sub, err := uc.Execute(context.Background(), adminP(), user.ID, "10.0.0.1", "admin-ui")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusActive), sub.Status)
	assert.False(t, sub.CancelAtPeriodEnd)
	assert.True(t, sub.CurrentPeriodEnd.After(minHorizon()))
	assert.Equal(t, domain.LifetimePlanName, sub.Plan.Name)

	var plan models.SubscriptionPlan
	require.NoError(t, gdb.Where("name = ?", domain.LifetimePlanName).First(&plan).Error)
	assert.Equal(t, "lifetime", plan.Interval)
	assert.Zero(t, plan.Price)

	assert.Eventually(t, func() bool {
		var n int64
		gdb.Model(&models.AuditLog{}).
			Where("action = ? AND target_id = ?", audit.ActionSubscriptionGrantLifetime, user.ID).
			Count(&n)
		return n == 1
	}, 2*time.Second, 10*time.Millisecond)

	var entry models.AuditLog
	require.NoError(t, gdb.Where("action = ?", audit.ActionSubscriptionGrantLifetime).First(&entry).Error)
	assert.Contains(t, entry.Details, `"actionType":"create_new"`)
}

func TestGrantLifetime_StretchesExistingSubscription(t *testing.T) {
	gdb := newTestDB(t)
	user := seedTargetUser(t, gdb)
	uc := newGrantUsecase(t, gdb)

	plan := models.SubscriptionPlan{Name: "Monthly", Price: 29, Interval: "month", Active: true}
	require.NoError(t, gdb.Create(&plan).Error)

	existing := models.Subscription{
		UserID:             user.ID,
		PlanID:             plan.ID,
		Status:             string(domain.StatusActive),
		CurrentPeriodStart: time.Now(),
		CurrentPeriodEnd:   time.Now().Add(30 * 24 * time.Hour),
		CancelAtPeriodEnd:  true,
	}
	require.NoError(t, gdb.Create(&existing).Error)

	sub, err := uc.Execute(context.Background(), adminP(), user.ID, "10.0.0.1", "admin-ui")
	require.NoError(t, err)

	// The existing row is stretched, not replaced.
	assert.Equal(t, existing.ID, sub.ID)
	assert.Equal(t, plan.ID, sub.PlanID)
	assert.False(t, sub.CancelAtPeriodEnd)
	assert.True(t, sub.CurrentPeriodEnd.After(minHorizon()))

	var n int64
	gdb.Model(&models.Subscription{}).Where("user_id = ?", user.ID).Count(&n)
	assert.Equal(t, int64(1), n)

	assert.Eventually(t, func() bool {
		var logs int64
		gdb.Model(&models.AuditLog{}).
			Where("action = ? AND details LIKE ?",
				audit.ActionSubscriptionGrantLifetime, `%"actionType":"update_existing"%`).
			Count(&logs)
		return logs == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGrantLifetime_Idempotent(t *testing.T) {
	gdb := newTestDB(t)
	user := seedTargetUser(t, gdb)
	uc := newGrantUsecase(t, gdb)

	_, err := uc.Execute(context.Background(), adminP(), user.ID, "10.0.0.1", "admin-ui")
	require.NoError(t, err)
	sub, err := uc.Execute(context.Background(), adminP(), user.ID, "10.0.0.1", "admin-ui")
	require.NoError(t, err)

	var n int64
	gdb.Model(&models.Subscription{}).Where("user_id = ?", user.ID).Count(&n)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, string(domain.StatusActive), sub.Status)
	assert.True(t, sub.CurrentPeriodEnd.After(minHorizon()))
}

func TestGrantLifetime_MissingUser(t *testing.T) {
	gdb := newTestDB(t)
	uc := newGrantUsecase(t, gdb)

	_, err := uc.Execute(context.Background(), adminP(), 9999, "10.0.0.1", "admin-ui")
	assert.True(t, httperr.IsBusiness(err, "not_found"))

	var n int64
	gdb.Model(&models.Subscription{}).Count(&n)
	assert.Zero(t, n)
}
