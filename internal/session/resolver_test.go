package session

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/models"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.Tenant{}, &models.User{}))
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB) *models.User {
	t.Helper()

	tenant := models.Tenant{TenantType: models.TenantTypeTalent}
	require.NoError(t, gdb.Create(&tenant).Error)

	user := models.User{
		TenantID: &tenant.ID,
		Name:     "Ada",
		Email:    "ada@example.com",
		Role:     models.RoleUser,
	}
	require.NoError(t, gdb.Create(&user).Error)
	return &user
}

func TestResolve_ValidToken(t *testing.T) {
	gdb := newTestDB(t)
	user := seedUser(t, gdb)
	r := NewResolver(gdb, testSecret, NewMemoryRevocationStore())

	token, jti, err := IssueToken(testSecret, user)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	p, err := r.Resolve(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, user.ID, p.UserID)
	assert.Equal(t, user.Email, p.Email)
	assert.Equal(t, models.RoleUser, p.Role)
	assert.Equal(t, models.TenantTypeTalent, p.TenantType)
	assert.Equal(t, jti, p.TokenID)
}

func TestResolve_InvalidInputsAreNilNotError(t *testing.T) {
	gdb := newTestDB(t)
	seedUser(t, gdb)
	r := NewResolver(gdb, testSecret, NewMemoryRevocationStore())

	for _, token := range []string{"", "garbage", "a.b.c"} {
		p, err := r.Resolve(context.Background(), token)
		assert.NoError(t, err)
		assert.Nil(t, p)
	}
}

func TestResolve_WrongSecret(t *testing.T) {
	gdb := newTestDB(t)
	user := seedUser(t, gdb)
	r := NewResolver(gdb, testSecret, NewMemoryRevocationStore())

	token, _, err := IssueToken("another-secret", user)
	require.NoError(t, err)

	p, err := r.Resolve(context.Background(), token)
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestResolve_DeletedUser(t *testing.T) {
	gdb := newTestDB(t)
	user := seedUser(t, gdb)
	r := NewResolver(gdb, testSecret, NewMemoryRevocationStore())

	token, _, err := IssueToken(testSecret, user)
	require.NoError(t, err)

	require.NoError(t, gdb.Delete(&models.User{}, user.ID).Error)

	p, err := r.Resolve(context.Background(), token)
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestSignOut_RevokesExactlyThisToken(t *testing.T) {
	gdb := newTestDB(t)
	user := seedUser(t, gdb)
	r := NewResolver(gdb, testSecret, NewMemoryRevocationStore())

	first, _, err := IssueToken(testSecret, user)
	require.NoError(t, err)
	second, _, err := IssueToken(testSecret, user)
	require.NoError(t, err)

	p, err := r.Resolve(context.Background(), first)
	require.NoError(t, err)
	require.NotNil(t, p)

	require.NoError(t, r.SignOut(context.Background(), p))

	p, err = r.Resolve(context.Background(), first)
	assert.NoError(t, err)
	assert.Nil(t, p)

	// Other sessions of the same user stay alive.
	p, err = r.Resolve(context.Background(), second)
	assert.NoError(t, err)
	assert.NotNil(t, p)
}

func TestResolve_RoleComesFromTheRow(t *testing.T) {
	gdb := newTestDB(t)
	user := seedUser(t, gdb)
	r := NewResolver(gdb, testSecret, NewMemoryRevocationStore())

	token, _, err := IssueToken(testSecret, user)
	require.NoError(t, err)

	require.NoError(t, gdb.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("role", models.RoleAdmin).Error)

	p, err := r.Resolve(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, models.RoleAdmin, p.Role)
	assert.True(t, p.IsAdmin())
}
