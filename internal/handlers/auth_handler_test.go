package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/config"
	dbpkg "github.com/CastingWorksHQ/casting-api/internal/db"
	"github.com/CastingWorksHQ/casting-api/internal/models"
	"github.com/CastingWorksHQ/casting-api/internal/session"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(dbpkg.AllModels()...))

	cfg := &config.Config{JWTSecret: "test-secret"}
	resolver := session.NewResolver(gdb, cfg.JWTSecret, session.NewMemoryRevocationStore())
	h := NewAuthHandler(gdb, cfg, resolver)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	return r, gdb
}

func postRegister(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func countRows(t *testing.T, gdb *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(model).Count(&n).Error)
	return n
}

func TestRegister_TalentCreatesTenantProfileAndUser(t *testing.T) {
	r, gdb := setupAuthRouter(t)

	w := postRegister(r, `{
		"account_type": "talent",
		"name":         "Ada",
		"email":        "ada@localhost",
		"password":     "password-1",
		"stage_name":   "Ada L.",
		"location":     "Berlin"
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, int64(1), countRows(t, gdb, &models.Tenant{}))
	assert.Equal(t, int64(1), countRows(t, gdb, &models.Profile{}))

	var user models.User
	require.NoError(t, gdb.Where("email = ?", "ada@localhost").First(&user).Error)
	require.NotNil(t, user.TenantID)
}

func TestRegister_FailedUserCreateLeavesNoOrphanTenant(t *testing.T) {
	r, gdb := setupAuthRouter(t)

	// Make the final user insert fail after tenant and profile creation
	// succeeded, the same shape as losing a race on the email index.
	require.NoError(t, gdb.Migrator().DropTable(&models.User{}))

	w := postRegister(r, `{
		"account_type": "talent",
		"name":         "Ada",
		"email":        "ada@localhost",
		"password":     "password-1"
	}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed_to_create_user")

	assert.Equal(t, int64(0), countRows(t, gdb, &models.Tenant{}))
	assert.Equal(t, int64(0), countRows(t, gdb, &models.Profile{}))
}

func TestRegister_FailedStudioCreateRollsBackTenant(t *testing.T) {
	r, gdb := setupAuthRouter(t)

	require.NoError(t, gdb.Migrator().DropTable(&models.Studio{}))

	w := postRegister(r, `{
		"account_type": "studio",
		"name":         "Max",
		"email":        "max@localhost",
		"password":     "password-1",
		"studio_name":  "Northlight"
	}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed_to_create_studio")

	assert.Equal(t, int64(0), countRows(t, gdb, &models.Tenant{}))
	assert.Equal(t, int64(0), countRows(t, gdb, &models.User{}))
}
