package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/audit"
	"github.com/CastingWorksHQ/casting-api/internal/middleware"
	"github.com/CastingWorksHQ/casting-api/internal/models"
	"github.com/CastingWorksHQ/casting-api/internal/session"
)

func setupRoleRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.AuditLog{}))

	h := NewAdminUserHandler(gdb, nil, nil, audit.NewDispatcher(audit.New(gdb), zap.NewNop()))

	r := gin.New()
	r.PATCH("/admin/users/:id/role", func(c *gin.Context) {
		var acting models.User
		require.NoError(t, gdb.Where("email = ?", c.GetHeader("X-Test-User")).First(&acting).Error)
		c.Set(middleware.ContextPrincipal, &session.Principal{
			UserID: acting.ID,
			Email:  acting.Email,
			Role:   acting.Role,
		})
		h.UpdateRole(c)
	})
	return r, gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	u := models.User{Name: "U", Email: email, Role: role}
	require.NoError(t, gdb.Create(&u).Error)
	return &u
}

func patchRole(r *gin.Engine, actingEmail string, targetID uint, role string) *httptest.ResponseRecorder {
	body := strings.NewReader(`{"role":"` + role + `"}`)
	path := "/admin/users/" + strconv.FormatUint(uint64(targetID), 10) + "/role"
	req := httptest.NewRequest(http.MethodPatch, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", actingEmail)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func roleOf(t *testing.T, gdb *gorm.DB, id uint) models.Role {
	t.Helper()
	var u models.User
	require.NoError(t, gdb.First(&u, id).Error)
	return u.Role
}

func TestUpdateRole_AdminCannotDemoteAdmin(t *testing.T) {
	r, gdb := setupRoleRouter(t)
	seedUser(t, gdb, "admin@example.com", models.RoleAdmin)
	target := seedUser(t, gdb, "peer@example.com", models.RoleAdmin)

	w := patchRole(r, "admin@example.com", target.ID, string(models.RoleUser))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, models.RoleAdmin, roleOf(t, gdb, target.ID))
}

func TestUpdateRole_AdminCannotDemoteSuperAdmin(t *testing.T) {
	r, gdb := setupRoleRouter(t)
	seedUser(t, gdb, "admin@example.com", models.RoleAdmin)
	target := seedUser(t, gdb, "root@example.com", models.RoleSuperAdmin)

	w := patchRole(r, "admin@example.com", target.ID, string(models.RoleUser))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, models.RoleSuperAdmin, roleOf(t, gdb, target.ID))
}

func TestUpdateRole_AdminCannotPromote(t *testing.T) {
	r, gdb := setupRoleRouter(t)
	seedUser(t, gdb, "admin@example.com", models.RoleAdmin)
	target := seedUser(t, gdb, "user@example.com", models.RoleUser)

	w := patchRole(r, "admin@example.com", target.ID, string(models.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, models.RoleUser, roleOf(t, gdb, target.ID))
}

func TestUpdateRole_SuperAdminDemotesAdmin(t *testing.T) {
	r, gdb := setupRoleRouter(t)
	seedUser(t, gdb, "root@example.com", models.RoleSuperAdmin)
	target := seedUser(t, gdb, "peer@example.com", models.RoleAdmin)

	w := patchRole(r, "root@example.com", target.ID, string(models.RoleUser))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoleUser, roleOf(t, gdb, target.ID))
}
