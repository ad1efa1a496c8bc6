package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/models"
	"github.com/CastingWorksHQ/casting-api/internal/session"
)

const testSecret = "test-secret"

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, *session.Resolver) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.Tenant{}, &models.User{}))

	resolver := session.NewResolver(gdb, testSecret, session.NewMemoryRevocationStore())

	r := gin.New()
	secured := r.Group("/")
	secured.Use(AuthMiddleware(resolver))
	secured.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": Principal(c).UserID})
	})

	admin := secured.Group("/admin")
	admin.Use(RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})

	studioOnly := secured.Group("/studio")
	studioOnly.Use(RequireTenantType(models.TenantTypeStudio))
	studioOnly.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})

	return r, gdb, resolver
}

func createUser(t *testing.T, gdb *gorm.DB, role models.Role, tt models.TenantType) (*models.User, string) {
	t.Helper()

	tenant := models.Tenant{TenantType: tt}
	require.NoError(t, gdb.Create(&tenant).Error)

	user := models.User{TenantID: &tenant.ID, Name: "U", Email: string(role) + string(tt) + "@example.com", Role: role}
	require.NoError(t, gdb.Create(&user).Error)

	token, _, err := session.IssueToken(testSecret, &user)
	require.NoError(t, err)
	return &user, token
}

func do(r *gin.Engine, path, bearer, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	r, _, _ := setupRouter(t)
	w := do(r, "/whoami", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	r, gdb, _ := setupRouter(t)
	_, token := createUser(t, gdb, models.RoleUser, models.TenantTypeTalent)

	w := do(r, "/whoami", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_CookieFallback(t *testing.T) {
	r, gdb, _ := setupRouter(t)
	_, token := createUser(t, gdb, models.RoleUser, models.TenantTypeTalent)

	w := do(r, "/whoami", "", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	r, _, _ := setupRouter(t)
	w := do(r, "/whoami", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	r, gdb, resolver := setupRouter(t)
	_, token := createUser(t, gdb, models.RoleUser, models.TenantTypeTalent)

	p, err := resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.NoError(t, resolver.SignOut(context.Background(), p))

	w := do(r, "/whoami", token, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles_Gate(t *testing.T) {
	r, gdb, _ := setupRouter(t)
	_, userToken := createUser(t, gdb, models.RoleUser, models.TenantTypeTalent)
	_, adminToken := createUser(t, gdb, models.RoleAdmin, models.TenantTypeTalent)

	w := do(r, "/admin/ping", userToken, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, "/admin/ping", adminToken, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireTenantType_Gate(t *testing.T) {
	r, gdb, _ := setupRouter(t)
	_, talentToken := createUser(t, gdb, models.RoleUser, models.TenantTypeTalent)
	_, studioToken := createUser(t, gdb, models.RoleUser, models.TenantTypeStudio)
	_, adminToken := createUser(t, gdb, models.RoleAdmin, models.TenantTypeTalent)

	w := do(r, "/studio/ping", talentToken, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, "/studio/ping", studioToken, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Admins pass tenant gates.
	w = do(r, "/studio/ping", adminToken, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
