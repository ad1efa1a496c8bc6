package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CastingWorksHQ/casting-api/internal/authz"
	"github.com/CastingWorksHQ/casting-api/internal/httperr"
	"github.com/CastingWorksHQ/casting-api/internal/metrics"
	"github.com/CastingWorksHQ/casting-api/internal/models"
	"github.com/CastingWorksHQ/casting-api/internal/session"
)

const ContextPrincipal = "principal"

// AuthCookieName also carries the token for browser clients; the
// Authorization header wins when both are present.
const AuthCookieName = "access_token"

func AuthMiddleware(resolver *session.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(AuthCookieName); err == nil {
				token = cookie
			}
		}

		p, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session_resolution_failed"})
			return
		}
		if p == nil {
			metrics.AuthFailuresTotal.Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Principal returns the resolved principal; nil only on routes outside
// the secured group.
func Principal(c *gin.Context) *session.Principal {
	val, exists := c.Get(ContextPrincipal)
	if !exists {
		return nil
	}
	p, _ := val.(*session.Principal)
	return p
}

// RequireRoles gates a route group on the authorization gate.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rej := authz.RequireRole(Principal(c), roles...); rej != nil {
			httperr.Write(c, rej.Status, rej.Code, rej.Message)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireTenantType gates a route group on tenant type; admins pass.
func RequireTenantType(tt models.TenantType) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rej := authz.RequireTenantType(Principal(c), tt); rej != nil {
			httperr.Write(c, rej.Status, rej.Code, rej.Message)
			c.Abort()
			return
		}
		c.Next()
	}
}
