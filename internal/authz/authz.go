package authz

import (
	"net/http"

	"github.com/CastingWorksHQ/casting-api/internal/models"
	"github.com/CastingWorksHQ/casting-api/internal/session"
)

// Rejection maps directly onto an HTTP response. A nil rejection means
// the request may proceed. Pure data, no side effects.
type Rejection struct {
	Status  int
	Code    string
	Message string
}

func unauthenticated() *Rejection {
	return &Rejection{
		Status:  http.StatusUnauthorized,
		Code:    "unauthenticated",
		Message: "Authentication required.",
	}
}

func forbidden(code, message string) *Rejection {
	return &Rejection{
		Status:  http.StatusForbidden,
		Code:    code,
		Message: message,
	}
}

// RequireRole accepts the principal iff its role is in the allow-list.
func RequireRole(p *session.Principal, allowed ...models.Role) *Rejection {
	if p == nil {
		return unauthenticated()
	}
	for _, role := range allowed {
		if p.Role == role {
			return nil
		}
	}
	return forbidden("insufficient_role", "Your role does not allow this action.")
}

// RequireTenantType accepts tenant-type matches and administrators.
func RequireTenantType(p *session.Principal, tt models.TenantType) *Rejection {
	if p == nil {
		return unauthenticated()
	}
	if p.IsAdmin() {
		return nil
	}
	if p.TenantType == tt {
		return nil
	}
	return forbidden("wrong_tenant_type", "This endpoint is restricted to "+string(tt)+" accounts.")
}
