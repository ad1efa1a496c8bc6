package session

import "github.com/CastingWorksHQ/casting-api/internal/models"

// Principal is the resolved identity for an authenticated request: user,
// role and tenant context, re-derived on every request.
type Principal struct {
	UserID     uint
	Email      string
	Role       models.Role
	TenantID   *uint
	TenantType models.TenantType

	// jti of the presenting token; used for sign-out.
	TokenID string
}

func (p *Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin || p.Role == models.RoleSuperAdmin
}

func (p *Principal) IsStudio() bool {
	return p.TenantType == models.TenantTypeStudio
}

func (p *Principal) IsTalent() bool {
	return p.TenantType == models.TenantTypeTalent
}
