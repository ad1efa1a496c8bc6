package session

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/models"
)

// Resolver recovers the authenticated principal behind a session token.
// A missing, malformed, expired or revoked token resolves to (nil, nil):
// unauthenticated is not an error. Only store failures return an error.
type Resolver struct {
	db      *gorm.DB
	secret  string
	revoked RevocationStore
}

func NewResolver(db *gorm.DB, secret string, revoked RevocationStore) *Resolver {
	return &Resolver{db: db, secret: secret, revoked: revoked}
}

func (r *Resolver) Resolve(ctx context.Context, tokenString string) (*Principal, error) {
	if tokenString == "" {
		return nil, nil
	}

	userID, jti, ok := parseToken(r.secret, tokenString)
	if !ok {
		return nil, nil
	}

	if jti != "" {
		revoked, err := r.revoked.IsRevoked(ctx, jti)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, nil
		}
	}

	// Role and tenant linkage come from the user row, not the claims, so
	// role changes take effect on the next request.
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Tenant").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	p := &Principal{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		TenantID: user.TenantID,
		TokenID:  jti,
	}
	if user.Tenant != nil {
		p.TenantType = user.Tenant.TenantType
	}
	return p, nil
}

// SignOut revokes the presenting token for the remainder of its lifetime.
func (r *Resolver) SignOut(ctx context.Context, p *Principal) error {
	if p == nil || p.TokenID == "" {
		return nil
	}
	return r.revoked.Revoke(ctx, p.TokenID, TokenTTL)
}
