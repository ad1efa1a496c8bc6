package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/CastingWorksHQ/casting-api/internal/models"
)

const TokenTTL = 24 * time.Hour

// IssueToken signs a session token for the user. The jti is returned so
// callers can later revoke exactly this token.
func IssueToken(secret string, user *models.User) (token string, jti string, err error) {
	jti = uuid.New().String()

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"jti":  jti,
		"role": string(user.Role),
		"exp":  time.Now().Add(TokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}
	if user.TenantID != nil {
		claims["tenantId"] = *user.TenantID
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// parseToken validates signature and expiry and extracts (userID, jti).
// Any malformed or expired token yields ok=false, never an error.
func parseToken(secret, tokenString string) (userID uint, jti string, ok bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", false
	}

	claims, claimsOK := token.Claims.(jwt.MapClaims)
	if !claimsOK {
		return 0, "", false
	}

	sub, subOK := claims["sub"].(float64)
	if !subOK {
		return 0, "", false
	}
	jti, _ = claims["jti"].(string)

	return uint(sub), jti, true
}
