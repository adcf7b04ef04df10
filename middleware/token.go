package middleware

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "hotelbooking/errors"
	"hotelbooking/services"
)

// Claims is the token payload issued by the identity provider.
type Claims struct {
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	TenantID string `json:"tenantId,omitempty"`
	jwt.RegisteredClaims
}

// ParseToken verifies an HS256 token and returns the identity it carries.
func ParseToken(secret, tokenString string) (services.Identity, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return services.Identity{}, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "missing token", nil)
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return services.Identity{}, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "invalid token", err)
	}
	if claims.UserID == "" || claims.Role == "" {
		return services.Identity{}, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "token has no user", nil)
	}

	return services.Identity{
		UserID:   claims.UserID,
		Role:     claims.Role,
		TenantID: claims.TenantID,
	}, nil
}

// IssueToken signs an identity. Production tokens come from the external
// identity provider; this is used by tooling and tests.
func IssueToken(secret string, id services.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   id.UserID,
		Role:     id.Role,
		TenantID: id.TenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
