package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
	"hotelbooking/response"
	"hotelbooking/services"
)

const (
	identityKey  = "identity"
	TenantHeader = "X-Tenant-ID"
)

func setIdentity(c *gin.Context, id services.Identity) {
	c.Set(identityKey, id)
	c.Request = c.Request.WithContext(services.WithIdentity(c.Request.Context(), id))
}

// CurrentIdentity returns the caller placed by AuthMiddleware or OptionalAuth.
func CurrentIdentity(c *gin.Context) (services.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return services.Identity{}, false
	}
	id, ok := v.(services.Identity)
	return id, ok
}

// AuthMiddleware requires a valid bearer token. With roles given, the
// caller must hold one of them.
func AuthMiddleware(secret string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		id, err := ParseToken(secret, authHeader)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		if len(roles) > 0 && !hasRole(id.Role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		setIdentity(c, id)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is sent and lets
// anonymous requests through.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			id, err := ParseToken(secret, authHeader)
			if err != nil {
				response.Unauthorized(c)
				c.Abort()
				return
			}
			setIdentity(c, id)
		}
		c.Next()
	}
}

// RoleMiddleware checks the role of an already authenticated caller.
func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		if !hasRole(id.Role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// TenantMiddleware resolves the tenant from the X-Tenant-ID header, falling
// back to the token's tenant. Only a superadmin may name a tenant other
// than its own, and an admin token must carry one.
func TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := strings.TrimSpace(c.GetHeader(TenantHeader))
		id, authenticated := CurrentIdentity(c)

		if authenticated && id.Role == constants.RoleAdmin && id.TenantID == "" {
			response.FromError(c, apperrors.Forbidden("admin token is not bound to a tenant"))
			c.Abort()
			return
		}
		if authenticated && !id.IsSuperAdmin() && id.TenantID != "" {
			if tenantID != "" && tenantID != id.TenantID {
				response.FromError(c, apperrors.Forbidden("tenant does not match token"))
				c.Abort()
				return
			}
			tenantID = id.TenantID
		}

		if tenantID != "" {
			c.Request = c.Request.WithContext(services.WithTenant(c.Request.Context(), tenantID))
		}
		c.Next()
	}
}

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			response.FromError(c, c.Errors.Last().Err)
		}
	}
}
