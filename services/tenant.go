package services

import (
	"context"
	"math"
	"strings"
	"time"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
)

type tenantKey struct{}
type identityKey struct{}

// Identity is the authenticated caller as supplied by the identity layer.
type Identity struct {
	UserID   string
	Role     string
	TenantID string
}

func (i Identity) IsAdmin() bool {
	return i.Role == constants.RoleAdmin || i.Role == constants.RoleSuperAdmin
}

func (i Identity) IsSuperAdmin() bool {
	return i.Role == constants.RoleSuperAdmin
}

func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantKey{}, strings.TrimSpace(tenantID))
}

// TenantFromContext returns the current tenant or "" when none was resolved.
func TenantFromContext(ctx context.Context) string {
	tenantID, _ := ctx.Value(tenantKey{}).(string)
	return tenantID
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// ResolveTenant returns the tenant scope for a call. An empty result means
// unscoped, which only a superadmin may get.
func ResolveTenant(ctx context.Context) (string, error) {
	if tenantID := TenantFromContext(ctx); tenantID != "" {
		return tenantID, nil
	}
	if id, ok := IdentityFromContext(ctx); ok {
		if id.TenantID != "" {
			return id.TenantID, nil
		}
		if id.IsSuperAdmin() {
			return "", nil
		}
	}
	return "", apperrors.ErrTenantRequired
}

// inTenant reports whether an entity owned by owner is visible in scope.
func inTenant(scope, owner string) bool {
	return scope == "" || scope == owner
}

// Clock returns "now"; services take one so tests can pin the date.
type Clock func() time.Time

func (c Clock) today() time.Time {
	if c == nil {
		return NormalizeDate(time.Now())
	}
	return NormalizeDate(c())
}

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// NormalizeDate strips the time of day, keeping the calendar date in UTC.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperrors.NewAppError(apperrors.ErrCodeValidation, "invalid date "+s+", expected YYYY-MM-DD", err)
	}
	return t, nil
}

// Nights is ceil((checkOut - checkIn) / 24h) with a minimum of one.
func Nights(checkIn, checkOut time.Time) int {
	n := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if n < 1 {
		return 1
	}
	return n
}
