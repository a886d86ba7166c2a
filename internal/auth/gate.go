// Package auth holds the role model helpers shared by the HTTP layer:
// the access gate that maps (role claim, path) to an allow/deny decision,
// request-context user plumbing, and password/token hashing.
package auth

import (
	"strings"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
)

// Path prefixes for each surface. API routes get a structured JSON
// denial; anything else is treated as a page route and redirected to
// the login surface.
const (
	AuthSurface  = "/auth"
	AdminSurface = "/api/admin"
	StoreSurface = "/api/store"
	UserSurface  = "/api/user"
	APIPrefix    = "/api"
)

// Allowed decides whether a caller with the given role claim may reach
// path. An empty or invalid role means unauthenticated. Rules are
// evaluated in precedence order, first match wins:
//
//  1. The auth surface is always reachable.
//  2. The admin surface requires super_admin exactly.
//  3. The store surface requires store_admin or super_admin.
//  4. The user surface requires any valid role.
//  5. Any other path requires any valid role.
//
// Pure function of its inputs: no lookups, no side effects.
func Allowed(role domain.Role, path string) bool {
	if underSurface(path, AuthSurface) {
		return true
	}
	authenticated := role.Valid()
	switch {
	case underSurface(path, AdminSurface):
		return role == domain.RoleSuperAdmin
	case underSurface(path, StoreSurface):
		return role == domain.RoleStoreAdmin || role == domain.RoleSuperAdmin
	case underSurface(path, UserSurface):
		return authenticated
	default:
		return authenticated
	}
}

// IsAPIPath reports whether a denial for path should be a JSON error
// rather than a redirect to the login page.
func IsAPIPath(path string) bool {
	return underSurface(path, APIPrefix)
}

func underSurface(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}
