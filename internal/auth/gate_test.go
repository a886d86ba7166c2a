package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/auth"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name string
		role domain.Role
		path string
		want bool
	}{
		// Auth surface is reachable by everyone
		{"unauthenticated on login", "", "/auth/login", true},
		{"unauthenticated on register", "", "/auth/register", true},
		{"user on auth surface", domain.RoleUser, "/auth/logout", true},

		// Admin surface requires super_admin exactly
		{"super admin on admin surface", domain.RoleSuperAdmin, "/api/admin/stores", true},
		{"store admin on admin surface", domain.RoleStoreAdmin, "/api/admin/stores", false},
		{"user on admin surface", domain.RoleUser, "/api/admin/users", false},
		{"unauthenticated on admin surface", "", "/api/admin/users", false},

		// Store surface: store_admin or super_admin
		{"store admin on store surface", domain.RoleStoreAdmin, "/api/store/claims", true},
		{"super admin on store surface", domain.RoleSuperAdmin, "/api/store/verify-redemption", true},
		{"user on store surface", domain.RoleUser, "/api/store/use-redemption", false},
		{"unauthenticated on store surface", "", "/api/store/members", false},

		// User surface: any valid role
		{"user on user surface", domain.RoleUser, "/api/user/redeem-points", true},
		{"store admin on user surface", domain.RoleStoreAdmin, "/api/user/me", true},
		{"super admin on user surface", domain.RoleSuperAdmin, "/api/user/memberships", true},
		{"unauthenticated on user surface", "", "/api/user/me", false},

		// Everything else requires some valid role
		{"unauthenticated on dashboard", "", "/dashboard", false},
		{"user on dashboard", domain.RoleUser, "/dashboard", true},
		{"invalid role on protected path", domain.Role("hacker"), "/dashboard", false},
		{"invalid role on admin surface", domain.Role("hacker"), "/api/admin/stores", false},

		// Prefix matching must not leak across sibling paths
		{"unauthenticated on /authenticate", "", "/authenticate", false},
		{"user on store-prefixed sibling", domain.RoleUser, "/api/storefront", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.Allowed(tt.role, tt.path))
		})
	}
}

func TestAllowedIsPure(t *testing.T) {
	// Same inputs, same answer, every time.
	for i := 0; i < 3; i++ {
		assert.False(t, auth.Allowed(domain.RoleStoreAdmin, "/api/admin/stores"))
		assert.True(t, auth.Allowed(domain.RoleSuperAdmin, "/api/store/claims"))
	}
}

func TestIsAPIPath(t *testing.T) {
	assert.True(t, auth.IsAPIPath("/api/user/me"))
	assert.True(t, auth.IsAPIPath("/api/admin/stores"))
	assert.False(t, auth.IsAPIPath("/dashboard"))
	assert.False(t, auth.IsAPIPath("/auth/login"))
	assert.False(t, auth.IsAPIPath("/apifoo"))
}
