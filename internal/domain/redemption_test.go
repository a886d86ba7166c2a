package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
)

func TestValidCodeFormat(t *testing.T) {
	assert.True(t, domain.ValidCodeFormat("12345678"))
	assert.True(t, domain.ValidCodeFormat("00000000"))

	assert.False(t, domain.ValidCodeFormat(""))
	assert.False(t, domain.ValidCodeFormat("1234567"))
	assert.False(t, domain.ValidCodeFormat("123456789"))
	assert.False(t, domain.ValidCodeFormat("1234567a"))
	assert.False(t, domain.ValidCodeFormat("12 45678"))
	assert.False(t, domain.ValidCodeFormat("１２３４５６７８")) // full-width digits
}

func TestRoleValid(t *testing.T) {
	assert.True(t, domain.RoleSuperAdmin.Valid())
	assert.True(t, domain.RoleStoreAdmin.Valid())
	assert.True(t, domain.RoleUser.Valid())
	assert.False(t, domain.Role("").Valid())
	assert.False(t, domain.Role("admin").Valid())
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	s := &domain.Session{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(2*time.Hour)))

	s.Revoked = true
	assert.True(t, s.Expired(now))
}
