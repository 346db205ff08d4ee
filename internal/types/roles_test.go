package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"owner", "admin", "member"} {
		role, ok := ParseRole(valid)
		assert.True(t, ok)
		assert.Equal(t, Role(valid), role)
	}

	for _, invalid := range []string{"", "superuser", "Owner", "OWNER"} {
		_, ok := ParseRole(invalid)
		assert.False(t, ok)
	}
}

func TestRoleAssignable(t *testing.T) {
	assert.False(t, RoleOwner.Assignable())
	assert.True(t, RoleAdmin.Assignable())
	assert.True(t, RoleMember.Assignable())
}

func TestRoleCanManageProject(t *testing.T) {
	assert.True(t, RoleOwner.CanManageProject())
	assert.True(t, RoleAdmin.CanManageProject())
	assert.False(t, RoleMember.CanManageProject())
}
