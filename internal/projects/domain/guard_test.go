package domain_test

import (
	"testing"

	"github.com/projtrack-app/projtrack-backend/internal/projects/domain"
	"github.com/stretchr/testify/assert"
)

func TestRoleFor(t *testing.T) {
	project := &domain.Project{
		ID:        "p1",
		ManagerID: "alice",
		MemberIDs: []string{"bob", "carol"},
	}

	t.Run("manager iff manager id matches", func(t *testing.T) {
		assert.Equal(t, domain.RoleManager, domain.RoleFor("alice", project))
	})

	t.Run("member when in member set", func(t *testing.T) {
		assert.Equal(t, domain.RoleMember, domain.RoleFor("bob", project))
		assert.Equal(t, domain.RoleMember, domain.RoleFor("carol", project))
	})

	t.Run("none for outsiders", func(t *testing.T) {
		assert.Equal(t, domain.RoleNone, domain.RoleFor("mallory", project))
		assert.Equal(t, domain.RoleNone, domain.RoleFor("", project))
	})

	t.Run("manager wins over membership", func(t *testing.T) {
		// Member set should never contain the manager, but the guard must
		// still return exactly one role if it does.
		tainted := &domain.Project{ManagerID: "alice", MemberIDs: []string{"alice"}}
		assert.Equal(t, domain.RoleManager, domain.RoleFor("alice", tainted))
	})

	t.Run("empty member set", func(t *testing.T) {
		solo := &domain.Project{ManagerID: "alice"}
		assert.Equal(t, domain.RoleManager, domain.RoleFor("alice", solo))
		assert.Equal(t, domain.RoleNone, domain.RoleFor("bob", solo))
	})
}

func TestRoleInvolved(t *testing.T) {
	assert.True(t, domain.RoleManager.Involved())
	assert.True(t, domain.RoleMember.Involved())
	assert.False(t, domain.RoleNone.Involved())
}
