package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission_KnownRole(t *testing.T) {
	t.Parallel()

	assert.True(t, HasPermission(RoleBOD, PermissionSettingsManageAll))
	assert.True(t, HasPermission(RoleAdmin, PermissionUsersManageAll))
	assert.True(t, HasPermission(RoleLeader, PermissionAttendanceViewTeam))
	assert.True(t, HasPermission(RoleEmployee, PermissionAttendanceRecordSelf))

	assert.False(t, HasPermission(RoleLeader, PermissionAttendanceViewAll))
	assert.False(t, HasPermission(RoleEmployee, PermissionAttendanceViewTeam))
	assert.False(t, HasPermission(RoleCustomer, PermissionAttendanceViewSelf))
}

func TestHasPermission_UnknownRoleResolvesToEmptySet(t *testing.T) {
	t.Parallel()

	assert.False(t, HasPermission(Role("superuser"), PermissionAttendanceViewSelf))
	assert.False(t, HasPermission(Role(""), PermissionAttendanceViewSelf))
}

// hasPermission must fail closed: a permission string nobody defines is
// denied for every role, including the highest-privilege one.
func TestHasPermission_FailClosed(t *testing.T) {
	t.Parallel()

	for role := range RoleHierarchy {
		assert.False(t, HasPermission(role, Permission("nonexistent.permission_all")),
			"role %s must deny unknown permission", role)
	}
}

func TestHasPermission_PendingApprovalHasNothing(t *testing.T) {
	t.Parallel()

	for _, p := range allPermissions {
		assert.False(t, HasPermission(RolePendingApproval, p))
	}
}

func TestCanAccess_ScopeSuffix(t *testing.T) {
	t.Parallel()

	// Leader has attendance.view_team but not attendance.view_all
	assert.True(t, CanAccess(RoleLeader, "attendance.view", ScopeTeam))
	assert.False(t, CanAccess(RoleLeader, "attendance.view", ScopeAll))

	assert.True(t, CanAccess(RoleAdmin, "attendance.view", ScopeAll))
	assert.True(t, CanAccess(RoleEmployee, "attendance.view", ScopeSelf))
	assert.False(t, CanAccess(RoleEmployee, "attendance.view", ScopeTeam))
}

func TestCanAccess_EmptyScopeDefaultsToSelf(t *testing.T) {
	t.Parallel()

	assert.True(t, CanAccess(RoleEmployee, "attendance.view", ""))
	assert.False(t, CanAccess(RoleCustomer, "attendance.view", ""))
}

func TestCanAccess_NoFuzzyMatching(t *testing.T) {
	t.Parallel()

	// "attendance" alone is not of shape resource.action, so the built
	// string matches nothing
	assert.False(t, CanAccess(RoleAdmin, "attendance", ScopeAll))
	assert.False(t, CanAccess(RoleAdmin, "attendance.view_all", ScopeAll))
}

func TestCanManage_StrictHierarchy(t *testing.T) {
	t.Parallel()

	assert.True(t, CanManage(RoleBOD, RoleAdmin))
	assert.True(t, CanManage(RoleAdmin, RoleLeader))
	assert.True(t, CanManage(RoleLeader, RoleStudentL1))
	assert.True(t, CanManage(RoleEmployee, RolePendingApproval))

	assert.False(t, CanManage(RoleAdmin, RoleBOD))
	assert.False(t, CanManage(RoleStudentL1, RoleStudentL2))
}

// canManage is irreflexive: no role manages a peer of its own level.
func TestCanManage_Irreflexive(t *testing.T) {
	t.Parallel()

	for role := range RoleHierarchy {
		assert.False(t, CanManage(role, role), "role %s must not manage itself", role)
	}
}

func TestCanManage_UnknownRoleDenies(t *testing.T) {
	t.Parallel()

	assert.False(t, CanManage(Role("superuser"), RolePendingApproval))
	assert.False(t, CanManage(RoleBOD, Role("ghost")))
}

func TestRoleHierarchy_TotalOrder(t *testing.T) {
	t.Parallel()

	seen := make(map[int]Role)
	for role, level := range RoleHierarchy {
		prev, dup := seen[level]
		assert.False(t, dup, "roles %s and %s share hierarchy level %d", prev, role, level)
		seen[level] = role
	}
}

func TestRolePermissions_EveryRoleHasARow(t *testing.T) {
	t.Parallel()

	for role := range RoleHierarchy {
		_, ok := RolePermissions[role]
		assert.True(t, ok, "role %s missing from permission matrix", role)
	}
}
