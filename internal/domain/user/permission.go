package user

type Permission string

// Scope is the breadth of a permission: own records only, the caller's
// team, or organization-wide.
type Scope string

const (
	ScopeSelf Scope = "self"
	ScopeTeam Scope = "team"
	ScopeAll  Scope = "all"
)

const (
	// Attendance
	PermissionAttendanceViewSelf   Permission = "attendance.view_self"
	PermissionAttendanceViewTeam   Permission = "attendance.view_team"
	PermissionAttendanceViewAll    Permission = "attendance.view_all"
	PermissionAttendanceRecordSelf Permission = "attendance.record_self"
	PermissionAttendanceManageTeam Permission = "attendance.manage_team"
	PermissionAttendanceManageAll  Permission = "attendance.manage_all"

	// Reports
	PermissionReportsViewSelf Permission = "reports.view_self"
	PermissionReportsViewTeam Permission = "reports.view_team"
	PermissionReportsViewAll  Permission = "reports.view_all"

	// Leave
	PermissionLeaveViewSelf  Permission = "leave.view_self"
	PermissionLeaveViewTeam  Permission = "leave.view_team"
	PermissionLeaveViewAll   Permission = "leave.view_all"
	PermissionLeaveManageAll Permission = "leave.manage_all"

	// Tasks (kanban board)
	PermissionTasksViewSelf   Permission = "tasks.view_self"
	PermissionTasksViewTeam   Permission = "tasks.view_team"
	PermissionTasksViewAll    Permission = "tasks.view_all"
	PermissionTasksManageSelf Permission = "tasks.manage_self"
	PermissionTasksManageTeam Permission = "tasks.manage_team"
	PermissionTasksManageAll  Permission = "tasks.manage_all"

	// Calendar
	PermissionCalendarViewTeam   Permission = "calendar.view_team"
	PermissionCalendarViewAll    Permission = "calendar.view_all"
	PermissionCalendarManageTeam Permission = "calendar.manage_team"
	PermissionCalendarManageAll  Permission = "calendar.manage_all"

	// Rooms
	PermissionRoomsViewAll   Permission = "rooms.view_all"
	PermissionRoomsManageAll Permission = "rooms.manage_all"

	// Notes
	PermissionNotesViewSelf   Permission = "notes.view_self"
	PermissionNotesViewTeam   Permission = "notes.view_team"
	PermissionNotesManageSelf Permission = "notes.manage_self"

	// User management
	PermissionUsersViewTeam  Permission = "users.view_team"
	PermissionUsersViewAll   Permission = "users.view_all"
	PermissionUsersManageAll Permission = "users.manage_all"

	// Attendance settings
	PermissionSettingsViewAll   Permission = "settings.view_all"
	PermissionSettingsManageAll Permission = "settings.manage_all"
)

// selfServicePermissions is the baseline set shared by the rank-and-file
// roles. Employee and Collaborator intentionally share one set: the
// historical duplication between them carried no behavioral difference,
// so it is collapsed here instead of maintained twice.
var selfServicePermissions = []Permission{
	PermissionAttendanceViewSelf,
	PermissionAttendanceRecordSelf,
	PermissionReportsViewSelf,
	PermissionLeaveViewSelf,
	PermissionTasksViewSelf,
	PermissionTasksViewTeam,
	PermissionTasksManageSelf,
	PermissionCalendarViewTeam,
	PermissionRoomsViewAll,
	PermissionNotesViewSelf,
	PermissionNotesViewTeam,
	PermissionNotesManageSelf,
}

// allPermissions is the full matrix row for top-tier roles.
var allPermissions = []Permission{
	PermissionAttendanceViewSelf,
	PermissionAttendanceViewTeam,
	PermissionAttendanceViewAll,
	PermissionAttendanceRecordSelf,
	PermissionAttendanceManageTeam,
	PermissionAttendanceManageAll,
	PermissionReportsViewSelf,
	PermissionReportsViewTeam,
	PermissionReportsViewAll,
	PermissionLeaveViewSelf,
	PermissionLeaveViewTeam,
	PermissionLeaveViewAll,
	PermissionLeaveManageAll,
	PermissionTasksViewSelf,
	PermissionTasksViewTeam,
	PermissionTasksViewAll,
	PermissionTasksManageSelf,
	PermissionTasksManageTeam,
	PermissionTasksManageAll,
	PermissionCalendarViewTeam,
	PermissionCalendarViewAll,
	PermissionCalendarManageTeam,
	PermissionCalendarManageAll,
	PermissionRoomsViewAll,
	PermissionRoomsManageAll,
	PermissionNotesViewSelf,
	PermissionNotesViewTeam,
	PermissionNotesManageSelf,
	PermissionUsersViewTeam,
	PermissionUsersViewAll,
	PermissionUsersManageAll,
	PermissionSettingsViewAll,
	PermissionSettingsManageAll,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleBOD:   allPermissions,
	RoleAdmin: allPermissions,
	RoleLeader: {
		PermissionAttendanceViewSelf,
		PermissionAttendanceViewTeam,
		PermissionAttendanceRecordSelf,
		PermissionAttendanceManageTeam,
		PermissionReportsViewSelf,
		PermissionReportsViewTeam,
		PermissionLeaveViewSelf,
		PermissionLeaveViewTeam,
		PermissionTasksViewSelf,
		PermissionTasksViewTeam,
		PermissionTasksManageSelf,
		PermissionTasksManageTeam,
		PermissionCalendarViewTeam,
		PermissionCalendarManageTeam,
		PermissionRoomsViewAll,
		PermissionNotesViewSelf,
		PermissionNotesViewTeam,
		PermissionNotesManageSelf,
		PermissionUsersViewTeam,
	},
	RoleMentor: {
		PermissionAttendanceViewSelf,
		PermissionAttendanceViewTeam,
		PermissionAttendanceRecordSelf,
		PermissionReportsViewSelf,
		PermissionReportsViewTeam,
		PermissionLeaveViewSelf,
		PermissionTasksViewSelf,
		PermissionTasksViewTeam,
		PermissionTasksManageSelf,
		PermissionCalendarViewTeam,
		PermissionRoomsViewAll,
		PermissionNotesViewSelf,
		PermissionNotesViewTeam,
		PermissionNotesManageSelf,
		PermissionUsersViewTeam,
	},
	RoleStudentL3:    selfServicePermissions,
	RoleStudentL2:    selfServicePermissions,
	RoleStudentL1:    selfServicePermissions,
	RoleEmployee:     selfServicePermissions,
	RoleCollaborator: selfServicePermissions,
	RoleCustomer: {
		PermissionTasksViewSelf,
		PermissionCalendarViewTeam,
	},
	RolePendingApproval: {
		// No permissions until approved
	},
}

// HasPermission checks if a role has a specific permission.
// Unknown roles resolve to the empty permission set: every query
// denies, it never errors.
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// CanAccess builds the scoped permission string "<resource>.<action>_<scope>"
// and checks it. resourceAction must already be of the shape "resource.action";
// the scope is appended verbatim, never matched fuzzily. An empty scope
// defaults to self.
func CanAccess(role Role, resourceAction string, scope Scope) bool {
	if scope == "" {
		scope = ScopeSelf
	}
	return HasPermission(role, Permission(resourceAction+"_"+string(scope)))
}

// CanManage checks if the actor role strictly outranks the target role.
// A role never manages a peer of equal level, including itself. Roles
// missing from the hierarchy deny on either side.
func CanManage(actorRole Role, targetRole Role) bool {
	actorLevel, ok := RoleHierarchy[actorRole]
	if !ok {
		return false
	}
	targetLevel, ok := RoleHierarchy[targetRole]
	if !ok {
		return false
	}
	return actorLevel > targetLevel
}
