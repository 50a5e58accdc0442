package user

import "time"

type Role string

const (
	RoleBOD             Role = "bod"              // Board of directors - full access
	RoleAdmin           Role = "admin"            // Operations admin
	RoleLeader          Role = "leader"           // Team leader - manages own team
	RoleMentor          Role = "mentor"           // Mentors students, team-level visibility
	RoleStudentL3       Role = "student_l3"       // Senior student
	RoleStudentL2       Role = "student_l2"       // Intermediate student
	RoleStudentL1       Role = "student_l1"       // Junior student
	RoleEmployee        Role = "employee"         // Regular staff
	RoleCollaborator    Role = "collaborator"     // External collaborator
	RoleCustomer        Role = "customer"         // Customer account, read-only surface
	RolePendingApproval Role = "pending_approval" // Awaiting activation
)

// RoleHierarchy assigns each role an integer level. A strictly higher level
// manages strictly lower levels; equal levels never manage each other.
// The level is used only for manage relationships, never for permissions.
var RoleHierarchy = map[Role]int{
	RoleBOD:             100,
	RoleAdmin:           90,
	RoleLeader:          80,
	RoleMentor:          70,
	RoleStudentL3:       60,
	RoleStudentL2:       50,
	RoleStudentL1:       40,
	RoleEmployee:        35,
	RoleCollaborator:    30,
	RoleCustomer:        20,
	RolePendingApproval: 10,
}

// IsValidRole checks if the role is a member of the closed role set.
func IsValidRole(r Role) bool {
	_, ok := RoleHierarchy[r]
	return ok
}

type User struct {
	ID              string
	Email           string
	FullName        string
	PasswordHash    *string
	Role            Role
	TeamID          *string
	OAuthProvider   *string
	OAuthProviderID *string
	EmailVerified   bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	TeamName *string
}

// IsPending checks if user is still awaiting activation
func (u *User) IsPending() bool {
	return u.Role == RolePendingApproval
}

// CanManageUser checks if this user may manage the target user's account
func (u *User) CanManageUser(target *User) bool {
	return CanManage(u.Role, target.Role)
}

// Principal is the authenticated caller as carried in JWT claims.
// Handlers build it from the token; services use it for scoping.
type Principal struct {
	UserID string
	Email  string
	Role   Role
	TeamID *string
}

// SameTeam checks whether the principal shares a team with the target
// team id. Principals without a team share no team.
func (p Principal) SameTeam(teamID *string) bool {
	return p.TeamID != nil && teamID != nil && *p.TeamID == *teamID
}
