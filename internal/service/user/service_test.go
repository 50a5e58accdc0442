package user

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamops/teamops-backend-go/internal/domain/user"
	"github.com/teamops/teamops-backend-go/internal/pkg/validator"
)

type fakeUserRepo struct {
	user.UserRepository
	users      map[string]user.User
	lastFilter user.UserFilter
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) List(_ context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	f.lastFilter = filter
	var out []user.User
	for _, u := range f.users {
		if filter.TeamID != nil && (u.TeamID == nil || *u.TeamID != *filter.TeamID) {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, u user.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, userID string, role user.Role) error {
	u, ok := f.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	u.Role = role
	f.users[userID] = u
	return nil
}

func strptr(s string) *string { return &s }

// Team ids are UUID-shaped so team moves survive request validation.
const (
	teamAID = "6f1b2c3d-4e5a-4b6c-8d7e-9f0a1b2c3d4e"
	teamBID = "7a2b3c4d-5e6f-4a7b-9c8d-0e1f2a3b4c5d"
)

func setupUserService(t *testing.T) (*UserServiceImpl, *fakeUserRepo) {
	t.Helper()
	teamA := strptr(teamAID)
	teamB := strptr(teamBID)
	repo := &fakeUserRepo{
		users: map[string]user.User{
			"admin":    {ID: "admin", Role: user.RoleAdmin},
			"leader-a": {ID: "leader-a", Role: user.RoleLeader, TeamID: teamA},
			"emp-a":    {ID: "emp-a", Role: user.RoleEmployee, TeamID: teamA, FullName: "Ada"},
			"emp-b":    {ID: "emp-b", Role: user.RoleEmployee, TeamID: teamB, FullName: "Ben"},
		},
	}
	return &UserServiceImpl{UserRepository: repo}, repo
}

func principal(repo *fakeUserRepo, id string) user.Principal {
	u := repo.users[id]
	return user.Principal{UserID: u.ID, Role: u.Role, TeamID: u.TeamID}
}

func TestListUsers_TeamScopedCallerNarrowedToOwnTeam(t *testing.T) {
	svc, repo := setupUserService(t)

	resp, err := svc.ListUsers(context.Background(), principal(repo, "leader-a"), user.UserFilter{})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.TeamID)
	assert.Equal(t, teamAID, *repo.lastFilter.TeamID)
	for _, u := range resp.Users {
		require.NotNil(t, u.TeamID)
		assert.Equal(t, teamAID, *u.TeamID)
	}
}

func TestListUsers_AllScopedCallerKeepsFilter(t *testing.T) {
	svc, repo := setupUserService(t)

	resp, err := svc.ListUsers(context.Background(), principal(repo, "admin"), user.UserFilter{})
	require.NoError(t, err)

	assert.Nil(t, repo.lastFilter.TeamID)
	assert.Equal(t, int64(4), resp.TotalCount)
}

func TestListUsers_SelfScopedCallerDenied(t *testing.T) {
	svc, repo := setupUserService(t)

	_, err := svc.ListUsers(context.Background(), principal(repo, "emp-a"), user.UserFilter{})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestGetUser_SelfAlwaysAllowed(t *testing.T) {
	svc, repo := setupUserService(t)

	resp, err := svc.GetUser(context.Background(), principal(repo, "emp-a"), "emp-a")
	require.NoError(t, err)
	assert.Equal(t, "emp-a", resp.ID)
}

func TestGetUser_CrossTeamDeniedForTeamScope(t *testing.T) {
	svc, repo := setupUserService(t)

	_, err := svc.GetUser(context.Background(), principal(repo, "leader-a"), "emp-b")
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestGetUser_NotFound(t *testing.T) {
	svc, repo := setupUserService(t)

	_, err := svc.GetUser(context.Background(), principal(repo, "admin"), "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUpdateUser_SelfRename(t *testing.T) {
	svc, repo := setupUserService(t)

	resp, err := svc.UpdateUser(context.Background(), principal(repo, "emp-a"), user.UpdateUserRequest{
		ID:       "emp-a",
		FullName: strptr("Ada Lovelace"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", resp.FullName)
}

func TestUpdateUser_SelfTeamMoveDenied(t *testing.T) {
	svc, repo := setupUserService(t)

	_, err := svc.UpdateUser(context.Background(), principal(repo, "emp-a"), user.UpdateUserRequest{
		ID:     "emp-a",
		TeamID: strptr(teamBID),
	})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestUpdateUser_AdminMovesUserBetweenTeams(t *testing.T) {
	svc, repo := setupUserService(t)

	resp, err := svc.UpdateUser(context.Background(), principal(repo, "admin"), user.UpdateUserRequest{
		ID:     "emp-a",
		TeamID: strptr(teamBID),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.TeamID)
	assert.Equal(t, teamBID, *resp.TeamID)
}

func TestChangeRole_AdminPromotesEmployee(t *testing.T) {
	svc, repo := setupUserService(t)

	resp, err := svc.ChangeRole(context.Background(), principal(repo, "admin"), user.UpdateRoleRequest{
		ID:   "emp-a",
		Role: string(user.RoleLeader),
	})
	require.NoError(t, err)
	assert.Equal(t, string(user.RoleLeader), resp.Role)
	assert.Equal(t, user.RoleLeader, repo.users["emp-a"].Role)
}

func TestChangeRole_CannotPromotePastOwnRank(t *testing.T) {
	svc, repo := setupUserService(t)

	_, err := svc.ChangeRole(context.Background(), principal(repo, "admin"), user.UpdateRoleRequest{
		ID:   "emp-a",
		Role: string(user.RoleBOD),
	})
	assert.ErrorIs(t, err, user.ErrCannotManageRole)
}

func TestChangeRole_UnknownRoleRejected(t *testing.T) {
	svc, repo := setupUserService(t)

	_, err := svc.ChangeRole(context.Background(), principal(repo, "admin"), user.UpdateRoleRequest{
		ID:   "emp-a",
		Role: "warlord",
	})
	require.Error(t, err)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
