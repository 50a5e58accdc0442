package leave

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamops/teamops-backend-go/internal/domain/leave"
	"github.com/teamops/teamops-backend-go/internal/domain/user"
)

type fakeLeaveRepo struct {
	leave.LeaveRepository
	requests map[string]*leave.LeaveRequest
	overlap  bool
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[string]*leave.LeaveRequest)}
}

func (f *fakeLeaveRepo) Create(_ context.Context, req *leave.LeaveRequest) error {
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (*leave.LeaveRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *req
	return &cp, nil
}

func (f *fakeLeaveRepo) GetByUser(_ context.Context, userID string, statuses []leave.RequestStatus) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if req.UserID == userID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) GetByUsers(_ context.Context, userIDs []string, statuses []leave.RequestStatus) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if len(statuses) > 0 && req.Status != statuses[0] {
			continue
		}
		if userIDs == nil {
			out = append(out, *req)
			continue
		}
		for _, id := range userIDs {
			if req.UserID == id {
				out = append(out, *req)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) UpdateStatus(_ context.Context, id string, status leave.RequestStatus, reviewedBy string, reviewedAt time.Time) error {
	req, ok := f.requests[id]
	if !ok {
		return pgx.ErrNoRows
	}
	req.Status = status
	req.ReviewedBy = &reviewedBy
	req.ReviewedAt = &reviewedAt
	return nil
}

func (f *fakeLeaveRepo) HasOverlap(_ context.Context, userID string, start, end time.Time) (bool, error) {
	return f.overlap, nil
}

type fakeUserRepo struct {
	user.UserRepository
	users   map[string]user.User
	members map[string][]string
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) GetTeamMemberIDs(_ context.Context, teamID string) ([]string, error) {
	return f.members[teamID], nil
}

func strptr(s string) *string { return &s }

func setupLeaveService(t *testing.T) (*LeaveServiceImpl, *fakeLeaveRepo, *fakeUserRepo) {
	t.Helper()
	teamA := strptr("team-a")
	teamB := strptr("team-b")
	leaveRepo := newFakeLeaveRepo()
	userRepo := &fakeUserRepo{
		users: map[string]user.User{
			"admin":    {ID: "admin", Role: user.RoleAdmin},
			"leader-a": {ID: "leader-a", Role: user.RoleLeader, TeamID: teamA},
			"leader-b": {ID: "leader-b", Role: user.RoleLeader, TeamID: teamB},
			"emp-a":    {ID: "emp-a", Role: user.RoleEmployee, TeamID: teamA},
			"emp-b":    {ID: "emp-b", Role: user.RoleEmployee, TeamID: teamB},
		},
		members: map[string][]string{
			"team-a": {"leader-a", "emp-a"},
			"team-b": {"leader-b", "emp-b"},
		},
	}
	svc := &LeaveServiceImpl{
		LeaveRepository: leaveRepo,
		UserRepository:  userRepo,
		now:             func() time.Time { return time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC) },
	}
	return svc, leaveRepo, userRepo
}

func TestRequestLeave_CreatesPendingRequest(t *testing.T) {
	svc, repo, _ := setupLeaveService(t)

	resp, err := svc.RequestLeave(context.Background(), "emp-a", &leave.CreateLeaveRequest{
		StartDate: "2025-06-10",
		EndDate:   "2025-06-12",
		Reason:    "family trip",
	})
	require.NoError(t, err)

	assert.Equal(t, string(leave.StatusPending), resp.Status)
	assert.Equal(t, "emp-a", resp.UserID)
	assert.Len(t, repo.requests, 1)
}

func TestRequestLeave_EndBeforeStart(t *testing.T) {
	svc, _, _ := setupLeaveService(t)

	_, err := svc.RequestLeave(context.Background(), "emp-a", &leave.CreateLeaveRequest{
		StartDate: "2025-06-12",
		EndDate:   "2025-06-10",
		Reason:    "oops",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestRequestLeave_OverlapRejected(t *testing.T) {
	svc, repo, _ := setupLeaveService(t)
	repo.overlap = true

	_, err := svc.RequestLeave(context.Background(), "emp-a", &leave.CreateLeaveRequest{
		StartDate: "2025-06-10",
		EndDate:   "2025-06-12",
		Reason:    "again",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
	assert.Empty(t, repo.requests)
}

func TestReview_LeaderApprovesOwnTeamMember(t *testing.T) {
	svc, repo, _ := setupLeaveService(t)
	repo.requests["req-1"] = &leave.LeaveRequest{
		ID:        "req-1",
		UserID:    "emp-a",
		StartDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		Status:    leave.StatusPending,
	}

	resp, err := svc.Review(context.Background(), "leader-a", "req-1", &leave.ReviewLeaveRequest{
		Status: string(leave.StatusApproved),
	})
	require.NoError(t, err)

	assert.Equal(t, string(leave.StatusApproved), resp.Status)
	require.NotNil(t, resp.ReviewedBy)
	assert.Equal(t, "leader-a", *resp.ReviewedBy)
	assert.Equal(t, leave.StatusApproved, repo.requests["req-1"].Status)
}

func TestReview_LeaderCannotReviewOtherTeam(t *testing.T) {
	svc, repo, _ := setupLeaveService(t)
	repo.requests["req-1"] = &leave.LeaveRequest{
		ID:     "req-1",
		UserID: "emp-b",
		Status: leave.StatusPending,
	}

	_, err := svc.Review(context.Background(), "leader-a", "req-1", &leave.ReviewLeaveRequest{
		Status: string(leave.StatusRejected),
	})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	assert.Equal(t, leave.StatusPending, repo.requests["req-1"].Status)
}

func TestReview_AdminReviewsAnyTeam(t *testing.T) {
	svc, repo, _ := setupLeaveService(t)
	repo.requests["req-1"] = &leave.LeaveRequest{
		ID:     "req-1",
		UserID: "emp-b",
		Status: leave.StatusPending,
	}

	_, err := svc.Review(context.Background(), "admin", "req-1", &leave.ReviewLeaveRequest{
		Status: string(leave.StatusRejected),
	})
	assert.NoError(t, err)
}

func TestReview_AlreadyReviewed(t *testing.T) {
	svc, repo, _ := setupLeaveService(t)
	repo.requests["req-1"] = &leave.LeaveRequest{
		ID:     "req-1",
		UserID: "emp-a",
		Status: leave.StatusApproved,
	}

	_, err := svc.Review(context.Background(), "admin", "req-1", &leave.ReviewLeaveRequest{
		Status: string(leave.StatusRejected),
	})
	assert.ErrorIs(t, err, leave.ErrAlreadyReviewed)
}

func TestReview_NotFound(t *testing.T) {
	svc, _, _ := setupLeaveService(t)

	_, err := svc.Review(context.Background(), "admin", "missing", &leave.ReviewLeaveRequest{
		Status: string(leave.StatusApproved),
	})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestPendingRequests_TeamScopedReviewer(t *testing.T) {
	svc, repo, _ := setupLeaveService(t)
	repo.requests["req-a"] = &leave.LeaveRequest{ID: "req-a", UserID: "emp-a", Status: leave.StatusPending}
	repo.requests["req-b"] = &leave.LeaveRequest{ID: "req-b", UserID: "emp-b", Status: leave.StatusPending}

	got, err := svc.PendingRequests(context.Background(), "leader-a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "emp-a", got[0].UserID)
}

func TestPendingRequests_AdminSeesAll(t *testing.T) {
	svc, repo, _ := setupLeaveService(t)
	repo.requests["req-a"] = &leave.LeaveRequest{ID: "req-a", UserID: "emp-a", Status: leave.StatusPending}
	repo.requests["req-b"] = &leave.LeaveRequest{ID: "req-b", UserID: "emp-b", Status: leave.StatusPending}
	repo.requests["req-c"] = &leave.LeaveRequest{ID: "req-c", UserID: "emp-a", Status: leave.StatusApproved}

	got, err := svc.PendingRequests(context.Background(), "admin")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPendingRequests_EmployeeDenied(t *testing.T) {
	svc, _, _ := setupLeaveService(t)

	_, err := svc.PendingRequests(context.Background(), "emp-a")
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}
