package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/teamops/teamops-backend-go/internal/domain/leave"
	"github.com/teamops/teamops-backend-go/internal/domain/user"
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
	user.UserRepository
	now func() time.Time
}

func NewLeaveService(leaveRepository leave.LeaveRepository, userRepository user.UserRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRepository: leaveRepository,
		UserRepository:  userRepository,
		now:             time.Now,
	}
}

// RequestLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) RequestLeave(ctx context.Context, userID string, req *leave.CreateLeaveRequest) (*leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	if end.Before(start) {
		return nil, leave.ErrInvalidDateRange
	}

	overlap, err := s.LeaveRepository.HasOverlap(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if overlap {
		return nil, leave.ErrOverlappingRequest
	}

	request := leave.LeaveRequest{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
		Status:    leave.StatusPending,
	}
	if err := s.LeaveRepository.Create(ctx, &request); err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}

	resp := leave.ToLeaveRequestResponse(&request)
	return &resp, nil
}

// MyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) MyRequests(ctx context.Context, userID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRepository.GetByUser(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, leave.ToLeaveRequestResponse(&requests[i]))
	}
	return responses, nil
}

// PendingRequests implements leave.LeaveService. Team-scoped reviewers
// see their own team's queue; all-scoped reviewers see everything.
func (s *LeaveServiceImpl) PendingRequests(ctx context.Context, reviewerID string) ([]leave.LeaveRequestResponse, error) {
	reviewer, err := s.UserRepository.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviewer: %w", err)
	}

	var requests []leave.LeaveRequest
	switch {
	case user.HasPermission(reviewer.Role, user.PermissionLeaveManageAll):
		requests, err = s.LeaveRepository.GetByUsers(ctx, nil, []leave.RequestStatus{leave.StatusPending})
	case user.HasPermission(reviewer.Role, user.PermissionLeaveViewTeam) && reviewer.TeamID != nil:
		var memberIDs []string
		memberIDs, err = s.UserRepository.GetTeamMemberIDs(ctx, *reviewer.TeamID)
		if err != nil {
			return nil, fmt.Errorf("failed to get team members: %w", err)
		}
		requests, err = s.LeaveRepository.GetByUsers(ctx, memberIDs, []leave.RequestStatus{leave.StatusPending})
	default:
		return nil, user.ErrInsufficientPermissions
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, leave.ToLeaveRequestResponse(&requests[i]))
	}
	return responses, nil
}

// Review implements leave.LeaveService.
func (s *LeaveServiceImpl) Review(ctx context.Context, reviewerID, requestID string, req *leave.ReviewLeaveRequest) (*leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	request, err := s.LeaveRepository.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrLeaveRequestNotFound
		}
		return nil, fmt.Errorf("failed to get leave request: %w", err)
	}

	if request.Status != leave.StatusPending {
		return nil, leave.ErrAlreadyReviewed
	}

	reviewer, err := s.UserRepository.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviewer: %w", err)
	}
	requester, err := s.UserRepository.GetByID(ctx, request.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requester: %w", err)
	}
	if !s.mayReview(&reviewer, &requester) {
		return nil, user.ErrInsufficientPermissions
	}

	reviewedAt := s.now().UTC()
	status := leave.RequestStatus(req.Status)
	if err := s.LeaveRepository.UpdateStatus(ctx, requestID, status, reviewerID, reviewedAt); err != nil {
		return nil, fmt.Errorf("failed to update leave request: %w", err)
	}

	request.Status = status
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &reviewedAt
	resp := leave.ToLeaveRequestResponse(request)
	return &resp, nil
}

func (s *LeaveServiceImpl) mayReview(reviewer, requester *user.User) bool {
	if user.HasPermission(reviewer.Role, user.PermissionLeaveManageAll) {
		return true
	}
	if !user.HasPermission(reviewer.Role, user.PermissionLeaveViewTeam) {
		return false
	}
	if reviewer.TeamID == nil || requester.TeamID == nil || *reviewer.TeamID != *requester.TeamID {
		return false
	}
	return user.CanManage(reviewer.Role, requester.Role)
}
