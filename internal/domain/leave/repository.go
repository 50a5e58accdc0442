package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, req *LeaveRequest) error
	GetByID(ctx context.Context, id string) (*LeaveRequest, error)
	GetByUser(ctx context.Context, userID string, statuses []RequestStatus) ([]LeaveRequest, error)
	GetByUsers(ctx context.Context, userIDs []string, statuses []RequestStatus) ([]LeaveRequest, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus, reviewedBy string, reviewedAt time.Time) error
	HasOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error)

	// GetApprovedDays expands approved requests that intersect [from, to]
	// into individual (user, date) pairs.
	GetApprovedDays(ctx context.Context, userIDs []string, from, to time.Time) ([]ApprovedDay, error)
}
