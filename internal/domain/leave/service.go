package leave

import "context"

type LeaveService interface {
	RequestLeave(ctx context.Context, userID string, req *CreateLeaveRequest) (*LeaveRequestResponse, error)
	MyRequests(ctx context.Context, userID string) ([]LeaveRequestResponse, error)
	PendingRequests(ctx context.Context, reviewerID string) ([]LeaveRequestResponse, error)
	Review(ctx context.Context, reviewerID, requestID string, req *ReviewLeaveRequest) (*LeaveRequestResponse, error)
}
