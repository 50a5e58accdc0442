package leave

import "time"

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// LeaveRequest is one user's request to be on leave for a date range
// (inclusive on both ends). Approved requests are what flags attendance
// days as leave.
type LeaveRequest struct {
	ID         string
	UserID     string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     RequestStatus
	ReviewedBy *string
	ReviewedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	UserName *string
}

// ApprovedDay is one approved leave date for one user, the unit the
// attendance aggregation consumes.
type ApprovedDay struct {
	UserID string
	Date   time.Time
}

// Days expands the request's range into individual dates.
func (r *LeaveRequest) Days() []time.Time {
	var days []time.Time
	start := r.StartDate.UTC().Truncate(24 * time.Hour)
	end := r.EndDate.UTC().Truncate(24 * time.Hour)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
