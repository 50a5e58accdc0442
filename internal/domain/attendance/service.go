package attendance

import (
	"context"

	"github.com/teamops/teamops-backend-go/internal/domain/user"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn appends a check-in event for the caller, enforcing the
	// geofence when settings require it
	CheckIn(ctx context.Context, caller user.Principal, req CheckInRequest) (EventResponse, error)

	// CheckOut appends a check-out event closing the open session
	CheckOut(ctx context.Context, caller user.Principal, req CheckOutRequest) (EventResponse, error)

	// MyReport builds the aggregated report for the caller
	MyReport(ctx context.Context, caller user.Principal, filter ReportFilter) (ReportResponse, error)

	// UserReport builds the report for any single user (scoped access)
	UserReport(ctx context.Context, caller user.Principal, filter ReportFilter) (ReportResponse, error)

	// TeamReport builds one report per member of a team (scoped access)
	TeamReport(ctx context.Context, caller user.Principal, filter ReportFilter) (TeamReportResponse, error)
}
