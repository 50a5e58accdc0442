package attendance

import (
	"time"

	"github.com/teamops/teamops-backend-go/internal/pkg/validator"
)

// CheckInRequest records a check-in event for the authenticated user
type CheckInRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Location  *string  `json:"location,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude out of range",
		})
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CheckOutRequest records a check-out event for the authenticated user
type CheckOutRequest struct {
	Location *string `json:"location,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// ReportFilter selects the user and period for a report
type ReportFilter struct {
	UserID string
	TeamID *string
	From   string
	To     string
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(f.From); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be a date in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(f.To); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be a date in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the parsed [from, to] date pair. Call Validate first.
func (f *ReportFilter) Period() (time.Time, time.Time) {
	from, _ := time.Parse("2006-01-02", f.From)
	to, _ := time.Parse("2006-01-02", f.To)
	return from, to
}

// EventResponse represents one raw event in API responses
type EventResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Timestamp string  `json:"timestamp"`
	Kind      string  `json:"kind"`
	Location  *string `json:"location,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// SessionResponse represents one derived session
type SessionResponse struct {
	UserID        string  `json:"user_id"`
	CheckIn       string  `json:"check_in"`
	CheckOut      *string `json:"check_out,omitempty"`
	DurationHours float64 `json:"duration_hours"`
	Open          bool    `json:"open"`
}

// DailyRecordResponse represents one aggregated user-day
type DailyRecordResponse struct {
	UserID       string  `json:"user_id"`
	Date         string  `json:"date"`
	FirstCheckIn *string `json:"first_check_in,omitempty"`
	LastCheckOut *string `json:"last_check_out,omitempty"`
	TotalHours   float64 `json:"total_hours"`
	SessionCount int     `json:"session_count"`
	Status       string  `json:"status"`
}

// DiagnosticResponse reports one skipped or suspect event so an operator
// can correct it manually
type DiagnosticResponse struct {
	Code    string `json:"code"`
	EventID string `json:"event_id,omitempty"`
	UserID  string `json:"user_id,omitempty"`
	Message string `json:"message"`
}

// SummaryResponse holds period statistics
type SummaryResponse struct {
	TotalDays          int     `json:"total_days"`
	PresentDays        int     `json:"present_days"`
	AbsentDays         int     `json:"absent_days"`
	LeaveDays          int     `json:"leave_days"`
	TotalHours         float64 `json:"total_hours"`
	AverageHoursPerDay float64 `json:"average_hours_per_day"`
}

// ReportResponse is the full attendance report for one user and period
type ReportResponse struct {
	UserID      string                `json:"user_id"`
	From        string                `json:"from"`
	To          string                `json:"to"`
	Records     []DailyRecordResponse `json:"records"`
	Summary     SummaryResponse       `json:"summary"`
	Diagnostics []DiagnosticResponse  `json:"diagnostics,omitempty"`
}

// TeamReportResponse is one report per team member
type TeamReportResponse struct {
	From    string           `json:"from"`
	To      string           `json:"to"`
	Reports []ReportResponse `json:"reports"`
}
