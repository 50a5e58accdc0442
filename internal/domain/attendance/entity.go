package attendance

import (
	"time"
)

// EventKind is the direction of a raw attendance event.
type EventKind string

const (
	KindCheckIn  EventKind = "check_in"
	KindCheckOut EventKind = "check_out"
)

// IsValid checks if the kind is a member of the closed kind set
func (k EventKind) IsValid() bool {
	return k == KindCheckIn || k == KindCheckOut
}

// Event is a raw attendance fact, immutable once created. Events for a
// user are totally ordered by Timestamp; the store enforces uniqueness
// on (user_id, timestamp).
type Event struct {
	ID        string
	UserID    string
	Timestamp time.Time
	Kind      EventKind
	Location  *string
	Notes     *string
	CreatedAt time.Time
}

// Session is one continuous work interval: a check-in paired with the
// next check-out, or open when no check-out has arrived yet. Derived,
// never persisted as such.
type Session struct {
	UserID        string
	CheckIn       Event
	CheckOut      *Event
	DurationHours float64
}

// Open checks if the session has no check-out yet
func (s *Session) Open() bool {
	return s.CheckOut == nil
}

// Date returns the calendar date the session belongs to (date of check-in, UTC).
func (s *Session) Date() time.Time {
	return s.CheckIn.Timestamp.UTC().Truncate(24 * time.Hour)
}

// DayStatus classifies one user-day.
type DayStatus string

const (
	StatusPresent DayStatus = "present"
	StatusAbsent  DayStatus = "absent"
	StatusLate    DayStatus = "late"
	StatusLeave   DayStatus = "leave"
	StatusPending DayStatus = "pending"
)

// DailyRecord aggregates all sessions whose check-in falls on one
// calendar date for one user.
type DailyRecord struct {
	UserID       string
	Date         time.Time
	FirstCheckIn *time.Time
	LastCheckOut *time.Time
	TotalHours   float64
	SessionCount int
	Status       DayStatus
}

// DiagnosticCode identifies a data-quality anomaly found during
// aggregation. Anomalies never abort the computation; they ride along
// with the best-effort result.
type DiagnosticCode string

const (
	DiagUnknownKind      DiagnosticCode = "unknown_kind"
	DiagMissingTimestamp DiagnosticCode = "missing_timestamp"
	DiagDoubleCheckIn    DiagnosticCode = "double_check_in"
	DiagOrphanCheckOut   DiagnosticCode = "orphan_check_out"
	DiagNegativeDuration DiagnosticCode = "negative_duration"
)

// Diagnostic reports one skipped or suspect event.
type Diagnostic struct {
	Code    DiagnosticCode
	EventID string
	UserID  string
	Message string
}

// Summary holds period-level attendance statistics.
type Summary struct {
	TotalDays          int
	PresentDays        int
	AbsentDays         int
	LeaveDays          int
	TotalHours         float64
	AverageHoursPerDay float64
}

// LeaveDay keys an approved leave date for a user. Dates are truncated
// to midnight UTC.
type LeaveDay struct {
	UserID string
	Date   time.Time
}
