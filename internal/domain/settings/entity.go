package settings

import "time"

// TimeOfDay is a wall-clock time with no date component, stored as
// "15:04" strings in the API.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// At anchors the time-of-day on the given date in UTC.
func (t TimeOfDay) At(date time.Time) time.Time {
	d := date.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, time.UTC)
}

func (t TimeOfDay) String() string {
	return time.Date(0, 1, 1, t.Hour, t.Minute, 0, 0, time.UTC).Format("15:04")
}

// AttendanceSettings is the attendance policy record. At most one global
// row exists, plus optionally one per team. A team row overrides the
// global row as a whole record, never field by field.
type AttendanceSettings struct {
	ID                     string
	TeamID                 *string // nil for the global row
	AutoCheckoutEnabled    bool
	AutoCheckoutTime       TimeOfDay
	MaxHoursPerDay         float64
	RequireLocationCheckin bool
	OfficeLatitude         *float64
	OfficeLongitude        *float64
	CheckInRadiusMeters    *float64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// HasGeofence checks if all three geofence fields are set
func (s *AttendanceSettings) HasGeofence() bool {
	return s.OfficeLatitude != nil && s.OfficeLongitude != nil && s.CheckInRadiusMeters != nil
}

// Default returns the fallback policy used when neither a team row nor a
// global row exists: auto-checkout off, no geofence.
func Default() AttendanceSettings {
	return AttendanceSettings{
		AutoCheckoutEnabled:    false,
		AutoCheckoutTime:       TimeOfDay{Hour: 23, Minute: 59},
		MaxHoursPerDay:         12,
		RequireLocationCheckin: false,
	}
}

// Resolve picks the settings row for a team: the team row when present,
// otherwise the global row, otherwise the hard-coded default. Whole-record
// override only; fields of global and team rows are never merged, so a
// partial overlay can never produce an ambiguous policy.
func Resolve(teamID *string, global *AttendanceSettings, byTeam map[string]AttendanceSettings) AttendanceSettings {
	if teamID != nil {
		if s, ok := byTeam[*teamID]; ok {
			return s
		}
	}
	if global != nil {
		return *global
	}
	return Default()
}
