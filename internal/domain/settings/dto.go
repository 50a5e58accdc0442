package settings

import (
	"strconv"
	"strings"

	"github.com/teamops/teamops-backend-go/internal/pkg/validator"
)

// SettingsResponse represents a settings row in API responses
type SettingsResponse struct {
	ID                     string   `json:"id"`
	TeamID                 *string  `json:"team_id,omitempty"`
	AutoCheckoutEnabled    bool     `json:"auto_checkout_enabled"`
	AutoCheckoutTime       string   `json:"auto_checkout_time"`
	MaxHoursPerDay         float64  `json:"max_hours_per_day"`
	RequireLocationCheckin bool     `json:"require_location_checkin"`
	OfficeLatitude         *float64 `json:"office_latitude,omitempty"`
	OfficeLongitude        *float64 `json:"office_longitude,omitempty"`
	CheckInRadiusMeters    *float64 `json:"check_in_radius_meters,omitempty"`
}

// UpsertSettingsRequest creates or replaces the settings row for a scope
type UpsertSettingsRequest struct {
	TeamID                 *string  `json:"team_id,omitempty"`
	AutoCheckoutEnabled    bool     `json:"auto_checkout_enabled"`
	AutoCheckoutTime       string   `json:"auto_checkout_time"`
	MaxHoursPerDay         float64  `json:"max_hours_per_day"`
	RequireLocationCheckin bool     `json:"require_location_checkin"`
	OfficeLatitude         *float64 `json:"office_latitude,omitempty"`
	OfficeLongitude        *float64 `json:"office_longitude,omitempty"`
	CheckInRadiusMeters    *float64 `json:"check_in_radius_meters,omitempty"`
}

func (r *UpsertSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParseTimeOfDay(r.AutoCheckoutTime); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "auto_checkout_time",
			Message: "must be a valid HH:MM time",
		})
	}
	if r.MaxHoursPerDay < 1 || r.MaxHoursPerDay > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_hours_per_day",
			Message: "must be between 1 and 24",
		})
	}
	if r.TeamID != nil && !validator.IsValidUUID(*r.TeamID) {
		errs = append(errs, validator.ValidationError{
			Field:   "team_id",
			Message: "invalid team id",
		})
	}

	geoFields := 0
	for _, f := range []*float64{r.OfficeLatitude, r.OfficeLongitude, r.CheckInRadiusMeters} {
		if f != nil {
			geoFields++
		}
	}
	if geoFields != 0 && geoFields != 3 {
		errs = append(errs, validator.ValidationError{
			Field:   "geofence",
			Message: "latitude, longitude and radius must be provided together",
		})
	}
	if r.RequireLocationCheckin && geoFields == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "geofence",
			Message: "location check-in requires a geofence",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParseTimeOfDay parses a "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, ErrInvalidCheckoutTime
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, ErrInvalidCheckoutTime
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrInvalidCheckoutTime
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}
