package settings

import "errors"

var (
	ErrSettingsNotFound     = errors.New("attendance settings not found")
	ErrSettingsExist        = errors.New("settings already exist for this scope")
	ErrIncompleteGeofence   = errors.New("geofence requires latitude, longitude and radius together")
	ErrInvalidMaxHours      = errors.New("max hours per day must be between 1 and 24")
	ErrInvalidCheckoutTime  = errors.New("auto checkout time must be a valid HH:MM time")
	ErrGeofenceWithoutReqmt = errors.New("geofence fields require location check-in to be enabled")
)
