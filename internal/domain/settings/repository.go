package settings

import "context"

// SettingsRepository defines data access for attendance settings rows.
// The store keeps at most one active row per scope (one global, one per
// team).
type SettingsRepository interface {
	// GetGlobal retrieves the global row, nil when absent
	GetGlobal(ctx context.Context) (*AttendanceSettings, error)

	// GetByTeam retrieves the row for one team, nil when absent
	GetByTeam(ctx context.Context, teamID string) (*AttendanceSettings, error)

	// GetAllByTeam retrieves every team-scoped row keyed by team id
	GetAllByTeam(ctx context.Context) (map[string]AttendanceSettings, error)

	// Upsert creates or replaces the row for its scope
	Upsert(ctx context.Context, s AttendanceSettings) (AttendanceSettings, error)

	// DeleteByTeam removes a team row so the team falls back to global
	DeleteByTeam(ctx context.Context, teamID string) error
}
