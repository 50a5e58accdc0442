package settings

import "context"

// SettingsService defines business logic for attendance settings
type SettingsService interface {
	// GetEffective resolves the settings that apply to a team (or the
	// global scope when teamID is nil)
	GetEffective(ctx context.Context, teamID *string) (SettingsResponse, error)

	// List retrieves the global row plus every team row
	List(ctx context.Context) ([]SettingsResponse, error)

	// Upsert creates or replaces the row for a scope
	Upsert(ctx context.Context, req UpsertSettingsRequest) (SettingsResponse, error)

	// DeleteTeamOverride removes a team row
	DeleteTeamOverride(ctx context.Context, teamID string) error
}
