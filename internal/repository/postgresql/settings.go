package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/teamops/teamops-backend-go/internal/domain/settings"
	"github.com/teamops/teamops-backend-go/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

const settingsColumns = `id, team_id, auto_checkout_enabled, auto_checkout_hour, auto_checkout_minute,
	   max_hours_per_day, require_location_checkin, office_latitude, office_longitude,
	   check_in_radius_meters, created_at, updated_at`

func scanSettings(row interface{ Scan(dest ...any) error }) (settings.AttendanceSettings, error) {
	var s settings.AttendanceSettings
	err := row.Scan(
		&s.ID,
		&s.TeamID,
		&s.AutoCheckoutEnabled,
		&s.AutoCheckoutTime.Hour,
		&s.AutoCheckoutTime.Minute,
		&s.MaxHoursPerDay,
		&s.RequireLocationCheckin,
		&s.OfficeLatitude,
		&s.OfficeLongitude,
		&s.CheckInRadiusMeters,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// GetGlobal implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) GetGlobal(ctx context.Context) (*settings.AttendanceSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + settingsColumns + ` FROM attendance_settings WHERE team_id IS NULL`

	s, err := scanSettings(q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// GetByTeam implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) GetByTeam(ctx context.Context, teamID string) (*settings.AttendanceSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + settingsColumns + ` FROM attendance_settings WHERE team_id = $1`

	s, err := scanSettings(q.QueryRow(ctx, query, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// GetAllByTeam implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) GetAllByTeam(ctx context.Context) (map[string]settings.AttendanceSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + settingsColumns + ` FROM attendance_settings WHERE team_id IS NOT NULL`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byTeam := make(map[string]settings.AttendanceSettings)
	for rows.Next() {
		s, err := scanSettings(rows)
		if err != nil {
			return nil, err
		}
		byTeam[*s.TeamID] = s
	}
	return byTeam, rows.Err()
}

// Upsert implements settings.SettingsRepository. One row per scope: the
// partial unique indexes on team_id (and on the global row) make the
// insert race-safe.
func (r *settingsRepositoryImpl) Upsert(ctx context.Context, s settings.AttendanceSettings) (settings.AttendanceSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_settings (
			id, team_id, auto_checkout_enabled, auto_checkout_hour, auto_checkout_minute,
			max_hours_per_day, require_location_checkin, office_latitude, office_longitude,
			check_in_radius_meters
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (COALESCE(team_id, '00000000-0000-0000-0000-000000000000'::uuid)) DO UPDATE SET
			auto_checkout_enabled = EXCLUDED.auto_checkout_enabled,
			auto_checkout_hour = EXCLUDED.auto_checkout_hour,
			auto_checkout_minute = EXCLUDED.auto_checkout_minute,
			max_hours_per_day = EXCLUDED.max_hours_per_day,
			require_location_checkin = EXCLUDED.require_location_checkin,
			office_latitude = EXCLUDED.office_latitude,
			office_longitude = EXCLUDED.office_longitude,
			check_in_radius_meters = EXCLUDED.check_in_radius_meters,
			updated_at = NOW()
		RETURNING ` + settingsColumns + `
	`

	return scanSettings(q.QueryRow(ctx, query,
		s.ID,
		s.TeamID,
		s.AutoCheckoutEnabled,
		s.AutoCheckoutTime.Hour,
		s.AutoCheckoutTime.Minute,
		s.MaxHoursPerDay,
		s.RequireLocationCheckin,
		s.OfficeLatitude,
		s.OfficeLongitude,
		s.CheckInRadiusMeters,
	))
}

// DeleteByTeam implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) DeleteByTeam(ctx context.Context, teamID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_settings WHERE team_id = $1`, teamID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return settings.ErrSettingsNotFound
	}
	return nil
}
