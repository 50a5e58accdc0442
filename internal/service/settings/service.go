package settings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/teamops/teamops-backend-go/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settings.SettingsRepository
}

func NewSettingsService(settingsRepository settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{
		SettingsRepository: settingsRepository,
	}
}

// GetEffective implements settings.SettingsService.
func (s *SettingsServiceImpl) GetEffective(ctx context.Context, teamID *string) (settings.SettingsResponse, error) {
	global, err := s.SettingsRepository.GetGlobal(ctx)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to get global settings: %w", err)
	}

	byTeam := map[string]settings.AttendanceSettings{}
	if teamID != nil {
		row, err := s.SettingsRepository.GetByTeam(ctx, *teamID)
		if err != nil {
			return settings.SettingsResponse{}, fmt.Errorf("failed to get team settings: %w", err)
		}
		if row != nil {
			byTeam[*teamID] = *row
		}
	}

	resolved := settings.Resolve(teamID, global, byTeam)
	return toSettingsResponse(resolved), nil
}

// List implements settings.SettingsService.
func (s *SettingsServiceImpl) List(ctx context.Context) ([]settings.SettingsResponse, error) {
	var rows []settings.SettingsResponse

	global, err := s.SettingsRepository.GetGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get global settings: %w", err)
	}
	if global != nil {
		rows = append(rows, toSettingsResponse(*global))
	}

	byTeam, err := s.SettingsRepository.GetAllByTeam(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get team settings: %w", err)
	}
	for _, row := range byTeam {
		rows = append(rows, toSettingsResponse(row))
	}

	return rows, nil
}

// Upsert implements settings.SettingsService.
func (s *SettingsServiceImpl) Upsert(ctx context.Context, req settings.UpsertSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	checkoutTime, err := settings.ParseTimeOfDay(req.AutoCheckoutTime)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	row := settings.AttendanceSettings{
		ID:                     uuid.NewString(),
		TeamID:                 req.TeamID,
		AutoCheckoutEnabled:    req.AutoCheckoutEnabled,
		AutoCheckoutTime:       checkoutTime,
		MaxHoursPerDay:         req.MaxHoursPerDay,
		RequireLocationCheckin: req.RequireLocationCheckin,
		OfficeLatitude:         req.OfficeLatitude,
		OfficeLongitude:        req.OfficeLongitude,
		CheckInRadiusMeters:    req.CheckInRadiusMeters,
	}

	saved, err := s.SettingsRepository.Upsert(ctx, row)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to upsert settings: %w", err)
	}

	return toSettingsResponse(saved), nil
}

// DeleteTeamOverride implements settings.SettingsService.
func (s *SettingsServiceImpl) DeleteTeamOverride(ctx context.Context, teamID string) error {
	if err := s.SettingsRepository.DeleteByTeam(ctx, teamID); err != nil {
		return fmt.Errorf("failed to delete team settings: %w", err)
	}
	return nil
}

func toSettingsResponse(s settings.AttendanceSettings) settings.SettingsResponse {
	return settings.SettingsResponse{
		ID:                     s.ID,
		TeamID:                 s.TeamID,
		AutoCheckoutEnabled:    s.AutoCheckoutEnabled,
		AutoCheckoutTime:       s.AutoCheckoutTime.String(),
		MaxHoursPerDay:         s.MaxHoursPerDay,
		RequireLocationCheckin: s.RequireLocationCheckin,
		OfficeLatitude:         s.OfficeLatitude,
		OfficeLongitude:        s.OfficeLongitude,
		CheckInRadiusMeters:    s.CheckInRadiusMeters,
	}
}
