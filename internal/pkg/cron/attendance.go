package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teamops/teamops-backend-go/internal/domain/attendance"
	"github.com/teamops/teamops-backend-go/internal/domain/settings"
	"github.com/teamops/teamops-backend-go/internal/domain/user"
	attendanceService "github.com/teamops/teamops-backend-go/internal/service/attendance"
)

// AttendanceJobs holds the nightly attendance maintenance jobs.
type AttendanceJobs struct {
	eventRepo    attendance.EventRepository
	settingsRepo settings.SettingsRepository
	userRepo     user.UserRepository
	aggregator   *attendanceService.Aggregator
}

func NewAttendanceJobs(
	eventRepo attendance.EventRepository,
	settingsRepo settings.SettingsRepository,
	userRepo user.UserRepository,
) *AttendanceJobs {
	return &AttendanceJobs{
		eventRepo:    eventRepo,
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		aggregator:   attendanceService.NewAggregator(),
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_checkout_stale_sessions", 1*time.Hour, j.AutoCheckoutStaleSessions)
}

// AutoCheckoutStaleSessions force-closes open sessions left over from
// previous days per the resolved attendance policy. The aggregator
// decides the synthesized checkout instant; this job persists it as a
// regular check-out event so the next aggregation sees a closed session.
func (j *AttendanceJobs) AutoCheckoutStaleSessions(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting auto-checkout stale sessions job")

	now := time.Now().UTC()

	openCheckIns, err := j.eventRepo.GetOpenCheckIns(ctx, now.Truncate(24*time.Hour))
	if err != nil {
		return fmt.Errorf("failed to get open check-ins: %w", err)
	}

	if len(openCheckIns) == 0 {
		slog.Info("Cron: No stale open sessions found")
		return nil
	}

	global, err := j.settingsRepo.GetGlobal(ctx)
	if err != nil {
		return fmt.Errorf("failed to get global settings: %w", err)
	}
	byTeam, err := j.settingsRepo.GetAllByTeam(ctx)
	if err != nil {
		return fmt.Errorf("failed to get team settings: %w", err)
	}

	closedCount := 0
	for _, checkIn := range openCheckIns {
		u, err := j.userRepo.GetByID(ctx, checkIn.UserID)
		if err != nil {
			slog.Error("Cron: Failed to load user for open session",
				"user_id", checkIn.UserID,
				"event_id", checkIn.ID,
				"error", err)
			continue
		}

		policy := settings.Resolve(u.TeamID, global, byTeam)
		open := []attendance.Session{{UserID: checkIn.UserID, CheckIn: checkIn}}

		closed := j.aggregator.ApplyAutoCheckout(open, policy, now)
		if closed[0].Open() {
			// Policy disabled for this user's team
			continue
		}

		checkOut := *closed[0].CheckOut
		checkOut.ID = uuid.NewString()
		if _, err := j.eventRepo.Create(ctx, checkOut); err != nil {
			slog.Error("Cron: Failed to persist auto-checkout event",
				"user_id", checkIn.UserID,
				"event_id", checkIn.ID,
				"error", err)
			continue
		}

		closedCount++
	}

	slog.Info("Cron: Auto-checkout finished", "count", closedCount, "open", len(openCheckIns))
	return nil
}
