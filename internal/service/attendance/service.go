package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/teamops/teamops-backend-go/internal/domain/attendance"
	"github.com/teamops/teamops-backend-go/internal/domain/leave"
	"github.com/teamops/teamops-backend-go/internal/domain/settings"
	"github.com/teamops/teamops-backend-go/internal/domain/user"
	"github.com/teamops/teamops-backend-go/internal/pkg/utils"
)

type AttendanceServiceImpl struct {
	attendance.EventRepository
	settings.SettingsRepository
	leave.LeaveRepository
	user.UserRepository
	aggregator *Aggregator
	now        func() time.Time
}

func NewAttendanceService(eventRepository attendance.EventRepository, settingsRepository settings.SettingsRepository, leaveRepository leave.LeaveRepository, userRepository user.UserRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		EventRepository:    eventRepository,
		SettingsRepository: settingsRepository,
		LeaveRepository:    leaveRepository,
		UserRepository:     userRepository,
		aggregator:         NewAggregator(),
		now:                time.Now,
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, caller user.Principal, req attendance.CheckInRequest) (attendance.EventResponse, error) {
	policy, err := a.resolvePolicy(ctx, caller.TeamID)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	if policy.RequireLocationCheckin {
		if req.Latitude == nil || req.Longitude == nil {
			return attendance.EventResponse{}, attendance.ErrLocationRequired
		}
		if policy.HasGeofence() {
			distance := utils.CalculateHaversineDistance(*req.Latitude, *req.Longitude, *policy.OfficeLatitude, *policy.OfficeLongitude)
			if distance > *policy.CheckInRadiusMeters {
				return attendance.EventResponse{}, attendance.ErrOutsideAllowedRadius
			}
		}
	}

	last, err := a.EventRepository.GetLastEvent(ctx, caller.UserID)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to get last event: %w", err)
	}
	if last != nil && last.Kind == attendance.KindCheckIn {
		return attendance.EventResponse{}, attendance.ErrAlreadyCheckedIn
	}

	event := attendance.Event{
		ID:        uuid.NewString(),
		UserID:    caller.UserID,
		Timestamp: a.now().UTC(),
		Kind:      attendance.KindCheckIn,
		Location:  req.Location,
		Notes:     req.Notes,
	}

	created, err := a.EventRepository.Create(ctx, event)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to create check-in event: %w", err)
	}

	return toEventResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, caller user.Principal, req attendance.CheckOutRequest) (attendance.EventResponse, error) {
	last, err := a.EventRepository.GetLastEvent(ctx, caller.UserID)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to get last event: %w", err)
	}
	if last == nil || last.Kind != attendance.KindCheckIn {
		return attendance.EventResponse{}, attendance.ErrNotCheckedIn
	}

	event := attendance.Event{
		ID:        uuid.NewString(),
		UserID:    caller.UserID,
		Timestamp: a.now().UTC(),
		Kind:      attendance.KindCheckOut,
		Location:  req.Location,
		Notes:     req.Notes,
	}

	created, err := a.EventRepository.Create(ctx, event)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to create check-out event: %w", err)
	}

	return toEventResponse(created), nil
}

// MyReport implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MyReport(ctx context.Context, caller user.Principal, filter attendance.ReportFilter) (attendance.ReportResponse, error) {
	filter.UserID = caller.UserID
	return a.buildReport(ctx, filter)
}

// UserReport implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UserReport(ctx context.Context, caller user.Principal, filter attendance.ReportFilter) (attendance.ReportResponse, error) {
	if err := a.authorizeReportAccess(ctx, caller, filter.UserID); err != nil {
		return attendance.ReportResponse{}, err
	}
	return a.buildReport(ctx, filter)
}

// TeamReport implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) TeamReport(ctx context.Context, caller user.Principal, filter attendance.ReportFilter) (attendance.TeamReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.TeamReportResponse{}, err
	}
	if filter.TeamID == nil {
		return attendance.TeamReportResponse{}, attendance.ErrInvalidDateRange
	}

	scope := user.ScopeAll
	if caller.SameTeam(filter.TeamID) {
		scope = user.ScopeTeam
	}
	if !user.CanAccess(caller.Role, "attendance.view", scope) {
		return attendance.TeamReportResponse{}, attendance.ErrUnauthorized
	}

	memberIDs, err := a.UserRepository.GetTeamMemberIDs(ctx, *filter.TeamID)
	if err != nil {
		return attendance.TeamReportResponse{}, fmt.Errorf("failed to get team members: %w", err)
	}

	from, to := filter.Period()
	if to.Before(from) {
		return attendance.TeamReportResponse{}, attendance.ErrInvalidDateRange
	}

	events, err := a.EventRepository.GetByUsers(ctx, memberIDs, from, to.AddDate(0, 0, 1))
	if err != nil {
		return attendance.TeamReportResponse{}, fmt.Errorf("failed to get events: %w", err)
	}

	approved, err := a.LeaveRepository.GetApprovedDays(ctx, memberIDs, from, to)
	if err != nil {
		return attendance.TeamReportResponse{}, fmt.Errorf("failed to get approved leave days: %w", err)
	}

	policy, err := a.resolvePolicy(ctx, filter.TeamID)
	if err != nil {
		return attendance.TeamReportResponse{}, err
	}

	asOf := a.now().UTC()
	sessions, diags := a.aggregator.BuildSessions(events)
	sessions = a.aggregator.ApplyAutoCheckout(sessions, policy, asOf)
	records := a.aggregator.AggregateDaily(sessions, toLeaveDays(approved))

	byUser := make(map[string][]attendance.DailyRecord)
	for _, r := range records {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}
	diagsByUser := make(map[string][]attendance.Diagnostic)
	for _, d := range diags {
		diagsByUser[d.UserID] = append(diagsByUser[d.UserID], d)
	}

	resp := attendance.TeamReportResponse{
		From:    filter.From,
		To:      filter.To,
		Reports: make([]attendance.ReportResponse, 0, len(memberIDs)),
	}
	for _, memberID := range memberIDs {
		memberRecords := a.aggregator.FillAbsences(byUser[memberID], memberID, from, to, asOf)
		summary := a.aggregator.SummaryStats(memberRecords, from, to)
		resp.Reports = append(resp.Reports, toReportResponse(memberID, filter, memberRecords, summary, diagsByUser[memberID]))
	}

	return resp, nil
}

// buildReport runs the full aggregation pipeline for one user.
func (a *AttendanceServiceImpl) buildReport(ctx context.Context, filter attendance.ReportFilter) (attendance.ReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ReportResponse{}, err
	}
	from, to := filter.Period()
	if to.Before(from) {
		return attendance.ReportResponse{}, attendance.ErrInvalidDateRange
	}

	userData, err := a.UserRepository.GetByID(ctx, filter.UserID)
	if err != nil {
		return attendance.ReportResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	events, err := a.EventRepository.GetByUser(ctx, filter.UserID, from, to.AddDate(0, 0, 1))
	if err != nil {
		return attendance.ReportResponse{}, fmt.Errorf("failed to get events: %w", err)
	}

	approved, err := a.LeaveRepository.GetApprovedDays(ctx, []string{filter.UserID}, from, to)
	if err != nil {
		return attendance.ReportResponse{}, fmt.Errorf("failed to get approved leave days: %w", err)
	}

	policy, err := a.resolvePolicy(ctx, userData.TeamID)
	if err != nil {
		return attendance.ReportResponse{}, err
	}

	asOf := a.now().UTC()
	sessions, diags := a.aggregator.BuildSessions(events)
	sessions = a.aggregator.ApplyAutoCheckout(sessions, policy, asOf)
	records := a.aggregator.AggregateDaily(sessions, toLeaveDays(approved))
	records = a.aggregator.FillAbsences(records, filter.UserID, from, to, asOf)
	summary := a.aggregator.SummaryStats(records, from, to)

	return toReportResponse(filter.UserID, filter, records, summary, diags), nil
}

// authorizeReportAccess decides whether the caller may read the target
// user's report: self always, otherwise by permission scope relative to
// the target's team.
func (a *AttendanceServiceImpl) authorizeReportAccess(ctx context.Context, caller user.Principal, targetUserID string) error {
	if caller.UserID == targetUserID {
		return nil
	}

	if user.CanAccess(caller.Role, "attendance.view", user.ScopeAll) {
		return nil
	}

	target, err := a.UserRepository.GetByID(ctx, targetUserID)
	if err != nil {
		return fmt.Errorf("failed to get target user: %w", err)
	}
	if !caller.SameTeam(target.TeamID) {
		return attendance.ErrUnauthorized
	}
	if !user.CanAccess(caller.Role, "attendance.view", user.ScopeTeam) {
		return attendance.ErrUnauthorized
	}
	return nil
}

func (a *AttendanceServiceImpl) resolvePolicy(ctx context.Context, teamID *string) (settings.AttendanceSettings, error) {
	global, err := a.SettingsRepository.GetGlobal(ctx)
	if err != nil {
		return settings.AttendanceSettings{}, fmt.Errorf("failed to get global settings: %w", err)
	}
	byTeam, err := a.SettingsRepository.GetAllByTeam(ctx)
	if err != nil {
		return settings.AttendanceSettings{}, fmt.Errorf("failed to get team settings: %w", err)
	}
	return settings.Resolve(teamID, global, byTeam), nil
}

func toLeaveDays(approved []leave.ApprovedDay) []attendance.LeaveDay {
	days := make([]attendance.LeaveDay, 0, len(approved))
	for _, d := range approved {
		days = append(days, attendance.LeaveDay{UserID: d.UserID, Date: d.Date})
	}
	return days
}

func toEventResponse(ev attendance.Event) attendance.EventResponse {
	return attendance.EventResponse{
		ID:        ev.ID,
		UserID:    ev.UserID,
		Timestamp: ev.Timestamp.Format(time.RFC3339),
		Kind:      string(ev.Kind),
		Location:  ev.Location,
		Notes:     ev.Notes,
	}
}

func toReportResponse(userID string, filter attendance.ReportFilter, records []attendance.DailyRecord, summary attendance.Summary, diags []attendance.Diagnostic) attendance.ReportResponse {
	resp := attendance.ReportResponse{
		UserID:  userID,
		From:    filter.From,
		To:      filter.To,
		Records: make([]attendance.DailyRecordResponse, 0, len(records)),
		Summary: attendance.SummaryResponse{
			TotalDays:          summary.TotalDays,
			PresentDays:        summary.PresentDays,
			AbsentDays:         summary.AbsentDays,
			LeaveDays:          summary.LeaveDays,
			TotalHours:         summary.TotalHours,
			AverageHoursPerDay: summary.AverageHoursPerDay,
		},
	}

	for _, r := range records {
		rec := attendance.DailyRecordResponse{
			UserID:       r.UserID,
			Date:         r.Date.Format("2006-01-02"),
			TotalHours:   r.TotalHours,
			SessionCount: r.SessionCount,
			Status:       string(r.Status),
		}
		if r.FirstCheckIn != nil {
			s := r.FirstCheckIn.Format(time.RFC3339)
			rec.FirstCheckIn = &s
		}
		if r.LastCheckOut != nil {
			s := r.LastCheckOut.Format(time.RFC3339)
			rec.LastCheckOut = &s
		}
		resp.Records = append(resp.Records, rec)
	}

	for _, d := range diags {
		resp.Diagnostics = append(resp.Diagnostics, attendance.DiagnosticResponse{
			Code:    string(d.Code),
			EventID: d.EventID,
			UserID:  d.UserID,
			Message: d.Message,
		})
	}

	return resp
}
