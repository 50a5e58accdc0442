package attendance

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamops/teamops-backend-go/internal/domain/attendance"
	"github.com/teamops/teamops-backend-go/internal/domain/leave"
	"github.com/teamops/teamops-backend-go/internal/domain/settings"
	"github.com/teamops/teamops-backend-go/internal/domain/user"
)

type fakeEventRepo struct {
	attendance.EventRepository
	events []attendance.Event
}

func (f *fakeEventRepo) Create(_ context.Context, ev attendance.Event) (attendance.Event, error) {
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeEventRepo) GetByUser(_ context.Context, userID string, from, to time.Time) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.UserID == userID && !ev.Timestamp.Before(from) && ev.Timestamp.Before(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) GetByUsers(_ context.Context, userIDs []string, from, to time.Time) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, ev := range f.events {
		for _, id := range userIDs {
			if ev.UserID == id && !ev.Timestamp.Before(from) && ev.Timestamp.Before(to) {
				out = append(out, ev)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeEventRepo) GetLastEvent(_ context.Context, userID string) (*attendance.Event, error) {
	var latest *attendance.Event
	for i := range f.events {
		ev := &f.events[i]
		if ev.UserID != userID {
			continue
		}
		if latest == nil || ev.Timestamp.After(latest.Timestamp) {
			latest = ev
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

type fakeSettingsRepo struct {
	settings.SettingsRepository
	global *settings.AttendanceSettings
	byTeam map[string]settings.AttendanceSettings
}

func (f *fakeSettingsRepo) GetGlobal(_ context.Context) (*settings.AttendanceSettings, error) {
	return f.global, nil
}

func (f *fakeSettingsRepo) GetAllByTeam(_ context.Context) (map[string]settings.AttendanceSettings, error) {
	return f.byTeam, nil
}

type fakeApprovedDaysRepo struct {
	leave.LeaveRepository
	days []leave.ApprovedDay
}

func (f *fakeApprovedDaysRepo) GetApprovedDays(_ context.Context, userIDs []string, from, to time.Time) ([]leave.ApprovedDay, error) {
	return f.days, nil
}

type fakeUserLookupRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (f *fakeUserLookupRepo) GetByID(_ context.Context, id string) (user.User, error) {
	return f.users[id], nil
}

func (f *fakeUserLookupRepo) GetTeamMemberIDs(_ context.Context, teamID string) ([]string, error) {
	var ids []string
	for id, u := range f.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func fptr(v float64) *float64 { return &v }
func sptr(s string) *string   { return &s }

func setupAttendanceService(t *testing.T) (*AttendanceServiceImpl, *fakeEventRepo, *fakeSettingsRepo) {
	t.Helper()
	teamA := sptr("team-a")
	eventRepo := &fakeEventRepo{}
	settingsRepo := &fakeSettingsRepo{byTeam: map[string]settings.AttendanceSettings{}}
	userRepo := &fakeUserLookupRepo{
		users: map[string]user.User{
			"emp-a": {ID: "emp-a", Role: user.RoleEmployee, TeamID: teamA},
			"emp-b": {ID: "emp-b", Role: user.RoleEmployee, TeamID: teamA},
		},
	}
	return &AttendanceServiceImpl{
		EventRepository:    eventRepo,
		SettingsRepository: settingsRepo,
		LeaveRepository:    &fakeApprovedDaysRepo{},
		UserRepository:     userRepo,
		aggregator:         NewAggregator(),
		now:                func() time.Time { return ts("2025-06-02 09:00:00") },
	}, eventRepo, settingsRepo
}

func TestCheckIn_AppendsEvent(t *testing.T) {
	svc, repo, _ := setupAttendanceService(t)
	caller := user.Principal{UserID: "emp-a", Role: user.RoleEmployee, TeamID: sptr("team-a")}

	resp, err := svc.CheckIn(context.Background(), caller, attendance.CheckInRequest{})
	require.NoError(t, err)

	assert.Equal(t, "emp-a", resp.UserID)
	assert.Equal(t, string(attendance.KindCheckIn), resp.Kind)
	require.Len(t, repo.events, 1)
	assert.Equal(t, ts("2025-06-02 09:00:00"), repo.events[0].Timestamp)
}

func TestCheckIn_DoubleCheckInRejected(t *testing.T) {
	svc, repo, _ := setupAttendanceService(t)
	caller := user.Principal{UserID: "emp-a", Role: user.RoleEmployee, TeamID: sptr("team-a")}
	repo.events = append(repo.events, attendance.Event{
		ID: "ev-1", UserID: "emp-a", Timestamp: ts("2025-06-02 08:00:00"), Kind: attendance.KindCheckIn,
	})

	_, err := svc.CheckIn(context.Background(), caller, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.Len(t, repo.events, 1)
}

func TestCheckIn_LocationRequiredByPolicy(t *testing.T) {
	svc, _, settingsRepo := setupAttendanceService(t)
	settingsRepo.global = &settings.AttendanceSettings{RequireLocationCheckin: true}
	caller := user.Principal{UserID: "emp-a", Role: user.RoleEmployee, TeamID: sptr("team-a")}

	_, err := svc.CheckIn(context.Background(), caller, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrLocationRequired)
}

func TestCheckIn_OutsideGeofenceRejected(t *testing.T) {
	svc, _, settingsRepo := setupAttendanceService(t)
	settingsRepo.global = &settings.AttendanceSettings{
		RequireLocationCheckin: true,
		OfficeLatitude:         fptr(52.5200),
		OfficeLongitude:        fptr(13.4050),
		CheckInRadiusMeters:    fptr(200),
	}
	caller := user.Principal{UserID: "emp-a", Role: user.RoleEmployee, TeamID: sptr("team-a")}

	// Roughly 5 km north of the office
	_, err := svc.CheckIn(context.Background(), caller, attendance.CheckInRequest{
		Latitude:  fptr(52.5650),
		Longitude: fptr(13.4050),
	})
	assert.ErrorIs(t, err, attendance.ErrOutsideAllowedRadius)
}

func TestCheckIn_InsideGeofenceAccepted(t *testing.T) {
	svc, repo, settingsRepo := setupAttendanceService(t)
	settingsRepo.global = &settings.AttendanceSettings{
		RequireLocationCheckin: true,
		OfficeLatitude:         fptr(52.5200),
		OfficeLongitude:        fptr(13.4050),
		CheckInRadiusMeters:    fptr(200),
	}
	caller := user.Principal{UserID: "emp-a", Role: user.RoleEmployee, TeamID: sptr("team-a")}

	_, err := svc.CheckIn(context.Background(), caller, attendance.CheckInRequest{
		Latitude:  fptr(52.5201),
		Longitude: fptr(13.4051),
	})
	assert.NoError(t, err)
	assert.Len(t, repo.events, 1)
}

func TestCheckIn_TeamOverrideTakesWholeRecord(t *testing.T) {
	svc, _, settingsRepo := setupAttendanceService(t)
	settingsRepo.global = &settings.AttendanceSettings{
		RequireLocationCheckin: true,
		OfficeLatitude:         fptr(52.5200),
		OfficeLongitude:        fptr(13.4050),
		CheckInRadiusMeters:    fptr(200),
	}
	// The team row disables location checks entirely; no geofence
	// fields leak through from the global row.
	settingsRepo.byTeam["team-a"] = settings.AttendanceSettings{
		TeamID:                 sptr("team-a"),
		RequireLocationCheckin: false,
	}
	caller := user.Principal{UserID: "emp-a", Role: user.RoleEmployee, TeamID: sptr("team-a")}

	_, err := svc.CheckIn(context.Background(), caller, attendance.CheckInRequest{})
	assert.NoError(t, err)
}

func TestCheckOut_WithoutOpenCheckIn(t *testing.T) {
	svc, _, _ := setupAttendanceService(t)
	caller := user.Principal{UserID: "emp-a", Role: user.RoleEmployee, TeamID: sptr("team-a")}

	_, err := svc.CheckOut(context.Background(), caller, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_ClosesOpenSession(t *testing.T) {
	svc, repo, _ := setupAttendanceService(t)
	caller := user.Principal{UserID: "emp-a", Role: user.RoleEmployee, TeamID: sptr("team-a")}
	repo.events = append(repo.events, attendance.Event{
		ID: "ev-1", UserID: "emp-a", Timestamp: ts("2025-06-02 08:00:00"), Kind: attendance.KindCheckIn,
	})

	resp, err := svc.CheckOut(context.Background(), caller, attendance.CheckOutRequest{})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.KindCheckOut), resp.Kind)
	assert.Len(t, repo.events, 2)
}

func TestMyReport_EndToEnd(t *testing.T) {
	svc, repo, _ := setupAttendanceService(t)
	caller := user.Principal{UserID: "emp-a", Role: user.RoleEmployee, TeamID: sptr("team-a")}
	repo.events = append(repo.events,
		attendance.Event{ID: "ev-1", UserID: "emp-a", Timestamp: ts("2025-06-01 09:00:00"), Kind: attendance.KindCheckIn},
		attendance.Event{ID: "ev-2", UserID: "emp-a", Timestamp: ts("2025-06-01 17:00:00"), Kind: attendance.KindCheckOut},
	)

	report, err := svc.MyReport(context.Background(), caller, attendance.ReportFilter{
		From: "2025-06-01",
		To:   "2025-06-01",
	})
	require.NoError(t, err)

	require.Len(t, report.Records, 1)
	assert.InDelta(t, 8.0, report.Records[0].TotalHours, 0.001)
	assert.Equal(t, 1, report.Summary.PresentDays)
}

func TestUserReport_CrossTeamDenied(t *testing.T) {
	svc, _, _ := setupAttendanceService(t)
	caller := user.Principal{UserID: "outsider", Role: user.RoleLeader, TeamID: sptr("team-z")}

	_, err := svc.UserReport(context.Background(), caller, attendance.ReportFilter{
		UserID: "emp-a",
		From:   "2025-06-01",
		To:     "2025-06-01",
	})
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)
}

func TestTeamReport_OneReportPerMember(t *testing.T) {
	svc, repo, _ := setupAttendanceService(t)
	caller := user.Principal{UserID: "admin", Role: user.RoleAdmin}
	repo.events = append(repo.events,
		attendance.Event{ID: "ev-1", UserID: "emp-a", Timestamp: ts("2025-06-01 09:00:00"), Kind: attendance.KindCheckIn},
		attendance.Event{ID: "ev-2", UserID: "emp-a", Timestamp: ts("2025-06-01 17:00:00"), Kind: attendance.KindCheckOut},
	)

	report, err := svc.TeamReport(context.Background(), caller, attendance.ReportFilter{
		TeamID: sptr("team-a"),
		From:   "2025-06-01",
		To:     "2025-06-01",
	})
	require.NoError(t, err)

	require.Len(t, report.Reports, 2)
	// Members come back sorted; emp-b has no events and shows absent
	assert.Equal(t, "emp-a", report.Reports[0].UserID)
	assert.Equal(t, 1, report.Reports[0].Summary.PresentDays)
	assert.Equal(t, "emp-b", report.Reports[1].UserID)
	assert.Equal(t, 0, report.Reports[1].Summary.PresentDays)
	assert.Equal(t, 1, report.Reports[1].Summary.AbsentDays)
}
