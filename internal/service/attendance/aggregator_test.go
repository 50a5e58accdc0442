package attendance

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamops/teamops-backend-go/internal/domain/attendance"
	"github.com/teamops/teamops-backend-go/internal/domain/settings"
)

func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func ev(id, userID, at string, kind attendance.EventKind) attendance.Event {
	return attendance.Event{ID: id, UserID: userID, Timestamp: ts(at), Kind: kind}
}

func checkIn(id, userID, at string) attendance.Event {
	return ev(id, userID, at, attendance.KindCheckIn)
}

func checkOut(id, userID, at string) attendance.Event {
	return ev(id, userID, at, attendance.KindCheckOut)
}

// ===== BUILD SESSIONS =====

func TestBuildSessions_SingleClosedSession(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, diags := agg.BuildSessions([]attendance.Event{
		checkIn("e1", "u1", "2025-01-13 08:45:00"),
		checkOut("e2", "u1", "2025-01-13 17:30:00"),
	})

	require.Len(t, sessions, 1)
	assert.Empty(t, diags)
	assert.False(t, sessions[0].Open())
	assert.InDelta(t, 8.75, sessions[0].DurationHours, 1e-9)
}

func TestBuildSessions_UnorderedInput(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	// Same events, shuffled across users and time
	sessions, diags := agg.BuildSessions([]attendance.Event{
		checkOut("e4", "u2", "2025-01-13 18:00:00"),
		checkOut("e2", "u1", "2025-01-13 17:30:00"),
		checkIn("e3", "u2", "2025-01-13 09:00:00"),
		checkIn("e1", "u1", "2025-01-13 08:45:00"),
	})

	require.Len(t, sessions, 2)
	assert.Empty(t, diags)
	assert.Equal(t, "u1", sessions[0].UserID)
	assert.Equal(t, "u2", sessions[1].UserID)
	assert.InDelta(t, 8.75, sessions[0].DurationHours, 1e-9)
	assert.InDelta(t, 9.0, sessions[1].DurationHours, 1e-9)
}

// Pairing property: an alternating sequence with n check-outs yields
// exactly n closed sessions, plus one open session when it ends on an
// unmatched check-in.
func TestBuildSessions_PairingProperty(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	var events []attendance.Event
	base := ts("2025-01-13 08:00:00")
	for i := 0; i < 5; i++ {
		events = append(events,
			attendance.Event{ID: fmt.Sprintf("in%d", i), UserID: "u1", Timestamp: base.Add(time.Duration(i) * 3 * time.Hour), Kind: attendance.KindCheckIn},
			attendance.Event{ID: fmt.Sprintf("out%d", i), UserID: "u1", Timestamp: base.Add(time.Duration(i)*3*time.Hour + time.Hour), Kind: attendance.KindCheckOut},
		)
	}
	events = append(events, attendance.Event{ID: "trail", UserID: "u1", Timestamp: base.Add(24 * time.Hour), Kind: attendance.KindCheckIn})

	sessions, diags := agg.BuildSessions(events)

	assert.Empty(t, diags)
	require.Len(t, sessions, 6)
	closed := 0
	openCount := 0
	for _, s := range sessions {
		if s.Open() {
			openCount++
			assert.Equal(t, 0.0, s.DurationHours)
		} else {
			closed++
		}
	}
	assert.Equal(t, 5, closed)
	assert.Equal(t, 1, openCount)
}

// Non-overlap property: session intervals for one user never overlap.
func TestBuildSessions_NonOverlap(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, _ := agg.BuildSessions([]attendance.Event{
		checkIn("e1", "u1", "2025-01-13 08:00:00"),
		checkIn("e2", "u1", "2025-01-13 09:00:00"), // double check-in, ignored
		checkOut("e3", "u1", "2025-01-13 12:00:00"),
		checkIn("e4", "u1", "2025-01-13 13:00:00"),
		checkOut("e5", "u1", "2025-01-13 17:00:00"),
	})

	require.Len(t, sessions, 2)
	for i := 1; i < len(sessions); i++ {
		prev, cur := sessions[i-1], sessions[i]
		require.False(t, prev.Open())
		assert.False(t, cur.CheckIn.Timestamp.Before(prev.CheckOut.Timestamp),
			"sessions %d and %d overlap", i-1, i)
	}
}

func TestBuildSessions_DoubleCheckInIgnoredAndFlagged(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, diags := agg.BuildSessions([]attendance.Event{
		checkIn("e1", "u1", "2025-01-13 08:00:00"),
		checkIn("e2", "u1", "2025-01-13 09:00:00"),
		checkOut("e3", "u1", "2025-01-13 17:00:00"),
	})

	require.Len(t, sessions, 1)
	// The first check-in anchors the session, the second is dropped
	assert.Equal(t, "e1", sessions[0].CheckIn.ID)
	assert.InDelta(t, 9.0, sessions[0].DurationHours, 1e-9)

	require.Len(t, diags, 1)
	assert.Equal(t, attendance.DiagDoubleCheckIn, diags[0].Code)
	assert.Equal(t, "e2", diags[0].EventID)
}

func TestBuildSessions_OrphanCheckOutFlagged(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, diags := agg.BuildSessions([]attendance.Event{
		checkOut("e1", "u1", "2025-01-13 17:00:00"),
	})

	assert.Empty(t, sessions)
	require.Len(t, diags, 1)
	assert.Equal(t, attendance.DiagOrphanCheckOut, diags[0].Code)
}

func TestBuildSessions_MalformedEventsSkippedNotFatal(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, diags := agg.BuildSessions([]attendance.Event{
		checkIn("good1", "u1", "2025-01-13 08:00:00"),
		{ID: "bad1", UserID: "u1", Timestamp: ts("2025-01-13 09:00:00"), Kind: attendance.EventKind("teleport")},
		{ID: "bad2", UserID: "u1", Kind: attendance.KindCheckOut},
		checkOut("good2", "u1", "2025-01-13 17:00:00"),
	})

	// Well-formed events still aggregate
	require.Len(t, sessions, 1)
	assert.InDelta(t, 9.0, sessions[0].DurationHours, 1e-9)

	require.Len(t, diags, 2)
	codes := []attendance.DiagnosticCode{diags[0].Code, diags[1].Code}
	assert.Contains(t, codes, attendance.DiagUnknownKind)
	assert.Contains(t, codes, attendance.DiagMissingTimestamp)
}

func TestBuildSessions_DuplicateEventsDeduplicated(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, diags := agg.BuildSessions([]attendance.Event{
		checkIn("e1", "u1", "2025-01-13 08:00:00"),
		checkIn("e1b", "u1", "2025-01-13 08:00:00"), // duplicate fact
		checkOut("e2", "u1", "2025-01-13 17:00:00"),
	})

	require.Len(t, sessions, 1)
	assert.Empty(t, diags)
}

func TestBuildSessions_ZeroDurationClampedAndFlagged(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	// A check-out at the same instant as its check-in is degenerate: the
	// session closes with 0 hours and a data-quality flag, never a
	// negative duration
	sessions, diags := agg.BuildSessions([]attendance.Event{
		checkIn("e1", "u1", "2025-01-13 08:00:00"),
		checkOut("e2", "u1", "2025-01-13 08:00:00"),
	})

	require.Len(t, sessions, 1)
	assert.False(t, sessions[0].Open())
	assert.Equal(t, 0.0, sessions[0].DurationHours)
	require.Len(t, diags, 1)
	assert.Equal(t, attendance.DiagNegativeDuration, diags[0].Code)
}

// Idempotence property: aggregating the same input twice yields
// identical output.
func TestBuildSessions_Idempotent(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	events := []attendance.Event{
		checkIn("e1", "u1", "2025-01-13 08:00:00"),
		checkOut("e2", "u1", "2025-01-13 12:00:00"),
		checkIn("e3", "u2", "2025-01-13 10:00:00"),
	}

	first, firstDiags := agg.BuildSessions(events)
	second, secondDiags := agg.BuildSessions(events)

	assert.Equal(t, first, second)
	assert.Equal(t, firstDiags, secondDiags)
}

func TestBuildSessions_EmptyInput(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, diags := agg.BuildSessions(nil)
	assert.Empty(t, sessions)
	assert.Empty(t, diags)
}

// ===== AUTO CHECKOUT =====

func autoCheckoutSettings(enabled bool, hour, minute int, maxHours float64) settings.AttendanceSettings {
	return settings.AttendanceSettings{
		AutoCheckoutEnabled: enabled,
		AutoCheckoutTime:    settings.TimeOfDay{Hour: hour, Minute: minute},
		MaxHoursPerDay:      maxHours,
	}
}

func TestApplyAutoCheckout_StaleSessionClosedAtWallClock(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, _ := agg.BuildSessions([]attendance.Event{
		checkIn("e1", "u1", "2025-01-13 08:00:00"),
	})

	// 17:00 wall clock keeps the duration under the cap
	out := agg.ApplyAutoCheckout(sessions, autoCheckoutSettings(true, 17, 0, 14), ts("2025-01-14 06:00:00"))

	require.Len(t, out, 1)
	require.False(t, out[0].Open())
	assert.Equal(t, ts("2025-01-13 17:00:00"), out[0].CheckOut.Timestamp)
	assert.InDelta(t, 9.0, out[0].DurationHours, 1e-9)
	require.NotNil(t, out[0].CheckOut.Notes)
	assert.Equal(t, "auto-checkout", *out[0].CheckOut.Notes)
}

// Example scenario: check-in 08:00, auto-checkout 23:59, cap 14h. The
// raw elapsed time to 23:59 would be 15.98h, so the cap wins and the
// synthesized checkout is check-in + 14h.
func TestApplyAutoCheckout_CapWinsOverWallClock(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, _ := agg.BuildSessions([]attendance.Event{
		checkIn("e1", "u1", "2025-01-13 08:00:00"),
	})

	out := agg.ApplyAutoCheckout(sessions, autoCheckoutSettings(true, 23, 59, 14), ts("2025-01-14 06:00:00"))

	require.Len(t, out, 1)
	require.False(t, out[0].Open())
	assert.Equal(t, ts("2025-01-13 22:00:00"), out[0].CheckOut.Timestamp)
	assert.Equal(t, 14.0, out[0].DurationHours)
}

func TestApplyAutoCheckout_CurrentDayLeftOpen(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, _ := agg.BuildSessions([]attendance.Event{
		checkIn("e1", "u1", "2025-01-13 08:00:00"),
	})

	out := agg.ApplyAutoCheckout(sessions, autoCheckoutSettings(true, 17, 0, 14), ts("2025-01-13 23:00:00"))

	require.Len(t, out, 1)
	assert.True(t, out[0].Open())
}

func TestApplyAutoCheckout_DisabledPolicyIsNoOp(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, _ := agg.BuildSessions([]attendance.Event{
		checkIn("e1", "u1", "2025-01-13 08:00:00"),
	})

	out := agg.ApplyAutoCheckout(sessions, autoCheckoutSettings(false, 17, 0, 14), ts("2025-01-14 06:00:00"))
	assert.True(t, out[0].Open())
}

func TestApplyAutoCheckout_ClosedSessionsUntouched(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, _ := agg.BuildSessions([]attendance.Event{
		checkIn("e1", "u1", "2025-01-12 08:00:00"),
		checkOut("e2", "u1", "2025-01-12 17:30:00"),
	})

	out := agg.ApplyAutoCheckout(sessions, autoCheckoutSettings(true, 23, 59, 14), ts("2025-01-14 06:00:00"))
	assert.Equal(t, sessions, out)
}

// Cap invariant: no session exceeds maxHoursPerDay after auto-checkout.
func TestApplyAutoCheckout_CapInvariant(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	var events []attendance.Event
	for i := 0; i < 4; i++ {
		events = append(events, attendance.Event{
			ID:        fmt.Sprintf("in%d", i),
			UserID:    fmt.Sprintf("u%d", i),
			Timestamp: ts("2025-01-10 06:00:00").Add(time.Duration(i) * 5 * time.Hour),
			Kind:      attendance.KindCheckIn,
		})
	}
	sessions, _ := agg.BuildSessions(events)

	s := autoCheckoutSettings(true, 23, 59, 10)
	out := agg.ApplyAutoCheckout(sessions, s, ts("2025-01-14 00:30:00"))

	for _, sess := range out {
		assert.LessOrEqual(t, sess.DurationHours, s.MaxHoursPerDay)
	}
}

// A configured checkout time earlier than the check-in itself cannot
// produce a non-positive session; the cap timestamp is used instead.
func TestApplyAutoCheckout_WallClockBeforeCheckIn(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, _ := agg.BuildSessions([]attendance.Event{
		checkIn("e1", "u1", "2025-01-13 22:00:00"),
	})

	out := agg.ApplyAutoCheckout(sessions, autoCheckoutSettings(true, 17, 0, 10), ts("2025-01-15 06:00:00"))

	require.Len(t, out, 1)
	require.False(t, out[0].Open())
	assert.Equal(t, 10.0, out[0].DurationHours)
}

// ===== DAILY AGGREGATION =====

func TestAggregateDaily_PresentDay(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, _ := agg.BuildSessions([]attendance.Event{
		checkIn("e1", "u1", "2025-01-13 08:45:00"),
		checkOut("e2", "u1", "2025-01-13 17:30:00"),
	})

	records := agg.AggregateDaily(sessions, nil)

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, day("2025-01-13"), rec.Date)
	assert.Equal(t, attendance.StatusPresent, rec.Status)
	assert.InDelta(t, 8.75, rec.TotalHours, 1e-9)
	assert.Equal(t, 1, rec.SessionCount)
	require.NotNil(t, rec.FirstCheckIn)
	require.NotNil(t, rec.LastCheckOut)
	assert.Equal(t, ts("2025-01-13 08:45:00"), *rec.FirstCheckIn)
	assert.Equal(t, ts("2025-01-13 17:30:00"), *rec.LastCheckOut)
}

func TestAggregateDaily_MultipleSessionsOneDay(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, _ := agg.BuildSessions([]attendance.Event{
		checkIn("e1", "u1", "2025-01-13 08:00:00"),
		checkOut("e2", "u1", "2025-01-13 12:00:00"),
		checkIn("e3", "u1", "2025-01-13 13:00:00"),
		checkOut("e4", "u1", "2025-01-13 17:00:00"),
	})

	records := agg.AggregateDaily(sessions, nil)

	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].SessionCount)
	assert.InDelta(t, 8.0, records[0].TotalHours, 1e-9)
	assert.Equal(t, ts("2025-01-13 08:00:00"), *records[0].FirstCheckIn)
	assert.Equal(t, ts("2025-01-13 17:00:00"), *records[0].LastCheckOut)
}

func TestAggregateDaily_OpenOnlyDayIsPending(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, _ := agg.BuildSessions([]attendance.Event{
		checkIn("e1", "u1", "2025-01-13 08:00:00"),
	})

	records := agg.AggregateDaily(sessions, nil)

	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusPending, records[0].Status)
	assert.Equal(t, 0.0, records[0].TotalHours)
	assert.Nil(t, records[0].LastCheckOut)
}

// Example scenario: a date flagged as leave with zero events yields a
// leave record with 0 hours, regardless of any other rule.
func TestAggregateDaily_LeaveWithoutEvents(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	records := agg.AggregateDaily(nil, []attendance.LeaveDay{
		{UserID: "u1", Date: day("2025-01-13")},
	})

	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusLeave, records[0].Status)
	assert.Equal(t, 0.0, records[0].TotalHours)
	assert.Equal(t, 0, records[0].SessionCount)
}

// Leave takes precedence even over a fully worked day.
func TestAggregateDaily_LeaveOverridesSessions(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, _ := agg.BuildSessions([]attendance.Event{
		checkIn("e1", "u1", "2025-01-13 08:00:00"),
		checkOut("e2", "u1", "2025-01-13 17:00:00"),
	})

	records := agg.AggregateDaily(sessions, []attendance.LeaveDay{
		{UserID: "u1", Date: day("2025-01-13")},
	})

	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusLeave, records[0].Status)
	assert.Equal(t, 0.0, records[0].TotalHours)
}

func TestAggregateDaily_LeaveForOtherUserDoesNotLeak(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, _ := agg.BuildSessions([]attendance.Event{
		checkIn("e1", "u1", "2025-01-13 08:00:00"),
		checkOut("e2", "u1", "2025-01-13 17:00:00"),
	})

	records := agg.AggregateDaily(sessions, []attendance.LeaveDay{
		{UserID: "u2", Date: day("2025-01-13")},
	})

	require.Len(t, records, 2)
	byUser := map[string]attendance.DailyRecord{}
	for _, r := range records {
		byUser[r.UserID] = r
	}
	assert.Equal(t, attendance.StatusPresent, byUser["u1"].Status)
	assert.Equal(t, attendance.StatusLeave, byUser["u2"].Status)
}

func TestFillAbsences(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sessions, _ := agg.BuildSessions([]attendance.Event{
		checkIn("e1", "u1", "2025-01-13 08:00:00"),
		checkOut("e2", "u1", "2025-01-13 17:00:00"),
	})
	records := agg.AggregateDaily(sessions, nil)

	filled := agg.FillAbsences(records, "u1", day("2025-01-13"), day("2025-01-16"), ts("2025-01-16 09:00:00"))

	// 13th present, 14th and 15th absent, 16th is today and excluded
	require.Len(t, filled, 3)
	assert.Equal(t, attendance.StatusPresent, filled[0].Status)
	assert.Equal(t, attendance.StatusAbsent, filled[1].Status)
	assert.Equal(t, day("2025-01-14"), filled[1].Date)
	assert.Equal(t, attendance.StatusAbsent, filled[2].Status)
	assert.Equal(t, day("2025-01-15"), filled[2].Date)
}

// ===== SUMMARY =====

func TestSummaryStats(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	records := []attendance.DailyRecord{
		{UserID: "u1", Date: day("2025-01-13"), Status: attendance.StatusPresent, TotalHours: 8},
		{UserID: "u1", Date: day("2025-01-14"), Status: attendance.StatusPresent, TotalHours: 6},
		{UserID: "u1", Date: day("2025-01-15"), Status: attendance.StatusAbsent},
		{UserID: "u1", Date: day("2025-01-16"), Status: attendance.StatusLeave},
	}

	sum := agg.SummaryStats(records, day("2025-01-13"), day("2025-01-17"))

	assert.Equal(t, 5, sum.TotalDays)
	assert.Equal(t, 2, sum.PresentDays)
	assert.Equal(t, 1, sum.AbsentDays)
	assert.Equal(t, 1, sum.LeaveDays)
	assert.InDelta(t, 14.0, sum.TotalHours, 1e-9)
	assert.InDelta(t, 7.0, sum.AverageHoursPerDay, 1e-9)
}

// Average must be 0, never NaN, when there are no present days.
func TestSummaryStats_NoPresentDays(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	sum := agg.SummaryStats([]attendance.DailyRecord{
		{UserID: "u1", Date: day("2025-01-13"), Status: attendance.StatusAbsent},
	}, day("2025-01-13"), day("2025-01-13"))

	assert.Equal(t, 0, sum.PresentDays)
	assert.Equal(t, 0.0, sum.AverageHoursPerDay)
}

func TestSummaryStats_RecordsOutsidePeriodExcluded(t *testing.T) {
	t.Parallel()
	agg := NewAggregator()

	records := []attendance.DailyRecord{
		{UserID: "u1", Date: day("2025-01-10"), Status: attendance.StatusPresent, TotalHours: 8},
		{UserID: "u1", Date: day("2025-01-13"), Status: attendance.StatusPresent, TotalHours: 7},
	}

	sum := agg.SummaryStats(records, day("2025-01-13"), day("2025-01-13"))

	assert.Equal(t, 1, sum.PresentDays)
	assert.InDelta(t, 7.0, sum.TotalHours, 1e-9)
}
