package attendance

import (
	"fmt"
	"sort"
	"time"

	"github.com/teamops/teamops-backend-go/internal/domain/attendance"
	"github.com/teamops/teamops-backend-go/internal/domain/settings"
)

// Aggregator reconstructs sessions and daily records from a flat,
// unordered log of check-in/check-out events. All methods are pure
// functions of their inputs: no I/O, no shared state, safe for
// concurrent callers.
type Aggregator struct {
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// BuildSessions pairs each check-in with the next check-out per user.
// Events may arrive in arbitrary order and may contain duplicates; the
// input is sorted by (userID, timestamp) and deduplicated before the
// scan. A check-in while a session is already open is ignored and
// flagged, never treated as close-and-reopen. A trailing check-in yields
// one open session. Malformed events are skipped and flagged; the result
// is always best-effort, never an error.
func (a *Aggregator) BuildSessions(events []attendance.Event) ([]attendance.Session, []attendance.Diagnostic) {
	var diags []attendance.Diagnostic

	valid := make([]attendance.Event, 0, len(events))
	for _, ev := range events {
		if ev.Timestamp.IsZero() {
			diags = append(diags, attendance.Diagnostic{
				Code:    attendance.DiagMissingTimestamp,
				EventID: ev.ID,
				UserID:  ev.UserID,
				Message: "event has no timestamp and was skipped",
			})
			continue
		}
		if !ev.Kind.IsValid() {
			diags = append(diags, attendance.Diagnostic{
				Code:    attendance.DiagUnknownKind,
				EventID: ev.ID,
				UserID:  ev.UserID,
				Message: fmt.Sprintf("unknown event kind %q, event skipped", ev.Kind),
			})
			continue
		}
		valid = append(valid, ev)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].UserID != valid[j].UserID {
			return valid[i].UserID < valid[j].UserID
		}
		if !valid[i].Timestamp.Equal(valid[j].Timestamp) {
			return valid[i].Timestamp.Before(valid[j].Timestamp)
		}
		// Same instant: a check-in sorts before a check-out so the pair
		// still closes (as a zero-length session) instead of orphaning
		return valid[i].Kind == attendance.KindCheckIn && valid[j].Kind == attendance.KindCheckOut
	})

	var sessions []attendance.Session
	var open *attendance.Session
	currentUser := ""

	for i, ev := range valid {
		// Duplicate fact: same user, same instant, same direction
		if i > 0 && valid[i-1].UserID == ev.UserID && valid[i-1].Timestamp.Equal(ev.Timestamp) && valid[i-1].Kind == ev.Kind {
			continue
		}

		if ev.UserID != currentUser {
			// A user switch leaves any trailing session open
			if open != nil {
				sessions = append(sessions, *open)
			}
			open = nil
			currentUser = ev.UserID
		}

		switch ev.Kind {
		case attendance.KindCheckIn:
			if open != nil {
				diags = append(diags, attendance.Diagnostic{
					Code:    attendance.DiagDoubleCheckIn,
					EventID: ev.ID,
					UserID:  ev.UserID,
					Message: "check-in while a session is already open, event ignored",
				})
				continue
			}
			open = &attendance.Session{UserID: ev.UserID, CheckIn: ev}

		case attendance.KindCheckOut:
			if open == nil {
				diags = append(diags, attendance.Diagnostic{
					Code:    attendance.DiagOrphanCheckOut,
					EventID: ev.ID,
					UserID:  ev.UserID,
					Message: "check-out without a matching check-in, event ignored",
				})
				continue
			}
			closed, diag := closeSession(open, &ev)
			sessions = append(sessions, closed)
			if diag != nil {
				diags = append(diags, *diag)
			}
			open = nil
		}
	}

	if open != nil {
		sessions = append(sessions, *open)
	}

	return sessions, diags
}

// closeSession finalizes a session with its check-out, clamping
// non-positive durations to 0 and reporting them as data-quality errors.
func closeSession(open *attendance.Session, out *attendance.Event) (attendance.Session, *attendance.Diagnostic) {
	if open == nil || out == nil {
		return attendance.Session{}, nil
	}

	s := *open
	s.CheckOut = out
	s.DurationHours = out.Timestamp.Sub(s.CheckIn.Timestamp).Hours()

	if s.DurationHours <= 0 {
		s.DurationHours = 0
		return s, &attendance.Diagnostic{
			Code:    attendance.DiagNegativeDuration,
			EventID: out.ID,
			UserID:  s.UserID,
			Message: "session duration is not positive, clamped to 0",
		}
	}
	return s, nil
}

// ApplyAutoCheckout force-closes stale open sessions per policy. A
// session is stale when its check-in date is strictly before asOf's
// date; sessions open on the current day stay open regardless of
// policy. The synthesized check-out lands at the configured wall-clock
// time on the check-in date, unless that would exceed maxHoursPerDay:
// the cap always wins. The caller persists the synthesized check-out
// event; this function only returns the closed session shape.
func (a *Aggregator) ApplyAutoCheckout(sessions []attendance.Session, s settings.AttendanceSettings, asOf time.Time) []attendance.Session {
	if !s.AutoCheckoutEnabled {
		return sessions
	}

	asOfDate := asOf.UTC().Truncate(24 * time.Hour)

	out := make([]attendance.Session, len(sessions))
	copy(out, sessions)

	for i := range out {
		sess := &out[i]
		if !sess.Open() || !sess.Date().Before(asOfDate) {
			continue
		}

		checkIn := sess.CheckIn.Timestamp
		capped := checkIn.Add(time.Duration(s.MaxHoursPerDay * float64(time.Hour)))
		synthesized := s.AutoCheckoutTime.At(checkIn)
		if !synthesized.After(checkIn) || synthesized.After(capped) {
			synthesized = capped
		}

		notes := "auto-checkout"
		sess.CheckOut = &attendance.Event{
			UserID:    sess.UserID,
			Timestamp: synthesized,
			Kind:      attendance.KindCheckOut,
			Notes:     &notes,
		}
		sess.DurationHours = synthesized.Sub(checkIn).Hours()
	}

	return out
}

// AggregateDaily groups sessions by (userID, date of check-in). Dates in
// leaveDays always classify as leave, regardless of session data; leave
// days with zero events still produce a record. Open sessions contribute
// 0 hours until closed.
func (a *Aggregator) AggregateDaily(sessions []attendance.Session, leaveDays []attendance.LeaveDay) []attendance.DailyRecord {
	type dayKey struct {
		userID string
		date   time.Time
	}

	leave := make(map[dayKey]bool, len(leaveDays))
	for _, ld := range leaveDays {
		leave[dayKey{ld.UserID, ld.Date.UTC().Truncate(24 * time.Hour)}] = true
	}

	groups := make(map[dayKey][]attendance.Session)
	var order []dayKey
	for _, s := range sessions {
		k := dayKey{s.UserID, s.Date()}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], s)
	}

	// Leave days without any session still yield a record
	for k := range leave {
		if _, seen := groups[k]; !seen {
			groups[k] = nil
			order = append(order, k)
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].userID != order[j].userID {
			return order[i].userID < order[j].userID
		}
		return order[i].date.Before(order[j].date)
	})

	records := make([]attendance.DailyRecord, 0, len(order))
	for _, k := range order {
		group := groups[k]
		rec := attendance.DailyRecord{
			UserID:       k.userID,
			Date:         k.date,
			SessionCount: len(group),
		}

		closedAny := false
		for _, s := range group {
			if rec.FirstCheckIn == nil || s.CheckIn.Timestamp.Before(*rec.FirstCheckIn) {
				t := s.CheckIn.Timestamp
				rec.FirstCheckIn = &t
			}
			if s.CheckOut != nil {
				closedAny = true
				if rec.LastCheckOut == nil || s.CheckOut.Timestamp.After(*rec.LastCheckOut) {
					t := s.CheckOut.Timestamp
					rec.LastCheckOut = &t
				}
			}
			rec.TotalHours += s.DurationHours
		}

		switch {
		case leave[k]:
			rec.Status = attendance.StatusLeave
			rec.TotalHours = 0
		case len(group) == 0:
			rec.Status = attendance.StatusAbsent
		case closedAny:
			rec.Status = attendance.StatusPresent
		default:
			rec.Status = attendance.StatusPending
		}

		records = append(records, rec)
	}

	return records
}

// FillAbsences inserts absent records for every day of [from, to] that
// has no record for the user. Days on or after asOf's date are left out:
// a day that is not over yet cannot be classified absent.
func (a *Aggregator) FillAbsences(records []attendance.DailyRecord, userID string, from, to, asOf time.Time) []attendance.DailyRecord {
	have := make(map[time.Time]bool, len(records))
	for _, r := range records {
		if r.UserID == userID {
			have[r.Date] = true
		}
	}

	asOfDate := asOf.UTC().Truncate(24 * time.Hour)
	out := append([]attendance.DailyRecord(nil), records...)

	for d := from.UTC().Truncate(24 * time.Hour); !d.After(to.UTC().Truncate(24 * time.Hour)); d = d.AddDate(0, 0, 1) {
		if have[d] || !d.Before(asOfDate) {
			continue
		}
		out = append(out, attendance.DailyRecord{
			UserID: userID,
			Date:   d,
			Status: attendance.StatusAbsent,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// SummaryStats computes period totals over daily records. The average is
// over present days only and is 0, not NaN, when there are none.
func (a *Aggregator) SummaryStats(records []attendance.DailyRecord, periodStart, periodEnd time.Time) attendance.Summary {
	sum := attendance.Summary{}

	start := periodStart.UTC().Truncate(24 * time.Hour)
	end := periodEnd.UTC().Truncate(24 * time.Hour)
	if !end.Before(start) {
		sum.TotalDays = int(end.Sub(start).Hours()/24) + 1
	}

	for _, r := range records {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		switch r.Status {
		case attendance.StatusPresent:
			sum.PresentDays++
		case attendance.StatusAbsent:
			sum.AbsentDays++
		case attendance.StatusLeave:
			sum.LeaveDays++
		}
		sum.TotalHours += r.TotalHours
	}

	if sum.PresentDays > 0 {
		sum.AverageHoursPerDay = sum.TotalHours / float64(sum.PresentDays)
	}

	return sum
}
