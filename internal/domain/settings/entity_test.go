package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestResolve_TeamRowWins(t *testing.T) {
	t.Parallel()

	global := AttendanceSettings{ID: "g", MaxHoursPerDay: 10}
	team := AttendanceSettings{ID: "t", TeamID: strPtr("team-1"), MaxHoursPerDay: 8}

	got := Resolve(strPtr("team-1"), &global, map[string]AttendanceSettings{"team-1": team})
	assert.Equal(t, "t", got.ID)
	assert.Equal(t, 8.0, got.MaxHoursPerDay)
}

func TestResolve_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	global := AttendanceSettings{ID: "g", MaxHoursPerDay: 10, AutoCheckoutEnabled: true}

	got := Resolve(strPtr("team-2"), &global, map[string]AttendanceSettings{})
	assert.Equal(t, "g", got.ID)

	got = Resolve(nil, &global, nil)
	assert.Equal(t, "g", got.ID)
}

// The team row replaces the global row as a whole record. A team row
// with auto-checkout disabled must not inherit the global enablement.
func TestResolve_NoFieldMerging(t *testing.T) {
	t.Parallel()

	lat := 1.23
	global := AttendanceSettings{
		ID:                  "g",
		AutoCheckoutEnabled: true,
		MaxHoursPerDay:      14,
		OfficeLatitude:      &lat,
	}
	team := AttendanceSettings{ID: "t", TeamID: strPtr("team-1"), MaxHoursPerDay: 8}

	got := Resolve(strPtr("team-1"), &global, map[string]AttendanceSettings{"team-1": team})
	assert.False(t, got.AutoCheckoutEnabled)
	assert.Nil(t, got.OfficeLatitude)
	assert.Equal(t, 8.0, got.MaxHoursPerDay)
}

func TestResolve_DefaultWhenNothingConfigured(t *testing.T) {
	t.Parallel()

	got := Resolve(strPtr("team-1"), nil, nil)
	assert.False(t, got.AutoCheckoutEnabled)
	assert.False(t, got.RequireLocationCheckin)
	assert.False(t, got.HasGeofence())
	assert.Equal(t, Default(), got)
}

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()

	tod, err := ParseTimeOfDay("23:59")
	assert.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 23, Minute: 59}, tod)
	assert.Equal(t, "23:59", tod.String())

	for _, bad := range []string{"", "24:00", "12:60", "noon", "7", "-1:30"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "input %q should not parse", bad)
	}
}

func TestTimeOfDayAt(t *testing.T) {
	t.Parallel()

	date := time.Date(2025, 1, 13, 17, 45, 12, 0, time.UTC)
	got := TimeOfDay{Hour: 23, Minute: 59}.At(date)
	assert.Equal(t, time.Date(2025, 1, 13, 23, 59, 0, 0, time.UTC), got)
}
