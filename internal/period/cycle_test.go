package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthIndexRoundTrip(t *testing.T) {
	for year := 1999; year <= 2031; year++ {
		for m := time.January; m <= time.December; m++ {
			y, mm := fromMonthIndex(monthIndex(year, m))
			assert.Equal(t, year, y)
			assert.Equal(t, m, mm)
		}
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		n         int
		wantYear  int
		wantMonth time.Month
	}{
		{"forward within year", 2026, time.March, 1, 2026, time.April},
		{"december to january", 2025, time.December, 1, 2026, time.January},
		{"january to december", 2026, time.January, -1, 2025, time.December},
		{"many months back", 2026, time.February, -14, 2024, time.December},
		{"zero", 2026, time.June, 0, 2026, time.June},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m := addMonths(tt.year, tt.month, tt.n)
			assert.Equal(t, tt.wantYear, y)
			assert.Equal(t, tt.wantMonth, m)
		})
	}
}

func TestCycleForDate(t *testing.T) {
	tests := []struct {
		name      string
		date      time.Time
		wantMonth time.Month
		wantYear  int
	}{
		{"day 24 stays in current cycle", time.Date(2026, 3, 24, 23, 0, 0, 0, time.UTC), time.March, 2026},
		{"day 25 moves to next cycle", time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC), time.April, 2026},
		{"first of month", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.March, 2026},
		{"end of month", time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), time.April, 2026},
		{"december 25 rolls year", time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), time.January, 2026},
		{"december 24", time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC), time.December, 2025},
		{"january 10", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), time.January, 2026},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, y := CycleForDate(tt.date)
			assert.Equal(t, tt.wantMonth, m)
			assert.Equal(t, tt.wantYear, y)
		})
	}
}

func TestCycleForDate_AllDays(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for d := start; d.Year() < 2027; d = d.AddDate(0, 0, 1) {
		m, y := CycleForDate(d)
		if d.Day() >= 25 {
			ny, nm := addMonths(d.Year(), d.Month(), 1)
			assert.Equal(t, nm, m, d.Format(DayLayout))
			assert.Equal(t, ny, y, d.Format(DayLayout))
		} else {
			assert.Equal(t, d.Month(), m, d.Format(DayLayout))
			assert.Equal(t, d.Year(), y, d.Format(DayLayout))
		}

		// the cycle named for d must contain d
		assert.True(t, Cycle(m, y, time.UTC).Contains(d), d.Format(DayLayout))
	}
}

func TestCycleRange(t *testing.T) {
	start, end := CycleRange(time.March, 2026, time.UTC)
	assert.Equal(t, time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 24, 23, 59, 59, 999_000_000, time.UTC), end)

	start, end = CycleRange(time.January, 2026, time.UTC)
	assert.Equal(t, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 24, 23, 59, 59, 999_000_000, time.UTC), end)
}

func TestCycleRange_LengthAndContiguity(t *testing.T) {
	for idx := monthIndex(2024, time.January); idx <= monthIndex(2027, time.December); idx++ {
		y, m := fromMonthIndex(idx)
		start, end := CycleRange(m, y, time.UTC)

		// one month minus one day
		assert.Equal(t, StartOfDay(start.AddDate(0, 1, -1)), StartOfDay(end), "%d-%d", y, m)

		ny, nm := fromMonthIndex(idx + 1)
		nextStart, _ := CycleRange(nm, ny, time.UTC)
		assert.Equal(t, nextStart, StartOfDay(end).AddDate(0, 0, 1), "%d-%d", y, m)
	}
}

func TestCycle_Labels(t *testing.T) {
	c := Cycle(time.March, 2026, time.UTC)
	assert.Equal(t, "Kỳ Lương T3/2026", c.Label)
	assert.Equal(t, "25/02 - 24/03/2026", c.SubLabel)
	assert.Equal(t, "cycle-2026-3", c.Value)
	assert.Equal(t, KindCycle, c.Kind)
	assert.Equal(t, time.March, c.Month)
	assert.Equal(t, 2026, c.Year)
}

func TestGenerateCycles(t *testing.T) {
	now := time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)
	cycles := GenerateCycles(now, 6)
	require.Len(t, cycles, 6)

	wantValues := []string{
		"cycle-2026-3",
		"cycle-2026-2",
		"cycle-2026-1",
		"cycle-2025-12",
		"cycle-2025-11",
		"cycle-2025-10",
	}
	for i, c := range cycles {
		assert.Equal(t, wantValues[i], c.Value)
	}

	assert.True(t, cycles[0].Contains(now))

	for i := 1; i < len(cycles); i++ {
		newer, older := cycles[i-1], cycles[i]
		assert.True(t, older.End.Before(newer.Start), "cycles must not overlap")
		assert.Equal(t, newer.Start, StartOfDay(older.End).AddDate(0, 0, 1), "cycles must not leave gaps")
	}
}

func TestGenerateCycles_ZeroCount(t *testing.T) {
	assert.Empty(t, GenerateCycles(time.Now(), 0))
	assert.Empty(t, GenerateCycles(time.Now(), -3))
}

func TestCycleFromValue(t *testing.T) {
	c, ok := CycleFromValue("cycle-2025-12", time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.December, c.Month)
	assert.Equal(t, 2025, c.Year)
	assert.Equal(t, time.Date(2025, 11, 25, 0, 0, 0, 0, time.UTC), c.Start)

	for _, bad := range []string{"", "cycle-", "cycle-2025", "cycle-2025-13", "cycle-2025-0", "cycle-x-1", "week-this"} {
		_, ok := CycleFromValue(bad, time.UTC)
		assert.False(t, ok, bad)
	}
}
