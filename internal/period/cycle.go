package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CycleStartDay is the day of month a pay cycle starts on. The cycle is
// named after the month it ends in, on CycleStartDay-1.
const CycleStartDay = 25

const cycleValuePrefix = "cycle-"

// monthIndex flattens (year, month) into a single month counter.
func monthIndex(year int, month time.Month) int {
	return year*12 + int(month) - 1
}

// fromMonthIndex is the inverse of monthIndex.
func fromMonthIndex(idx int) (int, time.Month) {
	year := idx / 12
	rem := idx % 12
	if rem < 0 {
		rem += 12
		year--
	}
	return year, time.Month(rem + 1)
}

// addMonths shifts a nominal month by n, rolling the year as needed.
func addMonths(year int, month time.Month, n int) (int, time.Month) {
	return fromMonthIndex(monthIndex(year, month) + n)
}

// CycleForDate returns the nominal month and year of the pay cycle that
// contains t. Days on or after the 25th belong to the next month's cycle.
func CycleForDate(t time.Time) (time.Month, int) {
	if t.Day() >= CycleStartDay {
		year, month := addMonths(t.Year(), t.Month(), 1)
		return month, year
	}
	return t.Month(), t.Year()
}

// CycleRange returns the boundaries of the cycle named (month, year):
// the 25th of the previous month at midnight through the 24th of month at
// 23:59:59.999, both in loc.
func CycleRange(month time.Month, year int, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	prevYear, prevMonth := addMonths(year, month, -1)
	start := time.Date(prevYear, prevMonth, CycleStartDay, 0, 0, 0, 0, loc)
	end := EndOfDay(time.Date(year, month, CycleStartDay-1, 0, 0, 0, 0, loc))
	return start, end
}

// Cycle builds the TimeRange of the cycle named (month, year).
func Cycle(month time.Month, year int, loc *time.Location) TimeRange {
	start, end := CycleRange(month, year, loc)
	return TimeRange{
		Label:    fmt.Sprintf("Kỳ Lương T%d/%d", int(month), year),
		SubLabel: subLabel(start, end),
		Value:    CycleValue(month, year),
		Start:    start,
		End:      end,
		Kind:     KindCycle,
		Month:    month,
		Year:     year,
	}
}

// CycleValue renders the stable selection value "cycle-{year}-{month}".
func CycleValue(month time.Month, year int) string {
	return fmt.Sprintf("%s%d-%d", cycleValuePrefix, year, int(month))
}

// GenerateCycles returns count cycles, most recent first, starting with the
// cycle that contains now.
func GenerateCycles(now time.Time, count int) []TimeRange {
	if count <= 0 {
		return nil
	}
	month, year := CycleForDate(now)
	idx := monthIndex(year, month)

	cycles := make([]TimeRange, 0, count)
	for i := 0; i < count; i++ {
		y, m := fromMonthIndex(idx - i)
		cycles = append(cycles, Cycle(m, y, now.Location()))
	}
	return cycles
}

// CycleFromValue parses a "cycle-YYYY-M" selection value.
func CycleFromValue(value string, loc *time.Location) (TimeRange, bool) {
	rest, ok := strings.CutPrefix(value, cycleValuePrefix)
	if !ok {
		return TimeRange{}, false
	}
	yearStr, monthStr, ok := strings.Cut(rest, "-")
	if !ok {
		return TimeRange{}, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year <= 0 {
		return TimeRange{}, false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return TimeRange{}, false
	}
	return Cycle(time.Month(month), year, loc), true
}
