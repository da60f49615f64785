package period

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the storage format of a record date.
const DayLayout = "2006-01-02"

// lastInstant is the time-of-day used for inclusive range ends.
const lastInstant = 999 * time.Millisecond

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 on t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(lastInstant), t.Location())
}

// FormatDay formats t as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD date at midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DayLayout, strings.TrimSpace(s), loc)
}

// ParseDate parses a user supplied date expression relative to now.
// Supports: "today", "yesterday", "hôm nay", "hôm qua", "2026-03-01",
// "01/03/2026" and "01/03" (current year).
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	switch s {
	case "", "today", "hôm nay":
		return StartOfDay(now), nil
	case "yesterday", "hôm qua":
		return StartOfDay(now).AddDate(0, 0, -1), nil
	}

	layouts := []string{
		DayLayout,
		"02/01/2006",
		"2/1/2006",
		"02/01",
		"2/1",
	}

	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, now.Location())
		if err != nil {
			continue
		}
		if !strings.Contains(layout, "2006") {
			month, day := t.Month(), t.Day()
			t = time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location())
			// 29/02 outside a leap year would roll over into March
			if t.Month() != month || t.Day() != day {
				return time.Time{}, fmt.Errorf("unrecognized date %q", s)
			}
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// shortWeekdays are the vi-VN abbreviations, Sunday first.
var shortWeekdays = [...]string{"CN", "T2", "T3", "T4", "T5", "T6", "T7"}

// DisplayDay renders t the way the ledger lists it, e.g. "T6, 16/10/2026".
func DisplayDay(t time.Time) string {
	return fmt.Sprintf("%s, %s", shortWeekdays[t.Weekday()], t.Format("02/01/2006"))
}
