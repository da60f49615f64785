package period

import (
	"fmt"
	"time"
)

// weekStart returns Monday 00:00 of the week containing t.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

func week(label, value string, ref time.Time) TimeRange {
	start := weekStart(ref)
	end := EndOfDay(start.AddDate(0, 0, 6))
	return TimeRange{
		Label:    label,
		SubLabel: subLabel(start, end),
		Value:    value,
		Start:    start,
		End:      end,
		Kind:     KindWeek,
	}
}

// ThisWeek is the Monday-start week containing now.
func ThisWeek(now time.Time) TimeRange {
	return week("Tuần Này", "week-this", now)
}

// LastWeek is the Monday-start week before the one containing now.
func LastWeek(now time.Time) TimeRange {
	return week("Tuần Trước", "week-last", now.AddDate(0, 0, -7))
}

func year(value string, y int, loc *time.Location) TimeRange {
	start := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	end := EndOfDay(time.Date(y, time.December, 31, 0, 0, 0, 0, loc))
	return TimeRange{
		Label:    fmt.Sprintf("Năm %d", y),
		SubLabel: fmt.Sprintf("01/01 - 31/12/%d", y),
		Value:    value,
		Start:    start,
		End:      end,
		Kind:     KindYear,
	}
}

// ThisYear is the calendar year containing now.
func ThisYear(now time.Time) TimeRange {
	return year("year-this", now.Year(), now.Location())
}

// LastYear is the calendar year before the one containing now.
func LastYear(now time.Time) TimeRange {
	return year("year-last", now.Year()-1, now.Location())
}
