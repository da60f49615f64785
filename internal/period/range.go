package period

import (
	"fmt"
	"time"
)

// Kind identifies the generator family a TimeRange came from.
type Kind string

const (
	KindCycle Kind = "cycle"
	KindWeek  Kind = "week"
	KindYear  Kind = "year"
)

// TimeRange is a selectable, inclusive date window.
// Start and End are concrete instants; End is the last millisecond of its day.
type TimeRange struct {
	Label    string
	SubLabel string
	Value    string
	Start    time.Time
	End      time.Time
	Kind     Kind

	// Month and Year are set for KindCycle only.
	Month time.Month
	Year  int
}

// Contains reports whether the calendar day of t falls within the range.
// Time of day is ignored on t and on both boundaries.
func (r TimeRange) Contains(t time.Time) bool {
	d := StartOfDay(t.In(r.Start.Location()))
	if d.Before(StartOfDay(r.Start)) {
		return false
	}
	return !d.After(EndOfDay(r.End))
}

// Days returns the number of calendar days covered by the range.
func (r TimeRange) Days() int {
	start := StartOfDay(r.Start)
	end := StartOfDay(r.End.In(r.Start.Location()))
	return daysBetween(start, end) + 1
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s (%s)", r.Label, r.SubLabel)
}

// subLabel renders "dd/MM - dd/MM/yyyy".
func subLabel(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", start.Format("02/01"), end.Format("02/01/2006"))
}

// daysBetween returns the whole calendar days from a to b using UTC dates,
// so DST transitions in the source location cannot skew the count.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
