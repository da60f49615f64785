package record

import (
	"sort"
	"time"

	"github.com/ngthgila/Taxi/internal/period"
)

// FindGaps returns every calendar date strictly between the earliest and the
// latest of dates that is not itself in dates, ascending. Dates are
// YYYY-MM-DD strings; unparseable ones are ignored. Fewer than two dates
// yield no gaps.
func FindGaps(dates []string) []string {
	if len(dates) < 2 {
		return []string{}
	}

	sorted := make([]string, len(dates))
	copy(sorted, dates)
	sort.Strings(sorted)

	days := make([]time.Time, 0, len(sorted))
	for _, s := range sorted {
		d, err := period.ParseDay(s, time.UTC)
		if err != nil {
			continue
		}
		days = append(days, d)
	}

	gaps := []string{}
	for i := 0; i+1 < len(days); i++ {
		current, next := days[i], days[i+1]
		diff := int(next.Sub(current).Hours() / 24)
		for j := 1; j < diff; j++ {
			gaps = append(gaps, period.FormatDay(current.AddDate(0, 0, j)))
		}
	}
	return gaps
}

// GapPolicy decides for which range kinds missing dates are reported.
type GapPolicy struct {
	Kinds map[period.Kind]bool
}

// DefaultGapPolicy reports gaps for cycles and weeks but not for years,
// where a full year of prompts would drown the listing.
func DefaultGapPolicy() GapPolicy {
	return GapPolicy{Kinds: map[period.Kind]bool{
		period.KindCycle: true,
		period.KindWeek:  true,
		period.KindYear:  false,
	}}
}

// Enabled reports whether gap detection runs for ranges of kind k.
func (p GapPolicy) Enabled(k period.Kind) bool {
	return p.Kinds[k]
}

// With returns a copy of p with kind k switched on or off.
func (p GapPolicy) With(k period.Kind, enabled bool) GapPolicy {
	kinds := make(map[period.Kind]bool, len(p.Kinds)+1)
	for kind, v := range p.Kinds {
		kinds[kind] = v
	}
	kinds[k] = enabled
	return GapPolicy{Kinds: kinds}
}

// MissingDates filters records to r and reports the gaps between them when
// the policy allows r's kind.
func MissingDates(records []Record, r period.TimeRange, policy GapPolicy) []string {
	if !policy.Enabled(r.Kind) {
		return []string{}
	}
	return FindGaps(Dates(FilterByRange(records, r)))
}
