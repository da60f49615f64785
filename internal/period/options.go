package period

import (
	"fmt"
	"time"
)

// DefaultCycleCount is how many pay cycles the picker offers.
const DefaultCycleCount = 6

// Group is a labelled set of ranges shown together in a picker.
type Group struct {
	Label   string
	Options []TimeRange
}

// GenerateTimeOptions builds the grouped picker contents relative to now:
// recent pay cycles, then this/last week, then this/last year.
func GenerateTimeOptions(now time.Time) []Group {
	return []Group{
		{Label: "Theo Kỳ Lương", Options: GenerateCycles(now, DefaultCycleCount)},
		{Label: "Theo Tuần", Options: []TimeRange{ThisWeek(now), LastWeek(now)}},
		{Label: "Theo Năm", Options: []TimeRange{ThisYear(now), LastYear(now)}},
	}
}

// Flatten returns the options of all groups in display order.
func Flatten(groups []Group) []TimeRange {
	var all []TimeRange
	for _, g := range groups {
		all = append(all, g.Options...)
	}
	return all
}

// Find returns the option with the given value. When no option matches it
// returns the first option and false; with no options at all it returns the
// zero range.
func Find(groups []Group, value string) (TimeRange, bool) {
	all := Flatten(groups)
	for _, r := range all {
		if r.Value == value {
			return r, true
		}
	}
	if len(all) == 0 {
		return TimeRange{}, false
	}
	return all[0], false
}

// Lookup resolves a selection value. Empty selects the default option; values
// not among the options may still name any pay cycle ("cycle-2025-12").
func Lookup(groups []Group, value string, loc *time.Location) (TimeRange, error) {
	r, ok := Find(groups, value)
	if ok || value == "" {
		if r.Value == "" {
			return TimeRange{}, fmt.Errorf("no time ranges available")
		}
		return r, nil
	}
	if c, ok := CycleFromValue(value, loc); ok {
		return c, nil
	}
	return TimeRange{}, fmt.Errorf("unknown range '%s'", value)
}

// IndexOf returns the position of value in the flattened options, or -1.
func IndexOf(groups []Group, value string) int {
	for i, r := range Flatten(groups) {
		if r.Value == value {
			return i
		}
	}
	return -1
}
