// Package restday describes a driver's planned days off so they are not
// reported as missing records.
package restday

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ngthgila/Taxi/internal/period"
	"github.com/teambition/rrule-go"
)

// anchor is the default DTSTART: Monday, 3 January 2000, UTC midnight.
// Interval rules ("every 2 weeks") count from it.
var anchor = time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC)

var everyNWeeks = regexp.MustCompile(`^every (\d+) weeks?$`)

// Rule is a parsed rest-day recurrence.
type Rule struct {
	text string
	rule *rrule.RRule
}

// Parse reads a natural language or raw RRULE recurrence. Empty input means
// no rest days and yields a nil rule.
func Parse(s string) (*Rule, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return nil, nil
	}

	opt, err := parseOption(strings.ToLower(text))
	if err != nil {
		return nil, err
	}
	if opt.Dtstart.IsZero() {
		opt.Dtstart = anchor
	}
	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("invalid rest days %q: %w", text, err)
	}
	return &Rule{text: text, rule: r}, nil
}

func parseOption(s string) (*rrule.ROption, error) {
	if strings.HasPrefix(s, "rrule:") || strings.HasPrefix(s, "freq=") {
		raw := strings.TrimPrefix(strings.ToUpper(s), "RRULE:")
		opt, err := rrule.StrToROption(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RRULE %q: %w", raw, err)
		}
		return opt, nil
	}

	switch s {
	case "every day", "daily":
		return &rrule.ROption{Freq: rrule.DAILY}, nil
	case "every weekday", "weekdays":
		return weekly(rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR), nil
	case "every weekend", "weekends", "cuối tuần":
		return weekly(rrule.SA, rrule.SU), nil
	case "every other week", "every second week":
		return &rrule.ROption{Freq: rrule.WEEKLY, Interval: 2}, nil
	}

	if m := everyNWeeks.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return &rrule.ROption{Freq: rrule.WEEKLY, Interval: n}, nil
	}

	// "every sunday", "every saturday and sunday", "thứ bảy, chủ nhật"
	names := strings.TrimPrefix(s, "every ")
	names = strings.ReplaceAll(names, " and ", ",")
	names = strings.ReplaceAll(names, " và ", ",")
	var days []rrule.Weekday
	for _, name := range strings.Split(names, ",") {
		wd, ok := weekdays[strings.TrimSpace(name)]
		if !ok {
			return nil, fmt.Errorf("unrecognized rest days %q", s)
		}
		days = append(days, wd)
	}
	return weekly(days...), nil
}

func weekly(days ...rrule.Weekday) *rrule.ROption {
	return &rrule.ROption{Freq: rrule.WEEKLY, Byweekday: days}
}

var weekdays = map[string]rrule.Weekday{
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
	"sunday":    rrule.SU,
	"thứ hai":   rrule.MO,
	"thứ ba":    rrule.TU,
	"thứ tư":    rrule.WE,
	"thứ năm":   rrule.TH,
	"thứ sáu":   rrule.FR,
	"thứ bảy":   rrule.SA,
	"chủ nhật":  rrule.SU,
}

// String returns the rule as the user wrote it.
func (r *Rule) String() string {
	if r == nil {
		return ""
	}
	return r.text
}

// RRule returns the RFC 5545 form of the rule.
func (r *Rule) RRule() string {
	if r == nil {
		return ""
	}
	return r.rule.String()
}

// Days returns every rest day between from and to, both inclusive, as
// YYYY-MM-DD.
func (r *Rule) Days(from, to time.Time) []string {
	if r == nil {
		return nil
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, time.UTC)

	var days []string
	for _, occ := range r.rule.Between(start, end, true) {
		days = append(days, period.FormatDay(occ))
	}
	return days
}

// IsRestDay reports whether the calendar day of t is a rest day.
func (r *Rule) IsRestDay(t time.Time) bool {
	return len(r.Days(t, t)) > 0
}

// Exclude returns gaps without the dates that fall on rest days. A nil rule
// returns gaps unchanged.
func (r *Rule) Exclude(gaps []string) []string {
	if r == nil || len(gaps) == 0 {
		return gaps
	}

	var first, last time.Time
	for _, g := range gaps {
		d, err := period.ParseDay(g, time.UTC)
		if err != nil {
			continue
		}
		if first.IsZero() || d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	if first.IsZero() {
		return gaps
	}

	rest := make(map[string]bool)
	for _, d := range r.Days(first, last) {
		rest[d] = true
	}

	kept := make([]string, 0, len(gaps))
	for _, g := range gaps {
		if !rest[g] {
			kept = append(kept, g)
		}
	}
	return kept
}
