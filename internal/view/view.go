// Package view holds the presentation state of a ledger and derives what a
// screen shows from it. Reduce is the only way the state changes.
package view

import (
	"time"

	"github.com/ngthgila/Taxi/internal/period"
	"github.com/ngthgila/Taxi/internal/record"
	"github.com/ngthgila/Taxi/internal/restday"
	"github.com/ngthgila/Taxi/internal/split"
)

// State is everything a ledger screen depends on.
type State struct {
	Groups   []period.Group
	Selected string
	Records  []record.Record
	Gaps     record.GapPolicy
	Split    split.Config
	RestDays *restday.Rule
}

// New returns a state over the time options generated for now, selecting
// the default range.
func New(now time.Time, gaps record.GapPolicy, cfg split.Config, rest *restday.Rule) State {
	groups := period.GenerateTimeOptions(now)
	first, _ := period.Find(groups, "")
	return State{
		Groups:   groups,
		Selected: first.Value,
		Gaps:     gaps,
		Split:    cfg,
		RestDays: rest,
	}
}

// Action is an event applied to a State by Reduce.
type Action interface {
	action()
}

// SelectRange selects a range by value.
type SelectRange struct{ Value string }

// NextRange moves to the following option, wrapping to the first.
type NextRange struct{}

// PrevRange moves to the preceding option, wrapping to the last.
type PrevRange struct{}

// RecordsLoaded replaces the ledger's records with a fresh snapshot.
type RecordsLoaded struct{ Records []record.Record }

func (SelectRange) action()   {}
func (NextRange) action()     {}
func (PrevRange) action()     {}
func (RecordsLoaded) action() {}

// Reduce returns the state that results from applying a to s. s is not
// modified.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SelectRange:
		s.Selected = resolve(s.Groups, a.Value)
	case NextRange:
		s.Selected = step(s.Groups, s.Selected, 1)
	case PrevRange:
		s.Selected = step(s.Groups, s.Selected, -1)
	case RecordsLoaded:
		records := make([]record.Record, len(a.Records))
		copy(records, a.Records)
		s.Records = records
	}
	return s
}

// resolve keeps listed values and historical cycles; anything else selects
// the first option.
func resolve(groups []period.Group, value string) string {
	r, ok := period.Find(groups, value)
	if ok {
		return r.Value
	}
	if _, ok := period.CycleFromValue(value, time.UTC); ok {
		return value
	}
	return r.Value
}

func step(groups []period.Group, current string, delta int) string {
	all := period.Flatten(groups)
	if len(all) == 0 {
		return current
	}
	i := period.IndexOf(groups, current)
	if i < 0 {
		return all[0].Value
	}
	n := len(all)
	return all[((i+delta)%n+n)%n].Value
}

// Index is the position of the selection among the options, or -1 for a
// historical cycle.
func (s State) Index() int {
	return period.IndexOf(s.Groups, s.Selected)
}

// Snapshot is everything derived from a State for display.
type Snapshot struct {
	Range    period.TimeRange
	Filtered []record.Record
	Missing  []string
	Stats    record.Stats
	Split    split.Result
	Series   []record.Point
}

// Derive computes the snapshot for s.
func Derive(s State) Snapshot {
	r, err := period.Lookup(s.Groups, s.Selected, location(s.Groups))
	if err != nil {
		return Snapshot{Missing: []string{}, Filtered: []record.Record{}}
	}

	filtered := record.FilterByRange(s.Records, r)
	record.SortByDateDesc(filtered)

	stats := record.ComputeStats(filtered)
	missing := s.RestDays.Exclude(record.MissingDates(filtered, r, s.Gaps))

	return Snapshot{
		Range:    r,
		Filtered: filtered,
		Missing:  missing,
		Stats:    stats,
		Split:    split.Split(stats.TotalRevenue, stats.TotalExpense, s.Split),
		Series:   record.DailySeries(filtered),
	}
}

func location(groups []period.Group) *time.Location {
	all := period.Flatten(groups)
	if len(all) == 0 {
		return time.Local
	}
	return all[0].Start.Location()
}

// Chartable reports whether the snapshot has enough points for a chart.
func (s Snapshot) Chartable() bool {
	return len(s.Series) >= record.MinChartPoints
}
