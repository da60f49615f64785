package record

import "github.com/ngthgila/Taxi/internal/period"

// FilterByRange returns the records whose date falls within r, both ends
// inclusive, comparing whole days only. Input order is preserved and records
// with an unparseable date are dropped. The result never aliases records.
func FilterByRange(records []Record, r period.TimeRange) []Record {
	loc := r.Start.Location()
	filtered := make([]Record, 0, len(records))
	for _, rec := range records {
		d, err := rec.Day(loc)
		if err != nil {
			continue
		}
		if r.Contains(d) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
