package record

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Stats aggregates a set of records.
type Stats struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	TotalDays    int             `json:"total_days"`
}

// Profit is total revenue minus total expense.
func (s Stats) Profit() decimal.Decimal {
	return s.TotalRevenue.Sub(s.TotalExpense)
}

// ComputeStats sums revenue and expense and counts the records.
func ComputeStats(records []Record) Stats {
	s := Stats{TotalRevenue: decimal.Zero, TotalExpense: decimal.Zero}
	for _, r := range records {
		s.TotalRevenue = s.TotalRevenue.Add(r.Revenue)
		s.TotalExpense = s.TotalExpense.Add(r.Expense)
	}
	s.TotalDays = len(records)
	return s
}

// Point is one sample of the revenue/expense chart.
type Point struct {
	Date    string
	Revenue decimal.Decimal
	Expense decimal.Decimal
}

// MinChartPoints is the smallest series worth drawing.
const MinChartPoints = 2

// DailySeries returns one chart point per record, oldest first.
func DailySeries(records []Record) []Point {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	points := make([]Point, len(sorted))
	for i, r := range sorted {
		points[i] = Point{Date: r.Date, Revenue: r.Revenue, Expense: r.Expense}
	}
	return points
}

// SortByDateDesc orders records newest date first; records sharing a date
// are ordered by creation time, newest first.
func SortByDateDesc(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
