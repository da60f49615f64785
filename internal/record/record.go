package record

import (
	"fmt"
	"time"

	"github.com/ngthgila/Taxi/internal/period"
	"github.com/shopspring/decimal"
)

// Record is one day's takings for a ledger.
type Record struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Revenue     decimal.Decimal `json:"revenue"`
	Expense     decimal.Decimal `json:"expense"`
	ExpenseNote string          `json:"expense_note,omitempty"`
	GeneralNote string          `json:"general_note,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Profit is revenue minus expense for this record.
func (r Record) Profit() decimal.Decimal {
	return r.Revenue.Sub(r.Expense)
}

// Day parses the record date at midnight in loc.
func (r Record) Day(loc *time.Location) (time.Time, error) {
	return period.ParseDay(r.Date, loc)
}

// ValidationError reports input that can never be stored.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Validate checks the date format and that amounts are not negative.
func (r Record) Validate() error {
	if _, err := period.ParseDay(r.Date, time.UTC); err != nil {
		return invalid("invalid date '%s', expected YYYY-MM-DD", r.Date)
	}
	if r.Revenue.IsNegative() {
		return invalid("revenue must not be negative")
	}
	if r.Expense.IsNegative() {
		return invalid("expense must not be negative")
	}
	return nil
}

// Dates returns the date of every record, in input order.
func Dates(records []Record) []string {
	dates := make([]string, len(records))
	for i, r := range records {
		dates[i] = r.Date
	}
	return dates
}

// OnDate returns the records dated date, in input order.
func OnDate(records []Record, date string) []Record {
	var found []Record
	for _, r := range records {
		if r.Date == date {
			found = append(found, r)
		}
	}
	return found
}
