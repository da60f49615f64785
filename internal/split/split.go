// Package split divides a period's profit between the driver and the owner.
package split

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Config holds the split formula parameters.
type Config struct {
	// DriverPercentage is the driver's fraction of profit, e.g. 0.2923.
	DriverPercentage decimal.Decimal `json:"driver_percentage"`
	// DriverStipend is a fixed amount the owner pays the driver per period.
	DriverStipend decimal.Decimal `json:"driver_stipend"`
}

var (
	defaultPercentage = decimal.RequireFromString("0.2923")
	defaultStipend    = decimal.NewFromInt(3_000_000)
	hundred           = decimal.NewFromInt(100)
)

// DefaultConfig returns the standard 29.23% share plus a 3,000,000 stipend.
func DefaultConfig() Config {
	return Config{DriverPercentage: defaultPercentage, DriverStipend: defaultStipend}
}

// Validate rejects a percentage outside [0, 1] and a negative stipend.
func (c Config) Validate() error {
	if c.DriverPercentage.IsNegative() || c.DriverPercentage.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("driver percentage must be between 0%% and 100%%, got %s%%", c.DriverPercentage.Mul(hundred).String())
	}
	if c.DriverStipend.IsNegative() {
		return fmt.Errorf("driver stipend must not be negative")
	}
	return nil
}

// Result is the outcome of splitting one period.
type Result struct {
	Profit            decimal.Decimal `json:"profit"`
	DriverShare       decimal.Decimal `json:"driver_share"`
	DriverTotalIncome decimal.Decimal `json:"driver_total_income"`
	OwnerShare        decimal.Decimal `json:"owner_share"`
	OwnerTotalIncome  decimal.Decimal `json:"owner_total_income"`
}

// Split applies cfg to the period totals. Negative profit is split the same
// way and nothing is clamped, so both shares may be negative and the owner's
// total income can drop below zero once the stipend is paid.
//
// DriverShare+OwnerShare and DriverTotalIncome+OwnerTotalIncome both equal
// Profit exactly.
func Split(totalRevenue, totalExpense decimal.Decimal, cfg Config) Result {
	profit := totalRevenue.Sub(totalExpense)
	driverShare := profit.Mul(cfg.DriverPercentage)
	ownerShare := profit.Sub(driverShare)

	return Result{
		Profit:            profit,
		DriverShare:       driverShare,
		DriverTotalIncome: driverShare.Add(cfg.DriverStipend),
		OwnerShare:        ownerShare,
		OwnerTotalIncome:  ownerShare.Sub(cfg.DriverStipend),
	}
}

// ParsePercent reads "29.23", "29,23" or "29.23%" and returns the fraction
// 0.2923.
func ParsePercent(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "%"))
	raw = strings.ReplaceAll(raw, ",", ".")
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid percentage %q", s)
	}
	return d.Div(hundred), nil
}

// FormatPercent renders a fraction as a percentage, e.g. "29.23%".
func FormatPercent(fraction decimal.Decimal) string {
	return fraction.Mul(hundred).String() + "%"
}
