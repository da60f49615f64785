package record

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var vndPrinter = message.NewPrinter(language.Vietnamese)

// groupedAmount matches a whole amount, either bare digits or digits in
// groups of three.
var groupedAmount = regexp.MustCompile(`^(\d+|\d{1,3}([.,_ ]\d{3})+)$`)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
)

// ParseAmount parses a user supplied amount in whole currency units.
// Group separators ("1.500.000", "1,500,000", "1 500 000") are accepted, as
// are the shorthand suffixes "k" (thousand) and "tr"/"m" (million), which may
// carry a fractional part ("1.5tr"). Plain amounts have no fractional part,
// so "1.5" is rejected rather than read as 15. Empty input is zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	raw = strings.TrimSuffix(raw, "đ")
	raw = strings.TrimSuffix(raw, "₫")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}

	multiplier := decimal.NewFromInt(1)
	switch {
	case strings.HasSuffix(raw, "tr"):
		multiplier, raw = million, strings.TrimSuffix(raw, "tr")
	case strings.HasSuffix(raw, "m"):
		multiplier, raw = million, strings.TrimSuffix(raw, "m")
	case strings.HasSuffix(raw, "k"):
		multiplier, raw = thousand, strings.TrimSuffix(raw, "k")
	}
	raw = strings.TrimSpace(raw)

	var digits string
	if multiplier.Equal(decimal.NewFromInt(1)) {
		if !groupedAmount.MatchString(raw) {
			return decimal.Zero, fmt.Errorf("invalid amount %q", s)
		}
		digits = strings.NewReplacer(".", "", ",", "", " ", "", "_", "").Replace(raw)
	} else {
		digits = strings.ReplaceAll(raw, ",", ".")
	}

	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative")
	}
	return d.Mul(multiplier).Round(0), nil
}

// FormatVND renders d rounded to whole đồng with vi-VN grouping,
// e.g. "1.753.800 ₫".
func FormatVND(d decimal.Decimal) string {
	return vndPrinter.Sprintf("%d ₫", d.Round(0).IntPart())
}
