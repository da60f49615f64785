package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ngthgila/Taxi/internal/period"
	"github.com/ngthgila/Taxi/internal/record"
	"github.com/ngthgila/Taxi/internal/view"
	"github.com/shopspring/decimal"
)

const (
	recentRows    = 5
	missingShown  = 7
	chartDateWide = 6
)

func (m dashboardModel) View() string {
	snap := view.Derive(m.state)

	pos := "historical cycle"
	if i := m.state.Index(); i >= 0 {
		pos = fmt.Sprintf("%d/%d", i+1, len(period.Flatten(m.state.Groups)))
	}
	footer := fmt.Sprintf("%s  |  ←/→ switch range  |  0 current cycle  |  q quit", pos)
	if m.footerMsg != "" {
		footer = m.footerMsg + "  |  " + footer
	}

	return renderDashboard(snap, m.ledgerCode, m.termWidth, m.maxChartRows(), footer)
}

// renderDashboard lays out one snapshot. chartRows limits the chart to its
// newest points; zero shows them all. An empty footer is omitted.
func renderDashboard(snap view.Snapshot, ledgerCode string, width, chartRows int, footer string) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Sổ thu chi · " + ledgerCode))
	b.WriteString("\n")
	b.WriteString(Info("◀ " + snap.Range.Label + " ▶"))
	b.WriteString(" ")
	b.WriteString(Silent("(" + snap.Range.SubLabel + ")"))
	b.WriteString("\n")

	b.WriteString(renderCards(snap))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("Biểu đồ thu chi"))
	b.WriteString("\n")
	b.WriteString(renderChart(snap, width, chartRows))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("Gần đây (%d/%d)", min(recentRows, len(snap.Filtered)), len(snap.Filtered))))
	b.WriteString("\n")
	if len(snap.Filtered) == 0 {
		b.WriteString(Silent("no records in this range"))
		b.WriteString("\n")
	} else {
		b.WriteString(renderRecordTable(snap.Filtered[:min(recentRows, len(snap.Filtered))]))
	}

	if len(snap.Missing) > 0 {
		b.WriteString("\n")
		b.WriteString(Warning(fmt.Sprintf("Missing %d day(s): ", len(snap.Missing))))
		shown := snap.Missing[:min(missingShown, len(snap.Missing))]
		labels := make([]string, len(shown))
		for i, d := range shown {
			labels[i] = displayDate(d)
		}
		b.WriteString(strings.Join(labels, ", "))
		if len(snap.Missing) > len(shown) {
			b.WriteString(Silent(fmt.Sprintf(" and %d more", len(snap.Missing)-len(shown))))
		}
		b.WriteString("\n")
	}

	if footer != "" {
		b.WriteString("\n")
		b.WriteString(footerStyle.Render(footer))
		b.WriteString("\n")
	}
	return b.String()
}

func renderCards(snap view.Snapshot) string {
	card := func(title string, v decimal.Decimal, style func(string) string) string {
		return cardStyle.Render(Silent(title) + "\n" + style(record.FormatVND(v)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Doanh thu", snap.Stats.TotalRevenue, Revenue),
		card("Chi phí", snap.Stats.TotalExpense, Expense),
		card("Lợi nhuận", snap.Stats.Profit(), Primary),
		card("Thu nhập tài xế", snap.Split.DriverTotalIncome, Text),
		card("Thu nhập chủ xe", snap.Split.OwnerTotalIncome, Text),
	)
}

// renderChart draws one bar per record: the red part is the expense, the
// green part what is left as profit.
func renderChart(snap view.Snapshot, width, maxRows int) string {
	if !snap.Chartable() {
		return Silent(fmt.Sprintf("not enough data for a chart (need at least %d records)", record.MinChartPoints)) + "\n"
	}

	points := snap.Series
	if maxRows > 0 && len(points) > maxRows {
		points = points[len(points)-maxRows:]
	}

	barWidth := width - chartDateWide - 2*moneyColWidth - 6
	if barWidth < 10 {
		barWidth = 10
	}

	peak := decimal.Zero
	for _, p := range points {
		peak = decimal.Max(peak, p.Revenue, p.Expense)
	}

	var b strings.Builder
	for _, p := range points {
		rev := scaleBar(p.Revenue, peak, barWidth)
		exp := scaleBar(p.Expense, peak, barWidth)
		green := rev - exp
		if green < 0 {
			green = 0
		}

		b.WriteString(Silent(padRight(shortDate(p.Date), chartDateWide)))
		b.WriteString(" ")
		b.WriteString(Expense(strings.Repeat("█", exp)))
		b.WriteString(Revenue(strings.Repeat("█", green)))
		b.WriteString(strings.Repeat(" ", barWidth-exp-green))
		b.WriteString(" ")
		b.WriteString(Revenue(padLeft(record.FormatVND(p.Revenue), moneyColWidth)))
		b.WriteString(" ")
		b.WriteString(Expense(padLeft(record.FormatVND(p.Expense), moneyColWidth)))
		b.WriteString("\n")
	}
	return b.String()
}

// scaleBar maps v onto 0..width cells relative to peak.
func scaleBar(v, peak decimal.Decimal, width int) int {
	if peak.IsZero() || v.IsNegative() {
		return 0
	}
	n := int(v.Div(peak).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
	if n > width {
		return width
	}
	return n
}

// shortDate turns "2026-10-14" into "14/10".
func shortDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "/" + parts[1]
}
