package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ngthgila/Taxi/internal/record"
	"github.com/ngthgila/Taxi/internal/view"
	"github.com/spf13/cobra"
)

const (
	idColWidth    = 8
	dateColWidth  = 14
	moneyColWidth = 14
)

var listCmd = LeafCommand{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the records of a time range, newest first",
	Example: "  taxiledger list\n  taxiledger list --range week-last",
	BoolFlags: []BoolFlag{
		{Name: "no-gaps", Usage: "do not list days without a record"},
	},
	Range: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := DataDir()
		if err != nil {
			return err
		}

		ledgerFlag, _ := cmd.Flags().GetString("ledger")
		rangeValue, _ := cmd.Flags().GetString("range")
		noGaps, _ := cmd.Flags().GetBool("no-gaps")

		return runList(cmd, dataDir, ledgerFlag, rangeValue, noGaps, time.Now)
	},
}.Build()

func runList(cmd *cobra.Command, dataDir, ledgerFlag, rangeValue string, noGaps bool, nowFn func() time.Time) error {
	lc, err := ResolveLedgerContext(dataDir, ledgerFlag)
	if err != nil {
		return err
	}
	defer func() { _ = lc.Close() }()

	s, err := lc.LoadState(context.Background(), nowFn(), rangeValue)
	if err != nil {
		return storeError(err)
	}
	snap := view.Derive(s)

	w := cmd.OutOrStdout()
	printRangeHeader(w, lc.Ledger.Code, snap)
	if len(snap.Filtered) == 0 {
		_, _ = fmt.Fprintln(w, Silent("no records in this range"))
	} else {
		_, _ = fmt.Fprint(w, renderRecordTable(snap.Filtered))
	}

	if !noGaps {
		printMissing(w, snap.Missing)
	}
	return nil
}

func printRangeHeader(w io.Writer, ledgerCode string, snap view.Snapshot) {
	_, _ = fmt.Fprintf(w, "%s %s %s\n\n",
		Info(snap.Range.Label), Silent("("+snap.Range.SubLabel+")"),
		Silent(fmt.Sprintf("· %d ngày · %s", snap.Range.Days(), ledgerCode)))
}

// renderRecordTable renders records in the given order with a totals row.
func renderRecordTable(records []record.Record) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(
		padRight("ID", idColWidth) + "  " +
			padRight("Ngày", dateColWidth) + "  " +
			padLeft("Doanh thu", moneyColWidth) + "  " +
			padLeft("Chi phí", moneyColWidth) + "  " +
			padLeft("Lợi nhuận", moneyColWidth) + "  " +
			"Ghi chú"))
	b.WriteString("\n")

	for _, r := range records {
		b.WriteString(Silent(padRight(record.ShortID(r.ID), idColWidth)))
		b.WriteString("  ")
		b.WriteString(padRight(displayDate(r.Date), dateColWidth))
		b.WriteString("  ")
		b.WriteString(Revenue(padLeft(record.FormatVND(r.Revenue), moneyColWidth)))
		b.WriteString("  ")
		b.WriteString(Expense(padLeft(record.FormatVND(r.Expense), moneyColWidth)))
		b.WriteString("  ")
		b.WriteString(padLeft(record.FormatVND(r.Profit()), moneyColWidth))
		if n := recordNotes(r); n != "" {
			b.WriteString("  ")
			b.WriteString(Silent(n))
		}
		b.WriteString("\n")
	}

	stats := record.ComputeStats(records)
	b.WriteString(strings.Repeat("-", idColWidth+dateColWidth+3*moneyColWidth+8))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(
		padRight(fmt.Sprintf("%d ngày", stats.TotalDays), idColWidth+dateColWidth+2) + "  " +
			padLeft(record.FormatVND(stats.TotalRevenue), moneyColWidth) + "  " +
			padLeft(record.FormatVND(stats.TotalExpense), moneyColWidth) + "  " +
			padLeft(record.FormatVND(stats.Profit()), moneyColWidth)))
	b.WriteString("\n")
	return b.String()
}

func recordNotes(r record.Record) string {
	var parts []string
	if r.ExpenseNote != "" {
		parts = append(parts, "chi: "+r.ExpenseNote)
	}
	if r.GeneralNote != "" {
		parts = append(parts, r.GeneralNote)
	}
	return strings.Join(parts, "; ")
}

// printMissing lists days without a record, each with the command that
// fills it in.
func printMissing(w io.Writer, missing []string) {
	if len(missing) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "\n%s\n", Warning(fmt.Sprintf("Missing %d day(s):", len(missing))))
	for _, d := range missing {
		_, _ = fmt.Fprintf(w, "  %s  %s\n", padRight(displayDate(d), dateColWidth), Silent("taxiledger add --date "+d))
	}
}
