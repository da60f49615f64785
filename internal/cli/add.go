package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ngthgila/Taxi/internal/period"
	"github.com/ngthgila/Taxi/internal/record"
	"github.com/spf13/cobra"
)

var recordStrFlags = []StringFlag{
	{Name: "date", Usage: "day of the record (YYYY-MM-DD, dd/mm[/yyyy], today, yesterday)"},
	{Name: "revenue", Usage: "revenue in VND (e.g. 1500000, 1.500.000, 1.5tr, 800k)"},
	{Name: "expense", Usage: "expense in VND"},
	{Name: "expense-note", Usage: "what the expense was for"},
	{Name: "note", Usage: "general note"},
}

// recordFlags holds the record fields given on the command line. Nil notes
// were not given.
type recordFlags struct {
	Date        string
	Revenue     string
	Expense     string
	ExpenseNote *string
	Note        *string
}

func readRecordFlags(cmd *cobra.Command) recordFlags {
	f := recordFlags{}
	f.Date, _ = cmd.Flags().GetString("date")
	f.Revenue, _ = cmd.Flags().GetString("revenue")
	f.Expense, _ = cmd.Flags().GetString("expense")
	if cmd.Flags().Changed("expense-note") {
		v, _ := cmd.Flags().GetString("expense-note")
		f.ExpenseNote = &v
	}
	if cmd.Flags().Changed("note") {
		v, _ := cmd.Flags().GetString("note")
		f.Note = &v
	}
	return f
}

var addCmd = LeafCommand{
	Use:   "add",
	Short: "Record a day's revenue and expense",
	Example: "  taxiledger add --revenue 1.5tr --expense 200k --expense-note \"xăng\"\n" +
		"  taxiledger add --date 2026-10-14 --revenue 1200000",
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "overwrite an existing record for the same day without asking"},
	},
	StrFlags: recordStrFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := DataDir()
		if err != nil {
			return err
		}

		ledgerFlag, _ := cmd.Flags().GetString("ledger")
		yesFlag, _ := cmd.Flags().GetBool("yes")

		pk := NewPromptKit()
		if yesFlag {
			pk.Confirm = AlwaysYes()
		}
		return runAdd(cmd, dataDir, ledgerFlag, readRecordFlags(cmd), pk, time.Now)
	},
}.Build()

func runAdd(cmd *cobra.Command, dataDir, ledgerFlag string, f recordFlags, pk PromptKit, nowFn func() time.Time) error {
	lc, err := ResolveLedgerContext(dataDir, ledgerFlag)
	if err != nil {
		return err
	}
	defer func() { _ = lc.Close() }()

	now := nowFn().In(lc.Location)

	// prompt only when nothing was given on the command line
	if f.Date == "" && f.Revenue == "" && f.Expense == "" {
		if f.Date, err = pk.promptOr("Date", "today"); err != nil {
			return err
		}
		if f.Revenue, err = pk.promptOr("Revenue (VND)", ""); err != nil {
			return err
		}
		if f.Expense, err = pk.promptOr("Expense (VND)", "0"); err != nil {
			return err
		}
		if f.ExpenseNote == nil && f.Expense != "" && f.Expense != "0" {
			note, err := pk.promptOr("Expense note", "")
			if err != nil {
				return err
			}
			f.ExpenseNote = &note
		}
	}

	r, err := f.apply(record.Record{}, now)
	if err != nil {
		return err
	}

	ctx := context.Background()
	records, err := lc.Store.List(ctx, lc.Ledger.ID)
	if err != nil {
		return storeError(err)
	}

	w := cmd.OutOrStdout()
	if existing := record.OnDate(records, r.Date); len(existing) > 0 {
		_, _ = fmt.Fprintf(w, "%s\n", Warning(fmt.Sprintf("a record for %s already exists:", displayDate(r.Date))))
		printRecordDetail(w, existing[0])

		ok := false
		if pk.Confirm != nil {
			if ok, err = pk.Confirm("Overwrite it?"); err != nil {
				return err
			}
		}
		if !ok {
			_, _ = fmt.Fprintln(w, "cancelled")
			return nil
		}
		r.ID = existing[0].ID
	}

	saved, err := lc.Store.Save(ctx, lc.Ledger.ID, r)
	if err != nil {
		return storeError(err)
	}

	verb := "added"
	if r.ID != "" {
		verb = "updated"
	}
	_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("%s record %s for %s in '%s'",
		verb, Silent(record.ShortID(saved.ID)), Primary(displayDate(saved.Date)), Primary(lc.Ledger.Code))))
	printRecordDetail(w, saved)
	if day, err := period.ParseDay(saved.Date, lc.Location); err == nil && lc.RestDays.IsRestDay(day) {
		_, _ = fmt.Fprintf(w, "%s\n", Silent(fmt.Sprintf("%s is a planned rest day (%s)", displayDate(saved.Date), lc.RestDays)))
	}
	return nil
}

// apply returns base with the given fields applied.
func (f recordFlags) apply(base record.Record, now time.Time) (record.Record, error) {
	r := base

	if f.Date != "" || r.Date == "" {
		d, err := period.ParseDate(f.Date, now)
		if err != nil {
			return record.Record{}, err
		}
		r.Date = period.FormatDay(d)
	}
	if f.Revenue != "" {
		v, err := record.ParseAmount(f.Revenue)
		if err != nil {
			return record.Record{}, fmt.Errorf("revenue: %w", err)
		}
		r.Revenue = v
	}
	if f.Expense != "" {
		v, err := record.ParseAmount(f.Expense)
		if err != nil {
			return record.Record{}, fmt.Errorf("expense: %w", err)
		}
		r.Expense = v
	}
	if f.ExpenseNote != nil {
		r.ExpenseNote = *f.ExpenseNote
	}
	if f.Note != nil {
		r.GeneralNote = *f.Note
	}
	return r, nil
}

func displayDate(date string) string {
	d, err := period.ParseDay(date, time.UTC)
	if err != nil {
		return date
	}
	return period.DisplayDay(d)
}

func printRecordDetail(w io.Writer, r record.Record) {
	_, _ = fmt.Fprintf(w, "  revenue: %s\n", Revenue(record.FormatVND(r.Revenue)))
	_, _ = fmt.Fprintf(w, "  expense: %s\n", Expense(record.FormatVND(r.Expense)))
	_, _ = fmt.Fprintf(w, "  profit:  %s\n", Primary(record.FormatVND(r.Profit())))
	if r.ExpenseNote != "" {
		_, _ = fmt.Fprintf(w, "  expense note: %s\n", Text(r.ExpenseNote))
	}
	if r.GeneralNote != "" {
		_, _ = fmt.Fprintf(w, "  note: %s\n", Text(r.GeneralNote))
	}
}
