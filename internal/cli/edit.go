package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ngthgila/Taxi/internal/record"
	"github.com/spf13/cobra"
)

var editCmd = LeafCommand{
	Use:     "edit <id>",
	Short:   "Edit a record",
	Example: "  taxiledger edit 3f2a9c1e --expense 250k --expense-note \"xăng, rửa xe\"",
	Args:    cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "skip confirmation prompts"},
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
		return runEdit(cmd, dataDir, ledgerFlag, args[0], readRecordFlags(cmd), pk, time.Now)
	},
}.Build()

func runEdit(cmd *cobra.Command, dataDir, ledgerFlag, ref string, f recordFlags, pk PromptKit, nowFn func() time.Time) error {
	lc, err := ResolveLedgerContext(dataDir, ledgerFlag)
	if err != nil {
		return err
	}
	defer func() { _ = lc.Close() }()

	ctx := context.Background()
	current, err := record.Resolve(ctx, lc.Store, lc.Ledger.ID, ref)
	if err != nil {
		return storeError(err)
	}

	if f == (recordFlags{}) {
		if f.Date, err = pk.promptOr("Date", current.Date); err != nil {
			return err
		}
		if f.Revenue, err = pk.promptOr("Revenue (VND)", current.Revenue.String()); err != nil {
			return err
		}
		if f.Expense, err = pk.promptOr("Expense (VND)", current.Expense.String()); err != nil {
			return err
		}
		note, err := pk.promptOr("Expense note", current.ExpenseNote)
		if err != nil {
			return err
		}
		f.ExpenseNote = &note
		general, err := pk.promptOr("Note", current.GeneralNote)
		if err != nil {
			return err
		}
		f.Note = &general
	}

	updated, err := f.apply(current, nowFn().In(lc.Location))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if updated.Date != current.Date {
		records, err := lc.Store.List(ctx, lc.Ledger.ID)
		if err != nil {
			return storeError(err)
		}
		if len(record.OnDate(records, updated.Date)) > 0 {
			_, _ = fmt.Fprintf(w, "%s\n", Warning(fmt.Sprintf("a record for %s already exists", displayDate(updated.Date))))
			ok := false
			if pk.Confirm != nil {
				if ok, err = pk.Confirm("Move this record there anyway?"); err != nil {
					return err
				}
			}
			if !ok {
				_, _ = fmt.Fprintln(w, "cancelled")
				return nil
			}
		}
	}

	saved, err := lc.Store.Save(ctx, lc.Ledger.ID, updated)
	if err != nil {
		return storeError(err)
	}

	_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("updated record %s for %s",
		Silent(record.ShortID(saved.ID)), Primary(displayDate(saved.Date)))))
	printRecordDetail(w, saved)
	return nil
}
