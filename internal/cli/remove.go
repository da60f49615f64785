package cli

import (
	"context"
	"fmt"

	"github.com/ngthgila/Taxi/internal/record"
	"github.com/spf13/cobra"
)

var removeCmd = LeafCommand{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a record",
	Args:    cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := DataDir()
		if err != nil {
			return err
		}

		ledgerFlag, _ := cmd.Flags().GetString("ledger")
		yesFlag, _ := cmd.Flags().GetBool("yes")

		var confirm ConfirmFunc
		if yesFlag {
			confirm = AlwaysYes()
		} else {
			confirm = NewConfirmFunc()
		}

		return runRemove(cmd, dataDir, ledgerFlag, args[0], confirm)
	},
}.Build()

func runRemove(cmd *cobra.Command, dataDir, ledgerFlag, ref string, confirm ConfirmFunc) error {
	lc, err := ResolveLedgerContext(dataDir, ledgerFlag)
	if err != nil {
		return err
	}
	defer func() { _ = lc.Close() }()

	ctx := context.Background()
	r, err := record.Resolve(ctx, lc.Store, lc.Ledger.ID, ref)
	if err != nil {
		return storeError(err)
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "  date:    %s\n", Primary(displayDate(r.Date)))
	printRecordDetail(w, r)

	if confirm != nil {
		ok, err := confirm("Remove this record?")
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(w, "cancelled")
			return nil
		}
	}

	if err := lc.Store.Delete(ctx, lc.Ledger.ID, r.ID); err != nil {
		return storeError(err)
	}

	_, _ = fmt.Fprintf(w, "removed record %s\n", Silent(record.ShortID(r.ID)))
	return nil
}
