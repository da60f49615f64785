package cli

import (
	"fmt"

	"github.com/ngthgila/Taxi/internal/ledger"
	"github.com/ngthgila/Taxi/internal/period"
	"github.com/spf13/cobra"
)

var ledgersCmd = LeafCommand{
	Use:   "ledgers",
	Short: "List joined ledgers",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := DataDir()
		if err != nil {
			return err
		}
		return runLedgers(cmd, dataDir)
	},
}.Build()

func runLedgers(cmd *cobra.Command, dataDir string) error {
	reg, err := ledger.ReadRegistry(dataDir)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(reg.Ledgers) == 0 {
		_, _ = fmt.Fprintln(w, Silent("no ledgers joined yet, run 'taxiledger join <code>'"))
		return nil
	}

	for _, e := range reg.Ledgers {
		marker := " "
		name := Text(e.Code)
		if e.ID == reg.Current {
			marker = Primary("*")
			name = Primary(e.Code)
		}
		_, _ = fmt.Fprintf(w, "%s %s  %s\n", marker, name,
			Silent(fmt.Sprintf("id: %s, joined %s", e.ID, period.DisplayDay(e.JoinedAt))))
	}
	return nil
}
