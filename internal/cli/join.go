package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/ngthgila/Taxi/internal/ledger"
	"github.com/spf13/cobra"
)

var joinCmd = LeafCommand{
	Use:     "join [code]",
	Short:   "Join a shared ledger by its code and make it current",
	Example: "  taxiledger join xe-so-1",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := DataDir()
		if err != nil {
			return err
		}

		var code string
		if len(args) > 0 {
			code = args[0]
		}
		return runJoin(cmd, dataDir, code, NewPromptKit(), time.Now)
	},
}.Build()

func runJoin(cmd *cobra.Command, dataDir, code string, pk PromptKit, nowFn func() time.Time) error {
	if strings.TrimSpace(code) == "" && pk.Prompt != nil {
		var err error
		code, err = pk.Prompt("Ledger code")
		if err != nil {
			return err
		}
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("ledger code is required")
	}

	entry, created, err := ledger.Join(dataDir, code, nowFn())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if created {
		_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("joined ledger '%s' (id: %s)", Primary(entry.Code), Silent(entry.ID))))
	} else {
		_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("switched to ledger '%s'", Primary(entry.Code))))
	}
	return nil
}
