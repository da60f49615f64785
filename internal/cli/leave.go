package cli

import (
	"fmt"
	"strings"

	"github.com/ngthgila/Taxi/internal/ledger"
	"github.com/spf13/cobra"
)

var leaveCmd = LeafCommand{
	Use:   "leave [code]",
	Short: "Forget a joined ledger (its records are kept)",
	Args:  cobra.MaximumNArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := DataDir()
		if err != nil {
			return err
		}

		var code string
		if len(args) > 0 {
			code = args[0]
		}

		yesFlag, _ := cmd.Flags().GetBool("yes")
		pk := NewPromptKit()
		if yesFlag {
			pk.Confirm = AlwaysYes()
		}
		return runLeave(cmd, dataDir, code, pk)
	},
}.Build()

func runLeave(cmd *cobra.Command, dataDir, code string, pk PromptKit) error {
	reg, err := ledger.ReadRegistry(dataDir)
	if err != nil {
		return err
	}
	if len(reg.Ledgers) == 0 {
		return ledger.ErrNoLedger
	}

	codes, err := pickLedgers(reg, code, pk)
	if err != nil {
		return err
	}
	if len(codes) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
		return nil
	}

	w := cmd.OutOrStdout()
	if pk.Confirm != nil {
		ok, err := pk.Confirm(fmt.Sprintf("Leave %s?", strings.Join(codes, ", ")))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(w, "cancelled")
			return nil
		}
	}

	for _, c := range codes {
		left, err := ledger.Leave(dataDir, c)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("left ledger '%s'", Primary(left.Code))))
	}

	reg, err = ledger.ReadRegistry(dataDir)
	if err != nil {
		return err
	}
	if cur := reg.Find(reg.Current); cur != nil {
		_, _ = fmt.Fprintf(w, "%s\n", Silent(fmt.Sprintf("current ledger is now '%s'", cur.Code)))
	}
	return nil
}

// pickLedgers returns the ledgers to leave: the one named, or the user's
// choice among all joined ledgers, or the current one.
func pickLedgers(reg *ledger.Registry, code string, pk PromptKit) ([]string, error) {
	if code != "" {
		return []string{code}, nil
	}

	if pk.MultiSelect != nil && len(reg.Ledgers) > 1 {
		options := make([]string, len(reg.Ledgers))
		for i, e := range reg.Ledgers {
			options[i] = e.Code
		}
		picked, err := pk.MultiSelect("Ledgers to leave", options)
		if err != nil {
			return nil, err
		}
		codes := make([]string, len(picked))
		for i, idx := range picked {
			codes[i] = reg.Ledgers[idx].Code
		}
		return codes, nil
	}

	cur := reg.Find(reg.Current)
	if cur == nil {
		return nil, ledger.ErrNoLedger
	}
	return []string{cur.Code}, nil
}
