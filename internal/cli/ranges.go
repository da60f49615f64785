package cli

import (
	"fmt"
	"time"

	"github.com/ngthgila/Taxi/internal/ledger"
	"github.com/ngthgila/Taxi/internal/period"
	"github.com/spf13/cobra"
)

var rangesCmd = LeafCommand{
	Use:   "ranges",
	Short: "List the selectable time ranges",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := DataDir()
		if err != nil {
			return err
		}
		return runRanges(cmd, dataDir, time.Now)
	},
}.Build()

func runRanges(cmd *cobra.Command, dataDir string, nowFn func() time.Time) error {
	settings, err := ledger.LoadSettings(dataDir)
	if err != nil {
		return err
	}
	loc, err := settings.Location()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	groups := period.GenerateTimeOptions(nowFn().In(loc))
	for i, g := range groups {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintln(w, Info(g.Label))
		for _, r := range g.Options {
			_, _ = fmt.Fprintf(w, "  %s  %s %s\n", Primary(padRight(r.Value, 14)), Text(r.Label), Silent("("+r.SubLabel+")"))
		}
	}
	return nil
}

// pickRange lets the user choose a range interactively. Without a Select
// function the default range is used.
func pickRange(groups []period.Group, sel SelectFunc) (string, error) {
	if sel == nil {
		return "", nil
	}
	all := period.Flatten(groups)
	options := make([]string, len(all))
	for i, r := range all {
		options[i] = r.String()
	}
	idx, err := sel("Time range", options)
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(all) {
		return "", fmt.Errorf("invalid selection %d", idx)
	}
	return all[idx].Value, nil
}
