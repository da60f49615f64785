package cli

import (
	"fmt"

	"github.com/ngthgila/Taxi/internal/ledger"
	"github.com/ngthgila/Taxi/internal/restday"
	"github.com/spf13/cobra"
)

var configGetCmd = LeafCommand{
	Use:     "get [key]",
	Short:   "Show one setting, or all of them",
	Example: "  taxiledger config get split.driver_percentage",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := DataDir()
		if err != nil {
			return err
		}

		var key string
		if len(args) > 0 {
			key = args[0]
		}
		return runConfigGet(cmd, dataDir, key)
	},
}.Build()

func runConfigGet(cmd *cobra.Command, dataDir, key string) error {
	out := cmd.OutOrStdout()

	if key != "" {
		value, err := ledger.GetSetting(dataDir, key)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, value)
		return nil
	}

	keys := ledger.Keys()
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}
	for _, k := range keys {
		value, err := ledger.GetSetting(dataDir, k)
		if err != nil {
			return err
		}
		switch {
		case value == "":
			value = Silent("(not set)")
		case k == "gaps.rest_days":
			if rule, err := restday.Parse(value); err == nil {
				value += "  " + Silent(rule.RRule())
			}
		}
		_, _ = fmt.Fprintf(out, "%s  %s\n", Primary(padRight(k, width)), value)
	}
	return nil
}
