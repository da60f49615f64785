package cli

import (
	"fmt"

	"github.com/ngthgila/Taxi/internal/ledger"
	"github.com/spf13/cobra"
)

var configSetCmd = LeafCommand{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Example: "  taxiledger config set split.driver_percentage 29.23%\n" +
		"  taxiledger config set storage.backend sqlite",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := DataDir()
		if err != nil {
			return err
		}
		return runConfigSet(cmd, dataDir, args[0], args[1])
	},
}.Build()

func runConfigSet(cmd *cobra.Command, dataDir, key, value string) error {
	stored, err := ledger.SetSetting(dataDir, key, value)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("set %s = %s", Primary(key), stored)))
	return nil
}
