package cli

import "github.com/spf13/cobra"

var configCmd = GroupCommand{
	Use:   "config",
	Short: "Show or change settings (split, gaps, storage, sync server)",
	Subcommands: []*cobra.Command{
		configGetCmd,
		configSetCmd,
	},
}.Build()
