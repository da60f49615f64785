package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "taxiledger",
		Short:         "Shared daily revenue and expense ledger for a taxi",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			configureLogging(cmd.ErrOrStderr(), verbose)
		},
	}
	cmd.PersistentFlags().String("ledger", "", "ledger code to use instead of the current one")
	cmd.PersistentFlags().Bool("verbose", false, "print diagnostic logs to stderr")
	cmd.SetHelpFunc(colorizedHelpFunc())

	cmd.AddCommand(
		joinCmd,
		leaveCmd,
		ledgersCmd,
		rangesCmd,
		addCmd,
		editCmd,
		removeCmd,
		listCmd,
		statsCmd,
		exportCmd,
		dashboardCmd,
		configCmd,
		serveCmd,
		completionCmd,
		versionCmd,
	)
	registerCompletions(cmd)
	return cmd
}

var rootCmd = newRootCmd()

func Execute() error {
	return rootCmd.Execute()
}

// configureLogging installs the default slog logger. Diagnostics stay quiet
// unless --verbose is set.
func configureLogging(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// Root returns the command tree, for tools that document it.
func Root() *cobra.Command {
	return rootCmd
}
