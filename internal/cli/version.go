package cli

import (
	"fmt"

	"github.com/ngthgila/Taxi/internal/ledger"
	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var versionCmd = LeafCommand{
	Use:   "version",
	Short: "Print the version, data directory and storage backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := DataDir()
		if err != nil {
			return err
		}
		return runVersion(cmd, dataDir)
	},
}.Build()

func runVersion(cmd *cobra.Command, dataDir string) error {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "taxiledger %s (commit: %s, built: %s)\n", appVersion, appCommit, appDate)

	settings, err := ledger.LoadSettings(dataDir)
	if err != nil {
		return err
	}
	backend := settings.Storage.Backend
	if backend == "" {
		backend = ledger.BackendFile
	}
	if backend == ledger.BackendRemote {
		backend += " " + settings.Storage.RemoteURL
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", Silent("data:   "), dataDir)
	_, _ = fmt.Fprintf(w, "%s %s\n", Silent("storage:"), backend)
	return nil
}
