package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/ngthgila/Taxi/internal/ledger"
	"github.com/ngthgila/Taxi/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = LeafCommand{
	Use:   "serve",
	Short: "Share local ledgers with other machines over HTTP",
	Example: "  taxiledger serve --addr :8080\n" +
		"  taxiledger config set storage.remote_url http://192.168.1.10:8080",
	StrFlags: []StringFlag{
		{Name: "addr", Usage: "listen address (default: server.addr setting)"},
	},
	BoolFlags: []BoolFlag{
		{Name: "quiet", Usage: "do not print a line per request"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := DataDir()
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		quiet, _ := cmd.Flags().GetBool("quiet")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServe(ctx, cmd, dataDir, addr, quiet)
	},
}.Build()

func runServe(ctx context.Context, cmd *cobra.Command, dataDir, addr string, quiet bool) error {
	settings, err := ledger.LoadSettings(dataDir)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = settings.Server.Addr
	}

	// the server always owns local data; a remote backend would point at itself
	local := *settings
	if local.Storage.Backend == ledger.BackendRemote {
		local.Storage.Backend = ledger.BackendFile
	}

	store, closeFn, err := openStore(&local, dataDir)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	var accessLog io.Writer
	if !quiet {
		accessLog = cmd.ErrOrStderr()
	}
	gin.SetMode(gin.ReleaseMode)

	srv := server.New(store, server.WithAccessLog(accessLog))

	backend := local.Storage.Backend
	if backend == "" {
		backend = ledger.BackendFile
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("serving %s ledgers on %s (ctrl+c to stop)", backend, Primary(addr))))

	if err := srv.Run(ctx, addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), Silent("stopped"))
	return nil
}
