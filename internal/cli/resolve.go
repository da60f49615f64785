package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ngthgila/Taxi/internal/ledger"
	"github.com/ngthgila/Taxi/internal/period"
	"github.com/ngthgila/Taxi/internal/record"
	"github.com/ngthgila/Taxi/internal/restday"
	"github.com/ngthgila/Taxi/internal/split"
	"github.com/ngthgila/Taxi/internal/storage/remote"
	"github.com/ngthgila/Taxi/internal/storage/sqlite"
	"github.com/ngthgila/Taxi/internal/view"
)

// remoteTimeout bounds every request to the sync server.
const remoteTimeout = 10 * time.Second

// DataDir returns the directory holding the registry, settings and local
// records. TAXILEDGER_HOME overrides the default under the home directory.
func DataDir() (string, error) {
	if dir := os.Getenv(ledger.EnvPrefix + "_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return ledger.DefaultDir(homeDir), nil
}

// LedgerContext is a resolved ledger with its settings and open store.
type LedgerContext struct {
	DataDir  string
	Ledger   ledger.Entry
	Settings *ledger.Settings
	Store    record.Store
	Location *time.Location
	Split    split.Config
	RestDays *restday.Rule
	close    func() error
}

// ResolveLedgerContext finds the ledger named by --ledger or the current
// one and opens the configured store.
func ResolveLedgerContext(dataDir, ledgerFlag string) (*LedgerContext, error) {
	entry, err := ledger.Current(dataDir, ledgerFlag)
	if err != nil {
		return nil, err
	}

	settings, err := ledger.LoadSettings(dataDir)
	if err != nil {
		return nil, err
	}
	loc, err := settings.Location()
	if err != nil {
		return nil, err
	}
	cfg, err := settings.SplitConfig()
	if err != nil {
		return nil, err
	}
	rest, err := settings.RestDays()
	if err != nil {
		return nil, err
	}

	store, closeFn, err := openStore(settings, dataDir)
	if err != nil {
		return nil, err
	}

	return &LedgerContext{
		DataDir:  dataDir,
		Ledger:   entry,
		Settings: settings,
		Store:    store,
		Location: loc,
		Split:    cfg,
		RestDays: rest,
		close:    closeFn,
	}, nil
}

// Close releases the store.
func (lc *LedgerContext) Close() error {
	if lc.close == nil {
		return nil
	}
	return lc.close()
}

// NewState returns an empty view state for now in the ledger's time zone.
func (lc *LedgerContext) NewState(now time.Time) view.State {
	return view.New(now.In(lc.Location), lc.Settings.GapPolicy(), lc.Split, lc.RestDays)
}

// LoadState loads the ledger's records and selects rangeValue. An empty
// value selects the current pay cycle; unknown values are an error.
func (lc *LedgerContext) LoadState(ctx context.Context, now time.Time, rangeValue string) (view.State, error) {
	s := lc.NewState(now)
	if _, err := period.Lookup(s.Groups, rangeValue, lc.Location); err != nil {
		return view.State{}, fmt.Errorf("%w (see 'taxiledger ranges')", err)
	}

	records, err := lc.Store.List(ctx, lc.Ledger.ID)
	if err != nil {
		return view.State{}, fmt.Errorf("load ledger '%s': %w", lc.Ledger.Code, err)
	}

	s = view.Reduce(s, view.SelectRange{Value: rangeValue})
	s = view.Reduce(s, view.RecordsLoaded{Records: records})
	return s, nil
}

// openStore opens the backend selected by storage.backend.
func openStore(settings *ledger.Settings, dataDir string) (record.Store, func() error, error) {
	noop := func() error { return nil }
	verbose := slog.Default().Enabled(context.Background(), slog.LevelDebug)

	switch settings.Storage.Backend {
	case "", ledger.BackendFile:
		dir := ledger.RecordsDir(dataDir)
		slog.Debug("opened store", "backend", ledger.BackendFile, "dir", dir)
		return record.NewFileStore(dir), noop, nil

	case ledger.BackendSQLite:
		path := settings.Storage.SQLitePath
		if path == "" {
			path = filepath.Join(dataDir, "taxiledger.db")
		}
		st, err := sqlite.Open(path, verbose)
		if err != nil {
			return nil, nil, err
		}
		slog.Debug("opened store", "backend", ledger.BackendSQLite, "path", path)
		return st, st.Close, nil

	case ledger.BackendRemote:
		if settings.Storage.RemoteURL == "" {
			return nil, nil, fmt.Errorf("storage.remote_url is not set (run 'taxiledger config set storage.remote_url <url>')")
		}
		slog.Debug("opened store", "backend", ledger.BackendRemote, "url", settings.Storage.RemoteURL)
		return remote.New(settings.Storage.RemoteURL, &http.Client{Timeout: remoteTimeout}), noop, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend '%s'", settings.Storage.Backend)
}

// storeError adds a hint when the sync server cannot be reached.
func storeError(err error) error {
	if remote.IsUnavailable(err) {
		return fmt.Errorf("%w (is 'taxiledger serve' running?)", err)
	}
	return err
}
