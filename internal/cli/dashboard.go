package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/ngthgila/Taxi/internal/record"
	"github.com/ngthgila/Taxi/internal/view"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Faint(true)
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var dashboardCmd = LeafCommand{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Live overview of a time range (updates as records change)",
	Range:   true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := DataDir()
		if err != nil {
			return err
		}

		ledgerFlag, _ := cmd.Flags().GetString("ledger")
		rangeValue, _ := cmd.Flags().GetString("range")

		return runDashboard(cmd, dataDir, ledgerFlag, rangeValue, time.Now)
	},
}.Build()

// recordsMsg carries a fresh snapshot of the ledger from the watcher.
type recordsMsg struct {
	records []record.Record
}

// watchErrMsg reports that live updates could not be started.
type watchErrMsg struct {
	err error
}

type dashboardModel struct {
	state      view.State
	ledgerCode string
	termWidth  int
	termHeight int
	footerMsg  string // temporary message shown in footer
}

func newDashboardModel(s view.State, ledgerCode string) dashboardModel {
	return dashboardModel{
		state:      s,
		ledgerCode: ledgerCode,
		termWidth:  100,
		termHeight: 40,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return nil
}

// maxChartRows is how many chart lines fit under the header, cards and
// recent records.
func (m dashboardModel) maxChartRows() int {
	rows := m.termHeight - 24
	if rows < 3 {
		return 3
	}
	return rows
}

func runDashboard(cmd *cobra.Command, dataDir, ledgerFlag, rangeValue string, nowFn func() time.Time) error {
	lc, err := ResolveLedgerContext(dataDir, ledgerFlag)
	if err != nil {
		return err
	}
	defer func() { _ = lc.Close() }()

	s, err := lc.LoadState(context.Background(), nowFn(), rangeValue)
	if err != nil {
		return storeError(err)
	}

	out := cmd.OutOrStdout()

	// Non-TTY fallback: print one snapshot
	if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		_, err := fmt.Fprint(out, renderDashboard(view.Derive(s), lc.Ledger.Code, 100, 0, ""))
		return err
	}

	m := newDashboardModel(s, lc.Ledger.Code)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(out))

	ctx, cancel := context.WithCancel(context.Background())
	watchDone := watchLedger(ctx, record.Watch(lc.Store, lc.Settings.Watch.Interval), lc.Ledger.ID, p.Send)

	_, err = p.Run()

	// the watcher must be gone before the deferred Close releases the store
	cancel()
	<-watchDone
	return err
}

// watchLedger subscribes off the calling goroutine, because Program.Send
// blocks until the program runs. The returned channel is closed once the
// subscription has ended after ctx is done.
func watchLedger(ctx context.Context, sub record.Subscriber, ledgerID string, send func(tea.Msg)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		unsubscribe, err := sub.Subscribe(ctx, ledgerID, func(records []record.Record) {
			send(recordsMsg{records: records})
		})
		if err != nil {
			if ctx.Err() == nil {
				send(watchErrMsg{err: storeError(err)})
			}
			return
		}
		<-ctx.Done()
		unsubscribe()
	}()
	return done
}
