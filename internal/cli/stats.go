package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ngthgila/Taxi/internal/record"
	"github.com/ngthgila/Taxi/internal/split"
	"github.com/ngthgila/Taxi/internal/view"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const statLabelWidth = 18

var statsCmd = LeafCommand{
	Use:     "stats",
	Short:   "Show totals and the profit split for a time range",
	Example: "  taxiledger stats\n  taxiledger stats --range cycle-2026-9",
	Range:   true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := DataDir()
		if err != nil {
			return err
		}

		ledgerFlag, _ := cmd.Flags().GetString("ledger")
		rangeValue, _ := cmd.Flags().GetString("range")

		return runStats(cmd, dataDir, ledgerFlag, rangeValue, time.Now)
	},
}.Build()

func runStats(cmd *cobra.Command, dataDir, ledgerFlag, rangeValue string, nowFn func() time.Time) error {
	lc, err := ResolveLedgerContext(dataDir, ledgerFlag)
	if err != nil {
		return err
	}
	defer func() { _ = lc.Close() }()

	s, err := lc.LoadState(context.Background(), nowFn(), rangeValue)
	if err != nil {
		return storeError(err)
	}
	snap := view.Derive(s)

	w := cmd.OutOrStdout()
	printRangeHeader(w, lc.Ledger.Code, snap)
	printStats(w, snap, lc.Split)
	return nil
}

func printStats(w io.Writer, snap view.Snapshot, cfg split.Config) {
	line := func(label string, v decimal.Decimal, style func(string) string) {
		_, _ = fmt.Fprintf(w, "%s %s\n", Text(padRight(label, statLabelWidth)), style(padLeft(record.FormatVND(v), moneyColWidth)))
	}

	line("Tổng doanh thu", snap.Stats.TotalRevenue, Revenue)
	line("Tổng chi phí", snap.Stats.TotalExpense, Expense)
	profit := snap.Stats.Profit()
	line("Lợi nhuận", profit, Signed(profit))
	_, _ = fmt.Fprintf(w, "%s %s\n", Text(padRight("Số ngày", statLabelWidth)), padLeft(fmt.Sprint(snap.Stats.TotalDays), moneyColWidth))

	_, _ = fmt.Fprintf(w, "\n%s\n", Info(fmt.Sprintf("Chia lợi nhuận (tài xế %s, lương cứng %s)",
		split.FormatPercent(cfg.DriverPercentage), record.FormatVND(cfg.DriverStipend))))
	line("Phần tài xế", snap.Split.DriverShare, Text)
	line("Thu nhập tài xế", snap.Split.DriverTotalIncome, Signed(snap.Split.DriverTotalIncome))
	line("Phần chủ xe", snap.Split.OwnerShare, Text)
	line("Thu nhập chủ xe", snap.Split.OwnerTotalIncome, Signed(snap.Split.OwnerTotalIncome))

	if snap.Split.OwnerTotalIncome.IsNegative() {
		_, _ = fmt.Fprintf(w, "%s\n", Warning("owner income is negative: the stipend exceeds the owner's share"))
	}
}
