package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/ngthgila/Taxi/internal/export"
	"github.com/ngthgila/Taxi/internal/view"
	"github.com/spf13/cobra"
)

var exportCmd = LeafCommand{
	Use:   "export",
	Short: "Export a statement of a time range (pdf, xlsx, md, html)",
	Example: "  taxiledger export --format pdf\n" +
		"  taxiledger export --format xlsx --range cycle-2026-9 --output ky-9.xlsx\n" +
		"  taxiledger export --format md --output -",
	StrFlags: []StringFlag{
		{Name: "format", Usage: "output format: " + formatList(), Default: string(export.FormatPDF)},
		{Name: "output", Usage: "output file, '-' for stdout (default: <ledger>-<range>.<format>)"},
	},
	Range: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := DataDir()
		if err != nil {
			return err
		}

		ledgerFlag, _ := cmd.Flags().GetString("ledger")
		formatFlag, _ := cmd.Flags().GetString("format")
		rangeValue, _ := cmd.Flags().GetString("range")
		outputFlag, _ := cmd.Flags().GetString("output")

		var sel SelectFunc
		if !cmd.Flags().Changed("range") && isatty.IsTerminal(os.Stdin.Fd()) {
			sel = NewSelectFunc()
		}
		return runExport(cmd, dataDir, ledgerFlag, formatFlag, rangeValue, outputFlag, sel, time.Now)
	},
}.Build()

func formatList() string {
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func runExport(
	cmd *cobra.Command,
	dataDir, ledgerFlag, formatFlag, rangeValue, outputFlag string,
	sel SelectFunc,
	nowFn func() time.Time,
) error {
	format, err := export.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	lc, err := ResolveLedgerContext(dataDir, ledgerFlag)
	if err != nil {
		return err
	}
	defer func() { _ = lc.Close() }()

	now := nowFn()
	if rangeValue == "" {
		if rangeValue, err = pickRange(lc.NewState(now).Groups, sel); err != nil {
			return err
		}
	}

	s, err := lc.LoadState(context.Background(), now, rangeValue)
	if err != nil {
		return storeError(err)
	}
	snap := view.Derive(s)

	w := cmd.OutOrStdout()
	if len(snap.Filtered) == 0 {
		_, _ = fmt.Fprintf(w, "No records for %s.\n", snap.Range)
		return nil
	}

	stmt := export.Build(lc.Ledger.Code, snap, lc.Split, now.In(lc.Location))

	if outputFlag == "-" {
		return export.Render(w, stmt, format)
	}

	outputPath := outputFlag
	if outputPath == "" {
		outputPath = export.Filename(stmt, format)
	}
	if err := export.WriteFile(outputPath, stmt, format); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Exported %s to %s\n", Primary(snap.Range.Label), Primary(outputPath))
	return nil
}
