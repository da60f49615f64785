// Package export renders a ledger statement for one time range.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ngthgila/Taxi/internal/period"
	"github.com/ngthgila/Taxi/internal/record"
	"github.com/ngthgila/Taxi/internal/split"
	"github.com/ngthgila/Taxi/internal/stringutil"
	"github.com/ngthgila/Taxi/internal/view"
	"github.com/shopspring/decimal"
)

// Row is one record line of a statement.
type Row struct {
	Date        string
	Display     string
	Revenue     decimal.Decimal
	Expense     decimal.Decimal
	Profit      decimal.Decimal
	ExpenseNote string
	GeneralNote string
}

// Statement holds everything an export shows.
type Statement struct {
	Ledger      string
	Range       period.TimeRange
	Rows        []Row
	Stats       record.Stats
	Split       split.Result
	Config      split.Config
	Missing     []string
	GeneratedAt time.Time
}

// Build assembles a statement from a derived view. Rows are oldest first.
func Build(ledgerCode string, snap view.Snapshot, cfg split.Config, now time.Time) Statement {
	rows := make([]Row, 0, len(snap.Filtered))
	for i := len(snap.Filtered) - 1; i >= 0; i-- {
		r := snap.Filtered[i]
		display := r.Date
		if d, err := period.ParseDay(r.Date, time.UTC); err == nil {
			display = period.DisplayDay(d)
		}
		rows = append(rows, Row{
			Date:        r.Date,
			Display:     display,
			Revenue:     r.Revenue,
			Expense:     r.Expense,
			Profit:      r.Profit(),
			ExpenseNote: r.ExpenseNote,
			GeneralNote: r.GeneralNote,
		})
	}

	return Statement{
		Ledger:      ledgerCode,
		Range:       snap.Range,
		Rows:        rows,
		Stats:       snap.Stats,
		Split:       snap.Split,
		Config:      cfg,
		Missing:     snap.Missing,
		GeneratedAt: now,
	}
}

// Title is the statement heading.
func (s Statement) Title() string {
	return fmt.Sprintf("Sổ thu chi %s", s.Ledger)
}

// Format is an export file format.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatXLSX     Format = "xlsx"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// Formats lists the supported formats.
var Formats = []Format{FormatPDF, FormatXLSX, FormatMarkdown, FormatHTML}

// ParseFormat reads a format name; "markdown" and "excel" are accepted as
// aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unsupported format '%s' (use pdf, xlsx, md or html)", s)
}

// Filename returns the default output name, e.g. "xe-so-1-cycle-2026-10.pdf".
func Filename(s Statement, f Format) string {
	return fmt.Sprintf("%s-%s.%s", stringutil.Slugify(s.Ledger), s.Range.Value, f)
}

// Render writes the statement in format f.
func Render(w io.Writer, s Statement, f Format) error {
	switch f {
	case FormatPDF:
		data, err := renderPDF(s)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatXLSX:
		return renderXLSX(w, s)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(s))
		return err
	case FormatHTML:
		return renderHTML(w, s)
	}
	return fmt.Errorf("unsupported format '%s'", f)
}

// WriteFile renders the statement to path, creating parent directories.
func WriteFile(path string, s Statement, f Format) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if err := Render(file, s, f); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return err
	}
	return file.Close()
}
