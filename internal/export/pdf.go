package export

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/ngthgila/Taxi/internal/record"
	"github.com/ngthgila/Taxi/internal/split"
	"github.com/ngthgila/Taxi/internal/stringutil"
	"github.com/shopspring/decimal"
)

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
	pdfGreen       = props.Color{Red: 4, Green: 120, Blue: 87}
	pdfRed         = props.Color{Red: 190, Green: 18, Blue: 60}
)

// pdfText folds text to what the built-in PDF fonts can draw: they cover
// Latin-1 only.
func pdfText(s string) string {
	return stringutil.FoldDiacritics(strings.ReplaceAll(s, "₫", "VND"))
}

func pdfMoney(d decimal.Decimal) string {
	return pdfText(record.FormatVND(d))
}

func renderPDF(s Statement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	// Document header
	m.AddRow(14,
		text.NewCol(12, pdfText(s.Title()), props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, pdfText(s.Range.String()), props.Text{
			Size:  12,
			Color: &pdfMutedColor,
		}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))

	// Column headings
	m.AddRow(8,
		text.NewCol(3, "Ngay", headingProps(align.Left)),
		text.NewCol(3, "Thu", headingProps(align.Right)),
		text.NewCol(3, "Chi", headingProps(align.Right)),
		text.NewCol(3, "Lai", headingProps(align.Right)),
	)

	if len(s.Rows) == 0 {
		m.AddRow(8, text.NewCol(12, "Chua co du lieu cho ky nay.", props.Text{
			Size:  9,
			Color: &pdfMutedColor,
		}))
	}

	for _, r := range s.Rows {
		m.AddRow(6,
			text.NewCol(3, pdfText(r.Display), props.Text{Size: 9}),
			text.NewCol(3, pdfMoney(r.Revenue), props.Text{Size: 9, Align: align.Right, Color: &pdfGreen}),
			text.NewCol(3, pdfMoney(r.Expense), props.Text{Size: 9, Align: align.Right, Color: &pdfRed}),
			text.NewCol(3, pdfMoney(r.Profit), props.Text{Size: 9, Align: align.Right}),
		)
		for _, note := range notes(r) {
			m.AddRow(5, text.NewCol(12, "    "+pdfText(note), props.Text{
				Size:  8,
				Color: &pdfMutedColor,
			}))
		}
	}

	m.AddRow(4)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	addSummaryRows(m, s)

	if len(s.Missing) > 0 {
		m.AddRow(4)
		m.AddRow(8, text.NewCol(12, fmt.Sprintf("Ngay chua ghi (%d)", len(s.Missing)), headingProps(align.Left)))
		m.AddRow(6, text.NewCol(12, strings.Join(s.Missing, ", "), props.Text{
			Size:  8,
			Color: &pdfMutedColor,
		}))
	}

	m.AddRow(10, text.NewCol(12, "Xuat luc "+s.GeneratedAt.Format("15:04 02/01/2006"), props.Text{
		Size:  7,
		Top:   4,
		Color: &pdfMutedColor,
	}))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func headingProps(a align.Type) props.Text {
	return props.Text{
		Style: fontstyle.Bold,
		Size:  10,
		Align: a,
		Color: &pdfHeaderColor,
	}
}

func addSummaryRows(m core.Maroto, s Statement) {
	for _, sl := range summaryLines(s) {
		style := fontstyle.Normal
		if sl.strong {
			style = fontstyle.Bold
		}
		m.AddRow(7,
			text.NewCol(8, pdfText(sl.label), props.Text{Size: 10, Style: style}),
			text.NewCol(4, pdfMoney(sl.amount), props.Text{Size: 10, Style: style, Align: align.Right}),
		)
	}
}

type summaryLine struct {
	label  string
	amount decimal.Decimal
	strong bool
}

// summaryLines lists the totals and the split, shared by every format.
func summaryLines(s Statement) []summaryLine {
	return []summaryLine{
		{label: fmt.Sprintf("Tổng thu (%d ngày)", s.Stats.TotalDays), amount: s.Stats.TotalRevenue},
		{label: "Tổng chi", amount: s.Stats.TotalExpense},
		{label: "Lợi nhuận", amount: s.Split.Profit, strong: true},
		{label: fmt.Sprintf("Tài xế hưởng (%s)", split.FormatPercent(s.Config.DriverPercentage)), amount: s.Split.DriverShare},
		{label: "Lương cứng tài xế", amount: s.Config.DriverStipend},
		{label: "Tổng thu nhập tài xế", amount: s.Split.DriverTotalIncome, strong: true},
		{label: "Chủ xe hưởng", amount: s.Split.OwnerShare},
		{label: "Thu nhập chủ xe (sau lương)", amount: s.Split.OwnerTotalIncome, strong: true},
	}
}

func notes(r Row) []string {
	var out []string
	if r.ExpenseNote != "" {
		out = append(out, "Chi phí: "+r.ExpenseNote)
	}
	if r.GeneralNote != "" {
		out = append(out, "Ghi chú: "+r.GeneralNote)
	}
	return out
}
