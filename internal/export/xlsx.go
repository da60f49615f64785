package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Tổng quan"
	detailSheet  = "Chi tiết"
)

var moneyFormat = "#,##0"

func renderXLSX(w io.Writer, s Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(detailSheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFormat})
	if err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := writeSummarySheet(f, s, money, bold); err != nil {
		return err
	}
	if err := writeDetailSheet(f, s, money, bold); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, s Statement, money, bold int) error {
	cells := [][]any{
		{s.Title()},
		{s.Range.Label, s.Range.SubLabel},
		{},
	}
	for _, sl := range summaryLines(s) {
		cells = append(cells, []any{sl.label, sl.amount.InexactFloat64()})
	}
	if len(s.Missing) > 0 {
		cells = append(cells, []any{}, []any{fmt.Sprintf("Ngày chưa ghi (%d)", len(s.Missing))})
		for _, d := range s.Missing {
			cells = append(cells, []any{d})
		}
	}

	if err := setRows(f, summarySheet, 1, cells); err != nil {
		return err
	}

	first, last := 4, 3+len(summaryLines(s))
	if err := f.SetCellStyle(summarySheet, fmt.Sprintf("B%d", first), fmt.Sprintf("B%d", last), money); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "A1", bold); err != nil {
		return err
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 32)
	_ = f.SetColWidth(summarySheet, "B", "B", 18)
	return nil
}

func writeDetailSheet(f *excelize.File, s Statement, money, bold int) error {
	cells := [][]any{{"Ngày", "Thu", "Chi", "Lãi", "Ghi chú chi phí", "Ghi chú"}}
	for _, r := range s.Rows {
		cells = append(cells, []any{
			r.Date,
			r.Revenue.InexactFloat64(),
			r.Expense.InexactFloat64(),
			r.Profit.InexactFloat64(),
			r.ExpenseNote,
			r.GeneralNote,
		})
	}
	total := len(s.Rows) + 2
	cells = append(cells, []any{
		"Tổng",
		s.Stats.TotalRevenue.InexactFloat64(),
		s.Stats.TotalExpense.InexactFloat64(),
		s.Stats.Profit().InexactFloat64(),
	})

	if err := setRows(f, detailSheet, 1, cells); err != nil {
		return err
	}
	if err := f.SetCellStyle(detailSheet, "B2", fmt.Sprintf("D%d", total), money); err != nil {
		return err
	}
	if err := f.SetCellStyle(detailSheet, "A1", "F1", bold); err != nil {
		return err
	}
	_ = f.SetColWidth(detailSheet, "A", "A", 12)
	_ = f.SetColWidth(detailSheet, "B", "D", 14)
	_ = f.SetColWidth(detailSheet, "E", "F", 30)
	return f.SetPanes(detailSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func setRows(f *excelize.File, sheet string, firstRow int, rows [][]any) error {
	for i, values := range rows {
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, firstRow+i)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
