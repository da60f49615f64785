package export

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ngthgila/Taxi/internal/record"
	"github.com/ngthgila/Taxi/internal/split"
	"github.com/ngthgila/Taxi/internal/view"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var now = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func rec(id, date string, revenue, expense int64) record.Record {
	return record.Record{
		ID:        id,
		Date:      date,
		Revenue:   decimal.NewFromInt(revenue),
		Expense:   decimal.NewFromInt(expense),
		CreatedAt: now,
	}
}

func sampleStatement(t *testing.T) Statement {
	t.Helper()
	noted := rec("b", "2026-10-03", 4_000_000, 0)
	noted.ExpenseNote = "rửa xe | thay dầu"
	noted.GeneralNote = "ca đêm"

	s := view.New(now, record.DefaultGapPolicy(), split.DefaultConfig(), nil)
	s = view.Reduce(s, view.RecordsLoaded{Records: []record.Record{
		rec("a", "2026-10-01", 6_000_000, 4_000_000),
		noted,
	}})
	return Build("Xe Số 1", view.Derive(s), split.DefaultConfig(), now)
}

func TestBuild(t *testing.T) {
	st := sampleStatement(t)

	assert.Equal(t, "Sổ thu chi Xe Số 1", st.Title())
	assert.Equal(t, "cycle-2026-10", st.Range.Value)
	require.Len(t, st.Rows, 2)
	assert.Equal(t, "2026-10-01", st.Rows[0].Date, "rows are oldest first")
	assert.Equal(t, "T5, 01/10/2026", st.Rows[0].Display)
	assert.Equal(t, "2000000", st.Rows[0].Profit.String())
	assert.Equal(t, []string{"2026-10-02"}, st.Missing)
	assert.Equal(t, "6000000", st.Split.Profit.String())
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"pdf":      FormatPDF,
		"PDF":      FormatPDF,
		"xlsx":     FormatXLSX,
		"excel":    FormatXLSX,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
		"html":     FormatHTML,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("docx")
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	st := sampleStatement(t)
	assert.Equal(t, "xe-so-1-cycle-2026-10.pdf", Filename(st, FormatPDF))
	assert.Equal(t, "xe-so-1-cycle-2026-10.md", Filename(st, FormatMarkdown))
}

// squash collapses the padding the table writer adds around cells.
func squash(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.Join(strings.Fields(l), " ")
	}
	return strings.Join(lines, "\n")
}

func TestMarkdown(t *testing.T) {
	md := squash(Markdown(sampleStatement(t)))

	assert.Contains(t, md, "# Sổ thu chi Xe Số 1")
	assert.Contains(t, md, "**Kỳ Lương T10/2026** (25/09 - 24/10/2026)")
	assert.Contains(t, md, "| Ngày | Thu | Chi | Lãi | Ghi chú |")
	assert.Contains(t, md, "| T5, 01/10/2026 | 6.000.000 ₫ | 4.000.000 ₫ | 2.000.000 ₫ | |")
	assert.Contains(t, md, `Chi phí: rửa xe \| thay dầu; Ghi chú: ca đêm`)
	assert.Contains(t, md, "| **Lợi nhuận** | **6.000.000 ₫** |")
	assert.Contains(t, md, "| Tài xế hưởng (29.23%) | 1.753.800 ₫ |")
	assert.Contains(t, md, "| **Tổng thu nhập tài xế** | **4.753.800 ₫** |")
	assert.Contains(t, md, "| **Thu nhập chủ xe (sau lương)** | **1.246.200 ₫** |")
	assert.Contains(t, md, "## Ngày chưa ghi (1)")
	assert.Contains(t, md, "- T6, 02/10/2026")
}

func TestMarkdown_NotesStayOnOneRow(t *testing.T) {
	st := sampleStatement(t)
	st.Rows[0].GeneralNote = "đón khách\nsân bay | về"

	md := squash(Markdown(st))
	assert.Contains(t, md, `Ghi chú: đón khách sân bay \| về`)
}

func TestMarkdown_Empty(t *testing.T) {
	s := view.New(now, record.DefaultGapPolicy(), split.DefaultConfig(), nil)
	st := Build("taxi", view.Derive(s), split.DefaultConfig(), now)

	md := Markdown(st)
	assert.Contains(t, md, "Chưa có dữ liệu")
	assert.NotContains(t, md, "Ngày chưa ghi")
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleStatement(t), FormatHTML))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Sổ thu chi Xe Số 1</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<h2 id=")
}

func TestRenderHTML_EscapesNotes(t *testing.T) {
	st := sampleStatement(t)
	st.Rows[0].GeneralNote = "<script>alert(1)</script>"

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, st, FormatHTML))
	assert.NotContains(t, buf.String(), "<script>")
}

func TestRenderPDF(t *testing.T) {
	data, err := renderPDF(sampleStatement(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPDFText(t *testing.T) {
	assert.Equal(t, "Ky Luong T10/2026", pdfText("Kỳ Lương T10/2026"))
	assert.Equal(t, "1.753.800 VND", pdfMoney(decimal.NewFromInt(1_753_800)))
}

func TestRenderXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleStatement(t), FormatXLSX))

	_, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err, "xlsx is a zip container")

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, detailSheet}, f.GetSheetList())

	date, err := f.GetCellValue(detailSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-01", date)

	label, err := f.GetCellValue(detailSheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Tổng", label)

	note, err := f.GetCellValue(detailSheet, "F3")
	require.NoError(t, err)
	assert.Equal(t, "ca đêm", note)
}

func TestWriteFile(t *testing.T) {
	st := sampleStatement(t)
	dir := t.TempDir()

	for _, f := range Formats {
		path := filepath.Join(dir, "out", Filename(st, f))
		require.NoError(t, WriteFile(path, st, f), f)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.Size() > 0, f)
	}
}

func TestWriteFile_UnknownFormatLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")
	assert.Error(t, WriteFile(path, sampleStatement(t), Format("docx")))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
