package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	md "github.com/nao1215/markdown"
	"github.com/ngthgila/Taxi/internal/period"
	"github.com/ngthgila/Taxi/internal/record"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Markdown renders the statement as a GitHub-flavoured Markdown document.
func Markdown(s Statement) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(s.Title())
	doc.PlainText(md.Bold(s.Range.Label) + " (" + s.Range.SubLabel + ")")
	doc.LF()

	doc.H2("Chi tiết")
	if len(s.Rows) == 0 {
		doc.PlainText(md.Italic("Chưa có dữ liệu cho kỳ này."))
	} else {
		rows := make([][]string, 0, len(s.Rows))
		for _, r := range s.Rows {
			rows = append(rows, []string{
				r.Display,
				record.FormatVND(r.Revenue),
				record.FormatVND(r.Expense),
				record.FormatVND(r.Profit),
				cell(strings.Join(notes(r), "; ")),
			})
		}
		doc.Table(md.TableSet{
			Header:    []string{"Ngày", "Thu", "Chi", "Lãi", "Ghi chú"},
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft},
			Rows:      rows,
		})
	}
	doc.LF()

	doc.H2("Tổng kết")
	summary := md.TableSet{
		Header:    []string{"Khoản", "Số tiền"},
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
	}
	for _, sl := range summaryLines(s) {
		label, amount := sl.label, record.FormatVND(sl.amount)
		if sl.strong {
			label, amount = md.Bold(label), md.Bold(amount)
		}
		summary.Rows = append(summary.Rows, []string{label, amount})
	}
	doc.Table(summary)
	doc.LF()

	if len(s.Missing) > 0 {
		doc.H2(fmt.Sprintf("Ngày chưa ghi (%d)", len(s.Missing)))
		days := make([]string, 0, len(s.Missing))
		for _, d := range s.Missing {
			day, err := period.ParseDay(d, s.GeneratedAt.Location())
			if err != nil {
				days = append(days, d)
				continue
			}
			days = append(days, period.DisplayDay(day))
		}
		doc.BulletList(days...)
		doc.LF()
	}

	doc.PlainText(md.Italic("Xuất lúc " + s.GeneratedAt.Format("15:04 02/01/2006")))
	return doc.String()
}

// cell keeps free text on one table row.
func cell(s string) string {
	return strings.ReplaceAll(strings.Join(strings.Fields(s), " "), "|", `\|`)
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="vi">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 56rem; margin: 2rem auto; color: #1e293b; }
table { border-collapse: collapse; width: 100%; margin-bottom: 1.5rem; }
th, td { border-bottom: 1px solid #e2e8f0; padding: .4rem .6rem; }
th { background: #f8fafc; }
</style>
</head>
<body>
{{.Content}}
</body>
</html>
`))

func renderHTML(w io.Writer, s Statement) error {
	var content bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(s)), &content); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}
	return page.Execute(w, struct {
		Title   string
		Content template.HTML
	}{
		Title:   s.Title(),
		Content: template.HTML(content.String()),
	})
}
