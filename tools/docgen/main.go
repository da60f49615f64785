// Command docgen writes the taxiledger command reference as Markdown and
// HTML pages, one per command.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md "github.com/nao1215/markdown"
	"github.com/ngthgila/Taxi/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// NavItem is a single sidebar navigation link.
type NavItem struct {
	Title string
	Path  string // .md path relative to the output directory
}

// PageData is the template data for rendering a docs page.
type PageData struct {
	Title   string
	Nav     []NavItem
	Current string
	Content template.HTML
}

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"link": mdToHTMLPath,
}).Parse(`<!DOCTYPE html>
<html lang="vi">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; display: flex; margin: 0; }
nav { width: 14rem; padding: 1rem; background: #f4f4f4; }
nav a { display: block; padding: .2rem 0; color: #333; }
nav a.active { font-weight: bold; }
main { padding: 1rem 2rem; max-width: 50rem; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: .25rem .5rem; }
pre { background: #f4f4f4; padding: .5rem; }
</style>
</head>
<body>
<nav>
{{- range .Nav}}
  <a href="{{link .Path}}"{{if eq .Path $.Current}} class="active"{{end}}>{{.Title}}</a>
{{- end}}
</nav>
<main>
{{.Content}}
</main>
</body>
</html>
`))

var converter = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Linkify,
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
			highlighting.WithFormatOptions(),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

func main() {
	outDir := flag.String("out", "docs/commands", "output directory")
	flag.Parse()

	n, err := generate(cli.Root(), *outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docgen: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  %d pages generated in %s\n", n, *outDir)
}

// generate writes a .md and a .html page for root and every visible
// subcommand. Returns the number of pages.
func generate(root *cobra.Command, outDir string) (int, error) {
	cmds := collect(root)

	nav := make([]NavItem, len(cmds))
	for i, c := range cmds {
		nav[i] = NavItem{Title: c.CommandPath(), Path: pagePath(c)}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, err
	}

	for _, c := range cmds {
		src := commandMarkdown(c)
		path := pagePath(c)

		if err := os.WriteFile(filepath.Join(outDir, path), []byte(src), 0o644); err != nil {
			return 0, err
		}

		var content bytes.Buffer
		if err := converter.Convert([]byte(src), &content); err != nil {
			return 0, fmt.Errorf("converting %s: %w", path, err)
		}

		var page bytes.Buffer
		err := pageTmpl.Execute(&page, PageData{
			Title:   c.CommandPath(),
			Nav:     nav,
			Current: path,
			Content: template.HTML(rewriteLinks(content.String())),
		})
		if err != nil {
			return 0, fmt.Errorf("rendering %s: %w", path, err)
		}

		if err := os.WriteFile(filepath.Join(outDir, mdToHTMLPath(path)), page.Bytes(), 0o644); err != nil {
			return 0, err
		}
	}
	return len(cmds), nil
}

// collect walks the tree depth first, skipping hidden and help commands.
func collect(c *cobra.Command) []*cobra.Command {
	out := []*cobra.Command{c}
	for _, sub := range c.Commands() {
		if !sub.IsAvailableCommand() || sub.IsAdditionalHelpTopicCommand() {
			continue
		}
		out = append(out, collect(sub)...)
	}
	return out
}

// pagePath names a command's page, e.g. "taxiledger_config_set.md".
func pagePath(c *cobra.Command) string {
	return strings.ReplaceAll(c.CommandPath(), " ", "_") + ".md"
}

func commandMarkdown(c *cobra.Command) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(c.CommandPath())
	if c.Short != "" {
		doc.PlainText(c.Short)
		doc.LF()
	}

	if c.Runnable() {
		doc.H2("Usage")
		doc.CodeBlocks(md.SyntaxHighlight("sh"), c.UseLine())
		doc.LF()
	}

	if len(c.Aliases) > 0 {
		aliases := make([]string, len(c.Aliases))
		for i, a := range c.Aliases {
			aliases[i] = md.Code(a)
		}
		doc.PlainText("Aliases: " + strings.Join(aliases, ", "))
		doc.LF()
	}

	if c.Example != "" {
		doc.H2("Examples")
		doc.CodeBlocks(md.SyntaxHighlight("sh"), strings.TrimRight(c.Example, "\n"))
		doc.LF()
	}

	writeFlags(doc, "Flags", c.NonInheritedFlags())
	writeFlags(doc, "Global flags", c.InheritedFlags())

	var subs []string
	for _, sub := range c.Commands() {
		if sub.IsAvailableCommand() && !sub.IsAdditionalHelpTopicCommand() {
			subs = append(subs, md.Link(sub.CommandPath(), pagePath(sub))+" - "+sub.Short)
		}
	}
	if len(subs) > 0 {
		doc.H2("Commands")
		doc.BulletList(subs...)
		doc.LF()
	}

	if c.HasParent() {
		doc.PlainText("See also " + md.Link(c.Parent().CommandPath(), pagePath(c.Parent())) + ".")
	}
	return doc.String()
}

func writeFlags(doc *md.Markdown, title string, fs *pflag.FlagSet) {
	var rows [][]string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		def := f.DefValue
		if def == "" || def == "false" {
			def = "-"
		}
		rows = append(rows, []string{md.Code("--" + f.Name), def, strings.ReplaceAll(f.Usage, "|", "\\|")})
	})
	if len(rows) == 0 {
		return
	}
	doc.H2(title)
	doc.Table(md.TableSet{
		Header: []string{"Flag", "Default", "Description"},
		Rows:   rows,
	})
	doc.LF()
}

// mdToHTMLPath converts a .md path to the corresponding .html path.
func mdToHTMLPath(mdPath string) string {
	return strings.TrimSuffix(mdPath, ".md") + ".html"
}

var linkHrefRe = regexp.MustCompile(`href="([^"#]*\.md)(#[^"]*)?"`)

// rewriteLinks points rendered .md links at the generated .html pages.
func rewriteLinks(htmlContent string) string {
	return linkHrefRe.ReplaceAllStringFunc(htmlContent, func(match string) string {
		m := linkHrefRe.FindStringSubmatch(match)
		return `href="` + mdToHTMLPath(m[1]) + m[2] + `"`
	})
}
