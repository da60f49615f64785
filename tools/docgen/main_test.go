package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() *cobra.Command {
	root := &cobra.Command{Use: "taxiledger", Short: "Ledger"}
	root.PersistentFlags().String("ledger", "", "ledger code")

	add := &cobra.Command{
		Use:     "add",
		Aliases: []string{"a"},
		Short:   "Add a day",
		Example: "  taxiledger add --revenue 1.000.000",
		RunE:    func(*cobra.Command, []string) error { return nil },
	}
	add.Flags().String("revenue", "", "revenue in VND | dong")

	config := &cobra.Command{Use: "config", Short: "Settings"}
	set := &cobra.Command{Use: "set <key> <value>", Short: "Change a setting", RunE: func(*cobra.Command, []string) error { return nil }}
	hidden := &cobra.Command{Use: "secret", Hidden: true, RunE: func(*cobra.Command, []string) error { return nil }}
	config.AddCommand(set)

	root.AddCommand(add, config, hidden)
	return root
}

// squash collapses the padding the table writer adds around cells.
func squash(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.Join(strings.Fields(l), " ")
	}
	return strings.Join(lines, "\n")
}

func TestCollectSkipsHidden(t *testing.T) {
	var paths []string
	for _, c := range collect(testTree()) {
		paths = append(paths, c.CommandPath())
	}
	assert.Equal(t, []string{"taxiledger", "taxiledger add", "taxiledger config", "taxiledger config set"}, paths)
}

func TestCommandMarkdown(t *testing.T) {
	root := testTree()
	add, _, err := root.Find([]string{"add"})
	require.NoError(t, err)

	out := squash(commandMarkdown(add))

	assert.Contains(t, out, "# taxiledger add\n")
	assert.Contains(t, out, "```sh\ntaxiledger add [flags]\n```")
	assert.Contains(t, out, "Aliases: `a`")
	assert.Contains(t, out, "taxiledger add --revenue 1.000.000")
	assert.Contains(t, out, "| Flag | Default | Description |")
	assert.Contains(t, out, "| `--revenue` | - | revenue in VND \\| dong |")
	assert.Contains(t, out, "## Global flags")
	assert.Contains(t, out, "See also [taxiledger](taxiledger.md).")
}

func TestCommandMarkdownGroup(t *testing.T) {
	root := testTree()
	config, _, err := root.Find([]string{"config"})
	require.NoError(t, err)

	out := squash(commandMarkdown(config))

	assert.NotContains(t, out, "## Usage")
	assert.Contains(t, out, "- [taxiledger config set](taxiledger_config_set.md) - Change a setting")
}

func TestRewriteLinks(t *testing.T) {
	in := `<a href="taxiledger_add.md">add</a> <a href="taxiledger.md#flags">root</a> <a href="https://example.com">x</a>`
	assert.Equal(t,
		`<a href="taxiledger_add.html">add</a> <a href="taxiledger.html#flags">root</a> <a href="https://example.com">x</a>`,
		rewriteLinks(in))
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()

	n, err := generate(testTree(), dir)

	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.FileExists(t, filepath.Join(dir, "taxiledger_config_set.md"))

	page, err := os.ReadFile(filepath.Join(dir, "taxiledger_add.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `<a href="taxiledger_add.html" class="active">taxiledger add</a>`)
	assert.Contains(t, string(page), "<table>")
	assert.Contains(t, string(page), `href="taxiledger.html"`)
}

func TestGenerateHighlightsCodeBlocks(t *testing.T) {
	dir := t.TempDir()

	_, err := generate(testTree(), dir)
	require.NoError(t, err)

	page, err := os.ReadFile(filepath.Join(dir, "taxiledger_add.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "background-color:#272822")
	assert.Contains(t, string(page), "<span")
	assert.NotContains(t, string(page), `<code class="language-sh">`)
}
