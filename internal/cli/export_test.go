package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execExport(dataDir, formatFlag, rangeValue, outputFlag string, sel SelectFunc) (string, error) {
	stdout := new(bytes.Buffer)
	cmd := exportCmd
	cmd.SetOut(stdout)

	err := runExport(cmd, dataDir, "", formatFlag, rangeValue, outputFlag, sel, fixedNow)
	return stdout.String(), err
}

func setupExportTest(t *testing.T) string {
	t.Helper()
	dataDir := setupLedgerTest(t)
	seedRecord(t, dataDir, "xe-so-1", "2026-10-12", 1_000_000, 100_000)
	seedRecord(t, dataDir, "xe-so-1", "2026-10-14", 2_000_000, 500_000)
	return dataDir
}

func TestExportFormats(t *testing.T) {
	dataDir := setupExportTest(t)

	for _, format := range []string{"pdf", "xlsx", "md", "html"} {
		t.Run(format, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "statement."+format)

			stdout, err := execExport(dataDir, format, "", out, nil)

			require.NoError(t, err)
			assert.Contains(t, stdout, "Exported")
			assert.Contains(t, stdout, out)

			info, err := os.Stat(out)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestExportMarkdownToStdout(t *testing.T) {
	dataDir := setupExportTest(t)

	stdout, err := execExport(dataDir, "markdown", "", "-", nil)

	require.NoError(t, err)
	assert.Contains(t, stdout, "Sổ thu chi Xe Số 1")
	assert.Contains(t, stdout, "T2, 12/10/2026")
	assert.Contains(t, stdout, "701.520")
	assert.NotContains(t, stdout, "Exported")
}

func TestExportDefaultFilename(t *testing.T) {
	dataDir := setupExportTest(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	stdout, err := execExport(dataDir, "md", "", "", nil)

	require.NoError(t, err)
	assert.Contains(t, stdout, "xe-so-1-cycle-2026-10.md")
	assert.FileExists(t, "xe-so-1-cycle-2026-10.md")
}

func TestExportPicksRange(t *testing.T) {
	dataDir := setupExportTest(t)
	out := filepath.Join(t.TempDir(), "week.md")

	var title string
	sel := func(tt string, options []string) (int, error) {
		title = tt
		// this week holds both records
		for i, o := range options {
			if strings.HasPrefix(o, "Tuần Này") {
				return i, nil
			}
		}
		return 0, nil
	}

	stdout, err := execExport(dataDir, "md", "", out, sel)

	require.NoError(t, err)
	assert.Equal(t, "Time range", title)
	assert.Contains(t, stdout, "Tuần Này")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "14/10/2026")
}

func TestExportEmptyRange(t *testing.T) {
	dataDir := setupExportTest(t)
	out := filepath.Join(t.TempDir(), "empty.pdf")

	stdout, err := execExport(dataDir, "pdf", "week-last", out, nil)

	require.NoError(t, err)
	assert.Contains(t, stdout, "No records for")
	assert.NoFileExists(t, out)
}

func TestExportUnsupportedFormat(t *testing.T) {
	dataDir := setupExportTest(t)

	_, err := execExport(dataDir, "docx", "", "", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
