package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/ngthgila/Taxi/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is Friday, October 16, 2026, in the afternoon in Hanoi.
func fixedNow() time.Time {
	return time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
}

// setupLedgerTest returns a data directory with one joined ledger.
func setupLedgerTest(t *testing.T) string {
	t.Helper()
	dataDir := t.TempDir()
	_, _, err := ledger.Join(dataDir, "Xe Số 1", fixedNow())
	require.NoError(t, err)
	return dataDir
}

func execJoin(dataDir, code string, pk PromptKit) (string, error) {
	stdout := new(bytes.Buffer)
	cmd := joinCmd
	cmd.SetOut(stdout)

	err := runJoin(cmd, dataDir, code, pk, fixedNow)
	return stdout.String(), err
}

func TestJoinNewLedger(t *testing.T) {
	dataDir := t.TempDir()

	stdout, err := execJoin(dataDir, "Xe Số 1", PromptKit{})

	require.NoError(t, err)
	assert.Contains(t, stdout, "joined ledger")
	assert.Contains(t, stdout, "xe-so-1")

	cur, err := ledger.Current(dataDir, "")
	require.NoError(t, err)
	assert.Equal(t, "xe-so-1", cur.ID)
	assert.Equal(t, "Xe Số 1", cur.Code)
}

func TestJoinExistingSwitches(t *testing.T) {
	dataDir := setupLedgerTest(t)
	_, err := execJoin(dataDir, "xe-2", PromptKit{})
	require.NoError(t, err)

	stdout, err := execJoin(dataDir, "XE SO 1", PromptKit{})

	require.NoError(t, err)
	assert.Contains(t, stdout, "switched to ledger")

	cur, err := ledger.Current(dataDir, "")
	require.NoError(t, err)
	assert.Equal(t, "xe-so-1", cur.ID)
}

func TestJoinPromptsForCode(t *testing.T) {
	dataDir := t.TempDir()
	prompt, titles := scriptedPrompt("taxi-nha")

	stdout, err := execJoin(dataDir, "", PromptKit{Prompt: prompt})

	require.NoError(t, err)
	assert.Len(t, *titles, 1)
	assert.Contains(t, stdout, "taxi-nha")
}

func TestJoinRequiresCode(t *testing.T) {
	_, err := execJoin(t.TempDir(), "  ", PromptKit{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")

	_, err = execJoin(t.TempDir(), "!!!", PromptKit{})
	assert.Error(t, err)
}
