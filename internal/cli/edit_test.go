package cli

import (
	"bytes"
	"testing"

	"github.com/ngthgila/Taxi/internal/record"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execEdit(dataDir, ref string, f recordFlags, pk PromptKit) (string, error) {
	stdout := new(bytes.Buffer)
	cmd := editCmd
	cmd.SetOut(stdout)

	err := runEdit(cmd, dataDir, "", ref, f, pk, fixedNow)
	return stdout.String(), err
}

func TestEditWithFlags(t *testing.T) {
	dataDir := setupLedgerTest(t)
	r := seedRecord(t, dataDir, "xe-so-1", "2026-10-14", 1_000_000, 100_000)

	stdout, err := execEdit(dataDir, r.ID[:8], recordFlags{Expense: "250k", ExpenseNote: strPtr("xăng")}, PromptKit{Confirm: AlwaysYes()})

	require.NoError(t, err)
	assert.Contains(t, stdout, "updated record")
	assert.Contains(t, stdout, "750.000 ₫")

	records := ledgerRecords(t, dataDir, "xe-so-1")
	require.Len(t, records, 1)
	assert.Equal(t, r.ID, records[0].ID)
	assert.Equal(t, "2026-10-14", records[0].Date)
	assert.True(t, decimal.NewFromInt(1_000_000).Equal(records[0].Revenue), "untouched fields are kept")
	assert.True(t, decimal.NewFromInt(250_000).Equal(records[0].Expense))
	assert.Equal(t, "xăng", records[0].ExpenseNote)
}

func TestEditClearsNote(t *testing.T) {
	dataDir := setupLedgerTest(t)
	r := seedRecord(t, dataDir, "xe-so-1", "2026-10-14", 1, 0)
	_, err := execEdit(dataDir, r.ID, recordFlags{Note: strPtr("ghi chú")}, PromptKit{})
	require.NoError(t, err)

	_, err = execEdit(dataDir, r.ID, recordFlags{Note: strPtr("")}, PromptKit{})
	require.NoError(t, err)

	records := ledgerRecords(t, dataDir, "xe-so-1")
	require.Len(t, records, 1)
	assert.Empty(t, records[0].GeneralNote)
}

func TestEditPromptsWithCurrentValues(t *testing.T) {
	dataDir := setupLedgerTest(t)
	r := seedRecord(t, dataDir, "xe-so-1", "2026-10-14", 1_000_000, 0)

	// keep date and revenue, change the expense and its note
	prompt, titles := scriptedPrompt("", "", "50000", "gửi xe", "")
	_, err := execEdit(dataDir, r.ID, recordFlags{}, PromptKit{Prompt: prompt, Confirm: AlwaysYes()})

	require.NoError(t, err)
	require.Len(t, *titles, 5)
	assert.Equal(t, "Date (2026-10-14)", (*titles)[0])
	assert.Equal(t, "Revenue (VND) (1000000)", (*titles)[1])

	records := ledgerRecords(t, dataDir, "xe-so-1")
	require.Len(t, records, 1)
	assert.Equal(t, "2026-10-14", records[0].Date)
	assert.True(t, decimal.NewFromInt(1_000_000).Equal(records[0].Revenue))
	assert.True(t, decimal.NewFromInt(50_000).Equal(records[0].Expense))
	assert.Equal(t, "gửi xe", records[0].ExpenseNote)
}

func TestEditMoveOntoTakenDate(t *testing.T) {
	dataDir := setupLedgerTest(t)
	seedRecord(t, dataDir, "xe-so-1", "2026-10-13", 1, 0)
	r := seedRecord(t, dataDir, "xe-so-1", "2026-10-14", 2, 0)

	decline := func(string) (bool, error) { return false, nil }
	stdout, err := execEdit(dataDir, r.ID, recordFlags{Date: "2026-10-13"}, PromptKit{Confirm: decline})
	require.NoError(t, err)
	assert.Contains(t, stdout, "already exists")
	assert.Contains(t, stdout, "cancelled")

	stdout, err = execEdit(dataDir, r.ID, recordFlags{Date: "2026-10-13"}, PromptKit{Confirm: AlwaysYes()})
	require.NoError(t, err)
	assert.Contains(t, stdout, "updated record")
	assert.Len(t, record.OnDate(ledgerRecords(t, dataDir, "xe-so-1"), "2026-10-13"), 2)
}

func TestEditNotFound(t *testing.T) {
	dataDir := setupLedgerTest(t)

	_, err := execEdit(dataDir, "deadbeef", recordFlags{Revenue: "1"}, PromptKit{})

	assert.ErrorIs(t, err, record.ErrNotFound)
}
