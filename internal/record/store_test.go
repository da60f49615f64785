package record

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
}

func setupStoreTest(t *testing.T) *FileStore {
	t.Helper()
	s := NewFileStore(t.TempDir())
	s.now = fixedNow
	return s
}

func newRecord(date string, revenue int64) Record {
	return Record{Date: date, Revenue: decimal.NewFromInt(revenue), Expense: decimal.Zero}
}

func TestFileStore_SaveCreates(t *testing.T) {
	s := setupStoreTest(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, "taxi-01", newRecord("2026-10-15", 1_000_000))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, fixedNow(), saved.CreatedAt)

	info, err := os.Stat(filepath.Join(s.LedgerDir("taxi-01"), saved.ID+".json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	got, err := s.Get(ctx, "taxi-01", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Date, got.Date)
	assert.True(t, saved.Revenue.Equal(got.Revenue))
}

func TestFileStore_SaveUpdatesKeepsCreatedAt(t *testing.T) {
	s := setupStoreTest(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, "taxi-01", newRecord("2026-10-15", 1_000_000))
	require.NoError(t, err)

	s.now = func() time.Time { return fixedNow().Add(48 * time.Hour) }
	saved.Revenue = decimal.NewFromInt(2_000_000)
	saved.CreatedAt = time.Time{}
	updated, err := s.Save(ctx, "taxi-01", saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, fixedNow(), updated.CreatedAt)

	records, err := s.List(ctx, "taxi-01")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2000000", records[0].Revenue.String())
}

func TestFileStore_SaveUnknownID(t *testing.T) {
	s := setupStoreTest(t)
	r := newRecord("2026-10-15", 1)
	r.ID = "does-not-exist"

	_, err := s.Save(context.Background(), "taxi-01", r)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_SaveRejectsInvalid(t *testing.T) {
	s := setupStoreTest(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "taxi-01", newRecord("15/10/2026", 1))
	assert.Error(t, err)

	_, err = s.Save(ctx, "../escape", newRecord("2026-10-15", 1))
	assert.Error(t, err)

	r := newRecord("2026-10-15", 1)
	r.ID = "a/b"
	_, err = s.Save(ctx, "taxi-01", r)
	assert.Error(t, err)
}

func TestFileStore_ListEmpty(t *testing.T) {
	s := setupStoreTest(t)
	records, err := s.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileStore_ListSkipsCorruptFiles(t *testing.T) {
	s := setupStoreTest(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "taxi-01", newRecord("2026-10-15", 1))
	require.NoError(t, err)

	dir := s.LedgerDir("taxi-01")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "noid.json"), []byte(`{"date":"2026-10-01"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644))

	records, err := s.List(ctx, "taxi-01")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestFileStore_LedgersAreIsolated(t *testing.T) {
	s := setupStoreTest(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "taxi-01", newRecord("2026-10-15", 1))
	require.NoError(t, err)

	records, err := s.List(ctx, "taxi-02")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileStore_Delete(t *testing.T) {
	s := setupStoreTest(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, "taxi-01", newRecord("2026-10-15", 1))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "taxi-01", saved.ID))

	_, err = s.Get(ctx, "taxi-01", saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.Delete(ctx, "taxi-01", saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPrepare(t *testing.T) {
	now := fixedNow()

	created, err := Prepare(newRecord("2026-10-15", 1), Record{}, false, now)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, now, created.CreatedAt)

	existing := created
	existing.CreatedAt = now.Add(-time.Hour)
	updated, err := Prepare(created, existing, true, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-time.Hour), updated.CreatedAt)

	_, err = Prepare(created, Record{}, false, now)
	assert.ErrorIs(t, err, ErrNotFound)
}

// memStore is an in-memory Store used by tests that need control over IDs.
type memStore struct {
	mu      sync.Mutex
	records map[string]map[string]Record
	listErr error
}

func newMemStore(ledgerID string, records ...Record) *memStore {
	m := &memStore{records: map[string]map[string]Record{ledgerID: {}}}
	for _, r := range records {
		m.records[ledgerID][r.ID] = r
	}
	return m
}

func (m *memStore) List(_ context.Context, ledgerID string) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []Record
	for _, r := range m.records[ledgerID] {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) Get(_ context.Context, ledgerID, id string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[ledgerID][id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return r, nil
}

func (m *memStore) Save(_ context.Context, ledgerID string, r Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records[ledgerID] == nil {
		m.records[ledgerID] = map[string]Record{}
	}
	existing, found := m.records[ledgerID][r.ID]
	r, err := Prepare(r, existing, found, fixedNow())
	if err != nil {
		return Record{}, err
	}
	m.records[ledgerID][r.ID] = r
	return r, nil
}

func (m *memStore) Delete(_ context.Context, ledgerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[ledgerID][id]; !ok {
		return ErrNotFound
	}
	delete(m.records[ledgerID], id)
	return nil
}

func (m *memStore) setListErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErr = err
}
