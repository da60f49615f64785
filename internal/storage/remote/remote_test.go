package remote

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ngthgila/Taxi/internal/record"
	"github.com/ngthgila/Taxi/internal/server"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRemoteTest(t *testing.T) *Store {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := server.New(record.NewFileStore(t.TempDir()),
		server.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		server.WithAccessLog(nil),
	)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return New(ts.URL+"/", ts.Client())
}

func newRecord(date string, revenue int64) record.Record {
	return record.Record{Date: date, Revenue: decimal.NewFromInt(revenue), Expense: decimal.Zero}
}

func TestRoundTrip(t *testing.T) {
	s := setupRemoteTest(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, "taxi", newRecord("2026-10-15", 900_000))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := s.Get(ctx, "taxi", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "900000", got.Revenue.String())

	saved.GeneralNote = "ca đêm"
	updated, err := s.Save(ctx, "taxi", saved)
	require.NoError(t, err)
	assert.Equal(t, "ca đêm", updated.GeneralNote)

	records, err := s.List(ctx, "taxi")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ca đêm", records[0].GeneralNote)

	require.NoError(t, s.Delete(ctx, "taxi", saved.ID))
	records, err = s.List(ctx, "taxi")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestListRevision(t *testing.T) {
	s := setupRemoteTest(t)
	ctx := context.Background()

	_, rev, err := s.ListRevision(ctx, "taxi")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), rev)

	saved, err := s.Save(ctx, "taxi", newRecord("2026-10-15", 900_000))
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, "taxi", saved.ID))

	records, rev, err := s.ListRevision(ctx, "taxi")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, uint64(2), rev)

	var _ record.RevisionLister = s
}

func TestNotFound(t *testing.T) {
	s := setupRemoteTest(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "taxi", "nope")
	assert.ErrorIs(t, err, record.ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "taxi", "nope"), record.ErrNotFound)

	r := newRecord("2026-10-15", 1)
	r.ID = "nope"
	_, err = s.Save(ctx, "taxi", r)
	assert.ErrorIs(t, err, record.ErrNotFound)
}

func TestSaveValidatesLocally(t *testing.T) {
	s := New("http://127.0.0.1:1", nil)
	_, err := s.Save(context.Background(), "taxi", newRecord("16/10/2026", 1))
	var verr *record.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestServerErrorMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal error"}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL, nil).List(context.Background(), "taxi")
	assert.EqualError(t, err, "server error: internal error")
	assert.NotErrorIs(t, err, record.ErrNotFound)
}

func TestUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := New(url, &http.Client{Timeout: time.Second}).List(context.Background(), "taxi")
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
}

func TestWatchThroughServer(t *testing.T) {
	s := setupRemoteTest(t)
	ctx := context.Background()

	updates := make(chan []record.Record, 8)
	unsubscribe, err := record.Watch(s, 10*time.Millisecond).Subscribe(ctx, "taxi", func(records []record.Record) {
		updates <- records
	})
	require.NoError(t, err)
	defer unsubscribe()

	assert.Empty(t, <-updates)

	_, err = s.Save(ctx, "taxi", newRecord("2026-10-15", 1))
	require.NoError(t, err)

	select {
	case records := <-updates:
		assert.Len(t, records, 1)
	case <-time.After(3 * time.Second):
		t.Fatal("change was not observed")
	}
}

var _ record.Store = (*Store)(nil)
