// Package remote implements record.Store against a taxiledger sync server.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ngthgila/Taxi/internal/record"
)

// Store talks to the sync server's REST API.
type Store struct {
	base   string
	client *http.Client
}

// New creates a client for the server at baseURL, e.g. "http://10.0.0.2:8080".
func New(baseURL string, client *http.Client) *Store {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Store{base: strings.TrimRight(baseURL, "/"), client: client}
}

type listResponse struct {
	Records  []record.Record `json:"records"`
	Revision uint64          `json:"revision"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Store) recordsURL(ledgerID string, id ...string) string {
	u := s.base + "/api/ledgers/" + url.PathEscape(ledgerID) + "/records"
	if len(id) > 0 {
		u += "/" + url.PathEscape(id[0])
	}
	return u
}

func (s *Store) List(ctx context.Context, ledgerID string) ([]record.Record, error) {
	records, _, err := s.ListRevision(ctx, ledgerID)
	return records, err
}

// ListRevision returns the records together with the server's change
// counter for the ledger.
func (s *Store) ListRevision(ctx context.Context, ledgerID string) ([]record.Record, uint64, error) {
	var resp listResponse
	if err := s.do(ctx, http.MethodGet, s.recordsURL(ledgerID), nil, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Records, resp.Revision, nil
}

func (s *Store) Get(ctx context.Context, ledgerID, id string) (record.Record, error) {
	var r record.Record
	if err := s.do(ctx, http.MethodGet, s.recordsURL(ledgerID, id), nil, &r); err != nil {
		return record.Record{}, err
	}
	return r, nil
}

func (s *Store) Save(ctx context.Context, ledgerID string, r record.Record) (record.Record, error) {
	if err := r.Validate(); err != nil {
		return record.Record{}, err
	}
	var saved record.Record
	if err := s.do(ctx, http.MethodPost, s.recordsURL(ledgerID), r, &saved); err != nil {
		return record.Record{}, err
	}
	return saved, nil
}

func (s *Store) Delete(ctx context.Context, ledgerID, id string) error {
	return s.do(ctx, http.MethodDelete, s.recordsURL(ledgerID, id), nil, nil)
}

func (s *Store) do(ctx context.Context, method, u string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return responseError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func responseError(resp *http.Response) error {
	var e errorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &e); err != nil || e.Error == "" {
		e.Error = strings.TrimSpace(string(data))
	}
	if e.Error == "" {
		e.Error = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", e.Error, record.ErrNotFound)
	case http.StatusBadRequest:
		return &record.ValidationError{Msg: e.Error}
	default:
		return fmt.Errorf("server error: %s", e.Error)
	}
}

// IsUnavailable reports whether err means the server could not be reached.
func IsUnavailable(err error) bool {
	var uerr *url.Error
	return errors.As(err, &uerr)
}
