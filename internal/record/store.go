package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no record has the requested ID.
	ErrNotFound = errors.New("record not found")
	// ErrAmbiguousID is returned when an ID prefix matches several records.
	ErrAmbiguousID = errors.New("ambiguous record id")
)

// Store persists the records of many ledgers, keyed by ledger ID.
type Store interface {
	// List returns every record of the ledger, in no particular order.
	List(ctx context.Context, ledgerID string) ([]Record, error)

	// Get returns the record with the exact ID.
	Get(ctx context.Context, ledgerID, id string) (Record, error)

	// Save creates the record when its ID is empty and overwrites the
	// stored record otherwise. CreatedAt is assigned on creation and kept
	// on update. The stored record is returned.
	Save(ctx context.Context, ledgerID string, r Record) (Record, error)

	// Delete removes the record with the exact ID.
	Delete(ctx context.Context, ledgerID, id string) error
}

// NewID returns a fresh record ID.
func NewID() string {
	return uuid.NewString()
}

// Prepare applies the create/update rules shared by all stores. existing is
// the stored record when r.ID is set; found reports whether it exists.
func Prepare(r Record, existing Record, found bool, now time.Time) (Record, error) {
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	if r.ID == "" {
		r.ID = NewID()
		r.CreatedAt = now.UTC()
		return r, nil
	}
	if !found {
		return Record{}, fmt.Errorf("record '%s': %w", r.ID, ErrNotFound)
	}
	r.CreatedAt = existing.CreatedAt
	return r, nil
}

// FileStore keeps one JSON file per record under root/<ledger>/records.
type FileStore struct {
	root string
	now  func() time.Time
	mu   sync.Mutex
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir, now: time.Now}
}

// LedgerDir returns the directory holding a ledger's record files.
func (s *FileStore) LedgerDir(ledgerID string) string {
	return filepath.Join(s.root, ledgerID, "records")
}

func (s *FileStore) recordPath(ledgerID, id string) string {
	return filepath.Join(s.LedgerDir(ledgerID), id+".json")
}

func checkKey(kind, key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return invalid("invalid %s '%s'", kind, key)
	}
	return nil
}

func (s *FileStore) List(_ context.Context, ledgerID string) ([]Record, error) {
	if err := checkKey("ledger", ledgerID); err != nil {
		return nil, err
	}

	dir := s.LedgerDir(ledgerID)
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			return nil, err
		}

		// Partial or corrupted files must not hide the rest of the ledger.
		var r Record
		if err := json.Unmarshal(data, &r); err != nil || r.ID == "" {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *FileStore) Get(_ context.Context, ledgerID, id string) (Record, error) {
	if err := checkKey("ledger", ledgerID); err != nil {
		return Record{}, err
	}
	if err := checkKey("record id", id); err != nil {
		return Record{}, err
	}
	return s.read(ledgerID, id)
}

func (s *FileStore) read(ledgerID, id string) (Record, error) {
	data, err := os.ReadFile(s.recordPath(ledgerID, id))
	if os.IsNotExist(err) {
		return Record{}, fmt.Errorf("record '%s': %w", id, ErrNotFound)
	}
	if err != nil {
		return Record{}, err
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("reading record '%s': %w", id, err)
	}
	return r, nil
}

func (s *FileStore) Save(_ context.Context, ledgerID string, r Record) (Record, error) {
	if err := checkKey("ledger", ledgerID); err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var existing Record
	found := false
	if r.ID != "" {
		if err := checkKey("record id", r.ID); err != nil {
			return Record{}, err
		}
		var err error
		existing, err = s.read(ledgerID, r.ID)
		switch {
		case err == nil:
			found = true
		case !errors.Is(err, ErrNotFound):
			return Record{}, err
		}
	}

	r, err := Prepare(r, existing, found, s.now())
	if err != nil {
		return Record{}, err
	}

	dir := s.LedgerDir(ledgerID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Record{}, err
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return Record{}, err
	}

	// write-then-rename so concurrent readers never see half a file
	tmp, err := os.CreateTemp(dir, ".record-*")
	if err != nil {
		return Record{}, err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return Record{}, err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return Record{}, err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		_ = os.Remove(tmp.Name())
		return Record{}, err
	}
	if err := os.Rename(tmp.Name(), s.recordPath(ledgerID, r.ID)); err != nil {
		_ = os.Remove(tmp.Name())
		return Record{}, err
	}
	return r, nil
}

func (s *FileStore) Delete(_ context.Context, ledgerID, id string) error {
	if err := checkKey("ledger", ledgerID); err != nil {
		return err
	}
	if err := checkKey("record id", id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.recordPath(ledgerID, id))
	if os.IsNotExist(err) {
		return fmt.Errorf("record '%s': %w", id, ErrNotFound)
	}
	return err
}
