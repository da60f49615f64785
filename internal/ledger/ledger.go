package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ngthgila/Taxi/internal/stringutil"
)

// ErrNoLedger is returned when no ledger is selected.
var ErrNoLedger = errors.New("no ledger selected, run 'taxiledger join <code>' first")

// Entry is a joined ledger.
type Entry struct {
	Code     string    `json:"code"`
	ID       string    `json:"id"`
	JoinedAt time.Time `json:"joined_at"`
}

// Registry holds the joined ledgers and the current selection.
type Registry struct {
	Current string  `json:"current,omitempty"`
	Ledgers []Entry `json:"ledgers"`
}

// DefaultDir returns the data directory under homeDir.
func DefaultDir(homeDir string) string {
	return filepath.Join(homeDir, ".taxiledger")
}

// RegistryPath returns the path of ledgers.json inside the data directory.
func RegistryPath(dataDir string) string {
	return filepath.Join(dataDir, "ledgers.json")
}

// RecordsDir returns the root under which the file store keeps records.
func RecordsDir(dataDir string) string {
	return filepath.Join(dataDir, "ledgers")
}

// Normalize maps a shared code to its ledger ID. Codes that differ only in
// case, punctuation or Vietnamese diacritics name the same ledger.
func Normalize(code string) string {
	return stringutil.Slugify(code)
}

// ReadRegistry reads the ledger registry.
// Returns an empty registry if the file does not exist.
func ReadRegistry(dataDir string) (*Registry, error) {
	data, err := os.ReadFile(RegistryPath(dataDir))
	if errors.Is(err, os.ErrNotExist) {
		return &Registry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("reading %s: %w", RegistryPath(dataDir), err)
	}
	return &reg, nil
}

// WriteRegistry writes the ledger registry, creating the directory if needed.
func WriteRegistry(dataDir string, reg *Registry) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(RegistryPath(dataDir), data, 0644)
}

// Find looks up a ledger by code or ID. Returns nil if not joined.
func (r *Registry) Find(code string) *Entry {
	id := Normalize(code)
	for i := range r.Ledgers {
		if r.Ledgers[i].ID == id {
			return &r.Ledgers[i]
		}
	}
	return nil
}

// Join adds the ledger named by code to the registry and makes it current.
// Returns the entry and whether it was newly joined.
func Join(dataDir, code string, now time.Time) (*Entry, bool, error) {
	id := Normalize(code)
	if id == "" {
		return nil, false, fmt.Errorf("ledger code '%s' has no letters or digits", code)
	}

	reg, err := ReadRegistry(dataDir)
	if err != nil {
		return nil, false, err
	}

	entry := reg.Find(id)
	created := entry == nil
	if created {
		reg.Ledgers = append(reg.Ledgers, Entry{Code: code, ID: id, JoinedAt: now.UTC()})
		entry = &reg.Ledgers[len(reg.Ledgers)-1]
	}
	reg.Current = id

	if err := WriteRegistry(dataDir, reg); err != nil {
		return nil, false, err
	}
	return entry, created, nil
}

// Leave removes a ledger from the registry. Records are kept. When the
// current ledger is left, the most recently joined remaining one becomes
// current.
func Leave(dataDir, code string) (*Entry, error) {
	reg, err := ReadRegistry(dataDir)
	if err != nil {
		return nil, err
	}

	entry := reg.Find(code)
	if entry == nil {
		return nil, fmt.Errorf("ledger '%s' not joined", code)
	}
	left := *entry

	kept := make([]Entry, 0, len(reg.Ledgers))
	for _, e := range reg.Ledgers {
		if e.ID != left.ID {
			kept = append(kept, e)
		}
	}
	reg.Ledgers = kept

	if reg.Current == left.ID {
		reg.Current = ""
		if len(kept) > 0 {
			reg.Current = kept[len(kept)-1].ID
		}
	}

	if err := WriteRegistry(dataDir, reg); err != nil {
		return nil, err
	}
	return &left, nil
}

// Current resolves the ledger to work on. A non-empty override wins and
// does not need to be joined; otherwise the registry's current ledger is
// used.
func Current(dataDir, override string) (Entry, error) {
	if override != "" {
		id := Normalize(override)
		if id == "" {
			return Entry{}, fmt.Errorf("ledger code '%s' has no letters or digits", override)
		}
		reg, err := ReadRegistry(dataDir)
		if err != nil {
			return Entry{}, err
		}
		if e := reg.Find(id); e != nil {
			return *e, nil
		}
		return Entry{Code: override, ID: id}, nil
	}

	reg, err := ReadRegistry(dataDir)
	if err != nil {
		return Entry{}, err
	}
	if reg.Current == "" {
		return Entry{}, ErrNoLedger
	}
	if e := reg.Find(reg.Current); e != nil {
		return *e, nil
	}
	return Entry{Code: reg.Current, ID: reg.Current}, nil
}
