package record

import (
	"context"
	"fmt"
	"strings"
)

// minPrefix is the shortest ID prefix accepted by Resolve.
const minPrefix = 4

// Resolve finds a record by exact ID or by a unique ID prefix, the way
// short commit hashes are resolved.
func Resolve(ctx context.Context, s Store, ledgerID, ref string) (Record, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Record{}, fmt.Errorf("record id is required")
	}

	records, err := s.List(ctx, ledgerID)
	if err != nil {
		return Record{}, err
	}

	var matches []Record
	for _, r := range records {
		if r.ID == ref {
			return r, nil
		}
		if len(ref) >= minPrefix && strings.HasPrefix(r.ID, ref) {
			matches = append(matches, r)
		}
	}

	switch len(matches) {
	case 0:
		return Record{}, fmt.Errorf("record '%s': %w", ref, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return Record{}, fmt.Errorf("'%s' matches %d records: %w", ref, len(matches), ErrAmbiguousID)
	}
}

// ShortID returns the display form of a record ID.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
