package record

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Subscriber delivers live snapshots of a ledger.
type Subscriber interface {
	// Subscribe calls onChange with the current records and again whenever
	// they change, until the returned unsubscribe function is called or ctx
	// is done. onChange is never called concurrently with itself, and the
	// unsubscribe function must not be called from inside it.
	Subscribe(ctx context.Context, ledgerID string, onChange func([]Record)) (func(), error)
}

// Poller turns any Store into a Subscriber by polling List.
type Poller struct {
	store    Store
	interval time.Duration
	// fullCheck forces a fingerprint comparison every fullCheck ticks even
	// when the revision is unchanged; a restarted server counts from zero
	// again.
	fullCheck int
}

// Watch returns a polling Subscriber over store.
func Watch(store Store, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Poller{store: store, interval: interval, fullCheck: 10}
}

// RevisionLister is implemented by stores that number every change to a
// ledger. An unchanged revision means an unchanged ledger, so the poller can
// skip fingerprinting it.
type RevisionLister interface {
	ListRevision(ctx context.Context, ledgerID string) ([]Record, uint64, error)
}

// snapshot is what the poller remembers from the last delivered list.
type snapshot struct {
	fingerprint string
	revision    uint64
	hasRevision bool
}

func (p *Poller) list(ctx context.Context, ledgerID string) ([]Record, uint64, bool, error) {
	if rl, ok := p.store.(RevisionLister); ok {
		records, rev, err := rl.ListRevision(ctx, ledgerID)
		return records, rev, true, err
	}
	records, err := p.store.List(ctx, ledgerID)
	return records, 0, false, err
}

// Subscribe loads the ledger once, synchronously, so a failing store is
// reported to the caller; later polling errors are skipped and retried on
// the next tick.
func (p *Poller) Subscribe(ctx context.Context, ledgerID string, onChange func([]Record)) (func(), error) {
	records, rev, hasRev, err := p.list(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	fp, err := Fingerprint(records)
	if err != nil {
		return nil, err
	}
	last := snapshot{fingerprint: fp, revision: rev, hasRevision: hasRev}
	onChange(records)

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for tick := 1; ; tick++ {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			records, rev, hasRev, err := p.list(ctx, ledgerID)
			if err != nil {
				continue
			}
			if hasRev && last.hasRevision && rev == last.revision && tick%p.fullCheck != 0 {
				continue
			}
			fp, err := Fingerprint(records)
			if err != nil {
				continue
			}
			last.revision, last.hasRevision = rev, hasRev
			if fp == last.fingerprint {
				continue
			}
			last.fingerprint = fp
			if ctx.Err() != nil {
				return
			}
			onChange(records)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}, nil
}

// Fingerprint hashes a record set independently of its order.
func Fingerprint(records []Record) (string, error) {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, r := range sorted {
		if err := enc.Encode(r); err != nil {
			return "", fmt.Errorf("fingerprint record '%s': %w", r.ID, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
