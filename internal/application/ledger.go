package application

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"maps"
	"os"

	"potcache/internal/ports/output"
)

// LedgerKey returns the key a compiled file is recorded under: the hex SHA-1 of its path.
func LedgerKey(path string) string {
	sum := sha1.Sum([]byte(path))
	return hex.EncodeToString(sum[:])
}

// ModifiedLedger tracks the modification time of every compiled file as of its last
// generation. It is owned by a single compile pass and is not safe for concurrent use.
type ModifiedLedger struct {
	store   output.LedgerStore
	entries map[string]int64
}

func NewModifiedLedger(store output.LedgerStore) *ModifiedLedger {
	return &ModifiedLedger{
		store:   store,
		entries: map[string]int64{},
	}
}

// Load replaces the in-memory entries with the stored ones. A corrupt document is
// logged and treated as an empty ledger.
func (l *ModifiedLedger) Load(ctx context.Context) error {
	entries, err := l.store.Load(ctx)
	if err != nil {
		if errors.Is(err, output.ErrLedgerCorrupt) {
			log.Printf("ledger: resetting unreadable ledger: %v", err)
			l.entries = map[string]int64{}
			return nil
		}
		return fmt.Errorf("load ledger: %w", err)
	}
	if entries == nil {
		entries = map[string]int64{}
	}
	l.entries = entries
	return nil
}

// Get returns the recorded timestamp for key, 0 when absent.
func (l *ModifiedLedger) Get(key string) int64 {
	return l.entries[key]
}

// Add records the current modification time of path.
func (l *ModifiedLedger) Add(path string) error {
	mtime, err := l.modTime(path)
	if err != nil {
		return err
	}
	l.entries[LedgerKey(path)] = mtime
	return nil
}

// IsModified reports whether path changed on disk after it was last recorded.
func (l *ModifiedLedger) IsModified(path string) (bool, error) {
	mtime, err := l.modTime(path)
	if err != nil {
		return false, err
	}
	return l.Get(LedgerKey(path)) < mtime, nil
}

// IsStale reports whether since is newer than the timestamp recorded for path.
func (l *ModifiedLedger) IsStale(path string, since int64) bool {
	return l.Get(LedgerKey(path)) < since
}

// Put writes the whole ledger back to the store.
func (l *ModifiedLedger) Put(ctx context.Context) error {
	if err := l.store.Save(ctx, l.entries); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

func (l *ModifiedLedger) Len() int {
	return len(l.entries)
}

// Snapshot returns a copy of the current entries.
func (l *ModifiedLedger) Snapshot() map[string]int64 {
	return maps.Clone(l.entries)
}

func (l *ModifiedLedger) modTime(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.ModTime().Unix(), nil
}
