package output

import (
	"context"
	"errors"
)

// ErrLedgerCorrupt is returned by a LedgerStore whose persisted document cannot be decoded.
var ErrLedgerCorrupt = errors.New("ledger document is corrupt")

// LedgerStore persists the key -> modification time mapping.
type LedgerStore interface {
	// Load returns the stored mapping. A missing document yields an empty map.
	Load(ctx context.Context) (map[string]int64, error)
	// Save replaces the stored mapping with entries.
	Save(ctx context.Context, entries map[string]int64) error
}

// PassLocker serialises compile passes.
type PassLocker interface {
	// Lock blocks until the pass lock is held and returns the function releasing it.
	Lock(ctx context.Context) (unlock func() error, err error)
}
