// Package ledgerfile stores the modification ledger as a JSON document.
package ledgerfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"potcache/internal/infrastructure/filesystem"
	"potcache/internal/ports/output"
)

var _ output.LedgerStore = (*Store)(nil)

// Store reads and writes a single JSON object mapping ledger keys to Unix timestamps.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load(ctx context.Context) (map[string]int64, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]int64{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]int64{}, nil
	}

	entries := map[string]int64{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", output.ErrLedgerCorrupt, s.path, err)
	}
	return entries, nil
}

func (s *Store) Save(ctx context.Context, entries map[string]int64) error {
	if entries == nil {
		entries = map[string]int64{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	if err := filesystem.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
