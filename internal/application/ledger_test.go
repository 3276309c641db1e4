package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"potcache/internal/infrastructure/ledgerfile"
)

// memoryStore is an in-memory LedgerStore that counts calls.
type memoryStore struct {
	entries map[string]int64
	loadErr error
	loads   int
	saves   int
}

func (m *memoryStore) Load(ctx context.Context) (map[string]int64, error) {
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := map[string]int64{}
	for k, v := range m.entries {
		out[k] = v
	}
	return out, nil
}

func (m *memoryStore) Save(ctx context.Context, entries map[string]int64) error {
	m.saves++
	m.entries = map[string]int64{}
	for k, v := range entries {
		m.entries[k] = v
	}
	return nil
}

func writeFileAt(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	touch(t, path, mtime)
}

func TestLedgerKey_IsStableHexSHA1(t *testing.T) {
	key := LedgerKey("/tmp/app/storage/lang/en/messages.toml")
	if len(key) != 40 {
		t.Fatalf("expected 40 hex chars, got %q", key)
	}
	if key != LedgerKey("/tmp/app/storage/lang/en/messages.toml") {
		t.Fatalf("key is not deterministic")
	}
	if key == LedgerKey("/tmp/app/storage/lang/fr/messages.toml") {
		t.Fatalf("different paths must not share a key")
	}
}

func TestModifiedLedger_GetMissingIsZero(t *testing.T) {
	l := NewModifiedLedger(&memoryStore{})
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := l.Get("absent"); got != 0 {
		t.Fatalf("Get(absent) = %d, want 0", got)
	}
}

func TestModifiedLedger_AddAndIsModified(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.toml")
	writeFileAt(t, path, time.Unix(1000, 0))

	l := NewModifiedLedger(&memoryStore{})
	modified, err := l.IsModified(path)
	if err != nil {
		t.Fatalf("IsModified: %v", err)
	}
	if !modified {
		t.Fatalf("an unrecorded file must count as modified")
	}

	if err := l.Add(path); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := l.Get(LedgerKey(path)); got != 1000 {
		t.Fatalf("Get = %d, want 1000", got)
	}
	if modified, _ := l.IsModified(path); modified {
		t.Fatalf("file just recorded must not count as modified")
	}

	touch(t, path, time.Unix(2000, 0))
	if modified, _ := l.IsModified(path); !modified {
		t.Fatalf("newer on-disk time must count as modified")
	}
	touch(t, path, time.Unix(500, 0))
	if modified, _ := l.IsModified(path); modified {
		t.Fatalf("older on-disk time must not count as modified")
	}
}

func TestModifiedLedger_IsStale(t *testing.T) {
	l := NewModifiedLedger(&memoryStore{entries: map[string]int64{LedgerKey("/out.toml"): 100}})
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.IsStale("/out.toml", 100) {
		t.Errorf("equal timestamps are not stale")
	}
	if !l.IsStale("/out.toml", 101) {
		t.Errorf("newer source must be stale")
	}
	if !l.IsStale("/never.toml", 1) {
		t.Errorf("unrecorded file must be stale")
	}
}

func TestModifiedLedger_AddMissingFileFails(t *testing.T) {
	l := NewModifiedLedger(&memoryStore{})
	err := l.Add(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestModifiedLedger_PutWritesFullSnapshot(t *testing.T) {
	store := &memoryStore{entries: map[string]int64{"stale": 1}}
	l := NewModifiedLedger(store)
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	l.entries["fresh"] = 2
	delete(l.entries, "stale")

	if err := l.Put(context.Background()); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if diff := cmp.Diff(map[string]int64{"fresh": 2}, store.entries); diff != "" {
		t.Fatalf("stored ledger mismatch (-want +got):\n%s", diff)
	}
	if store.saves != 1 {
		t.Fatalf("expected 1 save, got %d", store.saves)
	}
}

func TestModifiedLedger_RoundTripThroughFile(t *testing.T) {
	dir := t.TempDir()
	ledgerPath := filepath.Join(dir, "languages.json")
	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")
	writeFileAt(t, a, time.Unix(100, 0))
	writeFileAt(t, b, time.Unix(50, 0))

	l := NewModifiedLedger(ledgerfile.NewStore(ledgerPath))
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, p := range []string{a, b} {
		if err := l.Add(p); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if err := l.Put(context.Background()); err != nil {
		t.Fatalf("Put: %v", err)
	}

	fresh := NewModifiedLedger(ledgerfile.NewStore(ledgerPath))
	if err := fresh.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(l.Snapshot(), fresh.Snapshot()); diff != "" {
		t.Fatalf("round trip mismatch (-put +load):\n%s", diff)
	}
	if fresh.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", fresh.Len())
	}
}

func TestModifiedLedger_StoreFailureSurfaces(t *testing.T) {
	cause := errors.New("permission denied")
	l := NewModifiedLedger(&memoryStore{loadErr: cause})
	if err := l.Load(context.Background()); !errors.Is(err, cause) {
		t.Fatalf("expected store error, got %v", err)
	}
}
