package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"potcache/internal/ports/output"
)

var (
	_ output.LedgerStore = (*LedgerRepository)(nil)
	_ output.PassLocker  = (*LedgerRepository)(nil)
)

// ledgerLockID is the pg_advisory_lock key guarding compile passes.
const ledgerLockID int64 = 0x706f746361636865

// LedgerRepository keeps the modification ledger in the translation_ledger table, so
// several hosts compiling into shared storage see the same ledger.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

func (r *LedgerRepository) Load(ctx context.Context) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, modified_at FROM translation_ledger`)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()

	entries := map[string]int64{}
	for rows.Next() {
		var (
			key        string
			modifiedAt int64
		)
		if err := rows.Scan(&key, &modifiedAt); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		entries[key] = modifiedAt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return entries, nil
}

// Save replaces the table contents in a single transaction.
func (r *LedgerRepository) Save(ctx context.Context, entries map[string]int64) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM translation_ledger`); err != nil {
			return fmt.Errorf("clear ledger: %w", err)
		}
		if len(entries) == 0 {
			return nil
		}
		rows := make([][]any, 0, len(entries))
		for key, modifiedAt := range entries {
			rows = append(rows, []any{key, modifiedAt})
		}
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"translation_ledger"},
			[]string{"key", "modified_at"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("write ledger: %w", err)
		}
		return nil
	})
}

// Lock takes a session advisory lock on a dedicated connection until unlock is called.
func (r *LedgerRepository) Lock(ctx context.Context) (func() error, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire lock connection: %w", err)
	}
	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, ledgerLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("advisory lock: %w", err)
	}
	return func() error {
		defer conn.Release()
		if _, err := conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, ledgerLockID); err != nil {
			return fmt.Errorf("advisory unlock: %w", err)
		}
		return nil
	}, nil
}
