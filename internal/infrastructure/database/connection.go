package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	applicationName = "potcache"

	// A compile pass holds one connection for the advisory lock and borrows
	// one more for the ledger transaction.
	ledgerMaxConns = 4
)

// NewPool opens the pool backing the ledger and checks the server is reachable.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := poolConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open ledger pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping ledger database %s: %w", cfg.ConnConfig.Host, err)
	}
	log.Printf("✅ ledger database connected (host=%s db=%s)", cfg.ConnConfig.Host, cfg.ConnConfig.Database)
	return pool, nil
}

// poolConfig parses dsn and tags the connections with the application name unless
// the dsn already sets one. A dsn asking for more connections keeps its own limit.
func poolConfig(dsn string) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse ledger database url: %w", err)
	}
	if _, ok := cfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		cfg.ConnConfig.RuntimeParams["application_name"] = applicationName
	}
	if cfg.MaxConns < ledgerMaxConns {
		cfg.MaxConns = ledgerMaxConns
	}
	return cfg, nil
}
