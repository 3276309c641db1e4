package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"potcache/internal/application"
	"potcache/internal/config"
	"potcache/internal/domain"
	"potcache/internal/infrastructure/database"
	"potcache/internal/infrastructure/filesystem"
	"potcache/internal/infrastructure/gettext"
	"potcache/internal/infrastructure/i18n"
	"potcache/internal/infrastructure/ledgerfile"
	"potcache/internal/ports/output"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	staleness, err := application.ParseStaleness(cfg.Staleness)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	ctx := context.Background()
	layout := domain.NewLayout(cfg.Root)

	var (
		store  output.LedgerStore = ledgerfile.NewStore(layout.LedgerPath())
		locker output.PassLocker  = filesystem.NewFileLock(layout.LockPath())
	)
	if cfg.LedgerDatabaseURL != "" {
		if err := database.RunMigrations(cfg.LedgerDatabaseURL); err != nil {
			log.Fatalf("❌ ledger migrations: %v", err)
		}
		pool, err := database.NewPool(ctx, cfg.LedgerDatabaseURL)
		if err != nil {
			log.Fatalf("❌ ledger database: %v", err)
		}
		defer pool.Close()
		repo := database.NewLedgerRepository(pool)
		store, locker = repo, repo
	}

	compiler := application.NewCompiler(
		layout,
		store,
		locker,
		gettext.NewExtractor(),
		i18n.NewGenerator(),
		staleness,
	)
	preparer := application.NewPreparer(
		filesystem.NewSourceScanner(layout),
		filesystem.NewCompiledStore(layout),
		compiler,
		cfg.Locale,
	)

	translator := i18n.NewTranslator(cfg.Locale)
	if err := preparer.Prepare(ctx, translator); err != nil {
		log.Printf("❌ preparing translations: %v", err)
		os.Exit(1)
	}

	for _, id := range os.Args[1:] {
		fmt.Println(translator.T(cfg.Locale, id, nil))
	}
}
