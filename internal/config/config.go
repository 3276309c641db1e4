package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

type Config struct {
	Root              string
	Locale            string
	Staleness         string
	LedgerDatabaseURL string
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	// .env is optional when the variables come from the environment.
	_ = godotenv.Load()

	cfg := &Config{
		Root:              os.Getenv("APP_ROOT"),
		Locale:            os.Getenv("APP_LOCALE"),
		Staleness:         os.Getenv("STALENESS"),
		LedgerDatabaseURL: os.Getenv("LEDGER_DATABASE_URL"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate fills defaults and checks every value.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Root) == "" {
		c.Root = "."
	}
	root, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("config: APP_ROOT invalid (%q): %w", c.Root, err)
	}
	c.Root = root

	if strings.TrimSpace(c.Locale) == "" {
		c.Locale = "en"
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("config: APP_LOCALE invalid (%q): %w", c.Locale, err)
	}

	switch c.Staleness {
	case "":
		c.Staleness = "source"
	case "source", "compiled":
	default:
		return fmt.Errorf("config: STALENESS must be \"source\" or \"compiled\", got %q", c.Staleness)
	}

	if c.LedgerDatabaseURL == "" {
		return nil
	}
	parsed, err := url.Parse(c.LedgerDatabaseURL)
	if err != nil {
		return fmt.Errorf("config: LEDGER_DATABASE_URL invalid (%q): %w", c.LedgerDatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: LEDGER_DATABASE_URL invalid (%q): missing scheme or host", c.LedgerDatabaseURL)
	}

	return nil
}
