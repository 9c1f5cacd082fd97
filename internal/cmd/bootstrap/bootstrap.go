// Package bootstrap composes the persistence facade from environment
// configuration, shared by every councilpulse binary.
package bootstrap

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/utechsu/councilpulse/internal/assessment/storage"
	"github.com/utechsu/councilpulse/internal/assessment/storage/memory"
	"github.com/utechsu/councilpulse/internal/assessment/storage/sheets"
	"github.com/utechsu/councilpulse/internal/assessment/storage/sqlite"
	"github.com/utechsu/councilpulse/internal/assessment/store"
)

// StoreConfig selects the local tier and the optional remote tier.
type StoreConfig struct {
	// DBPath enables the durable sqlite local store. Empty keeps the
	// collection in memory for the life of the process.
	DBPath string `env:"COUNCILPULSE_DB_PATH"`

	UseSheets bool `env:"COUNCILPULSE_USE_SHEETS" envDefault:"false"`
	// SheetsCredentials holds service-account JSON inline, or a file path
	// prefixed with "@".
	SheetsCredentials string `env:"COUNCILPULSE_SHEETS_CREDENTIALS"`
	SpreadsheetID     string `env:"COUNCILPULSE_SPREADSHEET_ID"`
}

// OpenStore builds the facade. A misconfigured or unreachable remote tier
// is logged once and the session continues local-only; a broken local tier
// is fatal.
func OpenStore(ctx context.Context, cfg StoreConfig) (*store.Store, error) {
	local, err := openLocal(cfg)
	if err != nil {
		return nil, err
	}

	remote, err := openRemote(ctx, cfg)
	if err != nil {
		log.Printf("remote backend disabled for this session: %v", err)
		remote = nil
	}

	return store.New(local, remote), nil
}

func openLocal(cfg StoreConfig) (storage.Local, error) {
	if cfg.DBPath == "" {
		return memory.New(), nil
	}
	st, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	return st, nil
}

func openRemote(ctx context.Context, cfg StoreConfig) (storage.Remote, error) {
	if !cfg.UseSheets {
		return nil, nil
	}

	creds, err := loadCredentials(cfg.SheetsCredentials)
	if err != nil {
		return nil, err
	}
	remote, err := sheets.New(ctx, sheets.Config{
		SpreadsheetID:   cfg.SpreadsheetID,
		CredentialsJSON: creds,
	})
	if err != nil {
		return nil, fmt.Errorf("configure spreadsheet backend: %w", err)
	}
	return remote, nil
}

// loadCredentials resolves the credentials setting: "@path" reads a file,
// anything else is taken as inline JSON.
func loadCredentials(value string) ([]byte, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("spreadsheet credentials are not set")
	}
	if path, ok := strings.CutPrefix(value, "@"); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		return data, nil
	}
	return []byte(value), nil
}
