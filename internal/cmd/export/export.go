// Package export parses export command flags and dumps the stored response
// collection to a writer in CSV or JSON form.
package export

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/utechsu/councilpulse/internal/assessment/export"
	"github.com/utechsu/councilpulse/internal/cmd/bootstrap"
	entrypoint "github.com/utechsu/councilpulse/internal/platform/cmd"
)

// Supported output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Config holds export command configuration.
type Config struct {
	Format string `env:"COUNCILPULSE_EXPORT_FORMAT" envDefault:"csv"`
	Store  bootstrap.StoreConfig
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format: csv or json")
	fs.StringVar(&cfg.Store.DBPath, "db-path", cfg.Store.DBPath, "The sqlite database path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads the configured store and writes the collection to w.
func Run(ctx context.Context, cfg Config, w io.Writer) error {
	if cfg.Format != FormatCSV && cfg.Format != FormatJSON {
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}
	if cfg.Store.DBPath == "" && !cfg.Store.UseSheets {
		return fmt.Errorf("nothing to export: set a database path or enable the remote backend")
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceExport, func(ctx context.Context) error {
		st, err := bootstrap.OpenStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer func() {
			if err := st.Close(); err != nil {
				log.Printf("close store: %v", err)
			}
		}()

		all, _, err := st.LoadAll(ctx)
		if err != nil {
			return fmt.Errorf("load responses: %w", err)
		}

		switch cfg.Format {
		case FormatJSON:
			return export.WriteJSON(w, all)
		default:
			return export.WriteCSV(w, all)
		}
	})
}
