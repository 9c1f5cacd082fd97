// Package server parses server command flags and starts the assessment API.
package server

import (
	"context"
	"flag"
	"log"

	"github.com/utechsu/councilpulse/internal/cmd/bootstrap"
	entrypoint "github.com/utechsu/councilpulse/internal/platform/cmd"
	httpserver "github.com/utechsu/councilpulse/internal/server"
)

// Config holds server command configuration.
type Config struct {
	HTTP  httpserver.Config
	Store bootstrap.StoreConfig
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTP.HTTPAddr, "addr", cfg.HTTP.HTTPAddr, "The HTTP listen address")
	fs.StringVar(&cfg.Store.DBPath, "db-path", cfg.Store.DBPath, "The sqlite database path (empty keeps responses in memory)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the assessment API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceServer, func(ctx context.Context) error {
		st, err := bootstrap.OpenStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer func() {
			if err := st.Close(); err != nil {
				log.Printf("close store: %v", err)
			}
		}()

		srv, err := httpserver.New(cfg.HTTP, st)
		if err != nil {
			return err
		}
		return srv.ListenAndServe(ctx)
	})
}
