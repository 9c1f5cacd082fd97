package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	exportcmd "github.com/utechsu/councilpulse/internal/cmd/export"
)

func main() {
	cfg, err := exportcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[EXPORT] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := exportcmd.Run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("failed to export: %v", err)
	}
}
