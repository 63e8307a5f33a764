package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/tuannm99/relstore"
	"github.com/tuannm99/relstore/internal"
	"github.com/tuannm99/relstore/server/relwire"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to yaml config")
	flag.Parse()

	cfg, err := internal.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	level := slog.LevelInfo
	if cfg.Server.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := os.MkdirAll(cfg.Storage.Workdir, 0o755); err != nil {
		log.Fatalf("create workdir: %v", err)
	}

	store := relstore.Open(cfg.Storage.Workdir)
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("final snapshot failed", "error", err)
		}
	}()

	slog.Info("starting", "app", cfg.AppName, "workdir", cfg.Storage.Workdir)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	if err := relwire.Run(relwire.ServerConfig{Addr: addr, Store: store}); err != nil {
		log.Fatalf("server: %v", err)
	}
}
