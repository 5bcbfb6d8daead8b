package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"randeval/adapters/stats/tests"
	"randeval/app"
	"randeval/internal"
	"randeval/internal/config"
	"randeval/ui"
)

func main() {
	_ = godotenv.Load()

	logger := internal.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	registry := tests.DefaultRegistry(cfg.Analysis.ChiIntervals, cfg.Analysis.RunsThreshold)
	svc := app.NewBatteryService(registry, logger)
	server := ui.NewServer(svc, cfg.Analysis, logger)

	addr := ":" + cfg.Server.Port
	logger.Info("listening on %s", addr)
	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		logger.Error("server stopped: %v", err)
		os.Exit(1)
	}
}
