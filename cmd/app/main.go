package main

import (
	"flag"
	"log"
	"os"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/di"
	"github.com/tj309c/FLWSTradingLiveUpdates/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// Load config (env overrides for secrets)
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s symbol=%s interval=%s", cfg.Environment, cfg.Monitor.Symbol, cfg.Monitor.Interval)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until session end, run-once, or signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
