package main

import (
	"flag"
	"log"
	"os"

	"StockCast/internal/di"
	"StockCast/internal/service/model"
	"StockCast/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s history=%s model=%s", cfg.Environment, cfg.History.Backend, cfg.Model.Path)

	if !model.Exists(cfg.Model.Path) {
		log.Printf("warning: model artifact not found at %s, prediction requests will fail", cfg.Model.Path)
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
