// Package main provides a gamedata validation tool: it loads every
// definition table and reports per-table counts, failing on the first
// parse error.
package main

import (
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/gamedata/internal/config"
	"github.com/cory-johannsen/gamedata/internal/game/data"
	"github.com/cory-johannsen/gamedata/internal/game/object"
	"github.com/cory-johannsen/gamedata/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	dataDir := flag.String("data-dir", "", "override the gamedata directory from the config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	names, err := data.Load()
	if err != nil {
		logger.Fatal("loading name tables", zap.Error(err))
	}

	loader := object.NewLoader(logger, names, cfg.Data.Dir)
	cat, err := loader.LoadAll()
	if err != nil {
		logger.Fatal("loading gamedata", zap.Error(err))
	}
	defer loader.Cleanup()

	logger.Info("gamedata valid",
		zap.Int("projections", len(cat.Projections)),
		zap.Int("bases", len(cat.Bases)),
		zap.Int("slays", len(cat.Slays)),
		zap.Int("brands", len(cat.Brands)),
		zap.Int("curses", len(cat.Curses)),
		zap.Int("activations", len(cat.Activations)),
		zap.Int("kinds", len(cat.Kinds)),
		zap.Int("egos", len(cat.Egos)),
		zap.Int("artifacts", cat.ArtifactCount()),
		zap.Int("properties", len(cat.Properties)),
		zap.Int("calculations", len(cat.Calculations)),
		zap.Duration("elapsed", time.Since(start)),
	)
}
