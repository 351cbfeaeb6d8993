package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"shopfront/internal/config"
	"shopfront/internal/db"
	"shopfront/internal/logger"
	"shopfront/internal/migrate"

	"go.uber.org/zap"
)

func main() {
	down := flag.Int("down", 0, "roll back this many migrations instead of applying")
	status := flag.Bool("status", false, "print the applied schema version and exit")
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.FromEnv()
	if err != nil {
		logger.New("info", "json").Fatal("load config", zap.Error(err))
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat).With(zap.String("service", "shopfront-migrate"))

	err = run(cfg, log, *down, *status)
	if err != nil {
		log.Error("shopfront-migrate failed", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger, down int, status bool) error {
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, log)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	switch {
	case status:
	case down > 0:
		if err := migrate.Rollback(ctx, pool, log, down); err != nil {
			return fmt.Errorf("roll back migrations: %w", err)
		}
		log.Info("migrations rolled back", zap.Int("steps", down))
	default:
		if err := migrate.Apply(ctx, pool, log); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		log.Info("migrations applied")
	}

	version, dirty, err := migrate.Version(ctx, pool, log)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	log.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
