package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"shopfront/internal/config"
	"shopfront/internal/logger"
	productrepo "shopfront/internal/repository/product"
	"shopfront/internal/seed"
	anonymoussvc "shopfront/internal/service/anonymous"
	productsvc "shopfront/internal/service/product"
	"shopfront/internal/storage"
	"shopfront/internal/store"

	"go.uber.org/zap"
)

func main() {
	token := flag.String("token", "", "Seed the session behind this bearer token instead of issuing a new one")
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.FromEnv()
	if err != nil {
		logger.New("info", "json").Fatal("load config", zap.Error(err))
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat).With(zap.String("service", "shopfront-seed"))

	err = run(cfg, log, *token)
	if err != nil {
		log.Error("shopfront-seed failed", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger, token string) error {
	if cfg.StorageDriver == config.StorageMemory {
		return errors.New("seeding needs a persistent STORAGE_DRIVER (postgres or redis)")
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer backend.Close()

	sessions := anonymoussvc.New(cfg.SessionSecret, cfg.SessionTTL)
	var issued anonymoussvc.Token
	if token == "" {
		issued, err = sessions.Issue(ctx)
	} else {
		issued, err = sessions.Refresh(ctx, token)
	}
	if err != nil {
		return fmt.Errorf("resolve session: %w", err)
	}

	st := store.NewRegistry(backend.Repo, store.WithLogger(log.Named("store"))).Get(ctx, issued.SessionID)
	applied, err := seed.Apply(ctx, productsvc.New(productrepo.NewStatic(nil)), st)
	if err != nil {
		return fmt.Errorf("seed apply: %w", err)
	}
	if st.Degraded() {
		return errors.New("session state could not be persisted")
	}

	log.Info("seed finished", zap.String("session_id", issued.SessionID), zap.Bool("applied", applied))
	fmt.Println(issued.AccessToken)
	return nil
}
