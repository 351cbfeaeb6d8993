package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shopfront/internal/config"
	"shopfront/internal/domain"
	"shopfront/internal/httpserver"
	"shopfront/internal/importer"
	"shopfront/internal/logger"
	categoryrepo "shopfront/internal/repository/category"
	productrepo "shopfront/internal/repository/product"
	anonymoussvc "shopfront/internal/service/anonymous"
	authsvc "shopfront/internal/service/auth"
	categorysvc "shopfront/internal/service/category"
	checkoutsvc "shopfront/internal/service/checkout"
	lenssvc "shopfront/internal/service/lens"
	productsvc "shopfront/internal/service/product"
	"shopfront/internal/storage"
	"shopfront/internal/store"
	"shopfront/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	foundEnv := config.LoadDotEnv()
	cfg, err := config.FromEnv()
	if err != nil {
		// logger is not configured yet
		boot := logger.New("info", "json")
		boot.Fatal("load config", zap.Error(err))
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat).With(zap.String("service", "shopfront-api"))
	log.Info("config loaded",
		zap.String("env", cfg.Env),
		zap.String("storage", cfg.StorageDriver),
		zap.Bool("dotenv", foundEnv),
	)

	err = run(cfg, log)
	if err != nil {
		log.Error("shopfront-api exited", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup always happens.
func run(cfg config.Config, log *zap.Logger) error {
	if cfg.Env == config.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer backend.Close()

	products, err := loadCatalog(cfg.CatalogCSV, log)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := telemetry.New("shopfront", reg)

	storeLog := log.Named("store")
	stores := store.NewRegistry(backend.Repo,
		store.WithLogger(storeLog),
		store.WithObserver(metrics),
	)
	go stores.RunSweeper(ctx, cfg.SessionCacheSweep, cfg.SessionCacheIdle, func(evicted, cached int) {
		metrics.SetActiveSessions(cached)
		if evicted > 0 {
			storeLog.Debug("idle sessions evicted", zap.Int("evicted", evicted), zap.Int("cached", cached))
		}
	})

	productService := productsvc.New(productrepo.NewStatic(products))
	categoryService := categorysvc.New(categoryrepo.NewStatic())
	sessionService := anonymoussvc.New(cfg.SessionSecret, cfg.SessionTTL)
	checkoutService := checkoutsvc.New(checkoutsvc.Config{
		FreeShippingThreshold: cfg.Pricing.FreeShippingThreshold,
		DeliveryFee:           cfg.Pricing.DeliveryFee,
		PaymentDelay:          cfg.Delays.Payment,
	},
		checkoutsvc.WithLogger(log.Named("checkout")),
		checkoutsvc.WithRecorder(metrics),
	)
	authLog := log.Named("auth")
	authService := authsvc.New(authsvc.Config{Delay: cfg.Delays.OTP},
		authsvc.NewLogNotifier(authLog), authLog, metrics)
	suggester := lenssvc.NewRandomSuggester(productService, cfg.Delays.Lens)

	srv, err := httpserver.New(cfg.HTTPAddr, log, httpserver.Deps{
		ProductSvc:  productService,
		CategorySvc: categoryService,
		SessionSvc:  sessionService,
		Stores:      stores,
		CheckoutSvc: checkoutService,
		AuthSvc:     authService,
		Lens:        suggester,
		Metrics:     metrics,
		Ready:       backend.Ready,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stopCh:
		log.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case runErr = <-serverErr:
		log.Error("server error", zap.Error(runErr))
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		return errors.Join(runErr, err)
	}
	log.Info("server stopped")
	return runErr
}

// loadCatalog returns nil, meaning the built-in catalog, when path is empty.
func loadCatalog(path string, log *zap.Logger) ([]domain.Product, error) {
	if path == "" {
		return nil, nil
	}
	products, err := importer.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog %s has no products", path)
	}
	log.Info("catalog loaded", zap.String("path", path), zap.Int("products", len(products)))
	return products, nil
}
