package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"shopfront/internal/config"
	"shopfront/internal/domain"
	"shopfront/internal/importer"
	"shopfront/internal/logger"
	productrepo "shopfront/internal/repository/product"

	"go.uber.org/zap"
)

func main() {
	var (
		checkPath  string
		exportPath string
	)
	flag.StringVar(&checkPath, "check", "", "Path to a catalog CSV to validate")
	flag.StringVar(&exportPath, "export", "", "Write the built-in catalog as CSV to this path (- for stdout)")
	flag.Parse()

	if (checkPath == "") == (exportPath == "") {
		flag.Usage()
		os.Exit(2)
	}

	config.LoadDotEnv()
	log := logger.New(envOr("LOG_LEVEL", "info"), envOr("LOG_FORMAT", "console")).With(zap.String("service", "shopfront-importer"))

	var err error
	if checkPath != "" {
		err = check(log, checkPath)
	} else {
		err = export(log, exportPath)
	}
	if err != nil {
		log.Error("shopfront-importer failed", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func check(log *zap.Logger, path string) error {
	products, err := importer.LoadFile(path)
	if err != nil {
		return fmt.Errorf("catalog %s invalid: %w", path, err)
	}
	perCategory := map[domain.Category]int{}
	for _, p := range products {
		perCategory[p.Category]++
	}
	fields := []zap.Field{zap.String("path", path), zap.Int("products", len(products))}
	for c, n := range perCategory {
		fields = append(fields, zap.Int(string(c), n))
	}
	log.Info("catalog valid", fields...)
	return nil
}

func export(log *zap.Logger, path string) (err error) {
	products, err := productrepo.NewStatic(nil).List(context.Background())
	if err != nil {
		return fmt.Errorf("list catalog: %w", err)
	}

	var out io.Writer = os.Stdout
	if path != "-" {
		f, createErr := os.Create(path)
		if createErr != nil {
			return fmt.Errorf("create export file: %w", createErr)
		}
		defer func() { err = errors.Join(err, f.Close()) }()
		out = f
	}
	if err := importer.Write(out, products); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	if path != "-" {
		log.Info("catalog exported", zap.String("path", path), zap.Int("products", len(products)))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
