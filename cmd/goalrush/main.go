package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/goalrush/goalrush/internal/api"
	"github.com/goalrush/goalrush/internal/config"
	"github.com/goalrush/goalrush/internal/game"
	"github.com/goalrush/goalrush/internal/service"
	"github.com/goalrush/goalrush/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	catalog, err := game.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	eco := game.DefaultEconomy()
	if cfg.EconomyPath != "" {
		eco, err = game.LoadEconomy(cfg.EconomyPath)
		if err != nil {
			return fmt.Errorf("loading economy: %w", err)
		}
	}

	var st store.Store
	switch cfg.StoreKind {
	case "file":
		st = store.NewFileStore(cfg.DataPath)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		st = store.NewRedisStore(client)
	default:
		return fmt.Errorf("unknown store kind %q", cfg.StoreKind)
	}

	ctx := context.Background()
	svc, err := service.New(ctx, catalog, eco, st)
	if err != nil {
		return fmt.Errorf("restoring accounts: %w", err)
	}

	slog.Info("goalrush listening",
		"addr", cfg.Addr,
		"catalog", catalog.Size(),
		"store", cfg.StoreKind,
	)
	return api.NewServer(svc).Run(cfg.Addr)
}
