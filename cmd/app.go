package main

import (
	"context"
	"fmt"

	"github.com/DanRulev/flashbot.git/internal/api"
	"github.com/DanRulev/flashbot.git/internal/bot"
	"github.com/DanRulev/flashbot.git/internal/client"
	"github.com/DanRulev/flashbot.git/internal/config"
	"github.com/DanRulev/flashbot.git/internal/repository"
	"github.com/DanRulev/flashbot.git/internal/service"
	"github.com/DanRulev/flashbot.git/internal/storage/cache"
	"github.com/DanRulev/flashbot.git/internal/storage/db"
	"github.com/DanRulev/flashbot.git/internal/storage/memory"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type frontends struct {
	bot bool
	api bool
}

func run(ctx context.Context, fe frontends) error {
	cfg, err := config.Init()
	if err != nil {
		return fmt.Errorf("failed load config: %w", err)
	}
	if err := cfg.Validate(fe.bot); err != nil {
		return err
	}

	logger := setupLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	repos, closeStorage, err := initStorage(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Error("failed init storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
		return err
	}
	defer closeStorage()

	clients := client.InitClients(cfg.Weather)
	services := service.InitServices(clients, repos, logger)

	g, gctx := errgroup.WithContext(ctx)

	if fe.bot {
		sessions, closeCache, err := initCache(cfg.Cache, logger)
		if err != nil {
			logger.Error("failed init session cache", zap.String("driver", cfg.Cache.Driver), zap.Error(err))
			return err
		}
		defer closeCache()

		handler, err := bot.NewTelegramAPI(cfg.BotToken, cfg.Env, services, sessions, cfg.App.Timeout, logger)
		if err != nil {
			logger.Error("failed init telegram bot", zap.Error(err))
			return err
		}
		g.Go(func() error {
			return handler.Start(gctx)
		})
	}

	if fe.api {
		if cfg.Env != "development" {
			gin.SetMode(gin.ReleaseMode)
		}
		router := api.NewRouter(api.NewHandler(services, logger))
		server := api.NewServer(cfg.HTTP.Addr, router, logger)
		g.Go(func() error {
			return server.Start(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("stopped with error", zap.Error(err))
		return err
	}
	logger.Info("shutdown complete")
	return nil
}

// initStorage picks the card store. memory keeps everything for the life of
// the process only.
func initStorage(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (service.RepositoryI, func(), error) {
	var (
		conn *sqlx.DB
		err  error
	)

	switch cfg.Driver {
	case "postgres":
		conn, err = db.InitPostgres(cfg.DB)
	case "sqlite":
		conn, err = db.InitSQLite(cfg.SQLite)
	default:
		logger.Info("using in-memory storage")
		return memory.NewStore(), func() {}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	if err := repository.Migrate(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	closeFn := func() {
		if err := conn.Close(); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}
	return repository.NewRepository(conn), closeFn, nil
}

func initCache(cfg config.CacheConfig, logger *zap.Logger) (bot.SessionCache, func(), error) {
	if cfg.Driver != "redis" {
		return cache.NewCache(), func() {}, nil
	}

	rdb, err := cache.InitRedis(cfg.Redis)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	return cache.NewRedisCache(rdb, cfg.TTL), closeFn, nil
}
