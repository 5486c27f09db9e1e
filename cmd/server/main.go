package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kronika/internal/cache"
	"github.com/kronika/internal/config"
	"github.com/kronika/internal/db"
	"github.com/kronika/internal/logger"
	"github.com/kronika/internal/router"
)

func main() {
	// A missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	gin.SetMode(cfg.GinMode)

	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}

	if err := db.EnsureUser(gdb, cfg.AdminUserName, cfg.AdminPassword, db.RoleAdmin); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure admin account")
	}

	var store cache.Store
	if cfg.RedisAddr != "" {
		redisStore, err := cache.NewRedis(context.Background(), cfg.RedisAddr)
		if err != nil {
			logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, using in-memory cache")
		} else {
			store = redisStore
		}
	}
	if store == nil {
		store = cache.NewMemory()
	}

	r := router.Setup(gdb, store, cfg)
	logger.Info().Str("addr", cfg.ListenAddr).Msg("starting server")
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
