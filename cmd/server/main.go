package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vineetm1204-m/ODAutomation/config"
	"github.com/vineetm1204-m/ODAutomation/internal/api/handler"
	"github.com/vineetm1204-m/ODAutomation/internal/api/router"
	"github.com/vineetm1204-m/ODAutomation/internal/repository"
	"github.com/vineetm1204-m/ODAutomation/internal/service"
	"github.com/vineetm1204-m/ODAutomation/pkg/database"
	applogger "github.com/vineetm1204-m/ODAutomation/pkg/logger"
	"github.com/vineetm1204-m/ODAutomation/pkg/mailer"
	"github.com/vineetm1204-m/ODAutomation/pkg/metrics"
	"github.com/vineetm1204-m/ODAutomation/pkg/redis"
)

func main() {
	// 1. config
	cfg, err := config.Load(os.Getenv("ODMAIL_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting od mail server",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("form_layout", cfg.Feature.FormLayout),
	)

	// 3. database (optional)
	var db *gorm.DB
	if cfg.Database.Enabled {
		db, err = database.NewDB(&cfg.Database, cfg.Log.Level, logger)
		if err != nil {
			logger.Fatal("database connection failed", zap.Error(err))
		}
		sqlDB, err := db.DB()
		if err != nil {
			logger.Fatal("failed to get sql.DB", zap.Error(err))
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			logger.Fatal("database migration failed", zap.Error(err))
		}
	} else {
		logger.Info("database disabled, using file reference data and in-memory dispatch log")
	}

	// 4. redis (optional; on failure fall back to in-memory sessions)
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, sessions kept in memory and rate limiting off", zap.Error(err))
			rdb = nil
		}
	}

	// 5. mail relay
	relay, err := mailer.New(context.Background(), &cfg.Mail)
	if err != nil {
		logger.Fatal("mail relay setup failed", zap.Error(err))
	}
	if relay == nil {
		logger.Warn("mail disabled, /api/send-email will answer 503")
	} else {
		logger.Info("mail relay configured", zap.String("relay", relay.Name()))
	}

	// 6. wiring: repository → service → handler
	m := metrics.New()
	repo := repository.NewRepository(repository.Options{
		DB:         db,
		Redis:      rdb,
		StaticDir:  cfg.Server.StaticDir,
		SessionTTL: cfg.Server.SessionTTL,
		Logger:     logger,
	})
	svc := service.NewService(cfg, repo, relay, m, logger)
	h := handler.NewHandler(svc, cfg.Server.UploadDir)

	// 7. router
	engine := router.Setup(cfg, h, rdb, m, logger)

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr), zap.String("base_url", cfg.Server.BaseURL))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	if db != nil {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
