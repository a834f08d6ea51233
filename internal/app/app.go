package app

import (
	"context"
	"database/sql"
	"errors"

	"go-leave/internal/bootstrap"
	"go-leave/internal/config"
	"go-leave/internal/metrics"
	"go-leave/internal/shared/connection"
	"go-leave/internal/shared/database"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisRetries = 5

type App struct {
	Router *gin.Engine

	cfg    *config.Config
	db     *sql.DB
	rdb    *redis.Client
	logger *zap.Logger
}

// BuildApp menyiapkan infrastruktur lalu mendaftarkan seluruh modul.
func BuildApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	log := logger.Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	log.Info("database connection established")

	if cfg.Database.Migrate {
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis, redisRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		log.Info("redis connection established")
	}

	reg := metrics.NewRegistry()
	router := bootstrap.NewRouter(cfg, reg, logger)

	// 2. Register Modules & Routes
	if err := registerModules(router, deps{
		cfg:     cfg,
		db:      sqlDB,
		gormDB:  gormDB,
		rdb:     rdb,
		metrics: reg,
		logger:  logger,
	}); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &App{Router: router, cfg: cfg, db: sqlDB, rdb: rdb, logger: log}, nil
}

// Run melayani HTTP sampai ctx selesai.
func (a *App) Run(ctx context.Context) error {
	server := bootstrap.NewHTTPServer(a.Router, a.cfg.Server)
	return bootstrap.Serve(ctx, server, bootstrap.NewZapAuditLogger(a.logger))
}

func (a *App) Close() error {
	var errs []error
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
