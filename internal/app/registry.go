package app

import (
	"database/sql"
	"fmt"

	"go-leave/internal/auth"
	"go-leave/internal/auth/password"
	"go-leave/internal/config"
	"go-leave/internal/employee"
	"go-leave/internal/leave"
	"go-leave/internal/metrics"
	"go-leave/internal/notification"
	"go-leave/internal/rbac"
	"go-leave/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps holds the shared infrastructure handed to every module.
type deps struct {
	cfg     *config.Config
	db      *sql.DB
	gormDB  *gorm.DB
	rdb     *redis.Client
	metrics *metrics.Registry
	logger  *zap.Logger
}

// newDispatcher memilih jalur notifikasi: outbox bila Kafka dikonfigurasi,
// SMTP langsung bila mail dikonfigurasi, selain itu noop.
func newDispatcher(cfg *config.Config, db *sql.DB) notification.Dispatcher {
	switch {
	case cfg.Kafka.Enabled():
		return notification.NewOutboxDispatcher(db, cfg.Kafka.NotificationTopic)
	case cfg.Mail.Enabled():
		return notification.NewSMTPDispatcher(cfg.Mail)
	default:
		return notification.Noop{}
	}
}

func leaveOptions(d deps) []leave.Option {
	opts := []leave.Option{leave.WithLogger(d.logger)}
	if d.metrics != nil {
		opts = append(opts, leave.WithObserver(d.metrics))
	}
	if d.cfg.Leave.SlotGuard == config.SlotGuardRedis && d.rdb != nil {
		opts = append(opts, leave.WithSlotGuard(leave.NewRedisSlotGuard(d.rdb, d.cfg.Leave.SlotLockTTL, d.logger)))
	}
	return opts
}

func registerModules(router *gin.Engine, d deps) error {
	cfg := d.cfg

	hasher, err := password.New(cfg.Auth)
	if err != nil {
		return err
	}

	// --- Repositories ---
	employeeRepo := employee.NewRepository(d.gormDB)
	leaveRepo := leave.NewRepository(d.gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return fmt.Errorf("build enforcer: %w", err)
	}
	rbacService, err := rbac.NewService(rbac.NewStaticRepository(), enforcer, d.logger)
	if err != nil {
		return fmt.Errorf("load rbac policy: %w", err)
	}

	// --- Services ---
	employeeService := employee.NewService(d.db, employeeRepo, hasher, d.rdb, d.logger)
	authService := auth.NewService(employeeService, cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, d.logger)
	leaveService := leave.NewService(d.db, leaveRepo, employeeService, newDispatcher(cfg, d.db), leaveOptions(d)...)

	// --- Handlers ---
	var importObserver employee.ImportObserver
	if d.metrics != nil {
		importObserver = d.metrics
	}
	authHandler := auth.NewHandler(authService, cfg.App.IsProduction(), cfg.Auth.AccessTokenTTL, d.logger)
	employeeHandler := employee.NewHandler(employeeService, importObserver, d.logger)
	leaveHandler := leave.NewHandler(leaveService, d.logger)
	rbacHandler := rbac.NewHandler(rbacService, d.logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, cfg.Auth.JWTSecret)
		employee.RegisterRoutes(api, employeeHandler, rbacService, cfg.Auth.JWTSecret, d.logger)
		leave.RegisterRoutes(api, leaveHandler, rbacService, d.rdb, cfg.Auth.JWTSecret, d.logger)
		rbac.RegisterRoutes(api, rbacHandler, cfg.Auth.JWTSecret)
	}

	return nil
}
