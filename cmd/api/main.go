package main

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-backoffice/internal/audit"
	"github.com/BruksfildServices01/barber-backoffice/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-backoffice/internal/db"
	appointmentdomain "github.com/BruksfildServices01/barber-backoffice/internal/domain/appointment"
	financedomain "github.com/BruksfildServices01/barber-backoffice/internal/domain/finance"
	stockdomain "github.com/BruksfildServices01/barber-backoffice/internal/domain/stock"
	"github.com/BruksfildServices01/barber-backoffice/internal/handlers"
	"github.com/BruksfildServices01/barber-backoffice/internal/infra/repository"
	"github.com/BruksfildServices01/barber-backoffice/internal/logger"
	"github.com/BruksfildServices01/barber-backoffice/internal/media"
	"github.com/BruksfildServices01/barber-backoffice/internal/middleware"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
	"github.com/BruksfildServices01/barber-backoffice/internal/server"
	appointmentuc "github.com/BruksfildServices01/barber-backoffice/internal/usecase/appointment"
	financeuc "github.com/BruksfildServices01/barber-backoffice/internal/usecase/finance"
	stockuc "github.com/BruksfildServices01/barber-backoffice/internal/usecase/stock"
	"github.com/BruksfildServices01/barber-backoffice/internal/webhook"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.Load,
			newLogger,
			newDB,
			newCache,
			newAuditDispatcher,
			audit.New,
			media.NewUploader,
			middleware.NewSessionStore,
			func(cfg *config.Config) *webhook.Client {
				return webhook.NewClient(cfg.WebhookTimeout, cfg.WebhookAllowPrivateNetworks)
			},
			func(cfg *config.Config) *webhook.Limiter { return webhook.NewLimiter(cfg.WebhookTestPerMinute) },
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),

		// repositories
		fx.Provide(
			fx.Annotate(repository.NewAppointmentGormRepository, fx.As(new(appointmentdomain.Repository))),
			fx.Annotate(repository.NewStockGormRepository, fx.As(new(stockdomain.Repository))),
			fx.Annotate(repository.NewFinanceGormRepository, fx.As(new(financedomain.Repository))),
		),

		// use cases
		fx.Provide(
			appointmentuc.NewListAppointments,
			appointmentuc.NewCreateAppointment,
			appointmentuc.NewRescheduleAppointment,
			appointmentuc.NewChangeStatus,
			appointmentuc.NewGetCalendar,
			appointmentuc.NewTodaySummary,
			stockuc.NewRecordMovement,
			stockuc.NewListHistory,
			stockuc.NewReconcile,
			financeuc.NewGetSummary,
			financeuc.NewGetDashboard,
		),

		// handlers
		fx.Provide(
			handlers.NewHealthHandler,
			handlers.NewAuthHandler,
			handlers.NewMeHandler,
			handlers.NewOrganizationHandler,
			handlers.NewAppointmentHandler,
			handlers.NewClientHandler,
			handlers.NewServiceHandler,
			handlers.NewProductHandler,
			handlers.NewStockHandler,
			handlers.NewExpenseHandler,
			handlers.NewFinanceHandler,
			handlers.NewStaffHandler,
			handlers.NewWorkingHoursHandler,
			handlers.NewIntegrationHandler,
			handlers.NewAuditLogsHandler,
		),

		fx.Provide(server.NewEngine),
		fx.Invoke(server.RunHTTP),
	)
	app.Run()
}

func newLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = log.Sync()
			return nil
		},
	})
	return log, nil
}

func newDB(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	return db, nil
}

// newCache uses Redis when REDIS_URL is set and a process-local cache otherwise.
func newCache(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (readcache.Cache, error) {
	if cfg.RedisURL == "" {
		log.Info("read cache: in-memory")
		return readcache.NewMemory(cfg.ReadCacheTTL), nil
	}

	client, err := readcache.NewRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	cache := readcache.NewRedis(client, cfg.ReadCacheTTL)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return cache.Close() },
	})

	log.Info("read cache: redis")
	return cache, nil
}

func newAuditDispatcher(lc fx.Lifecycle, l *audit.Logger, log *zap.Logger) *audit.Dispatcher {
	d := audit.NewDispatcher(l, log)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			d.Close()
			return nil
		},
	})
	return d
}
