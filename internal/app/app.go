package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/parkgo/parkgo/internal/config"
	"github.com/parkgo/parkgo/internal/notify"
	"github.com/parkgo/parkgo/internal/postgres"
	"github.com/parkgo/parkgo/internal/redis"
	postgresrepo "github.com/parkgo/parkgo/internal/repository/postgres"
	redisrepo "github.com/parkgo/parkgo/internal/repository/redis"
	"github.com/parkgo/parkgo/internal/service"
	"github.com/parkgo/parkgo/internal/tasks"
	httpgin "github.com/parkgo/parkgo/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	worker     *tasks.Worker
	scheduler  *tasks.Scheduler
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Name,
		cfg.Postgres.SSLMode,
	)

	pgxPool, err := postgres.New(context.Background(), postgres.Config{DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	rdb, err := redis.New(context.Background(), redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(redisrepo.NewKV(rdb))
	limiter := redisrepo.NewSlidingWindowLimiter(
		rdb,
		"booking",
		cfg.RateLimit.BookingLimit,
		cfg.RateLimit.BookingWindow,
	)
	queue := tasks.NewQueue(rdb)

	services := service.NewServices(store, cache, queue, limiter, service.Config{
		CacheTTL: cfg.Cache.TTL,
	})

	var mailer notify.Mailer
	if cfg.Mail.SendGridAPIKey != "" {
		mailer = notify.NewSendGridMailer(cfg.Mail.SendGridAPIKey, cfg.Mail.FromEmail, cfg.Mail.FromName)
	} else {
		mailer = notify.NewLogMailer(logger)
	}

	worker := tasks.NewWorker(queue, store, mailer, logger, tasks.WorkerConfig{
		ExportsDir: cfg.Exports.Dir,
		BaseURL:    cfg.Server.BaseURL,
	})

	scheduler, err := tasks.NewScheduler(queue, logger, cfg.Cron.DailySpec, cfg.Cron.MonthlySpec)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
	}

	router := httpgin.NewRouter(services, queue, logger, httpgin.Config{
		JWTSecret:  cfg.Auth.JWTSecret,
		ExportsDir: cfg.Exports.Dir,
	})

	return &App{
		cfg:       cfg,
		logger:    logger,
		worker:    worker,
		scheduler: scheduler,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Background worker
	g.Go(func() error {
		a.logger.Info("task worker started")
		if err := a.worker.Run(gCtx); err != nil && err != context.Canceled {
			return fmt.Errorf("task worker stopped: %w", err)
		}
		return nil
	})

	// Cron scheduler
	a.scheduler.Start()

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down")
		a.scheduler.Stop()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
