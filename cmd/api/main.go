package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // postgres driver
	"github.com/redis/go-redis/v9"
	"github.com/soheilhy/cmux"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/pharmadesk/report-dispatch/internal/api"
	"github.com/pharmadesk/report-dispatch/internal/billing"
	"github.com/pharmadesk/report-dispatch/internal/config"
	"github.com/pharmadesk/report-dispatch/internal/db"
	"github.com/pharmadesk/report-dispatch/internal/dedup"
	"github.com/pharmadesk/report-dispatch/internal/dispatch"
	"github.com/pharmadesk/report-dispatch/internal/email"
	"github.com/pharmadesk/report-dispatch/internal/reports"
	"github.com/pharmadesk/report-dispatch/internal/settings"
	"github.com/pharmadesk/report-dispatch/internal/store"
	"github.com/pharmadesk/report-dispatch/internal/worker"
)

func main() {
	// ── Config ────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		slog.Error("fatal", "error", fmt.Errorf("config: %w", err))
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// newLogger returns JSON in production, pretty text in development.
func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("config loaded",
		"env", cfg.Env,
		"port", cfg.Port,
		"dedup", cfg.Dispatch.Dedup,
		"scheduler", cfg.Scheduler.Enabled,
	)
	if cfg.CronSecret == "" {
		logger.Warn("CRON_SECRET is empty: the dispatch trigger is open to anyone")
	}

	// Root context cancelled by OS signal.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Database ──────────────────────────────────────────────────────────────
	pool, queries, err := openDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()
	defer queries.Close()
	logger.Info("database connected")

	st := store.New(pool, queries)

	// ── Redis (optional) ──────────────────────────────────────────────────────
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("redis connected")
	}

	// ── Email delivery ────────────────────────────────────────────────────────
	resolver := settings.NewResolver(queries, settings.DeliveryConfig{
		APIKey:    cfg.Delivery.APIKey,
		Recipient: cfg.Delivery.Recipient,
		From:      cfg.Delivery.From,
	}, logger)
	sender := email.NewSender(email.ResendFactory, email.SenderConfig{
		MaxAttempts: cfg.Delivery.MaxAttempts,
		BaseDelay:   cfg.Delivery.BaseDelay,
	}, logger)
	notifier := email.NewNotifier(resolver, sender, st, logger)

	gen := reports.NewGenerator(queries, notifier, logger)
	numberer := billing.NewNumberer(st)

	// ── Dispatcher ────────────────────────────────────────────────────────────
	opts := []dispatch.Option{dispatch.WithRecorder(st)}
	if cfg.Dispatch.Dedup {
		opts = append(opts, dispatch.WithMarker(dedup.NewRedisMarker(rdb)))
	}
	dispatcher := dispatch.New(
		dispatch.NewHTTPTrigger(cfg.BaseURL, nil),
		dispatch.Config{Secret: cfg.CronSecret, JobTimeout: cfg.Dispatch.JobTimeout},
		logger,
		opts...,
	)

	// ── HTTP server ───────────────────────────────────────────────────────────
	handler := api.NewServer(
		dispatcher,
		gen,
		numberer,
		pool,
		api.Config{InternalAPIToken: cfg.InternalAPIToken},
		logger,
	)

	srv := &http.Server{
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// A dispatch run waits on every due report job in turn.
		WriteTimeout: 4 * time.Minute,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	// ── gRPC health ───────────────────────────────────────────────────────────
	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// ── Listener (HTTP and gRPC share one port) ───────────────────────────────
	lis, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	mux := cmux.New(lis)
	grpcL := mux.MatchWithWriters(cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc"))
	httpL := mux.Match(cmux.Any())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := grpcSrv.Serve(grpcL); err != nil && !isClosed(err) {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("server listening", "addr", lis.Addr().String())
		if err := srv.Serve(httpL); err != nil && !errors.Is(err, http.ErrServerClosed) && !isClosed(err) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := mux.Serve(); err != nil && gctx.Err() == nil && !isClosed(err) {
			return fmt.Errorf("cmux serve: %w", err)
		}
		return nil
	})

	// ── Scheduler (optional) ──────────────────────────────────────────────────
	if cfg.Scheduler.Enabled {
		hour, minute, _ := cfg.Scheduler.Clock() // validated in config.Load
		retries := 1
		if cfg.Dispatch.Dedup {
			// Repeat runs only re-send the jobs whose claims were released.
			retries = 3
		}
		runner := worker.NewRunner(dispatcher, worker.RunnerConfig{
			Hour:       hour,
			Minute:     minute,
			Credential: cfg.CronSecret,
			MaxRetries: retries,
		}, logger)
		g.Go(func() error {
			runner.Start(gctx)
			return nil
		})
	}

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")

		healthSrv.Shutdown()

		// Give in-flight HTTP requests up to 20 seconds to finish.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)

		stopped := make(chan struct{})
		go func() {
			grpcSrv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			grpcSrv.Stop()
		}

		_ = lis.Close()
		if err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}

// isClosed reports whether err comes from a listener closed during shutdown.
func isClosed(err error) bool {
	return errors.Is(err, net.ErrClosed) || errors.Is(err, cmux.ErrListenerClosed)
}

// openDB opens the connection pool and prepares all sqlc statements.
// Using db.Prepare (rather than db.New) means every query is validated against
// the database schema at startup. The server refuses to start if the schema
// is out of sync.
func openDB(ctx context.Context, dsn string) (*sql.DB, *db.Queries, error) {
	pool, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}

	pool.SetMaxOpenConns(10)
	pool.SetMaxIdleConns(5)
	pool.SetConnMaxLifetime(5 * time.Minute)
	pool.SetConnMaxIdleTime(2 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := pool.PingContext(pingCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping: %w", err)
	}

	queries, err := db.Prepare(pingCtx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("prepare statements: %w", err)
	}

	return pool, queries, nil
}

// openRedis parses a redis:// URL and verifies the server is reachable.
func openRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return client, nil
}
