package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/skyfare/config"
	"github.com/Domenick1991/skyfare/internal/bootstrap"
	"github.com/Domenick1991/skyfare/internal/kafka"
	"github.com/Domenick1991/skyfare/internal/logger"
	"github.com/Domenick1991/skyfare/internal/service/booking"
	"github.com/Domenick1991/skyfare/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("server error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger) error {
	store, health, closer, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()
	zl.Info("storage ready", zap.String("driver", cfg.Storage.Driver))

	var producer booking.Producer
	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.BookingTopic != "" {
		p := kafka.NewProducer(cfg.Kafka.Brokers, zl.Named("kafka"))
		defer p.Close()
		if err := p.CheckConnection(ctx); err != nil {
			zl.Warn("kafka unavailable, booking events will fail to publish", zap.Error(err))
		}
		producer = p
		health["kafka"] = p.CheckConnection
	}

	app, err := bootstrap.NewApp(cfg, store, producer, zl)
	if err != nil {
		return err
	}
	for name, check := range health {
		app.Deps.Health[name] = check
	}

	if cfg.Storage.Seed {
		if err := app.Seed(ctx); err != nil {
			return fmt.Errorf("seed flights: %w", err)
		}
	}

	app.Accounts.Start(ctx)
	defer app.Accounts.Stop()

	return bootstrap.Run(ctx, cfg, app.Deps, zl)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type poolCloser struct{ pool *pgxpool.Pool }

func (c poolCloser) Close() error {
	c.pool.Close()
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, map[string]bootstrap.HealthCheck, io.Closer, error) {
	health := map[string]bootstrap.HealthCheck{}

	switch cfg.Storage.Driver {
	case "memory":
		return storage.NewMemoryStore(), health, nopCloser{}, nil
	case "redis":
		rs := storage.NewRedisStore(cfg.Redis)
		if err := rs.Ping(ctx); err != nil {
			rs.Close()
			return nil, nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		health["redis"] = rs.Ping
		return rs, health, rs, nil
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		ps := storage.NewPostgresStore(pool)
		if err := ps.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("create kv schema: %w", err)
		}
		health["postgres"] = pool.Ping
		return ps, health, poolCloser{pool: pool}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
