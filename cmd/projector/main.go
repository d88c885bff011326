// Command projector runs the projection worker (C7): a standalone process
// that pulls PRODUCT_UPDATED / PRODUCT_REMOVED jobs off JetStream and
// applies them to the Redis document store, independent of the API process.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shopery/catalog-bridge/internal/catalog/db"
	"github.com/shopery/catalog-bridge/internal/catalog/docstore"
	"github.com/shopery/catalog-bridge/internal/catalog/projector"
	"github.com/shopery/catalog-bridge/internal/platform/clock"
	"github.com/shopery/catalog-bridge/internal/platform/natsclient"
	"github.com/shopery/catalog-bridge/internal/platform/telemetry"
	"github.com/shopery/catalog-bridge/internal/platform/vaultconfig"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := vaultconfig.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); otelEndpoint != "" {
		tp := telemetry.InitTracerProvider("catalog-bridge-projector")
		defer tp.Shutdown(context.Background())
		logger.Info("OTel tracing initialized", zap.String("endpoint", otelEndpoint))
	}

	pgURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDatabase)
	poolCfg, err := pgxpool.ParseConfig(pgURL)
	if err != nil {
		logger.Fatal("failed to parse postgres DSN", zap.Error(err))
	}
	poolCfg.ConnConfig.Tracer = otelpgx.NewTracer()
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	queries := db.New(pool)

	nc, err := natsclient.NewClient(cfg.NATSURL, logger)
	if err != nil {
		logger.Fatal("failed to connect to NATS", zap.Error(err))
	}
	defer nc.Close()

	rdb := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort)})
	defer rdb.Close()
	docs := docstore.NewRedisGateway(rdb)

	worker := projector.New(nc, queries, docs, clock.System{}, logger)
	if err := worker.Start(ctx); err != nil {
		logger.Fatal("failed to start projection worker", zap.Error(err))
	}

	logger.Info("catalog-bridge projector running")
	<-ctx.Done()
	logger.Info("catalog-bridge projector shutting down")
}
