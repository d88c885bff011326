// @title        Catalog Bridge API
// @version      1.0
// @description  Product catalog write orchestrator and document-store search.
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/exaring/otelpgx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shopery/catalog-bridge/internal/catalog/bootstrap"
	"github.com/shopery/catalog-bridge/internal/catalog/db"
	"github.com/shopery/catalog-bridge/internal/catalog/dispatch"
	"github.com/shopery/catalog-bridge/internal/catalog/docstore"
	"github.com/shopery/catalog-bridge/internal/catalog/handler"
	"github.com/shopery/catalog-bridge/internal/catalog/projector"
	"github.com/shopery/catalog-bridge/internal/catalog/search"
	"github.com/shopery/catalog-bridge/internal/catalog/service"
	"github.com/shopery/catalog-bridge/internal/catalog/storage"
	"github.com/shopery/catalog-bridge/internal/catalog/sweeper"
	"github.com/shopery/catalog-bridge/internal/platform/clock"
	"github.com/shopery/catalog-bridge/internal/platform/natsclient"
	"github.com/shopery/catalog-bridge/internal/platform/telemetry"
	"github.com/shopery/catalog-bridge/internal/platform/vaultconfig"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := vaultconfig.Load()
	loadVaultOverrides(&cfg, logger)

	ctx := context.Background()

	if otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); otelEndpoint != "" {
		tp := telemetry.InitTracerProvider("catalog-bridge-api")
		defer tp.Shutdown(ctx)
		if mp, err := telemetry.InitMeterProvider(ctx, "catalog-bridge-api", otelEndpoint); err != nil {
			logger.Error("failed to init OTel meter provider", zap.Error(err))
		} else {
			defer mp.Shutdown(ctx)
		}
		logger.Info("OTel initialized", zap.String("endpoint", otelEndpoint))
	}

	// ── Database ───────────────────────────────────────────────────────────
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
	logger.Info("connected to database (OTel-instrumented)")

	queries := db.New(pool)
	wallClock := clock.System{}

	// ── Document store ─────────────────────────────────────────────────────
	rdb := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort)})
	defer rdb.Close()
	docs := docstore.NewRedisGateway(rdb)

	// ── Broker ─────────────────────────────────────────────────────────────
	var (
		nc         *natsclient.Client
		dispatcher dispatch.Dispatcher
	)
	if cfg.EnableInMemoryBroker {
		// Development toggle: run projection jobs on an in-process worker
		// instead of JetStream.
		worker := projector.New(nil, queries, docs, wallClock, logger)
		dispatcher = dispatch.NewInMemoryDispatcher(func(ctx context.Context, eventGUID uuid.UUID) error {
			return worker.ProcessEvent(ctx, db.ToPgUUID(eventGUID))
		}, logger)
		logger.Info("in-memory task broker enabled")
	} else {
		nc, err = natsclient.NewClient(cfg.NATSURL, logger)
		if err != nil {
			logger.Fatal("failed to connect to NATS", zap.Error(err))
		}
		defer nc.Close()
		dispatcher = dispatch.NewNATSDispatcher(nc)
	}

	// ── Object storage ─────────────────────────────────────────────────────
	s3Client, err := newS3Client(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to build S3 client", zap.Error(err))
	}
	objects := storage.NewGateway(s3Client, cfg.S3URL, cfg.MaxUploadFileSizeBytes)

	// ── Bootstrap (C9): idempotent provisioning ───────────────────────────
	if err := bootstrap.Run(ctx, nc, docs, objects); err != nil {
		logger.Fatal("bootstrap failed", zap.Error(err))
	}

	orchestrator := service.New(pool, queries, dispatcher, wallClock, logger)
	searchSvc := search.New(docs)

	// ── Sweeper (§7): re-enqueues stale pending inbox events ──────────────
	sweep := sweeper.New(cfg.SweepGraceSeconds, queries, dispatcher, wallClock, logger)
	if err := sweep.Start("*/30 * * * * *"); err != nil {
		logger.Fatal("failed to start sweeper", zap.Error(err))
	}
	defer sweep.Stop()

	// ── HTTP server ────────────────────────────────────────────────────────
	e := echo.New()
	handler.RegisterRoutes(e, orchestrator, searchSvc, objects, cfg.CORSOrigins, logger)

	go func() {
		logger.Info("catalog-bridge API listening on :8080")
		if err := e.Start(":8080"); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failure", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown error", zap.Error(err))
	}
	logger.Info("catalog-bridge API shut down cleanly")
}

// loadVaultOverrides lets a running Vault instance override the env-derived
// defaults, matching the layering the teacher's services use (Vault wins
// when reachable, local env/defaults otherwise).
func loadVaultOverrides(cfg *vaultconfig.Config, logger *zap.Logger) {
	vaultAddr := os.Getenv("VAULT_ADDR")
	if vaultAddr == "" {
		return
	}
	vaultToken := os.Getenv("VAULT_TOKEN")
	secretPath := os.Getenv("VAULT_SECRET_PATH")
	if secretPath == "" {
		secretPath = "secret/data/catalog-bridge"
	}

	manager, err := vaultconfig.NewSecretManager(vaultAddr, vaultToken)
	if err != nil {
		logger.Warn("vault connection failed, using environment configuration", zap.Error(err))
		return
	}
	secrets, err := manager.GetKV2(secretPath)
	if err != nil {
		logger.Warn("failed to load secrets from vault, using environment configuration", zap.Error(err))
		return
	}

	cfg.PostgresHost = vaultconfig.StringOr(secrets, "POSTGRES_HOST", cfg.PostgresHost)
	cfg.PostgresUser = vaultconfig.StringOr(secrets, "POSTGRES_USER", cfg.PostgresUser)
	cfg.PostgresPassword = vaultconfig.StringOr(secrets, "POSTGRES_PASSWORD", cfg.PostgresPassword)
	cfg.PostgresDatabase = vaultconfig.StringOr(secrets, "POSTGRES_DATABASE_NAME", cfg.PostgresDatabase)
	cfg.NATSURL = vaultconfig.StringOr(secrets, "NATS_URL", cfg.NATSURL)
	cfg.S3URL = vaultconfig.StringOr(secrets, "S3_URL", cfg.S3URL)
	cfg.AWSAccessKeyID = vaultconfig.StringOr(secrets, "AWS_ACCESS_KEY_ID", cfg.AWSAccessKeyID)
	cfg.AWSSecretKey = vaultconfig.StringOr(secrets, "AWS_SECRET_ACCESS_KEY", cfg.AWSSecretKey)
}

func newS3Client(ctx context.Context, cfg vaultconfig.Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.EnableLocalStorageEmulation {
			o.BaseEndpoint = &cfg.S3URL
			o.UsePathStyle = true
		}
	}), nil
}
