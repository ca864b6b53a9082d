// The ingest service consumes scraped roster messages from Kafka and parks
// them in the Postgres staging tables for the next loader run.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Ramsey-B/clover/config"
	"github.com/Ramsey-B/clover/internal/database"
	"github.com/Ramsey-B/clover/internal/repositories/stagedcoach"
	"github.com/Ramsey-B/clover/internal/repositories/stagedplayer"
	"github.com/Ramsey-B/clover/pkg/ingest"
	cloverkafka "github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/logging"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	var cfg config.Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read config: %v\n", err)
		return 1
	}
	if cfg.AppName == "clover-loader" {
		cfg.AppName = "clover-ingest"
	}

	logger := logging.NewLogger(cfg.AppName, cfg.PrettyLogs)

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	tracing.SetTracer(tp.Tracer(cfg.AppName))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.KafkaConsumerEnabled {
		logger.Warn("Kafka consumer is disabled; nothing to do")
		return 0
	}

	db, err := connectPostgres(ctx, &cfg, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to staging database")
		return 1
	}
	defer db.Close()

	players := stagedplayer.NewRepository(db, logger)
	coaches := stagedcoach.NewRepository(db, logger)
	processor := ingest.NewProcessor(logger, players, coaches)

	consumer := cloverkafka.NewConsumer(cloverkafka.ConsumerConfig{
		Brokers:       cfg.KafkaBrokers,
		Topic:         cfg.KafkaInputTopic,
		ConsumerGroup: cfg.KafkaConsumerGroup,
	}, logger, processor.HandleMessage)

	if err := consumer.Start(ctx); err != nil {
		logger.WithError(err).Error("Failed to start consumer")
		return 1
	}

	<-ctx.Done()
	logger.Info("Shutting down")

	if err := consumer.Stop(); err != nil {
		logger.WithError(err).Error("Failed to stop consumer cleanly")
		return 1
	}

	return 0
}

func connectPostgres(ctx context.Context, cfg *config.Config, logger ectologger.Logger) (database.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DatabaseHost, cfg.DatabasePort, cfg.DatabaseUserName, cfg.DatabasePassword, cfg.DatabaseName, cfg.DatabaseSSLMode,
	)

	maxAttempts := cfg.StartupMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var (
		sqlxDB *sqlx.DB
		err    error
	)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		sqlxDB, err = sqlx.ConnectContext(ctx, cfg.DatabaseDriver, dsn)
		if err == nil {
			break
		}
		if attempt == maxAttempts {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}

	sqlxDB.SetMaxOpenConns(cfg.DatabaseMaxOpenConns)
	sqlxDB.SetMaxIdleConns(cfg.DatabaseMaxIdleConns)
	sqlxDB.SetConnMaxLifetime(cfg.DatabaseConnMaxLifetime)

	driver, err := postgres.WithInstance(sqlxDB.DB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrations := database.NewMigrationService(logger, &database.MigrationConfig{
		MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
		Version:             uint(cfg.DatabaseMigrationVersion),
		Force:               cfg.DatabaseMigrationForce,
		AutoRollback:        cfg.DatabaseMigrationAutoRollback,
	})
	if err := migrations.Migrate(cfg.DatabaseName, driver); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return database.NewDatabaseInstance(sqlxDB, logger), nil
}
