// The loader runs one canonicalization pass: it reads a roster snapshot from
// CSV files or the Postgres staging tables, runs the pipeline, and loads the
// result into the graph database.
package main

import (
	"context"
	"encoding/json"
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
	"github.com/Ramsey-B/clover/internal/repositories/pipelinerun"
	"github.com/Ramsey-B/clover/internal/repositories/stagedcoach"
	"github.com/Ramsey-B/clover/internal/repositories/stagedplayer"
	"github.com/Ramsey-B/clover/pkg/graph"
	"github.com/Ramsey-B/clover/pkg/ingest"
	cloverkafka "github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/logging"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/pipeline"
	"github.com/Ramsey-B/clover/pkg/records"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

const (
	SourceModeCSV     = "csv"
	SourceModeStaging = "staging"
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

	logger := logging.NewLogger(cfg.AppName, cfg.PrettyLogs)

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	tracing.SetTracer(tp.Tracer(cfg.AppName))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mode := "merge"
	if cfg.FullRefresh {
		mode = "full-refresh"
	}

	logger.WithFields(map[string]any{
		"source_mode": cfg.SourceMode,
		"mode":        mode,
	}).Info("Starting loader")

	graphClient, err := graph.NewClient(graph.Config{
		Host:     cfg.GraphDBHost,
		Port:     cfg.GraphDBPort,
		Username: cfg.GraphDBUser,
		Password: cfg.GraphDBPassword,
	}, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to create graph client")
		return 1
	}
	defer graphClient.Close(context.Background())

	if err := waitFor(ctx, cfg.StartupMaxAttempts, graphClient.VerifyConnectivity); err != nil {
		logger.WithError(err).Error("Graph database is unreachable")
		return 1
	}

	var (
		db        database.DB
		runs      *pipelinerun.Repository
		playerRep *stagedplayer.Repository
		coachRep  *stagedcoach.Repository
	)
	if cfg.DatabaseHost != "" {
		db, err = connectPostgres(ctx, &cfg, logger)
		if err != nil {
			logger.WithError(err).Error("Failed to connect to staging database")
			return 1
		}
		defer db.Close()

		runs = pipelinerun.NewRepository(db, logger)
		playerRep = stagedplayer.NewRepository(db, logger)
		coachRep = stagedcoach.NewRepository(db, logger)
	} else if cfg.SourceMode == SourceModeStaging {
		logger.Error("SOURCE_MODE=staging requires DB_HOST to be set")
		return 1
	}

	var producer *cloverkafka.Producer
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaOutputTopic != "" {
		producer = cloverkafka.NewProducer(cloverkafka.ProducerConfig{
			Brokers:      cfg.KafkaBrokers,
			Topic:        cfg.KafkaOutputTopic,
			BatchSize:    cfg.KafkaBatchSize,
			BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
			RequiredAcks: cfg.KafkaRequiredAcks,
			Compression:  cfg.KafkaCompression,
		}, logger)
		defer producer.Close()
	}

	var runRow *models.PipelineRun
	if runs != nil {
		runRow, err = runs.Create(ctx, mode, cfg.SourceMode)
		if err != nil {
			logger.WithError(err).Error("Failed to record run start")
			return 1
		}
	}

	dataset, err := readDataset(ctx, &cfg, logger, playerRep, coachRep)
	if err != nil {
		logger.WithError(err).Error("Failed to read input snapshot")
		finishFailed(ctx, logger, runs, producer, runRow, mode, cfg.SourceMode, err)
		return 1
	}

	loader := graph.NewLoader(graphClient, logger, cfg.GraphBatchSize)
	pipe := pipeline.New(logger, loader, pipeline.Config{
		MatchScoreCutoff: cfg.MatchScoreCutoff,
		FullRefresh:      cfg.FullRefresh,
	})

	stats, err := pipe.Run(ctx, dataset)
	if err != nil {
		logger.WithError(err).Error("Pipeline run failed")
		finishFailed(ctx, logger, runs, producer, runRow, mode, cfg.SourceMode, err)
		return 1
	}

	counters, err := json.Marshal(stats)
	if err != nil {
		logger.WithError(err).Error("Failed to encode run stats")
		return 1
	}

	if runs != nil && runRow != nil {
		if err := runs.MarkCompleted(ctx, runRow.ID, counters); err != nil {
			logger.WithError(err).Error("Failed to record run completion")
		}
	}
	if producer != nil {
		event := &cloverkafka.RunEvent{
			EventType:  cloverkafka.EventRunCompleted,
			RunID:      runID(runRow),
			Mode:       mode,
			SourceMode: cfg.SourceMode,
			Stats:      counters,
		}
		if err := producer.PublishRunEvent(ctx, event); err != nil {
			logger.WithError(err).Error("Failed to publish run event")
		}
	}

	if summary, err := graphClient.Summarize(ctx); err != nil {
		logger.WithError(err).Warn("Failed to summarize graph after load")
	} else {
		logger.WithFields(map[string]any{
			"node_counts": summary.NodeCounts,
			"transfers":   summary.TransferCount,
		}).Info("Graph contents after load")
	}

	logger.WithFields(map[string]any{
		"players_in":         stats.PlayersIn,
		"coaches_in":         stats.CoachesIn,
		"invalid_rows":       stats.InvalidRows,
		"schools_resolved":   stats.SchoolsResolved,
		"transfers_inferred": stats.TransfersInferred,
		"nodes_created":      stats.Graph.NodesCreated,
		"rels_created":       stats.Graph.RelationshipsCreated,
	}).Info("Loader run completed")

	return 0
}

func readDataset(ctx context.Context, cfg *config.Config, logger ectologger.Logger, players *stagedplayer.Repository, coaches *stagedcoach.Repository) (models.Dataset, error) {
	switch cfg.SourceMode {
	case SourceModeStaging:
		src := ingest.NewStagingSource(logger, players, coaches)
		return src.ReadDataset(ctx)
	case SourceModeCSV:
		return records.NewReader(logger, cfg.CSVDataDir).ReadDataset()
	default:
		return models.Dataset{}, fmt.Errorf("unknown source mode %q", cfg.SourceMode)
	}
}

func connectPostgres(ctx context.Context, cfg *config.Config, logger ectologger.Logger) (database.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DatabaseHost, cfg.DatabasePort, cfg.DatabaseUserName, cfg.DatabasePassword, cfg.DatabaseName, cfg.DatabaseSSLMode,
	)

	var sqlxDB *sqlx.DB
	err := waitFor(ctx, cfg.StartupMaxAttempts, func(ctx context.Context) error {
		var err error
		sqlxDB, err = sqlx.ConnectContext(ctx, cfg.DatabaseDriver, dsn)
		return err
	})
	if err != nil {
		return nil, err
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

// waitFor retries a startup check with a short backoff until it passes or
// the attempts are exhausted.
func waitFor(ctx context.Context, maxAttempts int, check func(ctx context.Context) error) error {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = check(ctx); err == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	return err
}

func finishFailed(ctx context.Context, logger ectologger.Logger, runs *pipelinerun.Repository, producer *cloverkafka.Producer, run *models.PipelineRun, mode, sourceMode string, runErr error) {
	if runs != nil && run != nil {
		if err := runs.MarkFailed(ctx, run.ID, runErr.Error()); err != nil {
			logger.WithError(err).Error("Failed to record run failure")
		}
	}
	if producer != nil {
		event := &cloverkafka.RunEvent{
			EventType:  cloverkafka.EventRunFailed,
			RunID:      runID(run),
			Mode:       mode,
			SourceMode: sourceMode,
			Error:      runErr.Error(),
		}
		if err := producer.PublishRunEvent(ctx, event); err != nil {
			logger.WithError(err).Error("Failed to publish run event")
		}
	}
}

func runID(run *models.PipelineRun) string {
	if run == nil {
		return ""
	}
	return run.ID
}
