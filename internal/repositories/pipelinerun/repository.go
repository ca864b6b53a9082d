// Package pipelinerun records loader executions for bookkeeping and
// troubleshooting.
package pipelinerun

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/Ramsey-B/clover/internal/database"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

const tableName = "pipeline_runs"

// Repository implements pipeline run storage
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new pipeline run repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a running row for a new loader execution.
func (r *Repository) Create(ctx context.Context, mode, sourceMode string) (*models.PipelineRun, error) {
	ctx, span := tracing.StartSpan(ctx, "PipelineRunRepository.Create")
	defer span.End()

	run := &models.PipelineRun{
		ID:         uuid.New().String(),
		Mode:       mode,
		SourceMode: sourceMode,
		Status:     models.RunStatusRunning,
		StartedAt:  time.Now(),
	}

	sb := database.NewInsertBuilder()
	sb.InsertInto(tableName)
	sb.Cols("id", "mode", "source_mode", "status", "started_at")
	sb.Values(run.ID, run.Mode, run.SourceMode, run.Status, run.StartedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create pipeline run")
		return nil, fmt.Errorf("failed to create pipeline run: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"run_id": run.ID,
		"mode":   run.Mode,
	}).Info("created pipeline run")

	return run, nil
}

// MarkCompleted finishes a run with its counters.
func (r *Repository) MarkCompleted(ctx context.Context, id string, counters json.RawMessage) error {
	ctx, span := tracing.StartSpan(ctx, "PipelineRunRepository.MarkCompleted")
	defer span.End()

	sb := database.NewUpdateBuilder()
	sb.Update(tableName)
	sb.Set(
		sb.Assign("status", models.RunStatusCompleted),
		sb.Assign("counters", []byte(counters)),
		sb.Assign("finished_at", time.Now()),
	)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to mark pipeline run completed")
		return fmt.Errorf("failed to mark pipeline run completed: %w", err)
	}
	return nil
}

// MarkFailed finishes a run with its error message.
func (r *Repository) MarkFailed(ctx context.Context, id string, runErr string) error {
	ctx, span := tracing.StartSpan(ctx, "PipelineRunRepository.MarkFailed")
	defer span.End()

	sb := database.NewUpdateBuilder()
	sb.Update(tableName)
	sb.Set(
		sb.Assign("status", models.RunStatusFailed),
		sb.Assign("error", runErr),
		sb.Assign("finished_at", time.Now()),
	)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to mark pipeline run failed")
		return fmt.Errorf("failed to mark pipeline run failed: %w", err)
	}
	return nil
}

// GetLatest returns the most recent run, or nil when none exist.
func (r *Repository) GetLatest(ctx context.Context) (*models.PipelineRun, error) {
	ctx, span := tracing.StartSpan(ctx, "PipelineRunRepository.GetLatest")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("id", "mode", "source_mode", "status", "counters", "error", "started_at", "finished_at")
	sb.From(tableName)
	sb.OrderBy("started_at").Desc()
	sb.Limit(1)

	query, args := sb.Build()

	var run models.PipelineRun
	if err := r.db.GetContext(ctx, &run, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get latest pipeline run")
		return nil, fmt.Errorf("failed to get latest pipeline run: %w", err)
	}
	return &run, nil
}
