// Package stagedcoach persists raw coach rows parked by the ingest
// consumer. One row per title sighting; the loader's role aggregation
// folds them later.
package stagedcoach

import (
	"context"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/Ramsey-B/clover/internal/database"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

const tableName = "staged_coaches"

// Repository implements staged coach storage
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new staged coach repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Upsert writes a batch of staged rows keyed by
// (school, name, season, title).
func (r *Repository) Upsert(ctx context.Context, coaches []models.StagedCoach) error {
	ctx, span := tracing.StartSpan(ctx, "StagedCoachRepository.Upsert")
	defer span.End()

	if len(coaches) == 0 {
		return nil
	}

	now := time.Now()

	sb := database.NewInsertBuilder()
	sb.InsertInto(tableName)
	sb.Cols("id", "school", "name", "season", "title", "data", "fingerprint", "created_at", "updated_at")
	for _, c := range coaches {
		sb.Values(uuid.New().String(), c.School, c.Name, c.Season, c.Title, []byte(c.Data), c.Fingerprint, now, now)
	}
	sb.SQL(`ON CONFLICT (school, name, season, title) DO UPDATE
		SET data = EXCLUDED.data,
		    fingerprint = EXCLUDED.fingerprint,
		    updated_at = EXCLUDED.updated_at
		WHERE staged_coaches.fingerprint <> EXCLUDED.fingerprint`)

	query, args := sb.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to upsert staged coaches")
		return fmt.Errorf("failed to upsert staged coaches: %w", err)
	}

	r.logger.WithContext(ctx).WithField("row_count", len(coaches)).Debug("upserted staged coaches")
	return nil
}

// ListAll returns every staged coach row, ordered for deterministic runs.
func (r *Repository) ListAll(ctx context.Context) ([]models.StagedCoach, error) {
	ctx, span := tracing.StartSpan(ctx, "StagedCoachRepository.ListAll")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("id", "school", "name", "season", "title", "data", "fingerprint", "created_at", "updated_at")
	sb.From(tableName)
	sb.OrderBy("school", "season", "name", "title")

	query, args := sb.Build()

	var coaches []models.StagedCoach
	if err := r.db.SelectContext(ctx, &coaches, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list staged coaches")
		return nil, fmt.Errorf("failed to list staged coaches: %w", err)
	}
	return coaches, nil
}

// DeleteAll clears the staging table after a successful full-refresh load.
func (r *Repository) DeleteAll(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, "StagedCoachRepository.DeleteAll")
	defer span.End()

	sb := database.NewDeleteBuilder()
	sb.DeleteFrom(tableName)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to clear staged coaches")
		return fmt.Errorf("failed to clear staged coaches: %w", err)
	}
	return nil
}
