// Package stagedplayer persists raw player rows parked by the ingest
// consumer until the next loader run.
package stagedplayer

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

const tableName = "staged_players"

// Repository implements staged player storage
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new staged player repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Upsert writes a batch of staged rows. Rows are keyed by
// (school, name, season); a re-delivery with the same fingerprint leaves
// the row untouched so updated_at reflects real changes.
func (r *Repository) Upsert(ctx context.Context, players []models.StagedPlayer) error {
	ctx, span := tracing.StartSpan(ctx, "StagedPlayerRepository.Upsert")
	defer span.End()

	if len(players) == 0 {
		return nil
	}

	now := time.Now()

	sb := database.NewInsertBuilder()
	sb.InsertInto(tableName)
	sb.Cols("id", "school", "name", "season", "data", "fingerprint", "created_at", "updated_at")
	for _, p := range players {
		sb.Values(uuid.New().String(), p.School, p.Name, p.Season, []byte(p.Data), p.Fingerprint, now, now)
	}
	sb.SQL(`ON CONFLICT (school, name, season) DO UPDATE
		SET data = EXCLUDED.data,
		    fingerprint = EXCLUDED.fingerprint,
		    updated_at = EXCLUDED.updated_at
		WHERE staged_players.fingerprint <> EXCLUDED.fingerprint`)

	query, args := sb.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to upsert staged players")
		return fmt.Errorf("failed to upsert staged players: %w", err)
	}

	r.logger.WithContext(ctx).WithField("row_count", len(players)).Debug("upserted staged players")
	return nil
}

// ListAll returns every staged player row, ordered for deterministic runs.
func (r *Repository) ListAll(ctx context.Context) ([]models.StagedPlayer, error) {
	ctx, span := tracing.StartSpan(ctx, "StagedPlayerRepository.ListAll")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("id", "school", "name", "season", "data", "fingerprint", "created_at", "updated_at")
	sb.From(tableName)
	sb.OrderBy("school", "season", "name")

	query, args := sb.Build()

	var players []models.StagedPlayer
	if err := r.db.SelectContext(ctx, &players, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list staged players")
		return nil, fmt.Errorf("failed to list staged players: %w", err)
	}
	return players, nil
}

// DeleteAll clears the staging table after a successful full-refresh load.
func (r *Repository) DeleteAll(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, "StagedPlayerRepository.DeleteAll")
	defer span.End()

	sb := database.NewDeleteBuilder()
	sb.DeleteFrom(tableName)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to clear staged players")
		return fmt.Errorf("failed to clear staged players: %w", err)
	}
	return nil
}
