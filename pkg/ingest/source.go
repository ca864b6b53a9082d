package ingest

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// StagingSource builds a pipeline snapshot from the staging tables.
type StagingSource struct {
	logger  ectologger.Logger
	players PlayerStore
	coaches CoachStore
}

// NewStagingSource creates a staging-backed snapshot source.
func NewStagingSource(logger ectologger.Logger, players PlayerStore, coaches CoachStore) *StagingSource {
	return &StagingSource{
		logger:  logger,
		players: players,
		coaches: coaches,
	}
}

// ReadDataset loads every staged row and decodes it into records. Rows
// whose payload no longer decodes are skipped with a warning.
func (s *StagingSource) ReadDataset(ctx context.Context) (models.Dataset, error) {
	ctx, span := tracing.StartSpan(ctx, "ingest.StagingSource.ReadDataset")
	defer span.End()

	var dataset models.Dataset
	log := s.logger.WithContext(ctx)

	stagedPlayers, err := s.players.ListAll(ctx)
	if err != nil {
		return dataset, err
	}
	for i := range stagedPlayers {
		rec, err := stagedPlayers[i].Record()
		if err != nil {
			log.WithError(err).WithField("staged_id", stagedPlayers[i].ID).Warn("Skipping undecodable staged player")
			continue
		}
		dataset.Players = append(dataset.Players, rec)
	}

	stagedCoaches, err := s.coaches.ListAll(ctx)
	if err != nil {
		return dataset, err
	}
	for i := range stagedCoaches {
		rec, err := stagedCoaches[i].Record()
		if err != nil {
			log.WithError(err).WithField("staged_id", stagedCoaches[i].ID).Warn("Skipping undecodable staged coach")
			continue
		}
		dataset.Coaches = append(dataset.Coaches, rec)
	}

	log.WithFields(map[string]any{
		"player_count": len(dataset.Players),
		"coach_count":  len(dataset.Coaches),
	}).Info("Read staging snapshot")

	return dataset, nil
}
