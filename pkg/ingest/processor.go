// Package ingest moves scraped roster messages into the Postgres staging
// tables, where they wait for the next loader run.
package ingest

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/go-playground/validator/v10"

	"github.com/Ramsey-B/clover/pkg/fingerprint"
	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// PlayerStore persists staged player rows.
type PlayerStore interface {
	Upsert(ctx context.Context, players []models.StagedPlayer) error
	ListAll(ctx context.Context) ([]models.StagedPlayer, error)
}

// CoachStore persists staged coach rows.
type CoachStore interface {
	Upsert(ctx context.Context, coaches []models.StagedCoach) error
	ListAll(ctx context.Context) ([]models.StagedCoach, error)
}

// Processor stages one scraped roster message per invocation. Malformed
// messages are dropped with a warning; storage errors bubble up so the
// consumer retries the message.
type Processor struct {
	logger   ectologger.Logger
	validate *validator.Validate
	players  PlayerStore
	coaches  CoachStore
}

// NewProcessor creates an ingest processor.
func NewProcessor(logger ectologger.Logger, players PlayerStore, coaches CoachStore) *Processor {
	return &Processor{
		logger:   logger,
		validate: validator.New(),
		players:  players,
		coaches:  coaches,
	}
}

// HandleMessage is the kafka.MessageHandler for the scraped roster topic.
func (p *Processor) HandleMessage(ctx context.Context, msg *kafka.IncomingMessage) error {
	ctx, span := tracing.StartSpan(ctx, "ingest.Processor.HandleMessage")
	defer span.End()

	roster := msg.Roster
	log := p.logger.WithContext(ctx).WithFields(map[string]any{
		"kind":   roster.Kind,
		"school": roster.School,
		"season": roster.Season,
	})

	if err := p.validate.Struct(roster); err != nil {
		log.WithError(err).Warn("Dropping invalid roster message")
		return nil
	}

	fp, err := fingerprint.GenerateFromJSON(roster.Data)
	if err != nil {
		log.WithError(err).Warn("Dropping roster message with malformed payload")
		return nil
	}

	switch roster.Kind {
	case models.RosterKindPlayer:
		rec, err := roster.Player()
		if err != nil {
			log.WithError(err).Warn("Dropping undecodable player payload")
			return nil
		}
		if models.IsMissing(rec.Name) {
			log.Warn("Dropping player payload without a name")
			return nil
		}
		staged := models.StagedPlayer{
			School:      rec.School,
			Name:        rec.Name,
			Season:      rec.Season,
			Data:        roster.Data,
			Fingerprint: fp,
		}
		if err := p.players.Upsert(ctx, []models.StagedPlayer{staged}); err != nil {
			return fmt.Errorf("failed to stage player: %w", err)
		}

	case models.RosterKindCoach:
		rec, err := roster.Coach()
		if err != nil {
			log.WithError(err).Warn("Dropping undecodable coach payload")
			return nil
		}
		if models.IsMissing(rec.Name) {
			log.Warn("Dropping coach payload without a name")
			return nil
		}
		staged := models.StagedCoach{
			School:      rec.School,
			Name:        rec.Name,
			Season:      rec.Season,
			Title:       rec.Title,
			Data:        roster.Data,
			Fingerprint: fp,
		}
		if err := p.coaches.Upsert(ctx, []models.StagedCoach{staged}); err != nil {
			return fmt.Errorf("failed to stage coach: %w", err)
		}

	default:
		log.Warn("Dropping roster message with unknown kind")
	}

	return nil
}
