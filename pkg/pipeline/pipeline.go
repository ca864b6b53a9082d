// Package pipeline orchestrates the batch canonicalization run: validate,
// normalize, canonicalize school identities, fold coach roles, stamp team
// membership, infer transfers, then load the graph.
package pipeline

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/go-playground/validator/v10"

	"github.com/Ramsey-B/clover/pkg/graph"
	"github.com/Ramsey-B/clover/pkg/matching"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/normalizers"
	"github.com/Ramsey-B/clover/pkg/roles"
	"github.com/Ramsey-B/clover/pkg/teams"
	"github.com/Ramsey-B/clover/pkg/tracing"
	"github.com/Ramsey-B/clover/pkg/transfers"
)

// GraphLoader is the sink for the finished snapshot.
type GraphLoader interface {
	Load(ctx context.Context, dataset models.Dataset, transferList []transfers.Transfer, fullRefresh bool) (graph.Stats, error)
}

// Config controls one pipeline run.
type Config struct {
	MatchScoreCutoff float64
	FullRefresh      bool
}

// Stats summarizes one run.
type Stats struct {
	PlayersIn         int         `json:"players_in"`
	CoachesIn         int         `json:"coaches_in"`
	InvalidRows       int         `json:"invalid_rows"`
	CoachesMerged     int         `json:"coaches_merged"`
	SchoolsResolved   int         `json:"schools_resolved"`
	TransfersInferred int         `json:"transfers_inferred"`
	Graph             graph.Stats `json:"graph"`
}

// Pipeline runs the canonicalization stages over an input snapshot. Stages
// are pure snapshot-to-snapshot transforms; only the final load touches the
// graph.
type Pipeline struct {
	logger   ectologger.Logger
	validate *validator.Validate
	vocab    *normalizers.Vocab
	resolver *matching.Resolver
	crossref *teams.Crossref
	loader   GraphLoader
	cfg      Config
}

// New creates a pipeline.
func New(logger ectologger.Logger, loader GraphLoader, cfg Config) *Pipeline {
	return &Pipeline{
		logger:   logger,
		validate: validator.New(),
		vocab:    normalizers.DefaultVocab(),
		resolver: matching.NewResolver(logger, cfg.MatchScoreCutoff),
		crossref: teams.DefaultCrossref(),
		loader:   loader,
		cfg:      cfg,
	}
}

// Run executes the full pipeline over the snapshot.
func (p *Pipeline) Run(ctx context.Context, dataset models.Dataset) (Stats, error) {
	ctx, span := tracing.StartSpan(ctx, "pipeline.Pipeline.Run")
	defer span.End()

	log := p.logger.WithContext(ctx).WithFields(map[string]any{
		"player_count": len(dataset.Players),
		"coach_count":  len(dataset.Coaches),
	})
	log.Info("Starting pipeline run")

	var stats Stats
	stats.PlayersIn = len(dataset.Players)
	stats.CoachesIn = len(dataset.Coaches)

	dataset, dropped := p.dropInvalidRows(ctx, dataset)
	stats.InvalidRows = dropped

	dataset = normalizers.NormalizeDataset(p.vocab, dataset)

	dataset, mapping := p.resolver.CanonicalizeSchools(ctx, dataset)
	stats.SchoolsResolved = len(mapping)

	coachesBeforeMerge := len(dataset.Coaches)
	dataset.Coaches = roles.Aggregate(dataset.Coaches)
	stats.CoachesMerged = coachesBeforeMerge - len(dataset.Coaches)

	dataset = p.crossref.ApplyToDataset(dataset)

	transferList := transfers.Infer(dataset.Players)
	stats.TransfersInferred = len(transferList)

	graphStats, err := p.loader.Load(ctx, dataset, transferList, p.cfg.FullRefresh)
	if err != nil {
		log.WithError(err).Error("Pipeline run failed during graph load")
		return stats, fmt.Errorf("failed to load graph: %w", err)
	}
	stats.Graph = graphStats

	log.WithFields(map[string]any{
		"invalid_rows":       stats.InvalidRows,
		"coaches_merged":     stats.CoachesMerged,
		"transfers_inferred": stats.TransfersInferred,
		"nodes_created":      stats.Graph.NodesCreated,
	}).Info("Pipeline run complete")

	return stats, nil
}

// dropInvalidRows removes records missing their required identity fields.
// A bad row is logged and counted, never fatal; one junk scrape should not
// sink the batch.
func (p *Pipeline) dropInvalidRows(ctx context.Context, dataset models.Dataset) (models.Dataset, int) {
	_, span := tracing.StartSpan(ctx, "pipeline.Pipeline.dropInvalidRows")
	defer span.End()

	log := p.logger.WithContext(ctx)
	dropped := 0

	players := dataset.Players[:0:0]
	for _, rec := range dataset.Players {
		if models.IsMissing(rec.Name) || models.IsMissing(rec.School) {
			dropped++
			continue
		}
		if err := p.validate.Struct(rec); err != nil {
			log.WithError(err).WithField("player", rec.Name).Warn("Dropping invalid player row")
			dropped++
			continue
		}
		players = append(players, rec)
	}

	coaches := dataset.Coaches[:0:0]
	for _, rec := range dataset.Coaches {
		if models.IsMissing(rec.Name) || models.IsMissing(rec.School) {
			dropped++
			continue
		}
		if err := p.validate.Struct(rec); err != nil {
			log.WithError(err).WithField("coach", rec.Name).Warn("Dropping invalid coach row")
			dropped++
			continue
		}
		coaches = append(coaches, rec)
	}

	out := dataset
	out.Players = players
	out.Coaches = coaches
	return out, dropped
}
