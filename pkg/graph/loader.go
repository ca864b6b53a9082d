package graph

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
	"github.com/Ramsey-B/clover/pkg/transfers"
)

// DefaultBatchSize bounds how many rows go into one UNWIND statement.
const DefaultBatchSize = 500

// Stats summarizes what one load changed in the graph.
type Stats struct {
	NodesCreated         int `json:"nodes_created"`
	RelationshipsCreated int `json:"relationships_created"`
	PropertiesSet        int `json:"properties_set"`
	MembershipsSkipped   int `json:"memberships_skipped"`
	TransfersSkipped     int `json:"transfers_skipped"`
}

// Loader writes the canonicalized snapshot into the graph. Every write is
// an UNWIND + MERGE keyed on the node's natural key, so reloading the same
// snapshot changes nothing.
type Loader struct {
	client    *Client
	logger    ectologger.Logger
	batchSize int
}

// NewLoader creates a loader. A batchSize of 0 falls back to
// DefaultBatchSize.
func NewLoader(client *Client, logger ectologger.Logger, batchSize int) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Loader{
		client:    client,
		logger:    logger,
		batchSize: batchSize,
	}
}

// Node upserts, keyed on natural identity.
var (
	upsertConferences = fmt.Sprintf(`
		UNWIND $batch AS row
		MERGE (n:%s {name: row.name})
		SET n += row.props
	`, LabelConference)

	upsertSchools = fmt.Sprintf(`
		UNWIND $batch AS row
		MERGE (n:%s {name: row.name})
		SET n += row.props
	`, LabelSchool)

	upsertPositions = fmt.Sprintf(`
		UNWIND $batch AS row
		MERGE (n:%s {name: row.name})
		SET n += row.props
	`, LabelPosition)

	upsertTeams = fmt.Sprintf(`
		UNWIND $batch AS row
		MERGE (n:%s {name: row.name})
		SET n += row.props
	`, LabelTeam)

	upsertPlayers = fmt.Sprintf(`
		UNWIND $batch AS row
		MERGE (n:%s {name: row.name, school_name: row.school_name})
		SET n += row.props
	`, LabelPlayer)

	upsertCoachNodes = fmt.Sprintf(`
		UNWIND $batch AS row
		MERGE (n:%s {name: row.name, school_name: row.school_name})
		SET n += row.props
	`, LabelCoach)
)

// Relationship upserts. MATCH clauses bind the endpoints by natural key;
// rows whose endpoints are missing simply produce no relationship.
var (
	upsertMemberOf = fmt.Sprintf(`
		UNWIND $batch AS row
		MATCH (t:%s {name: row.team})
		MATCH (c:%s {abbreviation: row.conference})
		MERGE (t)-[r:%s]->(c)
	`, LabelTeam, LabelConference, RelMemberOf)

	upsertRepresents = fmt.Sprintf(`
		UNWIND $batch AS row
		MATCH (t:%s {name: row.team})
		MATCH (s:%s {name: row.school})
		MERGE (t)-[r:%s]->(s)
	`, LabelTeam, LabelSchool, RelRepresents)

	upsertPlaysFor = fmt.Sprintf(`
		UNWIND $batch AS row
		MATCH (p:%s {name: row.name, school_name: row.school_name})
		MATCH (t:%s {name: row.team})
		MERGE (p)-[r:%s {season: row.season}]->(t)
		SET r += row.props
	`, LabelPlayer, LabelTeam, RelPlaysFor)

	upsertCoaches = fmt.Sprintf(`
		UNWIND $batch AS row
		MATCH (c:%s {name: row.name, school_name: row.school_name})
		MATCH (t:%s {name: row.team})
		MERGE (c)-[r:%s {season: row.season}]->(t)
		SET r.roles = row.roles
	`, LabelCoach, LabelTeam, RelCoaches)

	upsertHasPosition = fmt.Sprintf(`
		UNWIND $batch AS row
		MATCH (p:%s {name: row.name, school_name: row.school_name})
		MATCH (pos:%s {name: row.position})
		MERGE (p)-[r:%s]->(pos)
	`, LabelPlayer, LabelPosition, RelHasPosition)

	upsertAttended = fmt.Sprintf(`
		UNWIND $batch AS row
		MATCH (p:%s {name: row.name, school_name: row.school_name})
		MATCH (s:%s {name: row.high_school})
		MERGE (p)-[r:%s]->(s)
	`, LabelPlayer, LabelSchool, RelAttended)

	upsertTransfers = fmt.Sprintf(`
		UNWIND $batch AS row
		MATCH (p:%s {name: row.name, school_name: row.to_school})
		MATCH (t:%s {name: row.to_team})
		MERGE (p)-[r:%s {season: row.season}]->(t)
		SET r.from_team = row.from_team, r.to_team = row.to_team,
		    r.from_school = row.from_school, r.to_school = row.to_school,
		    r.from_season = row.from_season
	`, LabelPlayer, LabelTeam, RelTransferredTo)
)

// Load writes the snapshot and the inferred transfers into the graph.
// Nodes go in before the relationships that reference them. With
// fullRefresh the graph is wiped first; otherwise the load merges into
// whatever is already there.
func (l *Loader) Load(ctx context.Context, dataset models.Dataset, transferList []transfers.Transfer, fullRefresh bool) (Stats, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.Loader.Load")
	defer span.End()

	log := l.logger.WithContext(ctx).WithFields(map[string]any{
		"player_count": len(dataset.Players),
		"coach_count":  len(dataset.Coaches),
		"full_refresh": fullRefresh,
	})

	var stats Stats

	if err := l.client.EnsureConstraints(ctx); err != nil {
		return stats, err
	}

	if fullRefresh {
		if err := l.client.ClearAll(ctx); err != nil {
			return stats, err
		}
	}

	playsFor, skippedPlayers := playsForRows(dataset)
	coachesFor, skippedCoaches := coachesForRows(dataset)
	stats.MembershipsSkipped = skippedPlayers + skippedCoaches
	if stats.MembershipsSkipped > 0 {
		log.WithField("skipped_count", stats.MembershipsSkipped).Warn("Skipping team memberships for unmapped schools")
	}

	transferBatch, skippedTransfers := transferRows(dataset, transferList)
	stats.TransfersSkipped = skippedTransfers
	if skippedTransfers > 0 {
		log.WithField("skipped_count", skippedTransfers).Warn("Skipping transfers for unmapped teams")
	}

	steps := []struct {
		name   string
		cypher string
		rows   []map[string]any
	}{
		{"conferences", upsertConferences, conferenceRows(dataset)},
		{"schools", upsertSchools, schoolRows(dataset)},
		{"positions", upsertPositions, positionRows(dataset)},
		{"teams", upsertTeams, teamRows(dataset)},
		{"players", upsertPlayers, playerRows(dataset)},
		{"coaches", upsertCoachNodes, coachRows(dataset)},
		{"member_of", upsertMemberOf, memberOfRows(dataset)},
		{"represents", upsertRepresents, representsRows(dataset)},
		{"plays_for", upsertPlaysFor, playsFor},
		{"coaches_rel", upsertCoaches, coachesFor},
		{"has_position", upsertHasPosition, hasPositionRows(dataset)},
		{"attended", upsertAttended, attendedRows(dataset)},
		{"transfers", upsertTransfers, transferBatch},
	}

	for _, step := range steps {
		if err := l.runBatches(ctx, step.cypher, step.rows, &stats); err != nil {
			log.WithError(err).WithField("step", step.name).Error("Graph load step failed")
			return stats, fmt.Errorf("failed to load %s: %w", step.name, err)
		}
	}

	log.WithFields(map[string]any{
		"nodes_created":         stats.NodesCreated,
		"relationships_created": stats.RelationshipsCreated,
	}).Info("Loaded snapshot into graph")

	return stats, nil
}

// runBatches executes one upsert statement over the rows in batchSize
// chunks, each chunk in its own write transaction.
func (l *Loader) runBatches(ctx context.Context, cypher string, rows []map[string]any, stats *Stats) error {
	for start := 0; start < len(rows); start += l.batchSize {
		end := min(start+l.batchSize, len(rows))
		chunk := rows[start:end]

		result, err := l.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			res, err := tx.Run(ctx, cypher, map[string]any{"batch": chunk})
			if err != nil {
				return nil, err
			}
			return res.Consume(ctx)
		})
		if err != nil {
			return err
		}

		if summary, ok := result.(neo4j.ResultSummary); ok {
			counters := summary.Counters()
			stats.NodesCreated += counters.NodesCreated()
			stats.RelationshipsCreated += counters.RelationshipsCreated()
			stats.PropertiesSet += counters.PropertiesSet()
		}
	}
	return nil
}
