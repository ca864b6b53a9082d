package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Ramsey-B/clover/pkg/tracing"
)

// Node labels in the roster graph.
const (
	LabelPlayer     = "Player"
	LabelCoach      = "Coach"
	LabelTeam       = "Team"
	LabelSchool     = "School"
	LabelConference = "Conference"
	LabelPosition   = "Position"
)

// Relationship types in the roster graph.
const (
	RelPlaysFor      = "PLAYS_FOR"
	RelCoaches       = "COACHES"
	RelHasPosition   = "HAS_POSITION"
	RelAttended      = "ATTENDED"
	RelMemberOf      = "MEMBER_OF"
	RelRepresents    = "REPRESENTS"
	RelTransferredTo = "TRANSFERRED_TO"
)

// constraintStatements declares the uniqueness constraints backing every
// MERGE key. People are unique per school since the rosters carry no
// cross-school person identifier; everything else is unique by name.
var constraintStatements = []string{
	fmt.Sprintf("CREATE CONSTRAINT player_identity IF NOT EXISTS FOR (n:%s) REQUIRE (n.name, n.school_name) IS UNIQUE", LabelPlayer),
	fmt.Sprintf("CREATE CONSTRAINT coach_identity IF NOT EXISTS FOR (n:%s) REQUIRE (n.name, n.school_name) IS UNIQUE", LabelCoach),
	fmt.Sprintf("CREATE CONSTRAINT team_name IF NOT EXISTS FOR (n:%s) REQUIRE n.name IS UNIQUE", LabelTeam),
	fmt.Sprintf("CREATE CONSTRAINT school_name IF NOT EXISTS FOR (n:%s) REQUIRE n.name IS UNIQUE", LabelSchool),
	fmt.Sprintf("CREATE CONSTRAINT conference_name IF NOT EXISTS FOR (n:%s) REQUIRE n.name IS UNIQUE", LabelConference),
	fmt.Sprintf("CREATE CONSTRAINT position_name IF NOT EXISTS FOR (n:%s) REQUIRE n.name IS UNIQUE", LabelPosition),
}

// EnsureConstraints creates the uniqueness constraints if they do not
// already exist. Safe to run on every load.
func (c *Client) EnsureConstraints(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, "graph.Client.EnsureConstraints")
	defer span.End()

	for _, stmt := range constraintStatements {
		_, err := c.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			result, err := tx.Run(ctx, stmt, nil)
			if err != nil {
				return nil, err
			}
			return result.Consume(ctx)
		})
		if err != nil {
			return fmt.Errorf("failed to create constraint: %w", err)
		}
	}

	c.logger.WithContext(ctx).WithField("constraint_count", len(constraintStatements)).Debug("Ensured graph constraints")
	return nil
}

// ClearAll detaches and deletes every node. Used by full-refresh loads
// before rebuilding the graph from the snapshot.
func (c *Client) ClearAll(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, "graph.Client.ClearAll")
	defer span.End()

	_, err := c.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, "MATCH (n) DETACH DELETE n", nil)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to clear graph: %w", err)
	}

	c.logger.WithContext(ctx).Warn("Cleared all graph data")
	return nil
}
