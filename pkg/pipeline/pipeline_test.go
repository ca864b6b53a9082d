package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/graph"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/roles"
	"github.com/Ramsey-B/clover/pkg/transfers"
)

type fakeLoader struct {
	dataset     models.Dataset
	transfers   []transfers.Transfer
	fullRefresh bool
	calls       int
	err         error
}

func (f *fakeLoader) Load(_ context.Context, dataset models.Dataset, transferList []transfers.Transfer, fullRefresh bool) (graph.Stats, error) {
	f.calls++
	f.dataset = dataset
	f.transfers = transferList
	f.fullRefresh = fullRefresh
	if f.err != nil {
		return graph.Stats{}, f.err
	}
	return graph.Stats{NodesCreated: 1}, nil
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestPipeline_Run(t *testing.T) {
	loader := &fakeLoader{}
	p := New(testLogger(), loader, Config{FullRefresh: true})

	input := models.Dataset{
		Players: []models.PlayerRecord{
			{School: "Missouri", Name: "Jake Doe", Position: "OF/3B", Hometown: "Austin, Tex.", HighSchool: "Westlake High Scool", Season: 2024},
			{School: "Texas", Name: "Jake Doe", Season: 2025},
			{School: "Missouri", Name: "N/A"},
		},
		Coaches: []models.CoachRecord{
			{School: "Missouri", Name: "Pat Lee", Title: "Head Coach"},
			{School: "Missouri", Name: "Pat Lee", Title: "Recruiting Coordinator"},
		},
		Schools: []models.SchoolRecord{
			{Name: "Westlake High School", SchoolType: models.SchoolTypeHighSchool},
		},
	}

	stats, err := p.Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.PlayersIn)
	assert.Equal(t, 1, stats.InvalidRows)
	assert.Equal(t, 1, stats.CoachesMerged)
	assert.Equal(t, 1, stats.TransfersInferred)
	assert.Equal(t, 1, stats.Graph.NodesCreated)

	require.Equal(t, 1, loader.calls)
	assert.True(t, loader.fullRefresh)

	// Normalization applied.
	first := loader.dataset.Players[0]
	assert.Equal(t, []string{"Outfielder", "Third Base"}, first.Positions)
	assert.Equal(t, "Austin, TX", first.Hometown)

	// School identity canonicalized onto the reference row.
	assert.Equal(t, "Westlake High School", first.HighSchool)

	// Coach rows merged with derived roles.
	require.Len(t, loader.dataset.Coaches, 1)
	coach := loader.dataset.Coaches[0]
	assert.Equal(t, "Head Coach | Recruiting Coordinator", coach.Title)
	assert.Equal(t, []string{roles.RoleHeadCoach, roles.RoleRecruitingCoordinator}, coach.Roles)
	assert.Equal(t, "Missouri Tigers", coach.Team)

	// Team crossref stamped and reference tables filled.
	assert.Equal(t, "Missouri Tigers", first.Team)
	assert.NotEmpty(t, loader.dataset.Teams)
	assert.NotEmpty(t, loader.dataset.Conferences)

	// Transfer inferred across consecutive seasons.
	require.Len(t, loader.transfers, 1)
	assert.Equal(t, "Missouri", loader.transfers[0].FromSchool)
	assert.Equal(t, "Texas", loader.transfers[0].ToSchool)
}

func TestPipeline_Run_CoachesMergedExcludesInvalidRows(t *testing.T) {
	loader := &fakeLoader{}
	p := New(testLogger(), loader, Config{})

	stats, err := p.Run(context.Background(), models.Dataset{
		Coaches: []models.CoachRecord{
			{School: "Missouri", Name: "Pat Lee", Title: "Head Coach"},
			{School: "Missouri", Name: "Pat Lee", Title: "Recruiting Coordinator"},
			{School: "Missouri", Name: "N/A", Title: "Assistant Coach"},
		},
	})
	require.NoError(t, err)

	// The dropped nameless row is invalid, not merged.
	assert.Equal(t, 3, stats.CoachesIn)
	assert.Equal(t, 1, stats.InvalidRows)
	assert.Equal(t, 1, stats.CoachesMerged)
}

func TestPipeline_Run_LoaderError(t *testing.T) {
	loader := &fakeLoader{err: errors.New("bolt connection refused")}
	p := New(testLogger(), loader, Config{})

	_, err := p.Run(context.Background(), models.Dataset{
		Players: []models.PlayerRecord{{School: "Missouri", Name: "Jake Doe"}},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to load graph")
}

func TestPipeline_Run_InputNotMutated(t *testing.T) {
	loader := &fakeLoader{}
	p := New(testLogger(), loader, Config{})

	input := models.Dataset{
		Players: []models.PlayerRecord{
			{School: "Missouri", Name: "Jake Doe", Position: "OF"},
		},
	}

	_, err := p.Run(context.Background(), input)
	require.NoError(t, err)

	assert.Nil(t, input.Players[0].Positions)
	assert.Equal(t, "", input.Players[0].Team)
}
