package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/models"
)

type fakePlayerStore struct {
	upserted []models.StagedPlayer
	rows     []models.StagedPlayer
	err      error
}

func (f *fakePlayerStore) Upsert(_ context.Context, players []models.StagedPlayer) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, players...)
	return nil
}

func (f *fakePlayerStore) ListAll(_ context.Context) ([]models.StagedPlayer, error) {
	return f.rows, f.err
}

type fakeCoachStore struct {
	upserted []models.StagedCoach
	rows     []models.StagedCoach
	err      error
}

func (f *fakeCoachStore) Upsert(_ context.Context, coaches []models.StagedCoach) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, coaches...)
	return nil
}

func (f *fakeCoachStore) ListAll(_ context.Context) ([]models.StagedCoach, error) {
	return f.rows, f.err
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func rosterMessage(t *testing.T, kind, school string, season int, payload any) *kafka.IncomingMessage {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	return &kafka.IncomingMessage{
		Topic:     "scraped-rosters",
		Timestamp: time.Now(),
		Roster: &models.RosterMessage{
			Kind:      kind,
			School:    school,
			Season:    season,
			ScrapedAt: time.Now(),
			Data:      data,
		},
	}
}

func TestHandleMessageStagesPlayer(t *testing.T) {
	players := &fakePlayerStore{}
	coaches := &fakeCoachStore{}
	p := NewProcessor(testLogger(), players, coaches)

	msg := rosterMessage(t, models.RosterKindPlayer, "Texas", 2024, map[string]any{
		"name":     "Jake Doe",
		"position": "OF/3B",
	})

	err := p.HandleMessage(context.Background(), msg)
	require.NoError(t, err)

	require.Len(t, players.upserted, 1)
	staged := players.upserted[0]
	assert.Equal(t, "Texas", staged.School)
	assert.Equal(t, "Jake Doe", staged.Name)
	assert.Equal(t, 2024, staged.Season)
	assert.NotEmpty(t, staged.Fingerprint)
	assert.Empty(t, coaches.upserted)
}

func TestHandleMessageStagesCoach(t *testing.T) {
	players := &fakePlayerStore{}
	coaches := &fakeCoachStore{}
	p := NewProcessor(testLogger(), players, coaches)

	msg := rosterMessage(t, models.RosterKindCoach, "Texas", 2024, map[string]any{
		"name":  "Jim Smith",
		"title": "Head Coach",
	})

	err := p.HandleMessage(context.Background(), msg)
	require.NoError(t, err)

	require.Len(t, coaches.upserted, 1)
	staged := coaches.upserted[0]
	assert.Equal(t, "Jim Smith", staged.Name)
	assert.Equal(t, "Head Coach", staged.Title)
	assert.Empty(t, players.upserted)
}

func TestHandleMessageFingerprintIsStable(t *testing.T) {
	players := &fakePlayerStore{}
	p := NewProcessor(testLogger(), players, &fakeCoachStore{})

	payload := map[string]any{"name": "Jake Doe", "position": "OF"}
	require.NoError(t, p.HandleMessage(context.Background(), rosterMessage(t, models.RosterKindPlayer, "Texas", 2024, payload)))
	require.NoError(t, p.HandleMessage(context.Background(), rosterMessage(t, models.RosterKindPlayer, "Texas", 2024, payload)))

	require.Len(t, players.upserted, 2)
	assert.Equal(t, players.upserted[0].Fingerprint, players.upserted[1].Fingerprint)
}

func TestHandleMessageDropsInvalidEnvelope(t *testing.T) {
	players := &fakePlayerStore{}
	p := NewProcessor(testLogger(), players, &fakeCoachStore{})

	msg := rosterMessage(t, "mascot", "Texas", 2024, map[string]any{"name": "Bevo"})

	err := p.HandleMessage(context.Background(), msg)
	require.NoError(t, err)
	assert.Empty(t, players.upserted)
}

func TestHandleMessageDropsNamelessPlayer(t *testing.T) {
	players := &fakePlayerStore{}
	p := NewProcessor(testLogger(), players, &fakeCoachStore{})

	msg := rosterMessage(t, models.RosterKindPlayer, "Texas", 2024, map[string]any{"name": "N/A"})

	err := p.HandleMessage(context.Background(), msg)
	require.NoError(t, err)
	assert.Empty(t, players.upserted)
}

func TestHandleMessageReturnsStorageError(t *testing.T) {
	players := &fakePlayerStore{err: errors.New("connection refused")}
	p := NewProcessor(testLogger(), players, &fakeCoachStore{})

	msg := rosterMessage(t, models.RosterKindPlayer, "Texas", 2024, map[string]any{"name": "Jake Doe"})

	err := p.HandleMessage(context.Background(), msg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stage player")
}

func TestStagingSourceReadDataset(t *testing.T) {
	players := &fakePlayerStore{rows: []models.StagedPlayer{
		{
			ID:     "p1",
			School: "Texas",
			Name:   "Jake Doe",
			Season: 2024,
			Data:   json.RawMessage(`{"position":"OF","class_year":"Fr."}`),
		},
		{
			ID:     "p2",
			School: "Texas",
			Name:   "Broken Row",
			Season: 2024,
			Data:   json.RawMessage(`{not json`),
		},
	}}
	coaches := &fakeCoachStore{rows: []models.StagedCoach{
		{
			ID:     "c1",
			School: "Texas",
			Name:   "Jim Smith",
			Season: 2024,
			Title:  "Head Coach",
		},
	}}

	src := NewStagingSource(testLogger(), players, coaches)
	dataset, err := src.ReadDataset(context.Background())
	require.NoError(t, err)

	require.Len(t, dataset.Players, 1)
	assert.Equal(t, "Jake Doe", dataset.Players[0].Name)
	assert.Equal(t, "OF", dataset.Players[0].Position)
	require.Len(t, dataset.Coaches, 1)
	assert.Equal(t, "Head Coach", dataset.Coaches[0].Title)
}

func TestStagingSourceReadDatasetError(t *testing.T) {
	players := &fakePlayerStore{err: errors.New("connection refused")}
	src := NewStagingSource(testLogger(), players, &fakeCoachStore{})

	_, err := src.ReadDataset(context.Background())
	require.Error(t, err)
}
