package transfers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		name     string
		players  []models.PlayerRecord
		expected []Transfer
	}{
		{
			name: "consecutive seasons produce a transfer",
			players: []models.PlayerRecord{
				{Name: "Jake Doe", School: "Missouri", Season: 2024},
				{Name: "Jake Doe", School: "Texas", Season: 2025},
			},
			expected: []Transfer{
				{PlayerName: "Jake Doe", FromSchool: "Missouri", ToSchool: "Texas", FromSeason: 2024, ToSeason: 2025},
			},
		},
		{
			name: "gap year produces nothing",
			players: []models.PlayerRecord{
				{Name: "Jake Doe", School: "Missouri", Season: 2023},
				{Name: "Jake Doe", School: "Texas", Season: 2025},
			},
			expected: nil,
		},
		{
			name: "same school is not a transfer",
			players: []models.PlayerRecord{
				{Name: "Jake Doe", School: "Missouri", Season: 2024},
				{Name: "Jake Doe", School: "Missouri", Season: 2025},
			},
			expected: nil,
		},
		{
			name: "multiple changes all retained",
			players: []models.PlayerRecord{
				{Name: "Jake Doe", School: "Missouri", Season: 2023},
				{Name: "Jake Doe", School: "Texas", Season: 2024},
				{Name: "Jake Doe", School: "Florida", Season: 2025},
			},
			expected: []Transfer{
				{PlayerName: "Jake Doe", FromSchool: "Missouri", ToSchool: "Texas", FromSeason: 2023, ToSeason: 2024},
				{PlayerName: "Jake Doe", FromSchool: "Texas", ToSchool: "Florida", FromSeason: 2024, ToSeason: 2025},
			},
		},
		{
			name: "missing season skipped",
			players: []models.PlayerRecord{
				{Name: "Jake Doe", School: "Missouri"},
				{Name: "Jake Doe", School: "Texas", Season: 2025},
			},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Infer(tt.players))
		})
	}
}

func TestInfer_NameNormalization(t *testing.T) {
	players := []models.PlayerRecord{
		{Name: "Jake Doe Jr.", School: "Missouri", Season: 2024},
		{Name: "jake doe", School: "Texas", Season: 2025},
	}

	out := Infer(players)
	require.Len(t, out, 1)
	assert.Equal(t, "Missouri", out[0].FromSchool)
	assert.Equal(t, "Texas", out[0].ToSchool)
}

func TestInfer_DuplicateRowsCollapse(t *testing.T) {
	players := []models.PlayerRecord{
		{Name: "Jake Doe", School: "Missouri", Season: 2024},
		{Name: "Jake Doe", School: "Missouri", Season: 2024},
		{Name: "Jake Doe", School: "Texas", Season: 2025},
	}

	assert.Len(t, Infer(players), 1)
}
