package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/transfers"
)

func TestSchoolRows_IncludesRosterSchools(t *testing.T) {
	dataset := models.Dataset{
		Players: []models.PlayerRecord{
			{School: "Missouri", Name: "Jake Doe", HighSchool: "Westlake High School"},
		},
		Coaches: []models.CoachRecord{
			{School: "Texas", Name: "Pat Lee"},
		},
		Schools: []models.SchoolRecord{
			{Name: "Westlake High School", SchoolType: models.SchoolTypeHighSchool},
		},
	}

	rows := schoolRows(dataset)
	require.Len(t, rows, 3)

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row["name"].(string))
	}
	assert.Equal(t, []string{"Westlake High School", "Missouri", "Texas"}, names)

	// Roster schools default to the university type.
	props := rows[1]["props"].(map[string]any)
	assert.Equal(t, "university", props["school_type"])
}

func TestPositionRows_DistinctAndSorted(t *testing.T) {
	dataset := models.Dataset{
		Players: []models.PlayerRecord{
			{Name: "A", School: "X", Positions: []string{"Outfielder", "Third Base"}},
			{Name: "B", School: "X", Positions: []string{"Outfielder", "Pitcher"}},
		},
	}

	rows := positionRows(dataset)
	require.Len(t, rows, 3)
	assert.Equal(t, "Outfielder", rows[0]["name"])
	assert.Equal(t, "Pitcher", rows[1]["name"])
	assert.Equal(t, "Third Base", rows[2]["name"])
}

func TestPlayerRows_OmitsMissingFields(t *testing.T) {
	dataset := models.Dataset{
		Players: []models.PlayerRecord{
			{
				School:    "Missouri",
				Name:      "Jake Doe",
				Jersey:    "12",
				Batting:   "N/A",
				Positions: []string{"Outfielder"},
			},
		},
	}

	rows := playerRows(dataset)
	require.Len(t, rows, 1)

	props := rows[0]["props"].(map[string]any)
	assert.Equal(t, "12", props["jersey"])
	assert.Equal(t, []string{"Outfielder"}, props["positions"])
	_, hasBatting := props["batting"]
	assert.False(t, hasBatting)
}

func TestPlayerRows_NumbersPositionSlots(t *testing.T) {
	dataset := models.Dataset{
		Players: []models.PlayerRecord{
			{School: "Missouri", Name: "Jake Doe", Positions: []string{"Outfielder", "Third Base"}},
			{School: "Missouri", Name: "Sam Roe", Positions: []string{"Pitcher"}},
			{School: "Missouri", Name: "Lou Poe"},
		},
	}

	rows := playerRows(dataset)
	require.Len(t, rows, 3)

	props := rows[0]["props"].(map[string]any)
	assert.Equal(t, "Outfielder", props["position1"])
	assert.Equal(t, "Third Base", props["position2"])

	props = rows[1]["props"].(map[string]any)
	assert.Equal(t, "Pitcher", props["position1"])
	_, hasSecond := props["position2"]
	assert.False(t, hasSecond)

	props = rows[2]["props"].(map[string]any)
	_, hasFirst := props["position1"]
	assert.False(t, hasFirst)
}

func TestPlaysForRows_SkipsUnmappedTeams(t *testing.T) {
	dataset := models.Dataset{
		Players: []models.PlayerRecord{
			{School: "Missouri", Name: "Jake Doe", Team: "Missouri Tigers", Season: 2025},
			{School: "Unknown Tech", Name: "Sam Roe"},
		},
	}

	rows, skipped := playsForRows(dataset)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "Missouri Tigers", rows[0]["team"])
	assert.Equal(t, 2025, rows[0]["season"])
}

func TestPlaysForRows_CarriesEdgeAttributes(t *testing.T) {
	dataset := models.Dataset{
		Players: []models.PlayerRecord{
			{
				School:    "Missouri",
				Name:      "Jake Doe",
				Team:      "Missouri Tigers",
				Season:    2025,
				Jersey:    "12",
				ClassYear: "Freshman",
				Positions: []string{"Outfielder"},
			},
		},
	}

	rows, _ := playsForRows(dataset)
	require.Len(t, rows, 1)

	props := rows[0]["props"].(map[string]any)
	assert.Equal(t, "12", props["jersey"])
	assert.Equal(t, "Freshman", props["class_year"])
	assert.Equal(t, []string{"Outfielder"}, props["positions"])
}

func TestRepresentsRows_DistinctPairs(t *testing.T) {
	dataset := models.Dataset{
		Players: []models.PlayerRecord{
			{School: "Missouri", Name: "Jake Doe", Team: "Missouri Tigers"},
			{School: "Missouri", Name: "Sam Roe", Team: "Missouri Tigers"},
			{School: "Unknown Tech", Name: "Lou Poe"},
		},
		Coaches: []models.CoachRecord{
			{School: "Texas", Name: "Pat Lee", Team: "Texas Longhorns"},
		},
	}

	rows := representsRows(dataset)
	require.Len(t, rows, 2)
	assert.Equal(t, "Missouri Tigers", rows[0]["team"])
	assert.Equal(t, "Missouri", rows[0]["school"])
	assert.Equal(t, "Texas Longhorns", rows[1]["team"])
}

func TestAttendedRows_SkipsMissingHighSchool(t *testing.T) {
	dataset := models.Dataset{
		Players: []models.PlayerRecord{
			{School: "Missouri", Name: "Jake Doe", HighSchool: "Westlake High School"},
			{School: "Missouri", Name: "Sam Roe", HighSchool: "N/A"},
			{School: "Missouri", Name: "Lou Poe"},
		},
	}

	rows := attendedRows(dataset)
	require.Len(t, rows, 1)
	assert.Equal(t, "Westlake High School", rows[0]["high_school"])
}

func TestTransferRows_MapsSchoolsToTeams(t *testing.T) {
	dataset := models.Dataset{
		Players: []models.PlayerRecord{
			{School: "Missouri", Name: "Jake Doe", Team: "Missouri Tigers", Season: 2024},
			{School: "Texas", Name: "Jake Doe", Team: "Texas Longhorns", Season: 2025},
		},
	}

	rows, skipped := transferRows(dataset, []transfers.Transfer{
		{PlayerName: "Jake Doe", FromSchool: "Missouri", ToSchool: "Texas", FromSeason: 2024, ToSeason: 2025},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, "Texas", rows[0]["to_school"])
	assert.Equal(t, "Missouri Tigers", rows[0]["from_team"])
	assert.Equal(t, "Texas Longhorns", rows[0]["to_team"])
	assert.Equal(t, 2024, rows[0]["from_season"])
	assert.Equal(t, 2025, rows[0]["season"])
}

func TestTransferRows_SkipsSameTeamMoves(t *testing.T) {
	// Two spellings of one school resolve to the same branded team; that is
	// a school rename, not a transfer.
	dataset := models.Dataset{
		Players: []models.PlayerRecord{
			{School: "Missouri", Name: "Jake Doe", Team: "Missouri Tigers", Season: 2024},
			{School: "University of Missouri", Name: "Jake Doe", Team: "Missouri Tigers", Season: 2025},
		},
	}

	rows, skipped := transferRows(dataset, []transfers.Transfer{
		{PlayerName: "Jake Doe", FromSchool: "Missouri", ToSchool: "University of Missouri", FromSeason: 2024, ToSeason: 2025},
	})

	assert.Empty(t, rows)
	assert.Equal(t, 1, skipped)
}

func TestTransferRows_SkipsUnmappedTeams(t *testing.T) {
	dataset := models.Dataset{
		Players: []models.PlayerRecord{
			{School: "Unknown Tech", Name: "Sam Roe", Season: 2024},
			{School: "Texas", Name: "Sam Roe", Team: "Texas Longhorns", Season: 2025},
		},
	}

	rows, skipped := transferRows(dataset, []transfers.Transfer{
		{PlayerName: "Sam Roe", FromSchool: "Unknown Tech", ToSchool: "Texas", FromSeason: 2024, ToSeason: 2025},
	})

	assert.Empty(t, rows)
	assert.Equal(t, 1, skipped)
}
