package teams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
)

func TestCrossref_TeamFor(t *testing.T) {
	crossref := DefaultCrossref()

	tests := []struct {
		school   string
		expected string
	}{
		{"Missouri", "Missouri Tigers"},
		{"University of Missouri", "Missouri Tigers"},
		{"mizzou", "Missouri Tigers"},
		{"Texas A&M", "Texas A&M Aggies"},
		{"Florida", "Florida Gators"},
		{"Westlake High School", ""},
	}

	for _, tt := range tests {
		t.Run(tt.school, func(t *testing.T) {
			assert.Equal(t, tt.expected, crossref.TeamFor(tt.school))
		})
	}
}

func TestCrossref_ApplyToDataset(t *testing.T) {
	crossref := DefaultCrossref()

	input := models.Dataset{
		Players: []models.PlayerRecord{
			{School: "Missouri", Name: "Jake Doe"},
			{School: "Unknown Tech", Name: "Sam Roe"},
		},
		Coaches: []models.CoachRecord{
			{School: "Florida", Name: "Pat Lee"},
		},
	}

	out := crossref.ApplyToDataset(input)

	assert.Equal(t, "Missouri Tigers", out.Players[0].Team)
	assert.Equal(t, "", out.Players[1].Team)
	assert.Equal(t, "Florida Gators", out.Coaches[0].Team)

	// Reference tables filled from the crossref.
	require.NotEmpty(t, out.Teams)
	require.Len(t, out.Conferences, 1)
	assert.Equal(t, "SEC", out.Conferences[0].Abbreviation)
	for _, team := range out.Teams {
		assert.Equal(t, "SEC", team.MemberOf)
	}

	// Input untouched.
	assert.Equal(t, "", input.Players[0].Team)
}

func TestCrossref_ApplyToDataset_KeepsProvidedReferenceTables(t *testing.T) {
	crossref := DefaultCrossref()

	input := models.Dataset{
		Teams: []models.TeamRecord{{Name: "Custom Team", MemberOf: "XYZ"}},
	}

	out := crossref.ApplyToDataset(input)
	require.Len(t, out.Teams, 1)
	assert.Equal(t, "Custom Team", out.Teams[0].Name)
}
