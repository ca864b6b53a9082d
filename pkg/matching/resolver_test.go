package matching

import (
	"context"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestResolver_Resolve(t *testing.T) {
	resolver := NewResolver(testLogger(), DefaultScoreCutoff)
	canonical := []string{"University of Missouri", "University of Texas", "Westlake High School"}

	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "exact match",
			raw:      "University of Texas",
			expected: "University of Texas",
		},
		{
			name:     "case insensitive exact match",
			raw:      "university of texas",
			expected: "University of Texas",
		},
		{
			name:     "substring variant",
			raw:      "Missouri",
			expected: "University of Missouri",
		},
		{
			name:     "typo above cutoff",
			raw:      "Westlake High Scool",
			expected: "Westlake High School",
		},
		{
			name:     "below cutoff maps to itself",
			raw:      "Vanderbilt",
			expected: "Vanderbilt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapping := resolver.Resolve(context.Background(), []string{tt.raw}, canonical)
			assert.Equal(t, tt.expected, mapping[tt.raw])
		})
	}
}

func TestResolver_Resolve_Idempotent(t *testing.T) {
	resolver := NewResolver(testLogger(), DefaultScoreCutoff)
	canonical := []string{"University of Missouri", "University of Texas"}

	first := resolver.Resolve(context.Background(), []string{"Missouri", "Vanderbilt"}, canonical)

	// Feeding resolved values back through changes nothing.
	resolved := []string{first["Missouri"], first["Vanderbilt"]}
	second := resolver.Resolve(context.Background(), resolved, canonical)
	for _, v := range resolved {
		assert.Equal(t, v, second[v])
	}
}

func TestResolver_CanonicalizeSchools(t *testing.T) {
	resolver := NewResolver(testLogger(), DefaultScoreCutoff)

	input := models.Dataset{
		Players: []models.PlayerRecord{
			{School: "Missouri", Name: "Jake Doe", HighSchool: "Westlake High Scool"},
			{School: "Missouri", Name: "Sam Roe", HighSchool: "Eastview Academy", LastSchool: "N/A"},
		},
		Schools: []models.SchoolRecord{
			{Name: "Westlake High School", SchoolType: models.SchoolTypeHighSchool},
		},
	}

	out, mapping := resolver.CanonicalizeSchools(context.Background(), input)

	// Typo rewritten onto the canonical row.
	assert.Equal(t, "Westlake High School", out.Players[0].HighSchool)
	assert.Equal(t, "Westlake High School", mapping["Westlake High Scool"])

	// Unknown school maps to itself and is appended to the reference table.
	assert.Equal(t, "Eastview Academy", out.Players[1].HighSchool)
	require.Len(t, out.Schools, 2)
	assert.Equal(t, "Eastview Academy", out.Schools[1].Name)
	assert.Equal(t, models.SchoolTypeHighSchool, out.Schools[1].SchoolType)

	// Missing sentinel untouched.
	assert.Equal(t, "N/A", out.Players[1].LastSchool)

	// Input snapshot untouched.
	assert.Equal(t, "Westlake High Scool", input.Players[0].HighSchool)

	// Running the pass again is a no-op.
	again, _ := resolver.CanonicalizeSchools(context.Background(), out)
	assert.Equal(t, out.Players, again.Players)
	assert.Equal(t, out.Schools, again.Schools)
}
