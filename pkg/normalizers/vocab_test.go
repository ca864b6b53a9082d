package normalizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVocab_Positions(t *testing.T) {
	vocab := DefaultVocab()

	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "single code",
			raw:      "OF",
			expected: []string{"Outfielder"},
		},
		{
			name:     "multi valued slash",
			raw:      "OF/3B",
			expected: []string{"Outfielder", "Third Base"},
		},
		{
			name:     "multi valued comma with spaces",
			raw:      "C, 1B",
			expected: []string{"Catcher", "First Base"},
		},
		{
			name:     "handedness pitcher codes collapse",
			raw:      "RHP/LHP",
			expected: []string{"Pitcher"},
		},
		{
			name:     "unmapped tokens dropped",
			raw:      "OF/ATH",
			expected: []string{"Outfielder"},
		},
		{
			name:     "missing sentinel",
			raw:      "N/A",
			expected: nil,
		},
		{
			name:     "empty",
			raw:      "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, vocab.Positions(tt.raw))
		})
	}
}

func TestVocab_Position_FallsThroughUnmapped(t *testing.T) {
	vocab := DefaultVocab()

	assert.Equal(t, "Third Base", vocab.Position("3B"))
	assert.Equal(t, "Third Base", vocab.Position(" 3b "))
	assert.Equal(t, "Sweeper", vocab.Position("Sweeper"))
}

func TestVocab_Hand(t *testing.T) {
	vocab := DefaultVocab()

	assert.Equal(t, "Right", vocab.Hand("R"))
	assert.Equal(t, "Left", vocab.Hand("l"))
	assert.Equal(t, "Switch", vocab.Hand("S"))
	assert.Equal(t, "Switch", vocab.Hand("B"))
	assert.Equal(t, "X", vocab.Hand("X"))
}

func TestVocab_ClassYear(t *testing.T) {
	vocab := DefaultVocab()

	tests := []struct {
		raw      string
		expected string
	}{
		{"Fr.", "Freshman"},
		{"So.", "Sophomore"},
		{"Jr", "Junior"},
		{"SR.", "Senior"},
		{"R-Fr.", "Redshirt Freshman"},
		{"Gr.", "Graduate"},
		{"Super Senior", "Super Senior"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, vocab.ClassYear(tt.raw))
		})
	}
}

func TestVocab_Hometown(t *testing.T) {
	vocab := DefaultVocab()

	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "AP abbreviation",
			raw:      "Austin, Tex.",
			expected: "Austin, TX",
		},
		{
			name:     "full state name",
			raw:      "Columbia, Missouri",
			expected: "Columbia, MO",
		},
		{
			name:     "already USPS",
			raw:      "Gainesville, FL",
			expected: "Gainesville, FL",
		},
		{
			name:     "dotted abbreviation",
			raw:      "Buffalo, N.Y.",
			expected: "Buffalo, NY",
		},
		{
			name:     "city with internal comma",
			raw:      "Winston-Salem, N.C.",
			expected: "Winston-Salem, NC",
		},
		{
			name:     "unrecognized state passes through",
			raw:      "Tokyo, Japan",
			expected: "Tokyo, Japan",
		},
		{
			name:     "no comma passes through",
			raw:      "Austin",
			expected: "Austin",
		},
		{
			name:     "missing sentinel passes through",
			raw:      "N/A",
			expected: "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, vocab.Hometown(tt.raw))
		})
	}
}
