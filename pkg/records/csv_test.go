package records

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
)

func TestReadPlayers(t *testing.T) {
	input := `School,Name,Jersey,Position,Class Year,Height,Weight,Batting,Throwing,High School,Season
Missouri,Jake Doe,12,OF/3B,Jr.,6-1,195,L,R,Westlake High School,2025
Missouri,Sam Roe,N/A,P,Fr.,N/A,N/A,R,R,N/A,2025
`

	players, err := ReadPlayers(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, players, 2)

	assert.Equal(t, models.PlayerRecord{
		School:     "Missouri",
		Name:       "Jake Doe",
		Jersey:     "12",
		Position:   "OF/3B",
		ClassYear:  "Jr.",
		Height:     "6-1",
		Weight:     "195",
		Batting:    "L",
		Throwing:   "R",
		HighSchool: "Westlake High School",
		Season:     2025,
	}, players[0])

	assert.Equal(t, "N/A", players[1].Jersey)
}

func TestReadPlayers_OldVintageWithoutOptionalColumns(t *testing.T) {
	input := `School,Name,Jersey,Position,Class Year,Height,Weight,High School
Missouri,Jake Doe,12,OF,Jr.,6-1,195,Westlake High School
`

	players, err := ReadPlayers(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, players, 1)

	assert.Equal(t, "", players[0].Batting)
	assert.Equal(t, "", players[0].Hometown)
	assert.Equal(t, 0, players[0].Season)
}

func TestReadPlayers_HeaderCaseInsensitive(t *testing.T) {
	input := `SCHOOL,NAME,POSITION
Missouri,Jake Doe,OF
`

	players, err := ReadPlayers(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "OF", players[0].Position)
}

func TestReadCoaches(t *testing.T) {
	input := `School,Name,Title,Season
Missouri,Pat Lee,Head Coach,2025
Missouri,Pat Lee,Recruiting Coordinator,2025
`

	coaches, err := ReadCoaches(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, coaches, 2)
	assert.Equal(t, "Head Coach", coaches[0].Title)
	assert.Equal(t, 2025, coaches[1].Season)
}

func TestReadConferences(t *testing.T) {
	input := `Name,Region,Abbreviation,Founded Year,Number of Teams,Headquarters
Southeastern Conference,Southeast,SEC,1932,16,"Birmingham, AL"
`

	conferences, err := ReadConferences(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, conferences, 1)

	sec := conferences[0]
	assert.Equal(t, "SEC", sec.Abbreviation)
	assert.Equal(t, 1932, sec.FoundedYear)
	assert.Equal(t, 16, sec.NumberOfTeams)
	assert.Equal(t, "Birmingham, AL", sec.Headquarters)
}

func TestReadSchools(t *testing.T) {
	input := `Name,School Type
Westlake High School,High School
Missouri,University
`

	schools, err := ReadSchools(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, schools, 2)
	assert.Equal(t, models.SchoolTypeHighSchool, schools[0].SchoolType)
	assert.Equal(t, models.SchoolTypeUniversity, schools[1].SchoolType)
}

func TestReadPlayers_EmptyFile(t *testing.T) {
	players, err := ReadPlayers(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, players)
}
