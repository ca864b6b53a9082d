// Package records reads roster snapshots from the scraper's CSV exports.
// Columns are located by header name so vintages with extra or missing
// optional columns still parse.
package records

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/pkg/models"
)

// Default file names inside the data directory.
const (
	PlayersFile     = "players.csv"
	CoachesFile     = "coaches.csv"
	TeamsFile       = "teams.csv"
	ConferencesFile = "conferences.csv"
	SchoolsFile     = "schools.csv"
)

// Reader loads a snapshot from a directory of CSV files. Players and
// coaches are required; the reference tables are optional and fall back to
// the built-in crossref when absent.
type Reader struct {
	logger ectologger.Logger
	dir    string
}

// NewReader creates a reader over the given data directory.
func NewReader(logger ectologger.Logger, dir string) *Reader {
	return &Reader{logger: logger, dir: dir}
}

// ReadDataset reads every CSV in the directory into one snapshot.
func (r *Reader) ReadDataset() (models.Dataset, error) {
	var dataset models.Dataset

	if err := r.readFile(PlayersFile, true, func(f io.Reader) error {
		players, err := ReadPlayers(f)
		dataset.Players = players
		return err
	}); err != nil {
		return dataset, err
	}

	if err := r.readFile(CoachesFile, true, func(f io.Reader) error {
		coaches, err := ReadCoaches(f)
		dataset.Coaches = coaches
		return err
	}); err != nil {
		return dataset, err
	}

	if err := r.readFile(TeamsFile, false, func(f io.Reader) error {
		teams, err := ReadTeams(f)
		dataset.Teams = teams
		return err
	}); err != nil {
		return dataset, err
	}

	if err := r.readFile(ConferencesFile, false, func(f io.Reader) error {
		conferences, err := ReadConferences(f)
		dataset.Conferences = conferences
		return err
	}); err != nil {
		return dataset, err
	}

	if err := r.readFile(SchoolsFile, false, func(f io.Reader) error {
		schools, err := ReadSchools(f)
		dataset.Schools = schools
		return err
	}); err != nil {
		return dataset, err
	}

	r.logger.WithFields(map[string]any{
		"player_count": len(dataset.Players),
		"coach_count":  len(dataset.Coaches),
		"data_dir":     r.dir,
	}).Info("Read CSV snapshot")

	return dataset, nil
}

func (r *Reader) readFile(name string, required bool, parse func(io.Reader) error) error {
	path := filepath.Join(r.dir, name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			r.logger.WithField("file", name).Debug("Optional CSV missing, skipping")
			return nil
		}
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	if err := parse(f); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// header maps lowercased column names to their index.
type header map[string]int

func readTable(r io.Reader) (header, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return header{}, nil, nil
	}

	head := make(header, len(rows[0]))
	for i, name := range rows[0] {
		head[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return head, rows[1:], nil
}

// get returns the trimmed cell for a column, or "" when the column or cell
// is absent from this vintage.
func (h header) get(row []string, column string) string {
	idx, ok := h[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (h header) getInt(row []string, column string) int {
	value := h.get(row, column)
	if models.IsMissing(value) {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

// ReadPlayers parses the player roster table.
func ReadPlayers(r io.Reader) ([]models.PlayerRecord, error) {
	head, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}

	players := make([]models.PlayerRecord, 0, len(rows))
	for _, row := range rows {
		players = append(players, models.PlayerRecord{
			School:     head.get(row, "school"),
			Name:       head.get(row, "name"),
			Jersey:     head.get(row, "jersey"),
			Position:   head.get(row, "position"),
			ClassYear:  head.get(row, "class year"),
			Height:     head.get(row, "height"),
			Weight:     head.get(row, "weight"),
			Batting:    head.get(row, "batting"),
			Throwing:   head.get(row, "throwing"),
			HighSchool: head.get(row, "high school"),
			Hometown:   head.get(row, "hometown"),
			LastSchool: head.get(row, "last school"),
			Season:     head.getInt(row, "season"),
		})
	}
	return players, nil
}

// ReadCoaches parses the coaching staff table.
func ReadCoaches(r io.Reader) ([]models.CoachRecord, error) {
	head, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}

	coaches := make([]models.CoachRecord, 0, len(rows))
	for _, row := range rows {
		coaches = append(coaches, models.CoachRecord{
			School: head.get(row, "school"),
			Name:   head.get(row, "name"),
			Title:  head.get(row, "title"),
			Season: head.getInt(row, "season"),
		})
	}
	return coaches, nil
}

// ReadTeams parses the team reference table.
func ReadTeams(r io.Reader) ([]models.TeamRecord, error) {
	head, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}

	teams := make([]models.TeamRecord, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, models.TeamRecord{
			Name:     head.get(row, "name"),
			MemberOf: head.get(row, "member of"),
		})
	}
	return teams, nil
}

// ReadConferences parses the conference reference table.
func ReadConferences(r io.Reader) ([]models.ConferenceRecord, error) {
	head, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}

	conferences := make([]models.ConferenceRecord, 0, len(rows))
	for _, row := range rows {
		conferences = append(conferences, models.ConferenceRecord{
			Name:          head.get(row, "name"),
			Region:        head.get(row, "region"),
			Abbreviation:  head.get(row, "abbreviation"),
			FoundedYear:   head.getInt(row, "founded year"),
			NumberOfTeams: head.getInt(row, "number of teams"),
			Headquarters:  head.get(row, "headquarters"),
		})
	}
	return conferences, nil
}

// ReadSchools parses the school reference table.
func ReadSchools(r io.Reader) ([]models.SchoolRecord, error) {
	head, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}

	schools := make([]models.SchoolRecord, 0, len(rows))
	for _, row := range rows {
		schools = append(schools, models.SchoolRecord{
			Name:       head.get(row, "name"),
			SchoolType: models.SchoolType(strings.ToLower(head.get(row, "school type"))),
		})
	}
	return schools, nil
}
