package models

import (
	"encoding/json"
	"time"
)

// StagedPlayer is a raw player row parked in Postgres by the ingest consumer,
// keyed by the natural identity (school, name, season). The fingerprint is a
// hash of the row data and lets re-deliveries skip unchanged rows.
type StagedPlayer struct {
	ID          string          `json:"id" db:"id"`
	School      string          `json:"school" db:"school"`
	Name        string          `json:"name" db:"name"`
	Season      int             `json:"season" db:"season"`
	Data        json.RawMessage `json:"data" db:"data"`
	Fingerprint string          `json:"fingerprint" db:"fingerprint"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// Record decodes the staged payload into a player row. The staging key
// columns win over whatever the payload carries.
func (s *StagedPlayer) Record() (PlayerRecord, error) {
	var rec PlayerRecord
	if len(s.Data) > 0 {
		if err := json.Unmarshal(s.Data, &rec); err != nil {
			return PlayerRecord{}, err
		}
	}
	rec.School = s.School
	rec.Name = s.Name
	rec.Season = s.Season
	return rec, nil
}

// StagedCoach is a raw coach row parked in Postgres by the ingest consumer.
// One row per raw title sighting; the merge phase of the role aggregator
// collapses them downstream, so re-scrapes of the same title are deduplicated
// here by (school, name, season, title).
type StagedCoach struct {
	ID          string          `json:"id" db:"id"`
	School      string          `json:"school" db:"school"`
	Name        string          `json:"name" db:"name"`
	Season      int             `json:"season" db:"season"`
	Title       string          `json:"title" db:"title"`
	Data        json.RawMessage `json:"data" db:"data"`
	Fingerprint string          `json:"fingerprint" db:"fingerprint"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// Record decodes the staged payload into a coach row.
func (s *StagedCoach) Record() (CoachRecord, error) {
	var rec CoachRecord
	if len(s.Data) > 0 {
		if err := json.Unmarshal(s.Data, &rec); err != nil {
			return CoachRecord{}, err
		}
	}
	rec.School = s.School
	rec.Name = s.Name
	rec.Season = s.Season
	rec.Title = s.Title
	return rec, nil
}
