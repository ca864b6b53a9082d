package models

import (
	"encoding/json"
	"time"
)

// Roster message kinds published by the scraping layer.
const (
	RosterKindPlayer = "player"
	RosterKindCoach  = "coach"
)

// RosterMessage is one scraped record arriving on the ingest topic. The
// scraping layer is an external collaborator; this is its output contract.
type RosterMessage struct {
	Kind      string          `json:"kind" validate:"required,oneof=player coach"`
	School    string          `json:"school" validate:"required"`
	Season    int             `json:"season,omitempty"`
	SourceURL string          `json:"source_url,omitempty"`
	ScrapedAt time.Time       `json:"scraped_at"`
	Data      json.RawMessage `json:"data" validate:"required"`
}

// Player decodes the payload as a player row. The embedded School/Season on
// the envelope win over any copy inside the payload.
func (m *RosterMessage) Player() (PlayerRecord, error) {
	var rec PlayerRecord
	if err := json.Unmarshal(m.Data, &rec); err != nil {
		return PlayerRecord{}, err
	}
	rec.School = m.School
	if m.Season != 0 {
		rec.Season = m.Season
	}
	return rec, nil
}

// Coach decodes the payload as a coach row.
func (m *RosterMessage) Coach() (CoachRecord, error) {
	var rec CoachRecord
	if err := json.Unmarshal(m.Data, &rec); err != nil {
		return CoachRecord{}, err
	}
	rec.School = m.School
	if m.Season != 0 {
		rec.Season = m.Season
	}
	return rec, nil
}
