// Package models defines the record row types that flow through the
// canonicalization pipeline. Raw records mirror the scraping layer's output
// contract (header-named fields, "N/A" sentinel for missing values); optional
// fields vary by dataset vintage and are simply left empty when absent.
package models

// MissingValue is the scraping layer's sentinel for an absent field.
const MissingValue = "N/A"

// IsMissing reports whether a raw field value carries no data.
func IsMissing(v string) bool {
	return v == "" || v == MissingValue
}

// PlayerRecord is one raw roster row for a player.
//
// School and Name are required on every vintage. Season is 0 for early
// vintages that carried no season column; Batting/Throwing, Hometown and
// LastSchool only appear on later vintages.
type PlayerRecord struct {
	School     string `json:"school" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Jersey     string `json:"jersey,omitempty"`
	Position   string `json:"position,omitempty"` // raw, possibly multi-valued ("OF/3B")
	ClassYear  string `json:"class_year,omitempty"`
	Height     string `json:"height,omitempty"`
	Weight     string `json:"weight,omitempty"`
	Batting    string `json:"batting,omitempty"`
	Throwing   string `json:"throwing,omitempty"`
	HighSchool string `json:"high_school,omitempty"`
	Hometown   string `json:"hometown,omitempty"`
	LastSchool string `json:"last_school,omitempty"`
	Season     int    `json:"season,omitempty" validate:"omitempty,gte=1900"`

	// Derived during the pipeline; never present on raw input.
	Positions []string `json:"positions,omitempty"` // canonical position labels
	Team      string   `json:"team,omitempty"`      // branded team name, "" when unmapped
}

// CoachRecord is one raw staff row for a coach. A single coach commonly
// appears on multiple rows with different titles; the role aggregator folds
// those into one record per (Name, School[, Season]).
type CoachRecord struct {
	School string `json:"school" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Title  string `json:"title,omitempty"`
	Season int    `json:"season,omitempty" validate:"omitempty,gte=1900"`

	// Derived during the pipeline.
	Roles []string `json:"roles,omitempty"` // canonical role labels
	Team  string   `json:"team,omitempty"`
}

// TeamRecord is a reference row for a branded team.
type TeamRecord struct {
	Name     string `json:"name" validate:"required"`
	MemberOf string `json:"member_of,omitempty"` // conference abbreviation
}

// ConferenceRecord is a reference row for an athletic conference.
type ConferenceRecord struct {
	Name          string `json:"name" validate:"required"`
	Region        string `json:"region,omitempty"`
	Abbreviation  string `json:"abbreviation,omitempty"`
	FoundedYear   int    `json:"founded_year,omitempty"`
	NumberOfTeams int    `json:"number_of_teams,omitempty"`
	Headquarters  string `json:"headquarters,omitempty"`
}

// SchoolType classifies a school node.
type SchoolType string

const (
	SchoolTypeUniversity SchoolType = "university"
	SchoolTypeHighSchool SchoolType = "high school"
	SchoolTypeOther      SchoolType = "other"
)

// SchoolRecord is a reference row for a college or high school.
type SchoolRecord struct {
	Name       string     `json:"name" validate:"required"`
	SchoolType SchoolType `json:"school_type,omitempty"`
}

// Dataset is one immutable snapshot of all input tables for a pipeline run.
// Stages take a Dataset and return a new one; they never mutate their input.
type Dataset struct {
	Players     []PlayerRecord
	Coaches     []CoachRecord
	Teams       []TeamRecord
	Conferences []ConferenceRecord
	Schools     []SchoolRecord
}

// Clone returns a deep-enough copy for stage-to-stage handoff: the record
// slices are copied so a stage can rewrite rows without aliasing its input.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Players:     make([]PlayerRecord, len(d.Players)),
		Coaches:     make([]CoachRecord, len(d.Coaches)),
		Teams:       make([]TeamRecord, len(d.Teams)),
		Conferences: make([]ConferenceRecord, len(d.Conferences)),
		Schools:     make([]SchoolRecord, len(d.Schools)),
	}
	copy(out.Players, d.Players)
	copy(out.Coaches, d.Coaches)
	copy(out.Teams, d.Teams)
	copy(out.Conferences, d.Conferences)
	copy(out.Schools, d.Schools)
	for i := range out.Players {
		if p := d.Players[i].Positions; p != nil {
			out.Players[i].Positions = append([]string(nil), p...)
		}
	}
	for i := range out.Coaches {
		if r := d.Coaches[i].Roles; r != nil {
			out.Coaches[i].Roles = append([]string(nil), r...)
		}
	}
	return out
}
