// Package teams carries the static school-to-team crossref: which branded
// athletic team a school's roster belongs to, and which conference that
// team plays in. The scraped rosters only know school names; this table
// supplies the athletics identity.
package teams

import (
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/normalizers"
)

type entry struct {
	team     string
	schools  []string
	memberOf string
}

// Crossref resolves school names to branded team names. Lookups go through
// name normalization so punctuation and casing variants still hit.
type Crossref struct {
	bySchool    map[string]string
	teams       []models.TeamRecord
	conferences []models.ConferenceRecord
}

// DefaultCrossref returns the crossref for the covered conference schools.
func DefaultCrossref() *Crossref {
	entries := []entry{
		{team: "Missouri Tigers", schools: []string{"Missouri", "University of Missouri", "Mizzou"}, memberOf: "SEC"},
		{team: "Florida Gators", schools: []string{"Florida", "University of Florida"}, memberOf: "SEC"},
		{team: "Oklahoma Sooners", schools: []string{"Oklahoma", "University of Oklahoma"}, memberOf: "SEC"},
		{team: "Texas Longhorns", schools: []string{"Texas", "University of Texas", "University of Texas at Austin"}, memberOf: "SEC"},
		{team: "Georgia Bulldogs", schools: []string{"Georgia", "University of Georgia"}, memberOf: "SEC"},
		{team: "Tennessee Volunteers", schools: []string{"Tennessee", "University of Tennessee"}, memberOf: "SEC"},
		{team: "LSU Tigers", schools: []string{"LSU", "Louisiana State University"}, memberOf: "SEC"},
		{team: "Vanderbilt Commodores", schools: []string{"Vanderbilt", "Vanderbilt University"}, memberOf: "SEC"},
		{team: "Arkansas Razorbacks", schools: []string{"Arkansas", "University of Arkansas"}, memberOf: "SEC"},
		{team: "Alabama Crimson Tide", schools: []string{"Alabama", "University of Alabama"}, memberOf: "SEC"},
		{team: "Auburn Tigers", schools: []string{"Auburn", "Auburn University"}, memberOf: "SEC"},
		{team: "Ole Miss Rebels", schools: []string{"Ole Miss", "University of Mississippi"}, memberOf: "SEC"},
		{team: "Mississippi State Bulldogs", schools: []string{"Mississippi State", "Mississippi State University"}, memberOf: "SEC"},
		{team: "Kentucky Wildcats", schools: []string{"Kentucky", "University of Kentucky"}, memberOf: "SEC"},
		{team: "South Carolina Gamecocks", schools: []string{"South Carolina", "University of South Carolina"}, memberOf: "SEC"},
		{team: "Texas A&M Aggies", schools: []string{"Texas A&M", "Texas A&M University"}, memberOf: "SEC"},
	}
	conferences := []models.ConferenceRecord{
		{
			Name:          "Southeastern Conference",
			Abbreviation:  "SEC",
			Region:        "Southeast",
			FoundedYear:   1932,
			NumberOfTeams: 16,
			Headquarters:  "Birmingham, AL",
		},
	}
	return newCrossref(entries, conferences)
}

func newCrossref(entries []entry, conferences []models.ConferenceRecord) *Crossref {
	c := &Crossref{
		bySchool:    make(map[string]string),
		conferences: conferences,
	}
	for _, e := range entries {
		c.teams = append(c.teams, models.TeamRecord{Name: e.team, MemberOf: e.memberOf})
		for _, school := range e.schools {
			c.bySchool[normalizers.NormalizeName(school)] = e.team
		}
	}
	return c
}

// TeamFor returns the branded team name for a school, or "" when the
// school is not in the crossref.
func (c *Crossref) TeamFor(school string) string {
	return c.bySchool[normalizers.NormalizeName(school)]
}

// Teams returns the team reference rows.
func (c *Crossref) Teams() []models.TeamRecord {
	return append([]models.TeamRecord(nil), c.teams...)
}

// Conferences returns the conference reference rows.
func (c *Crossref) Conferences() []models.ConferenceRecord {
	return append([]models.ConferenceRecord(nil), c.conferences...)
}

// ApplyToDataset stamps the branded team onto every player and coach and
// fills the team and conference reference tables when the snapshot arrived
// without them. Unmapped schools keep an empty Team; the loader skips those
// membership edges rather than inventing a team node.
func (c *Crossref) ApplyToDataset(dataset models.Dataset) models.Dataset {
	out := dataset.Clone()
	for i := range out.Players {
		out.Players[i].Team = c.TeamFor(out.Players[i].School)
	}
	for i := range out.Coaches {
		out.Coaches[i].Team = c.TeamFor(out.Coaches[i].School)
	}
	if len(out.Teams) == 0 {
		out.Teams = c.Teams()
	}
	if len(out.Conferences) == 0 {
		out.Conferences = c.Conferences()
	}
	return out
}
