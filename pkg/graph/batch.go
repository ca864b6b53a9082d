package graph

import (
	"fmt"
	"sort"

	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/transfers"
)

// Batch row builders. These are pure: they turn the snapshot into the
// UNWIND parameter rows for each upsert statement. Rows that would MATCH a
// missing endpoint are filtered here so the load can count what it skips.

func conferenceRows(dataset models.Dataset) []map[string]any {
	rows := make([]map[string]any, 0, len(dataset.Conferences))
	for _, c := range dataset.Conferences {
		rows = append(rows, map[string]any{
			"name": c.Name,
			"props": map[string]any{
				"name":            c.Name,
				"abbreviation":    c.Abbreviation,
				"region":          c.Region,
				"founded_year":    c.FoundedYear,
				"number_of_teams": c.NumberOfTeams,
				"headquarters":    c.Headquarters,
			},
		})
	}
	return rows
}

// schoolRows includes the reference school table plus every roster school a
// player or coach record mentions, so relationship endpoints always exist.
func schoolRows(dataset models.Dataset) []map[string]any {
	seen := make(map[string]struct{}, len(dataset.Schools))
	rows := make([]map[string]any, 0, len(dataset.Schools))

	add := func(name string, schoolType models.SchoolType) {
		if models.IsMissing(name) {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		rows = append(rows, map[string]any{
			"name": name,
			"props": map[string]any{
				"name":        name,
				"school_type": string(schoolType),
			},
		})
	}

	for _, s := range dataset.Schools {
		add(s.Name, s.SchoolType)
	}
	for _, p := range dataset.Players {
		add(p.School, models.SchoolTypeUniversity)
	}
	for _, c := range dataset.Coaches {
		add(c.School, models.SchoolTypeUniversity)
	}
	return rows
}

// positionRows derives the position vocabulary actually used by the batch.
func positionRows(dataset models.Dataset) []map[string]any {
	seen := make(map[string]struct{})
	for _, p := range dataset.Players {
		for _, pos := range p.Positions {
			seen[pos] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]map[string]any, 0, len(names))
	for _, name := range names {
		rows = append(rows, map[string]any{
			"name":  name,
			"props": map[string]any{"name": name},
		})
	}
	return rows
}

func teamRows(dataset models.Dataset) []map[string]any {
	rows := make([]map[string]any, 0, len(dataset.Teams))
	for _, t := range dataset.Teams {
		rows = append(rows, map[string]any{
			"name": t.Name,
			"props": map[string]any{
				"name":      t.Name,
				"member_of": t.MemberOf,
			},
		})
	}
	return rows
}

func playerRows(dataset models.Dataset) []map[string]any {
	rows := make([]map[string]any, 0, len(dataset.Players))
	for _, p := range dataset.Players {
		props := map[string]any{
			"name":        p.Name,
			"school_name": p.School,
		}
		setIfPresent := func(key, value string) {
			if !models.IsMissing(value) {
				props[key] = value
			}
		}
		setIfPresent("jersey", p.Jersey)
		setIfPresent("class_year", p.ClassYear)
		setIfPresent("height", p.Height)
		setIfPresent("weight", p.Weight)
		setIfPresent("batting", p.Batting)
		setIfPresent("throwing", p.Throwing)
		setIfPresent("hometown", p.Hometown)
		setIfPresent("high_school", p.HighSchool)
		if len(p.Positions) > 0 {
			props["positions"] = p.Positions
		}
		// Numbered slot properties (position1, position2, ...) so plain
		// property filters work without list predicates. Only filled slots
		// are set; a one-position player carries a single slot.
		for i, pos := range p.Positions {
			props[fmt.Sprintf("position%d", i+1)] = pos
		}

		rows = append(rows, map[string]any{
			"name":        p.Name,
			"school_name": p.School,
			"props":       props,
		})
	}
	return rows
}

func coachRows(dataset models.Dataset) []map[string]any {
	rows := make([]map[string]any, 0, len(dataset.Coaches))
	for _, c := range dataset.Coaches {
		props := map[string]any{
			"name":        c.Name,
			"school_name": c.School,
		}
		if !models.IsMissing(c.Title) {
			props["title"] = c.Title
		}
		if len(c.Roles) > 0 {
			props["roles"] = c.Roles
		}

		rows = append(rows, map[string]any{
			"name":        c.Name,
			"school_name": c.School,
			"props":       props,
		})
	}
	return rows
}

func memberOfRows(dataset models.Dataset) []map[string]any {
	var rows []map[string]any
	for _, t := range dataset.Teams {
		if t.MemberOf == "" {
			continue
		}
		rows = append(rows, map[string]any{
			"team":       t.Name,
			"conference": t.MemberOf,
		})
	}
	return rows
}

// playsForRows returns the membership rows and the count of players whose
// school is not in the team crossref.
func playsForRows(dataset models.Dataset) ([]map[string]any, int) {
	var rows []map[string]any
	skipped := 0
	for _, p := range dataset.Players {
		if p.Team == "" {
			skipped++
			continue
		}
		props := map[string]any{}
		if !models.IsMissing(p.Jersey) {
			props["jersey"] = p.Jersey
		}
		if !models.IsMissing(p.ClassYear) {
			props["class_year"] = p.ClassYear
		}
		if len(p.Positions) > 0 {
			props["positions"] = p.Positions
		}
		rows = append(rows, map[string]any{
			"name":        p.Name,
			"school_name": p.School,
			"team":        p.Team,
			"season":      p.Season,
			"props":       props,
		})
	}
	return rows, skipped
}

// representsRows links each branded team to the school it represents, using
// the crossref stamps on the roster rows.
func representsRows(dataset models.Dataset) []map[string]any {
	type pair struct{ team, school string }
	seen := make(map[pair]struct{})
	var rows []map[string]any

	add := func(team, school string) {
		if team == "" || models.IsMissing(school) {
			return
		}
		key := pair{team, school}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		rows = append(rows, map[string]any{
			"team":   team,
			"school": school,
		})
	}

	for _, p := range dataset.Players {
		add(p.Team, p.School)
	}
	for _, c := range dataset.Coaches {
		add(c.Team, c.School)
	}
	return rows
}

func coachesForRows(dataset models.Dataset) ([]map[string]any, int) {
	var rows []map[string]any
	skipped := 0
	for _, c := range dataset.Coaches {
		if c.Team == "" {
			skipped++
			continue
		}
		roles := c.Roles
		if roles == nil {
			roles = []string{}
		}
		rows = append(rows, map[string]any{
			"name":        c.Name,
			"school_name": c.School,
			"team":        c.Team,
			"season":      c.Season,
			"roles":       roles,
		})
	}
	return rows, skipped
}

func hasPositionRows(dataset models.Dataset) []map[string]any {
	var rows []map[string]any
	for _, p := range dataset.Players {
		for _, pos := range p.Positions {
			rows = append(rows, map[string]any{
				"name":        p.Name,
				"school_name": p.School,
				"position":    pos,
			})
		}
	}
	return rows
}

func attendedRows(dataset models.Dataset) []map[string]any {
	var rows []map[string]any
	for _, p := range dataset.Players {
		if models.IsMissing(p.HighSchool) {
			continue
		}
		rows = append(rows, map[string]any{
			"name":        p.Name,
			"school_name": p.School,
			"high_school": p.HighSchool,
		})
	}
	return rows
}

// transferRows resolves the origin and destination schools to their branded
// teams. A transfer edge requires both endpoint teams to exist and to be
// distinct, so rows with either school missing from the crossref, or with
// both schools resolving to the same team, are skipped and counted.
func transferRows(dataset models.Dataset, list []transfers.Transfer) ([]map[string]any, int) {
	teamFor := make(map[string]string)
	for _, p := range dataset.Players {
		if p.Team != "" {
			teamFor[p.School] = p.Team
		}
	}

	rows := make([]map[string]any, 0, len(list))
	skipped := 0
	for _, t := range list {
		fromTeam := teamFor[t.FromSchool]
		toTeam := teamFor[t.ToSchool]
		if fromTeam == "" || toTeam == "" || fromTeam == toTeam {
			skipped++
			continue
		}
		rows = append(rows, map[string]any{
			"name":        t.PlayerName,
			"to_school":   t.ToSchool,
			"from_school": t.FromSchool,
			"from_team":   fromTeam,
			"to_team":     toTeam,
			"from_season": t.FromSeason,
			"season":      t.ToSeason,
		})
	}
	return rows, skipped
}
