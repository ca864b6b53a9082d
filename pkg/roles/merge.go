package roles

import (
	"sort"
	"strings"

	"github.com/Ramsey-B/clover/pkg/models"
)

// TitleSeparator joins distinct raw titles on a merged coach record.
const TitleSeparator = " | "

type coachKey struct {
	name   string
	school string
	season int
}

// MergeCoaches collapses the raw staff rows to one record per
// (name, school, season). Distinct titles are deduplicated, sorted and
// joined, so the merged title does not depend on input order. Output
// records keep the first-appearance order of their group.
func MergeCoaches(coaches []models.CoachRecord) []models.CoachRecord {
	type group struct {
		record models.CoachRecord
		titles map[string]struct{}
	}

	groups := make(map[coachKey]*group)
	var order []coachKey

	for _, c := range coaches {
		key := coachKey{name: c.Name, school: c.School, season: c.Season}
		g, ok := groups[key]
		if !ok {
			g = &group{record: c, titles: make(map[string]struct{})}
			groups[key] = g
			order = append(order, key)
		}
		if !models.IsMissing(c.Title) {
			g.titles[c.Title] = struct{}{}
		}
	}

	out := make([]models.CoachRecord, 0, len(order))
	for _, key := range order {
		g := groups[key]
		titles := make([]string, 0, len(g.titles))
		for t := range g.titles {
			titles = append(titles, t)
		}
		sort.Strings(titles)

		record := g.record
		record.Title = strings.Join(titles, TitleSeparator)
		out = append(out, record)
	}
	return out
}

// Aggregate merges the staff rows and derives canonical roles from each
// merged title.
func Aggregate(coaches []models.CoachRecord) []models.CoachRecord {
	merged := MergeCoaches(coaches)
	for i := range merged {
		merged[i].Roles = ExtractRoles(merged[i].Title)
	}
	return merged
}
