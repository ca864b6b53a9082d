// Package transfers infers player transfers from season-over-season roster
// membership.
package transfers

import (
	"sort"

	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/normalizers"
)

// Transfer is one inferred school change: the player appeared on one
// school's roster and on a different school's roster the very next season.
type Transfer struct {
	PlayerName string `json:"player_name"`
	FromSchool string `json:"from_school"`
	ToSchool   string `json:"to_school"`
	FromSeason int    `json:"from_season"`
	ToSeason   int    `json:"to_season"`
}

// Infer finds transfers across the snapshot. Only consecutive seasons
// produce a transfer; a gap year breaks the chain since the player may
// have gone anywhere in between. Records without a season are skipped.
// A player with several school changes yields one transfer per change.
func Infer(players []models.PlayerRecord) []Transfer {
	type sighting struct {
		school string
		name   string
		season int
	}

	byPlayer := make(map[string][]sighting)
	var order []string
	for _, p := range players {
		if p.Season == 0 || models.IsMissing(p.Name) || models.IsMissing(p.School) {
			continue
		}
		key := normalizers.NormalizeName(p.Name)
		if _, ok := byPlayer[key]; !ok {
			order = append(order, key)
		}
		byPlayer[key] = append(byPlayer[key], sighting{school: p.School, name: p.Name, season: p.Season})
	}

	var out []Transfer
	for _, key := range order {
		sightings := byPlayer[key]
		sort.Slice(sightings, func(i, j int) bool {
			return sightings[i].season < sightings[j].season
		})

		seen := make(map[Transfer]struct{})
		for i := 0; i < len(sightings); i++ {
			for j := i + 1; j < len(sightings); j++ {
				from, to := sightings[i], sightings[j]
				if to.season != from.season+1 {
					continue
				}
				if to.school == from.school {
					continue
				}
				t := Transfer{
					PlayerName: to.name,
					FromSchool: from.school,
					ToSchool:   to.school,
					FromSeason: from.season,
					ToSeason:   to.season,
				}
				if _, dup := seen[t]; dup {
					continue
				}
				seen[t] = struct{}{}
				out = append(out, t)
			}
		}
	}
	return out
}
