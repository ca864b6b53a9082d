// Package roles folds a coach's raw title sightings into a single record
// and extracts canonical role labels from the merged title string.
package roles

import (
	"strings"
	"unicode"
)

// Canonical role labels, in presentation order.
const (
	RoleHeadCoach             = "Head Coach"
	RoleAssociateHeadCoach    = "Associate Head Coach"
	RoleAssistantCoach        = "Assistant Coach"
	RolePitchingCoach         = "Pitching Coach"
	RoleHittingCoach          = "Hitting Coach"
	RoleCatchingCoach         = "Catching Coach"
	RoleInfieldCoach          = "Infield Coach"
	RoleOutfieldCoach         = "Outfield Coach"
	RoleStrengthCoach         = "Strength & Conditioning Coach"
	RoleRecruitingCoordinator = "Recruiting Coordinator"
	RoleDirectorOfOperations  = "Director of Operations"
	RoleVolunteerCoach        = "Volunteer Coach"
	RoleStudentAssistant      = "Student Assistant"
	RoleGraduateAssistant     = "Graduate Assistant"
	RoleAthleticTrainer       = "Athletic Trainer"
)

// roleOrder fixes the output ordering so extraction is deterministic and
// independent of the order titles were merged in.
var roleOrder = []string{
	RoleHeadCoach,
	RoleAssociateHeadCoach,
	RoleAssistantCoach,
	RolePitchingCoach,
	RoleHittingCoach,
	RoleCatchingCoach,
	RoleInfieldCoach,
	RoleOutfieldCoach,
	RoleStrengthCoach,
	RoleRecruitingCoordinator,
	RoleDirectorOfOperations,
	RoleVolunteerCoach,
	RoleStudentAssistant,
	RoleGraduateAssistant,
	RoleAthleticTrainer,
}

// fragmentRule classifies one title fragment by keyword. Rules are checked
// in order; the first hit wins, so specific roles outrank the generic
// assistant catch-all.
type fragmentRule struct {
	match func(string) bool
	role  string
}

func keyword(words ...string) func(string) bool {
	return func(fragment string) bool {
		for _, w := range words {
			if strings.Contains(fragment, w) {
				return true
			}
		}
		return false
	}
}

var fragmentRules = []fragmentRule{
	{match: func(f string) bool {
		return strings.Contains(f, "associate") && strings.Contains(f, "head")
	}, role: RoleAssociateHeadCoach},
	{match: keyword("head"), role: RoleHeadCoach},
	{match: keyword("pitching"), role: RolePitchingCoach},
	{match: keyword("hitting"), role: RoleHittingCoach},
	{match: keyword("catching"), role: RoleCatchingCoach},
	{match: keyword("infield"), role: RoleInfieldCoach},
	{match: keyword("outfield"), role: RoleOutfieldCoach},
	{match: keyword("strength", "conditioning"), role: RoleStrengthCoach},
	{match: keyword("recruiting coordinator"), role: RoleRecruitingCoordinator},
	{match: keyword("operations"), role: RoleDirectorOfOperations},
	{match: keyword("volunteer"), role: RoleVolunteerCoach},
	{match: keyword("student"), role: RoleStudentAssistant},
	{match: keyword("graduate", "grad "), role: RoleGraduateAssistant},
	{match: keyword("trainer"), role: RoleAthleticTrainer},
	{match: keyword("assistant", "asst"), role: RoleAssistantCoach},
}

// fragments breaks a merged title into independently classified pieces.
// Titles are merged with " | "; sites also join roles with "/" or "&"
// inside one title. Splitting on '&' is safe for "Strength & Conditioning"
// because both halves classify to the same label.
func fragments(title string) []string {
	pieces := strings.FieldsFunc(title, func(r rune) bool {
		return r == '|' || r == '/' || r == '&'
	})
	var out []string
	for _, piece := range pieces {
		out = append(out, splitMergedWords(piece)...)
	}
	return out
}

// splitMergedWords breaks a fragment at every lowercase-to-uppercase rune
// boundary. Scraped titles sometimes run two roles together with no
// separator at all ("Head CoachRecruiting Coordinator"); the case flip
// marks the seam.
func splitMergedWords(fragment string) []string {
	runes := []rune(fragment)
	var out []string
	start := 0
	for i := 1; i < len(runes); i++ {
		if unicode.IsLower(runes[i-1]) && unicode.IsUpper(runes[i]) {
			out = append(out, string(runes[start:i]))
			start = i
		}
	}
	return append(out, string(runes[start:]))
}

// ExtractRoles maps a merged title string to its canonical role labels.
//
// Each fragment is classified by the first keyword rule it matches;
// fragments matching nothing (bare "Recruiting", honorifics) are dropped. A
// conflict pass then removes roles implied by a more senior one, and an
// empty result falls back to the assistant label since every staff row
// represents someone on staff.
func ExtractRoles(title string) []string {
	found := make(map[string]bool)

	for _, fragment := range fragments(title) {
		fragment = strings.ToLower(strings.TrimSpace(fragment))
		if fragment == "" {
			continue
		}
		for _, rule := range fragmentRules {
			if rule.match(fragment) {
				found[rule.role] = true
				break
			}
		}
	}

	// Seniority conflicts: the senior title subsumes the junior one.
	if found[RoleHeadCoach] {
		delete(found, RoleAssociateHeadCoach)
		delete(found, RoleAssistantCoach)
	} else if found[RoleAssociateHeadCoach] {
		delete(found, RoleAssistantCoach)
	}
	if found[RoleAssistantCoach] {
		delete(found, RoleStudentAssistant)
	}

	if len(found) == 0 {
		return []string{RoleAssistantCoach}
	}

	out := make([]string, 0, len(found))
	for _, role := range roleOrder {
		if found[role] {
			out = append(out, role)
		}
	}
	return out
}
