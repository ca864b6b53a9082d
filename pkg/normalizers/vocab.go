package normalizers

import (
	"regexp"
	"strings"
)

// positionSplitter tokenizes multi-valued position cells ("OF/3B", "C, 1B").
var positionSplitter = regexp.MustCompile(`[/,|]`)

// Vocab holds the fixed mapping tables the scraped sites use for roster
// shorthand. Lookups are case-insensitive; unmapped single values fall
// through unchanged so a vocabulary gap never drops a record.
type Vocab struct {
	positions  map[string]string
	hands      map[string]string
	classYears map[string]string
	states     map[string]string
}

// DefaultVocab returns the vocabulary observed across the scraped rosters.
func DefaultVocab() *Vocab {
	return &Vocab{
		positions: map[string]string{
			"p":    "Pitcher",
			"rhp":  "Pitcher",
			"lhp":  "Pitcher",
			"c":    "Catcher",
			"1b":   "First Base",
			"2b":   "Second Base",
			"3b":   "Third Base",
			"ss":   "Shortstop",
			"if":   "Infielder",
			"inf":  "Infielder",
			"of":   "Outfielder",
			"lf":   "Left Field",
			"cf":   "Center Field",
			"rf":   "Right Field",
			"dh":   "Designated Hitter",
			"ut":   "Utility",
			"utl":  "Utility",
			"util": "Utility",
		},
		hands: map[string]string{
			"r": "Right",
			"l": "Left",
			"s": "Switch",
			"b": "Switch",
		},
		classYears: map[string]string{
			"fr":    "Freshman",
			"fr.":   "Freshman",
			"so":    "Sophomore",
			"so.":   "Sophomore",
			"jr":    "Junior",
			"jr.":   "Junior",
			"sr":    "Senior",
			"sr.":   "Senior",
			"gr":    "Graduate",
			"gr.":   "Graduate",
			"grad":  "Graduate",
			"r-fr":  "Redshirt Freshman",
			"r-fr.": "Redshirt Freshman",
			"r-so":  "Redshirt Sophomore",
			"r-so.": "Redshirt Sophomore",
			"r-jr":  "Redshirt Junior",
			"r-jr.": "Redshirt Junior",
			"r-sr":  "Redshirt Senior",
			"r-sr.": "Redshirt Senior",
			"5th":   "Fifth Year",
		},
		states: stateTable(),
	}
}

// Position maps a single position code to its canonical label, or returns
// the input unchanged when no mapping exists.
func (v *Vocab) Position(code string) string {
	code = strings.TrimSpace(code)
	if label, ok := v.positions[strings.ToLower(code)]; ok {
		return label
	}
	return code
}

// Positions splits a raw, possibly multi-valued position cell and maps each
// token. Empty and unmapped tokens are dropped; a missing cell yields nil.
func (v *Vocab) Positions(raw string) []string {
	if IsMissingValue(raw) {
		return nil
	}
	var out []string
	for _, token := range positionSplitter.Split(raw, -1) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		label, ok := v.positions[strings.ToLower(token)]
		if !ok {
			continue
		}
		if !contains(out, label) {
			out = append(out, label)
		}
	}
	return out
}

// Hand maps a bat or throw hand code (R/L/S) to its label.
func (v *Vocab) Hand(code string) string {
	code = strings.TrimSpace(code)
	if label, ok := v.hands[strings.ToLower(code)]; ok {
		return label
	}
	return code
}

// ClassYear maps a class year abbreviation (Fr., R-So.) to its label.
func (v *Vocab) ClassYear(raw string) string {
	raw = strings.TrimSpace(raw)
	if label, ok := v.classYears[strings.ToLower(raw)]; ok {
		return label
	}
	return raw
}

// Hometown rewrites the state portion of a "City, State" value to its USPS
// code, so "Austin, Tex." becomes "Austin, TX". Values without a comma, or
// with an unrecognized state, pass through unchanged.
func (v *Vocab) Hometown(raw string) string {
	if IsMissingValue(raw) {
		return raw
	}
	idx := strings.LastIndex(raw, ",")
	if idx < 0 {
		return raw
	}
	city := strings.TrimSpace(raw[:idx])
	state := strings.TrimSpace(raw[idx+1:])
	code, ok := v.states[strings.ToLower(strings.TrimSuffix(state, "."))]
	if !ok {
		return raw
	}
	return city + ", " + code
}

// IsMissingValue reports whether a raw cell carries no data.
func IsMissingValue(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "N/A")
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// stateTable maps full state names, AP-style abbreviations and USPS codes
// (all lowercased, trailing period stripped) to USPS codes.
func stateTable() map[string]string {
	table := map[string]string{
		"alabama": "AL", "ala": "AL",
		"alaska":  "AK",
		"arizona": "AZ", "ariz": "AZ",
		"arkansas": "AR", "ark": "AR",
		"california": "CA", "calif": "CA", "cal": "CA",
		"colorado": "CO", "colo": "CO",
		"connecticut": "CT", "conn": "CT",
		"delaware": "DE", "del": "DE",
		"florida": "FL", "fla": "FL",
		"georgia": "GA", "ga": "GA",
		"hawaii": "HI",
		"idaho":  "ID",
		"illinois": "IL", "ill": "IL",
		"indiana": "IN", "ind": "IN",
		"iowa":   "IA",
		"kansas": "KS", "kan": "KS",
		"kentucky": "KY", "ky": "KY",
		"louisiana": "LA", "la": "LA",
		"maine":    "ME",
		"maryland": "MD", "md": "MD",
		"massachusetts": "MA", "mass": "MA",
		"michigan": "MI", "mich": "MI",
		"minnesota": "MN", "minn": "MN",
		"mississippi": "MS", "miss": "MS",
		"missouri": "MO", "mo": "MO",
		"montana": "MT", "mont": "MT",
		"nebraska": "NE", "neb": "NE",
		"nevada": "NV", "nev": "NV",
		"new hampshire": "NH", "n.h": "NH",
		"new jersey": "NJ", "n.j": "NJ",
		"new mexico": "NM", "n.m": "NM",
		"new york": "NY", "n.y": "NY",
		"north carolina": "NC", "n.c": "NC",
		"north dakota": "ND", "n.d": "ND",
		"ohio":     "OH",
		"oklahoma": "OK", "okla": "OK",
		"oregon": "OR", "ore": "OR",
		"pennsylvania": "PA", "pa": "PA",
		"rhode island": "RI", "r.i": "RI",
		"south carolina": "SC", "s.c": "SC",
		"south dakota": "SD", "s.d": "SD",
		"tennessee": "TN", "tenn": "TN",
		"texas": "TX", "tex": "TX",
		"utah":    "UT",
		"vermont": "VT", "vt": "VT",
		"virginia": "VA", "va": "VA",
		"washington": "WA", "wash": "WA",
		"west virginia": "WV", "w.va": "WV", "w. va": "WV",
		"wisconsin": "WI", "wis": "WI", "wisc": "WI",
		"wyoming": "WY", "wyo": "WY",
		"district of columbia": "DC", "d.c": "DC",
		"puerto rico": "PR", "p.r": "PR",
	}
	// USPS codes map to themselves so already-clean values stay put.
	for _, code := range table {
		table[strings.ToLower(code)] = code
	}
	return table
}
