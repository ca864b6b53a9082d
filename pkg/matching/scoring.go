// Package matching provides the fuzzy string scoring used to collapse noisy
// school name variants onto a canonical reference list.
package matching

// Scorer provides string comparison algorithms. Scores are on a 0-100
// scale, where 100 is an exact match.
type Scorer struct{}

// NewScorer creates a new Scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Ratio calculates the normalized Levenshtein similarity between two strings
func (s *Scorer) Ratio(a, b string) float64 {
	if a == b {
		return 100
	}
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 100
	}
	distance := s.LevenshteinDistance(a, b)
	return 100 * (1 - float64(distance)/float64(maxLen))
}

// PartialRatio calculates the best Ratio between the shorter string and any
// equal-length window of the longer one. "Missouri" scores 100 against
// "University of Missouri" because the substring aligns perfectly.
func (s *Scorer) PartialRatio(a, b string) float64 {
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		if len(longer) == 0 {
			return 100
		}
		return 0
	}
	if len(shorter) == len(longer) {
		return s.Ratio(shorter, longer)
	}

	best := 0.0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		score := s.Ratio(shorter, longer[i:i+len(shorter)])
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}
	return best
}

// LevenshteinDistance calculates the edit distance between two strings
func (s *Scorer) LevenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Create two rows for dynamic programming
	row := make([]int, len(b)+1)
	prevRow := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prevRow[j] = j
	}

	for i := 1; i <= len(a); i++ {
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			row[j] = min(min(row[j-1]+1, prevRow[j]+1), prevRow[j-1]+cost)
		}
		row, prevRow = prevRow, row
	}

	return prevRow[len(b)]
}
