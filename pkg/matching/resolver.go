package matching

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/normalizers"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// DefaultScoreCutoff is the minimum PartialRatio score for a fuzzy match
// to be accepted when mapping a raw name onto the canonical list.
const DefaultScoreCutoff = 70

// Resolver maps noisy name variants onto a canonical reference list. Names
// that match nothing above the cutoff map to themselves, so resolution
// never drops a value and running it twice is a no-op.
type Resolver struct {
	log    ectologger.Logger
	scorer *Scorer
	cutoff float64
}

// NewResolver creates a resolver with the given score cutoff. A cutoff of 0
// falls back to DefaultScoreCutoff.
func NewResolver(log ectologger.Logger, cutoff float64) *Resolver {
	if cutoff <= 0 {
		cutoff = DefaultScoreCutoff
	}
	return &Resolver{
		log:    log,
		scorer: NewScorer(),
		cutoff: cutoff,
	}
}

// Resolve builds the raw -> canonical mapping. Exact matches (after name
// normalization) win outright; otherwise the best-scoring canonical name at
// or above the cutoff is used; otherwise the raw name maps to itself.
// Canonical names always map to themselves, which makes Resolve idempotent.
func (r *Resolver) Resolve(ctx context.Context, raw, canonical []string) map[string]string {
	_, span := tracing.StartSpan(ctx, "matching.Resolver.Resolve")
	defer span.End()

	type candidate struct {
		original   string
		normalized string
	}
	candidates := make([]candidate, 0, len(canonical))
	byNormalized := make(map[string]string, len(canonical))
	for _, name := range canonical {
		norm := normalizers.NormalizeName(name)
		candidates = append(candidates, candidate{original: name, normalized: norm})
		if _, ok := byNormalized[norm]; !ok {
			byNormalized[norm] = name
		}
	}

	mapping := make(map[string]string, len(raw))
	for _, value := range raw {
		if _, done := mapping[value]; done {
			continue
		}

		norm := normalizers.NormalizeName(value)
		if match, ok := byNormalized[norm]; ok {
			mapping[value] = match
			continue
		}

		best := value
		bestScore := 0.0
		for _, cand := range candidates {
			score := r.scorer.PartialRatio(norm, cand.normalized)
			if score > bestScore {
				bestScore = score
				best = cand.original
			}
		}
		if bestScore >= r.cutoff {
			mapping[value] = best
		} else {
			mapping[value] = value
		}
	}

	r.log.WithContext(ctx).WithFields(map[string]any{
		"raw_count":       len(raw),
		"canonical_count": len(canonical),
	}).Debug("Resolved name mapping")

	return mapping
}

// CanonicalizeSchools resolves every school reference in the snapshot
// against the school reference table, rewrites the referencing player
// columns, appends unmatched names as new school rows and deduplicates the
// table. The returned mapping is raw name -> canonical name.
func (r *Resolver) CanonicalizeSchools(ctx context.Context, dataset models.Dataset) (models.Dataset, map[string]string) {
	ctx, span := tracing.StartSpan(ctx, "matching.Resolver.CanonicalizeSchools")
	defer span.End()

	out := dataset.Clone()

	canonical := make([]string, 0, len(out.Schools))
	for _, s := range out.Schools {
		canonical = append(canonical, s.Name)
	}

	var highSchools, lastSchools []string
	seen := make(map[string]struct{})
	collect := func(value string, into *[]string) {
		if models.IsMissing(value) {
			return
		}
		if _, ok := seen[value]; ok {
			return
		}
		seen[value] = struct{}{}
		*into = append(*into, value)
	}
	for _, p := range out.Players {
		collect(p.HighSchool, &highSchools)
		collect(p.LastSchool, &lastSchools)
	}

	mapping := r.Resolve(ctx, append(append([]string{}, highSchools...), lastSchools...), canonical)

	for i := range out.Players {
		p := &out.Players[i]
		if !models.IsMissing(p.HighSchool) {
			p.HighSchool = mapping[p.HighSchool]
		}
		if !models.IsMissing(p.LastSchool) {
			p.LastSchool = mapping[p.LastSchool]
		}
	}

	// Self-mapped names are schools the reference table has never seen.
	known := make(map[string]struct{}, len(out.Schools))
	for _, s := range out.Schools {
		known[s.Name] = struct{}{}
	}
	appendNew := func(names []string, schoolType models.SchoolType) {
		for _, raw := range names {
			resolved := mapping[raw]
			if _, ok := known[resolved]; ok {
				continue
			}
			known[resolved] = struct{}{}
			out.Schools = append(out.Schools, models.SchoolRecord{Name: resolved, SchoolType: schoolType})
		}
	}
	appendNew(highSchools, models.SchoolTypeHighSchool)
	appendNew(lastSchools, models.SchoolTypeUniversity)

	// Dedupe the school table, first row wins.
	deduped := out.Schools[:0]
	dedupSeen := make(map[string]struct{}, len(out.Schools))
	for _, s := range out.Schools {
		if _, ok := dedupSeen[s.Name]; ok {
			continue
		}
		dedupSeen[s.Name] = struct{}{}
		deduped = append(deduped, s)
	}
	out.Schools = deduped

	r.log.WithContext(ctx).WithFields(map[string]any{
		"school_count": len(out.Schools),
		"mapped_count": len(mapping),
	}).Info("Canonicalized school references")

	return out, mapping
}
