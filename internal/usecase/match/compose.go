package match

import (
	"github.com/advolink/lawmatch/internal/domain/lawyer"
	"github.com/advolink/lawmatch/internal/domain/matchset"
	"github.com/advolink/lawmatch/internal/domain/policy"
)

// compose blends the ranked primary pool with the secondary backfill pool
// into one ordered, duplicate-free sequence. Top matches are carved out of
// the primary head before blending, so strict results are always preferred
// and never hidden behind broader ones.
func (s *Service) compose(primary, secondary []lawyer.Lawyer, pol policy.Policy) matchset.Composed {
	var top []lawyer.Lawyer

	if pol == policy.Relevance && len(primary) > 0 {
		ranked := make([]lawyer.Lawyer, len(primary))
		copy(ranked, primary)
		rank(ranked, policy.Relevance)
		primary = ranked

		n := s.topMatches
		if n > len(ranked) {
			n = len(ranked)
		}
		top = ranked[:n]
	}

	remainder := without(primary, idSet(top))

	blended := remainder
	if len(primary) < s.pageSize {
		// Primary is thin: backfill with secondary, minus every identity
		// already present in primary.
		backfill := without(secondary, idSet(primary))
		blended = make([]lawyer.Lawyer, 0, len(remainder)+len(backfill))
		blended = append(blended, remainder...)
		blended = append(blended, backfill...)
	}

	// Input data quality is not guaranteed; pools may overlap internally.
	blended = dedupe(blended)
	rank(blended, pol)

	return matchset.New(top, blended)
}

func idSet(cands []lawyer.Lawyer) map[string]struct{} {
	set := make(map[string]struct{}, len(cands))
	for i := range cands {
		set[cands[i].ID()] = struct{}{}
	}
	return set
}

func without(cands []lawyer.Lawyer, exclude map[string]struct{}) []lawyer.Lawyer {
	out := make([]lawyer.Lawyer, 0, len(cands))
	for _, c := range cands {
		if _, skip := exclude[c.ID()]; skip {
			continue
		}
		out = append(out, c)
	}
	return out
}

func dedupe(cands []lawyer.Lawyer) []lawyer.Lawyer {
	seen := make(map[string]struct{}, len(cands))
	out := make([]lawyer.Lawyer, 0, len(cands))
	for _, c := range cands {
		if _, dup := seen[c.ID()]; dup {
			continue
		}
		seen[c.ID()] = struct{}{}
		out = append(out, c)
	}
	return out
}
