package match

import (
	"strings"

	"github.com/advolink/lawmatch/internal/domain/criteria"
	"github.com/advolink/lawmatch/internal/domain/lawyer"
)

// refine re-applies the filters the answering tier cannot guarantee, then
// deduplicates by identity keeping first occurrence. Idempotent:
// refine(refine(x)) == refine(x). strictArea forces the client-side
// practice-area re-check (full-listing tier).
func refine(cands []lawyer.Lawyer, crit *criteria.Criteria, strictArea bool) []lawyer.Lawyer {
	langs := crit.LanguageSet()

	out := make([]lawyer.Lawyer, 0, len(cands))
	seen := make(map[string]struct{}, len(cands))

	for _, c := range cands {
		if c.Experience() < crit.MinExperience() {
			continue
		}
		if c.Rating() < crit.MinRating() {
			continue
		}
		if langs != nil && !speaksAny(&c, langs) {
			continue
		}
		if strictArea && crit.HasPracticeArea() && !practicesArea(&c, crit.PracticeArea()) {
			continue
		}
		if _, dup := seen[c.ID()]; dup {
			continue
		}
		seen[c.ID()] = struct{}{}
		out = append(out, c)
	}
	return out
}

// speaksAny reports whether the candidate has at least one language
// case-insensitively overlapping the requested set.
func speaksAny(c *lawyer.Lawyer, want map[string]struct{}) bool {
	for _, l := range c.Languages() {
		if _, ok := want[strings.ToLower(l)]; ok {
			return true
		}
	}
	return false
}

func practicesArea(c *lawyer.Lawyer, area string) bool {
	for _, a := range c.PracticeAreas() {
		if strings.EqualFold(a, area) {
			return true
		}
	}
	return false
}
