package match

import (
	"math"
	"slices"

	"github.com/advolink/lawmatch/internal/domain/lawyer"
	"github.com/advolink/lawmatch/internal/domain/policy"
)

// rank applies the policy's total order in place. Sorting is stable so
// equal keys keep their relative order and pagination stays deterministic
// across re-renders with unchanged data.
func rank(cands []lawyer.Lawyer, pol policy.Policy) {
	switch pol {
	case policy.Rating:
		slices.SortStableFunc(cands, byRating)
	case policy.Price:
		slices.SortStableFunc(cands, byPrice)
	default:
		slices.SortStableFunc(cands, byRelevance)
	}
}

// byRelevance: match_score desc, rating desc, review_count desc,
// experience desc. Missing score counts as 0 so incomplete profiles never
// float to the top.
func byRelevance(a, b lawyer.Lawyer) int {
	if c := cmpDesc(scoreOf(&a), scoreOf(&b)); c != 0 {
		return c
	}
	return byRating(a, b)
}

// byRating: rating desc, review_count desc, experience desc.
func byRating(a, b lawyer.Lawyer) int {
	if c := cmpDesc(a.Rating(), b.Rating()); c != 0 {
		return c
	}
	if c := cmpDesc(float64(a.ReviewCount()), float64(b.ReviewCount())); c != 0 {
		return c
	}
	return cmpDesc(float64(a.Experience()), float64(b.Experience()))
}

// byPrice: hourly_rate asc with missing rate sorting last, then rating
// desc, review_count desc.
func byPrice(a, b lawyer.Lawyer) int {
	ra, rb := rateOf(&a), rateOf(&b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	if c := cmpDesc(a.Rating(), b.Rating()); c != 0 {
		return c
	}
	return cmpDesc(float64(a.ReviewCount()), float64(b.ReviewCount()))
}

func cmpDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

func scoreOf(l *lawyer.Lawyer) float64 {
	if s := l.MatchScore(); s != nil {
		return *s
	}
	return 0
}

func rateOf(l *lawyer.Lawyer) float64 {
	if r := l.HourlyRate(); r != nil {
		return *r
	}
	return math.Inf(1)
}
