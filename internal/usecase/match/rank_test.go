package match

import (
	"testing"

	"github.com/advolink/lawmatch/internal/domain/lawyer"
	"github.com/advolink/lawmatch/internal/domain/policy"
)

func profile(id string, score *float64, rate *float64, rating float64, reviews, exp int) lawyer.Lawyer {
	return lawyer.Reconstruct(id, lawyer.Attributes{
		HourlyRate:  rate,
		Rating:      rating,
		ReviewCount: reviews,
		Experience:  exp,
	}, score)
}

func f(v float64) *float64 { return &v }

func ids(cands []lawyer.Lawyer) []string {
	out := make([]string, len(cands))
	for i := range cands {
		out[i] = cands[i].ID()
	}
	return out
}

func assertOrder(t *testing.T, got []lawyer.Lawyer, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("length %d, want %d", len(g), len(want))
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("order %v, want %v", g, want)
		}
	}
}

func TestRank_Relevance_RatingBreaksTies(t *testing.T) {
	cands := []lawyer.Lawyer{
		profile("b", f(80), nil, 4.2, 10, 5),
		profile("a", f(80), nil, 4.9, 10, 5),
		profile("c", f(95), nil, 3.0, 1, 1),
	}
	rank(cands, policy.Relevance)
	assertOrder(t, cands, "c", "a", "b")
}

func TestRank_Relevance_ReviewCountThenExperience(t *testing.T) {
	cands := []lawyer.Lawyer{
		profile("less-exp", f(80), nil, 4.5, 20, 3),
		profile("more-exp", f(80), nil, 4.5, 20, 12),
		profile("more-reviews", f(80), nil, 4.5, 90, 1),
	}
	rank(cands, policy.Relevance)
	assertOrder(t, cands, "more-reviews", "more-exp", "less-exp")
}

func TestRank_Relevance_MissingScoreSinksToBottom(t *testing.T) {
	cands := []lawyer.Lawyer{
		profile("unscored", nil, nil, 5.0, 500, 30),
		profile("scored", f(1), nil, 2.0, 0, 0),
	}
	rank(cands, policy.Relevance)
	assertOrder(t, cands, "scored", "unscored")
}

func TestRank_Rating(t *testing.T) {
	cands := []lawyer.Lawyer{
		profile("b", f(100), nil, 4.0, 50, 10),
		profile("a", f(1), nil, 4.8, 2, 1),
		profile("c", f(50), nil, 4.0, 80, 2),
	}
	rank(cands, policy.Rating)
	// Match score is irrelevant under rating policy.
	assertOrder(t, cands, "a", "c", "b")
}

func TestRank_Price_MissingRateSortsLast(t *testing.T) {
	cands := []lawyer.Lawyer{
		profile("norate", f(99), nil, 5.0, 100, 20),
		profile("cheap", nil, f(120), 3.5, 4, 2),
		profile("pricey", nil, f(450), 4.9, 60, 15),
	}
	rank(cands, policy.Price)
	assertOrder(t, cands, "cheap", "pricey", "norate")
}

func TestRank_Price_RatingBreaksEqualRates(t *testing.T) {
	cands := []lawyer.Lawyer{
		profile("low", nil, f(200), 3.9, 10, 5),
		profile("high", nil, f(200), 4.7, 10, 5),
	}
	rank(cands, policy.Price)
	assertOrder(t, cands, "high", "low")
}

func TestRank_StableForEqualKeys(t *testing.T) {
	cands := []lawyer.Lawyer{
		profile("first", f(80), nil, 4.5, 10, 5),
		profile("second", f(80), nil, 4.5, 10, 5),
		profile("third", f(80), nil, 4.5, 10, 5),
	}
	rank(cands, policy.Relevance)
	assertOrder(t, cands, "first", "second", "third")

	// Re-sorting is idempotent.
	rank(cands, policy.Relevance)
	assertOrder(t, cands, "first", "second", "third")
}
