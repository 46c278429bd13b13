package lawmatch

import (
	"github.com/advolink/lawmatch/internal/domain/lawyer"
	"github.com/advolink/lawmatch/internal/domain/matchset"
)

// SearchParams carries the raw client-side search criteria.
type SearchParams struct {
	PracticeArea  string
	Locations     string // comma-separated
	Budget        string // budget band label, e.g. "$150 - $300/hr"
	Languages     string // comma-separated
	Keywords      string // comma-separated
	Urgency       string
	SearchID      string
	SpecificIssue string
	MinExperience int
	MinRating     float64
	Sort          string // relevance (default), rating, price
	Page          int    // 1-based, defaults to 1
}

// Match is one ranked lawyer in a result set.
type Match struct {
	ID              string
	Name            string
	AvatarURL       string
	HourlyRate      *float64
	ExperienceYears int
	Rating          float64
	ReviewCount     int
	Languages       []string
	Locations       []string
	PracticeAreas   []string
	MatchScore      *float64
}

// SearchResult is one page of composed matches.
type SearchResult struct {
	TopMatches []Match
	Items      []Match
	Total      int
	Page       int
	PageSize   int
	TotalPages int
	Tier       string
}

func searchResultFromPage(p *matchset.Page, tier string) *SearchResult {
	return &SearchResult{
		TopMatches: matchesFromLawyers(p.TopMatches()),
		Items:      matchesFromLawyers(p.Items()),
		Total:      p.Total(),
		Page:       p.Number(),
		PageSize:   p.Size(),
		TotalPages: p.TotalPages(),
		Tier:       tier,
	}
}

func matchesFromLawyers(ls []lawyer.Lawyer) []Match {
	out := make([]Match, len(ls))
	for i := range ls {
		l := &ls[i]
		out[i] = Match{
			ID:              l.ID(),
			Name:            l.Name(),
			AvatarURL:       l.AvatarURL(),
			HourlyRate:      l.HourlyRate(),
			ExperienceYears: l.Experience(),
			Rating:          l.Rating(),
			ReviewCount:     l.ReviewCount(),
			Languages:       l.Languages(),
			Locations:       l.Locations(),
			PracticeAreas:   l.PracticeAreas(),
			MatchScore:      l.MatchScore(),
		}
	}
	return out
}
